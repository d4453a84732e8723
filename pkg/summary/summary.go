// Package summary aggregates a comparison of releases into counts and
// percentages.
package summary

import (
	"github.com/gnames/taxodrift/pkg/drift"
)

// Names of summary metrics in the order they appear in
// result_summary.csv.
const (
	TotalNames           = "total_names"
	UnresolvedOld        = "unresolved_old"
	DroppedInChain       = "dropped_in_chain"
	UnresolvedDirect     = "unresolved_direct"
	ComparedNames        = "compared_names"
	NameDisagreements    = "name_disagreements"
	SpeciesDisagreements = "species_disagreements"
	GenusDisagreements   = "genus_disagreements"
	Resurrected          = "resurrected"
	Synonymized          = "synonymized"
)

// Counts are raw numbers of a comparison.
type Counts struct {
	Total                int
	UnresolvedOld        int
	DroppedInChain       int
	UnresolvedDirect     int
	Compared             int
	NameDisagreements    int
	SpeciesDisagreements int
	GenusDisagreements   int
	Resurrected          int
	Synonymized          int
}

// Metric is one line of a summary.
type Metric struct {
	Name       string
	Count      int
	Percentage float64
}

// Summary is the table written to result_summary.csv.
type Summary struct {
	// Label names the count column, usually "<old>_<new>".
	Label string

	Metrics []Metric
}

// FromResult takes counts from a comparison result.
func FromResult(r *drift.Result) Counts {
	res := Counts{
		Total:                r.Total,
		UnresolvedOld:        r.UnresolvedOld,
		DroppedInChain:       r.DroppedInChain(),
		UnresolvedDirect:     r.UnresolvedDirect,
		Compared:             r.Compared(),
		NameDisagreements:    len(r.NameDisagreements()),
		SpeciesDisagreements: len(r.SpeciesDisagreements()),
		GenusDisagreements:   len(r.GenusDisagreements()),
	}
	for _, row := range r.Rows {
		if row.Resurrected {
			res.Resurrected++
		}
		if row.Synonymized {
			res.Synonymized++
		}
	}
	return res
}

// New creates a summary. Percentages are relative to the number of
// compared names. An empty comparison gives NaN percentages.
func New(label string, c Counts) Summary {
	compared := float64(c.Compared)
	pct := func(n int) float64 {
		return float64(n) / compared * 100
	}

	items := []struct {
		name  string
		count int
	}{
		{TotalNames, c.Total},
		{UnresolvedOld, c.UnresolvedOld},
		{DroppedInChain, c.DroppedInChain},
		{UnresolvedDirect, c.UnresolvedDirect},
		{ComparedNames, c.Compared},
		{NameDisagreements, c.NameDisagreements},
		{SpeciesDisagreements, c.SpeciesDisagreements},
		{GenusDisagreements, c.GenusDisagreements},
		{Resurrected, c.Resurrected},
		{Synonymized, c.Synonymized},
	}

	res := Summary{Label: label, Metrics: make([]Metric, len(items))}
	for i, v := range items {
		res.Metrics[i] = Metric{Name: v.name, Count: v.count, Percentage: pct(v.count)}
	}
	return res
}

// Get finds a metric by name.
func (s Summary) Get(name string) (Metric, bool) {
	for _, m := range s.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}
