// Package changes calculates how the content of a checklist changes
// between two releases: species that appear and disappear, accepted
// species that become synonyms and synonyms that are resurrected.
//
// Names are compared as exact strings, with or without authorship.
package changes

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/gnames/taxodrift/pkg/taxon"
)

// Line is a row of a change summary. Percentage is relative to the
// first line of a table.
type Line struct {
	Label      string
	Count      int
	Percentage float64
}

// Table is a change summary.
type Table []Line

func newTable(items ...Line) Table {
	base := float64(items[0].Count)
	for i := range items {
		items[i].Percentage = float64(items[i].Count) / base * 100
	}
	return items
}

// Get finds a line by label.
func (t Table) Get(label string) (Line, bool) {
	for _, l := range t {
		if l.Label == label {
			return l, true
		}
	}
	return Line{}, false
}

// Transition is a species name that changed status between releases.
type Transition struct {
	Name         string
	OldStatus    string
	NewStatus    string
	NewAccepted  string
	Typification taxon.Typification
}

// Release is a resolved release with its tag.
type Release struct {
	Tag     string
	Records []taxon.Resolved
}

func nameKey(r taxon.Resolved, withAuthors bool) string {
	if withAuthors {
		return r.NameWithAuthors
	}
	return r.Name
}

type speciesSets struct {
	all      map[string]struct{}
	accepted map[string]struct{}
}

func collectSpecies(recs []taxon.Resolved, withAuthors bool) speciesSets {
	res := speciesSets{
		all:      make(map[string]struct{}),
		accepted: make(map[string]struct{}),
	}
	for _, r := range recs {
		if !taxon.IsSpeciesRank(r.Rank) {
			continue
		}
		k := nameKey(r, withAuthors)
		res.all[k] = struct{}{}
		if r.Status.IsAccepted() {
			res.accepted[k] = struct{}{}
		}
	}
	return res
}

// SpeciesDiff is the comparison of species names of two releases.
type SpeciesDiff struct {
	Summary Table

	// Disappeared are species names of the old release that are absent
	// in the new one.
	Disappeared []string
}

// DiffSpecies compares species names with or without authorship.
func DiffSpecies(old, nw Release, withAuthors bool) SpeciesDiff {
	o := collectSpecies(old.Records, withAuthors)
	n := collectSpecies(nw.Records, withAuthors)

	var previouslyPublished, newNotInOld int
	for k := range n.accepted {
		if _, ok := o.all[k]; ok {
			previouslyPublished++
		}
	}
	for k := range n.all {
		if _, ok := o.all[k]; !ok {
			newNotInOld++
		}
	}

	var disappeared []string
	for k := range o.all {
		if _, ok := n.all[k]; !ok {
			disappeared = append(disappeared, k)
		}
	}
	slices.Sort(disappeared)

	sum := Table{
		{Label: "number of new accepted species names", Count: len(n.accepted)},
		{Label: "number of old accepted species names", Count: len(o.accepted)},
		{Label: "new accepted species names which were previously published",
			Count: previouslyPublished},
		{Label: "number of new species names", Count: len(n.all)},
		{Label: "number of old species names", Count: len(o.all)},
		{Label: "new species names not in old", Count: newNotInOld},
		{Label: "species names have disappeared", Count: len(disappeared)},
	}
	return SpeciesDiff{Summary: newTable(sum...), Disappeared: disappeared}
}

// StatusChanges groups species transitions by status.
type StatusChanges struct {
	Summary Table

	// ByStatus keeps transitions grouped by the status that is not
	// accepted (new status for synonymization, old status for
	// resurrection).
	ByStatus map[string][]Transition
}

// Statuses returns keys of ByStatus sorted by the number of names,
// largest first.
func (s StatusChanges) Statuses() []string {
	res := slices.Collect(maps.Keys(s.ByStatus))
	slices.SortFunc(res, func(a, b string) int {
		if d := len(s.ByStatus[b]) - len(s.ByStatus[a]); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})
	return res
}

// Count returns the number of transitions.
func (s StatusChanges) Count() int {
	var res int
	for _, v := range s.ByStatus {
		res += len(v)
	}
	return res
}

// byName indexes records by name with authorship. When a name is listed
// more than once, the first record with the preferred acceptance wins.
func byName(recs []taxon.Resolved, accepted bool) map[string]taxon.Resolved {
	res := make(map[string]taxon.Resolved, len(recs))
	for _, r := range recs {
		prev, ok := res[r.NameWithAuthors]
		if ok && prev.Status.IsAccepted() == accepted {
			continue
		}
		res[r.NameWithAuthors] = r
	}
	return res
}

// AcceptedBecomeUnaccepted finds accepted species of the old release
// that have another status in the new release. A name listed in the new
// release both as accepted and unaccepted counts as no longer accepted.
func AcceptedBecomeUnaccepted(old, nw Release) StatusChanges {
	newNames := byName(nw.Records, false)
	res := StatusChanges{ByStatus: make(map[string][]Transition)}

	seen := make(map[string]struct{})
	for _, r := range old.Records {
		if !taxon.IsSpeciesRank(r.Rank) || !r.Status.IsAccepted() {
			continue
		}
		if _, ok := seen[r.NameWithAuthors]; ok {
			continue
		}
		seen[r.NameWithAuthors] = struct{}{}
		n, ok := newNames[r.NameWithAuthors]
		if !ok || n.Status.IsAccepted() {
			continue
		}
		res.ByStatus[n.RawStatus] = append(res.ByStatus[n.RawStatus], Transition{
			Name:         r.NameWithAuthors,
			OldStatus:    r.RawStatus,
			NewStatus:    n.RawStatus,
			NewAccepted:  n.AcceptedNameWithAuthors,
			Typification: n.TypeRelation(),
		})
	}

	lines := []Line{
		{Label: "number of old accepted species names", Count: len(seen)},
		{Label: "old accepted species names are no longer accepted", Count: res.Count()},
	}
	for _, st := range res.Statuses() {
		trs := res.ByStatus[st]
		lines = append(lines, Line{
			Label: fmt.Sprintf("Number which are now %s", st),
			Count: len(trs),
		})
		var homo, hetero int
		for _, tr := range trs {
			switch tr.Typification {
			case taxon.Homotypic:
				homo++
			case taxon.Heterotypic:
				hetero++
			}
		}
		if homo+hetero == 0 {
			continue
		}
		lines = append(lines,
			Line{Label: fmt.Sprintf("Number which are now %s of which (homotypic)", st),
				Count: homo},
			Line{Label: fmt.Sprintf("Number which are now %s of which (heterotypic)", st),
				Count: hetero},
		)
	}
	res.Summary = newTable(lines...)
	return res
}

// UnacceptedBecomeAccepted finds species names that were not accepted in
// the old release and are accepted in the new one.
func UnacceptedBecomeAccepted(old, nw Release) StatusChanges {
	newNames := byName(nw.Records, true)
	res := StatusChanges{ByStatus: make(map[string][]Transition)}

	seen := make(map[string]struct{})
	for _, r := range old.Records {
		if !taxon.IsSpeciesRank(r.Rank) || r.Status.IsAccepted() {
			continue
		}
		if _, ok := seen[r.NameWithAuthors]; ok {
			continue
		}
		seen[r.NameWithAuthors] = struct{}{}
		n, ok := newNames[r.NameWithAuthors]
		if !ok || !n.Status.IsAccepted() {
			continue
		}
		res.ByStatus[r.RawStatus] = append(res.ByStatus[r.RawStatus], Transition{
			Name:         r.NameWithAuthors,
			OldStatus:    r.RawStatus,
			NewStatus:    n.RawStatus,
			NewAccepted:  n.AcceptedNameWithAuthors,
			Typification: r.TypeRelation(),
		})
	}

	lines := []Line{
		{Label: "number of old unaccepted species names", Count: len(seen)},
		{Label: "old unaccepted species names are now accepted", Count: res.Count()},
	}
	for _, st := range res.Statuses() {
		lines = append(lines, Line{
			Label: fmt.Sprintf("now accepted, previously %s", st),
			Count: len(res.ByStatus[st]),
		})
	}
	res.Summary = newTable(lines...)
	return res
}

// ResolveLost counts names that resolve in the old release and are
// absent in the new one. Without authorship, names whose authorship
// was only corrected are not reported as lost.
func ResolveLost(old, nw Release, withAuthors bool) (Table, []string) {
	newNames := nameSet(nw.Records, withAuthors)
	oldNames := nameSet(old.Records, withAuthors)

	var lost []string
	for name := range oldNames {
		if _, ok := newNames[name]; !ok {
			lost = append(lost, name)
		}
	}
	slices.Sort(lost)

	t := newTable(
		Line{Label: "number of original_names", Count: len(oldNames)},
		Line{Label: "names_that_resolve_in_old_but_not_in_new", Count: len(lost)},
	)
	return t, lost
}

func nameSet(recs []taxon.Resolved, withAuthors bool) map[string]struct{} {
	res := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		res[nameKey(r, withAuthors)] = struct{}{}
	}
	return res
}

// Rollup contains rates used by trend analysis.
type Rollup struct {
	OldTag, NewTag string

	// Synonymization is the percentage of old accepted species that
	// are not accepted in the new release.
	Synonymization float64

	// Resurrection is the percentage of old unaccepted species that are
	// accepted in the new release.
	Resurrection float64
}

// NewRollup combines status changes into rates.
func NewRollup(old, nw Release, syn, res StatusChanges) Rollup {
	return Rollup{
		OldTag:         old.Tag,
		NewTag:         nw.Tag,
		Synonymization: syn.Summary[1].Percentage,
		Resurrection:   res.Summary[1].Percentage,
	}
}
