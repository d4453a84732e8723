// Package drift compares how names resolve in different releases of a
// checklist.
//
// For every distinct name of the oldest release the package follows two
// paths. The chained path takes the accepted name in the oldest release
// and carries it through every following release, replacing it at each
// hop with its accepted name in that release. The direct path looks the
// original name up in the newest release. Names whose chained and direct
// accepted names differ are disagreements.
//
// A name that does not resolve to a single accepted name at some hop is
// dropped from the chain. Dropped names are not compared, which makes the
// reported disagreement rates optimistic. The number of dropped names is
// kept in Hop statistics so it can be reported next to the rates.
package drift

import (
	"github.com/gnames/taxodrift/pkg/matcher"
	"github.com/gnames/taxodrift/pkg/taxon"
)

// Stage tells where a name failed to resolve.
type Stage string

const (
	StageOld    Stage = "old"
	StageChain  Stage = "chain"
	StageDirect Stage = "direct"
)

// Row is the comparison of one name.
type Row struct {
	// Name is the name with authorship from the oldest release.
	Name string

	// OldStatus is the status of the name in the oldest release.
	OldStatus taxon.Status

	// Typification of the name in the oldest release.
	Typification taxon.Typification

	OldAccepted        string
	OldAcceptedSpecies string

	ChainedAccepted string
	ChainedSpecies  string
	ChainedGenus    string

	DirectStatus   taxon.Status
	DirectAccepted string
	DirectSpecies  string
	DirectGenus    string

	NameDisagreement    bool
	SpeciesDisagreement bool
	GenusDisagreement   bool

	// Resurrected names are not accepted in the oldest release and
	// accepted in the newest.
	Resurrected bool

	// Synonymized names are accepted in the oldest release and not
	// accepted in the newest.
	Synonymized bool
}

// Link is a name carried through the chain.
type Link struct {
	Name string
	Key  matcher.Key

	// Old is the resolution of the name in the oldest release.
	Old matcher.Resolution

	// Current is the resolution after the latest hop.
	Current matcher.Resolution
}

// Hop contains statistics of one step of the chain.
type Hop struct {
	// Number of the hop starting from 1.
	Number int

	From, To string

	// In is the number of links entering the hop.
	In int

	// Out is the number of links that resolved in To.
	Out int

	NotFound  int
	Ambiguous int

	// Links are the survivors of the hop.
	Links []Link
}

// Dropped is the number of links lost at the hop.
func (h Hop) Dropped() int {
	return h.In - h.Out
}

// Miss is a name that was not compared.
type Miss struct {
	Name  string
	Stage Stage
	Tag   string
	Kind  matcher.Kind
}

// Result is the outcome of a comparison of two or more releases.
type Result struct {
	// Tags of compared releases in order.
	Tags []string

	// Total is the number of distinct names in the oldest release.
	Total int

	// UnresolvedOld is the number of names without a single accepted
	// name in the oldest release.
	UnresolvedOld int

	// UnresolvedDirect is the number of chain survivors whose direct
	// lookup in the newest release failed.
	UnresolvedDirect int

	Hops   []Hop
	Rows   []Row
	Misses []Miss
}

// OldTag returns the tag of the oldest release.
func (r *Result) OldTag() string {
	return r.Tags[0]
}

// NewTag returns the tag of the newest release.
func (r *Result) NewTag() string {
	return r.Tags[len(r.Tags)-1]
}

// DroppedInChain is the sum of names dropped by all hops.
func (r *Result) DroppedInChain() int {
	var res int
	for _, h := range r.Hops {
		res += h.Dropped()
	}
	return res
}

// Compared is the number of compared names.
func (r *Result) Compared() int {
	return len(r.Rows)
}

// Filter returns rows that satisfy fn.
func (r *Result) Filter(fn func(Row) bool) []Row {
	var res []Row
	for _, row := range r.Rows {
		if fn(row) {
			res = append(res, row)
		}
	}
	return res
}

// NameDisagreements returns rows whose accepted names differ.
func (r *Result) NameDisagreements() []Row {
	return r.Filter(func(row Row) bool { return row.NameDisagreement })
}

// SpeciesDisagreements returns rows whose accepted species differ.
func (r *Result) SpeciesDisagreements() []Row {
	return r.Filter(func(row Row) bool { return row.SpeciesDisagreement })
}

// GenusDisagreements returns rows whose accepted genera differ.
func (r *Result) GenusDisagreements() []Row {
	return r.Filter(func(row Row) bool { return row.GenusDisagreement })
}
