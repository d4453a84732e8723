// Package resolver maps every record of a checklist release to its
// accepted record. This is a pure package.
//
// The resolver works as a self-join: every record gets an accepted
// identifier (its own for accepted records, the accepted usage otherwise),
// records without one are dropped, and the rest are joined with the
// accepted subset of the same release. Records pointing to identifiers
// that are not accepted records are dropped and counted. A release with
// more such records than the threshold is rejected, because it usually
// means the release layout changed.
package resolver

import (
	"maps"
	"slices"

	"github.com/gnames/taxodrift/pkg/taxon"
)

// Report summarizes resolution of a release.
type Report struct {
	// Tag of the release.
	Tag string

	// Input is the number of records given to the resolver.
	Input int

	// NoAcceptedID is the number of records without resolvable accepted
	// identifier.
	NoAcceptedID int

	// Unresolved is the number of records pointing to missing accepted
	// records.
	Unresolved int

	// UnresolvedTargets breaks down Unresolved by the raw status of the
	// target record, or "missing" when the target does not exist.
	UnresolvedTargets map[string]int

	// Kept is the number of resolved records.
	Kept int

	// Threshold is the tolerated number of unresolved records.
	Threshold int
}

// Breakdown returns UnresolvedTargets keys sorted by count, largest first.
func (r Report) Breakdown() []string {
	res := slices.Collect(maps.Keys(r.UnresolvedTargets))
	slices.SortFunc(res, func(a, b string) int {
		if d := r.UnresolvedTargets[b] - r.UnresolvedTargets[a]; d != 0 {
			return d
		}
		if a < b {
			return -1
		}
		return 1
	})
	return res
}

// Resolve resolves records of release tag. maxUnresolved is the largest
// tolerated number of records whose accepted record is missing.
func Resolve(
	tag string,
	recs []taxon.Record,
	maxUnresolved int,
) ([]taxon.Resolved, Report, error) {
	rep := Report{
		Tag:               tag,
		Input:             len(recs),
		Threshold:         maxUnresolved,
		UnresolvedTargets: make(map[string]int),
	}

	accepted := make(map[string]int)
	statusByID := make(map[string]string, len(recs))
	species := make(map[string]string)
	for i := range recs {
		r := &recs[i]
		statusByID[r.ID] = r.RawStatus
		if !r.Status.IsAccepted() {
			continue
		}
		if j, ok := accepted[r.ID]; ok {
			return nil, rep, DuplicateIDError(tag, r.ID, recs[j].NameWithAuthors,
				r.NameWithAuthors)
		}
		accepted[r.ID] = i
		if taxon.IsSpeciesRank(r.Rank) && r.Species != "" {
			species[r.Species] = r.NameWithAuthors
		}
	}

	res := make([]taxon.Resolved, 0, len(recs))
	for i := range recs {
		r := recs[i]
		accID, ok := taxon.AcceptedID(r.Status, r.ID, r.AcceptedUsageID)
		if !ok {
			rep.NoAcceptedID++
			continue
		}

		j, ok := accepted[accID]
		if !ok {
			rep.Unresolved++
			target, exists := statusByID[accID]
			if !exists {
				target = "missing"
			}
			rep.UnresolvedTargets[target]++
			continue
		}

		acc := recs[j]
		if r.Status.IsAccepted() && acc.NameWithAuthors != r.NameWithAuthors {
			return nil, rep, SelfMatchError(tag, r.ID, r.NameWithAuthors,
				acc.NameWithAuthors)
		}

		res = append(res, taxon.Resolved{
			Record:                     r,
			AcceptedID:                 accID,
			AcceptedNameWithAuthors:    acc.NameWithAuthors,
			AcceptedSpecies:            acc.Species,
			AcceptedSpeciesWithAuthors: species[acc.Species],
			AcceptedGenus:              acc.Genus,
		})
	}
	rep.Kept = len(res)

	if rep.Unresolved > maxUnresolved {
		return nil, rep, ThresholdError(tag, rep.Unresolved, maxUnresolved)
	}
	return res, rep, nil
}
