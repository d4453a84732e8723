// Package matcher looks up names of one checklist release in another.
//
// An Index is built over a resolved release. Each record is keyed by the
// normalized form of its name with authorship, so a lookup is an exact
// match after normalization. Several records can share a key (the same
// name string listed twice, or orthographic variants that normalize to
// the same form). Such candidates are ranked: accepted records first,
// then synonyms, then everything else. If the best ranked candidates
// point to more than one accepted record, the lookup is ambiguous.
package matcher

import (
	"context"
	"slices"

	"github.com/gnames/taxodrift/pkg/taxon"
	"github.com/google/uuid"
)

// Kind is the outcome of a lookup.
type Kind int

const (
	NotFound Kind = iota
	Resolved
	Ambiguous
)

// String returns the label used in CSV files and logs.
func (k Kind) String() string {
	switch k {
	case Resolved:
		return "resolved"
	case Ambiguous:
		return "ambiguous"
	}
	return "not_found"
}

// Resolution is the result of a lookup. Misses are not errors, they are
// Resolutions with NotFound or Ambiguous kind.
type Resolution struct {
	Kind Kind

	// Status of the matched record.
	Status taxon.Status

	// Typification of the matched record.
	Typification taxon.Typification

	AcceptedID              string
	AcceptedNameWithAuthors string
	AcceptedSpecies         string
	AcceptedGenus           string

	// AcceptedKey is the key of the accepted name. It is used to follow
	// the accepted name into the next release.
	AcceptedKey Key

	// ByCanonical is true when the match used the canonical fallback.
	ByCanonical bool

	// Candidates is the number of records sharing the key.
	Candidates int
}

// Name is a distinct name string of an index together with its key.
type Name struct {
	Text string
	Key  Key
}

// Index is a lookup table over one resolved release.
type Index struct {
	tag       string
	keyer     Keyer
	fallback  bool
	recs      []taxon.Resolved
	keys      []Key
	full      map[uuid.UUID][]int
	canonical map[uuid.UUID][]int
	byID      map[string]int
}

// Option modifies Index settings.
type Option func(*Index)

// OptCanonicalFallback allows lookups by canonical form when the full
// form is not in the index.
func OptCanonicalFallback(b bool) Option {
	return func(idx *Index) {
		idx.fallback = b
	}
}

// New builds an index over resolved records of release tag. Keys are
// calculated by jobs concurrent workers.
func New(
	ctx context.Context,
	tag string,
	recs []taxon.Resolved,
	keyer Keyer,
	jobs int,
	opts ...Option,
) (*Index, error) {
	res := &Index{
		tag:       tag,
		keyer:     keyer,
		recs:      recs,
		full:      make(map[uuid.UUID][]int),
		canonical: make(map[uuid.UUID][]int),
		byID:      make(map[string]int),
	}
	for _, opt := range opts {
		opt(res)
	}

	names := make([]string, len(recs))
	for i := range recs {
		names[i] = recs[i].NameWithAuthors
	}

	var err error
	if res.keys, err = Keys(ctx, keyer, names, jobs); err != nil {
		return nil, err
	}

	for i, k := range res.keys {
		if k.Full != uuid.Nil {
			res.full[k.Full] = append(res.full[k.Full], i)
		}
		if k.Canonical != uuid.Nil {
			res.canonical[k.Canonical] = append(res.canonical[k.Canonical], i)
		}
		if recs[i].Status.IsAccepted() {
			res.byID[recs[i].ID] = i
		}
	}
	return res, nil
}

// Tag returns the release tag of the index.
func (idx *Index) Tag() string {
	return idx.tag
}

// Len returns the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.recs)
}

// Keyer returns the Keyer of the index.
func (idx *Index) Keyer() Keyer {
	return idx.keyer
}

// Names returns distinct names of the index in the order of records.
func (idx *Index) Names() []Name {
	seen := make(map[uuid.UUID]struct{}, len(idx.full))
	res := make([]Name, 0, len(idx.full))
	for i, k := range idx.keys {
		if k.Full == uuid.Nil {
			continue
		}
		if _, ok := seen[k.Full]; ok {
			continue
		}
		seen[k.Full] = struct{}{}
		res = append(res, Name{Text: idx.recs[i].NameWithAuthors, Key: k})
	}
	return res
}

// LookupName normalizes a name and looks it up.
func (idx *Index) LookupName(name string) Resolution {
	return idx.Lookup(idx.keyer.Key(name))
}

// Lookup finds the accepted name for a key.
func (idx *Index) Lookup(k Key) Resolution {
	if cands, ok := idx.full[k.Full]; ok && k.Full != uuid.Nil {
		return idx.resolve(cands, false)
	}
	if idx.fallback && k.Canonical != uuid.Nil {
		if cands, ok := idx.canonical[k.Canonical]; ok {
			return idx.resolve(cands, true)
		}
	}
	return Resolution{Kind: NotFound}
}

func (idx *Index) resolve(cands []int, byCanonical bool) Resolution {
	res := Resolution{Candidates: len(cands), ByCanonical: byCanonical}

	best := slices.MinFunc(cands, func(a, b int) int {
		return rank(idx.recs[a].Status) - rank(idx.recs[b].Status)
	})
	bestRank := rank(idx.recs[best].Status)

	for _, i := range cands {
		if rank(idx.recs[i].Status) != bestRank {
			continue
		}
		if idx.recs[i].AcceptedID != idx.recs[best].AcceptedID {
			res.Kind = Ambiguous
			return res
		}
	}

	r := idx.recs[best]
	res.Kind = Resolved
	res.Status = r.Status
	res.Typification = r.TypeRelation()
	res.AcceptedID = r.AcceptedID
	res.AcceptedNameWithAuthors = r.AcceptedNameWithAuthors
	res.AcceptedSpecies = r.AcceptedSpecies
	res.AcceptedGenus = r.AcceptedGenus
	if i, ok := idx.byID[r.AcceptedID]; ok {
		res.AcceptedKey = idx.keys[i]
	} else {
		res.AcceptedKey = idx.keyer.Key(r.AcceptedNameWithAuthors)
	}
	return res
}

func rank(st taxon.Status) int {
	switch {
	case st.IsAccepted():
		return 0
	case st.IsSynonym():
		return 1
	}
	return 2
}
