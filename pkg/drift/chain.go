package drift

import (
	"context"

	"github.com/gnames/taxodrift/pkg/matcher"
)

// Compare compares two releases. It is a chain without intermediate
// releases, so chained and direct paths differ only in what is looked
// up in the new release: the old accepted name or the name itself.
func Compare(
	ctx context.Context,
	oldIdx, newIdx *matcher.Index,
) (*Result, error) {
	return Chain(ctx, []*matcher.Index{oldIdx, newIdx})
}

// Chain compares chained resolution of names through all releases of
// idxs with direct resolution in the last release. Indexes must be in
// chronological order and built with the same Keyer.
func Chain(ctx context.Context, idxs []*matcher.Index) (*Result, error) {
	if len(idxs) < 2 {
		return nil, ChainLengthError(len(idxs))
	}

	res := &Result{Tags: make([]string, len(idxs))}
	for i := range idxs {
		res.Tags[i] = idxs[i].Tag()
	}

	links, err := startLinks(ctx, idxs[0], res)
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(idxs); i++ {
		var hop Hop
		if hop, err = step(ctx, i, idxs[i-1].Tag(), idxs[i], links, res); err != nil {
			return nil, err
		}
		res.Hops = append(res.Hops, hop)
		links = hop.Links
	}

	last := idxs[len(idxs)-1]
	res.Rows = make([]Row, 0, len(links))
	for i, l := range links {
		if i%10_000 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		direct := last.Lookup(l.Key)
		if direct.Kind != matcher.Resolved {
			res.UnresolvedDirect++
			res.Misses = append(res.Misses, Miss{
				Name: l.Name, Stage: StageDirect, Tag: last.Tag(), Kind: direct.Kind,
			})
			continue
		}
		res.Rows = append(res.Rows, newRow(l, direct))
	}
	return res, nil
}

func startLinks(
	ctx context.Context,
	idx *matcher.Index,
	res *Result,
) ([]Link, error) {
	names := idx.Names()
	res.Total = len(names)

	links := make([]Link, 0, len(names))
	for i, n := range names {
		if i%10_000 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		old := idx.Lookup(n.Key)
		if old.Kind != matcher.Resolved {
			res.UnresolvedOld++
			res.Misses = append(res.Misses, Miss{
				Name: n.Text, Stage: StageOld, Tag: idx.Tag(), Kind: old.Kind,
			})
			continue
		}
		links = append(links, Link{Name: n.Text, Key: n.Key, Old: old, Current: old})
	}
	return links, nil
}

func step(
	ctx context.Context,
	number int,
	from string,
	idx *matcher.Index,
	links []Link,
	res *Result,
) (Hop, error) {
	hop := Hop{
		Number: number,
		From:   from,
		To:     idx.Tag(),
		In:     len(links),
		Links:  make([]Link, 0, len(links)),
	}

	for i, l := range links {
		if i%10_000 == 0 && ctx.Err() != nil {
			return hop, ctx.Err()
		}
		r := idx.Lookup(l.Current.AcceptedKey)
		switch r.Kind {
		case matcher.Resolved:
			l.Current = r
			hop.Links = append(hop.Links, l)
			continue
		case matcher.Ambiguous:
			hop.Ambiguous++
		default:
			hop.NotFound++
		}
		res.Misses = append(res.Misses, Miss{
			Name: l.Name, Stage: StageChain, Tag: idx.Tag(), Kind: r.Kind,
		})
	}
	hop.Out = len(hop.Links)
	return hop, nil
}

func newRow(l Link, direct matcher.Resolution) Row {
	chained := l.Current
	return Row{
		Name:                l.Name,
		OldStatus:           l.Old.Status,
		Typification:        l.Old.Typification,
		OldAccepted:         l.Old.AcceptedNameWithAuthors,
		OldAcceptedSpecies:  l.Old.AcceptedSpecies,
		ChainedAccepted:     chained.AcceptedNameWithAuthors,
		ChainedSpecies:      chained.AcceptedSpecies,
		ChainedGenus:        chained.AcceptedGenus,
		DirectStatus:        direct.Status,
		DirectAccepted:      direct.AcceptedNameWithAuthors,
		DirectSpecies:       direct.AcceptedSpecies,
		DirectGenus:         direct.AcceptedGenus,
		NameDisagreement:    chained.AcceptedNameWithAuthors != direct.AcceptedNameWithAuthors,
		SpeciesDisagreement: chained.AcceptedSpecies != direct.AcceptedSpecies,
		GenusDisagreement:   chained.AcceptedGenus != direct.AcceptedGenus,
		Resurrected:         !l.Old.Status.IsAccepted() && direct.Status.IsAccepted(),
		Synonymized:         l.Old.Status.IsAccepted() && !direct.Status.IsAccepted(),
	}
}
