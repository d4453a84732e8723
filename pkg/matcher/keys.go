package matcher

import (
	"context"
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/gnames/taxodrift/pkg/parserpool"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Key is the matching key of a name string. Two strings match when their
// Full keys are equal. Canonical keys ignore authorship and are used only
// by the canonical fallback.
type Key struct {
	Full      uuid.UUID
	Canonical uuid.UUID
}

// Keyer converts name strings to keys. All indexes that are compared
// with each other must use the same Keyer.
type Keyer interface {
	Key(name string) Key
}

type parserKeyer struct {
	pool parserpool.Pool
}

// NewParserKeyer creates a Keyer that normalizes names with gnparser.
// Parsed names get keys of their normalized and canonical forms,
// unparsed ones fall back to TextKeyer.
func NewParserKeyer(pool parserpool.Pool) Keyer {
	return parserKeyer{pool: pool}
}

func (k parserKeyer) Key(name string) Key {
	p := k.pool.Parse(name)
	if !p.Parsed || p.Normalized == "" {
		return TextKeyer{}.Key(name)
	}
	res := Key{Full: gnuuid.New(p.Normalized)}
	if p.Canonical != nil && p.Canonical.Simple != "" {
		res.Canonical = gnuuid.New(p.Canonical.Simple)
	}
	return res
}

// TextKeyer matches names after collapsing white space. It has no
// canonical keys.
type TextKeyer struct{}

func (TextKeyer) Key(name string) Key {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return Key{}
	}
	return Key{Full: gnuuid.New(name)}
}

// Keys calculates keys of names concurrently with jobs workers.
// The result has the same order as names.
func Keys(
	ctx context.Context,
	keyer Keyer,
	names []string,
	jobs int,
) ([]Key, error) {
	if jobs < 1 {
		jobs = 1
	}
	res := make([]Key, len(names))
	chIdx := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(chIdx)
		for i := range names {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIdx <- i:
			}
		}
		return nil
	})

	for range jobs {
		g.Go(func() error {
			for i := range chIdx {
				res[i] = keyer.Key(names[i])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
