package matcher_test

import (
	"context"
	"testing"

	"github.com/gnames/taxodrift/pkg/matcher"
	"github.com/gnames/taxodrift/pkg/parserpool"
	"github.com/gnames/taxodrift/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolved(id, name, st, accID, accName string) taxon.Resolved {
	return taxon.Resolved{
		Record: taxon.Record{
			ID:              id,
			NameWithAuthors: name,
			Status:          taxon.NewStatus(st),
			RawStatus:       st,
		},
		AcceptedID:              accID,
		AcceptedNameWithAuthors: accName,
	}
}

func fixture() []taxon.Resolved {
	return []taxon.Resolved{
		resolved("1", "Rosa canina L.", "Accepted", "1", "Rosa canina L."),
		resolved("2", "Rosa lutetiana Léman", "Synonym", "1", "Rosa canina L."),
		resolved("3", "Rosa gallica L.", "Accepted", "3", "Rosa gallica L."),
		// same name listed as accepted and as synonym of another taxon
		resolved("4", "Rosa alba L.", "Accepted", "4", "Rosa alba L."),
		resolved("5", "Rosa alba L.", "Synonym", "3", "Rosa gallica L."),
		// same name as synonym of two taxa
		resolved("6", "Rosa dubia Wibel", "Synonym", "1", "Rosa canina L."),
		resolved("7", "Rosa dubia Wibel", "Synonym", "3", "Rosa gallica L."),
	}
}

func TestLookup(t *testing.T) {
	idx, err := matcher.New(
		context.Background(), "v1", fixture(), matcher.TextKeyer{}, 2,
	)
	require.NoError(t, err)
	assert.Equal(t, "v1", idx.Tag())
	assert.Equal(t, 7, idx.Len())

	tests := []struct {
		msg  string
		name string
		kind matcher.Kind
		acc  string
		st   taxon.Status
	}{
		{"accepted", "Rosa canina L.", matcher.Resolved, "Rosa canina L.", taxon.Accepted},
		{"extra spaces", "Rosa  canina   L.", matcher.Resolved, "Rosa canina L.", taxon.Accepted},
		{"synonym", "Rosa lutetiana Léman", matcher.Resolved, "Rosa canina L.", taxon.Synonym},
		{"accepted wins", "Rosa alba L.", matcher.Resolved, "Rosa alba L.", taxon.Accepted},
		{"ambiguous", "Rosa dubia Wibel", matcher.Ambiguous, "", taxon.Unknown},
		{"missing", "Rosa rubiginosa L.", matcher.NotFound, "", taxon.Unknown},
	}

	for _, v := range tests {
		res := idx.LookupName(v.name)
		assert.Equal(t, v.kind, res.Kind, v.msg)
		assert.Equal(t, v.acc, res.AcceptedNameWithAuthors, v.msg)
		assert.Equal(t, v.st, res.Status, v.msg)
	}
}

func TestAcceptedKey(t *testing.T) {
	idx, err := matcher.New(
		context.Background(), "v1", fixture(), matcher.TextKeyer{}, 1,
	)
	require.NoError(t, err)

	syn := idx.LookupName("Rosa lutetiana Léman")
	acc := idx.Lookup(syn.AcceptedKey)
	assert.Equal(t, matcher.Resolved, acc.Kind)
	assert.Equal(t, "1", acc.AcceptedID)
}

func TestNames(t *testing.T) {
	idx, err := matcher.New(
		context.Background(), "v1", fixture(), matcher.TextKeyer{}, 3,
	)
	require.NoError(t, err)

	var names []string
	for _, n := range idx.Names() {
		names = append(names, n.Text)
	}
	assert.Equal(t, []string{
		"Rosa canina L.", "Rosa lutetiana Léman", "Rosa gallica L.",
		"Rosa alba L.", "Rosa dubia Wibel",
	}, names)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "resolved", matcher.Resolved.String())
	assert.Equal(t, "ambiguous", matcher.Ambiguous.String())
	assert.Equal(t, "not_found", matcher.NotFound.String())
}

func TestParserKeyer(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()
	keyer := matcher.NewParserKeyer(pool)

	recs := []taxon.Resolved{
		resolved("1", "Bellis perennis L.", "Accepted", "1", "Bellis perennis L."),
	}

	t.Run("normalized authorship", func(t *testing.T) {
		idx, err := matcher.New(context.Background(), "v1", recs, keyer, 2)
		require.NoError(t, err)
		res := idx.LookupName("Bellis  perennis L.")
		assert.Equal(t, matcher.Resolved, res.Kind)
		assert.False(t, res.ByCanonical)

		res = idx.LookupName("Bellis perennis Linnaeus")
		assert.Equal(t, matcher.NotFound, res.Kind)
	})

	t.Run("canonical fallback", func(t *testing.T) {
		idx, err := matcher.New(
			context.Background(), "v1", recs, keyer, 2,
			matcher.OptCanonicalFallback(true),
		)
		require.NoError(t, err)
		res := idx.LookupName("Bellis perennis Linnaeus")
		assert.Equal(t, matcher.Resolved, res.Kind)
		assert.True(t, res.ByCanonical)
	})
}

func TestKeys(t *testing.T) {
	names := []string{"Aa bb", "Aa  bb", "Cc dd", ""}
	keys, err := matcher.Keys(context.Background(), matcher.TextKeyer{}, names, 3)
	require.NoError(t, err)
	require.Len(t, keys, 4)
	assert.Equal(t, keys[0], keys[1])
	assert.NotEqual(t, keys[0], keys[2])
	assert.Equal(t, matcher.Key{}, keys[3])
}
