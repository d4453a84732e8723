package iopipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/internal/iocsv"
	"github.com/gnames/taxodrift/internal/iometrics"
	"github.com/gnames/taxodrift/internal/iopipeline"
	"github.com/gnames/taxodrift/internal/ioversions"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/gnames/taxodrift/pkg/drift"
	"github.com/gnames/taxodrift/pkg/lifecycle"
	"github.com/gnames/taxodrift/pkg/resolver"
	"github.com/gnames/taxodrift/pkg/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "taxonID\tscientificName\tscientificNameAuthorship\ttaxonRank\t" +
	"taxonomicStatus\tacceptedNameUsageID\tgenus\tspecificEpithet\n"

// Aus cus is sunk into Aus bus in r2 and comes back in r3, where Aus dus
// moves to it and Aus eus is transferred to Bus.
var releases = map[string]string{
	"r1": header +
		"1\tAus\tL.\tgenus\tAccepted\t\t\t\n" +
		"2\tAus bus\tL.\tspecies\tAccepted\t\tAus\tbus\n" +
		"3\tAus cus\tMill.\tspecies\tAccepted\t\tAus\tcus\n" +
		"4\tAus dus\tDC.\tspecies\tSynonym\t2\tAus\tdus\n" +
		"5\tAus eus\tPers.\tspecies\tAccepted\t\tAus\teus\n",
	"r2": header +
		"1\tAus\tL.\tgenus\tAccepted\t\t\t\n" +
		"2\tAus bus\tL.\tspecies\tAccepted\t\tAus\tbus\n" +
		"3\tAus cus\tMill.\tspecies\tSynonym\t2\tAus\tcus\n" +
		"4\tAus dus\tDC.\tspecies\tSynonym\t2\tAus\tdus\n" +
		"5\tAus eus\tPers.\tspecies\tAccepted\t\tAus\teus\n",
	"r3": header +
		"1\tAus\tL.\tgenus\tAccepted\t\t\t\n" +
		"2\tAus bus\tL.\tspecies\tAccepted\t\tAus\tbus\n" +
		"3\tAus cus\tMill.\tspecies\tAccepted\t\tAus\tcus\n" +
		"4\tAus dus\tDC.\tspecies\tSynonym\t3\tAus\tdus\n" +
		"5\tAus eus\tPers.\tspecies\tSynonym\t7\tAus\teus\n" +
		"6\tBus\tL.\tgenus\tAccepted\t\t\t\n" +
		"7\tBus eus\t(Pers.) L.\tspecies\tAccepted\t\tBus\teus\n",
}

func setup(t *testing.T) (*config.Config, lifecycle.Pipeline) {
	return setupWith(t, nil)
}

// setupWith lets a test modify the checklist before the pipeline is
// created.
func setupWith(
	t *testing.T,
	modify func(*checklist.Checklist),
) (*config.Config, lifecycle.Pipeline) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptBaseDir(t.TempDir()),
		config.OptHomeDir(t.TempDir()),
		config.OptJobsNumber(2),
	})

	cl := checklist.Checklist{
		Name:     "wfo",
		Format:   checklist.WFO,
		Statuses: []string{"Accepted", "Synonym"},
		Ranks:    []string{"genus", "species"},
		Versions: []checklist.Version{
			{Tag: "r1", Date: "2022-01-01", Source: "r1.txt"},
			{Tag: "r2", Date: "2022-06-01", Source: "r2.txt"},
			{Tag: "r3", Date: "2023-01-01", Source: "r3.txt"},
		},
	}
	dir := cfg.InputDir(cl.Name)
	require.Nil(t, os.MkdirAll(dir, 0755))
	for tag, data := range releases {
		err := os.WriteFile(filepath.Join(dir, tag+".txt"), []byte(data), 0644)
		require.Nil(t, err)
	}

	if modify != nil {
		modify(&cl)
	}
	reg := &checklist.Registry{Checklists: []checklist.Checklist{cl}}
	p := iopipeline.New(cfg, reg, iopipeline.OptProgress(false))
	t.Cleanup(p.Close)
	return cfg, p
}

func TestResolve(t *testing.T) {
	cfg, p := setup(t)
	ctx := context.Background()

	recs, err := p.Resolve(ctx, "wfo", "r3")
	require.Nil(t, err)
	require.Len(t, recs, 7)
	assert.FileExists(t, cfg.ResolvedPath("wfo", "r3"))

	for _, r := range recs {
		if r.NameWithAuthors == "Aus eus Pers." {
			assert.Equal(t, "Bus eus (Pers.) L.", r.AcceptedNameWithAuthors)
			assert.Equal(t, "Bus eus", r.AcceptedSpecies)
			assert.Equal(t, "Bus", r.AcceptedGenus)
		}
	}

	// saved table is reused
	cached, err := p.Resolve(ctx, "wfo", "r3")
	require.Nil(t, err)
	assert.Equal(t, len(recs), len(cached))

	_, err = p.Resolve(ctx, "wfo", "r9")
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.ErrorIs(t, gnErr.Err, checklist.ErrUnknownVersion)

	_, err = p.Resolve(ctx, "wcvp", "v10")
	gnErr, ok = err.(*gn.Error)
	require.True(t, ok)
	assert.ErrorIs(t, gnErr.Err, checklist.ErrUnknownChecklist)
}

func writeRelease(t *testing.T, cfg *config.Config, tag, data string) {
	path := filepath.Join(cfg.InputDir("wfo"), tag+".txt")
	require.Nil(t, os.WriteFile(path, []byte(data), 0644))
}

func TestResolveThreshold(t *testing.T) {
	dangling := releases["r1"] + "8\tAus fus\tL.\tspecies\tSynonym\t99\tAus\tfus\n"

	cfg, p := setupWith(t, func(cl *checklist.Checklist) {
		cl.Versions = append(cl.Versions, checklist.Version{
			Tag: "r4", Date: "2023-06-01", Source: "r4.txt",
		})
	})
	writeRelease(t, cfg, "r4", dangling)
	recs, err := p.Resolve(context.Background(), "wfo", "r4")
	require.Nil(t, err)
	assert.Len(t, recs, 5)

	zero := 0
	cfg, p = setupWith(t, func(cl *checklist.Checklist) {
		cl.Versions = append(cl.Versions, checklist.Version{
			Tag: "r4", Date: "2023-06-01", Source: "r4.txt", MaxUnresolved: &zero,
		})
	})
	writeRelease(t, cfg, "r4", dangling)
	_, err = p.Resolve(context.Background(), "wfo", "r4")
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.ErrorIs(t, gnErr.Err, resolver.ErrThreshold)
}

func TestComparePair(t *testing.T) {
	cfg, p := setup(t)
	res, err := p.Compare(context.Background(), "wfo", []string{"r1", "r3"})
	require.Nil(t, err)

	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 5, res.Compared())
	assert.Zero(t, res.DroppedInChain())
	require.Len(t, res.SpeciesDisagreements(), 1)
	row := res.SpeciesDisagreements()[0]
	assert.Equal(t, "Aus dus DC.", row.Name)
	assert.Equal(t, "Aus bus L.", row.ChainedAccepted)
	assert.Equal(t, "Aus cus Mill.", row.DirectAccepted)
	assert.Empty(t, res.GenusDisagreements())

	synonymized := res.Filter(func(r drift.Row) bool { return r.Synonymized })
	require.Len(t, synonymized, 1)
	assert.Equal(t, "Aus eus Pers.", synonymized[0].Name)

	dir := cfg.PairDir("wfo", "r1", "r3")
	for _, f := range []string{
		iocsv.ComparisonFile, iocsv.AllResultsFile, iocsv.SpeciesFile,
		iocsv.GenusFile, iocsv.UnresolvedFile, iocsv.CountsFile,
		iocsv.ChainStatsFile, iocsv.SummaryFile, iometrics.MetricsFile,
	} {
		assert.FileExists(t, filepath.Join(dir, f))
	}

	s, err := iocsv.ReadSummary(filepath.Join(dir, iocsv.SummaryFile))
	require.Nil(t, err)
	assert.Equal(t, "r1_r3", s.Label)
	m, ok := s.Get(summary.SpeciesDisagreements)
	require.True(t, ok)
	assert.Equal(t, 1, m.Count)
	assert.InDelta(t, 20, m.Percentage, 1e-9)

	metrics, err := os.ReadFile(filepath.Join(dir, iometrics.MetricsFile))
	require.Nil(t, err)
	assert.True(t, strings.Contains(string(metrics), "taxodrift_resolver_records"))
}

func TestCompareChain(t *testing.T) {
	cfg, p := setup(t)
	res, err := p.Compare(context.Background(), "wfo", []string{"r1", "r2", "r3"})
	require.Nil(t, err)

	require.Len(t, res.Hops, 2)
	assert.Equal(t, "r2", res.Hops[0].To)
	names := make([]string, 0, 2)
	for _, r := range res.SpeciesDisagreements() {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{"Aus cus Mill.", "Aus dus DC."}, names)

	dir := cfg.ChainPath("wfo")
	assert.FileExists(t, filepath.Join(dir, iocsv.HopFile(res.Hops[1])))

	_, err = p.Compare(context.Background(), "wfo", []string{"r3", "r1"})
	assert.NotNil(t, err)
	_, err = p.Compare(context.Background(), "wfo", []string{"r1"})
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.ErrorIs(t, gnErr.Err, drift.ErrChainLength)
}

func TestSummarize(t *testing.T) {
	cfg, p := setup(t)
	_, err := p.Compare(context.Background(), "wfo", []string{"r2", "r3"})
	require.Nil(t, err)

	s, err := p.Summarize(cfg.PairDir("wfo", "r2", "r3"))
	require.Nil(t, err)
	m, ok := s.Get(summary.SpeciesDisagreements)
	require.True(t, ok)
	assert.InDelta(t, 40, m.Percentage, 1e-9)

	_, err = p.Summarize(t.TempDir())
	assert.NotNil(t, err)
}

func TestChanges(t *testing.T) {
	cfg, p := setup(t)
	ctx := context.Background()
	_, err := p.Compare(ctx, "wfo", []string{"r1", "r3"})
	require.Nil(t, err)

	roll, err := p.Changes(ctx, "wfo", "r1", "r3")
	require.Nil(t, err)
	assert.Equal(t, "r1", roll.OldTag)
	assert.InDelta(t, 100.0/3, roll.Synonymization, 1e-9)
	assert.Zero(t, roll.Resurrection)

	dir := cfg.ChangesDir("wfo", "r1", "r3")
	for _, f := range []string{
		"species_differences_with_authors.csv",
		"species_differences_without_authors.csv",
		"accepted_to_unaccepted.csv",
		"unaccepted_to_accepted.csv",
		"resolve_in_old_not_in_new_with_authors.csv",
		"resolve_in_old_not_in_new_without_authors.csv",
		"names_resolve_in_old_not_in_new_without_authors.csv",
		"typification.csv",
		iocsv.RollupFile,
	} {
		assert.FileExists(t, filepath.Join(dir, f))
	}

	saved, err := iocsv.ReadRollup(filepath.Join(dir, iocsv.RollupFile))
	require.Nil(t, err)
	assert.InDelta(t, roll.Synonymization, saved.Synonymization, 1e-6)
}

func TestTrend(t *testing.T) {
	cfg, p := setup(t)
	err := p.Trend(context.Background(), nil)
	require.Nil(t, err)

	dir := cfg.PlotsDir()
	for _, f := range []string{
		"forwards.png", "backwards.png",
		"series_forwards.csv", "series_backwards.csv",
		"spearman_tests_forwards.csv", "spearman_tests_backwards.csv",
		"spearman_tests.csv", "synonymisations.png", "resurrections.png",
	} {
		assert.FileExists(t, filepath.Join(dir, f))
	}
	assert.FileExists(t, filepath.Join(cfg.PairDir("wfo", "r1", "r2"), iocsv.SummaryFile))
	assert.FileExists(t, filepath.Join(cfg.ChangesDir("wfo", "r2", "r3"), iocsv.RollupFile))
}

func TestTrendShortHistory(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptBaseDir(t.TempDir())})
	reg := &checklist.Registry{Checklists: []checklist.Checklist{
		{Name: "wcvp", Format: checklist.WCVP, Versions: []checklist.Version{
			{Tag: "v10", Date: "2022-10-01", Source: "v10.csv"},
		}},
	}}
	p := iopipeline.New(cfg, reg)
	defer p.Close()

	err := p.Trend(context.Background(), []string{"wcvp"})
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.ErrorIs(t, gnErr.Err, iopipeline.ErrShortHistory)

	_, err = ioversions.Find(reg, "wfo")
	assert.NotNil(t, err)
}
