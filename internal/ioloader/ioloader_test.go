package ioloader_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/internal/ioloader"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/gnames/taxodrift/pkg/taxon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const wfoData = "taxonID\tscientificName\tscientificNameAuthorship\ttaxonRank\t" +
	"taxonomicStatus\tacceptedNameUsageID\tgenus\tspecificEpithet\n" +
	"wfo-1\tAus\tL.\tGENUS\tAccepted\t\t\t\n" +
	"wfo-2\tAus bus\tL.\tSPECIES\tAccepted\t\tAus\tbus\n" +
	"wfo-3\tAus cus\tMill.\tSPECIES\tSynonym\twfo-2\tAus\tcus\n" +
	"wfo-4\tAceae\t\tFAMILY\tAccepted\t\t\t\n"

const wcvpData = "plant_name_id|taxon_name|taxon_authors|taxon_rank|" +
	"taxon_status|accepted_plant_name_id|genus|species|homotypic_synonym\n" +
	"1|Aus bus|L.|Species|Accepted||Aus|bus|\n" +
	"2|Aus cus|Mill.|Species|Synonym|1|Aus|cus|T\n" +
	"3|Aus dus|DC.|Species|Synonym|1|Aus|dus|\n"

func testConfig(t *testing.T) *config.Config {
	base := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptBaseDir(base),
		config.OptHomeDir(t.TempDir()),
		config.OptJobsNumber(2),
	})
	return cfg
}

func writeInput(t *testing.T, cfg *config.Config, cl, name string, data []byte) string {
	dir := cfg.InputDir(cl)
	require.Nil(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.Nil(t, os.WriteFile(path, data, 0644))
	return path
}

func wfoChecklist() *checklist.Checklist {
	return &checklist.Checklist{
		Name:     "wfo",
		Format:   checklist.WFO,
		Statuses: []string{"Accepted", "Synonym"},
		Ranks:    []string{"genus", "species", "family"},
	}
}

func TestLoadWFO(t *testing.T) {
	cfg := testConfig(t)
	writeInput(t, cfg, "wfo", "classification.txt", []byte(wfoData))
	cl := wfoChecklist()
	ld := ioloader.New(cfg, cl, ioloader.OptProgress(false))

	recs, err := ld.Load(context.Background(),
		checklist.Version{Tag: "202307", Source: "classification.txt"})
	require.Nil(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "Aus", recs[0].Genus)
	assert.Equal(t, "genus", recs[0].Rank)
	assert.Empty(t, recs[0].Species)

	assert.Equal(t, "Aus cus Mill.", recs[2].NameWithAuthors)
	assert.Equal(t, "Aus cus", recs[2].Species)
	assert.Equal(t, taxon.Synonym, recs[2].Status)
	assert.Equal(t, "wfo-2", recs[2].AcceptedUsageID)
}

func TestLoadWCVPZip(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.InputDir("wcvp"), "wcvp_v11.zip")
	require.Nil(t, os.MkdirAll(filepath.Dir(path), 0755))

	f, err := os.Create(path)
	require.Nil(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("README.txt")
	require.Nil(t, err)
	_, err = w.Write([]byte("not data"))
	require.Nil(t, err)
	w, err = zw.Create("wcvp/wcvp_names.csv")
	require.Nil(t, err)
	_, err = w.Write([]byte(wcvpData))
	require.Nil(t, err)
	require.Nil(t, zw.Close())
	require.Nil(t, f.Close())

	cl := &checklist.Checklist{Name: "wcvp", Format: checklist.WCVP}
	ld := ioloader.New(cfg, cl, ioloader.OptProgress(false))
	recs, err := ld.Load(context.Background(), checklist.Version{
		Tag: "v11", Source: "wcvp_v11.zip", Member: "wcvp_names.csv",
	})
	require.Nil(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, taxon.TypeUnknown, recs[0].Typification)
	assert.Equal(t, taxon.Homotypic, recs[1].Typification)
	assert.Equal(t, taxon.Heterotypic, recs[2].Typification)
	assert.Equal(t, "Aus dus", recs[2].Species)

	_, err = ld.Load(context.Background(), checklist.Version{
		Tag: "v11", Source: "wcvp_v11.zip", Member: "nothing.csv",
	})
	require.NotNil(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.ErrorIs(t, gnErr.Err, ioloader.ErrNoMember)
}

func TestLoadLatin1(t *testing.T) {
	cfg := testConfig(t)
	data := wfoData + "wfo-5\tAus müllerii\tMüll.Arg.\tSPECIES\tAccepted\t\tAus\tmüllerii\n"
	enc, err := charmap.ISO8859_1.NewEncoder().String(data)
	require.Nil(t, err)
	writeInput(t, cfg, "wfo", "classification.csv", []byte(enc))

	ld := ioloader.New(cfg, wfoChecklist(), ioloader.OptProgress(false))
	recs, err := ld.Load(context.Background(), checklist.Version{
		Tag: "202312", Source: "classification.csv", Encoding: "latin1",
	})
	require.Nil(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, "Aus müllerii Müll.Arg.", recs[3].NameWithAuthors)

	_, err = ld.Load(context.Background(), checklist.Version{
		Tag: "202312", Source: "classification.csv", Encoding: "koi8",
	})
	require.NotNil(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.ErrorIs(t, gnErr.Err, ioloader.ErrEncoding)
}

func TestLoadErrors(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		ld := ioloader.New(cfg, wfoChecklist(), ioloader.OptProgress(false))
		_, err := ld.Load(ctx, checklist.Version{Tag: "1", Source: "none.txt"})
		require.NotNil(t, err)
		_, ok := err.(*gn.Error)
		assert.True(t, ok)
	})

	t.Run("missing columns", func(t *testing.T) {
		writeInput(t, cfg, "wfo", "bad.txt", []byte("taxonID\tscientificName\nwfo-1\tAus\n"))
		ld := ioloader.New(cfg, wfoChecklist(), ioloader.OptProgress(false))
		_, err := ld.Load(ctx, checklist.Version{Tag: "1", Source: "bad.txt"})
		require.NotNil(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.ErrorIs(t, gnErr.Err, ioloader.ErrMissingColumns)
	})

	t.Run("unexpected status", func(t *testing.T) {
		writeInput(t, cfg, "wfo", "classification.txt", []byte(wfoData))
		cl := wfoChecklist()
		cl.Statuses = []string{"Accepted"}
		ld := ioloader.New(cfg, cl, ioloader.OptProgress(false))
		_, err := ld.Load(ctx, checklist.Version{Tag: "1", Source: "classification.txt"})
		require.NotNil(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.ErrorIs(t, gnErr.Err, ioloader.ErrVocabulary)
	})

	t.Run("unexpected rank", func(t *testing.T) {
		cl := wfoChecklist()
		cl.Ranks = []string{"genus"}
		ld := ioloader.New(cfg, cl, ioloader.OptProgress(false))
		_, err := ld.Load(ctx, checklist.Version{Tag: "1", Source: "classification.txt"})
		require.NotNil(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.ErrorIs(t, gnErr.Err, ioloader.ErrVocabulary)
	})
}

func TestLoadGlob(t *testing.T) {
	cfg := testConfig(t)
	writeInput(t, cfg, "wfo", "wfo_2023-06.txt", []byte("taxonID\n"))
	writeInput(t, cfg, "wfo", "wfo_2023-12.txt", []byte(wfoData))

	ld := ioloader.New(cfg, wfoChecklist(), ioloader.OptProgress(false))
	recs, err := ld.Load(context.Background(),
		checklist.Version{Tag: "202312", Source: "wfo_*.txt"})
	require.Nil(t, err)
	assert.Len(t, recs, 3)
}

func TestLoadAll(t *testing.T) {
	cfg := testConfig(t)
	writeInput(t, cfg, "wfo", "a.txt", []byte(wfoData))
	writeInput(t, cfg, "wfo", "b.txt", []byte(wfoData+"wfo-9\tAus dus\t\tSPECIES\tAccepted\t\tAus\tdus\n"))

	ld := ioloader.New(cfg, wfoChecklist())
	res, err := ld.LoadAll(context.Background(), []checklist.Version{
		{Tag: "a", Source: "a.txt"},
		{Tag: "b", Source: "b.txt"},
	})
	require.Nil(t, err)
	require.Len(t, res, 2)
	assert.Len(t, res[0], 3)
	assert.Len(t, res[1], 4)

	_, err = ld.LoadAll(context.Background(), []checklist.Version{
		{Tag: "a", Source: "a.txt"},
		{Tag: "c", Source: "c.txt"},
	})
	assert.NotNil(t, err)
}
