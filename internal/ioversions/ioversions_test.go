package ioversions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/internal/iofs"
	"github.com/gnames/taxodrift/internal/ioversions"
	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/gnames/taxodrift/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	require.NoError(t, iofs.EnsureVersionsFile(home))

	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(home)})

	reg, err := ioversions.Load(cfg)
	require.NoError(t, err)
	require.Len(t, reg.Checklists, 2)

	wcvp, err := reg.Checklist("wcvp")
	require.NoError(t, err)
	assert.Equal(t, []string{"v10", "v11", "v12", "v13"}, wcvp.Tags())

	wfo, err := ioversions.Checklist(cfg, "wfo")
	require.NoError(t, err)
	v, err := wfo.Version("202312")
	require.NoError(t, err)
	assert.Equal(t, "latin1", v.Encoding)
	assert.Equal(t, "classification.csv", v.Member)
	r, err := v.Rune()
	require.NoError(t, err)
	assert.Equal(t, '\t', r)
	assert.Contains(t, wfo.Ranks, "genus")

	_, err = ioversions.Checklist(cfg, "col")
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.UnknownChecklistError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, checklist.ErrUnknownChecklist)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ioversions.LoadFile(filepath.Join(dir, "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")

	tests := []struct {
		name, yaml, msg string
	}{
		{"broken", "checklists: [", "failed to parse"},
		{"empty", "checklists: []", "no checklists"},
		{"order", `
checklists:
  - name: wcvp
    format: wcvp
    versions:
      - {tag: v11, date: 2023-04-01, source: b.csv}
      - {tag: v10, date: 2022-10-01, source: a.csv}
`, "older than"},
		{"format", `
checklists:
  - name: x
    format: dwca
    versions: []
`, "invalid format"},
	}
	for _, v := range tests {
		path := filepath.Join(dir, v.name+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(v.yaml), 0644))
		_, err = ioversions.LoadFile(path)
		require.Error(t, err, v.name)
		assert.Contains(t, err.Error(), v.msg, v.name)
	}
}

func TestSequence(t *testing.T) {
	cl := &checklist.Checklist{
		Name:   "wcvp",
		Format: checklist.WCVP,
		Versions: []checklist.Version{
			{Tag: "v10"}, {Tag: "v11"}, {Tag: "v12"},
		},
	}

	vs, err := ioversions.Sequence(cl, []string{"v10", "v12"})
	require.NoError(t, err)
	assert.Len(t, vs, 2)
	assert.Equal(t, "|", vs[0].Separator)

	_, err = ioversions.Sequence(cl, []string{"v12", "v10"})
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.VersionOrderError, gnErr.Code)

	_, err = ioversions.Sequence(cl, []string{"v9"})
	gnErr, ok = err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.UnknownVersionError, gnErr.Code)
}
