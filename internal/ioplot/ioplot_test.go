package ioplot_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/taxodrift/internal/ioplot"
	"github.com/gnames/taxodrift/pkg/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m int) time.Time {
	return time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
}

func TestLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forwards.png")
	ss := []trend.Series{
		{Name: "WCVP", Points: []trend.Point{
			{Tag: "v10", Date: date(2022, 10)},
			{Tag: "v11", Date: date(2023, 4), Value: 1.5},
			{Tag: "v12", Date: date(2023, 9), Value: 2.5},
		}},
		{Name: "WFO", Points: []trend.Point{
			{Tag: "202207", Date: date(2022, 7)},
			{Tag: "202306", Date: date(2023, 6), Value: 3},
		}},
		{Name: "empty"},
	}
	require.Nil(t, ioplot.Lines(path, "Forward", ss))

	info, err := os.Stat(path)
	require.Nil(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestScatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonymisation.png")
	rates := []trend.Rates{
		{Label: "v10_v11", Discrepancy: 1, Synonymization: 2},
		{Label: "v11_v12", Discrepancy: 2, Synonymization: 3},
		{Label: "v12_v13", Discrepancy: 4, Synonymization: 5},
	}
	tests := trend.Correlations(rates)
	syn := func(r trend.Rates) float64 { return r.Synonymization }
	require.Nil(t, ioplot.Scatter(path, "Synonymisations (%)", rates, syn, tests[0]))
	assert.FileExists(t, path)

	err := ioplot.Scatter(filepath.Join(t.TempDir(), "plot.xyz"), "x", rates, syn, tests[0])
	assert.NotNil(t, err)
}

func TestScatterNaN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resurrection.png")
	rates := []trend.Rates{
		{Label: "v10_v11", Discrepancy: math.NaN(), Resurrection: 1},
		{Label: "v11_v12", Discrepancy: 2, Resurrection: 3},
	}
	res := func(r trend.Rates) float64 { return r.Resurrection }
	test := trend.Test{Name: "Resurrections (%)", PValue: math.NaN()}
	require.Nil(t, ioplot.Scatter(path, "Resurrections (%)", rates, res, test))
	assert.FileExists(t, path)
}
