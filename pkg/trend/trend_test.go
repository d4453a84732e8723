package trend_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/gnames/taxodrift/pkg/checklist"
	"github.com/gnames/taxodrift/pkg/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wcvp() *checklist.Checklist {
	return &checklist.Checklist{
		Name:   "wcvp",
		Format: checklist.WCVP,
		Versions: []checklist.Version{
			{Tag: "v10", Date: "2022-10-01"},
			{Tag: "v11", Date: "2023-04-01"},
			{Tag: "v12", Date: "2023-09-01"},
			{Tag: "v13", Date: "2024-05-01"},
		},
	}
}

func lookup(vals map[string]float64) trend.Lookup {
	return func(o, n string) (float64, error) {
		v, ok := vals[o+"_"+n]
		if !ok {
			return 0, fmt.Errorf("no summary for %s_%s", o, n)
		}
		return v, nil
	}
}

func TestForward(t *testing.T) {
	vals := map[string]float64{"v10_v11": 1.5, "v10_v12": 2.5, "v10_v13": 4}
	s, err := trend.Forward("WCVP", wcvp(), "v10", lookup(vals))
	require.Nil(t, err)
	assert.Equal(t, []float64{0, 1.5, 2.5, 4}, s.Values())
	assert.Equal(t, "v10", s.Points[0].Tag)
	assert.Equal(t, 2022, s.Points[0].Date.Year())
	assert.Len(t, s.Observed(), 3)
	assert.Equal(t, "v11", s.Observed()[0].Tag)

	_, err = trend.Forward("WCVP", wcvp(), "v12", lookup(vals))
	require.NotNil(t, err)

	_, err = trend.Forward("WCVP", wcvp(), "v99", lookup(vals))
	assert.True(t, errors.Is(err, checklist.ErrUnknownVersion))
}

func TestBackward(t *testing.T) {
	vals := map[string]float64{"v10_v13": 4, "v11_v13": 3, "v12_v13": 1}
	s, err := trend.Backward("WCVP", wcvp(), "v13", lookup(vals))
	require.Nil(t, err)
	assert.Equal(t, []float64{4, 3, 1, 0}, s.Values())
	obs := s.Observed()
	require.Len(t, obs, 3)
	assert.Equal(t, "v12", obs[2].Tag)
}

func TestRanks(t *testing.T) {
	assert.Equal(t, []float64{4, 1, 2.5, 2.5}, trend.Ranks([]float64{3, 1, 2, 2}))
	assert.Empty(t, trend.Ranks(nil))
}

func TestSpearman(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1, trend.Spearman(x, []float64{2, 4, 8, 16, 32}), 1e-12)
	assert.InDelta(t, -1, trend.Spearman(x, []float64{5, 4, 3, 2, 1}), 1e-12)
	assert.True(t, math.IsNaN(trend.Spearman(x, []float64{1, 1, 1, 1, 1})))

	res := trend.SpearmanTest("test", x, []float64{2, 4, 8, 16, 32})
	assert.Equal(t, "test", res.Name)
	assert.Zero(t, res.PValue)

	res = trend.SpearmanTest("test", x, []float64{2, 1, 4, 3, 5})
	assert.InDelta(t, 0.8, res.Statistic, 1e-12)
	assert.True(t, res.PValue > 0.05 && res.PValue < 0.2)
}

func TestPermutationTest(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		x := []float64{1, 2, 3, 4}
		res := trend.PermutationTest("exact", x, x, 1000, 1)
		assert.InDelta(t, 1, res.Statistic, 1e-12)
		assert.InDelta(t, 2.0/24, res.PValue, 1e-12)
	})

	t.Run("sampled", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
		y := []float64{0.5, 1, 1.2, 2, 2.1, 3, 4, 6}
		res1 := trend.PermutationTest("sampled", x, y, 1000, 42)
		res2 := trend.PermutationTest("sampled", x, y, 1000, 42)
		assert.Equal(t, res1, res2)
		assert.True(t, res1.PValue < 0.01)
	})

	t.Run("too short", func(t *testing.T) {
		res := trend.PermutationTest("short", []float64{1}, []float64{1}, 10, 1)
		assert.True(t, math.IsNaN(res.PValue))
	})
}

func TestMonotonic(t *testing.T) {
	s := trend.Series{
		Name:   "WCVP",
		Anchor: trend.AnchorFirst,
		Points: []trend.Point{
			{Value: 0}, {Value: 1}, {Value: 2}, {Value: 3}, {Value: 5},
		},
	}
	res := trend.Monotonic(s, 10000, 1)
	assert.InDelta(t, 1, res.Statistic, 1e-12)
	assert.InDelta(t, 2.0/24, res.PValue, 1e-12)
}

func TestCorrelations(t *testing.T) {
	rates := []trend.Rates{
		{Discrepancy: 1, Synonymization: 0.5, Resurrection: 3},
		{Discrepancy: 2, Synonymization: 0.7, Resurrection: 2},
		{Discrepancy: 3, Synonymization: 0.9, Resurrection: 1},
		{Discrepancy: 4, Synonymization: 1.3, Resurrection: 0.1},
	}
	res := trend.Correlations(rates)
	require.Len(t, res, 2)
	assert.Equal(t, "Synonymisations (%)", res[0].Name)
	assert.InDelta(t, 1, res[0].Statistic, 1e-12)
	assert.InDelta(t, -1, res[1].Statistic, 1e-12)
}
