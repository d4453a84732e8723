package trend

import (
	"math"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Test is the result of a correlation test.
type Test struct {
	// Name of the tested relationship ("WCVP", "Synonymisations (%)").
	Name string

	Statistic float64
	PValue    float64
}

// Ranks assigns ranks to values starting from 1. Ties get the average
// of ranks they span.
func Ranks(xs []float64) []float64 {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case xs[a] < xs[b]:
			return -1
		case xs[a] > xs[b]:
			return 1
		}
		return 0
	})

	res := make([]float64, len(xs))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && xs[idx[j+1]] == xs[idx[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			res[idx[k]] = avg
		}
		i = j + 1
	}
	return res
}

// Spearman returns the rank correlation coefficient of two samples of
// equal length. Constant samples give NaN.
func Spearman(x, y []float64) float64 {
	return stat.Correlation(Ranks(x), Ranks(y), nil)
}

// SpearmanTest computes the coefficient and a two-sided p-value from the
// t distribution with n-2 degrees of freedom.
func SpearmanTest(name string, x, y []float64) Test {
	r := Spearman(x, y)
	res := Test{Name: name, Statistic: r, PValue: math.NaN()}
	n := float64(len(x))
	if n < 3 || math.IsNaN(r) {
		return res
	}
	if math.Abs(r) >= 1 {
		res.PValue = 0
		return res
	}
	t := r * math.Sqrt((n-2)/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 2}
	res.PValue = 2 * dist.Survival(math.Abs(t))
	return res
}

// PermutationTest estimates a two-sided p-value of the Spearman
// coefficient by permuting x against fixed y. All permutations are
// enumerated when their number does not exceed resamples, otherwise
// resamples random permutations are drawn using seed.
func PermutationTest(name string, x, y []float64, resamples int, seed uint64) Test {
	r := Spearman(x, y)
	res := Test{Name: name, Statistic: r, PValue: math.NaN()}
	if len(x) < 2 || math.IsNaN(r) {
		return res
	}

	// tolerance for equal statistics computed in different order
	eps := 1e-14 * math.Max(1, math.Abs(r))
	ry := Ranks(y)
	perm := Ranks(x)

	var less, greater, total int
	count := func() {
		s := stat.Correlation(perm, ry, nil)
		if s <= r+eps {
			less++
		}
		if s >= r-eps {
			greater++
		}
		total++
	}

	exact := factorial(len(x)) <= float64(resamples)
	if exact {
		heapPermute(perm, len(perm), count)
		res.PValue = twoSided(float64(less)/float64(total),
			float64(greater)/float64(total))
		return res
	}

	rnd := rand.New(rand.NewPCG(seed, seed))
	for range resamples {
		rnd.Shuffle(len(perm), func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})
		count()
	}
	// observed statistic counts as one of the resamples
	n := float64(total + 1)
	res.PValue = twoSided(float64(less+1)/n, float64(greater+1)/n)
	return res
}

func twoSided(less, greater float64) float64 {
	return math.Min(1, 2*math.Min(less, greater))
}

func factorial(n int) float64 {
	res := 1.0
	for i := 2; i <= n; i++ {
		res *= float64(i)
	}
	return res
}

// heapPermute calls fn for every permutation of xs (Heap's algorithm).
func heapPermute(xs []float64, k int, fn func()) {
	if k <= 1 {
		fn()
		return
	}
	for i := 0; i < k-1; i++ {
		heapPermute(xs, k-1, fn)
		if k%2 == 0 {
			xs[i], xs[k-1] = xs[k-1], xs[i]
		} else {
			xs[0], xs[k-1] = xs[k-1], xs[0]
		}
	}
	heapPermute(xs, k-1, fn)
}

// Monotonic tests a series for a monotonic change of disagreements with
// the position of releases. The anchor point is excluded.
func Monotonic(s Series, resamples int, seed uint64) Test {
	pts := s.Observed()
	x := make([]float64, len(pts))
	y := make([]float64, len(pts))
	for i := range pts {
		x[i] = pts[i].Value
		y[i] = float64(i)
	}
	return PermutationTest(s.Name, x, y, resamples, seed)
}

// Correlations test relationships of discrepancies with synonymisation
// and resurrection rates.
func Correlations(rates []Rates) []Test {
	d := make([]float64, len(rates))
	syn := make([]float64, len(rates))
	res := make([]float64, len(rates))
	for i, r := range rates {
		d[i] = r.Discrepancy
		syn[i] = r.Synonymization
		res[i] = r.Resurrection
	}
	return []Test{
		SpearmanTest("Synonymisations (%)", syn, d),
		SpearmanTest("Resurrections (%)", res, d),
	}
}
