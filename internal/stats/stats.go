package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the min/mean/max triple the comparison tables and whisker
// plots are built from.
type Summary struct {
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
}

func Mean(xs []float64) float64 {
	return stat.Mean(xs, nil)
}

// PopStd is the population standard deviation (divisor N).
func PopStd(xs []float64) float64 {
	return stat.PopStdDev(xs, nil)
}

// SampleStd is the sample standard deviation (divisor N-1), used by the
// density bandwidth rule.
func SampleStd(xs []float64) float64 {
	return stat.StdDev(xs, nil)
}

func Summarize(xs []float64) (Summary, error) {
	if len(xs) == 0 {
		return Summary{}, fmt.Errorf("cannot summarize an empty sample")
	}
	return Summary{
		Min:  floats.Min(xs),
		Mean: stat.Mean(xs, nil),
		Max:  floats.Max(xs),
	}, nil
}

// KDE is a Gaussian kernel density estimate evaluated on a uniform grid.
type KDE struct {
	Grid    []float64
	Density []float64
}

// GaussianKDE estimates the probability density of xs with a Gaussian kernel
// and Scott's-rule bandwidth, evaluated on a grid of the given size extended
// three bandwidths past the sample range.
func GaussianKDE(xs []float64, points int) (*KDE, error) {
	if len(xs) < 2 {
		return nil, fmt.Errorf("kernel density estimate needs at least 2 samples, got %d", len(xs))
	}
	if points < 2 {
		return nil, fmt.Errorf("kernel density grid needs at least 2 points, got %d", points)
	}

	n := float64(len(xs))
	bw := SampleStd(xs) * math.Pow(n, -1.0/5.0)
	if bw <= 0 || math.IsNaN(bw) {
		return nil, fmt.Errorf("degenerate sample: bandwidth is %g", bw)
	}

	lo := floats.Min(xs) - 3*bw
	hi := floats.Max(xs) + 3*bw

	kde := &KDE{
		Grid:    make([]float64, points),
		Density: make([]float64, points),
	}
	step := (hi - lo) / float64(points-1)
	norm := 1.0 / (n * bw * math.Sqrt(2*math.Pi))
	for i := range kde.Grid {
		x := lo + float64(i)*step
		kde.Grid[i] = x

		sum := 0.0
		for _, xi := range xs {
			z := (x - xi) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		kde.Density[i] = norm * sum
	}

	return kde, nil
}
