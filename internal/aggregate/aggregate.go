package aggregate

import (
	"fmt"
	"math"
	"sort"

	"cartcompare/internal/run"

	"gonum.org/v1/gonum/stat"
)

// Series is one field's aggregate over a run set: mean and population
// standard deviation per point of the reference axis.
type Series struct {
	Axis []float64 `json:"axis"`
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
	Runs int       `json:"runs"`
}

// AxisMode selects how the reference time axis is built.
type AxisMode string

const (
	// AxisFirst takes the first run's truncated time sequence, matching the
	// historical behavior every published comparison was produced with.
	AxisFirst AxisMode = "first"
	// AxisUnion merges the truncated time points of all runs. Results are
	// not comparable with AxisFirst output.
	AxisUnion AxisMode = "union"
	// AxisGrid builds a uniform grid over the covered time range. Results
	// are not comparable with AxisFirst output.
	AxisGrid AxisMode = "grid"
)

// AxisOptions parameterizes ReferenceAxis.
type AxisOptions struct {
	Mode       AxisMode
	MaxTime    float64
	GridPoints int
}

// ReferenceAxis builds the time axis every run in the set is resampled onto.
// Runs are truncated to MaxTime before the axis is derived, so the axis never
// exceeds the bound.
func ReferenceAxis(set *run.Set, opts AxisOptions) ([]float64, error) {
	if set.Size() == 0 {
		return nil, run.ErrEmptyRunSet
	}

	truncated := set.Truncate(opts.MaxTime)

	switch opts.Mode {
	case AxisFirst, "":
		times := truncated.Runs[0].Times()
		axis := make([]float64, len(times))
		copy(axis, times)
		return axis, nil

	case AxisUnion:
		var union []float64
		for _, r := range truncated.Runs {
			union = append(union, r.Times()...)
		}
		sort.Float64s(union)
		axis := union[:0]
		for i, t := range union {
			if i == 0 || t != axis[len(axis)-1] {
				axis = append(axis, t)
			}
		}
		return axis, nil

	case AxisGrid:
		points := opts.GridPoints
		if points < 2 {
			return nil, fmt.Errorf("grid axis needs at least 2 points, got %d", points)
		}
		lo := math.Inf(1)
		hi := math.Inf(-1)
		for _, r := range truncated.Runs {
			times := r.Times()
			if len(times) == 0 {
				continue
			}
			if times[0] < lo {
				lo = times[0]
			}
			if times[len(times)-1] > hi {
				hi = times[len(times)-1]
			}
		}
		if lo > hi {
			return nil, nil
		}
		axis := make([]float64, points)
		step := (hi - lo) / float64(points-1)
		for i := range axis {
			axis[i] = lo + float64(i)*step
		}
		axis[points-1] = hi
		return axis, nil

	default:
		return nil, fmt.Errorf("unknown axis mode %q", opts.Mode)
	}
}

// Resample linearly interpolates (times, values) onto axis. Queries outside
// the observed time range return the boundary sample's value. The time
// sequence must be non-decreasing and non-empty.
func Resample(times, values, axis []float64) ([]float64, error) {
	if len(times) != len(values) {
		return nil, &run.MalformedSeriesError{
			Reason: fmt.Sprintf("time and value lengths differ (%d vs %d)", len(times), len(values)),
		}
	}
	if len(times) == 0 {
		return nil, &run.MalformedSeriesError{Reason: "cannot resample an empty series"}
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return nil, &run.MalformedSeriesError{
				Reason: fmt.Sprintf("time decreases at sample %d (%g -> %g)", i, times[i-1], times[i]),
			}
		}
	}

	last := len(times) - 1
	out := make([]float64, len(axis))
	for i, t := range axis {
		switch {
		case t <= times[0]:
			out[i] = values[0]
		case t >= times[last]:
			out[i] = values[last]
		default:
			j := sort.SearchFloat64s(times, t)
			if times[j] == t {
				out[i] = values[j]
				continue
			}
			t0, t1 := times[j-1], times[j]
			v0, v1 := values[j-1], values[j]
			out[i] = v0 + (v1-v0)*(t-t0)/(t1-t0)
		}
	}

	return out, nil
}

// ResampleField resamples one named field of a run onto axis.
func ResampleField(r *run.Run, field string, axis []float64) ([]float64, error) {
	values, err := r.Field(field)
	if err != nil {
		return nil, err
	}
	return Resample(r.Times(), values, axis)
}

// Aggregate resamples every run's field onto axis and reduces column-wise
// into mean and population standard deviation. The reduction is independent
// of run order.
func Aggregate(set *run.Set, field string, axis []float64) (*Series, error) {
	return aggregate(set, axis, func(r *run.Run) ([]float64, error) {
		return ResampleField(r, field, axis)
	})
}

// AggregateRatio aggregates the pointwise percentage 100*numerator/denominator.
// The ratio is computed per run before resampling; a zero denominator yields
// NaN, which propagates through the aggregate as missing data rather than an
// error.
func AggregateRatio(set *run.Set, numerator, denominator string, axis []float64) (*Series, error) {
	return aggregate(set, axis, func(r *run.Run) ([]float64, error) {
		num, err := r.Field(numerator)
		if err != nil {
			return nil, err
		}
		den, err := r.Field(denominator)
		if err != nil {
			return nil, err
		}

		ratio := make([]float64, len(num))
		for i := range num {
			if den[i] == 0 {
				ratio[i] = math.NaN()
				continue
			}
			ratio[i] = 100 * num[i] / den[i]
		}
		return Resample(r.Times(), ratio, axis)
	})
}

func aggregate(set *run.Set, axis []float64, resample func(*run.Run) ([]float64, error)) (*Series, error) {
	if set.Size() == 0 {
		return nil, run.ErrEmptyRunSet
	}

	stacked := make([][]float64, 0, set.Size())
	for _, r := range set.Runs {
		row, err := resample(r)
		if err != nil {
			return nil, err
		}
		stacked = append(stacked, row)
	}

	series := &Series{
		Axis: axis,
		Mean: make([]float64, len(axis)),
		Std:  make([]float64, len(axis)),
		Runs: len(stacked),
	}

	column := make([]float64, len(stacked))
	for i := range axis {
		for j, row := range stacked {
			column[j] = row[i]
		}
		series.Mean[i] = stat.Mean(column, nil)
		series.Std[i] = stat.PopStdDev(column, nil)
	}

	return series, nil
}
