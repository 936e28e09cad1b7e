package aggregate

import (
	"errors"
	"math"
	"testing"

	"cartcompare/internal/run"
)

func mustRun(t *testing.T, source string, times []float64, fields map[string][]float64) *run.Run {
	t.Helper()
	r, err := run.New(source, times, fields)
	if err != nil {
		t.Fatalf("run.New(%s): %v", source, err)
	}
	return r
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResampleExactAndInterpolatedPoints(t *testing.T) {
	times := []float64{0, 10, 20}
	values := []float64{0, 100, 50}

	out, err := Resample(times, values, []float64{0, 5, 10, 15, 20})
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}

	want := []float64{0, 50, 100, 75, 50}
	for i := range want {
		if !approxEqual(out[i], want[i]) {
			t.Fatalf("point %d: expected %g, got %g", i, want[i], out[i])
		}
	}
}

func TestResampleFlatExtrapolation(t *testing.T) {
	times := []float64{5, 10}
	values := []float64{3, 7}

	out, err := Resample(times, values, []float64{0, 5, 12})
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if out[0] != 3 {
		t.Fatalf("before range: expected boundary value 3, got %g", out[0])
	}
	if out[2] != 7 {
		t.Fatalf("after range: expected boundary value 7, got %g", out[2])
	}
}

func TestResampleRejectsDecreasingTimes(t *testing.T) {
	_, err := Resample([]float64{0, 10, 5}, []float64{1, 2, 3}, []float64{0})
	var malformed *run.MalformedSeriesError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedSeriesError, got %v", err)
	}
}

func TestResampleRejectsEmptySeries(t *testing.T) {
	_, err := Resample(nil, nil, []float64{0})
	var malformed *run.MalformedSeriesError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedSeriesError, got %v", err)
	}
}

func TestReferenceAxisFirstRunTruncated(t *testing.T) {
	set := &run.Set{Runs: []*run.Run{
		mustRun(t, "a", []float64{0, 10, 20, 35}, map[string][]float64{"n": {1, 2, 3, 4}}),
		mustRun(t, "b", []float64{0, 15, 30}, map[string][]float64{"n": {1, 2, 3}}),
	}}

	axis, err := ReferenceAxis(set, AxisOptions{Mode: AxisFirst, MaxTime: 30})
	if err != nil {
		t.Fatalf("ReferenceAxis: %v", err)
	}

	want := []float64{0, 10, 20}
	if len(axis) != len(want) {
		t.Fatalf("expected %d axis points, got %d", len(want), len(axis))
	}
	for i := range want {
		if axis[i] != want[i] {
			t.Fatalf("axis point %d: expected %g, got %g", i, want[i], axis[i])
		}
	}
}

func TestReferenceAxisUnionDeduplicates(t *testing.T) {
	set := &run.Set{Runs: []*run.Run{
		mustRun(t, "a", []float64{0, 10, 20}, map[string][]float64{"n": {1, 2, 3}}),
		mustRun(t, "b", []float64{0, 5, 20}, map[string][]float64{"n": {1, 2, 3}}),
	}}

	axis, err := ReferenceAxis(set, AxisOptions{Mode: AxisUnion, MaxTime: 30})
	if err != nil {
		t.Fatalf("ReferenceAxis: %v", err)
	}

	want := []float64{0, 5, 10, 20}
	if len(axis) != len(want) {
		t.Fatalf("expected axis %v, got %v", want, axis)
	}
	for i := range want {
		if axis[i] != want[i] {
			t.Fatalf("axis point %d: expected %g, got %g", i, want[i], axis[i])
		}
	}
}

func TestReferenceAxisGridCoversRange(t *testing.T) {
	set := &run.Set{Runs: []*run.Run{
		mustRun(t, "a", []float64{0, 30}, map[string][]float64{"n": {1, 2}}),
	}}

	axis, err := ReferenceAxis(set, AxisOptions{Mode: AxisGrid, MaxTime: 30, GridPoints: 4})
	if err != nil {
		t.Fatalf("ReferenceAxis: %v", err)
	}

	want := []float64{0, 10, 20, 30}
	for i := range want {
		if !approxEqual(axis[i], want[i]) {
			t.Fatalf("axis point %d: expected %g, got %g", i, want[i], axis[i])
		}
	}
}

func TestReferenceAxisEmptySet(t *testing.T) {
	_, err := ReferenceAxis(&run.Set{}, AxisOptions{Mode: AxisFirst, MaxTime: 30})
	if !errors.Is(err, run.ErrEmptyRunSet) {
		t.Fatalf("expected ErrEmptyRunSet, got %v", err)
	}
}

func TestAggregateMeanAndPopulationStd(t *testing.T) {
	set := &run.Set{Runs: []*run.Run{
		mustRun(t, "a", []float64{0, 10}, map[string][]float64{"n": {10, 20}}),
		mustRun(t, "b", []float64{0, 10}, map[string][]float64{"n": {30, 50}}),
	}}
	axis := []float64{0, 10}

	series, err := Aggregate(set, "n", axis)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	wantMean := []float64{20, 35}
	wantStd := []float64{10, 15}
	for i := range axis {
		if !approxEqual(series.Mean[i], wantMean[i]) {
			t.Fatalf("mean at %g: expected %g, got %g", axis[i], wantMean[i], series.Mean[i])
		}
		if !approxEqual(series.Std[i], wantStd[i]) {
			t.Fatalf("std at %g: expected population std %g, got %g", axis[i], wantStd[i], series.Std[i])
		}
	}
	if series.Runs != 2 {
		t.Fatalf("expected 2 runs, got %d", series.Runs)
	}
}

func TestAggregateSingleRunHasZeroStd(t *testing.T) {
	set := &run.Set{Runs: []*run.Run{
		mustRun(t, "a", []float64{0, 10, 20}, map[string][]float64{"n": {5, 6, 7}}),
	}}
	axis := []float64{0, 10, 20}

	series, err := Aggregate(set, "n", axis)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	for i := range axis {
		if series.Mean[i] != []float64{5, 6, 7}[i] {
			t.Fatalf("mean at %g should equal the run's value, got %g", axis[i], series.Mean[i])
		}
		if series.Std[i] != 0 {
			t.Fatalf("std at %g: expected 0 for a single run, got %g", axis[i], series.Std[i])
		}
	}
}

func TestAggregateOrderInvariance(t *testing.T) {
	a := mustRun(t, "a", []float64{0, 10}, map[string][]float64{"n": {10, 20}})
	b := mustRun(t, "b", []float64{0, 10}, map[string][]float64{"n": {30, 50}})
	c := mustRun(t, "c", []float64{0, 10}, map[string][]float64{"n": {12, 44}})
	axis := []float64{0, 10}

	forward, err := Aggregate(&run.Set{Runs: []*run.Run{a, b, c}}, "n", axis)
	if err != nil {
		t.Fatalf("Aggregate forward: %v", err)
	}
	reversed, err := Aggregate(&run.Set{Runs: []*run.Run{c, b, a}}, "n", axis)
	if err != nil {
		t.Fatalf("Aggregate reversed: %v", err)
	}

	for i := range axis {
		if !approxEqual(forward.Mean[i], reversed.Mean[i]) {
			t.Fatalf("mean at %g depends on run order: %g vs %g", axis[i], forward.Mean[i], reversed.Mean[i])
		}
		if !approxEqual(forward.Std[i], reversed.Std[i]) {
			t.Fatalf("std at %g depends on run order: %g vs %g", axis[i], forward.Std[i], reversed.Std[i])
		}
	}
}

func TestAggregateMissingFieldFails(t *testing.T) {
	set := &run.Set{Runs: []*run.Run{
		mustRun(t, "a", []float64{0, 10}, map[string][]float64{"n": {1, 2}}),
	}}

	_, err := Aggregate(set, "absent", []float64{0, 10})
	var malformed *run.MalformedSeriesError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedSeriesError, got %v", err)
	}
}

func TestAggregateEmptySet(t *testing.T) {
	_, err := Aggregate(&run.Set{}, "n", []float64{0})
	if !errors.Is(err, run.ErrEmptyRunSet) {
		t.Fatalf("expected ErrEmptyRunSet, got %v", err)
	}
}

func TestAggregateRatioZeroDenominatorYieldsNaN(t *testing.T) {
	set := &run.Set{Runs: []*run.Run{
		mustRun(t, "a", []float64{0, 10}, map[string][]float64{
			"alive": {0, 5},
			"total": {0, 10},
		}),
	}}
	axis := []float64{0, 10}

	series, err := AggregateRatio(set, "alive", "total", axis)
	if err != nil {
		t.Fatalf("AggregateRatio: %v", err)
	}

	if !math.IsNaN(series.Mean[0]) {
		t.Fatalf("expected NaN where the denominator is zero, got %g", series.Mean[0])
	}
	if !approxEqual(series.Mean[1], 50) {
		t.Fatalf("expected 100*5/10 = 50, got %g", series.Mean[1])
	}
}
