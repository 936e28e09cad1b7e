package run

import (
	"errors"
	"testing"
)

func TestNewRejectsDecreasingTimes(t *testing.T) {
	_, err := New("x", []float64{0, 10, 5}, map[string][]float64{"n": {1, 2, 3}})
	var malformed *MalformedSeriesError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedSeriesError, got %v", err)
	}
}

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New("x", []float64{0, 10}, map[string][]float64{"n": {1}})
	var malformed *MalformedSeriesError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedSeriesError, got %v", err)
	}
}

func TestNewAllowsRepeatedTimes(t *testing.T) {
	r, err := New("x", []float64{0, 10, 10, 20}, map[string][]float64{"n": {1, 2, 3, 4}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Len() != 4 {
		t.Fatalf("expected 4 samples, got %d", r.Len())
	}
}

func TestFieldAbsent(t *testing.T) {
	r, err := New("x", []float64{0}, map[string][]float64{"n": {1}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = r.Field("absent")
	var malformed *MalformedSeriesError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedSeriesError, got %v", err)
	}
}

func TestTruncateKeepsSamplesUpToBound(t *testing.T) {
	r, err := New("x", []float64{0, 10, 20, 30}, map[string][]float64{"n": {1, 2, 3, 4}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	truncated := r.Truncate(20)
	if truncated.Len() != 3 {
		t.Fatalf("expected 3 samples after truncation, got %d", truncated.Len())
	}
	values, err := truncated.Field("n")
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	if values[2] != 3 {
		t.Fatalf("expected last kept value 3, got %g", values[2])
	}

	// A bound past the end keeps everything, one before the start keeps nothing.
	if r.Truncate(100).Len() != 4 {
		t.Fatalf("truncation past the end should keep all samples")
	}
	if r.Truncate(-1).Len() != 0 {
		t.Fatalf("truncation before the start should keep no samples")
	}
}

func TestSetTruncate(t *testing.T) {
	a, _ := New("a", []float64{0, 10, 40}, map[string][]float64{"n": {1, 2, 3}})
	b, _ := New("b", []float64{0, 50}, map[string][]float64{"n": {1, 2}})
	set := &Set{Runs: []*Run{a, b}}

	truncated := set.Truncate(30)
	if truncated.Runs[0].Len() != 2 {
		t.Fatalf("run a: expected 2 samples, got %d", truncated.Runs[0].Len())
	}
	if truncated.Runs[1].Len() != 1 {
		t.Fatalf("run b: expected 1 sample, got %d", truncated.Runs[1].Len())
	}
}

func TestSetSizeNilSafe(t *testing.T) {
	var set *Set
	if set.Size() != 0 {
		t.Fatalf("nil set should have size 0")
	}
}
