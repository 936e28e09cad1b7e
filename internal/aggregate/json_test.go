package aggregate

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestSeriesJSONRoundTripPreservesNaN(t *testing.T) {
	series := &Series{
		Axis: []float64{0, 10},
		Mean: []float64{math.NaN(), 50},
		Std:  []float64{math.NaN(), 2.5},
		Runs: 3,
	}

	data, err := json.Marshal(series)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "null") {
		t.Fatalf("expected NaN encoded as null, got %s", data)
	}

	var decoded Series
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !math.IsNaN(decoded.Mean[0]) {
		t.Fatalf("expected NaN after round trip, got %g", decoded.Mean[0])
	}
	if decoded.Mean[1] != 50 || decoded.Std[1] != 2.5 {
		t.Fatalf("finite values changed: mean %g, std %g", decoded.Mean[1], decoded.Std[1])
	}
	if decoded.Runs != 3 {
		t.Fatalf("expected 3 runs, got %d", decoded.Runs)
	}
}
