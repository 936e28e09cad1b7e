package forces

import (
	"strings"
	"testing"

	"cartcompare/internal/logging"
)

func traceRow(t, x, y, z, disp float64) []float64 {
	return []float64{t, x, y, z, 0, 0, 0, disp}
}

func TestGenerateFourPanels(t *testing.T) {
	g := NewGenerator(logging.GetLogger())

	rowsA := [][]float64{
		traceRow(0, 1, 2, 3, 0.5),
		traceRow(1, 1.1, 2.1, 3.1, 0.6),
	}
	rowsB := [][]float64{
		traceRow(0, 0.9, 1.9, 2.9, 0.4),
		traceRow(1, 1.0, 2.0, 3.0, 0.5),
	}

	out, err := g.Generate(PlotOptions{LabelA: "CARTopiaX", LabelB: "Nature paper"}, rowsA, rowsB)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, snippet := range []string{
		"group size=2 by 2",
		"title={ Time vs Coordinate X }",
		"title={ Time vs Coordinate Y }",
		"title={ Time vs Coordinate Z }",
		"title={ Time vs Displacement Norm }",
		"(1.000000,0.600000)",
	} {
		if !strings.Contains(out, snippet) {
			t.Fatalf("output missing %q:\n%s", snippet, out)
		}
	}
	if count := strings.Count(out, "\\addlegendentry{ CARTopiaX }"); count != 4 {
		t.Fatalf("expected 4 legend entries per model, got %d", count)
	}
}

func TestFilterTraceDropsNegativeXAndShiftsTime(t *testing.T) {
	rows := [][]float64{
		traceRow(0, -1, 0, 0, 0),
		traceRow(1, 2, 0, 0, 0),
	}

	filtered, err := filterTrace(rows, -0.1)
	if err != nil {
		t.Fatalf("filterTrace: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("expected 1 row after filtering, got %d", len(filtered))
	}
	if filtered[0][timeColumn] != 0.9 {
		t.Fatalf("expected shifted time 0.9, got %g", filtered[0][timeColumn])
	}
	// The input row must not be mutated by the shift.
	if rows[1][timeColumn] != 1 {
		t.Fatalf("input row mutated: %g", rows[1][timeColumn])
	}
}

func TestFilterTraceRejectsShortRows(t *testing.T) {
	if _, err := filterTrace([][]float64{{0, 1, 2}}, 0); err == nil {
		t.Fatalf("expected error for short row")
	}
}
