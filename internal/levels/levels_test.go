package levels

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestProcessWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	columns := []string{"oxygen_level", "probability_necrosis"}
	path := writeFile(t, dir, "levels0.csv",
		"10,0.1\n"+
			"30,0.3\n"+
			"20,0.2\n")

	summaries, err := Process(path, columns)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	oxygen := summaries[0]
	if oxygen.Name != "oxygen_level" || oxygen.Min != 10 || oxygen.Max != 30 || oxygen.Mean != 20 {
		t.Fatalf("unexpected oxygen summary: %+v", oxygen)
	}

	out := filepath.Join(dir, "levels0_processed.csv")
	if err := WriteProcessed(out, summaries); err != nil {
		t.Fatalf("WriteProcessed: %v", err)
	}

	values, err := ReadProcessed(out)
	if err != nil {
		t.Fatalf("ReadProcessed: %v", err)
	}
	if values["min_oxygen_level"] != 10 {
		t.Fatalf("expected min_oxygen_level 10, got %g", values["min_oxygen_level"])
	}
	if math.Abs(values["avg_probability_necrosis"]-0.2) > 1e-9 {
		t.Fatalf("expected avg_probability_necrosis 0.2, got %g", values["avg_probability_necrosis"])
	}
}

func TestProcessBatchSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	columns := []string{"a", "b"}
	writeFile(t, dir, "levels0.csv", "1,2\n3,4\n")
	// levels1.csv intentionally absent
	writeFile(t, dir, "levels2.csv", "5,6\n7,8\n")

	processed, err := ProcessBatch(dir, "levels", 3, out, columns)
	if err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if processed != 2 {
		t.Fatalf("expected 2 processed files, got %d", processed)
	}
	if _, err := os.Stat(filepath.Join(out, "levels2_processed.csv")); err != nil {
		t.Fatalf("expected levels2_processed.csv: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "levels1_processed.csv")); !os.IsNotExist(err) {
		t.Fatalf("levels1_processed.csv should not exist")
	}
}

func TestWriteCompareTableLayout(t *testing.T) {
	mine := map[string]float64{
		"min_oxygen_level": 1, "avg_oxygen_level": 2, "max_oxygen_level": 3,
	}
	theirs := map[string]float64{
		"min_oxygen_level": 4, "avg_oxygen_level": 5, "max_oxygen_level": 6,
	}
	metrics := []Metric{{Label: "Oxygen level", Key: "oxygen_level"}}

	var sb strings.Builder
	if err := WriteCompareTable(&sb, 2, mine, theirs, metrics); err != nil {
		t.Fatalf("WriteCompareTable: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "Comparison for simulation 2:") {
		t.Fatalf("missing header in output:\n%s", out)
	}
	if !strings.Contains(out, "Oxygen level") {
		t.Fatalf("missing metric row in output:\n%s", out)
	}
	if !strings.Contains(out, "1.000000") || !strings.Contains(out, "6.000000") {
		t.Fatalf("missing values in output:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("-", 97)) {
		t.Fatalf("missing separator line in output:\n%s", out)
	}
}

func TestCompareVectors(t *testing.T) {
	diffs := CompareVectors([]float64{1, 2, 3}, []float64{1, 9, 3})
	if len(diffs) != 1 {
		t.Fatalf("expected 1 difference, got %d", len(diffs))
	}
	if diffs[0].Index != 1 || diffs[0].A != 2 || diffs[0].B != 9 {
		t.Fatalf("unexpected diff: %+v", diffs[0])
	}

	if diffs := CompareVectors([]float64{1, 2}, []float64{1, 2}); diffs != nil {
		t.Fatalf("identical vectors should produce no diffs, got %v", diffs)
	}
}

func TestCompareVectorsLengthMismatch(t *testing.T) {
	diffs := CompareVectors([]float64{1, 2, 3}, []float64{1})
	if len(diffs) != 2 {
		t.Fatalf("expected 2 differences, got %d", len(diffs))
	}
	last := diffs[len(diffs)-1]
	if last.Index != 2 || last.A != 3 || last.B != 0 {
		t.Fatalf("unexpected tail diff: %+v", last)
	}
}
