package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cartcompare/internal/aggregate"
	"cartcompare/internal/config"
	"cartcompare/internal/run"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func testConfig(t *testing.T) *config.ComparisonConfig {
	t.Helper()

	mineDir := t.TempDir()
	writeFile(t, mineDir, "run1.csv", "total_days,num_tumor_cells\n0,10\n1,20\n")
	writeFile(t, mineDir, "run2.csv", "total_days,num_tumor_cells\n0,30\n1,50\n")

	paperDir := t.TempDir()
	writeFile(t, paperDir, "run1.csv", "total_days,num_tumor_cells\n0,12\n1,22\n")
	writeFile(t, paperDir, "run2.csv", "total_days,num_tumor_cells\n0,28\n1,48\n")

	return &config.ComparisonConfig{
		Comparison: config.ComparisonInfo{
			Name:         "test",
			Days:         30,
			SDMultiplier: 1,
			Fields:       []string{"num_tumor_cells"},
		},
		Models: map[string]config.ModelConfig{
			"mine": {
				KeyName: "mine", Index: 0, Label: "CARTopiaX",
				Dir: mineDir, Pattern: "run%d.csv", Start: 1, Count: 2,
				Format: "csv", TimeColumn: "total_days", TimeUnit: "days",
			},
			"paper": {
				KeyName: "paper", Index: 1, Label: "Nature paper",
				Dir: paperDir, Pattern: "run%d.csv", Start: 1, Count: 2,
				Format: "csv", TimeColumn: "total_days", TimeUnit: "days",
			},
		},
	}
}

func TestDriverAggregate(t *testing.T) {
	cfg := testConfig(t)

	result, err := NewDriver(cfg, "raw config").Aggregate()
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	if len(result.Models) != 2 {
		t.Fatalf("expected 2 models, got %d", len(result.Models))
	}
	if result.Models[0].Key != "mine" || result.Models[1].Key != "paper" {
		t.Fatalf("models not ordered by index: %s, %s", result.Models[0].Key, result.Models[1].Key)
	}

	series := result.Models[0].Fields["num_tumor_cells"]
	if series == nil {
		t.Fatalf("missing aggregate for num_tumor_cells")
	}
	if series.Mean[0] != 20 || series.Mean[1] != 35 {
		t.Fatalf("expected means [20 35], got %v", series.Mean)
	}
	if series.Std[0] != 10 || series.Std[1] != 15 {
		t.Fatalf("expected population stds [10 15], got %v", series.Std)
	}
	if result.ConfigContent != "raw config" {
		t.Fatalf("config content not carried into the report")
	}
	if result.Generator != "cartcompare "+ToolVersion {
		t.Fatalf("unexpected generator %q", result.Generator)
	}
}

func TestDriverToleratesEmptyModel(t *testing.T) {
	cfg := testConfig(t)

	// Point one model at a directory with no replicate files at all.
	paper := cfg.Models["paper"]
	paper.Dir = t.TempDir()
	cfg.Models["paper"] = paper

	plotDir := t.TempDir()
	cfg.Comparison.Output = config.OutputConfig{PlotDir: plotDir}

	result, err := NewDriver(cfg, "").Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(result.Models) != 2 {
		t.Fatalf("expected both models in the report, got %d", len(result.Models))
	}
	empty := result.Models[1]
	if empty.Key != "paper" {
		t.Fatalf("expected the empty model second, got %s", empty.Key)
	}
	if empty.Load.Loaded != 0 || empty.Load.Requested != 2 {
		t.Fatalf("unexpected load record %+v", empty.Load)
	}
	if len(empty.Fields) != 0 {
		t.Fatalf("empty model must carry no aggregates, got %d", len(empty.Fields))
	}

	models := result.ModelSeriesFor("num_tumor_cells", false)
	if len(models) != 1 || models[0].Label != "CARTopiaX" {
		t.Fatalf("expected only the populated model to plot, got %+v", models)
	}

	// The populated model still renders.
	if _, err := os.Stat(filepath.Join(plotDir, "num_tumor_cells.tikz")); err != nil {
		t.Fatalf("expected plot file for the populated model: %v", err)
	}
}

func TestDriverSkipsCurveWithoutData(t *testing.T) {
	cfg := testConfig(t)
	for key, model := range cfg.Models {
		model.Dir = t.TempDir()
		cfg.Models[key] = model
	}

	plotDir := t.TempDir()
	cfg.Comparison.Output = config.OutputConfig{PlotDir: plotDir}

	result, err := NewDriver(cfg, "").Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Models) != 2 {
		t.Fatalf("expected both models in the report, got %d", len(result.Models))
	}
	entries, err := os.ReadDir(plotDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no plot files when no model has data, found %d", len(entries))
	}
}

func TestDriverRunWritesOutputs(t *testing.T) {
	cfg := testConfig(t)
	plotDir := t.TempDir()
	exportDir := t.TempDir()
	artifactDir := t.TempDir()
	cfg.Comparison.Output = config.OutputConfig{
		PlotDir:     plotDir,
		ExportDir:   exportDir,
		ArtifactDir: artifactDir,
	}

	if _, err := NewDriver(cfg, "").Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	tikz, err := os.ReadFile(filepath.Join(plotDir, "num_tumor_cells.tikz"))
	if err != nil {
		t.Fatalf("expected plot file: %v", err)
	}
	if !strings.Contains(string(tikz), "\\begin{tikzpicture}") {
		t.Fatalf("plot file does not look like TikZ:\n%s", tikz)
	}
	if _, err := os.Stat(filepath.Join(plotDir, "num_tumor_cells_wrapper.tex")); err != nil {
		t.Fatalf("expected wrapper file: %v", err)
	}

	exportFile := filepath.Join(exportDir, "test_mine_num_tumor_cells.csv")
	data, err := os.ReadFile(exportFile)
	if err != nil {
		t.Fatalf("expected export file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "time,mean,std" {
		t.Fatalf("unexpected export header %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("expected 2 data rows, got %d", len(lines)-1)
	}
	if lines[1] != "0,20,10" {
		t.Fatalf("unexpected first export row %q", lines[1])
	}

	entries, err := os.ReadDir(artifactDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one artifact, got %v (%v)", entries, err)
	}
	if !strings.HasSuffix(entries[0].Name(), ".json.gz") {
		t.Fatalf("unexpected artifact name %q", entries[0].Name())
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	dir := t.TempDir()

	original := &Report{
		Version:      1,
		CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Comparison:   "roundtrip",
		Days:         30,
		SDMultiplier: 2,
		AxisMode:     "first",
		Models: []*ModelReport{{
			Key:   "mine",
			Label: "CARTopiaX",
			Days:  30,
			Load:  &run.LoadReport{Requested: 2, Loaded: 2},
			Fields: map[string]*aggregate.Series{
				"n": {
					Axis: []float64{0, 1},
					Mean: []float64{math.NaN(), 35},
					Std:  []float64{0, 15},
					Runs: 2,
				},
			},
		}},
	}

	path, err := WriteArtifact(dir, original)
	if err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "comparison_roundtrip_") {
		t.Fatalf("unexpected artifact name %q", path)
	}

	decoded, err := ReadArtifact(path)
	if err != nil {
		t.Fatalf("ReadArtifact: %v", err)
	}
	if decoded.Comparison != "roundtrip" || decoded.SDMultiplier != 2 {
		t.Fatalf("metadata changed: %+v", decoded)
	}
	series := decoded.Models[0].Fields["n"]
	if series == nil {
		t.Fatalf("missing series after round trip")
	}
	if !math.IsNaN(series.Mean[0]) {
		t.Fatalf("expected NaN preserved, got %g", series.Mean[0])
	}
	if series.Mean[1] != 35 || series.Std[1] != 15 {
		t.Fatalf("values changed: mean %g, std %g", series.Mean[1], series.Std[1])
	}

	// No temp files may survive the atomic write.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the final artifact in %s, found %d entries", dir, len(entries))
	}
}

func TestWriteArtifactNilReport(t *testing.T) {
	if _, err := WriteArtifact(t.TempDir(), nil); err == nil {
		t.Fatalf("expected error for nil report")
	}
}
