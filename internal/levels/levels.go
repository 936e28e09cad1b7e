package levels

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cartcompare/internal/logging"
	"cartcompare/internal/run"
	"cartcompare/internal/stats"
)

// DefaultColumns names the per-cell level columns both simulators dump, in
// file order.
var DefaultColumns = []string{
	"oxygen_level",
	"oncoproteine_level",
	"base_transition_rate",
	"final_rate_transition",
	"probability_necrosis",
}

// ColumnSummary is one column's min/avg/max over a raw level file.
type ColumnSummary struct {
	Name string
	stats.Summary
}

// Process reduces a headerless per-cell level file to one summary per column.
func Process(path string, columns []string) ([]ColumnSummary, error) {
	data, err := run.LoadColumns(path, columns)
	if err != nil {
		return nil, err
	}

	summaries := make([]ColumnSummary, 0, len(columns))
	for _, name := range columns {
		summary, err := stats.Summarize(data[name])
		if err != nil {
			return nil, fmt.Errorf("column %s of %s: %w", name, path, err)
		}
		summaries = append(summaries, ColumnSummary{Name: name, Summary: summary})
	}

	return summaries, nil
}

// WriteProcessed writes column summaries as a single-row CSV with
// min_<col>, avg_<col>, max_<col> headers, the layout downstream comparison
// tooling reads back.
func WriteProcessed(path string, summaries []ColumnSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	var header, row []string
	for _, s := range summaries {
		header = append(header, "min_"+s.Name, "avg_"+s.Name, "max_"+s.Name)
		row = append(row,
			strconv.FormatFloat(s.Min, 'f', -1, 64),
			strconv.FormatFloat(s.Mean, 'f', -1, 64),
			strconv.FormatFloat(s.Max, 'f', -1, 64),
		)
	}

	if err := writer.Write(header); err != nil {
		return err
	}
	return writer.Write(row)
}

// ReadProcessed reads a processed summary file back as header -> value.
func ReadProcessed(path string) (map[string]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &run.DataUnavailableError{Path: path}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, &run.MalformedSeriesError{Source: path, Reason: "no data row"}
	}

	values := make(map[string]float64, len(records[0]))
	for i, name := range records[0] {
		value, err := strconv.ParseFloat(records[1][i], 64)
		if err != nil {
			return nil, &run.MalformedSeriesError{
				Source: path,
				Reason: fmt.Sprintf("column %s: %v", name, err),
			}
		}
		values[name] = value
	}

	return values, nil
}

// ProcessBatch processes numbered raw level files name0.csv .. name{count-1}.csv
// into outDir/name{i}_processed.csv, warning and skipping missing inputs.
// It returns how many files were processed.
func ProcessBatch(dir, name string, count int, outDir string, columns []string) (int, error) {
	logger := logging.GetLogger()

	processed := 0
	for i := 0; i < count; i++ {
		inPath := filepath.Join(dir, fmt.Sprintf("%s%d.csv", name, i))
		if _, err := os.Stat(inPath); os.IsNotExist(err) {
			logger.WithField("path", inPath).Warn("Level file not found, skipping")
			continue
		}

		summaries, err := Process(inPath, columns)
		if err != nil {
			return processed, err
		}

		outPath := filepath.Join(outDir, fmt.Sprintf("%s%d_processed.csv", name, i))
		if err := WriteProcessed(outPath, summaries); err != nil {
			return processed, fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		processed++
		logger.WithField("path", outPath).Debug("Wrote processed level summary")
	}

	return processed, nil
}
