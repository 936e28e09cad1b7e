package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"

	"cartcompare/internal/aggregate"
	"cartcompare/internal/logging"
)

// ExportReportCSV writes one CSV per model and curve with the aggregate
// values, named <comparison>_<model>_<curve>.csv.
func ExportReportCSV(exportPath string, report *Report) error {
	logger := logging.GetLogger()

	if err := os.MkdirAll(exportPath, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	written := 0
	for _, model := range report.Models {
		for name, series := range model.Fields {
			filename := filepath.Join(exportPath, fmt.Sprintf("%s_%s_%s.csv", report.Comparison, model.Key, name))
			if err := exportSeries(filename, series); err != nil {
				return fmt.Errorf("failed to export %s for model %s: %w", name, model.Key, err)
			}
			written++
		}
		for name, series := range model.Ratios {
			filename := filepath.Join(exportPath, fmt.Sprintf("%s_%s_%s.csv", report.Comparison, model.Key, name))
			if err := exportSeries(filename, series); err != nil {
				return fmt.Errorf("failed to export %s for model %s: %w", name, model.Key, err)
			}
			written++
		}
	}

	logger.WithFields(log.Fields{
		"export_path": exportPath,
		"files":       written,
	}).Info("Exported aggregate series to CSV")

	return nil
}

func exportSeries(filename string, series *aggregate.Series) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"time", "mean", "std"}); err != nil {
		return err
	}
	for i := range series.Axis {
		record := []string{
			strconv.FormatFloat(series.Axis[i], 'g', -1, 64),
			strconv.FormatFloat(series.Mean[i], 'g', -1, 64),
			strconv.FormatFloat(series.Std[i], 'g', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}
