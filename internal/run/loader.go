package run

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cartcompare/internal/logging"

	"github.com/sirupsen/logrus"
)

// CSVOptions controls loading of headered CSV run files.
type CSVOptions struct {
	// TimeColumn names the column holding the sample times.
	TimeColumn string
	// TimeDivisor converts the raw time values into the analysis unit,
	// e.g. 1440 for minutes -> days. Zero means no conversion.
	TimeDivisor float64
}

// LoadCSV loads one replicate from a headered CSV file. All columns are
// parsed as float64; header names are trimmed of surrounding whitespace since
// some simulator exports pad them.
func LoadCSV(path string, opts CSVOptions) (*Run, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &DataUnavailableError{Path: path}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, &MalformedSeriesError{Source: path, Reason: "no data rows"}
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	timeIdx := -1
	for i, name := range header {
		if name == opts.TimeColumn {
			timeIdx = i
			break
		}
	}
	if timeIdx < 0 {
		return nil, &MalformedSeriesError{
			Source: path,
			Reason: fmt.Sprintf("time column %s is absent", opts.TimeColumn),
		}
	}

	columns := make([][]float64, len(header))
	for i := range columns {
		columns[i] = make([]float64, 0, len(records)-1)
	}

	for rowNum, record := range records[1:] {
		if len(record) != len(header) {
			return nil, &MalformedSeriesError{
				Source: path,
				Reason: fmt.Sprintf("row %d has %d columns, expected %d", rowNum+2, len(record), len(header)),
			}
		}
		for i, cell := range record {
			value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &MalformedSeriesError{
					Source: path,
					Reason: fmt.Sprintf("row %d column %s: %v", rowNum+2, header[i], err),
				}
			}
			columns[i] = append(columns[i], value)
		}
	}

	return buildRun(path, header, columns, timeIdx, opts.TimeDivisor)
}

// DATOptions controls loading of whitespace-separated DAT run files, which
// carry no usable header and need caller-supplied column names.
type DATOptions struct {
	Columns     []string
	TimeColumn  string
	TimeDivisor float64
	SkipRows    int
}

// LoadDAT loads one replicate from a whitespace-separated file such as the
// reference model's DatosFinalesN.dat output.
func LoadDAT(path string, opts DATOptions) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &DataUnavailableError{Path: path}
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	timeIdx := -1
	for i, name := range opts.Columns {
		if name == opts.TimeColumn {
			timeIdx = i
			break
		}
	}
	if timeIdx < 0 {
		return nil, &MalformedSeriesError{
			Source: path,
			Reason: fmt.Sprintf("time column %s is absent", opts.TimeColumn),
		}
	}

	columns := make([][]float64, len(opts.Columns))
	lines := strings.Split(string(data), "\n")
	row := 0
	for lineNum, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if row < opts.SkipRows {
			row++
			continue
		}
		row++

		cells := strings.Fields(line)
		if len(cells) != len(opts.Columns) {
			return nil, &MalformedSeriesError{
				Source: path,
				Reason: fmt.Sprintf("line %d has %d columns, expected %d", lineNum+1, len(cells), len(opts.Columns)),
			}
		}
		for i, cell := range cells {
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, &MalformedSeriesError{
					Source: path,
					Reason: fmt.Sprintf("line %d column %s: %v", lineNum+1, opts.Columns[i], err),
				}
			}
			columns[i] = append(columns[i], value)
		}
	}

	return buildRun(path, opts.Columns, columns, timeIdx, opts.TimeDivisor)
}

func buildRun(path string, names []string, columns [][]float64, timeIdx int, timeDivisor float64) (*Run, error) {
	times := columns[timeIdx]
	if timeDivisor != 0 && timeDivisor != 1 {
		converted := make([]float64, len(times))
		for i, t := range times {
			converted[i] = t / timeDivisor
		}
		times = converted
	}

	fields := make(map[string][]float64, len(names))
	for i, name := range names {
		if i == timeIdx {
			continue
		}
		fields[name] = columns[i]
	}

	return New(path, times, fields)
}

// LoadReport records how a run set load went, so partial data is reported
// instead of silently mistaken for complete results.
type LoadReport struct {
	Requested int      `json:"requested"`
	Loaded    int      `json:"loaded"`
	Skipped   []string `json:"skipped,omitempty"`
}

// Loader loads a single replicate from a path.
type Loader func(path string) (*Run, error)

// LoadSet loads count numbered replicate files from dir. The pattern is a
// fmt pattern with one %d verb, applied to start, start+1, ... Missing files
// are warned and skipped; any other load error aborts the whole set.
func LoadSet(dir, pattern string, start, count int, load Loader) (*Set, *LoadReport, error) {
	logger := logging.GetLogger()

	set := &Set{}
	report := &LoadReport{Requested: count}

	for i := start; i < start+count; i++ {
		path := filepath.Join(dir, fmt.Sprintf(pattern, i))
		r, err := load(path)
		if err != nil {
			var unavailable *DataUnavailableError
			if errors.As(err, &unavailable) {
				logger.WithField("path", path).Warn("Run file not found, skipping")
				report.Skipped = append(report.Skipped, path)
				continue
			}
			return nil, nil, err
		}
		set.Runs = append(set.Runs, r)
		report.Loaded++
		logger.WithFields(logrus.Fields{
			"path":    path,
			"samples": r.Len(),
		}).Debug("Loaded run file")
	}

	return set, report, nil
}
