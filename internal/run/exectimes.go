package run

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ExecTimes holds wall-clock execution times in seconds, one column per
// experimental condition (e.g. "0doses_CARTopiaX").
type ExecTimes struct {
	Columns map[string][]float64
	Order   []string
}

// ParseClockTime parses a shell `time` style string such as "517m13,098s"
// or "42m7.5s" into seconds. The decimal comma form is what the simulators'
// batch logs record.
func ParseClockTime(s string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	parts := strings.SplitN(normalized, "m", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q: missing minute separator", s)
	}

	minutes, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}

	secondsPart := strings.TrimSuffix(parts[1], "s")
	seconds, err := strconv.ParseFloat(secondsPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}

	return minutes*60 + seconds, nil
}

// LoadExecTimes loads a headered CSV of clock-time strings and converts every
// cell into seconds.
func LoadExecTimes(path string) (*ExecTimes, error) {
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

	times := &ExecTimes{Columns: make(map[string][]float64)}
	for _, name := range records[0] {
		name = strings.TrimSpace(name)
		times.Order = append(times.Order, name)
		times.Columns[name] = nil
	}

	for rowNum, record := range records[1:] {
		if len(record) != len(times.Order) {
			return nil, &MalformedSeriesError{
				Source: path,
				Reason: fmt.Sprintf("row %d has %d columns, expected %d", rowNum+2, len(record), len(times.Order)),
			}
		}
		for i, cell := range record {
			seconds, err := ParseClockTime(cell)
			if err != nil {
				return nil, &MalformedSeriesError{
					Source: path,
					Reason: fmt.Sprintf("row %d column %s: %v", rowNum+2, times.Order[i], err),
				}
			}
			name := times.Order[i]
			times.Columns[name] = append(times.Columns[name], seconds)
		}
	}

	return times, nil
}
