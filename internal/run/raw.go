package run

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadMatrix loads a headerless comma-separated numeric file as rows, e.g.
// a force/displacement trace where columns are positional.
func LoadMatrix(path string) ([][]float64, error) {
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

	rows := make([][]float64, 0, len(records))
	for rowNum, record := range records {
		row := make([]float64, len(record))
		for i, cell := range record {
			value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &MalformedSeriesError{
					Source: path,
					Reason: fmt.Sprintf("row %d column %d: %v", rowNum+1, i+1, err),
				}
			}
			row[i] = value
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// LoadColumns loads a headerless comma-separated file and names its columns,
// as the per-cell level exports are written.
func LoadColumns(path string, names []string) (map[string][]float64, error) {
	rows, err := LoadMatrix(path)
	if err != nil {
		return nil, err
	}

	columns := make(map[string][]float64, len(names))
	for _, name := range names {
		columns[name] = make([]float64, 0, len(rows))
	}

	for rowNum, row := range rows {
		if len(row) != len(names) {
			return nil, &MalformedSeriesError{
				Source: path,
				Reason: fmt.Sprintf("row %d has %d columns, expected %d", rowNum+1, len(row), len(names)),
			}
		}
		for i, name := range names {
			columns[name] = append(columns[name], row[i])
		}
	}

	return columns, nil
}

// LoadNamedColumn reads one column of a headered comma-separated file.
func LoadNamedColumn(path, name string) ([]float64, error) {
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

	idx := -1
	for i, header := range records[0] {
		if strings.TrimSpace(header) == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &MalformedSeriesError{
			Source: path,
			Reason: fmt.Sprintf("column %s is absent", name),
		}
	}

	values := make([]float64, 0, len(records)-1)
	for rowNum, record := range records[1:] {
		if idx >= len(record) {
			return nil, &MalformedSeriesError{
				Source: path,
				Reason: fmt.Sprintf("row %d has no column %s", rowNum+2, name),
			}
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
		if err != nil {
			return nil, &MalformedSeriesError{
				Source: path,
				Reason: fmt.Sprintf("row %d column %s: %v", rowNum+2, name, err),
			}
		}
		values = append(values, value)
	}

	return values, nil
}

// LoadVector loads a single-line comma-separated vector, e.g. a voxel
// density dump.
func LoadVector(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &DataUnavailableError{Path: path}
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return nil, &MalformedSeriesError{Source: path, Reason: "file is empty"}
	}

	cells := strings.Split(strings.TrimSpace(scanner.Text()), ",")
	vector := make([]float64, 0, len(cells))
	for i, cell := range cells {
		value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, &MalformedSeriesError{
				Source: path,
				Reason: fmt.Sprintf("position %d: %v", i, err),
			}
		}
		vector = append(vector, value)
	}

	return vector, nil
}
