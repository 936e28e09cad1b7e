package forces

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	plotTemplate "cartcompare/internal/plot/forces/templates/plot"

	"github.com/sirupsen/logrus"
)

// Column layout of the force trace files: time, coordinates, then the
// displacement norm in the last relevant column.
const (
	timeColumn         = 0
	coordXColumn       = 1
	coordYColumn       = 2
	coordZColumn       = 3
	displacementColumn = 7
	minColumns         = 8
)

type Generator struct {
	logger *logrus.Logger
}

func NewGenerator(logger *logrus.Logger) *Generator {
	return &Generator{logger: logger}
}

type PlotOptions struct {
	LabelA string
	LabelB string
	// TimeOffsetB shifts the second trace's time column, compensating for
	// the reference model logging half a step later.
	TimeOffsetB float64
}

// Generate renders the 2x2 trace comparison (x, y, z coordinates and
// displacement norm over time). Rows whose x coordinate is negative are
// dropped, as they mark samples before the tracked cell existed.
func (g *Generator) Generate(opts PlotOptions, rowsA, rowsB [][]float64) (string, error) {
	g.logger.WithFields(logrus.Fields{
		"rows_a": len(rowsA),
		"rows_b": len(rowsB),
	}).Info("Generating force trace plot")

	filteredA, err := filterTrace(rowsA, 0)
	if err != nil {
		return "", fmt.Errorf("%s: %w", opts.LabelA, err)
	}
	filteredB, err := filterTrace(rowsB, opts.TimeOffsetB)
	if err != nil {
		return "", fmt.Errorf("%s: %w", opts.LabelB, err)
	}

	panels := []struct {
		title  string
		ylabel string
		column int
	}{
		{"Time vs Coordinate X", "Coordinate X", coordXColumn},
		{"Time vs Coordinate Y", "Coordinate Y", coordYColumn},
		{"Time vs Coordinate Z", "Coordinate Z", coordZColumn},
		{"Time vs Displacement Norm", "Displacement Norm", displacementColumn},
	}

	data := &plotTemplate.PlotData{
		GeneratedDate: time.Now().Format("2006-01-02 15:04:05"),
		LabelA:        opts.LabelA,
		LabelB:        opts.LabelB,
		RowsA:         len(filteredA),
		RowsB:         len(filteredB),
	}

	for _, p := range panels {
		data.Panels = append(data.Panels, plotTemplate.Panel{
			Title:        p.title,
			YLabel:       p.ylabel,
			CoordinatesA: coordinates(filteredA, p.column),
			CoordinatesB: coordinates(filteredB, p.column),
		})
	}

	tmpl, err := template.New("forces").Parse(plotTemplate.PlotTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse forces template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute forces template: %w", err)
	}

	g.logger.Info("Force trace plot generated successfully")
	return buf.String(), nil
}

func filterTrace(rows [][]float64, timeOffset float64) ([][]float64, error) {
	filtered := make([][]float64, 0, len(rows))
	for i, row := range rows {
		if len(row) < minColumns {
			return nil, fmt.Errorf("row %d has %d columns, need at least %d", i+1, len(row), minColumns)
		}
		if row[coordXColumn] < 0 {
			continue
		}
		if timeOffset != 0 {
			shifted := make([]float64, len(row))
			copy(shifted, row)
			shifted[timeColumn] += timeOffset
			row = shifted
		}
		filtered = append(filtered, row)
	}
	return filtered, nil
}

func coordinates(rows [][]float64, column int) []string {
	coords := make([]string, 0, len(rows))
	for _, row := range rows {
		coords = append(coords, fmt.Sprintf("(%.6f,%.6f)", row[timeColumn], row[column]))
	}
	return coords
}
