package density

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"cartcompare/internal/stats"

	plotTemplate "cartcompare/internal/plot/density/templates/plot"

	"github.com/sirupsen/logrus"
)

const gridPoints = 200

type Generator struct {
	logger *logrus.Logger
}

func NewGenerator(logger *logrus.Logger) *Generator {
	return &Generator{logger: logger}
}

type PlotOptions struct {
	Column string
	XLabel string
	LabelA string
	LabelB string
}

// Generate renders a kernel density comparison of two samples of the same
// quantity, one curve per model, each with a dashed mean marker.
func (g *Generator) Generate(opts PlotOptions, samplesA, samplesB []float64) (string, error) {
	g.logger.WithFields(logrus.Fields{
		"column":    opts.Column,
		"samples_a": len(samplesA),
		"samples_b": len(samplesB),
	}).Info("Generating density plot")

	xLabel := opts.XLabel
	if xLabel == "" {
		xLabel = opts.Column
	}

	curveA, err := g.buildCurve(opts.LabelA, "blue", samplesA)
	if err != nil {
		return "", fmt.Errorf("%s: %w", opts.LabelA, err)
	}
	curveB, err := g.buildCurve(opts.LabelB, "red", samplesB)
	if err != nil {
		return "", fmt.Errorf("%s: %w", opts.LabelB, err)
	}

	data := &plotTemplate.PlotData{
		GeneratedDate: time.Now().Format("2006-01-02 15:04:05"),
		Column:        opts.Column,
		XLabel:        xLabel,
		LabelA:        opts.LabelA,
		LabelB:        opts.LabelB,
		CountA:        len(samplesA),
		CountB:        len(samplesB),
		MeanA:         fmt.Sprintf("%.2f", stats.Mean(samplesA)),
		MeanB:         fmt.Sprintf("%.2f", stats.Mean(samplesB)),
		Curves:        []plotTemplate.Curve{*curveA, *curveB},
	}

	tmpl, err := template.New("density").Parse(plotTemplate.PlotTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse density template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute density template: %w", err)
	}

	g.logger.Info("Density plot generated successfully")
	return buf.String(), nil
}

func (g *Generator) buildCurve(label, color string, samples []float64) (*plotTemplate.Curve, error) {
	kde, err := stats.GaussianKDE(samples, gridPoints)
	if err != nil {
		return nil, err
	}

	mean := stats.Mean(samples)
	peak := 0.0
	curve := &plotTemplate.Curve{
		Label:     label,
		Color:     color,
		Style:     color + ",thick,fill=" + color,
		Mean:      fmt.Sprintf("%.6f", mean),
		MeanLabel: fmt.Sprintf("%.2f", mean),
	}
	for i, x := range kde.Grid {
		curve.Coordinates = append(curve.Coordinates, fmt.Sprintf("(%.6f,%.8f)", x, kde.Density[i]))
		if kde.Density[i] > peak {
			peak = kde.Density[i]
		}
	}
	curve.PeakDensity = fmt.Sprintf("%.8f", peak)

	return curve, nil
}
