package exectimes

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"cartcompare/internal/run"
	"cartcompare/internal/stats"

	plotTemplate "cartcompare/internal/plot/exectimes/templates/plot"

	"github.com/sirupsen/logrus"
)

type Generator struct {
	logger *logrus.Logger
}

func NewGenerator(logger *logrus.Logger) *Generator {
	return &Generator{logger: logger}
}

type PlotOptions struct {
	// Categories are the dose column prefixes in display order,
	// e.g. 0doses, 1dose, 2doses.
	Categories []string
	// Models are the column suffixes, one series per model,
	// e.g. CARTopiaX, Nature.
	Models []string
}

var modelColors = []string{"blue!70!black", "red!70!black", "green!60!black", "orange"}

// Generate renders a min/mean/max whisker comparison of execution times per
// dose category. Column names follow the <category>_<model> convention of the
// batch timing exports, values are plotted in hours.
func (g *Generator) Generate(opts PlotOptions, times *run.ExecTimes) (string, error) {
	g.logger.WithFields(logrus.Fields{
		"categories": len(opts.Categories),
		"models":     len(opts.Models),
	}).Info("Generating execution time plot")

	var models []plotTemplate.ModelWhiskers
	for j, model := range opts.Models {
		color := modelColors[j%len(modelColors)]
		mw := plotTemplate.ModelWhiskers{Label: model, Color: color}

		for i, category := range opts.Categories {
			column := fmt.Sprintf("%s_%s", category, model)
			values, ok := times.Columns[column]
			if !ok {
				return "", &run.MalformedSeriesError{
					Reason: fmt.Sprintf("column %s is absent", column),
				}
			}

			summary, err := stats.Summarize(values)
			if err != nil {
				return "", fmt.Errorf("column %s: %w", column, err)
			}

			pos := float64(i)
			mw.Whiskers = append(mw.Whiskers, plotTemplate.Whisker{
				Pos:      fmt.Sprintf("%.2f", pos),
				CapLeft:  fmt.Sprintf("%.2f", pos-0.02),
				CapRight: fmt.Sprintf("%.2f", pos+0.02),
				Color:    color,
				Min:      fmt.Sprintf("%.4f", summary.Min/3600),
				Mean:     fmt.Sprintf("%.4f", summary.Mean/3600),
				Max:      fmt.Sprintf("%.4f", summary.Max/3600),
			})
		}

		models = append(models, mw)
	}

	ticks := make([]string, len(opts.Categories))
	labels := make([]string, len(opts.Categories))
	for i, category := range opts.Categories {
		ticks[i] = fmt.Sprintf("%d", i)
		labels[i] = categoryLabel(category)
	}

	data := &plotTemplate.PlotData{
		GeneratedDate: time.Now().Format("2006-01-02 15:04:05"),
		Ticks:         strings.Join(ticks, ","),
		TickLabels:    strings.Join(labels, ","),
		Models:        models,
	}

	tmpl, err := template.New("exectimes").Parse(plotTemplate.PlotTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse exectimes template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute exectimes template: %w", err)
	}

	g.logger.Info("Execution time plot generated successfully")
	return buf.String(), nil
}

// categoryLabel turns "0doses" into "0 doses" for tick display.
func categoryLabel(category string) string {
	for i, r := range category {
		if r < '0' || r > '9' {
			if i == 0 {
				return category
			}
			return category[:i] + " " + category[i:]
		}
	}
	return category
}
