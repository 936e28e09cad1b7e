package timeseries

import (
	"bytes"
	"fmt"
	"math"
	"text/template"
	"time"

	"cartcompare/internal/aggregate"
	"cartcompare/internal/plot/timeseries/mappings"
	plotTemplate "cartcompare/internal/plot/timeseries/templates/plot"
	wrapperTemplate "cartcompare/internal/plot/timeseries/templates/wrapper"

	"github.com/sirupsen/logrus"
)

type Generator struct {
	logger *logrus.Logger
}

func NewGenerator(logger *logrus.Logger) *Generator {
	return &Generator{logger: logger}
}

// ModelSeries is one model's aggregate for the plotted field.
type ModelSeries struct {
	Label   string
	Index   int
	Skipped int
	Series  *aggregate.Series
}

type PlotOptions struct {
	ComparisonName string
	Description    string
	Field          string
	IsRatio        bool
	Days           float64
	SDMultiplier   float64
	AxisMode       string
	MinOverride    *float64
	MaxOverride    *float64
}

// Generate renders the mean/std-band comparison plot for one field plus its
// LaTeX wrapper.
func (g *Generator) Generate(opts PlotOptions, models []ModelSeries) (string, string, error) {
	g.logger.WithFields(logrus.Fields{
		"comparison":    opts.ComparisonName,
		"field":         opts.Field,
		"sd_multiplier": opts.SDMultiplier,
		"models":        len(models),
	}).Info("Generating timeseries plot")

	if len(models) == 0 {
		return "", "", fmt.Errorf("no model series to plot for field %s", opts.Field)
	}

	var mapping mappings.FieldMapping
	if opts.IsRatio {
		mapping = mappings.GetRatioMapping(opts.Field)
	} else {
		mapping = mappings.GetFieldMapping(opts.Field)
	}
	xMapping := mappings.GetFieldMapping("total_days")

	plotData, err := g.preparePlotData(opts, models, xMapping, mapping)
	if err != nil {
		return "", "", fmt.Errorf("failed to prepare plot data: %w", err)
	}

	wrapperData := g.prepareWrapperData(opts, mapping)

	plotOutput, err := renderTemplate("plot", plotTemplate.PlotTemplate, plotData)
	if err != nil {
		return "", "", fmt.Errorf("failed to render plot: %w", err)
	}

	wrapperOutput, err := renderTemplate("wrapper", wrapperTemplate.WrapperTemplate, wrapperData)
	if err != nil {
		return "", "", fmt.Errorf("failed to render wrapper: %w", err)
	}

	g.logger.Info("Timeseries plot generated successfully")
	return plotOutput, wrapperOutput, nil
}

func (g *Generator) preparePlotData(
	opts PlotOptions,
	models []ModelSeries,
	xMapping, yMapping mappings.FieldMapping,
) (*plotTemplate.PlotData, error) {

	yMin := math.Inf(1)
	yMax := math.Inf(-1)
	xMin := math.Inf(1)
	xMax := math.Inf(-1)

	var plotSeries []plotTemplate.PlotSeries
	for _, model := range models {
		series := model.Series
		if series == nil || len(series.Axis) == 0 {
			g.logger.WithField("model", model.Label).Warn("Model has no aggregate data, skipping series")
			continue
		}

		style := mappings.GetModelStyle(model.Index)
		ps := plotTemplate.PlotSeries{
			Label:       model.Label,
			Runs:        series.Runs,
			Skipped:     model.Skipped,
			Style:       style.ToTikzOptions(),
			BandStyle:   style.ToBandOptions(),
			UpperName:   fmt.Sprintf("upper%d", model.Index),
			LowerName:   fmt.Sprintf("lower%d", model.Index),
			LegendEntry: fmt.Sprintf("%s (Mean)", model.Label),
		}

		for i, t := range series.Axis {
			mean := series.Mean[i]
			band := opts.SDMultiplier * series.Std[i]
			if !isFinite(t) || !isFinite(mean) || !isFinite(band) {
				continue
			}

			ps.MeanCoordinates = append(ps.MeanCoordinates, fmt.Sprintf("(%.6f,%.6f)", t, mean))
			ps.UpperCoordinates = append(ps.UpperCoordinates, fmt.Sprintf("(%.6f,%.6f)", t, mean+band))
			ps.LowerCoordinates = append(ps.LowerCoordinates, fmt.Sprintf("(%.6f,%.6f)", t, mean-band))

			xMin = math.Min(xMin, t)
			xMax = math.Max(xMax, t)
			yMin = math.Min(yMin, mean-band)
			yMax = math.Max(yMax, mean+band)
		}

		if len(ps.MeanCoordinates) > 0 {
			plotSeries = append(plotSeries, ps)
		}
	}

	if len(plotSeries) == 0 {
		return nil, fmt.Errorf("no finite data points for field %s", opts.Field)
	}

	xMinStr, xMaxStr := determineAxisLimits(xMapping, nil, nil, xMin, xMax)
	yMinStr, yMaxStr := determineAxisLimits(yMapping, opts.MinOverride, opts.MaxOverride, yMin, yMax)

	return &plotTemplate.PlotData{
		GeneratedDate:  time.Now().Format("2006-01-02 15:04:05"),
		ComparisonName: opts.ComparisonName,
		Description:    opts.Description,
		Field:          opts.Field,
		Days:           opts.Days,
		SDMultiplier:   opts.SDMultiplier,
		AxisMode:       opts.AxisMode,
		Title:          yMapping.Label,
		XLabel:         xMapping.Label,
		YLabel:         yMapping.Label,
		XMin:           xMinStr,
		XMax:           xMaxStr,
		YMin:           yMinStr,
		YMax:           yMaxStr,
		Plots:          plotSeries,
	}, nil
}

func (g *Generator) prepareWrapperData(opts PlotOptions, yMapping mappings.FieldMapping) *wrapperTemplate.WrapperData {
	return &wrapperTemplate.WrapperData{
		GeneratedDate:  time.Now().Format("2006-01-02 15:04:05"),
		ComparisonName: opts.ComparisonName,
		Field:          opts.Field,
		PlotFileName:   fmt.Sprintf("%s-%s.tikz", opts.ComparisonName, opts.Field),
		ShortCaption:   yMapping.ShortLabel,
		Caption:        fmt.Sprintf("The %s per model, mean over repeated runs with a %g$\\sigma$ band", yMapping.Label, opts.SDMultiplier),
	}
}

func determineAxisLimits(
	mapping mappings.FieldMapping,
	minOverride, maxOverride *float64,
	dataMin, dataMax float64,
) (string, string) {
	var minStr, maxStr string

	if minOverride != nil {
		minStr = fmt.Sprintf("%.2f", *minOverride)
	} else if minVal, ok := mapping.Min.(float64); ok {
		minStr = fmt.Sprintf("%.2f", minVal)
	} else if mapping.Min == "auto" {
		minStr = fmt.Sprintf("%.2f", dataMin*0.95)
	} else {
		minStr = "0"
	}

	if maxOverride != nil {
		maxStr = fmt.Sprintf("%.2f", *maxOverride)
	} else if maxVal, ok := mapping.Max.(float64); ok {
		maxStr = fmt.Sprintf("%.2f", maxVal)
	} else if mapping.Max == "auto" {
		maxStr = fmt.Sprintf("%.2f", dataMax*1.05)
	} else {
		maxStr = "100"
	}

	return minStr, maxStr
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func renderTemplate(name, text string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", name, err)
	}

	return buf.String(), nil
}
