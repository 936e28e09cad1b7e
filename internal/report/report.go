package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"cartcompare/internal/aggregate"
	"cartcompare/internal/config"
	"cartcompare/internal/logging"
	"cartcompare/internal/plot"
	"cartcompare/internal/plot/png"
	"cartcompare/internal/plot/timeseries"
	"cartcompare/internal/run"
)

// ToolVersion is the release version, stamped into every artifact.
const ToolVersion = "1.0.0"

// ModelReport holds one model's aggregates for every configured field
// and ratio.
type ModelReport struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Index  int     `json:"index"`
	Days   float64 `json:"days"`

	Load *run.LoadReport `json:"load"`

	Fields map[string]*aggregate.Series `json:"fields"`
	Ratios map[string]*aggregate.Series `json:"ratios,omitempty"`
}

// Report is the full outcome of one comparison: per-model aggregates
// plus the configuration they were produced from.
type Report struct {
	Version int `json:"version"`

	CreatedAt time.Time `json:"created_at"`

	Generator string `json:"generator"`

	Comparison   string  `json:"comparison"`
	Description  string  `json:"description,omitempty"`
	Checksum     string  `json:"checksum,omitempty"`
	Days         float64 `json:"days"`
	SDMultiplier float64 `json:"sd_multiplier"`
	AxisMode     string  `json:"axis_mode"`

	ConfigContent string `json:"config_content"`

	Models []*ModelReport `json:"models"`
}

// Driver runs a comparison end to end: load every model's replicates,
// aggregate each configured field, write plots and exports.
type Driver struct {
	cfg           *config.ComparisonConfig
	configContent string
	plots         *plot.Manager
	logger        *logrus.Logger
}

func NewDriver(cfg *config.ComparisonConfig, configContent string) *Driver {
	return &Driver{
		cfg:           cfg,
		configContent: configContent,
		plots:         plot.NewManager(),
		logger:        logging.GetReportLogger(),
	}
}

// Aggregate loads every model's replicates and computes the configured
// aggregates without writing any output.
func (d *Driver) Aggregate() (*Report, error) {
	info := d.cfg.Comparison

	checksum, err := config.Checksum(d.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to compute config checksum: %w", err)
	}

	report := &Report{
		Version:       1,
		Generator:     "cartcompare " + ToolVersion,
		CreatedAt:     time.Now().UTC(),
		Comparison:    info.Name,
		Description:   info.Description,
		Checksum:      checksum,
		Days:          info.Days,
		SDMultiplier:  info.SDMultiplier,
		AxisMode:      axisMode(info.Axis.Mode),
		ConfigContent: d.configContent,
	}

	for _, model := range d.cfg.GetModelsSorted() {
		mr, err := d.aggregateModel(&model)
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", model.KeyName, err)
		}
		report.Models = append(report.Models, mr)
	}

	return report, nil
}

// Run executes the comparison and writes all configured outputs. The
// returned report contains the aggregates regardless of which outputs
// were enabled.
func (d *Driver) Run() (*Report, error) {
	info := d.cfg.Comparison

	report, err := d.Aggregate()
	if err != nil {
		return nil, err
	}

	if err := d.writePlots(report); err != nil {
		return nil, err
	}
	if dir := info.Output.ExportDir; dir != "" {
		if err := ExportReportCSV(dir, report); err != nil {
			return nil, fmt.Errorf("failed to export CSV: %w", err)
		}
	}
	if dir := info.Output.ArtifactDir; dir != "" {
		path, err := WriteArtifact(dir, report)
		if err != nil {
			return nil, fmt.Errorf("failed to write artifact: %w", err)
		}
		d.logger.WithField("path", path).Info("Wrote comparison artifact")
	}

	return report, nil
}

func (d *Driver) aggregateModel(model *config.ModelConfig) (*ModelReport, error) {
	set, loadReport, err := run.LoadSet(model.Dir, model.Pattern, model.Start, model.Count, d.loaderFor(model))
	if err != nil {
		return nil, err
	}

	d.logger.WithFields(logrus.Fields{
		"model":     model.KeyName,
		"requested": loadReport.Requested,
		"loaded":    loadReport.Loaded,
	}).Info("Loaded replicate set")

	info := d.cfg.Comparison

	// A model whose files are all unavailable is no data, not a failure.
	// It stays in the report with its load record and no aggregates.
	if set.Size() == 0 {
		d.logger.WithField("model", model.KeyName).Warn("No replicates loaded, model has no aggregates")
		return &ModelReport{
			Key:    model.KeyName,
			Label:  model.Label,
			Index:  model.Index,
			Days:   info.Days,
			Load:   loadReport,
			Fields: make(map[string]*aggregate.Series),
		}, nil
	}

	axis, err := aggregate.ReferenceAxis(set, aggregate.AxisOptions{
		Mode:       aggregate.AxisMode(axisMode(info.Axis.Mode)),
		MaxTime:    info.Days,
		GridPoints: info.Axis.GridPoints,
	})
	if err != nil {
		return nil, err
	}
	set = set.Truncate(info.Days)

	mr := &ModelReport{
		Key:    model.KeyName,
		Label:  model.Label,
		Index:  model.Index,
		Days:   info.Days,
		Load:   loadReport,
		Fields: make(map[string]*aggregate.Series),
	}

	for _, field := range info.Fields {
		series, err := aggregate.Aggregate(set, field, axis)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field, err)
		}
		mr.Fields[field] = series
	}

	if len(info.Ratios) > 0 {
		mr.Ratios = make(map[string]*aggregate.Series)
		for _, ratio := range info.Ratios {
			series, err := aggregate.AggregateRatio(set, ratio.Numerator, ratio.Denominator, axis)
			if err != nil {
				return nil, fmt.Errorf("ratio %s: %w", ratio.Name, err)
			}
			mr.Ratios[ratio.Name] = series
		}
	}

	return mr, nil
}

func (d *Driver) loaderFor(model *config.ModelConfig) run.Loader {
	switch model.Format {
	case "dat":
		opts := run.DATOptions{
			Columns:     model.Columns,
			TimeColumn:  model.TimeColumn,
			TimeDivisor: model.TimeDivisor(),
			SkipRows:    model.SkipRows,
		}
		return func(path string) (*run.Run, error) {
			return run.LoadDAT(path, opts)
		}
	default:
		opts := run.CSVOptions{
			TimeColumn:  model.TimeColumn,
			TimeDivisor: model.TimeDivisor(),
		}
		return func(path string) (*run.Run, error) {
			return run.LoadCSV(path, opts)
		}
	}
}

func (d *Driver) writePlots(report *Report) error {
	dir := d.cfg.Comparison.Output.PlotDir
	pngEnabled := d.cfg.Comparison.Output.PNG
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create plot directory: %w", err)
	}

	write := func(name string, isRatio bool) error {
		models := report.ModelSeriesFor(name, isRatio)
		if len(models) == 0 {
			d.logger.WithField("curve", name).Warn("No model produced data, skipping plot")
			return nil
		}
		lines := make([]png.Line, 0, len(models))
		for _, m := range models {
			lines = append(lines, png.Line{Label: m.Label, Series: m.Series})
		}

		opts := timeseries.PlotOptions{
			ComparisonName: report.Comparison,
			Description:    report.Description,
			Field:          name,
			IsRatio:        isRatio,
			Days:           report.Days,
			SDMultiplier:   report.SDMultiplier,
			AxisMode:       report.AxisMode,
		}
		plotTikz, wrapperTex, err := d.plots.GenerateTimeseriesPlot(opts, models)
		if err != nil {
			return fmt.Errorf("plot %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name+".tikz"), []byte(plotTikz), 0o644); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name+"_wrapper.tex"), []byte(wrapperTex), 0o644); err != nil {
			return err
		}
		if pngEnabled {
			pngOpts := png.Options{
				Title:  fmt.Sprintf("%s: %s", report.Comparison, name),
				XLabel: "Days",
				YLabel: name,
			}
			if err := d.plots.RenderPNG(pngOpts, lines, filepath.Join(dir, name+".png")); err != nil {
				return fmt.Errorf("png %s: %w", name, err)
			}
		}
		return nil
	}

	for _, field := range d.cfg.Comparison.Fields {
		if err := write(field, false); err != nil {
			return err
		}
	}
	for _, ratio := range d.cfg.Comparison.Ratios {
		if err := write(ratio.Name, true); err != nil {
			return err
		}
	}

	return nil
}

// ModelSeriesFor collects each model's aggregate for a named curve in
// the form the timeseries generator consumes. Models without the curve
// are left out.
func (r *Report) ModelSeriesFor(name string, isRatio bool) []timeseries.ModelSeries {
	var models []timeseries.ModelSeries
	for _, mr := range r.Models {
		var series *aggregate.Series
		if isRatio {
			series = mr.Ratios[name]
		} else {
			series = mr.Fields[name]
		}
		if series == nil {
			continue
		}
		skipped := 0
		if mr.Load != nil {
			skipped = len(mr.Load.Skipped)
		}
		models = append(models, timeseries.ModelSeries{
			Label:   mr.Label,
			Index:   mr.Index,
			Skipped: skipped,
			Series:  series,
		})
	}
	return models
}

func axisMode(mode string) string {
	if mode == "" {
		return string(aggregate.AxisFirst)
	}
	return mode
}
