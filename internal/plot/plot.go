package plot

import (
	"github.com/sirupsen/logrus"

	"cartcompare/internal/logging"
	"cartcompare/internal/plot/density"
	"cartcompare/internal/plot/exectimes"
	"cartcompare/internal/plot/forces"
	"cartcompare/internal/plot/png"
	"cartcompare/internal/plot/timeseries"
	"cartcompare/internal/run"
)

type PlotType string

const (
	PlotTypeTimeseries PlotType = "timeseries"
	PlotTypeDensity    PlotType = "density"
	PlotTypeExecTimes  PlotType = "exectimes"
	PlotTypeForces     PlotType = "forces"
)

// Manager bundles the plot generators behind a single entry point so
// callers do not wire loggers into each generator themselves.
type Manager struct {
	timeseriesGenerator *timeseries.Generator
	densityGenerator    *density.Generator
	exectimesGenerator  *exectimes.Generator
	forcesGenerator     *forces.Generator
	pngRenderer         *png.Renderer
	logger              *logrus.Logger
}

func NewManager() *Manager {
	logger := logging.GetLogger()

	return &Manager{
		timeseriesGenerator: timeseries.NewGenerator(logger),
		densityGenerator:    density.NewGenerator(logger),
		exectimesGenerator:  exectimes.NewGenerator(logger),
		forcesGenerator:     forces.NewGenerator(logger),
		pngRenderer:         png.NewRenderer(logger),
		logger:              logger,
	}
}

func (m *Manager) GenerateTimeseriesPlot(opts timeseries.PlotOptions, models []timeseries.ModelSeries) (plotTikz, wrapperTex string, err error) {
	return m.timeseriesGenerator.Generate(opts, models)
}

func (m *Manager) GenerateDensityPlot(opts density.PlotOptions, samplesA, samplesB []float64) (string, error) {
	return m.densityGenerator.Generate(opts, samplesA, samplesB)
}

func (m *Manager) GenerateExecTimesPlot(opts exectimes.PlotOptions, times *run.ExecTimes) (string, error) {
	return m.exectimesGenerator.Generate(opts, times)
}

func (m *Manager) GenerateForcesPlot(opts forces.PlotOptions, rowsA, rowsB [][]float64) (string, error) {
	return m.forcesGenerator.Generate(opts, rowsA, rowsB)
}

func (m *Manager) RenderPNG(opts png.Options, lines []png.Line, path string) error {
	return m.pngRenderer.Render(opts, lines, path)
}
