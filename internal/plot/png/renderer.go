package png

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"cartcompare/internal/aggregate"
)

// Renderer produces quick-look PNG images of aggregated series. The
// TikZ generators remain the publication path; these images are for
// fast visual checks without a LaTeX toolchain.
type Renderer struct {
	logger *log.Logger
}

func NewRenderer(logger *log.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Line is one labeled mean curve on the quick-look plot.
type Line struct {
	Label  string
	Series *aggregate.Series
}

// Options control titles and axis labels of the rendered image.
type Options struct {
	Title  string
	XLabel string
	YLabel string
}

// Render draws the mean of each line onto a single plot and writes it
// to path. Non-finite points are skipped so gaps from ratio series with
// zero denominators do not break the image.
func (r *Renderer) Render(opts Options, lines []Line, path string) error {
	if len(lines) == 0 {
		return fmt.Errorf("no series to render")
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	args := make([]interface{}, 0, 2*len(lines))
	for _, line := range lines {
		if line.Series == nil {
			return fmt.Errorf("series %q is nil", line.Label)
		}
		points := make(plotter.XYs, 0, len(line.Series.Axis))
		for i, t := range line.Series.Axis {
			m := line.Series.Mean[i]
			if math.IsNaN(m) || math.IsInf(m, 0) {
				continue
			}
			points = append(points, plotter.XY{X: t, Y: m})
		}
		if len(points) == 0 {
			r.logger.WithField("label", line.Label).Warn("Series has no finite points, skipping")
			continue
		}
		args = append(args, line.Label, points)
	}
	if len(args) == 0 {
		return fmt.Errorf("no finite data to render")
	}

	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return fmt.Errorf("failed to add series to plot: %w", err)
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot to %s: %w", path, err)
	}

	r.logger.WithFields(log.Fields{
		"path":  path,
		"lines": len(lines),
	}).Debug("Rendered quick-look image")
	return nil
}
