package app

import (
	"image/color"
	"iter"
	"log/slog"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plottable is a series that can be drawn as a step function.
type Plottable interface {
	All() iter.Seq2[float64, float64]
	StartTime() float64
	StartValue() float64
}

type valueRanger interface {
	ValueRange() (float64, float64)
}

// StepPoints returns (start time, start value) followed by the end time and
// value of every segment.
func StepPoints(ts Plottable) plotter.XYs {
	points := plotter.XYs{{X: ts.StartTime(), Y: ts.StartValue()}}
	absTime := ts.StartTime()
	for duration, value := range ts.All() {
		absTime += duration
		points = append(points, plotter.XY{X: absTime, Y: value})
	}
	return points
}

// PlotTimeSerie renders ts to plotPath; the image format follows the file
// extension. Series with a value range get a fixed y-axis.
func PlotTimeSerie(ts Plottable, title string, plotPath string, log *slog.Logger) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time"
	p.Y.Label.Text = "Value"
	p.Title.TextStyle.Color = color.RGBA{B: 255, A: 255}

	line, lineErr := plotter.NewLine(StepPoints(ts))
	if lineErr != nil {
		return lineErr
	}
	// Each point carries the value held since the previous one
	line.StepStyle = plotter.PreStep
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 255, G: 144, A: 255}
	p.Add(line)

	// After Add, which grows the axes to the data
	if ranger, rangerOk := ts.(valueRanger); rangerOk {
		p.Y.Min, p.Y.Max = ranger.ValueRange()
		p.Y.Label.Text = "Load"
	}

	log.Debug("Rendering plot", "path", plotPath, "points", len(line.XYs))
	saveErr := p.Save(12*vg.Inch, 6*vg.Inch, plotPath)
	if saveErr != nil {
		return saveErr
	}
	log.Info("Created plot", "path", plotPath)
	return nil
}
