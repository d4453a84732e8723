// Package ioplot draws time series of species disagreements and
// scatter plots of change rates as PNG files.
package ioplot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gnames/taxodrift/pkg/trend"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch
)

// Lines draws series against release dates. Every series gets its own
// color and marker shape.
func Lines(path, title string, ss []trend.Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Release date"
	p.Y.Label.Text = "Species disagreements (%)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, s := range ss {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, 0, len(s.Points))
		for _, pt := range s.Points {
			if !finite(pt.Value) {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(pt.Date.Unix()), Y: pt.Value})
		}
		if len(xys) == 0 {
			continue
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return PlotError(path, err)
		}
		line.Color = plotutil.Color(i)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)
	}

	if err := p.Save(width, height, path); err != nil {
		return PlotError(path, err)
	}
	return nil
}

// Scatter draws disagreement percentages against change rates and puts
// the result of the correlation test into the title.
func Scatter(path, xLabel string, rates []trend.Rates, x func(trend.Rates) float64, t trend.Test) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: rho=%.3f, p=%.3g", t.Name, t.Statistic, t.PValue)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Species disagreements (%)"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, 0, len(rates))
	labels := make([]string, 0, len(rates))
	for _, r := range rates {
		if !finite(x(r)) || !finite(r.Discrepancy) {
			continue
		}
		xys = append(xys, plotter.XY{X: x(r), Y: r.Discrepancy})
		labels = append(labels, r.Label)
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return PlotError(path, err)
	}
	sc.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	sc.Radius = vg.Points(3)
	p.Add(sc)

	lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return PlotError(path, err)
	}
	p.Add(lbl)

	if err = p.Save(width, height, path); err != nil {
		return PlotError(path, err)
	}
	return nil
}

// finite is false for values plotters refuse to draw. Comparisons without
// compared names have NaN percentages.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
