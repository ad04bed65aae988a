package main

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/algo-spectra/spectral/ingest"
	"github.com/cwbudde/algo-spectra/spectral/model"
)

// renderPlot draws the measured count rates and, when d is non-nil, the
// model curve and its background.
func renderPlot(path, title string, s *ingest.Spectrum, d *model.Decomposition) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Energy"
	p.Y.Label.Text = "Count rate (1/s)"

	data := make(plotter.XYs, s.Len())
	for i := range data {
		data[i] = plotter.XY{X: s.Energies[i], Y: s.CountRates[i]}
	}
	scatter, err := plotter.NewScatter(data)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(scatter)
	p.Legend.Add("data", scatter)

	if d != nil {
		modelLine, err := curve(s.Energies, d.YData(s.Energies), color.RGBA{R: 200, A: 255})
		if err != nil {
			return err
		}
		p.Add(modelLine)
		p.Legend.Add("model", modelLine)

		bgLine, err := curve(s.Energies, d.Background().YData(s.Energies), color.RGBA{B: 200, A: 255})
		if err != nil {
			return err
		}
		bgLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(bgLine)
		p.Legend.Add("background", bgLine)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot %s: %w", filepath.Base(path), err)
	}
	return nil
}

func curve(x, y []float64, c color.Color) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(x))
	for i := range pts {
		pts[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(1)
	return line, nil
}
