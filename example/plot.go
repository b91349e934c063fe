package main

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	pf "github.com/SorenRusbjerg/Kidnapped-Vehicle-Project"
	"github.com/SorenRusbjerg/Kidnapped-Vehicle-Project/mapdata"
)

// savePlot writes a scatter of the final particle cloud (blue), the map
// landmarks (grey) and the ground truth pose (red) to a PNG file.
func savePlot(particles []pf.Particle, truth pose, m *mapdata.Map, path string) error {
	plt := plot.New()
	plt.Title.Text = "Particle Filter Localization"
	plt.X.Label.Text = "X"
	plt.Y.Label.Text = "Y"
	plt.Add(plotter.NewGrid())

	lmPts := make(plotter.XYs, len(m.Landmarks))
	for i, lm := range m.Landmarks {
		lmPts[i].X = lm.X
		lmPts[i].Y = lm.Y
	}
	lms, err := plotter.NewScatter(lmPts)
	if err != nil {
		return err
	}
	lms.GlyphStyle.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	plt.Add(lms)

	pPts := make(plotter.XYs, len(particles))
	for i, p := range particles {
		pPts[i].X = p.X
		pPts[i].Y = p.Y
	}
	cloud, err := plotter.NewScatter(pPts)
	if err != nil {
		return err
	}
	cloud.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	plt.Add(cloud)

	truthPt := plotter.XYs{{X: truth.X, Y: truth.Y}}
	tp, err := plotter.NewScatter(truthPt)
	if err != nil {
		return err
	}
	tp.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	plt.Add(tp)

	return plt.Save(6*vg.Inch, 6*vg.Inch, path)
}
