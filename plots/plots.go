/*
Package plots renders diagnostic scatter plots of a trained Wq model. The
renderer is an external collaborator, plotting failures never affect the
pipeline state.
*/
package plots

import (
	"image/color"

	"go-ml.dev/pkg/zorros"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	actualColor    = color.RGBA{R: 0xd6, G: 0x2e, B: 0x2e, A: 0xff}
	predictedColor = color.RGBA{R: 0x2e, G: 0x5c, B: 0xd6, A: 0xff}
)

/*
ActualVsPredicted draws predicted Wq against actual Wq with the identity
line, a perfect model puts every point on the diagonal.
*/
func ActualVsPredicted(actual, predicted []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Actual vs Predicted Wq"
	p.X.Label.Text = "Actual Wq"
	p.Y.Label.Text = "Predicted Wq"
	p.Add(plotter.NewGrid())

	s, err := plotter.NewScatter(xys(actual, predicted))
	if err != nil {
		return zorros.Trace(err)
	}
	s.GlyphStyle.Color = predictedColor
	s.GlyphStyle.Radius = vg.Points(2)
	p.Add(s)

	lo, hi := bounds(actual)
	ident, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return zorros.Trace(err)
	}
	ident.LineStyle.Color = actualColor
	ident.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(ident)

	return save(p, path)
}

/*
Against overlays actual and predicted Wq against an arbitrary x column
(λ, Lq or ρ).
*/
func Against(x, actual, predicted []float64, xlabel, path string) error {
	p := plot.New()
	p.Title.Text = "Wq vs " + xlabel
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Wq"
	p.Add(plotter.NewGrid())

	sa, err := plotter.NewScatter(xys(x, actual))
	if err != nil {
		return zorros.Trace(err)
	}
	sa.GlyphStyle.Color = actualColor
	sa.GlyphStyle.Radius = vg.Points(2)
	p.Add(sa)
	p.Legend.Add("actual", sa)

	sp, err := plotter.NewScatter(xys(x, predicted))
	if err != nil {
		return zorros.Trace(err)
	}
	sp.GlyphStyle.Color = predictedColor
	sp.GlyphStyle.Radius = vg.Points(2)
	p.Add(sp)
	p.Legend.Add("predicted", sp)
	p.Legend.Top = true

	return save(p, path)
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return zorros.Trace(err)
	}
	return nil
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

func bounds(a []float64) (lo, hi float64) {
	if len(a) == 0 {
		return 0, 1
	}
	lo, hi = a[0], a[0]
	for _, v := range a {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return
}
