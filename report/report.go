// Package report renders pipeline results for people: the one-line metric
// summary printed by the command and an optional predicted-vs-actual plot.
package report

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/datapipe/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteMSE writes "Mean Squared Error: <value>" followed by a newline.
// The value uses the shortest representation that round-trips.
func WriteMSE(w io.Writer, mse float64) error {
	if _, err := fmt.Fprintf(w, "Mean Squared Error: %v\n", mse); err != nil {
		return errors.Wrap(err, "report: write MSE")
	}
	return nil
}

// PlotSize is the width and height of saved plots.
const PlotSize = 4 * vg.Inch

// PlotPredictions saves a predicted-vs-actual scatter with the identity line.
// The image format follows the file extension (png, svg, pdf, ...).
func PlotPredictions(path string, yTrue, yPred mat.Matrix) error {
	const op = "report.PlotPredictions"

	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()
	if rTrue == 0 {
		return errors.NewInsufficientDataError(op, "no predictions to plot", 1, 0)
	}
	if rTrue != rPred {
		return errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if cTrue != 1 || cPred != 1 {
		return errors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}

	pts := make(plotter.XYs, rTrue)
	values := make([]float64, 0, 2*rTrue)
	for i := range pts {
		pts[i].X = yTrue.At(i, 0)
		pts[i].Y = yPred.At(i, 0)
		values = append(values, pts[i].X, pts[i].Y)
	}
	if err := errors.CheckNumericalStability(op, values, 0); err != nil {
		return err
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if hi == lo {
		lo, hi = lo-1, hi+1
	}
	pad := 0.05 * (hi - lo)
	lo, hi = lo-pad, hi+pad

	p := plot.New()
	p.Title.Text = "Predicted vs actual"
	p.X.Label.Text = "Actual"
	p.Y.Label.Text = "Predicted"
	p.X.Min, p.X.Max = lo, hi
	p.Y.Min, p.Y.Max = lo, hi
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, op)
	}
	identity := plotter.NewFunction(func(x float64) float64 { return x })
	identity.XMin, identity.XMax = lo, hi
	identity.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(scatter, identity)
	p.Legend.Add("prediction", scatter)
	p.Legend.Add("y = x", identity)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(PlotSize, PlotSize, path); err != nil {
		return errors.Wrapf(err, "%s: save %s", op, path)
	}
	return nil
}
