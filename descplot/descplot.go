/*
 * descplot.go, part of gosoap
 *
 * Copyright 2021 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU Lesser General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
 */

/*Package descplot draws quick-look plots of the pieces of a descriptor:
the radial basis functions, the cutoff profile and the SOAP feature
vectors of chosen centers. Plots are saved as png files.*/
package descplot

import (
	"fmt"

	"github.com/rmera/gosoap/basis"
	"github.com/rmera/gosoap/density"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// RadialBasis plots the radial integrals of every channel of ri at the
// given angular momentum, sampled at points distances up to cutoff, and
// saves the plot as plotname.png.
func RadialBasis(ri basis.RadialIntegral, cutoff float64, l, points int, plotname string) error {
	if ri == nil {
		panic("descplot: given a nil radial basis")
	}
	if l < 0 || l > ri.MaxAngular() {
		return fmt.Errorf("RadialBasis: angular momentum %d not in the basis", l)
	}
	if points < 2 {
		points = 100
	}
	lines := make([]plotter.XYs, ri.MaxRadial())
	for n := range lines {
		lines[n] = make(plotter.XYs, points)
	}
	for k := 0; k < points; k++ {
		r := cutoff * float64(k) / float64(points-1)
		vals, _ := ri.Calc(r, false)
		for n := range lines {
			lines[n][k].X = r
			lines[n][k].Y = vals.At(n, l)
		}
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Radial integrals, l = %d", l)
	p.X.Label.Text = "r"
	p.Y.Label.Text = "c_nl(r)"
	p.Add(plotter.NewGrid())
	for n, xys := range lines {
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(n)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("n = %d", n), line)
	}
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname+".png")
}

// CutoffProfile plots the cutoff function of the options and saves it
// as plotname.png.
func CutoffProfile(o *density.Options, points int, plotname string) error {
	if o == nil {
		o = density.DefaultOptions()
	}
	if points < 2 {
		points = 100
	}
	xys := make(plotter.XYs, points)
	for k := 0; k < points; k++ {
		r := 1.1 * o.Cutoff * float64(k) / float64(points-1)
		xys[k].X = r
		xys[k].Y = o.CutoffValue(r)
	}
	p := plot.New()
	p.Title.Text = "Cutoff function"
	p.X.Label.Text = "r"
	p.Y.Label.Text = "fc(r)"
	p.Add(plotter.NewGrid())
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname+".png")
}

// FeatureRows plots the dense SOAP vectors of the given centers against
// the feature index, one line per center, and saves the plot as
// plotname.png.
func FeatureRows(v *density.SoapVectors, centers []int, plotname string) error {
	if v == nil {
		panic("descplot: given nil vectors")
	}
	p := plot.New()
	p.Title.Text = "SOAP feature vectors"
	p.X.Label.Text = "feature index"
	p.Y.Label.Text = "value"
	p.Add(plotter.NewGrid())
	for c, i := range centers {
		row := v.DenseFeatureRow(i)
		xys := make(plotter.XYs, len(row))
		for k, val := range row {
			xys[k].X = float64(k)
			xys[k].Y = val
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(c)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("center %d", i), line)
	}
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname+".png")
}
