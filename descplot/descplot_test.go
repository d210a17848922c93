/*
 * descplot_test.go, part of gosoap
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

package descplot

import (
	"os"
	"path/filepath"
	"testing"

	soap "github.com/rmera/gosoap"
	"github.com/rmera/gosoap/density"
	"gonum.org/v1/gonum/mat"
)

func TestPlots(Te *testing.T) {
	dir := Te.TempDir()
	o := density.DefaultOptions()
	ri, err := density.NewRadialIntegral(o)
	if err != nil {
		Te.Fatal(err)
	}
	if err := RadialBasis(ri, o.Cutoff, 0, 150, filepath.Join(dir, "radial")); err != nil {
		Te.Error(err)
	}
	if err := CutoffProfile(o, 150, filepath.Join(dir, "cutoff")); err != nil {
		Te.Error(err)
	}
	pos := mat.NewDense(2, 3, []float64{0, 0, 0, 1.2, 0.1, -0.3})
	s, err := soap.NewStructure(pos, []int{1, 8}, nil, [3]bool{})
	if err != nil {
		Te.Fatal(err)
	}
	m, err := soap.DefaultStack(s, o.Cutoff)
	if err != nil {
		Te.Fatal(err)
	}
	inv, err := density.NewInvariants(o)
	if err != nil {
		Te.Fatal(err)
	}
	v, err := inv.Compute(m)
	if err != nil {
		Te.Fatal(err)
	}
	if err := FeatureRows(v, []int{0, 1}, filepath.Join(dir, "features")); err != nil {
		Te.Error(err)
	}
	for _, name := range []string{"radial.png", "cutoff.png", "features.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			Te.Errorf("plot %s was not written: %v", name, err)
		}
	}
}
