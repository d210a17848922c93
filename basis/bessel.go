/*
 * bessel.go, part of gosoap
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

package basis

import "math"

// besselSeriesCut is the argument below which the power series is used
// instead of the downward recurrence, whose normalization becomes
// inaccurate as z goes to zero.
const besselSeriesCut = 1e-3

// scaledBesselI returns the exponentially scaled modified spherical
// Bessel functions of the first kind, e^(-z) i_l(z), for l = 0..lmax,
// and their derivatives with respect to z if grad is true. The scaling
// keeps the values bounded for any z >= 0, since i_l grows like
// e^z/(2z).
//
// For small z the truncated power series is used. Otherwise the values
// come from Miller's downward recurrence, normalized against the closed
// form of the l = 0 function, (1-e^(-2z))/(2z).
func scaledBesselI(z float64, lmax int, grad bool) ([]float64, []float64) {
	// One extra order is always computed: the derivative of the l = 0
	// function needs l = 1.
	L := lmax + 1
	v := make([]float64, L+1)
	if z == 0 {
		v[0] = 1
		vals := v[:lmax+1]
		if !grad {
			return vals, nil
		}
		d := make([]float64, lmax+1)
		d[0] = -1
		if lmax >= 1 {
			d[1] = 1.0 / 3
		}
		return vals, d
	}
	if z < besselSeriesCut {
		ez := math.Exp(-z)
		zl := 1.0 //z^l
		df := 1.0 //(2l+1)!!
		for l := 0; l <= L; l++ {
			if l > 0 {
				zl *= z
				df *= float64(2*l + 1)
			}
			v[l] = ez * zl / df * (1 + z*z/(2*float64(2*l+3)))
		}
	} else {
		start := L + 30
		fprev := 0.0 //f_{l+1}
		fcur := 1e-304
		for l := start; l >= 1; l-- {
			fnext := fprev + float64(2*l+1)/z*fcur //f_{l-1}
			fprev = fcur
			fcur = fnext
			if l-1 <= L {
				v[l-1] = fcur
			}
			if fcur > 1e250 {
				fcur *= 1e-250
				fprev *= 1e-250
				for i := range v {
					v[i] *= 1e-250
				}
			}
		}
		scale := (1 - math.Exp(-2*z)) / (2 * z) / v[0]
		for i := range v {
			v[i] *= scale
		}
	}
	vals := v[:lmax+1]
	if !grad {
		return vals, nil
	}
	d := make([]float64, lmax+1)
	d[0] = v[1] - v[0]
	for l := 1; l <= lmax; l++ {
		d[l] = v[l-1] - (float64(l+1)/z+1)*v[l]
	}
	return vals, d
}
