/*
 * harmonics.go, part of gosoap
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

/*Package harmonics evaluates real spherical harmonics and their
gradients on the unit sphere, up to a fixed maximum degree, in a single
recursive pass that stays finite at the poles.*/
package harmonics

import (
	"fmt"
	"math"
)

// SphericalHarmonics evaluates the real, orthonormal spherical
// harmonics Y_lm for all l up to a maximum degree. Results come back in
// a flat slice indexed by l(l+1)+m, with m running from -l to l.
//
// The evaluation splits Y_lm into an associated Legendre part in the
// polar coordinate and an azimuthal part. The Legendre part is computed
// with the sin(theta)^m factor stripped, and the azimuthal part carries
// that factor instead, as the polynomials sin^m cos(m phi) and
// sin^m sin(m phi) of the Cartesian components. Every quantity is then
// a polynomial in the direction components, so nothing blows up when
// the direction approaches a pole, where phi is undefined.
type SphericalHarmonics struct {
	lmax int
}

// New returns an evaluator for degrees 0 through lmax.
func New(lmax int) (*SphericalHarmonics, error) {
	if lmax < 0 {
		return nil, fmt.Errorf("harmonics.New: negative maximum degree %d", lmax)
	}
	return &SphericalHarmonics{lmax: lmax}, nil
}

// MaxDegree returns the largest degree the evaluator computes.
func (sh *SphericalHarmonics) MaxDegree() int { return sh.lmax }

// Size returns the length of the value slice, (lmax+1)^2.
func (sh *SphericalHarmonics) Size() int { return (sh.lmax + 1) * (sh.lmax + 1) }

// Index returns the position of Y_lm in the value slice.
func Index(l, m int) int { return l*(l+1) + m }

// Calc evaluates the harmonics along the unit vector u. If grad is
// true it also returns the gradients, 3 blocks of Size() values each,
// one per Cartesian component, in the same order as the values.
//
// The gradient is that of the harmonics extended off the sphere as
// constant along rays, so it is tangential: it has no component along
// u itself. Calc allocates its results, so one evaluator can be shared
// by concurrent callers.
func (sh *SphericalHarmonics) Calc(u []float64, grad bool) ([]float64, []float64) {
	x, y, z := u[0], u[1], u[2]
	lmax := sh.lmax
	size := sh.Size()
	// Legendre part without the sin^m factor, and its z-derivative.
	// Triangular storage, index l(l+1)/2+m for m >= 0.
	alp := make([]float64, (lmax+1)*(lmax+2)/2)
	var dalp []float64
	if grad {
		dalp = make([]float64, len(alp))
	}
	ti := func(l, m int) int { return l*(l+1)/2 + m }
	alp[0] = math.Sqrt(1 / (4 * math.Pi))
	for m := 1; m <= lmax; m++ {
		alp[ti(m, m)] = alp[ti(m-1, m-1)] * math.Sqrt(float64(2*m+1)/float64(2*m))
	}
	for m := 0; m < lmax; m++ {
		c := math.Sqrt(float64(2*m + 3))
		alp[ti(m+1, m)] = z * c * alp[ti(m, m)]
		if grad {
			dalp[ti(m+1, m)] = c * alp[ti(m, m)]
		}
		for l := m + 2; l <= lmax; l++ {
			f := math.Sqrt(float64(4*l*l-1) / float64(l*l-m*m))
			g := math.Sqrt(float64((l-1)*(l-1)-m*m) / float64(4*(l-1)*(l-1)-1))
			alp[ti(l, m)] = f * (z*alp[ti(l-1, m)] - g*alp[ti(l-2, m)])
			if grad {
				dalp[ti(l, m)] = f * (alp[ti(l-1, m)] + z*dalp[ti(l-1, m)] - g*dalp[ti(l-2, m)])
			}
		}
	}
	// Azimuthal part: cm = sin^m cos(m phi), sm = sin^m sin(m phi),
	// as polynomials of x and y.
	cm := make([]float64, lmax+1)
	sm := make([]float64, lmax+1)
	cm[0] = 1
	for m := 1; m <= lmax; m++ {
		cm[m] = x*cm[m-1] - y*sm[m-1]
		sm[m] = x*sm[m-1] + y*cm[m-1]
	}
	vals := make([]float64, size)
	var g []float64
	if grad {
		g = make([]float64, 3*size)
	}
	s2 := math.Sqrt2
	for l := 0; l <= lmax; l++ {
		vals[Index(l, 0)] = alp[ti(l, 0)]
		if grad {
			g[2*size+Index(l, 0)] = dalp[ti(l, 0)]
		}
		for m := 1; m <= l; m++ {
			a := alp[ti(l, m)]
			vals[Index(l, m)] = s2 * a * cm[m]
			vals[Index(l, -m)] = s2 * a * sm[m]
			if grad {
				fm := float64(m)
				g[0*size+Index(l, m)] = s2 * a * fm * cm[m-1]
				g[1*size+Index(l, m)] = -s2 * a * fm * sm[m-1]
				g[2*size+Index(l, m)] = s2 * dalp[ti(l, m)] * cm[m]
				g[0*size+Index(l, -m)] = s2 * a * fm * sm[m-1]
				g[1*size+Index(l, -m)] = s2 * a * fm * cm[m-1]
				g[2*size+Index(l, -m)] = s2 * dalp[ti(l, m)] * sm[m]
			}
		}
	}
	if !grad {
		return vals, nil
	}
	// Project out the radial component, leaving the tangential
	// gradient of the ray-constant extension.
	for i := 0; i < size; i++ {
		r := x*g[i] + y*g[size+i] + z*g[2*size+i]
		g[i] -= x * r
		g[size+i] -= y * r
		g[2*size+i] -= z * r
	}
	return vals, g
}
