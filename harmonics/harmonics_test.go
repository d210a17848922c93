/*
 * harmonics_test.go, part of gosoap
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

package harmonics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomUnit(rng *rand.Rand) []float64 {
	for {
		u := []float64{2*rng.Float64() - 1, 2*rng.Float64() - 1, 2*rng.Float64() - 1}
		n := math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
		if n > 0.1 && n <= 1 {
			u[0] /= n
			u[1] /= n
			u[2] /= n
			return u
		}
	}
}

// legendreP evaluates the Legendre polynomial by its recurrence.
func legendreP(l int, x float64) float64 {
	p0, p1 := 1.0, x
	if l == 0 {
		return p0
	}
	for k := 2; k <= l; k++ {
		p0, p1 = p1, (float64(2*k-1)*x*p1-float64(k-1)*p0)/float64(k)
	}
	return p1
}

func TestLowDegreeValues(Te *testing.T) {
	sh, err := New(1)
	require.NoError(Te, err)
	u := []float64{0.48, -0.6, 0.64}
	v, _ := sh.Calc(u, false)
	c := math.Sqrt(3 / (4 * math.Pi))
	require.InDelta(Te, 1/math.Sqrt(4*math.Pi), v[Index(0, 0)], 1e-14)
	require.InDelta(Te, c*u[1], v[Index(1, -1)], 1e-14)
	require.InDelta(Te, c*u[2], v[Index(1, 0)], 1e-14)
	require.InDelta(Te, c*u[0], v[Index(1, 1)], 1e-14)
}

// sum_m Y_lm(u) Y_lm(v) = (2l+1)/(4 pi) P_l(u.v) for real orthonormal
// harmonics.
func TestAdditionTheorem(Te *testing.T) {
	lmax := 8
	sh, err := New(lmax)
	require.NoError(Te, err)
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		u := randomUnit(rng)
		v := randomUnit(rng)
		yu, _ := sh.Calc(u, false)
		yv, _ := sh.Calc(v, false)
		dot := u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
		for l := 0; l <= lmax; l++ {
			sum := 0.0
			for m := -l; m <= l; m++ {
				sum += yu[Index(l, m)] * yv[Index(l, m)]
			}
			want := float64(2*l+1) / (4 * math.Pi) * legendreP(l, dot)
			require.InDeltaf(Te, want, sum, 1e-12, "addition theorem fails at l=%d", l)
		}
	}
}

func TestPoles(Te *testing.T) {
	lmax := 6
	sh, err := New(lmax)
	require.NoError(Te, err)
	for _, sign := range []float64{1, -1} {
		u := []float64{0, 0, sign}
		v, g := sh.Calc(u, true)
		for l := 0; l <= lmax; l++ {
			want := math.Sqrt(float64(2*l+1)/(4*math.Pi)) * math.Pow(sign, float64(l))
			require.InDeltaf(Te, want, v[Index(l, 0)], 1e-14, "m=0 at the pole, l=%d", l)
			for m := 1; m <= l; m++ {
				require.Zerof(Te, v[Index(l, m)], "m=%d should vanish at the pole", m)
				require.Zerof(Te, v[Index(l, -m)], "m=%d should vanish at the pole", -m)
			}
		}
		for _, val := range g {
			require.Falsef(Te, math.IsNaN(val) || math.IsInf(val, 0), "gradient blows up at the pole")
		}
	}
}

// The gradients are those of the harmonics extended as constant along
// rays, so they must match finite differences of Y(x/|x|).
func TestGradientFD(Te *testing.T) {
	lmax := 5
	sh, err := New(lmax)
	require.NoError(Te, err)
	size := sh.Size()
	rng := rand.New(rand.NewSource(11))
	steps := []float64{1e-5, 1e-6, 1e-7}
	normCalc := func(x []float64) []float64 {
		n := math.Sqrt(x[0]*x[0] + x[1]*x[1] + x[2]*x[2])
		v, _ := sh.Calc([]float64{x[0] / n, x[1] / n, x[2] / n}, false)
		return v
	}
	for trial := 0; trial < 10; trial++ {
		u := randomUnit(rng)
		_, g := sh.Calc(u, true)
		for k := 0; k < 3; k++ {
			for idx := 0; idx < size; idx++ {
				best := math.Inf(1)
				for _, h := range steps {
					xp := []float64{u[0], u[1], u[2]}
					xm := []float64{u[0], u[1], u[2]}
					xp[k] += h
					xm[k] -= h
					fd := (normCalc(xp)[idx] - normCalc(xm)[idx]) / (2 * h)
					if e := math.Abs(fd - g[k*size+idx]); e < best {
						best = e
					}
				}
				require.Lessf(Te, best, 1e-5, "gradient vs finite differences, component %d index %d", k, idx)
			}
		}
	}
}

// The tangential gradient must have no component along the direction
// itself.
func TestGradientTangential(Te *testing.T) {
	lmax := 6
	sh, err := New(lmax)
	require.NoError(Te, err)
	size := sh.Size()
	rng := rand.New(rand.NewSource(13))
	for trial := 0; trial < 10; trial++ {
		u := randomUnit(rng)
		_, g := sh.Calc(u, true)
		for idx := 0; idx < size; idx++ {
			radial := u[0]*g[idx] + u[1]*g[size+idx] + u[2]*g[2*size+idx]
			require.InDeltaf(Te, 0, radial, 1e-12, "radial gradient component at index %d", idx)
		}
	}
}
