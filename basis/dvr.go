/*
 * dvr.go, part of gosoap
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

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// DVR is the discrete-variable-representation radial basis: each
// channel is a delta-like function pinned at a Gauss-Legendre node x_k
// of the interval from 0 to the start of the cutoff smoothing, weighted
// by the square root of the quadrature weight. The radial integral of a
// Gaussian density centered at r then reduces to the density profile
// sampled at the nodes,
//
//	c_kl(r) = sqrt(w_k) x_k^2 e^(-a (r-x_k)^2) i~_l(2 a x_k r)
//
// where i~_l is the exponentially scaled modified spherical Bessel
// function and a the inverse squared smearing over two. Unlike the GTO
// basis the channels are orthogonal by construction.
type DVR struct {
	nmax, lmax int
	a          float64
	x          []float64 //quadrature nodes
	coef       []float64 //sqrt(w_k) x_k^2
	center     []float64
}

// NewDVR builds a DVR basis with nmax quadrature points. sigma is the
// smearing of the atomic density.
func NewDVR(nmax, lmax int, cutoff, smoothWidth, sigma float64) (*DVR, error) {
	switch {
	case nmax < 1:
		return nil, fmt.Errorf("NewDVR: need at least one radial channel, got %d", nmax)
	case lmax < 0:
		return nil, fmt.Errorf("NewDVR: negative maximum angular momentum %d", lmax)
	case sigma <= 0:
		return nil, fmt.Errorf("NewDVR: smearing must be positive, got %v", sigma)
	case smoothWidth < 0 || cutoff <= smoothWidth:
		return nil, fmt.Errorf("NewDVR: need 0 <= smooth width < cutoff, got %v and %v", smoothWidth, cutoff)
	}
	D := &DVR{nmax: nmax, lmax: lmax}
	D.a = 1 / (2 * sigma * sigma)
	D.x = make([]float64, nmax)
	w := make([]float64, nmax)
	quad.Legendre{}.FixedLocations(D.x, w, 0, cutoff-smoothWidth)
	//FixedLocations fills the nodes in descending order; the radial
	//channels are kept ascending in r.
	sort.Sort(nodeWeightPairs{D.x, w})
	D.coef = make([]float64, nmax)
	D.center = make([]float64, nmax)
	for k := 0; k < nmax; k++ {
		D.coef[k] = math.Sqrt(w[k]) * D.x[k] * D.x[k]
		D.center[k] = D.coef[k] * math.Exp(-D.a*D.x[k]*D.x[k])
	}
	return D, nil
}

// nodeWeightPairs sorts quadrature nodes ascending, carrying the
// matching weights along.
type nodeWeightPairs struct {
	x, w []float64
}

func (s nodeWeightPairs) Len() int           { return len(s.x) }
func (s nodeWeightPairs) Less(i, j int) bool { return s.x[i] < s.x[j] }
func (s nodeWeightPairs) Swap(i, j int) {
	s.x[i], s.x[j] = s.x[j], s.x[i]
	s.w[i], s.w[j] = s.w[j], s.w[i]
}

func (D *DVR) MaxRadial() int  { return D.nmax }
func (D *DVR) MaxAngular() int { return D.lmax }

// Center returns the l = 0 integrals for a density centered on the
// origin.
func (D *DVR) Center() []float64 { return D.center }

// Calc evaluates the radial integrals at distance r, and their
// derivatives with respect to r if grad is true.
func (D *DVR) Calc(r float64, grad bool) (*mat.Dense, *mat.Dense) {
	vals := mat.NewDense(D.nmax, D.lmax+1, nil)
	var ders *mat.Dense
	if grad {
		ders = mat.NewDense(D.nmax, D.lmax+1, nil)
	}
	for k := 0; k < D.nmax; k++ {
		z := 2 * D.a * D.x[k] * r
		iv, id := scaledBesselI(z, D.lmax, grad)
		g := D.coef[k] * math.Exp(-D.a*(r-D.x[k])*(r-D.x[k]))
		for l := 0; l <= D.lmax; l++ {
			vals.Set(k, l, g*iv[l])
			if grad {
				ders.Set(k, l, g*(-2*D.a*(r-D.x[k])*iv[l]+2*D.a*D.x[k]*id[l]))
			}
		}
	}
	return vals, ders
}
