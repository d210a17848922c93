/*
 * gto.go, part of gosoap
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

/*Package basis implements the radial bases of the spherical density
expansion: orthonormalized Gaussian-type orbitals (GTO) and a discrete
variable representation (DVR) on Gauss-Legendre points. Both expose the
same interface, the radial integral of a Gaussian density centered at a
given distance against every radial channel and angular momentum.*/
package basis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// RadialIntegral is the interface of a radial basis. Calc returns the
// integrals of a unit Gaussian density centered at distance r from the
// origin against every basis function, as an nmax x (lmax+1) matrix
// indexed by radial channel and angular momentum, and, if grad is true,
// the derivatives of those integrals with respect to r. Calc allocates
// its results, so one RadialIntegral can be shared by concurrent
// callers.
//
// Center returns the integrals for the density sitting exactly on the
// origin, where only l = 0 survives, as a vector over radial channels.
type RadialIntegral interface {
	MaxRadial() int
	MaxAngular() int
	Calc(r float64, grad bool) (*mat.Dense, *mat.Dense)
	Center() []float64
}

// GTO is the Gaussian-type-orbital radial basis: R_n(r) proportional to
// r^n exp(-r^2/(2 s_n^2)), with the widths s_n spread so that the last
// channel peaks near the cutoff. The overlap of a Gaussian density of
// smearing sigma centered at r against R_n(r) Y_lm has a closed form in
// terms of Kummer's function M, which Hyp1f1 evaluates. The raw
// channels overlap each other, so the basis is orthonormalized through
// the inverse square root of the overlap matrix.
type GTO struct {
	nmax, lmax int
	a          float64   //1/(2 sigma^2), the density smearing factor
	facB       []float64 //1/(2 s_n^2) per radial channel
	prefac     []float64 //per (n,l) constant factor, row-major
	trans      *mat.Dense
	h          *Hyp1f1
	center     []float64
}

// NewGTO builds the GTO basis. The widths are s_n = (cutoff -
// smoothWidth) * max(sqrt(n),1) / nmax. sigma is the smearing of the
// atomic density. If recursion is true the hypergeometric values are
// computed by downward recursion, otherwise by direct series
// summation with the given tolerance.
func NewGTO(nmax, lmax int, cutoff, smoothWidth, sigma float64, recursion bool, tol float64) (*GTO, error) {
	switch {
	case nmax < 1:
		return nil, fmt.Errorf("NewGTO: need at least one radial channel, got %d", nmax)
	case lmax < 0:
		return nil, fmt.Errorf("NewGTO: negative maximum angular momentum %d", lmax)
	case sigma <= 0:
		return nil, fmt.Errorf("NewGTO: smearing must be positive, got %v", sigma)
	case smoothWidth < 0 || cutoff <= smoothWidth:
		return nil, fmt.Errorf("NewGTO: need 0 <= smooth width < cutoff, got %v and %v", smoothWidth, cutoff)
	}
	G := &GTO{nmax: nmax, lmax: lmax}
	G.a = 1 / (2 * sigma * sigma)
	G.facB = make([]float64, nmax)
	norm := make([]float64, nmax)
	for n := 0; n < nmax; n++ {
		sn := (cutoff - smoothWidth) * math.Max(math.Sqrt(float64(n)), 1) / float64(nmax)
		G.facB[n] = 1 / (2 * sn * sn)
		lg, _ := math.Lgamma(float64(n) + 1.5)
		norm[n] = math.Sqrt(2 * math.Pow(2*G.facB[n], float64(n)+1.5) / math.Exp(lg))
	}
	G.prefac = make([]float64, nmax*(lmax+1))
	pi32 := math.Pow(math.Pi, 1.5)
	for n := 0; n < nmax; n++ {
		for l := 0; l <= lmax; l++ {
			alpha := float64(n+l+3) / 2
			G.prefac[n*(lmax+1)+l] = pi32 * norm[n] * math.Pow(G.a+G.facB[n], -alpha)
		}
	}
	trans, err := overlapInvSqrt(norm, G.facB)
	if err != nil {
		return nil, fmt.Errorf("NewGTO: %v", err)
	}
	G.trans = trans
	G.h = NewHyp1f1(nmax, lmax, recursion, tol)
	c, _ := G.Calc(0, false)
	G.center = make([]float64, nmax)
	for n := 0; n < nmax; n++ {
		G.center[n] = c.At(n, 0)
	}
	return G, nil
}

// overlapInvSqrt builds the inverse square root of the overlap matrix
// S_nm of the raw GTO channels, through its eigendecomposition.
func overlapInvSqrt(norm, facB []float64) (*mat.Dense, error) {
	nmax := len(norm)
	S := mat.NewSymDense(nmax, nil)
	for n := 0; n < nmax; n++ {
		for m := n; m < nmax; m++ {
			ex := float64(n+m+3) / 2
			lg, _ := math.Lgamma(ex)
			S.SetSym(n, m, norm[n]*norm[m]*math.Exp(lg)/(2*math.Pow(facB[n]+facB[m], ex)))
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(S, true); !ok {
		return nil, fmt.Errorf("eigendecomposition of the overlap matrix failed")
	}
	evals := eig.Values(nil)
	var evecs mat.Dense
	eig.VectorsTo(&evecs)
	d := mat.NewDense(nmax, nmax, nil)
	for i, v := range evals {
		if v <= 0 {
			return nil, fmt.Errorf("overlap matrix is not positive definite, basis too large for its widths")
		}
		d.Set(i, i, 1/math.Sqrt(v))
	}
	var t, ret mat.Dense
	t.Mul(&evecs, d)
	ret.Mul(&t, evecs.T())
	return &ret, nil
}

func (G *GTO) MaxRadial() int  { return G.nmax }
func (G *GTO) MaxAngular() int { return G.lmax }

// Center returns the orthonormalized l = 0 integrals for a density
// centered on the origin.
func (G *GTO) Center() []float64 { return G.center }

// Calc evaluates the orthonormalized radial integrals at distance r,
// and their derivatives with respect to r if grad is true.
func (G *GTO) Calc(r float64, grad bool) (*mat.Dense, *mat.Dense) {
	vals, ders := G.h.Calc(r, G.a, G.facB, grad)
	for n := 0; n < G.nmax; n++ {
		arl := 1.0  //(a r)^l
		prev := 0.0 //(a r)^(l-1)
		for l := 0; l <= G.lmax; l++ {
			pf := G.prefac[n*(G.lmax+1)+l]
			v := vals.At(n, l)
			if grad {
				d := pf * arl * ders.At(n, l)
				if l > 0 {
					d += pf * float64(l) * G.a * prev * v
				}
				ders.Set(n, l, d)
			}
			vals.Set(n, l, pf*arl*v)
			prev = arl
			arl *= G.a * r
		}
	}
	ovals := mat.NewDense(G.nmax, G.lmax+1, nil)
	ovals.Mul(G.trans, vals)
	if !grad {
		return ovals, nil
	}
	oders := mat.NewDense(G.nmax, G.lmax+1, nil)
	oders.Mul(G.trans, ders)
	return ovals, oders
}
