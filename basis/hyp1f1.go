/*
 * hyp1f1.go, part of gosoap
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
	"math"

	"gonum.org/v1/gonum/mat"
)

// kummerMaxTerms caps the Kummer series. The series has all-positive
// terms for the arguments used here, so it converges monotonically and
// in practice needs a few tens of terms.
const kummerMaxTerms = 500

// kummer sums the series for Kummer's confluent hypergeometric function
// M(a,b,z) = sum_k (a)_k z^k / ((b)_k k!), stopping when the relative
// size of the last term drops below tol. It expects a,b,z > 0, where
// every term is positive and no cancellation can occur.
func kummer(a, b, z, tol float64) float64 {
	sum := 1.0
	term := 1.0
	for k := 0; k < kummerMaxTerms; k++ {
		term *= (a + float64(k)) / (b + float64(k)) * z / float64(k+1)
		sum += term
		if term < tol*sum {
			break
		}
	}
	return sum
}

// Hyp1f1 evaluates, for a fixed basis size, the scaled confluent
// hypergeometric values that the GTO radial integral needs:
//
//	V(n,l) = Gamma(a_nl)/Gamma(b_l) * exp(-c*r^2) * M(a_nl, b_l, z_n)
//
// with a_nl = (n+l+3)/2, b_l = l+3/2, z_n = c^2 r^2/(c+d_n), where c is
// the density smearing factor and d_n the width factor of radial
// channel n. The exponential prefactor keeps the value bounded, since
// M grows like exp(z) and z <= c*r^2.
//
// Two evaluation strategies are available. The direct one sums the
// Kummer series independently for every (n,l). The recursive one sums
// the series only at the largest l of each parity and walks the rest of
// the channel down in steps of two, which reuses work when lmax is
// large. Both also produce the derivative of V with respect to r on
// request.
type Hyp1f1 struct {
	nmax, lmax int
	recursion  bool
	tol        float64
	gratio     []float64 //Gamma(a_nl)/Gamma(b_l), row-major over (n,l)
}

// NewHyp1f1 precomputes the gamma-function ratios for all n < nmax and
// l <= lmax. If recursion is true, Calc uses the downward recursion
// strategy, otherwise it sums the series at every entry.
func NewHyp1f1(nmax, lmax int, recursion bool, tol float64) *Hyp1f1 {
	h := &Hyp1f1{nmax: nmax, lmax: lmax, recursion: recursion, tol: tol}
	h.gratio = make([]float64, nmax*(lmax+1))
	for n := 0; n < nmax; n++ {
		for l := 0; l <= lmax; l++ {
			la, _ := math.Lgamma(float64(n+l+3) / 2)
			lb, _ := math.Lgamma(float64(l) + 1.5)
			h.gratio[n*(lmax+1)+l] = math.Exp(la - lb)
		}
	}
	return h
}

// Calc returns the values V(n,l) at distance r, and, if grad is true,
// their derivatives with respect to r, as nmax x (lmax+1) matrices.
// facA is the smearing factor c and facB holds the per-channel width
// factors d_n. Calc allocates its results, so a single Hyp1f1 can be
// shared by concurrent callers.
func (h *Hyp1f1) Calc(r, facA float64, facB []float64, grad bool) (*mat.Dense, *mat.Dense) {
	if len(facB) != h.nmax {
		panic("goSoap/basis: facB length does not match the radial basis size")
	}
	vals := mat.NewDense(h.nmax, h.lmax+1, nil)
	var ders *mat.Dense
	if grad {
		ders = mat.NewDense(h.nmax, h.lmax+1, nil)
	}
	r2 := r * r
	efac := math.Exp(-facA * r2)
	for n := 0; n < h.nmax; n++ {
		z := facA * facA * r2 / (facA + facB[n])
		dzdr := 2 * facA * facA * r / (facA + facB[n])
		p, q := h.mRow(n, z)
		for l := 0; l <= h.lmax; l++ {
			g := h.gratio[n*(h.lmax+1)+l]
			v := g * efac * p[l]
			vals.Set(n, l, v)
			if grad {
				a := float64(n+l+3) / 2
				b := float64(l) + 1.5
				dm := a / b * q[l] //dM/dz by the contiguous relation
				ders.Set(n, l, v*(-2*facA*r)+g*efac*dm*dzdr)
			}
		}
	}
	return vals, ders
}

// mRow returns M(a_nl, b_l, z) and M(a_nl+1, b_l+1, z) for all l at a
// fixed n, using the strategy the evaluator was built with.
func (h *Hyp1f1) mRow(n int, z float64) (p, q []float64) {
	p = make([]float64, h.lmax+1)
	q = make([]float64, h.lmax+1)
	if z == 0 {
		for l := range p {
			p[l] = 1
			q[l] = 1
		}
		return p, q
	}
	if !h.recursion {
		for l := 0; l <= h.lmax; l++ {
			a := float64(n+l+3) / 2
			b := float64(l) + 1.5
			p[l] = kummer(a, b, z, h.tol)
			q[l] = kummer(a+1, b+1, z, h.tol)
		}
		return p, q
	}
	// Downward recursion within each parity class of l. With P_l =
	// M(a_nl, b_l, z) and Q_l = M(a_nl+1, b_l+1, z), a step from l+2 to
	// l follows from the contiguous relations of M and is free of
	// divisions by a_nl-b_l, which vanishes when n = l:
	//
	//	Q_l = P_{l+2} + (a+1) z / ((b+1)(b+2)) * Q_{l+2}
	//	P_l = Q_l + z (a-b) / (b (b+1)) * P_{l+2}
	//
	// with a = a_nl and b = b_l taken at the lower entry.
	for top := h.lmax; top >= 0 && top > h.lmax-2; top-- {
		a := float64(n+top+3) / 2
		b := float64(top) + 1.5
		p[top] = kummer(a, b, z, h.tol)
		q[top] = kummer(a+1, b+1, z, h.tol)
		for l := top - 2; l >= 0; l -= 2 {
			a = float64(n+l+3) / 2
			b = float64(l) + 1.5
			q[l] = p[l+2] + (a+1)*z/((b+1)*(b+2))*q[l+2]
			p[l] = q[l] + z*(a-b)/(b*(b+1))*p[l+2]
		}
	}
	return p, q
}
