/*
 * invariants.go, part of gosoap
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

package density

import (
	"fmt"
	"math"
	"sync"

	soap "github.com/rmera/gosoap"
	"github.com/rmera/gosoap/harmonics"
	"gonum.org/v1/gonum/mat"
)

// Invariants computes the rotationally invariant SOAP vectors of a
// structure. The power spectrum contracts the spherical expansion over
// the harmonics order m,
//
//	P_ab(n1 n2, l) = 1/sqrt(2l+1) sum_m C_a(n1,lm) C_b(n2,lm)
//
// for every sorted species pair (a,b), which makes the result invariant
// under rotations of the environment. The radial spectrum is the l = 0
// slice of the expansion itself, one block per species, and needs the
// expansion computed with MaxAngular 0.
//
// With gradients on, the product rule carries the expansion gradients
// through the contraction, per strict pair and per center.
type Invariants struct {
	o  *Options
	ce *SphericalExpansion
}

// NewInvariants builds the calculator, validating the options. A nil o
// means DefaultOptions().
func NewInvariants(o *Options) (*Invariants, error) {
	if o == nil {
		o = DefaultOptions()
	}
	switch o.SoapType {
	case "PowerSpectrum":
	case "RadialSpectrum":
		if o.MaxAngular != 0 {
			return nil, newError(fmt.Sprintf("the radial spectrum needs max_angular 0, got %d", o.MaxAngular), "NewInvariants")
		}
	default:
		return nil, newError(fmt.Sprintf("unknown soap type %q, want \"PowerSpectrum\" or \"RadialSpectrum\"", o.SoapType), "NewInvariants")
	}
	ce, err := NewSphericalExpansion(o)
	if err != nil {
		return nil, errDecorate(err, "NewInvariants")
	}
	return &Invariants{o: o, ce: ce}, nil
}

// Options returns the options the calculator was built with.
func (inv *Invariants) Options() *Options { return inv.o }

// Expansion returns the underlying spherical expansion calculator.
func (inv *Invariants) Expansion() *SphericalExpansion { return inv.ce }

// Compute expands the density around every center of m and contracts
// the expansion into SOAP vectors.
func (inv *Invariants) Compute(m *soap.Strict) (*SoapVectors, error) {
	E, err := inv.ce.Compute(m)
	if err != nil {
		return nil, errDecorate(err, "Invariants.Compute")
	}
	V, err := inv.FromExpansion(E)
	if err != nil {
		return nil, errDecorate(err, "Invariants.Compute")
	}
	return V, nil
}

// FromExpansion contracts an already computed expansion. The expansion
// must have been computed with the same options.
func (inv *Invariants) FromExpansion(E *Expansion) (*SoapVectors, error) {
	if E == nil {
		return nil, newError("nil expansion", "Invariants.FromExpansion")
	}
	if E.MaxRadial() != inv.o.MaxRadial || E.MaxAngular() != inv.o.MaxAngular {
		return nil, newError("expansion size does not match the options", "Invariants.FromExpansion")
	}
	radial := inv.o.SoapType == "RadialSpectrum"
	n := E.NCenters()
	V := &SoapVectors{
		nmax:   E.MaxRadial(),
		lmax:   E.MaxAngular(),
		radial: radial,
		gen:    E.Generation(),
		blocks: make([]map[[2]int]*mat.Dense, n),
	}
	sp := E.Species()
	if radial {
		for _, a := range sp {
			V.keys = append(V.keys, [2]int{a, a})
		}
	} else {
		for ia, a := range sp {
			for _, b := range sp[ia:] {
				V.keys = append(V.keys, [2]int{a, b})
			}
		}
	}
	grad := E.HasGradients()
	if grad {
		np := E.NPairs()
		V.pairGrad = make([]map[[2]int]*mat.Dense, np)
		V.pairCtr = make([]int, np)
		V.pairTag = make([]int, np)
		V.centerGrad = make([]map[[2]int]*mat.Dense, n)
	}
	//centers and pairs are independent of each other, so both loops
	//are spread over workers
	nw := inv.o.cpus()
	if nw < 1 {
		nw = 1
	}
	var wg sync.WaitGroup
	idx := make(chan int, n)
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				inv.contractCenter(E, V, i, grad)
			}
		}()
	}
	for i := 0; i < n; i++ {
		idx <- i
	}
	close(idx)
	wg.Wait()
	if grad {
		pdx := make(chan int, E.NPairs())
		for w := 0; w < nw; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for p := range pdx {
					inv.contractPair(E, V, p)
				}
			}()
		}
		for p := 0; p < E.NPairs(); p++ {
			pdx <- p
		}
		close(pdx)
		wg.Wait()
	}
	return V, nil
}

// contractCenter builds the invariant blocks of center i, and the
// derivative with respect to the center's own position if grad is on.
func (inv *Invariants) contractCenter(E *Expansion, V *SoapVectors, i int, grad bool) {
	keys := E.Keys(i)
	blocks := make(map[[2]int]*mat.Dense)
	var cgrads map[[2]int]*mat.Dense
	if grad {
		cgrads = make(map[[2]int]*mat.Dense)
	}
	for ia, a := range keys {
		if V.radial {
			ca := E.Block(i, a)
			b := mat.NewDense(V.nmax, 1, nil)
			for n := 0; n < V.nmax; n++ {
				b.Set(n, 0, ca.At(n, 0))
			}
			blocks[[2]int{a, a}] = b
			if grad {
				if ga := E.CenterGrad(i, a); ga != nil {
					g := mat.NewDense(3*V.nmax, 1, nil)
					for r := 0; r < 3*V.nmax; r++ {
						g.Set(r, 0, ga.At(r, 0))
					}
					cgrads[[2]int{a, a}] = g
				}
			}
			continue
		}
		for _, b := range keys[ia:] {
			ca, cb := E.Block(i, a), E.Block(i, b)
			blocks[[2]int{a, b}] = inv.powerBlock(ca, cb)
			if grad {
				ga, gb := E.CenterGrad(i, a), E.CenterGrad(i, b)
				if ga != nil || gb != nil {
					cgrads[[2]int{a, b}] = inv.powerGradBlock(ca, cb, ga, gb)
				}
			}
		}
	}
	V.blocks[i] = blocks
	if grad {
		V.centerGrad[i] = cgrads
	}
}

// contractPair builds the derivative blocks of the SOAP vector of the
// center of pair p with respect to the position of the neighbor's real
// atom. Only the keys containing the neighbor's species can be nonzero.
func (inv *Invariants) contractPair(E *Expansion, V *SoapVectors, p int) {
	i := E.PairCenter(p)
	s := E.PairSpecies(p)
	g := E.PairGrad(p)
	V.pairCtr[p] = i
	V.pairTag[p] = E.PairTag(p)
	grads := make(map[[2]int]*mat.Dense)
	if V.radial {
		out := mat.NewDense(3*V.nmax, 1, nil)
		for r := 0; r < 3*V.nmax; r++ {
			out.Set(r, 0, g.At(r, 0))
		}
		grads[[2]int{s, s}] = out
		V.pairGrad[p] = grads
		return
	}
	cs := E.Block(i, s)
	for _, b := range E.Keys(i) {
		key := pairKey(s, b)
		var ca, cb, ga, gb *mat.Dense
		if key[0] == s {
			ca, ga = cs, g
			cb = E.Block(i, key[1])
			if key[1] == s {
				gb = g
			}
		} else {
			ca = E.Block(i, key[0])
			cb, gb = cs, g
		}
		grads[key] = inv.powerGradBlock(ca, cb, ga, gb)
	}
	V.pairGrad[p] = grads
}

// powerBlock contracts two coefficient blocks over m.
func (inv *Invariants) powerBlock(ca, cb *mat.Dense) *mat.Dense {
	nmax, lmax := inv.o.MaxRadial, inv.o.MaxAngular
	out := mat.NewDense(nmax*nmax, lmax+1, nil)
	for n1 := 0; n1 < nmax; n1++ {
		for n2 := 0; n2 < nmax; n2++ {
			for l := 0; l <= lmax; l++ {
				sum := 0.0
				for mm := -l; mm <= l; mm++ {
					lm := harmonics.Index(l, mm)
					sum += ca.At(n1, lm) * cb.At(n2, lm)
				}
				out.Set(n1*nmax+n2, l, sum/math.Sqrt(float64(2*l+1)))
			}
		}
	}
	return out
}

// powerGradBlock applies the product rule to the contraction. ga and gb
// are the gradients of ca and cb, either of which may be nil when that
// block does not depend on the moving atom.
func (inv *Invariants) powerGradBlock(ca, cb, ga, gb *mat.Dense) *mat.Dense {
	nmax, lmax := inv.o.MaxRadial, inv.o.MaxAngular
	out := mat.NewDense(3*nmax*nmax, lmax+1, nil)
	for k := 0; k < 3; k++ {
		for n1 := 0; n1 < nmax; n1++ {
			for n2 := 0; n2 < nmax; n2++ {
				row := (k*nmax+n1)*nmax + n2
				for l := 0; l <= lmax; l++ {
					sum := 0.0
					for mm := -l; mm <= l; mm++ {
						lm := harmonics.Index(l, mm)
						if ga != nil {
							sum += ga.At(k*nmax+n1, lm) * cb.At(n2, lm)
						}
						if gb != nil {
							sum += ca.At(n1, lm) * gb.At(k*nmax+n2, lm)
						}
					}
					out.Set(row, l, sum/math.Sqrt(float64(2*l+1)))
				}
			}
		}
	}
	return out
}
