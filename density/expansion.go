/*
 * expansion.go, part of gosoap
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
	"sort"
	"sync"

	soap "github.com/rmera/gosoap"
	"github.com/rmera/gosoap/basis"
	"github.com/rmera/gosoap/harmonics"
	"gonum.org/v1/gonum/mat"
)

// SphericalExpansion computes the expansion of the smeared atomic
// density around each center in radial basis functions times real
// spherical harmonics,
//
//	C_s(n,lm) = sum over neighbors j of species s of
//	            fc(r_j) R_nl(r_j) Y_lm(u_j)
//
// plus the center's own contribution, which only reaches l = 0. The
// coefficients are kept separate per neighbor species.
//
// With gradients on, each pair's contribution to the derivative with
// respect to the neighbor position is also stored, and the derivative
// with respect to the center's own position is accumulated as minus the
// sum over its neighbors, so the translational sum rule holds exactly.
type SphericalExpansion struct {
	o  *Options
	ri basis.RadialIntegral
	sh *harmonics.SphericalHarmonics
	fc cosineCutoff
}

// NewSphericalExpansion builds the calculator, validating the options.
// A nil o means DefaultOptions().
func NewSphericalExpansion(o *Options) (*SphericalExpansion, error) {
	if o == nil {
		o = DefaultOptions()
	}
	ri, err := NewRadialIntegral(o)
	if err != nil {
		return nil, errDecorate(err, "NewSphericalExpansion")
	}
	sh, err := harmonics.New(o.MaxAngular)
	if err != nil {
		return nil, newError(err.Error(), "NewSphericalExpansion")
	}
	return &SphericalExpansion{
		o:  o,
		ri: ri,
		sh: sh,
		fc: cosineCutoff{rc: o.Cutoff, sw: o.SmoothWidth},
	}, nil
}

// Options returns the options the calculator was built with.
func (ce *SphericalExpansion) Options() *Options { return ce.o }

// RadialIntegral returns the radial basis of the calculator.
func (ce *SphericalExpansion) RadialIntegral() basis.RadialIntegral { return ce.ri }

// Compute expands the density around every center of m. Centers are
// processed concurrently, with as many workers as the Cpus option asks
// for.
func (ce *SphericalExpansion) Compute(m *soap.Strict) (*Expansion, error) {
	if m == nil {
		return nil, newError("nil manager", "SphericalExpansion.Compute")
	}
	if m.Cutoff() < ce.o.Cutoff {
		return nil, newError(fmt.Sprintf("manager cutoff %v does not cover the expansion cutoff %v",
			m.Cutoff(), ce.o.Cutoff), "SphericalExpansion.Compute")
	}
	n := m.NAtoms()
	grad := ce.o.ComputeGradients
	E := &Expansion{
		nmax:    ce.ri.MaxRadial(),
		lmax:    ce.o.MaxAngular,
		gen:     m.Generation(),
		species: speciesOf(m),
		coeffs:  make([]map[int]*mat.Dense, n),
	}
	if grad {
		np := m.NbClusters(2)
		E.pairGrad = make([]*mat.Dense, np)
		E.pairCtr = make([]int, np)
		E.pairTag = make([]int, np)
		E.pairSpec = make([]int, np)
		E.centerGrad = make([]map[int]*mat.Dense, n)
	}
	nw := ce.o.cpus()
	if nw > n {
		nw = n
	}
	if nw < 1 {
		nw = 1
	}
	idx := make(chan int, n)
	var wg sync.WaitGroup
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			//every center writes only to its own slots, so no
			//further synchronization is needed
			for i := range idx {
				ce.computeCenter(m, E, i, grad)
			}
		}()
	}
	for i := 0; i < n; i++ {
		idx <- i
	}
	close(idx)
	wg.Wait()
	return E, nil
}

// computeCenter accumulates the coefficients, and gradients if asked,
// of a single center.
func (ce *SphericalExpansion) computeCenter(m *soap.Strict, E *Expansion, i int, grad bool) {
	nmax := ce.ri.MaxRadial()
	lmax := ce.o.MaxAngular
	size := harmSize(lmax)
	coeffs := make(map[int]*mat.Dense)
	var cgrads map[int]*mat.Dense
	if grad {
		cgrads = make(map[int]*mat.Dense)
	}
	y00 := 1 / math.Sqrt(4*math.Pi)
	off := m.Offset(i)
	for q := 0; q < m.NbNeigh(i); q++ {
		p := off + q
		j := m.Neighbor(p)
		s := m.AtomType(j)
		c := coeffs[s]
		if c == nil {
			c = mat.NewDense(nmax, size, nil)
			coeffs[s] = c
		}
		if j == i {
			//the center's own density, a Gaussian sitting on the
			//origin: fc(0) = 1 and only l = 0 survives. It does not
			//move relative to the center, so its gradient is zero.
			for n, v := range ce.ri.Center() {
				c.Set(n, 0, c.At(n, 0)+v*y00)
			}
			if grad {
				E.pairGrad[p] = mat.NewDense(3*nmax, size, nil)
				E.pairCtr[p] = i
				E.pairTag[p] = i
				E.pairSpec[p] = s
			}
			continue
		}
		r := m.Distance(p)
		u := m.Direction(p)
		rv, rd := ce.ri.Calc(r, grad)
		yv, yg := ce.sh.Calc(u, grad)
		f := ce.fc.value(r)
		df := ce.fc.deriv(r)
		var pg, cg *mat.Dense
		if grad {
			pg = mat.NewDense(3*nmax, size, nil)
			cg = cgrads[s]
			if cg == nil {
				cg = mat.NewDense(3*nmax, size, nil)
				cgrads[s] = cg
			}
		}
		for n := 0; n < nmax; n++ {
			for l := 0; l <= lmax; l++ {
				rnl := rv.At(n, l)
				var dnl float64
				if grad {
					dnl = rd.At(n, l)
				}
				for mm := -l; mm <= l; mm++ {
					lm := harmonics.Index(l, mm)
					c.Set(n, lm, c.At(n, lm)+f*rnl*yv[lm])
					if grad {
						radial := (df*rnl + f*dnl) * yv[lm]
						for k := 0; k < 3; k++ {
							gv := u[k]*radial + f*rnl*yg[k*size+lm]/r
							pg.Set(k*nmax+n, lm, gv)
							cg.Set(k*nmax+n, lm, cg.At(k*nmax+n, lm)-gv)
						}
					}
				}
			}
		}
		if grad {
			E.pairGrad[p] = pg
			E.pairCtr[p] = i
			E.pairTag[p] = m.AtomTag(j)
			E.pairSpec[p] = s
		}
	}
	E.coeffs[i] = coeffs
	if grad {
		E.centerGrad[i] = cgrads
	}
}

// speciesOf returns the sorted distinct species of the real atoms of m.
func speciesOf(m *soap.Strict) []int {
	seen := make(map[int]bool)
	for i := 0; i < m.NAtoms(); i++ {
		seen[m.AtomType(i)] = true
	}
	sp := make([]int, 0, len(seen))
	for s := range seen {
		sp = append(sp, s)
	}
	sort.Ints(sp)
	return sp
}
