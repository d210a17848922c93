/*
 * filters.go, part of gosoap
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

package soap

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// CenterContribution is the adaptor that prepends to each center's
// neighbor list a pair of the center with itself. The self pair carries
// the center's own density contribution through the same code path as
// the real neighbors, so calculators do not need a special case for it.
// The self pair is always the first pair of its center.
type CenterContribution struct {
	below   Manager
	offsets []int
	neigh   []int
	gen     uint64
	updated bool
}

// NewCenterContribution wraps below, which must provide a pair list.
func NewCenterContribution(below Manager) *CenterContribution {
	return &CenterContribution{below: below}
}

func (C *CenterContribution) Update() error {
	if err := C.below.Update(); err != nil {
		return errDecorate(err, "CenterContribution.Update")
	}
	n := C.below.NAtoms()
	if n > 0 && C.below.Offset(n-1)+C.below.NbNeigh(n-1) != C.below.NbClusters(2) {
		panic(ErrOffsetMismatch)
	}
	C.offsets = make([]int, n+1)
	C.neigh = C.neigh[:0]
	for i := 0; i < n; i++ {
		C.offsets[i] = len(C.neigh)
		C.neigh = append(C.neigh, i) //the self pair
		off := C.below.Offset(i)
		for q := 0; q < C.below.NbNeigh(i); q++ {
			C.neigh = append(C.neigh, C.below.Neighbor(off+q))
		}
	}
	C.offsets[n] = len(C.neigh)
	C.gen++
	C.updated = true
	return nil
}

func (C *CenterContribution) check() {
	if !C.updated {
		panic(ErrNotUpdated)
	}
}

func (C *CenterContribution) Size() int                { return C.below.Size() }
func (C *CenterContribution) NAtoms() int              { return C.below.NAtoms() }
func (C *CenterContribution) Position(i int) []float64 { return C.below.Position(i) }
func (C *CenterContribution) AtomType(i int) int       { return C.below.AtomType(i) }
func (C *CenterContribution) AtomTag(i int) int        { return C.below.AtomTag(i) }
func (C *CenterContribution) GhostOrigin(i int) int    { return C.below.GhostOrigin(i) }

func (C *CenterContribution) NbClusters(order int) int {
	C.check()
	switch order {
	case 1:
		return C.below.NAtoms()
	case 2:
		return len(C.neigh)
	}
	panic(ErrClusterOrder)
}

func (C *CenterContribution) NbNeigh(i int) int {
	C.check()
	if i < 0 || i >= len(C.offsets)-1 {
		panic(ErrAtomOutOfRange)
	}
	return C.offsets[i+1] - C.offsets[i]
}

func (C *CenterContribution) Offset(i int) int {
	C.check()
	if i < 0 || i >= len(C.offsets)-1 {
		panic(ErrAtomOutOfRange)
	}
	return C.offsets[i]
}

func (C *CenterContribution) Neighbor(p int) int {
	C.check()
	if p < 0 || p >= len(C.neigh) {
		panic(ErrAtomOutOfRange)
	}
	return C.neigh[p]
}

func (C *CenterContribution) Cell() *mat.Dense   { return C.below.Cell() }
func (C *CenterContribution) PBC() [3]bool       { return C.below.PBC() }
func (C *CenterContribution) Layer() int         { return C.below.Layer() + 1 }
func (C *CenterContribution) Generation() uint64 { return C.gen }

// Strict is the adaptor that enforces the exact cutoff. It keeps only
// the pairs whose distance is at most the cutoff, and caches for each
// surviving pair its distance, its unit direction from the center to
// the neighbor, and its center, so calculators never recompute them.
// A self pair has distance 0 and a zero direction, and always survives.
type Strict struct {
	below  Manager
	cutoff float64

	offsets []int
	neigh   []int
	center  []int
	dist    []float64
	dir     []float64 //3 entries per pair

	gen     uint64
	updated bool
}

// NewStrict wraps below, which must provide a pair list whose candidate
// pairs cover at least the given cutoff.
func NewStrict(below Manager, cutoff float64) (*Strict, error) {
	if cutoff <= 0 {
		return nil, newError("cutoff must be positive", "NewStrict")
	}
	return &Strict{below: below, cutoff: cutoff}, nil
}

// Cutoff returns the exact cutoff the adaptor enforces.
func (S *Strict) Cutoff() float64 { return S.cutoff }

func (S *Strict) Update() error {
	if err := S.below.Update(); err != nil {
		return errDecorate(err, "Strict.Update")
	}
	n := S.below.NAtoms()
	if n > 0 && S.below.Offset(n-1)+S.below.NbNeigh(n-1) != S.below.NbClusters(2) {
		panic(ErrOffsetMismatch)
	}
	S.offsets = make([]int, n+1)
	S.neigh = S.neigh[:0]
	S.center = S.center[:0]
	S.dist = S.dist[:0]
	S.dir = S.dir[:0]
	for i := 0; i < n; i++ {
		S.offsets[i] = len(S.neigh)
		pi := S.below.Position(i)
		off := S.below.Offset(i)
		for q := 0; q < S.below.NbNeigh(i); q++ {
			j := S.below.Neighbor(off + q)
			pj := S.below.Position(j)
			dx := pj[0] - pi[0]
			dy := pj[1] - pi[1]
			dz := pj[2] - pi[2]
			d := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if d > S.cutoff {
				continue
			}
			S.neigh = append(S.neigh, j)
			S.center = append(S.center, i)
			S.dist = append(S.dist, d)
			if d > 0 {
				S.dir = append(S.dir, dx/d, dy/d, dz/d)
			} else {
				S.dir = append(S.dir, 0, 0, 0)
			}
		}
	}
	S.offsets[n] = len(S.neigh)
	S.gen++
	S.updated = true
	return nil
}

func (S *Strict) check() {
	if !S.updated {
		panic(ErrNotUpdated)
	}
}

// Distance returns the center-neighbor distance of pair p.
func (S *Strict) Distance(p int) float64 {
	S.check()
	if p < 0 || p >= len(S.dist) {
		panic(ErrAtomOutOfRange)
	}
	return S.dist[p]
}

// Direction returns the unit vector from the center of pair p to its
// neighbor. The slice aliases the manager's storage and must not be
// modified. For a self pair it is the zero vector.
func (S *Strict) Direction(p int) []float64 {
	S.check()
	if p < 0 || p >= len(S.dist) {
		panic(ErrAtomOutOfRange)
	}
	return S.dir[3*p : 3*p+3]
}

// PairCenter returns the center atom of pair p.
func (S *Strict) PairCenter(p int) int {
	S.check()
	if p < 0 || p >= len(S.center) {
		panic(ErrAtomOutOfRange)
	}
	return S.center[p]
}

func (S *Strict) Size() int                { return S.below.Size() }
func (S *Strict) NAtoms() int              { return S.below.NAtoms() }
func (S *Strict) Position(i int) []float64 { return S.below.Position(i) }
func (S *Strict) AtomType(i int) int       { return S.below.AtomType(i) }
func (S *Strict) AtomTag(i int) int        { return S.below.AtomTag(i) }
func (S *Strict) GhostOrigin(i int) int    { return S.below.GhostOrigin(i) }

func (S *Strict) NbClusters(order int) int {
	S.check()
	switch order {
	case 1:
		return S.below.NAtoms()
	case 2:
		return len(S.neigh)
	}
	panic(ErrClusterOrder)
}

func (S *Strict) NbNeigh(i int) int {
	S.check()
	if i < 0 || i >= len(S.offsets)-1 {
		panic(ErrAtomOutOfRange)
	}
	return S.offsets[i+1] - S.offsets[i]
}

func (S *Strict) Offset(i int) int {
	S.check()
	if i < 0 || i >= len(S.offsets)-1 {
		panic(ErrAtomOutOfRange)
	}
	return S.offsets[i]
}

func (S *Strict) Neighbor(p int) int {
	S.check()
	if p < 0 || p >= len(S.neigh) {
		panic(ErrAtomOutOfRange)
	}
	return S.neigh[p]
}

func (S *Strict) Cell() *mat.Dense   { return S.below.Cell() }
func (S *Strict) PBC() [3]bool       { return S.below.PBC() }
func (S *Strict) Layer() int         { return S.below.Layer() + 1 }
func (S *Strict) Generation() uint64 { return S.gen }

// DefaultStack builds and updates the usual adaptor stack over a
// structure: centers, linked-cell pair list, center contribution, and
// the strict cutoff filter, in that order.
func DefaultStack(s *Structure, cutoff float64) (*Strict, error) {
	base := NewCenters(s)
	nl, err := NewNeighborList(base, cutoff)
	if err != nil {
		return nil, errDecorate(err, "DefaultStack")
	}
	cc := NewCenterContribution(nl)
	strict, err := NewStrict(cc, cutoff)
	if err != nil {
		return nil, errDecorate(err, "DefaultStack")
	}
	if err := strict.Update(); err != nil {
		return nil, errDecorate(err, "DefaultStack")
	}
	return strict, nil
}
