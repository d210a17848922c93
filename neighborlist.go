/*
 * neighborlist.go, part of gosoap
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// NeighborList is the adaptor that builds a pair list with a linked-cell
// algorithm. For periodic structures it wraps the atoms into the unit
// cell and surrounds them with ghost copies, so that every neighbor of
// a real atom is physically present in the list and no minimum-image
// logic is needed downstream.
//
// The pair list is directional and a superset of the true neighborhood:
// every atom found in the 27 cells around a center's cell becomes a
// candidate neighbor, whatever its exact distance. The Strict adaptor
// prunes the list down to the exact cutoff. Pairs (i,j) and (j,i) both
// appear when both atoms are real.
type NeighborList struct {
	below  Manager
	cutoff float64

	pos     *mat.Dense
	types   []int
	tags    []int
	nReal   int
	offsets []int
	neigh   []int

	gen     uint64
	updated bool
}

// NewNeighborList wraps below with a linked-cell pair list builder. The
// cutoff must be positive. Update must be called before the manager is
// queried.
func NewNeighborList(below Manager, cutoff float64) (*NeighborList, error) {
	if cutoff <= 0 {
		return nil, newError(fmt.Sprintf("cutoff must be positive, got %v", cutoff), "NewNeighborList")
	}
	return &NeighborList{below: below, cutoff: cutoff}, nil
}

// Cutoff returns the cutoff the list was built for.
func (N *NeighborList) Cutoff() float64 { return N.cutoff }

// Update rebuilds the pair list from scratch. There is no skin: the
// list is tied to the exact current positions, and any change to the
// structure requires calling Update again.
func (N *NeighborList) Update() error {
	if err := N.below.Update(); err != nil {
		return errDecorate(err, "NeighborList.Update")
	}
	pbc := N.below.PBC()
	periodic := pbc[0] && pbc[1] && pbc[2]
	if !periodic && (pbc[0] || pbc[1] || pbc[2]) {
		return newError("mixed periodic boundary conditions are not supported", "NeighborList.Update")
	}
	n := N.below.NAtoms()
	var err error
	if periodic {
		err = N.buildPeriodic(n)
	} else {
		N.buildOpen(n)
	}
	if err != nil {
		return errDecorate(err, "NeighborList.Update")
	}
	N.buildPairs()
	N.gen++
	N.updated = true
	return nil
}

// buildOpen copies the real atoms as they are. No ghosts are needed.
func (N *NeighborList) buildOpen(n int) {
	N.pos = mat.NewDense(n, 3, nil)
	N.types = make([]int, n)
	N.tags = make([]int, n)
	for i := 0; i < n; i++ {
		p := N.below.Position(i)
		N.pos.SetRow(i, p)
		N.types[i] = N.below.AtomType(i)
		N.tags[i] = i
	}
	N.nReal = n
}

// buildPeriodic wraps every atom into the unit cell and adds the ghost
// copies whose positions fall within one cutoff of the cell. Ghosts are
// appended after the real atoms and remember the real atom they copy.
func (N *NeighborList) buildPeriodic(n int) error {
	cell := N.below.Cell()
	var inv mat.Dense
	if err := inv.Inverse(cell); err != nil {
		return newError("cell is not invertible: "+err.Error(), "buildPeriodic")
	}
	// Wrap, in fractional coordinates, into [0,1).
	wrapped := mat.NewDense(n, 3, nil)
	frac := make([]float64, 3)
	for i := 0; i < n; i++ {
		p := N.below.Position(i)
		for k := 0; k < 3; k++ {
			frac[k] = p[0]*inv.At(0, k) + p[1]*inv.At(1, k) + p[2]*inv.At(2, k)
			frac[k] -= math.Floor(frac[k])
		}
		for k := 0; k < 3; k++ {
			wrapped.Set(i, k, frac[0]*cell.At(0, k)+frac[1]*cell.At(1, k)+frac[2]*cell.At(2, k))
		}
	}
	// The skin box: bounding box of the cell corners, padded by one
	// cutoff. Every ghost that can be a candidate neighbor of a wrapped
	// real atom lies inside it.
	lo, hi := cellBox(cell)
	for k := 0; k < 3; k++ {
		lo[k] -= N.cutoff
		hi[k] += N.cutoff
	}
	reps := cellRepetitions(cell, N.cutoff)
	pos := make([]float64, 0, 3*n)
	pos = append(pos, wrapped.RawMatrix().Data[:3*n]...)
	types := make([]int, n)
	tags := make([]int, n)
	for i := 0; i < n; i++ {
		types[i] = N.below.AtomType(i)
		tags[i] = i
	}
	var shift [3]float64
	for ix := -reps[0]; ix <= reps[0]; ix++ {
		for iy := -reps[1]; iy <= reps[1]; iy++ {
			for iz := -reps[2]; iz <= reps[2]; iz++ {
				if ix == 0 && iy == 0 && iz == 0 {
					continue
				}
				for k := 0; k < 3; k++ {
					shift[k] = float64(ix)*cell.At(0, k) + float64(iy)*cell.At(1, k) + float64(iz)*cell.At(2, k)
				}
				for i := 0; i < n; i++ {
					x := wrapped.At(i, 0) + shift[0]
					y := wrapped.At(i, 1) + shift[1]
					z := wrapped.At(i, 2) + shift[2]
					if x < lo[0] || x > hi[0] || y < lo[1] || y > hi[1] || z < lo[2] || z > hi[2] {
						continue
					}
					pos = append(pos, x, y, z)
					types = append(types, N.below.AtomType(i))
					tags = append(tags, i)
				}
			}
		}
	}
	N.pos = mat.NewDense(len(pos)/3, 3, pos)
	N.types = types
	N.tags = tags
	N.nReal = n
	return nil
}

// buildPairs bins all atoms, real and ghost, on a grid whose bins are
// at least one cutoff wide, and lists for each real atom every other
// atom found in the 27 bins around its own.
func (N *NeighborList) buildPairs() {
	total, _ := N.pos.Dims()
	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i < total; i++ {
		for k := 0; k < 3; k++ {
			v := N.pos.At(i, k)
			if v < lo[k] {
				lo[k] = v
			}
			if v > hi[k] {
				hi[k] = v
			}
		}
	}
	var nb [3]int
	var binsize [3]float64
	for k := 0; k < 3; k++ {
		ext := hi[k] - lo[k]
		nb[k] = int(ext / N.cutoff)
		if nb[k] < 1 {
			nb[k] = 1
		}
		binsize[k] = ext / float64(nb[k])
	}
	binOf := func(i int) (int, int, int) {
		var b [3]int
		for k := 0; k < 3; k++ {
			if binsize[k] > 0 {
				b[k] = int((N.pos.At(i, k) - lo[k]) / binsize[k])
			}
			if b[k] >= nb[k] {
				b[k] = nb[k] - 1
			}
		}
		return b[0], b[1], b[2]
	}
	// Classic linked cells: per-bin chains through binNext.
	binHead := make([]int, nb[0]*nb[1]*nb[2])
	for i := range binHead {
		binHead[i] = -1
	}
	binNext := make([]int, total)
	flat := func(bx, by, bz int) int { return (bx*nb[1]+by)*nb[2] + bz }
	for i := 0; i < total; i++ {
		b := flat(binOf(i))
		binNext[i] = binHead[b]
		binHead[b] = i
	}
	N.offsets = make([]int, N.nReal+1)
	N.neigh = N.neigh[:0]
	for i := 0; i < N.nReal; i++ {
		N.offsets[i] = len(N.neigh)
		bx, by, bz := binOf(i)
		for dx := -1; dx <= 1; dx++ {
			x := bx + dx
			if x < 0 || x >= nb[0] {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				y := by + dy
				if y < 0 || y >= nb[1] {
					continue
				}
				for dz := -1; dz <= 1; dz++ {
					z := bz + dz
					if z < 0 || z >= nb[2] {
						continue
					}
					for j := binHead[flat(x, y, z)]; j >= 0; j = binNext[j] {
						if j == i {
							continue
						}
						N.neigh = append(N.neigh, j)
					}
				}
			}
		}
	}
	N.offsets[N.nReal] = len(N.neigh)
}

func (N *NeighborList) check() {
	if !N.updated {
		panic(ErrNotUpdated)
	}
}

func (N *NeighborList) Size() int {
	N.check()
	total, _ := N.pos.Dims()
	return total
}

func (N *NeighborList) NAtoms() int {
	N.check()
	return N.nReal
}

func (N *NeighborList) Position(i int) []float64 {
	N.check()
	if i < 0 || i >= len(N.tags) {
		panic(ErrAtomOutOfRange)
	}
	return N.pos.RawRowView(i)
}

func (N *NeighborList) AtomType(i int) int {
	N.check()
	if i < 0 || i >= len(N.types) {
		panic(ErrAtomOutOfRange)
	}
	return N.types[i]
}

func (N *NeighborList) AtomTag(i int) int {
	N.check()
	if i < 0 || i >= len(N.tags) {
		panic(ErrAtomOutOfRange)
	}
	return N.tags[i]
}

func (N *NeighborList) GhostOrigin(i int) int { return N.AtomTag(i) }

func (N *NeighborList) NbClusters(order int) int {
	N.check()
	switch order {
	case 1:
		return N.nReal
	case 2:
		return len(N.neigh)
	}
	panic(ErrClusterOrder)
}

func (N *NeighborList) NbNeigh(i int) int {
	N.check()
	if i < 0 || i >= N.nReal {
		panic(ErrAtomOutOfRange)
	}
	return N.offsets[i+1] - N.offsets[i]
}

func (N *NeighborList) Offset(i int) int {
	N.check()
	if i < 0 || i >= N.nReal {
		panic(ErrAtomOutOfRange)
	}
	return N.offsets[i]
}

func (N *NeighborList) Neighbor(p int) int {
	N.check()
	if p < 0 || p >= len(N.neigh) {
		panic(ErrAtomOutOfRange)
	}
	return N.neigh[p]
}

func (N *NeighborList) Cell() *mat.Dense   { return N.below.Cell() }
func (N *NeighborList) PBC() [3]bool       { return N.below.PBC() }
func (N *NeighborList) Layer() int         { return N.below.Layer() + 1 }
func (N *NeighborList) Generation() uint64 { return N.gen }

// cellBox returns the bounding box of the eight corners of the cell.
func cellBox(cell *mat.Dense) (lo, hi [3]float64) {
	for k := 0; k < 3; k++ {
		lo[k] = math.Inf(1)
		hi[k] = math.Inf(-1)
	}
	for c := 0; c < 8; c++ {
		for k := 0; k < 3; k++ {
			v := 0.0
			for d := 0; d < 3; d++ {
				if c&(1<<uint(d)) != 0 {
					v += cell.At(d, k)
				}
			}
			if v < lo[k] {
				lo[k] = v
			}
			if v > hi[k] {
				hi[k] = v
			}
		}
	}
	return lo, hi
}

// cellRepetitions returns, for each cell direction, how many cell
// translations each way are needed so that the ghost images cover one
// cutoff beyond the cell. The spacing of the lattice planes along
// direction d is the cell volume over the area of the face spanned by
// the other two vectors.
func cellRepetitions(cell *mat.Dense, cutoff float64) [3]int {
	vol := math.Abs(det3(cell))
	var reps [3]int
	for d := 0; d < 3; d++ {
		e, f := (d+1)%3, (d+2)%3
		cx := cell.At(e, 1)*cell.At(f, 2) - cell.At(e, 2)*cell.At(f, 1)
		cy := cell.At(e, 2)*cell.At(f, 0) - cell.At(e, 0)*cell.At(f, 2)
		cz := cell.At(e, 0)*cell.At(f, 1) - cell.At(e, 1)*cell.At(f, 0)
		area := math.Sqrt(cx*cx + cy*cy + cz*cz)
		h := vol / area
		reps[d] = int(math.Ceil(cutoff/h)) + 1
	}
	return reps
}
