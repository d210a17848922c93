/*
 * manager.go, part of gosoap
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
	"gonum.org/v1/gonum/mat"
)

// Manager is the interface shared by the base structure manager and the
// adaptors stacked on top of it. A manager exposes a view of an atomic
// structure as clusters of atoms: order-1 clusters are the atoms
// themselves, order-2 clusters are center-neighbor pairs. Adaptors wrap
// another manager and refine its view, so a stack of managers is built
// bottom up and queried from the top.
//
// Atoms are indexed from 0 to Size()-1. The first NAtoms() of them are
// the real atoms of the structure, the rest are periodic ghosts. Pairs
// are indexed from 0 to NbClusters(2)-1, grouped by center: the pairs
// of center i occupy the half-open index range [Offset(i), Offset(i)+
// NbNeigh(i)).
//
// Update builds or rebuilds the manager's view from the structure
// below. All other methods panic with ErrNotUpdated if called before
// the first successful Update. Indexing methods panic on out-of-range
// arguments, and NbClusters panics on an order the manager does not
// provide. Those panics signal bugs in the caller; recoverable
// conditions, like inconsistent geometry, are returned by Update as
// errors.
type Manager interface {
	//Update (re)builds the manager's view of the structure. It must
	//be called again after the underlying structure changes.
	Update() error
	//Size returns the total number of atoms in the manager's view,
	//ghosts included.
	Size() int
	//NAtoms returns the number of real atoms, i.e. those that can act
	//as expansion centers.
	NAtoms() int
	//Position returns the Cartesian position of atom i as a 3-slice.
	//The slice aliases the manager's storage and must not be modified.
	Position(i int) []float64
	//AtomType returns the species of atom i. Ghosts have the species
	//of their originating real atom.
	AtomType(i int) int
	//AtomTag returns the index of the real atom that atom i replicates.
	//For a real atom it is the atom's own index.
	AtomTag(i int) int
	//GhostOrigin is a synonym of AtomTag kept for readability at call
	//sites that deal specifically with ghosts.
	GhostOrigin(i int) int
	//NbClusters returns the number of clusters of the given order: 1
	//for atoms, 2 for pairs. It panics on any other order, or on order
	//2 for a manager with no pair list.
	NbClusters(order int) int
	//NbNeigh returns the number of neighbors of center i.
	NbNeigh(i int) int
	//Offset returns the index of the first pair of center i in the
	//global pair list.
	Offset(i int) int
	//Neighbor returns the atom index of the neighbor in pair p.
	Neighbor(p int) int
	//Cell returns the unit cell, rows being the cell vectors, or nil
	//for a non-periodic structure.
	Cell() *mat.Dense
	//PBC returns the periodicity of each cell direction.
	PBC() [3]bool
	//Layer returns how many adaptors sit below this manager: 0 for the
	//base manager, one more for each wrapper.
	Layer() int
	//Generation returns a counter incremented by every successful
	//Update. Calculators use it to detect stale property data.
	Generation() uint64
}

// Centers is the base manager. It exposes the atoms of a Structure as
// order-1 clusters and provides no pair list; adaptors add that.
type Centers struct {
	s       *Structure
	gen     uint64
	updated bool
}

// NewCenters returns a base manager over s. Update must be called
// before the manager is queried.
func NewCenters(s *Structure) *Centers {
	if s == nil {
		panic(ErrNilStructure)
	}
	return &Centers{s: s}
}

// Structure returns the structure the manager was built over.
func (C *Centers) Structure() *Structure { return C.s }

func (C *Centers) Update() error {
	C.gen++
	C.updated = true
	return nil
}

func (C *Centers) check() {
	if !C.updated {
		panic(ErrNotUpdated)
	}
}

func (C *Centers) Size() int {
	C.check()
	return C.s.Len()
}

func (C *Centers) NAtoms() int {
	C.check()
	return C.s.Len()
}

func (C *Centers) Position(i int) []float64 {
	C.check()
	if i < 0 || i >= C.s.Len() {
		panic(ErrAtomOutOfRange)
	}
	return C.s.Pos.RawRowView(i)
}

func (C *Centers) AtomType(i int) int {
	C.check()
	if i < 0 || i >= len(C.s.Types) {
		panic(ErrAtomOutOfRange)
	}
	return C.s.Types[i]
}

func (C *Centers) AtomTag(i int) int {
	C.check()
	if i < 0 || i >= C.s.Len() {
		panic(ErrAtomOutOfRange)
	}
	return i
}

func (C *Centers) GhostOrigin(i int) int { return C.AtomTag(i) }

func (C *Centers) NbClusters(order int) int {
	C.check()
	if order != 1 {
		panic(ErrClusterOrder)
	}
	return C.s.Len()
}

func (C *Centers) NbNeigh(i int) int  { panic(ErrClusterOrder) }
func (C *Centers) Offset(i int) int   { panic(ErrClusterOrder) }
func (C *Centers) Neighbor(p int) int { panic(ErrClusterOrder) }

func (C *Centers) Cell() *mat.Dense { return C.s.Cell }
func (C *Centers) PBC() [3]bool     { return C.s.PBC }
func (C *Centers) Layer() int       { return 0 }

func (C *Centers) Generation() uint64 { return C.gen }
