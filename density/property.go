/*
 * property.go, part of gosoap
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
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Expansion holds the spherical expansion coefficients of a structure:
// for every center i and every species s present around it, a block
// C(n, lm) over radial channels and flattened harmonics indices. Blocks
// are sparse over species: a center with no oxygen neighbors has no
// oxygen block.
//
// If gradients were computed, the expansion also holds, for every
// strict pair, the derivative of the center's coefficients with respect
// to the position of the neighbor's real atom, and, for every center,
// the derivative of its own coefficients with respect to its own
// position. Several pairs can share the same (center, real atom)
// combination when the neighbor is a periodic ghost; their
// contributions add.
type Expansion struct {
	nmax, lmax int
	gen        uint64
	species    []int
	coeffs     []map[int]*mat.Dense
	//gradient storage, nil unless requested
	pairGrad   []*mat.Dense //3*nmax x size, Cartesian-major rows
	pairCtr    []int
	pairTag    []int
	pairSpec   []int
	centerGrad []map[int]*mat.Dense
}

// harmSize returns the number of (l,m) combinations up to lmax.
func harmSize(lmax int) int { return (lmax + 1) * (lmax + 1) }

// MaxRadial returns the number of radial channels of the expansion.
func (E *Expansion) MaxRadial() int { return E.nmax }

// MaxAngular returns the largest harmonics degree of the expansion.
func (E *Expansion) MaxAngular() int { return E.lmax }

// NCenters returns the number of expansion centers.
func (E *Expansion) NCenters() int { return len(E.coeffs) }

// Generation returns the generation of the manager the expansion was
// computed from.
func (E *Expansion) Generation() uint64 { return E.gen }

// Species returns the sorted list of species present in the structure.
func (E *Expansion) Species() []int { return E.species }

// Keys returns the sorted species with a nonzero block around center i.
func (E *Expansion) Keys(i int) []int {
	if i < 0 || i >= len(E.coeffs) {
		panic(ErrBadCenter)
	}
	keys := make([]int, 0, len(E.coeffs[i]))
	for s := range E.coeffs[i] {
		keys = append(keys, s)
	}
	sort.Ints(keys)
	return keys
}

// Block returns the coefficient block of center i for species s, or nil
// if that species does not appear around i. The matrix aliases the
// expansion's storage and must not be modified.
func (E *Expansion) Block(i, s int) *mat.Dense {
	if i < 0 || i >= len(E.coeffs) {
		panic(ErrBadCenter)
	}
	return E.coeffs[i][s]
}

// DenseRow returns the coefficients of center i as a flat vector laid
// out over all species of the structure, in sorted order, with zeros
// for the species absent around i. Within a species the layout is
// radial channel first, then flattened harmonics index.
func (E *Expansion) DenseRow(i int) []float64 {
	if i < 0 || i >= len(E.coeffs) {
		panic(ErrBadCenter)
	}
	size := harmSize(E.lmax)
	blk := E.nmax * size
	row := make([]float64, len(E.species)*blk)
	for si, s := range E.species {
		c := E.coeffs[i][s]
		if c == nil {
			continue
		}
		for n := 0; n < E.nmax; n++ {
			copy(row[si*blk+n*size:si*blk+(n+1)*size], c.RawRowView(n))
		}
	}
	return row
}

// HasGradients reports whether the expansion carries gradients.
func (E *Expansion) HasGradients() bool { return E.pairGrad != nil }

// NPairs returns the number of strict pairs the gradients cover.
func (E *Expansion) NPairs() int {
	if E.pairGrad == nil {
		panic(ErrNoGradients)
	}
	return len(E.pairGrad)
}

// PairCenter returns the center of pair p.
func (E *Expansion) PairCenter(p int) int {
	E.checkPair(p)
	return E.pairCtr[p]
}

// PairTag returns the real atom the neighbor of pair p replicates.
func (E *Expansion) PairTag(p int) int {
	E.checkPair(p)
	return E.pairTag[p]
}

// PairSpecies returns the species of the neighbor of pair p.
func (E *Expansion) PairSpecies(p int) int {
	E.checkPair(p)
	return E.pairSpec[p]
}

// PairGrad returns the derivative of the coefficients of the center of
// pair p, in the species block of the neighbor, with respect to the
// position of the neighbor's real atom. Rows run Cartesian component
// first, then radial channel: row k*MaxRadial()+n. The matrix aliases
// the expansion's storage and must not be modified.
func (E *Expansion) PairGrad(p int) *mat.Dense {
	E.checkPair(p)
	return E.pairGrad[p]
}

// CenterGrad returns the derivative of the coefficients of center i,
// species block s, with respect to the center's own position, with the
// same layout as PairGrad. It returns nil if s does not appear around
// i.
func (E *Expansion) CenterGrad(i, s int) *mat.Dense {
	if E.centerGrad == nil {
		panic(ErrNoGradients)
	}
	if i < 0 || i >= len(E.centerGrad) {
		panic(ErrBadCenter)
	}
	return E.centerGrad[i][s]
}

func (E *Expansion) checkPair(p int) {
	if E.pairGrad == nil {
		panic(ErrNoGradients)
	}
	if p < 0 || p >= len(E.pairGrad) {
		panic(ErrBadPair)
	}
}

// SoapVectors holds the SOAP invariants of a structure. For every
// center the vector is stored as sparse blocks keyed by sorted species
// pairs. For the power spectrum a block has one row per radial channel
// pair (n1*nmax+n2) and one column per degree l; for the radial
// spectrum a single column over radial channels.
//
// If gradients were computed, the same block structure holds the
// derivatives with respect to atomic positions, per strict pair and per
// center, with rows running Cartesian component first.
type SoapVectors struct {
	nmax, lmax int
	radial     bool //radial spectrum instead of power spectrum
	gen        uint64
	keys       [][2]int
	blocks     []map[[2]int]*mat.Dense
	pairGrad   []map[[2]int]*mat.Dense
	pairCtr    []int
	pairTag    []int
	centerGrad []map[[2]int]*mat.Dense
}

// NCenters returns the number of centers.
func (V *SoapVectors) NCenters() int { return len(V.blocks) }

// Generation returns the generation of the manager the vectors were
// computed from.
func (V *SoapVectors) Generation() uint64 { return V.gen }

// GlobalKeys returns the sorted species pairs appearing anywhere in the
// structure. Dense rows are laid out over this list.
func (V *SoapVectors) GlobalKeys() [][2]int { return V.keys }

// Keys returns the sorted species pairs with a nonzero block at center
// i.
func (V *SoapVectors) Keys(i int) [][2]int {
	if i < 0 || i >= len(V.blocks) {
		panic(ErrBadCenter)
	}
	keys := make([][2]int, 0, len(V.blocks[i]))
	for k := range V.blocks[i] {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}

// Block returns the invariant block of center i for the species pair
// key, or nil if absent. The matrix aliases the vector's storage and
// must not be modified.
func (V *SoapVectors) Block(i int, key [2]int) *mat.Dense {
	if i < 0 || i >= len(V.blocks) {
		panic(ErrBadCenter)
	}
	return V.blocks[i][key]
}

// blockLen returns the flattened length of one block.
func (V *SoapVectors) blockLen() int {
	if V.radial {
		return V.nmax
	}
	return V.nmax * V.nmax * (V.lmax + 1)
}

// RowLen returns the length of a dense feature row.
func (V *SoapVectors) RowLen() int { return len(V.keys) * V.blockLen() }

// DenseFeatureRow returns the SOAP vector of center i laid out over
// GlobalKeys, with zeros for absent blocks. Off-diagonal species pairs
// are scaled by sqrt(2) so that the Euclidean dot product of two rows
// equals the full contraction over ordered species pairs.
func (V *SoapVectors) DenseFeatureRow(i int) []float64 {
	if i < 0 || i >= len(V.blocks) {
		panic(ErrBadCenter)
	}
	return V.denseFrom(V.blocks[i], 1)
}

// denseFrom flattens a block map over the global key list. nCart is 1
// for values and 3 for gradients.
func (V *SoapVectors) denseFrom(blocks map[[2]int]*mat.Dense, nCart int) []float64 {
	bl := V.blockLen()
	row := make([]float64, nCart*len(V.keys)*bl)
	rowLen := len(V.keys) * bl
	for ki, key := range V.keys {
		b := blocks[key]
		if b == nil {
			continue
		}
		scale := 1.0
		if key[0] != key[1] {
			scale = math.Sqrt2
		}
		r, c := b.Dims()
		rPerCart := r / nCart
		for k := 0; k < nCart; k++ {
			at := k*rowLen + ki*bl
			for rr := 0; rr < rPerCart; rr++ {
				for cc := 0; cc < c; cc++ {
					row[at] = scale * b.At(k*rPerCart+rr, cc)
					at++
				}
			}
		}
	}
	return row
}

// HasGradients reports whether the vectors carry gradients.
func (V *SoapVectors) HasGradients() bool { return V.pairGrad != nil }

// NPairs returns the number of strict pairs the gradients cover.
func (V *SoapVectors) NPairs() int {
	if V.pairGrad == nil {
		panic(ErrNoGradients)
	}
	return len(V.pairGrad)
}

// PairCenter returns the center of pair p.
func (V *SoapVectors) PairCenter(p int) int {
	V.checkPair(p)
	return V.pairCtr[p]
}

// PairTag returns the real atom the neighbor of pair p replicates.
func (V *SoapVectors) PairTag(p int) int {
	V.checkPair(p)
	return V.pairTag[p]
}

// PairGrad returns the blocks of the derivative of the SOAP vector of
// the center of pair p with respect to the position of the neighbor's
// real atom. Rows run Cartesian component first.
func (V *SoapVectors) PairGrad(p int) map[[2]int]*mat.Dense {
	V.checkPair(p)
	return V.pairGrad[p]
}

// DenseGradRow returns the gradient from pair p as three dense rows
// laid out like DenseFeatureRow, concatenated by Cartesian component,
// with the same sqrt(2) scaling.
func (V *SoapVectors) DenseGradRow(p int) []float64 {
	V.checkPair(p)
	return V.denseFrom(V.pairGrad[p], 3)
}

// CenterGrad returns the blocks of the derivative of the SOAP vector of
// center i with respect to the center's own position.
func (V *SoapVectors) CenterGrad(i int) map[[2]int]*mat.Dense {
	if V.centerGrad == nil {
		panic(ErrNoGradients)
	}
	if i < 0 || i >= len(V.centerGrad) {
		panic(ErrBadCenter)
	}
	return V.centerGrad[i]
}

// DenseCenterGradRow returns the center's own gradient as three dense
// rows laid out like DenseFeatureRow, concatenated by Cartesian
// component.
func (V *SoapVectors) DenseCenterGradRow(i int) []float64 {
	if V.centerGrad == nil {
		panic(ErrNoGradients)
	}
	if i < 0 || i >= len(V.centerGrad) {
		panic(ErrBadCenter)
	}
	return V.denseFrom(V.centerGrad[i], 3)
}

func (V *SoapVectors) checkPair(p int) {
	if V.pairGrad == nil {
		panic(ErrNoGradients)
	}
	if p < 0 || p >= len(V.pairGrad) {
		panic(ErrBadPair)
	}
}

// sortKeys orders species pairs lexicographically.
func sortKeys(keys [][2]int) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
}

// pairKey returns the sorted species pair of a and b.
func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}
