/*
 * neighborlist_test.go, part of gosoap
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
	"math/rand"
	"sort"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// randomStructure builds n atoms of alternating species scattered in a
// box of the given side, open boundaries.
func randomStructure(n int, side float64, seed int64) *Structure {
	rng := rand.New(rand.NewSource(seed))
	pos := mat.NewDense(n, 3, nil)
	types := make([]int, n)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			pos.Set(i, k, side*rng.Float64())
		}
		types[i] = 1 + i%2
	}
	s, err := NewStructure(pos, types, nil, [3]bool{})
	if err != nil {
		panic(err.Error())
	}
	return s
}

// strictDistances collects the sorted non-self distances of each center.
func strictDistances(S *Strict) [][]float64 {
	ret := make([][]float64, S.NAtoms())
	for i := 0; i < S.NAtoms(); i++ {
		off := S.Offset(i)
		for q := 0; q < S.NbNeigh(i); q++ {
			p := off + q
			if S.Neighbor(p) == i && S.Distance(p) == 0 {
				continue
			}
			ret[i] = append(ret[i], S.Distance(p))
		}
		sort.Float64s(ret[i])
	}
	return ret
}

func TestOpenAgainstBruteForce(Te *testing.T) {
	s := randomStructure(40, 8.0, 1)
	cutoff := 3.0
	S, err := DefaultStack(s, cutoff)
	if err != nil {
		Te.Fatal(err)
	}
	got := strictDistances(S)
	n := s.Len()
	want := make([][]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			d := 0.0
			for k := 0; k < 3; k++ {
				diff := s.Pos.At(j, k) - s.Pos.At(i, k)
				d += diff * diff
			}
			d = math.Sqrt(d)
			if d <= cutoff {
				want[i] = append(want[i], d)
			}
		}
		sort.Float64s(want[i])
	}
	for i := 0; i < n; i++ {
		if len(got[i]) != len(want[i]) {
			Te.Fatalf("center %d: %d neighbors, brute force finds %d", i, len(got[i]), len(want[i]))
		}
		for q := range got[i] {
			if math.Abs(got[i][q]-want[i][q]) > 1e-10 {
				Te.Errorf("center %d neighbor %d: distance %v vs %v", i, q, got[i][q], want[i][q])
			}
		}
	}
}

// periodicBruteForceCheck compares the stack's strict environments with
// an explicit minimum-image sum over lattice shifts, valid for any cell.
func periodicBruteForceCheck(Te *testing.T, cell, pos *mat.Dense, cutoff float64) {
	n, _ := pos.Dims()
	types := make([]int, n)
	for i := range types {
		types[i] = 1 + i%2
	}
	s, err := NewStructure(pos, types, cell, [3]bool{true, true, true})
	if err != nil {
		Te.Fatal(err)
	}
	S, err := DefaultStack(s, cutoff)
	if err != nil {
		Te.Fatal(err)
	}
	got := strictDistances(S)
	want := make([][]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for ix := -2; ix <= 2; ix++ {
				for iy := -2; iy <= 2; iy++ {
					for iz := -2; iz <= 2; iz++ {
						if j == i && ix == 0 && iy == 0 && iz == 0 {
							continue
						}
						d := 0.0
						for k := 0; k < 3; k++ {
							diff := pos.At(j, k) - pos.At(i, k) +
								float64(ix)*cell.At(0, k) + float64(iy)*cell.At(1, k) + float64(iz)*cell.At(2, k)
							d += diff * diff
						}
						d = math.Sqrt(d)
						if d <= cutoff {
							want[i] = append(want[i], d)
						}
					}
				}
			}
		}
		sort.Float64s(want[i])
	}
	for i := 0; i < n; i++ {
		if len(got[i]) != len(want[i]) {
			Te.Fatalf("center %d: %d neighbors, brute force finds %d", i, len(got[i]), len(want[i]))
		}
		for q := range got[i] {
			if math.Abs(got[i][q]-want[i][q]) > 1e-9 {
				Te.Errorf("center %d neighbor %d: distance %v vs %v", i, q, got[i][q], want[i][q])
			}
		}
	}
}

func TestPeriodicAgainstBruteForce(Te *testing.T) {
	//A cell small enough that atoms see several of their own images.
	cell := mat.NewDense(3, 3, []float64{4, 0, 0, 0, 5, 0, 0, 0, 4.5})
	pos := mat.NewDense(4, 3, []float64{
		0.1, 0.2, 0.3,
		2.0, 1.0, 3.0,
		3.5, 4.2, 0.5,
		1.2, 3.3, 2.2,
	})
	periodicBruteForceCheck(Te, cell, pos, 3.0)
}

// The ghost construction leans on the cell geometry helpers, so a
// skewed cell gets its own ground-truth comparison.
func TestTriclinicAgainstBruteForce(Te *testing.T) {
	cell := mat.NewDense(3, 3, []float64{4, 0.9, 0, 0.5, 5, 0.7, 0.3, 0.8, 4.5})
	pos := mat.NewDense(4, 3, []float64{
		0.1, 0.2, 0.3,
		2.0, 1.0, 3.0,
		3.5, 4.2, 0.5,
		1.2, 3.3, 2.2,
	})
	periodicBruteForceCheck(Te, cell, pos, 3.0)
}

// Translating an atom by a lattice vector must not change any
// environment.
func TestLatticeTranslationInvariance(Te *testing.T) {
	cell := mat.NewDense(3, 3, []float64{4, 0.3, 0, 0, 5, 0.1, 0.2, 0, 4.5})
	pos := mat.NewDense(3, 3, []float64{
		0.5, 0.5, 0.5,
		2.0, 1.0, 3.0,
		3.5, 4.2, 0.5,
	})
	types := []int{1, 2, 1}
	pbc := [3]bool{true, true, true}
	s1, err := NewStructure(pos, types, cell, pbc)
	if err != nil {
		Te.Fatal(err)
	}
	pos2 := mat.DenseCopyOf(pos)
	for k := 0; k < 3; k++ {
		pos2.Set(1, k, pos2.At(1, k)+2*cell.At(0, k)-cell.At(2, k))
	}
	s2, err := NewStructure(pos2, types, cell, pbc)
	if err != nil {
		Te.Fatal(err)
	}
	S1, err := DefaultStack(s1, 3.0)
	if err != nil {
		Te.Fatal(err)
	}
	S2, err := DefaultStack(s2, 3.0)
	if err != nil {
		Te.Fatal(err)
	}
	d1 := strictDistances(S1)
	d2 := strictDistances(S2)
	for i := range d1 {
		if len(d1[i]) != len(d2[i]) {
			Te.Fatalf("center %d: %d vs %d neighbors after lattice translation", i, len(d1[i]), len(d2[i]))
		}
		for q := range d1[i] {
			if math.Abs(d1[i][q]-d2[i][q]) > 1e-9 {
				Te.Errorf("center %d: distance %v became %v after lattice translation", i, d1[i][q], d2[i][q])
			}
		}
	}
}

func TestMixedPBCRejected(Te *testing.T) {
	cell := mat.NewDense(3, 3, []float64{4, 0, 0, 0, 4, 0, 0, 0, 4})
	pos := mat.NewDense(2, 3, []float64{0, 0, 0, 1, 1, 1})
	s, err := NewStructure(pos, []int{1, 1}, cell, [3]bool{true, true, false})
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := DefaultStack(s, 2.0); err == nil {
		Te.Error("expected an error for mixed periodic boundary conditions")
	}
}

func TestOffsetsAndSizes(Te *testing.T) {
	s := randomStructure(25, 6.0, 2)
	S, err := DefaultStack(s, 2.5)
	if err != nil {
		Te.Fatal(err)
	}
	total := 0
	for i := 0; i < S.NAtoms(); i++ {
		if S.Offset(i) != total {
			Te.Errorf("center %d: offset %d, expected %d", i, S.Offset(i), total)
		}
		total += S.NbNeigh(i)
	}
	if total != S.NbClusters(2) {
		Te.Errorf("neighbor counts sum to %d but there are %d pairs", total, S.NbClusters(2))
	}
	if S.NbClusters(1) != s.Len() {
		Te.Errorf("%d order-1 clusters for %d atoms", S.NbClusters(1), s.Len())
	}
}

func TestCenterContributionFirst(Te *testing.T) {
	s := randomStructure(10, 5.0, 3)
	S, err := DefaultStack(s, 2.0)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < S.NAtoms(); i++ {
		p := S.Offset(i)
		if S.Neighbor(p) != i {
			Te.Errorf("center %d: first pair points to %d, not to the center", i, S.Neighbor(p))
		}
		if S.Distance(p) != 0 {
			Te.Errorf("center %d: self pair has distance %v", i, S.Distance(p))
		}
		if S.PairCenter(p) != i {
			Te.Errorf("center %d: self pair has center %d", i, S.PairCenter(p))
		}
	}
}

func TestStrictGeometry(Te *testing.T) {
	s := randomStructure(30, 6.0, 4)
	cutoff := 2.5
	S, err := DefaultStack(s, cutoff)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < S.NAtoms(); i++ {
		off := S.Offset(i)
		for q := 0; q < S.NbNeigh(i); q++ {
			p := off + q
			d := S.Distance(p)
			if d > cutoff {
				Te.Errorf("pair %d: distance %v beyond the cutoff %v", p, d, cutoff)
			}
			if S.PairCenter(p) != i {
				Te.Errorf("pair %d: center %d, expected %d", p, S.PairCenter(p), i)
			}
			u := S.Direction(p)
			norm := math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
			if d == 0 {
				if norm != 0 {
					Te.Errorf("pair %d: self pair with nonzero direction", p)
				}
				continue
			}
			if math.Abs(norm-1) > 1e-12 {
				Te.Errorf("pair %d: direction norm %v", p, norm)
			}
			j := S.Neighbor(p)
			pi, pj := S.Position(i), S.Position(j)
			for k := 0; k < 3; k++ {
				if math.Abs(pi[k]+d*u[k]-pj[k]) > 1e-10 {
					Te.Errorf("pair %d: direction does not point at the neighbor", p)
				}
			}
		}
	}
}

func TestGhostOrigins(Te *testing.T) {
	cell := mat.NewDense(3, 3, []float64{3, 0, 0, 0, 3, 0, 0, 0, 3})
	pos := mat.NewDense(2, 3, []float64{0.5, 0.5, 0.5, 2.0, 2.0, 2.0})
	s, err := NewStructure(pos, []int{1, 2}, cell, [3]bool{true, true, true})
	if err != nil {
		Te.Fatal(err)
	}
	S, err := DefaultStack(s, 2.0)
	if err != nil {
		Te.Fatal(err)
	}
	n := S.NAtoms()
	if S.Size() <= n {
		Te.Fatal("a periodic structure this small must have ghosts")
	}
	for i := n; i < S.Size(); i++ {
		o := S.GhostOrigin(i)
		if o < 0 || o >= n {
			Te.Fatalf("ghost %d has origin %d outside the real atoms", i, o)
		}
		if S.AtomType(i) != S.AtomType(o) {
			Te.Errorf("ghost %d has species %d but its origin has %d", i, S.AtomType(i), S.AtomType(o))
		}
	}
	for i := 0; i < n; i++ {
		if S.AtomTag(i) != i {
			Te.Errorf("real atom %d has tag %d", i, S.AtomTag(i))
		}
	}
}

func TestIsolatedAtom(Te *testing.T) {
	pos := mat.NewDense(1, 3, []float64{1, 2, 3})
	s, err := NewStructure(pos, []int{6}, nil, [3]bool{})
	if err != nil {
		Te.Fatal(err)
	}
	S, err := DefaultStack(s, 3.0)
	if err != nil {
		Te.Fatal(err)
	}
	if S.NbClusters(2) != 1 {
		Te.Fatalf("isolated atom: %d pairs, expected only the self pair", S.NbClusters(2))
	}
	if S.Neighbor(S.Offset(0)) != 0 {
		Te.Error("isolated atom: the only pair is not the self pair")
	}
}

func TestDeterminism(Te *testing.T) {
	s := randomStructure(20, 5.0, 5)
	S1, err := DefaultStack(s, 2.0)
	if err != nil {
		Te.Fatal(err)
	}
	S2, err := DefaultStack(s.Copy(), 2.0)
	if err != nil {
		Te.Fatal(err)
	}
	if S1.NbClusters(2) != S2.NbClusters(2) {
		Te.Fatal("two builds over the same structure disagree on the pair count")
	}
	for p := 0; p < S1.NbClusters(2); p++ {
		if S1.Neighbor(p) != S2.Neighbor(p) || S1.Distance(p) != S2.Distance(p) {
			Te.Fatalf("two builds over the same structure disagree at pair %d", p)
		}
	}
}

func TestUpdateGeneration(Te *testing.T) {
	s := randomStructure(5, 4.0, 6)
	S, err := DefaultStack(s, 2.0)
	if err != nil {
		Te.Fatal(err)
	}
	g := S.Generation()
	if err := S.Update(); err != nil {
		Te.Fatal(err)
	}
	if S.Generation() != g+1 {
		Te.Errorf("generation went from %d to %d over one update", g, S.Generation())
	}
}
