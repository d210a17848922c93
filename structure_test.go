/*
 * structure_test.go, part of gosoap
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
	"bytes"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStructureValidation(Te *testing.T) {
	pos := mat.NewDense(2, 3, []float64{0, 0, 0, 1, 0, 0})
	if _, err := NewStructure(pos, []int{1}, nil, [3]bool{}); err == nil {
		Te.Error("expected an error for mismatched types length")
	}
	if _, err := NewStructure(pos, []int{1, 1}, nil, [3]bool{true, true, true}); err == nil {
		Te.Error("expected an error for a periodic structure without a cell")
	}
	flat := mat.NewDense(3, 3, []float64{1, 0, 0, 2, 0, 0, 0, 0, 1})
	if _, err := NewStructure(pos, []int{1, 1}, flat, [3]bool{true, true, true}); err == nil {
		Te.Error("expected an error for a degenerate cell")
	}
	if _, err := NewStructure(pos, []int{1, 1}, nil, [3]bool{}); err != nil {
		Te.Errorf("valid open structure rejected: %v", err)
	}
}

func TestStructureJSONRoundTrip(Te *testing.T) {
	pos := mat.NewDense(2, 3, []float64{0.5, 0.25, 0.125, 1, 2, 3})
	cell := mat.NewDense(3, 3, []float64{4, 0, 0, 0, 4, 0, 0, 0, 4})
	s, err := NewStructure(pos, []int{8, 1}, cell, [3]bool{true, true, true})
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodeStructure(s, &buf); err != nil {
		Te.Fatal(err)
	}
	back, err := DecodeStructure(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if !mat.Equal(s.Pos, back.Pos) || !mat.Equal(s.Cell, back.Cell) {
		Te.Error("positions or cell changed over a JSON round trip")
	}
	for i, t := range s.Types {
		if back.Types[i] != t {
			Te.Errorf("atom %d: type %d became %d", i, t, back.Types[i])
		}
	}
	if back.PBC != s.PBC {
		Te.Error("periodicity changed over a JSON round trip")
	}
}
