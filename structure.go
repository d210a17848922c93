/*
 * structure.go, part of gosoap
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
	"encoding/json"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
)

// degenerateCell is the smallest cell volume, in cubic length units,
// that is still considered a valid periodic cell.
const degenerateCell = 1e-10

// Structure holds an atomic structure: positions, atom types, and, if
// the structure is periodic, the unit cell. Positions are a dense
// matrix with one row per atom. The cell is a 3x3 matrix whose rows are
// the cell vectors. Cell may be nil for a fully non-periodic structure.
type Structure struct {
	Pos   *mat.Dense
	Types []int
	Cell  *mat.Dense
	PBC   [3]bool
}

// NewStructure builds a Structure after checking that the given data is
// consistent: one type per atom, 3 columns in the position matrix, and,
// if any direction is periodic, a non-degenerate cell.
func NewStructure(pos *mat.Dense, types []int, cell *mat.Dense, pbc [3]bool) (*Structure, error) {
	if pos == nil {
		return nil, newError("nil positions", "NewStructure")
	}
	n, c := pos.Dims()
	if c != 3 {
		return nil, newError(fmt.Sprintf("positions must have 3 columns, have %d", c), "NewStructure")
	}
	if len(types) != n {
		return nil, newError(fmt.Sprintf("have %d atoms but %d types", n, len(types)), "NewStructure")
	}
	periodic := pbc[0] || pbc[1] || pbc[2]
	if periodic {
		if cell == nil {
			return nil, newError("periodic structure needs a cell", "NewStructure")
		}
		if r, cc := cell.Dims(); r != 3 || cc != 3 {
			return nil, newError("cell must be a 3x3 matrix", "NewStructure")
		}
		if math.Abs(det3(cell)) < degenerateCell {
			return nil, newError("degenerate cell", "NewStructure")
		}
	}
	return &Structure{Pos: pos, Types: types, Cell: cell, PBC: pbc}, nil
}

// Len returns the number of atoms in the structure.
func (s *Structure) Len() int {
	n, _ := s.Pos.Dims()
	return n
}

// Copy returns a deep copy of the structure.
func (s *Structure) Copy() *Structure {
	ret := &Structure{}
	ret.Pos = mat.DenseCopyOf(s.Pos)
	ret.Types = make([]int, len(s.Types))
	copy(ret.Types, s.Types)
	if s.Cell != nil {
		ret.Cell = mat.DenseCopyOf(s.Cell)
	}
	ret.PBC = s.PBC
	return ret
}

// StructureData is the JSON-encodable mirror of Structure, meant for
// transferring structures between programs. Positions and cell are
// stored row-wise.
type StructureData struct {
	Positions [][3]float64   `json:"positions"`
	Types     []int          `json:"types"`
	Cell      *[3][3]float64 `json:"cell,omitempty"`
	PBC       [3]bool        `json:"pbc"`
}

// Data returns the JSON-encodable record for the structure.
func (s *Structure) Data() *StructureData {
	n := s.Len()
	d := &StructureData{
		Positions: make([][3]float64, n),
		Types:     make([]int, n),
		PBC:       s.PBC,
	}
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			d.Positions[i][k] = s.Pos.At(i, k)
		}
	}
	copy(d.Types, s.Types)
	if s.Cell != nil {
		var c [3][3]float64
		for i := 0; i < 3; i++ {
			for k := 0; k < 3; k++ {
				c[i][k] = s.Cell.At(i, k)
			}
		}
		d.Cell = &c
	}
	return d
}

// Structure builds a Structure from the record, validating it the same
// way NewStructure does.
func (d *StructureData) Structure() (*Structure, error) {
	n := len(d.Positions)
	if n == 0 {
		return nil, newError("empty structure", "StructureData.Structure")
	}
	pos := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			pos.Set(i, k, d.Positions[i][k])
		}
	}
	var cell *mat.Dense
	if d.Cell != nil {
		cell = mat.NewDense(3, 3, nil)
		for i := 0; i < 3; i++ {
			for k := 0; k < 3; k++ {
				cell.Set(i, k, d.Cell[i][k])
			}
		}
	}
	s, err := NewStructure(pos, d.Types, cell, d.PBC)
	if err != nil {
		return nil, errDecorate(err, "StructureData.Structure")
	}
	return s, nil
}

// EncodeStructure writes the structure to w as JSON.
func EncodeStructure(s *Structure, w io.Writer) error {
	if err := json.NewEncoder(w).Encode(s.Data()); err != nil {
		return newError(err.Error(), "EncodeStructure")
	}
	return nil
}

// DecodeStructure reads a JSON-encoded structure from r.
func DecodeStructure(r io.Reader) (*Structure, error) {
	d := new(StructureData)
	if err := json.NewDecoder(r).Decode(d); err != nil {
		return nil, newError(err.Error(), "DecodeStructure")
	}
	s, err := d.Structure()
	if err != nil {
		return nil, errDecorate(err, "DecodeStructure")
	}
	return s, nil
}

// det3 returns the determinant of a 3x3 matrix.
func det3(m *mat.Dense) float64 {
	return m.At(0, 0)*(m.At(1, 1)*m.At(2, 2)-m.At(1, 2)*m.At(2, 1)) -
		m.At(0, 1)*(m.At(1, 0)*m.At(2, 2)-m.At(1, 2)*m.At(2, 0)) +
		m.At(0, 2)*(m.At(1, 0)*m.At(2, 1)-m.At(1, 1)*m.At(2, 0))
}
