/*
 * doc.go, part of gosoap
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

/*Package soap provides atomistic structure management for local-environment
descriptors: atomic structures with optional periodic boundary conditions,
neighbor lists built by a linked-cell algorithm with ghost atoms, and a stack
of adaptors that refine the raw pair list into the exact spherical environment
each descriptor needs.

The descriptors themselves live in the subpackages: basis implements the
radial integrals (GTO and DVR), harmonics the real spherical harmonics, and
density the spherical expansion and the SOAP invariants built from it.

A typical use builds a Structure, runs it through the default adaptor stack,
and hands the result to a calculator:

	s, err := soap.NewStructure(pos, types, cell, [3]bool{true, true, true})
	if err != nil {
		...
	}
	m, err := soap.DefaultStack(s, 4.0)
	if err != nil {
		...
	}
	calc, err := density.NewSphericalExpansion(density.DefaultOptions())
	...
	exp, err := calc.Compute(m)

Positions are kept as gonum dense matrices with one row per atom, so they
can be fed from, and back into, any gonum-based pipeline.*/
package soap
