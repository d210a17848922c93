/*
 * errors.go, part of gosoap
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

// Error is the same interface as in the parent package. Redeclared here
// so the package's own errors satisfy it without an import cycle in its
// tests.
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the concrete error type of the package.
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

// Decorate adds dec to the decoration slice of the error, and returns
// the resulting slice. An empty dec is not added.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func newError(msg, caller string) *CError {
	return &CError{msg: msg, deco: []string{caller}}
}

func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// PanicMsg is the message type used for panics caused by caller bugs.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNoGradients = PanicMsg("goSoap/density: gradients were not computed")
	ErrBadCenter   = PanicMsg("goSoap/density: center index out of range")
	ErrBadPair     = PanicMsg("goSoap/density: pair index out of range")
)
