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

package soap

// Error is the interface for the recoverable errors of this library:
// bad user input, inconsistent geometry, unsupported option values.
// Decorate allows adding information when the error is passed up the
// calling stack. Each call returns the current decoration slice.
// If passed an empty string, Decorate just returns the current value
// without adding anything. The decoration slice should contain a list
// of the functions in the calling stack, each optionally followed by
// extra information in this format: "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the concrete error type of the library. It implements
// soap.Error.
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

// newError builds a CError from a message and the name of the function
// where the problem was found.
func newError(msg, caller string) *CError {
	return &CError{msg: msg, deco: []string{caller}}
}

// errDecorate asserts that err implements soap.Error, decorates it with
// the caller's name and returns it. Calling it with anything else than
// a soap.Error is a bug, so it panics.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// PanicMsg is the message type used for panics. Panics are reserved for
// conditions that can only arise from a bug in the caller, such as
// indexing a cluster that does not exist. Everything a user can trigger
// with bad input returns an Error instead.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilStructure   = PanicMsg("goSoap: nil structure given to a manager")
	ErrClusterOrder   = PanicMsg("goSoap: manager does not provide clusters of the requested order")
	ErrAtomOutOfRange = PanicMsg("goSoap: atom or pair index out of range")
	ErrOffsetMismatch = PanicMsg("goSoap: pair offsets do not close over the pair list")
	ErrNotUpdated     = PanicMsg("goSoap: manager queried before Update")
)
