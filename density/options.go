/*
 * options.go, part of gosoap
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

/*Package density expands the smeared atomic density around each atom of
a structure in radial functions times real spherical harmonics, and
contracts the expansion into the rotationally invariant SOAP vectors.*/
package density

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"runtime"

	"github.com/rmera/gosoap/basis"
)

// Options collects the hyperparameters of the density expansion and the
// invariants built from it. The JSON tags allow reading the options
// from the same dictionaries other SOAP codes use.
type Options struct {
	//Cutoff is the radius of the spherical environment around each
	//center.
	Cutoff float64 `json:"interaction_cutoff"`
	//SmoothWidth is the width, inside the cutoff, over which the
	//cutoff function decays smoothly from 1 to 0.
	SmoothWidth float64 `json:"cutoff_smooth_width"`
	//MaxRadial is the number of radial channels.
	MaxRadial int `json:"max_radial"`
	//MaxAngular is the largest spherical harmonics degree.
	MaxAngular int `json:"max_angular"`
	//GaussianSigmaType selects how the density smearing is assigned.
	//Only "Constant" is implemented.
	GaussianSigmaType string `json:"gaussian_sigma_type"`
	//GaussianSigma is the smearing width of the atomic Gaussians.
	GaussianSigma float64 `json:"gaussian_sigma_constant"`
	//CutoffFunction selects the smoothing at the cutoff. Only "Cosine"
	//is implemented.
	CutoffFunction string `json:"cutoff_function_type"`
	//RadialBasis is "GTO" or "DVR".
	RadialBasis string `json:"radial_basis"`
	//ComputeGradients turns on the gradients of everything computed.
	ComputeGradients bool `json:"compute_gradients"`
	//SoapType selects the invariant: "PowerSpectrum" or
	//"RadialSpectrum".
	SoapType string `json:"soap_type"`
	//Hyp1f1Recursion selects the recursive evaluation of the
	//hypergeometric values of the GTO basis over the direct series.
	Hyp1f1Recursion bool `json:"hyp1f1_recursion"`
	//Tolerance is the truncation tolerance of the hypergeometric
	//series.
	Tolerance float64 `json:"tolerance"`
	//Cpus is the number of concurrent workers used over centers. Zero
	//or less means one per logical CPU.
	Cpus int `json:"cpus"`
}

// DefaultOptions returns options that work well for typical molecular
// and condensed systems: a 4 length-unit cutoff smoothed over the last
// 0.5, 3 radial channels, harmonics up to degree 2, a smearing of 0.4
// and the GTO basis.
func DefaultOptions() *Options {
	return &Options{
		Cutoff:            4.0,
		SmoothWidth:       0.5,
		MaxRadial:         3,
		MaxAngular:        2,
		GaussianSigmaType: "Constant",
		GaussianSigma:     0.4,
		CutoffFunction:    "Cosine",
		RadialBasis:       "GTO",
		SoapType:          "PowerSpectrum",
		Hyp1f1Recursion:   true,
		Tolerance:         1e-13,
	}
}

// ReadOptions reads JSON-encoded options from r. Fields absent from
// the input keep their default values.
func ReadOptions(r io.Reader) (*Options, error) {
	o := DefaultOptions()
	if err := json.NewDecoder(r).Decode(o); err != nil {
		return nil, newError(err.Error(), "ReadOptions")
	}
	return o, nil
}

// validate checks everything that does not depend on the structure.
func (o *Options) validate(caller string) error {
	switch {
	case o.Cutoff <= 0:
		return newError(fmt.Sprintf("cutoff must be positive, got %v", o.Cutoff), caller)
	case o.SmoothWidth < 0 || o.SmoothWidth >= o.Cutoff:
		return newError(fmt.Sprintf("need 0 <= smooth width < cutoff, got %v and %v", o.SmoothWidth, o.Cutoff), caller)
	case o.MaxRadial < 1:
		return newError(fmt.Sprintf("need at least one radial channel, got %d", o.MaxRadial), caller)
	case o.MaxAngular < 0:
		return newError(fmt.Sprintf("negative maximum angular momentum %d", o.MaxAngular), caller)
	case o.GaussianSigma <= 0:
		return newError(fmt.Sprintf("smearing must be positive, got %v", o.GaussianSigma), caller)
	}
	if o.GaussianSigmaType != "Constant" {
		return newError(fmt.Sprintf("unknown gaussian sigma type %q, only \"Constant\" is implemented", o.GaussianSigmaType), caller)
	}
	if o.CutoffFunction != "Cosine" {
		return newError(fmt.Sprintf("unknown cutoff function %q, only \"Cosine\" is implemented", o.CutoffFunction), caller)
	}
	if o.RadialBasis != "GTO" && o.RadialBasis != "DVR" {
		return newError(fmt.Sprintf("unknown radial basis %q, want \"GTO\" or \"DVR\"", o.RadialBasis), caller)
	}
	return nil
}

// cpus returns the number of workers to use.
func (o *Options) cpus() int {
	if o.Cpus > 0 {
		return o.Cpus
	}
	return runtime.NumCPU()
}

// NewRadialIntegral builds the radial basis the options ask for. It is
// exported so other packages can inspect the basis built from a given
// set of options.
func NewRadialIntegral(o *Options) (basis.RadialIntegral, error) {
	if err := o.validate("NewRadialIntegral"); err != nil {
		return nil, err
	}
	var ri basis.RadialIntegral
	var err error
	switch o.RadialBasis {
	case "GTO":
		tol := o.Tolerance
		if tol <= 0 {
			tol = 1e-13
		}
		ri, err = basis.NewGTO(o.MaxRadial, o.MaxAngular, o.Cutoff, o.SmoothWidth, o.GaussianSigma, o.Hyp1f1Recursion, tol)
	case "DVR":
		ri, err = basis.NewDVR(o.MaxRadial, o.MaxAngular, o.Cutoff, o.SmoothWidth, o.GaussianSigma)
	}
	if err != nil {
		return nil, newError(err.Error(), "NewRadialIntegral")
	}
	return ri, nil
}

// CutoffValue evaluates the cutoff function of the options at distance
// r.
func (o *Options) CutoffValue(r float64) float64 {
	return cosineCutoff{rc: o.Cutoff, sw: o.SmoothWidth}.value(r)
}

// cosineCutoff is the smooth cutoff function: 1 up to cutoff minus
// smooth width, half a cosine arch down to 0 at the cutoff.
type cosineCutoff struct {
	rc, sw float64
}

func (c cosineCutoff) value(r float64) float64 {
	switch {
	case r <= c.rc-c.sw:
		return 1
	case r >= c.rc:
		return 0
	}
	return 0.5 * (1 + math.Cos(math.Pi*(r-c.rc+c.sw)/c.sw))
}

func (c cosineCutoff) deriv(r float64) float64 {
	if r <= c.rc-c.sw || r >= c.rc {
		return 0
	}
	return -math.Pi / (2 * c.sw) * math.Sin(math.Pi*(r-c.rc+c.sw)/c.sw)
}
