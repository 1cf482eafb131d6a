// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"

	"github.com/jtmcconnell/lim1tr/grid"
	"github.com/jtmcconnell/lim1tr/inp"
)

// getprm finds a required parameter in a boundary condition record
func getprm(prms dbf.Params, name, kind string) (float64, error) {
	p := prms.Find(name)
	if p == nil {
		return 0, chk.Err("%s boundary condition must have %q in its parameters", kind, name)
	}
	return p.V, nil
}

// New builds a boundary operator from its input record. A positive off
// time wraps the operator in a temporal gate.
func New(bcd *inp.BcData, g *grid.Grid) (bc Bc, err error) {

	// build the bare operator
	external := bcd.End == "External"
	switch bcd.Kind {

	case "convection":
		h, err := getprm(bcd.Prms, "h", bcd.Kind)
		if err != nil {
			return nil, err
		}
		Text, err := getprm(bcd.Prms, "T", bcd.Kind)
		if err != nil {
			return nil, err
		}
		if external {
			bc = NewExtConvection(g, h, Text)
		} else {
			bc, err = NewEndConvection(g, bcd.End, h, Text)
			if err != nil {
				return nil, err
			}
		}

	case "flux":
		flux, err := getprm(bcd.Prms, "flux", bcd.Kind)
		if err != nil {
			return nil, err
		}
		if external {
			return nil, chk.Err("flux boundary conditions cannot be external")
		}
		bc, err = NewEndFlux(g, bcd.End, flux)
		if err != nil {
			return nil, err
		}

	case "radiation":
		eps, err := getprm(bcd.Prms, "eps", bcd.Kind)
		if err != nil {
			return nil, err
		}
		Text, err := getprm(bcd.Prms, "T", bcd.Kind)
		if err != nil {
			return nil, err
		}
		if external {
			bc = NewExtRadiation(g, eps, Text)
		} else {
			bc, err = NewEndRadiation(g, bcd.End, eps, Text)
			if err != nil {
				return nil, err
			}
		}

	default:
		return nil, chk.Err("unrecognized boundary condition kind %q", bcd.Kind)
	}

	// temporal gate
	if bcd.OffTime > 0 {
		bc = NewTimed(bc, bcd.OffTime)
	}
	return
}
