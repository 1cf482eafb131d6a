// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package bcs implements the boundary operators of the conduction system
package bcs

import (
	"github.com/cpmech/gosl/chk"

	"github.com/jtmcconnell/lim1tr/eqn"
	"github.com/jtmcconnell/lim1tr/grid"
	"github.com/jtmcconnell/lim1tr/mat"
)

// Stefan-Boltzmann constant [W/(m²·K⁴)]
const sigmaSB = 5.67e-8

// Bc defines the two contribution paths of a boundary operator:
// Apply writes the linearized contribution (conductance, source and,
// for radiation, Jacobian/residual terms), ApplyOperator writes only
// the explicit action of the boundary at the given temperature to the
// right-hand side. SetTime advances the simulation clock so gated
// operators can switch off; it is a no-op on ungated variants, letting
// the driver broadcast the time without type switches.
type Bc interface {
	Apply(s *eqn.System, mm *mat.Manager, T []float64)
	ApplyOperator(s *eqn.System, mm *mat.Manager, T []float64)
	SetTime(totTime float64)
	Name() string
}

// end holds data common to operators acting on one domain end
type end struct {
	name string
	dx   []float64
	ntot int
	nind int // node receiving the contribution
	kind int // conductive coefficient index of the end half-cell
}

// newEnd resolves the end label into node and coefficient indices
func newEnd(g *grid.Grid, label string) (o end, err error) {
	o.name = "end"
	o.dx = g.Dx
	o.ntot = g.Ntot
	if o.ntot < 2 {
		err = chk.Err("end boundary conditions require at least 2 control volumes; grid has %d", o.ntot)
		return
	}
	switch label {
	case "Left":
		o.nind = 0
		o.kind = 0
	case "Right":
		o.nind = o.ntot - 1
		o.kind = o.ntot - 2
	default:
		err = chk.Err("unrecognized boundary type %q", label)
	}
	return
}

// Name returns the diagnostic name of this operator
func (o *end) Name() string { return o.name }

// SetTime is a no-op; end operators are not gated
func (o *end) SetTime(totTime float64) {}

// EndConvection is a convective boundary on one domain end
type EndConvection struct {
	end
	H    float64 // heat transfer coefficient
	Text float64 // ambient temperature
}

// NewEndConvection allocates an end convection operator
func NewEndConvection(g *grid.Grid, label string, h, Text float64) (o *EndConvection, err error) {
	o = new(EndConvection)
	o.end, err = newEnd(g, label)
	if err != nil {
		return nil, err
	}
	o.name += "_convection"
	o.H = h
	o.Text = Text
	return
}

// cend computes the harmonic mean of the transfer coefficient and the
// half-cell conductance phi = 2k/dx
func (o *EndConvection) cend(mm *mat.Manager) float64 {
	phi := 2.0 * mm.KArr[o.kind] / o.dx[o.nind]
	return o.H * phi / (o.H + phi)
}

// Apply adds end convection terms to the linearized system
func (o *EndConvection) Apply(s *eqn.System, mm *mat.Manager, T []float64) {
	c := o.cend(mm)
	s.LHSc[o.nind] += c
	s.RHS[o.nind] += c * o.Text
}

// ApplyOperator adds the action of end convection on the previous
// time step temperature to the RHS
func (o *EndConvection) ApplyOperator(s *eqn.System, mm *mat.Manager, T []float64) {
	c := o.cend(mm)
	s.RHS[o.nind] += c * (o.Text - T[o.nind])
}

// EndFlux is a prescribed heat flux on one domain end
type EndFlux struct {
	end
	Flux float64 // heat flux
}

// NewEndFlux allocates an end flux operator
func NewEndFlux(g *grid.Grid, label string, flux float64) (o *EndFlux, err error) {
	o = new(EndFlux)
	o.end, err = newEnd(g, label)
	if err != nil {
		return nil, err
	}
	o.name += "_flux"
	o.Flux = flux
	return
}

// Apply adds the flux source to the RHS
func (o *EndFlux) Apply(s *eqn.System, mm *mat.Manager, T []float64) {
	s.RHS[o.nind] += o.Flux
}

// ApplyOperator adds the flux source to the RHS; identical to Apply
// since a prescribed flux has no temperature dependence
func (o *EndFlux) ApplyOperator(s *eqn.System, mm *mat.Manager, T []float64) {
	s.RHS[o.nind] += o.Flux
}

// EndRadiation is a grey-body radiative boundary on one domain end
type EndRadiation struct {
	end
	SigEps float64 // sigma times emissivity
	Text4  float64 // ambient temperature to the fourth power
}

// NewEndRadiation allocates an end radiation operator
func NewEndRadiation(g *grid.Grid, label string, eps, Text float64) (o *EndRadiation, err error) {
	o = new(EndRadiation)
	o.end, err = newEnd(g, label)
	if err != nil {
		return nil, err
	}
	o.name += "_radiation"
	o.SigEps = sigmaSB * eps
	o.Text4 = Text * Text * Text * Text
	return
}

// Apply adds the Jacobian term linearized about T and the radiative
// residual. The residual form carries the opposite sign of the
// explicit operator form; the Newton linearization depends on it.
func (o *EndRadiation) Apply(s *eqn.System, mm *mat.Manager, T []float64) {
	Ti := T[o.nind]
	s.Jc[o.nind] += o.SigEps * 4.0 * Ti * Ti * Ti
	s.F[o.nind] += o.SigEps * (Ti*Ti*Ti*Ti - o.Text4)
}

// ApplyOperator subtracts the net outgoing radiative loss at the
// previous time step temperature from the RHS
func (o *EndRadiation) ApplyOperator(s *eqn.System, mm *mat.Manager, T []float64) {
	Ti := T[o.nind]
	s.RHS[o.nind] -= o.SigEps * (Ti*Ti*Ti*Ti - o.Text4)
}
