// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"github.com/jtmcconnell/lim1tr/eqn"
	"github.com/jtmcconnell/lim1tr/grid"
	"github.com/jtmcconnell/lim1tr/mat"
)

// ext holds data common to operators distributed over the lateral
// surface of every control volume
type ext struct {
	name string
	dx   []float64
	ntot int
	par  float64 // perimeter to cross-sectional area ratio
}

func newExt(g *grid.Grid) ext {
	return ext{name: "ext", dx: g.Dx, ntot: g.Ntot, par: g.PAr}
}

// Name returns the diagnostic name of this operator
func (o *ext) Name() string { return o.name }

// SetTime is a no-op; distributed operators are not gated
func (o *ext) SetTime(totTime float64) {}

// ExtConvection is convective exchange through the lateral surface of
// every control volume
type ExtConvection struct {
	ext
	H    float64 // heat transfer coefficient
	Text float64 // ambient temperature
}

// NewExtConvection allocates a distributed convection operator
func NewExtConvection(g *grid.Grid, h, Text float64) (o *ExtConvection) {
	o = new(ExtConvection)
	o.ext = newExt(g)
	o.name += "_convection"
	o.H = h
	o.Text = Text
	return
}

// Apply adds the distributed convection terms, scaled per node by
// dx[i] times the perimeter/area ratio
func (o *ExtConvection) Apply(s *eqn.System, mm *mat.Manager, T []float64) {
	for i := 0; i < o.ntot; i++ {
		hc := o.H * o.dx[i] * o.par
		s.LHSc[i] += hc
		s.RHS[i] += hc * o.Text
	}
}

// ApplyOperator adds the action of distributed convection on the
// previous time step temperature to the RHS
func (o *ExtConvection) ApplyOperator(s *eqn.System, mm *mat.Manager, T []float64) {
	for i := 0; i < o.ntot; i++ {
		hc := o.H * o.dx[i] * o.par
		s.RHS[i] += hc * (o.Text - T[i])
	}
}

// ExtRadiation is radiative exchange through the lateral surface of
// every control volume
type ExtRadiation struct {
	ext
	SigEps float64 // sigma times emissivity
	Text4  float64 // ambient temperature to the fourth power
}

// NewExtRadiation allocates a distributed radiation operator
func NewExtRadiation(g *grid.Grid, eps, Text float64) (o *ExtRadiation) {
	o = new(ExtRadiation)
	o.ext = newExt(g)
	o.name += "_radiation"
	o.SigEps = sigmaSB * eps
	o.Text4 = Text * Text * Text * Text
	return
}

// Apply adds the per-node Jacobian and residual radiative terms
func (o *ExtRadiation) Apply(s *eqn.System, mm *mat.Manager, T []float64) {
	for i := 0; i < o.ntot; i++ {
		dxPA := o.dx[i] * o.par
		s.Jc[i] += dxPA * o.SigEps * 4.0 * T[i] * T[i] * T[i]
		s.F[i] += dxPA * o.SigEps * (T[i]*T[i]*T[i]*T[i] - o.Text4)
	}
}

// ApplyOperator subtracts the per-node net radiative loss at the
// previous time step temperature from the RHS
func (o *ExtRadiation) ApplyOperator(s *eqn.System, mm *mat.Manager, T []float64) {
	for i := 0; i < o.ntot; i++ {
		dxPA := o.dx[i] * o.par
		s.RHS[i] -= dxPA * o.SigEps * (T[i]*T[i]*T[i]*T[i] - o.Text4)
	}
}
