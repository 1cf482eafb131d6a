// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/jtmcconnell/lim1tr/eqn"
	"github.com/jtmcconnell/lim1tr/grid"
	"github.com/jtmcconnell/lim1tr/inp"
	"github.com/jtmcconnell/lim1tr/mat"
)

// testDomain builds a single-material grid, manager and temperature field
func testDomain(tst *testing.T, ntot int, T0 float64) (*grid.Grid, *mat.Manager, *eqn.System, []float64) {
	dx := 1.0 / float64(ntot)
	g, err := grid.New([]*inp.Layer{{Mat: "a", Dx: dx, Thickness: 1.0}}, 0.2, 0.1)
	if err != nil {
		tst.Fatalf("grid build failed:\n%v", err)
	}
	db := &inp.MatDb{Materials: inp.MatsData{{Name: "a", Rho: 1000, Cp: 800, K: 2.0}}}
	mm, err := mat.NewManager(db, g)
	if err != nil {
		tst.Fatalf("material manager failed:\n%v", err)
	}
	T := la.NewVector(g.Ntot)
	T.Fill(T0)
	return g, mm, eqn.New(g.Ntot), T
}

func Test_bcs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs01. end convection")

	g, mm, s, T := testDomain(tst, 5, 300)
	bc, err := NewEndConvection(g, "Left", 10.0, 500.0)
	if err != nil {
		tst.Errorf("constructor failed:\n%v", err)
		return
	}
	chk.StrAssert(bc.Name(), "end_convection")

	// harmonic mean of h and the half-cell conductance
	phi := 2.0 * 2.0 / g.Dx[0]
	c := 10.0 * phi / (10.0 + phi)
	bc.Apply(s, mm, T)
	chk.Float64(tst, "LHSc[0]", 1e-14, s.LHSc[0], c)
	chk.Float64(tst, "RHS[0]", 1e-14, s.RHS[0], c*500.0)
	chk.Float64(tst, "LHSc[4]", 1e-17, s.LHSc[4], 0)

	// explicit operator path
	s.Reset()
	bc.ApplyOperator(s, mm, T)
	chk.Float64(tst, "operator RHS[0]", 1e-14, s.RHS[0], c*(500.0-300.0))

	// right end uses the last node and the second to last interface
	bcr, err := NewEndConvection(g, "Right", 10.0, 500.0)
	if err != nil {
		tst.Errorf("constructor failed:\n%v", err)
		return
	}
	s.Reset()
	bcr.Apply(s, mm, T)
	chk.Float64(tst, "LHSc[4]", 1e-14, s.LHSc[4], c)
	chk.Float64(tst, "LHSc[0]", 1e-17, s.LHSc[0], 0)
}

func Test_bcs02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs02. end flux: both paths agree")

	g, mm, s, T := testDomain(tst, 4, 350)
	bc, err := NewEndFlux(g, "Right", 1500.0)
	if err != nil {
		tst.Errorf("constructor failed:\n%v", err)
		return
	}
	bc.Apply(s, mm, T)
	rhsApply := make([]float64, s.N)
	copy(rhsApply, s.RHS)
	s.Reset()
	bc.ApplyOperator(s, mm, T)
	chk.Array(tst, "flux apply == operator", 1e-17, s.RHS, rhsApply)
	chk.Float64(tst, "RHS[3]", 1e-17, s.RHS[3], 1500.0)
	chk.Float64(tst, "no LHS term", 1e-17, s.LHSc[3], 0)
}

func Test_bcs03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs03. end radiation")

	// equilibrium: zero residual and zero operator contribution at T == Text
	g, mm, s, T := testDomain(tst, 4, 400)
	bc, err := NewEndRadiation(g, "Left", 0.8, 400.0)
	if err != nil {
		tst.Errorf("constructor failed:\n%v", err)
		return
	}
	bc.Apply(s, mm, T)
	chk.Float64(tst, "F[0] at equilibrium", 1e-17, s.F[0], 0)
	sigEps := 5.67e-8 * 0.8
	chk.Float64(tst, "Jc[0]", 1e-12, s.Jc[0], sigEps*4.0*400.0*400.0*400.0)
	s.Reset()
	bc.ApplyOperator(s, mm, T)
	chk.Float64(tst, "operator RHS at equilibrium", 1e-17, s.RHS[0], 0)

	// sign asymmetry: residual form and operator form are opposite
	la.Vector(T).Fill(600)
	s.Reset()
	bc.Apply(s, mm, T)
	net := sigEps * (600.0*600.0*600.0*600.0 - 400.0*400.0*400.0*400.0)
	chk.Float64(tst, "F[0]", 1e-9, s.F[0], net)
	s.Reset()
	bc.ApplyOperator(s, mm, T)
	chk.Float64(tst, "operator RHS[0]", 1e-9, s.RHS[0], -net)
}

func Test_bcs04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs04. distributed external terms")

	g, mm, s, T := testDomain(tst, 5, 300)
	bc := NewExtConvection(g, 25.0, 320.0)
	chk.StrAssert(bc.Name(), "ext_convection")
	bc.Apply(s, mm, T)
	for i := 0; i < g.Ntot; i++ {
		hc := 25.0 * g.Dx[i] * g.PAr
		chk.Float64(tst, io.Sf("LHSc[%d]", i), 1e-13, s.LHSc[i], hc)
		chk.Float64(tst, io.Sf("RHS[%d]", i), 1e-10, s.RHS[i], hc*320.0)
	}
	s.Reset()
	bc.ApplyOperator(s, mm, T)
	for i := 0; i < g.Ntot; i++ {
		hc := 25.0 * g.Dx[i] * g.PAr
		chk.Float64(tst, io.Sf("op RHS[%d]", i), 1e-11, s.RHS[i], hc*20.0)
	}

	// radiation variant at equilibrium
	rad := NewExtRadiation(g, 0.5, 300.0)
	s.Reset()
	rad.Apply(s, mm, T)
	chk.Array(tst, "ext radiation F at equilibrium", 1e-17, s.F, make([]float64, g.Ntot))
}

func Test_bcs05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs05. timed gate")

	g, mm, s, T := testDomain(tst, 4, 300)
	inner, err := NewEndFlux(g, "Left", 100.0)
	if err != nil {
		tst.Errorf("constructor failed:\n%v", err)
		return
	}
	bc := NewTimed(inner, 10.0)
	chk.StrAssert(bc.Name(), "end_flux_timed")

	// difference above the epsilon: the wrapped bc still acts
	bc.SetTime(9.999999999999)
	bc.Apply(s, mm, T)
	chk.Float64(tst, "gate open", 1e-17, s.RHS[0], 100.0)

	// at the cutoff: no-op on both paths
	s.Reset()
	bc.SetTime(10.0)
	bc.Apply(s, mm, T)
	bc.ApplyOperator(s, mm, T)
	chk.Float64(tst, "gate closed", 1e-17, s.RHS[0], 0)

	// the clock reaches gated operators through the interface, so a
	// driver can broadcast the time over a mixed list of bcs
	list := []Bc{bc, inner}
	s.Reset()
	for _, b := range list {
		b.SetTime(3.0)
		b.Apply(s, mm, T)
	}
	chk.Float64(tst, "gate reopened via interface", 1e-17, s.RHS[0], 200.0)
	s.Reset()
	for _, b := range list {
		b.SetTime(10.0)
		b.Apply(s, mm, T)
	}
	chk.Float64(tst, "only the ungated flux remains", 1e-17, s.RHS[0], 100.0)
}

func Test_bcs06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs06. configuration errors and factory")

	g, _, _, _ := testDomain(tst, 4, 300)

	// unrecognized end label is fatal
	_, err := NewEndFlux(g, "Top", 1.0)
	if err == nil {
		tst.Errorf("constructor should have failed: bad end label\n")
		return
	}
	io.Pforan("OK: %v\n", err)

	// end bcs need at least two control volumes
	g1, err := grid.New([]*inp.Layer{{Mat: "a", Dx: 1, Thickness: 1}}, 1, 1)
	if err != nil {
		tst.Errorf("grid build failed:\n%v", err)
		return
	}
	_, err = NewEndConvection(g1, "Left", 1, 300)
	if err == nil {
		tst.Errorf("constructor should have failed: single node grid\n")
		return
	}
	io.Pforan("OK: %v\n", err)

	// factory: gated external convection
	bc, err := New(&inp.BcData{
		Kind:    "convection",
		End:     "External",
		Prms:    dbf.Params{&dbf.P{N: "h", V: 5}, &dbf.P{N: "T", V: 300}},
		OffTime: 2.5,
	}, g)
	if err != nil {
		tst.Errorf("factory failed:\n%v", err)
		return
	}
	chk.StrAssert(bc.Name(), "ext_convection_timed")

	// factory: unknown kind and missing parameter are fatal
	_, err = New(&inp.BcData{Kind: "advection", End: "Left"}, g)
	if err == nil {
		tst.Errorf("factory should have failed: unknown kind\n")
		return
	}
	io.Pforan("OK: %v\n", err)
	_, err = New(&inp.BcData{Kind: "flux", End: "Left"}, g)
	if err == nil {
		tst.Errorf("factory should have failed: missing flux value\n")
		return
	}
	io.Pforan("OK: %v\n", err)
}
