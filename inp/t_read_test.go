// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_mat01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mat01")

	mdb, err := ReadMat("data", "thermal.mat")
	if err != nil {
		tst.Errorf("cannot read thermal.mat:\n%v", err)
		return
	}
	io.Pforan("thermal.mat just read:\n%v\n", mdb.Materials)

	m := mdb.Get("cell")
	if m == nil {
		tst.Errorf("cannot get material \"cell\"\n")
		return
	}
	chk.Float64(tst, "rho", 1e-15, m.Rho, 1000)
	chk.Float64(tst, "cp", 1e-15, m.Cp, 800)
	chk.Float64(tst, "k", 1e-15, m.K, 1.0)

	if mdb.Get("anode") != nil {
		tst.Errorf("Get should return nil for an unknown material\n")
		return
	}
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01. reaction-only simulation file")

	sim, err := ReadSim("data", "rxnonly.sim")
	if err != nil {
		tst.Errorf("cannot read rxnonly.sim:\n%v", err)
		return
	}
	io.Pforan("%v\n", sim)

	chk.IntAssert(len(sim.Layers), 1)
	chk.StrAssert(sim.Layers[0].Mat, "cell")
	chk.Float64(tst, "dx", 1e-15, sim.Layers[0].Dx, 0.02)
	if !sim.Other.RxnOnly {
		tst.Errorf("rxnonly flag was not read\n")
		return
	}
	chk.Strings(tst, "species names", sim.Spec.Names, []string{"AB", "C"})
	chk.IntAssert(len(sim.Reactions), 1)
	p := sim.Reactions[0].Prms.Find("A")
	if p == nil {
		tst.Errorf("reaction parameter A was not read\n")
		return
	}
	chk.Float64(tst, "A", 1e-15, p.V, 2.0)
	chk.Float64(tst, "nu AB", 1e-15, sim.Reactions[0].Reactants["AB"], 1.0)

	// the materials database is loaded alongside
	if sim.MatDb == nil || sim.MatDb.Get("cell") == nil {
		tst.Errorf("materials database was not loaded\n")
		return
	}
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02. layered stack with gated heating")

	sim, err := ReadSim("data", "stack.sim")
	if err != nil {
		tst.Errorf("cannot read stack.sim:\n%v", err)
		return
	}
	io.Pforan("%v\n", sim)

	chk.IntAssert(len(sim.Layers), 2)
	chk.IntAssert(len(sim.Bcs), 3)
	chk.StrAssert(sim.Bcs[0].Kind, "flux")
	chk.Float64(tst, "off time", 1e-15, sim.Bcs[0].OffTime, 10)
	chk.StrAssert(sim.Bcs[2].End, "External")
	chk.Ints(tst, "active cells", sim.Reactions[0].ActiveCells, []int{1})
}
