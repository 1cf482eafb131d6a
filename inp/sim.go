// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Layer holds one material layer of the 1-D stack
type Layer struct {
	Mat       string  `json:"mat"`       // material name
	Dx        float64 `json:"dx"`        // requested control volume spacing
	Thickness float64 `json:"thickness"` // layer thickness
}

// Other holds domain-wide options
type Other struct {
	Ydim    float64 `json:"ydim"`    // lateral Y dimension
	Zdim    float64 `json:"zdim"`    // lateral Z dimension
	DscMode bool    `json:"dscmode"` // impose a prescribed temperature ramp instead of the energy ODE
	DscRate float64 `json:"dscrate"` // temperature ramp rate [K/s]; required when dscmode is true
	RxnOnly bool    `json:"rxnonly"` // reaction-only run; the mesh must collapse to a single control volume
}

// Species holds the reacting species table of one material
type Species struct {
	Mat         string    `json:"mat"`         // name of the reacting material
	Names       []string  `json:"names"`       // species names; fixes the state-vector ordering
	MolWeights  []float64 `json:"molweights"`  // molecular weights [kg/mol]
	IniMassFrac []float64 `json:"inimassfrac"` // initial mass fractions; must sum to 1
}

// Reaction holds one reaction record
type Reaction struct {
	Key         int                `json:"key"`         // orderable key; reactions are sorted by this at load time
	Type        string             `json:"type"`        // model name; empty means "basic"
	KeySpecies  string             `json:"keyspecies"`  // limiting reactant; empty means first reactant name
	Reactants   map[string]float64 `json:"reactants"`   // reactant name => stoichiometric coefficient
	Products    map[string]float64 `json:"products"`    // product name => stoichiometric coefficient
	ActiveCells []int              `json:"activecells"` // 1-indexed cells where this reaction runs; empty means all
	Prms        dbf.Params         `json:"prms"`        // model parameters; e.g. A, E, H
}

// BcData holds one boundary condition record
type BcData struct {
	Kind    string     `json:"kind"`    // "convection", "flux" or "radiation"
	End     string     `json:"end"`     // "Left", "Right" or "External"
	Prms    dbf.Params `json:"prms"`    // h, T, eps, flux
	OffTime float64    `json:"offtime"` // time at which this condition switches off; 0 means never
}

// Simulation holds all simulation input data
type Simulation struct {

	// input
	Desc      string      `json:"desc"`      // description of simulation
	Matfile   string      `json:"matfile"`   // materials file path, relative to the .sim file
	Layers    []*Layer    `json:"layers"`    // layer table, left to right
	Other     Other       `json:"other"`     // domain-wide options
	Spec      *Species    `json:"species"`   // species table
	Reactions []*Reaction `json:"reactions"` // reaction table
	Bcs       []*BcData   `json:"bcs"`       // boundary condition table

	// derived
	MatDb *MatDb // materials database
}

// ReadSim reads a simulation file and its materials database
func ReadSim(dir, fn string) (o *Simulation, err error) {

	// read file
	b := io.ReadFile(filepath.Join(dir, fn))

	// decode
	o = new(Simulation)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot parse simulation file %q:\n%v", fn, err)
	}

	// checks
	if len(o.Layers) < 1 {
		return nil, chk.Err("simulation file %q has no layers", fn)
	}
	if o.Other.DscMode && o.Other.DscRate == 0 {
		return nil, chk.Err("a DSC rate must be given in the other block when DSC mode is enabled")
	}

	// materials database
	if o.Matfile != "" {
		o.MatDb, err = ReadMat(dir, o.Matfile)
		if err != nil {
			return nil, err
		}
	}
	return
}

// String returns a short description of this simulation
func (o *Simulation) String() string {
	return io.Sf("%s: %d layer(s), %d reaction(s), %d bc(s)", o.Desc, len(o.Layers), len(o.Reactions), len(o.Bcs))
}
