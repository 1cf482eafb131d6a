// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mrxn implements reaction rate models for in-situ decomposition
package mrxn

import (
	"github.com/cpmech/gosl/chk"

	"github.com/jtmcconnell/lim1tr/inp"
)

// universal gas constant [J/(mol·K)]
const Rgas = 8.314

// MatInfo carries the species and material data a rate model needs.
// Species are addressed by the stable integer id assigned at load time;
// the node state vector is [densities in id order..., temperature].
type MatInfo struct {
	Names []string       // species names in state-vector order
	Idx   map[string]int // species name => id
	MolWt []float64      // molecular weights
	Rho   float64        // material density
	Cp    float64        // material specific heat
}

// Model defines reaction rate models
type Model interface {
	Init(rxn *inp.Reaction, mi *MatInfo) (fracCol []float64, err error) // initialises the model and returns its fractional conversion column
	Rate(v []float64) float64                                           // total conversion rate at the node state v
	HRxn() float64                                                      // heat of reaction per unit key-species mass
	KeyIdx() int                                                        // id of the limiting reactant
}

// New allocates and initialises a reaction model from its input record.
// An empty type means "basic".
func New(rxn *inp.Reaction, mi *MatInfo) (model Model, fracCol []float64, err error) {
	typ := rxn.Type
	if typ == "" {
		typ = "basic"
	}
	allocator, ok := allocators[typ]
	if !ok {
		return nil, nil, chk.Err("reaction model %q is not available in mrxn database", typ)
	}
	model = allocator()
	fracCol, err = model.Init(rxn, mi)
	if err != nil {
		return nil, nil, err
	}
	return
}

// allocators holds all available models
var allocators = map[string]func() Model{}
