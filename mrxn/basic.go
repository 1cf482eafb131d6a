// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mrxn

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/jtmcconnell/lim1tr/inp"
)

// Basic implements first-order Arrhenius kinetics in the key reactant
//
//   r = A ρ_key exp(-E / (R T))
//
// The fractional conversion column maps r to per-species mass rates:
// ±ν_i W_i / (ν_key W_key), negative for reactants.
type Basic struct {
	A   float64 // pre-exponential factor [1/s]
	E   float64 // activation energy [J/mol]
	H   float64 // heat of reaction per unit key-species mass [J/kg]
	key int     // id of the key reactant
	nsp int     // number of species; temperature sits at v[nsp]
}

// add model to factory
func init() {
	allocators["basic"] = func() Model { return new(Basic) }
}

// Init initialises this structure and builds the conversion column
func (o *Basic) Init(rxn *inp.Reaction, mi *MatInfo) (fracCol []float64, err error) {

	// rate parameters
	p := rxn.Prms.Find("A")
	if p == nil {
		return nil, chk.Err("basic model on reaction %d must have %q in its parameters", rxn.Key, "A")
	}
	o.A = p.V
	if p = rxn.Prms.Find("E"); p != nil {
		o.E = p.V
	}
	if p = rxn.Prms.Find("H"); p != nil {
		o.H = p.V
	}

	// reactants, sorted for a deterministic default key species
	if len(rxn.Reactants) < 1 {
		return nil, chk.Err("reaction %d has no reactants", rxn.Key)
	}
	reactants := make([]string, 0, len(rxn.Reactants))
	for name := range rxn.Reactants {
		reactants = append(reactants, name)
	}
	sort.Strings(reactants)

	// key species
	keyName := rxn.KeySpecies
	if keyName == "" {
		keyName = reactants[0]
	}
	nuKey, ok := rxn.Reactants[keyName]
	if !ok {
		return nil, chk.Err("key species %q on reaction %d is not one of its reactants", keyName, rxn.Key)
	}
	o.key, ok = mi.Idx[keyName]
	if !ok {
		return nil, chk.Err("key species %q on reaction %d is not in the species table", keyName, rxn.Key)
	}
	o.nsp = len(mi.Names)

	// conversion column
	fracCol = make([]float64, o.nsp)
	wKey := nuKey * mi.MolWt[o.key]
	for _, name := range reactants {
		j, ok := mi.Idx[name]
		if !ok {
			return nil, chk.Err("reactant %q on reaction %d is not in the species table", name, rxn.Key)
		}
		fracCol[j] -= rxn.Reactants[name] * mi.MolWt[j] / wKey
	}
	products := make([]string, 0, len(rxn.Products))
	for name := range rxn.Products {
		products = append(products, name)
	}
	sort.Strings(products)
	for _, name := range products {
		j, ok := mi.Idx[name]
		if !ok {
			return nil, chk.Err("product %q on reaction %d is not in the species table", name, rxn.Key)
		}
		fracCol[j] += rxn.Products[name] * mi.MolWt[j] / wKey
	}
	return
}

// Rate computes the total conversion rate at the node state v
func (o *Basic) Rate(v []float64) float64 {
	rho := v[o.key]
	if rho < 0 {
		rho = 0
	}
	k := o.A
	if o.E != 0 {
		k *= math.Exp(-o.E / (Rgas * v[o.nsp]))
	}
	return k * rho
}

// HRxn returns the heat of reaction per unit key-species mass
func (o *Basic) HRxn() float64 { return o.H }

// KeyIdx returns the id of the limiting reactant
func (o *Basic) KeyIdx() int { return o.key }
