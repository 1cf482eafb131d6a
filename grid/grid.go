// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid builds the 1-D control volume mesh from the layer table
package grid

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/jtmcconnell/lim1tr/inp"
)

// Grid holds the control volume mesh of a layered stack. It is built once
// and must not be modified afterwards; boundary and reaction components
// keep references into its arrays.
type Grid struct {

	// mesh
	Ntot     int       // total number of control volumes
	Nlayers  int       // number of layers
	Dx       []float64 // [Ntot] spacing of each control volume
	Xnode    []float64 // [Ntot] centreline position of each control volume
	MatNodes []string  // [Ntot] material name at each control volume

	// per-layer indices
	LayerMats  []string // [Nlayers] material name of each layer
	FirstNodes []int    // [Nlayers+1] first node of each layer; sentinel Ntot appended so cell ranges never special-case the last layer
	Mint       []int    // [Nlayers] node on the left of each layer interface; last entry is the right domain boundary

	// index bounds for conduction assembly
	InternalBounds [][2]int // [Nlayers] internal node range of each layer
	KBounds        [][2]int // [Nlayers] conductive coefficient range of each layer

	// lateral geometry
	PAr       float64 // perimeter to cross-sectional area ratio
	CrossArea float64 // cross-sectional area
}

// New builds the grid from the layer table and the lateral dimensions.
// The number of control volumes per layer is round(thickness/dx) with ties
// rounded to even, matching the reference discretization; the spacing is
// then redistributed as thickness/count so rounding error spreads evenly
// across the layer.
func New(layers []*inp.Layer, ydim, zdim float64) (o *Grid, err error) {

	// check lateral dimensions
	if ydim <= 0 || zdim <= 0 {
		return nil, chk.Err("lateral dimensions must be positive: Y=%g, Z=%g", ydim, zdim)
	}

	// allocate
	o = new(Grid)
	o.Nlayers = len(layers)
	o.LayerMats = make([]string, o.Nlayers)
	o.FirstNodes = make([]int, 0, o.Nlayers+1)
	o.Mint = make([]int, 0, o.Nlayers)

	// loop through material layers
	nodesPerLayer := make([]int, o.Nlayers)
	dxPerLayer := make([]float64, o.Nlayers)
	for i, lay := range layers {
		if lay.Thickness < lay.Dx {
			return nil, chk.Err("requested dx on layer %d is greater than the thickness", i+1)
		}
		o.LayerMats[i] = lay.Mat

		// first node of this layer
		o.FirstNodes = append(o.FirstNodes, o.Ntot)

		// number of nodes and actual dx
		nm := int(math.RoundToEven(lay.Thickness / lay.Dx))
		nodesPerLayer[i] = nm
		dxPerLayer[i] = lay.Thickness / float64(nm)
		o.Ntot += nm

		// node on the left of each interface (includes the right domain boundary)
		o.Mint = append(o.Mint, o.Ntot-1)
	}
	o.FirstNodes = append(o.FirstNodes, o.Ntot) // sentinel

	// check for single node layers
	if o.Nlayers > 1 {
		var singles []int
		for i, nm := range nodesPerLayer {
			if nm <= 1 {
				singles = append(singles, i+1)
			}
		}
		if len(singles) > 0 {
			return nil, chk.Err("only 1 control volume on layer(s) %v; a minimum of 2 control volumes per layer is required for conduction problems", singles)
		}
	}

	// per-node arrays
	o.Dx = make([]float64, o.Ntot)
	o.MatNodes = make([]string, o.Ntot)
	m := 0
	for i := 0; i < o.Ntot; i++ {
		o.Dx[i] = dxPerLayer[m]
		o.MatNodes[i] = layers[m].Mat
		if i == o.Mint[m] {
			m++
		}
	}

	// index bounds
	o.InternalBounds = [][2]int{{1, o.Mint[0]}}
	o.KBounds = [][2]int{{0, o.Mint[0]}}
	for m := 1; m < o.Nlayers; m++ {
		o.InternalBounds = append(o.InternalBounds, [2]int{o.Mint[m-1] + 2, o.Mint[m]})
		o.KBounds = append(o.KBounds, [2]int{o.Mint[m-1] + 1, o.Mint[m]})
	}

	// node locations
	o.Xnode = make([]float64, o.Ntot)
	sum := 0.0
	for i := 0; i < o.Ntot; i++ {
		o.Xnode[i] = sum + 0.5*o.Dx[i]
		sum += o.Dx[i]
	}

	// lateral geometry
	o.PAr = 2.0 * (ydim + zdim) / (ydim * zdim)
	o.CrossArea = ydim * zdim
	return
}

// Thickness returns the total thickness of the stack
func (o *Grid) Thickness() (sum float64) {
	for _, dx := range o.Dx {
		sum += dx
	}
	return
}
