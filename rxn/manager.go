// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rxn groups per-cell reaction activation patterns into reduced
// systems and integrates the coupled species/temperature ODEs per node
package rxn

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/jtmcconnell/lim1tr/grid"
	"github.com/jtmcconnell/lim1tr/inp"
	"github.com/jtmcconnell/lim1tr/mat"
	"github.com/jtmcconnell/lim1tr/mrxn"
)

// exhaustion threshold for species densities
const smallNumber = 1e-15

// Opts holds tunables for the per-node stiff integration
type Opts struct {
	Dt0        float64 // initial internal step
	Atol       float64 // absolute tolerance
	Rtol       float64 // relative tolerance
	Nsteps     int     // maximum number of internal steps
	WithStatus bool    // collect per-node integration status
}

// NewOpts returns the default integration tunables
func NewOpts() *Opts {
	return &Opts{Dt0: 1e-6, Atol: 1e-6, Rtol: 1e-6, Nsteps: 5000}
}

// Status reports the integration outcome of one node; Err is nil when
// the solver converged
type Status struct {
	Node int
	Err  error
}

// Manager owns the per-node reactive state of one reacting material and
// drives the per-node integration every macro time step
type Manager struct {

	// grid and material
	Grid      *grid.Grid
	MatName   string  // name of the reacting material
	Rho       float64 // material density
	Cp        float64 // material specific heat
	RhoCp     float64
	CrossArea float64 // lateral cross-sectional area

	// options
	DscMode bool
	DscRate float64
	RxnOnly bool

	// species arena; species id = position in Names
	Names       []string
	MolWt       []float64
	Density     [][]float64 // [nspec][Ntot] species mass densities
	RateArr     [][]float64 // [nspec][Ntot] net production rates
	TempRate    []float64   // [Ntot] temperature rate
	HeatRelease []float64   // [Ntot] heat release rate = temperature rate times rho*cp
	idx         map[string]int
	nspec       int

	// cells of the reacting material
	Ncells      int
	CellBounds  [][2]int // [Ncells] first node and one-past-last node of each cell
	cellNodeKey []int    // [Ntot] 1-indexed cell of each node; 0 = other material

	// reactions
	models    []mrxn.Model
	fracMat   [][]float64 // [nspec][nrxn] full conversion matrix
	nodeToSys []int       // [Ntot] assigned reduced system; -1 = unassigned
	Systems   []*System

	// activity lifecycle
	activeNodes []int
	pending     []int // positions in activeNodes flagged for clearing next step
}

// NewManager allocates a manager on the given grid
func NewManager(g *grid.Grid, oth *inp.Other) (o *Manager, err error) {
	o = new(Manager)
	o.Grid = g
	o.CrossArea = g.CrossArea
	o.DscMode = oth.DscMode
	o.DscRate = oth.DscRate
	o.RxnOnly = oth.RxnOnly
	if o.DscMode && o.DscRate == 0 {
		return nil, chk.Err("a DSC rate must be given when DSC mode is enabled")
	}
	if o.RxnOnly && g.Ntot != 1 {
		return nil, chk.Err("multiple control volumes found in reaction only simulation; check that dx is equal to the domain length")
	}
	return
}

// LoadSpecies loads the species table, allocates the arena arrays and
// sets the initial densities on every node of the reacting material
func (o *Manager) LoadSpecies(sp *inp.Species, mm *mat.Manager) (err error) {

	// input checks
	if len(sp.IniMassFrac) != len(sp.Names) {
		return chk.Err("number of species names (%d) must match number of initial mass fractions (%d)", len(sp.Names), len(sp.IniMassFrac))
	}
	if len(sp.MolWeights) != len(sp.Names) {
		return chk.Err("number of species names (%d) must match number of molecular weights (%d)", len(sp.Names), len(sp.MolWeights))
	}
	sum := 0.0
	for _, frac := range sp.IniMassFrac {
		sum += frac
	}
	if sum-1.0 > smallNumber || 1.0-sum > smallNumber {
		return chk.Err("initial mass fractions sum to %v, not 1.0", sum)
	}

	// thermal properties
	o.MatName = sp.Mat
	m, err := mm.Get(o.MatName)
	if err != nil {
		return err
	}
	o.Rho = m.Rho
	o.Cp = m.Cp
	o.RhoCp = o.Rho * o.Cp

	// arena arrays
	g := o.Grid
	o.nspec = len(sp.Names)
	o.Names = sp.Names
	o.MolWt = sp.MolWeights
	o.idx = make(map[string]int, o.nspec)
	for j, name := range sp.Names {
		if _, ok := o.idx[name]; ok {
			return chk.Err("species %q appears twice in the species table", name)
		}
		o.idx[name] = j
	}
	o.Density = utl.Alloc(o.nspec, g.Ntot)
	o.RateArr = utl.Alloc(o.nspec, g.Ntot)
	o.TempRate = make([]float64, g.Ntot)
	o.HeatRelease = make([]float64, g.Ntot)
	for j := 0; j < o.nspec; j++ {
		for i := 0; i < g.Ntot; i++ {
			if g.MatNodes[i] == o.MatName {
				o.Density[j][i] = sp.IniMassFrac[j] * o.Rho
			}
		}
	}

	// cell node key; the sentinel in FirstNodes covers the last layer
	o.cellNodeKey = make([]int, g.Ntot)
	for k, lm := range g.LayerMats {
		if lm != o.MatName {
			continue
		}
		o.Ncells++
		o.CellBounds = append(o.CellBounds, [2]int{g.FirstNodes[k], g.FirstNodes[k+1]})
		for i := g.FirstNodes[k]; i < g.FirstNodes[k+1]; i++ {
			o.cellNodeKey[i] = o.Ncells
		}
	}
	if o.Ncells == 0 {
		return chk.Err("material %q of the species table is not on any layer", o.MatName)
	}

	// nodes where reactions are present
	for i := 0; i < g.Ntot; i++ {
		if g.MatNodes[i] == o.MatName {
			o.activeNodes = append(o.activeNodes, i)
		}
	}
	return
}

// LoadReactions sorts the reaction table by key, builds the rate models
// and activation masks, groups cells into reduced systems and checks
// that every node of the reacting material resolves to a system
func (o *Manager) LoadReactions(reactions []*inp.Reaction) (err error) {
	if o.idx == nil {
		return chk.Err("species must be loaded before reactions")
	}

	// fixed reaction order
	rxns := make([]*inp.Reaction, len(reactions))
	copy(rxns, reactions)
	sort.Slice(rxns, func(i, j int) bool { return rxns[i].Key < rxns[j].Key })
	nrxn := len(rxns)

	// build models, conversion matrix and activation masks
	mi := &mrxn.MatInfo{Names: o.Names, Idx: o.idx, MolWt: o.MolWt, Rho: o.Rho, Cp: o.Cp}
	o.fracMat = utl.Alloc(o.nspec, nrxn)
	activeCells := make([][]bool, nrxn)
	o.models = make([]mrxn.Model, nrxn)
	for r, rxn := range rxns {
		model, fracCol, err := mrxn.New(rxn, mi)
		if err != nil {
			return err
		}
		o.models[r] = model
		for j := 0; j < o.nspec; j++ {
			o.fracMat[j][r] = fracCol[j]
		}
		activeCells[r] = make([]bool, o.Ncells)
		if len(rxn.ActiveCells) == 0 {
			for c := 0; c < o.Ncells; c++ {
				activeCells[r][c] = true
			}
			continue
		}
		for _, cell := range rxn.ActiveCells {
			if cell < 1 {
				return chk.Err("cell number on reaction %d must be greater than or equal to 1", rxn.Key)
			}
			if cell > o.Ncells {
				return chk.Err("cell %d on reaction %d does not exist; only %d cells were found in the mesh", cell, rxn.Key, o.Ncells)
			}
			activeCells[r][cell-1] = true
		}
	}

	// group cells into reduced systems
	var unique [][]bool
	o.nodeToSys, unique = mapAllSystems(activeCells, o.cellNodeKey)
	for _, i := range o.activeNodes {
		if o.nodeToSys[i] < 0 {
			return chk.Err("no reaction system specified on node %d", i)
		}
	}

	// build one reduced system per distinct mask
	o.Systems = make([]*System, len(unique))
	for s, mask := range unique {
		sys := &System{rhoCp: o.RhoCp, dscMode: o.DscMode, dscRate: o.DscRate, nspec: o.nspec, small: smallNumber}
		for r := 0; r < nrxn; r++ {
			if !mask[r] {
				continue
			}
			sys.models = append(sys.models, o.models[r])
		}
		sys.frac = utl.Alloc(o.nspec, len(sys.models))
		c := 0
		for r := 0; r < nrxn; r++ {
			if !mask[r] {
				continue
			}
			for j := 0; j < o.nspec; j++ {
				sys.frac[j][c] = o.fracMat[j][r]
			}
			c++
		}
		o.Systems[s] = sys
	}
	return
}

// Advance integrates the reaction ODEs on every active node across the
// macro time interval spanned by tPts. Nodes flagged as exhausted on
// the previous step are cleared before the pass; nodes completing on
// this step are only flagged, never removed mid-pass. The returned
// status slice is nil unless op.WithStatus is set.
func (o *Manager) Advance(tPts, Tin []float64, op *Opts) (Tout []float64, stats []Status, err error) {
	if len(tPts) < 2 {
		return nil, nil, chk.Err("at least 2 time points are required; got %d", len(tPts))
	}
	if op == nil {
		op = NewOpts()
	}
	t0, tf := tPts[0], tPts[len(tPts)-1]
	Tout = make([]float64, len(Tin))
	copy(Tout, Tin)

	// clear nodes that completed last step
	if len(o.pending) > 0 {
		o.clearNodes()
	}

	// integrate each active node independently
	v := make([]float64, o.nspec+1)
	f := make([]float64, o.nspec+1)
	for ai, i := range o.activeNodes {
		sysIdx := o.nodeToSys[i]
		if sysIdx < 0 {
			return nil, nil, chk.Err("no reaction system specified on node %d", i)
		}
		sys := o.Systems[sysIdx]

		// state vector: species densities in load order, temperature last
		for j := 0; j < o.nspec; j++ {
			v[j] = o.Density[j][i]
		}
		v[o.nspec] = Tin[i]

		// stiff solve; the best result is written back even on failure
		e := sys.SolveNode(v, t0, tf, op)
		if op.WithStatus {
			stats = append(stats, Status{Node: i, Err: e})
		}

		// write back state and instantaneous rates
		for j := 0; j < o.nspec; j++ {
			o.Density[j][i] = v[j]
		}
		sys.Rates(f, v)
		for j := 0; j < o.nspec; j++ {
			o.RateArr[j][i] = f[j]
		}
		o.TempRate[i] = f[o.nspec]
		o.HeatRelease[i] = f[o.nspec] * o.RhoCp
		Tout[i] = v[o.nspec]

		// exhaustion decision is buffered; removal happens next step
		if sys.Complete(v) {
			o.pending = append(o.pending, ai)
		}
	}
	return
}

// clearNodes snaps negligible residues to zero, zeroes the rates and
// removes the flagged nodes from the active set. There is no
// reactivation path.
func (o *Manager) clearNodes() {
	drop := make(map[int]bool, len(o.pending))
	for _, ai := range o.pending {
		drop[ai] = true
		i := o.activeNodes[ai]
		for j := 0; j < o.nspec; j++ {
			if o.Density[j][i] < smallNumber {
				o.Density[j][i] = 0
			}
			o.RateArr[j][i] = 0
		}
		o.TempRate[i] = 0
		o.HeatRelease[i] = 0
	}
	var kept []int
	for ai, i := range o.activeNodes {
		if !drop[ai] {
			kept = append(kept, i)
		}
	}
	o.activeNodes = kept
	o.pending = nil
}

// ActiveNodes returns the nodes still reacting. The slice is owned by
// the manager and must not be modified.
func (o *Manager) ActiveNodes() []int { return o.activeNodes }

// NodeSystem returns the reduced system index assigned to a node;
// -1 means the node is outside the reacting material
func (o *Manager) NodeSystem(i int) int { return o.nodeToSys[i] }
