// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mat gives node-level access to the materials database on a grid
package mat

import (
	"github.com/cpmech/gosl/chk"

	"github.com/jtmcconnell/lim1tr/grid"
	"github.com/jtmcconnell/lim1tr/inp"
)

// Manager resolves material properties by name and carries the
// conductive coefficient array used by boundary operators
type Manager struct {
	Db   *inp.MatDb // materials database
	Grid *grid.Grid // grid reference

	// derived
	KArr []float64 // [Ntot-1] harmonic-mean conductivity at each internal interface
}

// NewManager builds a manager for the given database and grid
func NewManager(db *inp.MatDb, g *grid.Grid) (o *Manager, err error) {
	o = new(Manager)
	o.Db = db
	o.Grid = g

	// nodal conductivities
	knode := make([]float64, g.Ntot)
	for i, name := range g.MatNodes {
		m := db.Get(name)
		if m == nil {
			return nil, chk.Err("material %q on node %d is not in the materials database", name, i)
		}
		knode[i] = m.K
	}

	// interface conductivities
	if g.Ntot > 1 {
		o.KArr = make([]float64, g.Ntot-1)
		for i := 0; i < g.Ntot-1; i++ {
			o.KArr[i] = 2.0 * knode[i] * knode[i+1] / (knode[i] + knode[i+1])
		}
	}
	return
}

// Get returns a material by name
func (o *Manager) Get(name string) (m *inp.Material, err error) {
	m = o.Db.Get(name)
	if m == nil {
		return nil, chk.Err("material %q is not in the materials database", name)
	}
	return
}
