// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package eqn holds the per-node vectors of the global conduction system.
// Boundary operators mutate these vectors in place; the linear solve and
// the Newton driver that own them live outside this repository.
package eqn

import "github.com/cpmech/gosl/la"

// System holds the mutable per-node vectors of the linearized system
type System struct {
	N    int       // number of control volumes
	LHSc la.Vector // [N] diagonal conductance
	RHS  la.Vector // [N] source vector
	Jc   la.Vector // [N] Jacobian diagonal contribution
	F    la.Vector // [N] residual
}

// New allocates a system with n control volumes
func New(n int) (o *System) {
	o = new(System)
	o.N = n
	o.LHSc = la.NewVector(n)
	o.RHS = la.NewVector(n)
	o.Jc = la.NewVector(n)
	o.F = la.NewVector(n)
	return
}

// Reset zeroes all vectors
func (o *System) Reset() {
	o.LHSc.Fill(0)
	o.RHS.Fill(0)
	o.Jc.Fill(0)
	o.F.Fill(0)
}
