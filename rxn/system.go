// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rxn

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"

	"github.com/jtmcconnell/lim1tr/mrxn"
)

// System is the reduced reaction bundle shared by all cells with the same
// activation pattern: the active models, the matching columns of the
// fractional conversion matrix, and the thermal capacity data. Systems
// are immutable after construction; SolveNode allocates its own solver
// so concurrent node solves never share state.
type System struct {
	models  []mrxn.Model
	frac    [][]float64 // [nspec][len(models)] conversion columns of the active reactions
	rhoCp   float64     // material rho times cp
	dscMode bool        // prescribed temperature ramp instead of the energy ODE
	dscRate float64     // ramp rate when dscMode is on
	nspec   int
	small   float64 // exhaustion threshold
}

// Rates evaluates the coupled right-hand side at the node state v and
// writes it into f; both have length nspec+1 with temperature last.
func (o *System) Rates(f, v []float64) {
	for j := 0; j <= o.nspec; j++ {
		f[j] = 0
	}
	qdot := 0.0
	for k, m := range o.models {
		r := m.Rate(v)
		for j := 0; j < o.nspec; j++ {
			f[j] += o.frac[j][k] * r
		}
		qdot += r * m.HRxn()
	}
	if o.dscMode {
		f[o.nspec] = o.dscRate
	} else {
		f[o.nspec] = qdot / o.rhoCp
	}
}

// SolveNode advances one node state across [t0, tf] with the Radau5
// adaptive stiff solver. The state v is updated in place. The solver
// panics when substepping fails; the panic is recovered here and
// returned as an error so one stuck node never aborts the whole pass.
func (o *System) SolveNode(v []float64, t0, tf float64, op *Opts) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = chk.Err("%v", r)
		}
	}()
	conf := ode.NewConfig("radau5", "", nil)
	conf.SetTols(op.Atol, op.Rtol)
	conf.IniH = op.Dt0
	conf.NmaxSS = op.Nsteps
	sol := ode.NewSolver(o.nspec+1, conf, func(f la.Vector, h, t float64, y la.Vector) {
		o.Rates(f, y)
	}, nil, nil)
	defer sol.Free()
	sol.Solve(v, t0, tf)
	return
}

// Complete reports whether every key reactant of this system has fallen
// below the exhaustion threshold
func (o *System) Complete(v []float64) bool {
	for _, m := range o.models {
		if v[m.KeyIdx()] >= o.small {
			return false
		}
	}
	return true
}
