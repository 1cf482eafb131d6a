// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bcs

import (
	"github.com/jtmcconnell/lim1tr/eqn"
	"github.com/jtmcconnell/lim1tr/mat"
)

// Timed wraps another boundary operator and suppresses both of its
// contribution paths once the elapsed simulated time reaches OffTime.
// The cutoff is exclusive within a 1e-14 epsilon so the gate does not
// flicker on floating point round-off at the boundary.
type Timed struct {
	Inner   Bc      // the gated operator; owns all physical parameters
	OffTime float64 // cutoff time
	totTime float64 // elapsed simulated time; advanced via SetTime
}

// NewTimed wraps bc with a temporal gate
func NewTimed(bc Bc, offTime float64) *Timed {
	return &Timed{Inner: bc, OffTime: offTime}
}

// SetTime advances the gate clock
func (o *Timed) SetTime(totTime float64) { o.totTime = totTime }

func (o *Timed) on() bool { return o.OffTime-o.totTime > 1e-14 }

// Apply forwards to the wrapped operator while the gate is open
func (o *Timed) Apply(s *eqn.System, mm *mat.Manager, T []float64) {
	if o.on() {
		o.Inner.Apply(s, mm, T)
	}
}

// ApplyOperator forwards to the wrapped operator while the gate is open
func (o *Timed) ApplyOperator(s *eqn.System, mm *mat.Manager, T []float64) {
	if o.on() {
		o.Inner.ApplyOperator(s, mm, T)
	}
}

// Name returns the wrapped operator name with a timed suffix
func (o *Timed) Name() string { return o.Inner.Name() + "_timed" }
