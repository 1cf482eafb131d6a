// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// Material holds thermal material data
type Material struct {

	// input
	Name string     `json:"name"` // name of material
	Prms dbf.Params `json:"prms"` // rho, cp, k

	// derived
	Rho float64 // density [kg/m³]
	Cp  float64 // specific heat [J/(kg·K)]
	K   float64 // thermal conductivity [W/(m·K)]
}

// MatsData holds materials
type MatsData []*Material

// MatDb implements a database of materials
type MatDb struct {
	Materials MatsData `json:"materials"` // all materials
}

// ReadMat reads all materials data from a .mat JSON file
func ReadMat(dir, fn string) (mdb *MatDb, err error) {

	// read file
	b := io.ReadFile(filepath.Join(dir, fn))

	// decode
	mdb = new(MatDb)
	err = json.Unmarshal(b, mdb)
	if err != nil {
		return nil, chk.Err("cannot parse materials file %q:\n%v", fn, err)
	}

	// derive properties
	for _, m := range mdb.Materials {
		for _, pair := range []struct {
			v    *float64
			name string
		}{{&m.Rho, "rho"}, {&m.Cp, "cp"}, {&m.K, "k"}} {
			p := m.Prms.Find(pair.name)
			if p == nil {
				return nil, chk.Err("material %q must have %q in its parameters", m.Name, pair.name)
			}
			*pair.v = p.V
		}
		if m.Rho <= 0 || m.Cp <= 0 || m.K <= 0 {
			return nil, chk.Err("material %q must have positive rho, cp and k", m.Name)
		}
	}
	return
}

// Get returns a material
//  Note: returns nil if not found
func (o *MatDb) Get(name string) *Material {
	for _, mat := range o.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// String prints one material
func (o *Material) String() string {
	return io.Sf("{%q: rho=%g cp=%g k=%g}", o.Name, o.Rho, o.Cp, o.K)
}
