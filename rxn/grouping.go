// Copyright 2021 The Lim1tr Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rxn

// sameMask reports whether two activation columns are identical
func sameMask(a, b []bool) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// mapAllSystems groups cells by identical reaction-activation columns so
// that only one reduced system is built per distinct pattern. It returns
// the node => system index map (-1 for nodes outside the reacting
// material) and the list of distinct activation masks in order of first
// appearance.
//   activeCells -- [nrxn][ncells] whether reaction r runs on cell c
//   cellNodeKey -- [ntot] 1-indexed cell of each node; 0 = not this material
func mapAllSystems(activeCells [][]bool, cellNodeKey []int) (nodeToSys []int, unique [][]bool) {

	// group cells by activation column
	nrxn := len(activeCells)
	ncells := 0
	if nrxn > 0 {
		ncells = len(activeCells[0])
	}
	cellToSys := make([]int, ncells)
	for c := 0; c < ncells; c++ {
		col := make([]bool, nrxn)
		for r := 0; r < nrxn; r++ {
			col[r] = activeCells[r][c]
		}
		found := -1
		for s, mask := range unique {
			if sameMask(mask, col) {
				found = s
				break
			}
		}
		if found < 0 {
			found = len(unique)
			unique = append(unique, col)
		}
		cellToSys[c] = found
	}

	// assign nodes
	nodeToSys = make([]int, len(cellNodeKey))
	for i, cell := range cellNodeKey {
		if cell == 0 {
			nodeToSys[i] = -1
			continue
		}
		nodeToSys[i] = cellToSys[cell-1]
	}
	return
}
