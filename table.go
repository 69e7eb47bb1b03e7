// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package teqc

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Value table being filled during a decode. One row per epoch, rows only as wide as their last set column.
type valueTable struct {
	rows [][]float64
}

func newValueTable(nline int) *valueTable {
	return &valueTable{rows: make([][]float64, 0, nline/2+1)}
}

// Append an empty row for a new epoch and return its index
func (p *valueTable) addRow() int {
	p.rows = append(p.rows, nil)
	return len(p.rows) - 1
}

// Set a value. Columns skipped over while growing a row are filled with NaN.
func (p *valueTable) set(i, j int, v float64) {
	r := p.rows[i]
	for len(r) <= j {
		r = append(r, math.NaN())
	}
	r[j] = v
	p.rows[i] = r
}

// Drop rows from n on (epochs that were not completed)
func (p *valueTable) truncate(n int) {
	if n < len(p.rows) {
		p.rows = p.rows[:n]
	}
}

// Materialize as a dense nrow x ncol matrix, unset cells being NaN.
// Returns nil if either dimension is zero since mat.Dense cannot be empty.
func (p *valueTable) dense(ncol int) *mat.Dense {
	nrow := len(p.rows)
	if nrow == 0 || ncol == 0 {
		return nil
	}
	d := make([]float64, nrow*ncol)
	for i := range d {
		d[i] = math.NaN()
	}
	for i, r := range p.rows {
		copy(d[i*ncol:(i+1)*ncol], r)
	}
	return mat.NewDense(nrow, ncol, d)
}
