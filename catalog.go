// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package teqc

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// Returned (wrapped) when the catalog would grow past its ceiling
var ErrCatalogFull = errors.New("satellite catalog is full")

// Set of satellites met so far in one decode. The position of a satellite is its column in the value table.
type Catalog struct {
	sats  []SatType       // First-seen order
	idx   map[SatType]int // Column of each satellite
	limit int             // Maximum number of satellites (0: no limit)
}

// Constructor for the above structure
func NewCatalog(limit int) *Catalog {
	return &Catalog{
		sats:  make([]SatType, 0, 64),
		idx:   make(map[SatType]int, 64),
		limit: limit,
	}
}

// Number of satellites
func (p *Catalog) Len() int {
	return len(p.sats)
}

// Satellite names by column
func (p *Catalog) Sats() []SatType {
	return slices.Clone(p.sats)
}

// Column of the satellite, or -1 if unknown
func (p *Catalog) Index(sat SatType) int {
	if i, ok := p.idx[sat]; ok {
		return i
	}
	return -1
}

// Return the column for each of the given satellites. Unknown ones are appended in the given order.
// On error the catalog is left as it was.
func (p *Catalog) Resolve(sats []SatType) ([]int, error) {

	// Collect the new ones first so that a full catalog is not half-updated
	add := make([]SatType, 0, len(sats))
	for _, s := range sats {
		if _, ok := p.idx[s]; !ok && !slices.Contains(add, s) {
			add = append(add, s)
		}
	}
	if p.limit > 0 && len(p.sats)+len(add) > p.limit {
		return nil, fmt.Errorf("%w: %d known, %d new, limit %d", ErrCatalogFull, len(p.sats), len(add), p.limit)
	}
	for _, s := range add {
		p.idx[s] = len(p.sats)
		p.sats = append(p.sats, s)
	}

	cols := make([]int, len(sats))
	for i, s := range sats {
		cols[i] = p.idx[s]
	}
	return cols, nil
}
