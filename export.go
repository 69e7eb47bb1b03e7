// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package teqc

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

// Write the report as CSV. First column is the epoch time [MJD], then one column per satellite. Missing values are empty.
func (p *Report) WriteCSV(w io.Writer, header bool) error {
	cw := csv.NewWriter(w)
	rec := make([]string, len(p.Sats)+1)
	if header {
		rec[0] = "mjd"
		for j, s := range p.Sats {
			rec[j+1] = string(s)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	for i, t := range p.Times {
		rec[0] = strconv.FormatFloat(t, 'f', 8, 64)
		for j := range p.Sats {
			v := p.At(i, j)
			if math.IsNaN(v) {
				rec[j+1] = ""
			} else {
				rec[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
