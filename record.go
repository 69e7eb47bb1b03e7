// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package teqc

import (
	"fmt"
	"strconv"
	"strings"
)

// Satellite count meaning "same satellites as the previous epoch"
const ReuseSats = -1

// How a dialect reads the parts of a satellite list line that differ between dialects
type dialectPolicy struct {
	// Return the epoch time (MJD) and the fields following the time, if any
	epochTime func(n int, f []string) (float64, []string, error)
	// Whether satellite tokens go through NormalizePRN
	normalize bool
}

// State of one decode, advanced forward line by line
type decodeState struct {
	lines []string
	pos   int // Index of the next line to read
	base  int // Number of lines stripped before lines[0]
	cat   *Catalog
	tab   *valueTable
	times []float64
	sats  []SatType // Satellites of the current epoch
	cols  []int     // Their columns in the value table
}

func newDecodeState(lines []string, pos, base, maxSats int) *decodeState {
	return &decodeState{
		lines: lines,
		pos:   pos,
		base:  base,
		cat:   NewCatalog(maxSats),
		tab:   newValueTable(len(lines) - pos),
		times: make([]float64, 0, (len(lines)-pos)/2+1),
	}
}

// Line number (1-based, counted in the original input) of lines[i]
func (st *decodeState) lineNo(i int) int {
	return st.base + i + 1
}

// Return the line at i, or false if the input ends there
func (st *decodeState) line(i int) (string, bool) {
	if i >= len(st.lines) || len(strings.TrimSpace(st.lines[i])) == 0 {
		return "", false
	}
	return st.lines[i], true
}

func (st *decodeState) recordError(i int, err error) error {
	return &RecordError{Line: st.lineNo(i), Text: st.lines[i], Err: err}
}

// Decode one epoch: a satellite list line and, unless the count is 0, the values line after it.
// Returns false when the input ends before the epoch is complete.
func (st *decodeState) next(pol *dialectPolicy) (bool, error) {

	l, ok := st.line(st.pos)
	if !ok {
		return false, nil
	}
	f := strings.Fields(l)

	// Epoch time
	t, f, err := pol.epochTime(len(st.times), f)
	if err != nil {
		return false, st.recordError(st.pos, err)
	}

	// Declared number of satellites
	if len(f) == 0 {
		return false, st.recordError(st.pos, fmt.Errorf("no satellite count"))
	}
	ns, err := strconv.Atoi(f[0])
	if err != nil {
		return false, st.recordError(st.pos, fmt.Errorf("invalid satellite count: %w", err))
	}
	if ns < ReuseSats {
		return false, st.recordError(st.pos, fmt.Errorf("invalid satellite count: %d", ns))
	}

	// No satellites in this epoch, nor a values line
	if ns == 0 {
		st.tab.addRow()
		st.times = append(st.times, t)
		st.pos++
		return true, nil
	}

	// The values line must be there before anything is changed
	v, ok := st.line(st.pos + 1)
	if !ok {
		PrintD(2, "input ends within the epoch at line %d\n", st.lineNo(st.pos))
		return false, nil
	}

	if ns == ReuseSats {
		PrintD(3, "line %d: reusing %d satellites\n", st.lineNo(st.pos), len(st.cols))
	} else {
		sats := make([]SatType, 0, len(f)-1)
		for _, a := range f[1:] {
			if pol.normalize {
				sats = append(sats, NormalizePRN(a))
			} else {
				sats = append(sats, SatType(a))
			}
		}
		PrintAIf(DBG_ >= 2 && len(sats) != ns, "line %d: %d satellites declared, %d listed\n", st.lineNo(st.pos), ns, len(sats))
		cols, err := st.cat.Resolve(sats)
		if err != nil {
			return false, st.recordError(st.pos, err)
		}
		st.sats = sats
		st.cols = cols
	}

	// Scatter values to the columns of the active satellites. Surplus on either side is dropped.
	vals := parseValues(v)
	PrintAIf(DBG_ >= 2 && len(vals) != len(st.cols), "line %d: %d values for %d satellites\n", st.lineNo(st.pos+1), len(vals), len(st.cols))
	i := st.tab.addRow()
	for k := 0; k < len(vals) && k < len(st.cols); k++ {
		st.tab.set(i, st.cols[k], vals[k])
	}
	st.times = append(st.times, t)
	st.pos += 2
	return true, nil
}

// Read whitespace separated real values. Stops at the first field that is not a number.
func parseValues(l string) []float64 {
	f := strings.Fields(l)
	v := make([]float64, 0, len(f))
	for _, a := range f {
		x, err := parseFloat(a)
		if err != nil {
			break
		}
		v = append(v, x)
	}
	return v
}

// Read a real value, absorbing Fortran style exponents like 1.5D+01
func parseFloat(str string) (float64, error) {
	s := strings.TrimSpace(str)
	if strings.ContainsAny(s, "Dd") {
		s = strings.Replace(s, "D", "E", 1)
		s = strings.Replace(s, "d", "e", 1)
	}
	return strconv.ParseFloat(s, 64)
}
