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

// TEQC report dialect given on the first line
type Dialect int

const (
	Compact  Dialect = iota + 1 // "COMPACT"  : legacy, satellite list line after the tag
	Compact2                    // "COMPACT2" : legacy
	Compact3                    // "COMPACT3" : per-epoch time offsets, calendar start time
)

var dialectTags = map[string]Dialect{
	"COMPACT":  Compact,
	"COMPACT2": Compact2,
	"COMPACT3": Compact3,
}

func (d Dialect) String() string {
	switch d {
	case Compact:
		return "COMPACT"
	case Compact2:
		return "COMPACT2"
	case Compact3:
		return "COMPACT3"
	default:
		return "UNKNOWN!"
	}
}

// Number of lines stripped before the dialect header
func (d Dialect) HeaderLines() int {
	if d == Compact {
		return 2
	}
	return 1
}

// Whether the dialect uses a fixed sampling interval and normalizes PRN tokens
func (d Dialect) Legacy() bool {
	return d == Compact || d == Compact2
}

// Determine the dialect from the first line of a report
func DetectDialect(line string) (Dialect, error) {
	if d, ok := dialectTags[strings.ToUpper(strings.TrimSpace(line))]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown report tag: %q", line)
}

// Read the last field of a header line as a real value
func lastValue(l string) (float64, error) {
	f := strings.Fields(l)
	if len(f) == 0 {
		return 0, fmt.Errorf("empty line")
	}
	return parseFloat(f[len(f)-1])
}

// Fields of a header line giving calendar date and time
func getStartTime(l string) (day int, sec float64, err error) {
	f := strings.Fields(l)
	if len(f) < 6 {
		return 0, 0, fmt.Errorf("not enough fields for start time (%d)", len(f))
	}
	f = f[len(f)-6:]
	var ymdhm [5]int
	for i := range ymdhm {
		ymdhm[i], err = strconv.Atoi(f[i])
		if err != nil {
			return 0, 0, err
		}
	}
	s, err := parseFloat(f[5])
	if err != nil {
		return 0, 0, err
	}
	day, sec = CalToMJD(ymdhm[0], ymdhm[1], ymdhm[2], ymdhm[3], ymdhm[4], s)
	return day, sec, nil
}

// Read the header line at i with fn, wrapping failures as HeaderError
func readHeader[T any](lines []string, i, base int, fn func(string) (T, error)) (T, error) {
	var v T
	if i >= len(lines) {
		return v, &HeaderError{Line: base + i + 1, Err: fmt.Errorf("unexpected end of header")}
	}
	v, err := fn(lines[i])
	if err != nil {
		return v, &HeaderError{Line: base + i + 1, Text: lines[i], Err: err}
	}
	return v, nil
}

// Decode a legacy report (COMPACT, COMPACT2). Header: sampling interval [s], then start MJD.
func decodeLegacy(lines []string, base int, opt *DecodeOpt) (*decodeState, error) {
	ti, err := readHeader(lines, 0, base, lastValue)
	if err != nil {
		return nil, err
	}
	ts, err := readHeader(lines, 1, base, lastValue)
	if err != nil {
		return nil, err
	}
	PrintD(1, "interval=%g start=%.6f\n", ti, ts)

	pol := &dialectPolicy{
		epochTime: func(n int, f []string) (float64, []string, error) {
			return ts + float64(n)*ti/SecPerDay, f, nil
		},
		normalize: true,
	}
	return runDecode(lines, 2, base, opt, pol)
}

type mjdPair struct {
	day int
	sec float64
}

// Decode a COMPACT3 report. Header: calendar start time. Each satellite list line begins with a time offset [s].
func decodeModern(lines []string, base int, opt *DecodeOpt) (*decodeState, error) {
	t0, err := readHeader(lines, 0, base, func(l string) (mjdPair, error) {
		d, s, err := getStartTime(l)
		return mjdPair{d, s}, err
	})
	if err != nil {
		return nil, err
	}
	PrintD(1, "start=%d %.3f\n", t0.day, t0.sec)

	pol := &dialectPolicy{
		epochTime: func(n int, f []string) (float64, []string, error) {
			if len(f) == 0 {
				return 0, f, fmt.Errorf("no time offset")
			}
			dt, err := parseFloat(f[0])
			if err != nil {
				return 0, f, fmt.Errorf("invalid time offset: %w", err)
			}
			return float64(t0.day) + (t0.sec+dt)/SecPerDay, f[1:], nil
		},
		// Satellite names are already in canonical form in this dialect
		normalize: false,
	}
	return runDecode(lines, 1, base, opt, pol)
}

// Decode epochs from lines[pos:] until the input ends
func runDecode(lines []string, pos, base int, opt *DecodeOpt, pol *dialectPolicy) (*decodeState, error) {
	st := newDecodeState(lines, pos, base, opt.MaxSats)
	for {
		ok, err := st.next(pol)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	st.tab.truncate(len(st.times))
	PrintD(1, "%d epochs, %d satellites\n", len(st.times), st.cat.Len())
	return st, nil
}
