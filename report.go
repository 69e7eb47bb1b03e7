// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package teqc

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/mat"
)

// Options for decoding
type DecodeOpt struct {
	Source  string // Name of the input used in error messages
	MaxSats int    // Maximum number of distinct satellites in one report (0: no limit)
}

// Constructor for the above structure with default values
func NewDecodeOpt() *DecodeOpt {
	return &DecodeOpt{
		Source:  "",
		MaxSats: MaxSats,
	}
}

// Decoded report: one value per epoch and satellite
type Report struct {
	Dialect Dialect
	Times   []float64  // Epoch times [MJD]
	Sats    []SatType  // Satellite of each column, in first-seen order
	Values  *mat.Dense // len(Times) x len(Sats), NaN if missing. nil if either is zero.
}

// Decode the lines of a TEQC report
func Decode(lines []string, opt *DecodeOpt) (*Report, error) {
	if opt == nil {
		opt = NewDecodeOpt()
	}
	if len(lines) == 0 {
		return nil, &FormatError{Source: opt.Source}
	}
	d, err := DetectDialect(lines[0])
	if err != nil {
		PrintD(1, "%s\n", err.Error())
		return nil, &FormatError{Source: opt.Source, Line: lines[0]}
	}
	PrintD(1, "dialect=%s\n", d)

	h := min(d.HeaderLines(), len(lines))
	var st *decodeState
	if d.Legacy() {
		st, err = decodeLegacy(lines[h:], h, opt)
	} else {
		st, err = decodeModern(lines[h:], h, opt)
	}
	if err != nil {
		return nil, err
	}
	return &Report{
		Dialect: d,
		Times:   st.times,
		Sats:    st.cat.Sats(),
		Values:  st.tab.dense(st.cat.Len()),
	}, nil
}

// Read and decode a TEQC report
func ReadReport(r io.Reader, opt *DecodeOpt) (*Report, error) {
	lines := []string{}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return Decode(lines, opt)
}

// Read and decode a TEQC report file
func ReadFile(fn string, opt *DecodeOpt) (*Report, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if opt == nil {
		opt = NewDecodeOpt()
	}
	if len(opt.Source) == 0 {
		o := *opt
		o.Source = fn
		opt = &o
	}
	return ReadReport(f, opt)
}

// Number of epochs and satellites
func (p *Report) Dims() (int, int) {
	return len(p.Times), len(p.Sats)
}

// Value at epoch i for satellite column j. NaN if missing or out of range.
func (p *Report) At(i, j int) float64 {
	if p.Values == nil || i < 0 || j < 0 || i >= len(p.Times) || j >= len(p.Sats) {
		return math.NaN()
	}
	return p.Values.At(i, j)
}

// Values of all epochs for the satellite. nil if the satellite is not in the report.
func (p *Report) Column(sat SatType) []float64 {
	j := slices.Index(p.Sats, sat)
	if j < 0 {
		return nil
	}
	c := make([]float64, len(p.Times))
	for i := range c {
		c[i] = p.At(i, j)
	}
	return c
}

// Values of all satellites at epoch i
func (p *Report) Row(i int) []float64 {
	r := make([]float64, len(p.Sats))
	for j := range r {
		r[j] = p.At(i, j)
	}
	return r
}

// Epoch time i as time.Time (UTC)
func (p *Report) Time(i int) time.Time {
	return MJDToTime(p.Times[i])
}

// First epoch time [MJD]. NaN if no epoch.
func (p *Report) Start() float64 {
	if len(p.Times) == 0 {
		return math.NaN()
	}
	return p.Times[0]
}

// Last epoch time [MJD]. NaN if no epoch.
func (p *Report) End() float64 {
	if len(p.Times) == 0 {
		return math.NaN()
	}
	return p.Times[len(p.Times)-1]
}

// Number of cells holding a value
func (p *Report) Count() int {
	n := 0
	for i := range p.Times {
		for j := range p.Sats {
			if !math.IsNaN(p.At(i, j)) {
				n++
			}
		}
	}
	return n
}

// Report with only the given satellites, in the given order. Satellites not in the report are skipped.
func (p *Report) Select(sats []SatType) *Report {
	idx := make([]int, 0, len(sats))
	sel := make([]SatType, 0, len(sats))
	for _, s := range sats {
		if j := slices.Index(p.Sats, s); j >= 0 && !slices.Contains(sel, s) {
			idx = append(idx, j)
			sel = append(sel, s)
		}
	}
	q := &Report{
		Dialect: p.Dialect,
		Times:   slices.Clone(p.Times),
		Sats:    sel,
	}
	if len(q.Times) == 0 || len(sel) == 0 {
		return q
	}
	q.Values = mat.NewDense(len(q.Times), len(sel), nil)
	for k, j := range idx {
		q.Values.SetCol(k, mat.Col(nil, j, p.Values))
	}
	return q
}

// Display report overview
func (p *Report) String() string {
	if len(p.Times) == 0 {
		return "NO DATA"
	}
	sl := map[SysType][]SatType{}
	for _, s := range Sorted(p.Sats) {
		sl[s.Sys()] = append(sl[s.Sys()], s)
	}
	var sb strings.Builder
	for _, sys := range []SysType{'G', 'J', 'E', 'R', 'C', 'S'} {
		if a, ok := sl[sys]; ok {
			sb.WriteString(fmt.Sprintf("\t%c (%2d):", sys, len(a)))
			for _, b := range a {
				sb.WriteString(fmt.Sprintf(" %s", b[1:]))
			}
			sb.WriteString("\n")
			delete(sl, sys)
		}
	}
	for sys, a := range sl { // Unknown systems
		sb.WriteString(fmt.Sprintf("\t%c (%2d):", sys, len(a)))
		for _, b := range a {
			sb.WriteString(fmt.Sprintf(" %s", b[1:]))
		}
		sb.WriteString("\n")
	}
	ne, ns := p.Dims()
	fill := 0.0
	if ns > 0 {
		fill = float64(p.Count()) / float64(ne*ns) * 100
	}
	a := `
format:
	%s

datetime:
	%s - %s (%d)

sats:
%s
filled:
	%.1f%%
`
	f := "2006/01/02 15:04:05.000"
	return fmt.Sprintf(a, p.Dialect, p.Time(0).Format(f), p.Time(ne-1).Format(f), ne, sb.String(), fill)
}
