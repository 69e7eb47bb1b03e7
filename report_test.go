// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package teqc

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDialect(t *testing.T) {
	assert := assert.New(t)
	for in, want := range map[string]Dialect{
		"COMPACT":      Compact,
		"COMPACT2":     Compact2,
		"COMPACT3":     Compact3,
		"  compact2  ": Compact2,
	} {
		d, err := DetectDialect(in)
		assert.NoError(err)
		assert.Equal(want, d)
	}
	_, err := DetectDialect("COMPACT4")
	assert.Error(err)
	assert.Equal(2, Compact.HeaderLines())
	assert.Equal(1, Compact3.HeaderLines())
	assert.False(Compact3.Legacy())
	assert.Equal("COMPACT3", Compact3.String())
}

// Legacy report with a fixed interval
func TestDecodeCompact2(t *testing.T) {
	assert := assert.New(t)
	r, err := Decode([]string{"COMPACT2", "30", "58000", "2 G01 G02", "1.5 2.5", "0"}, nil)
	require.NoError(t, err)

	assert.Equal(Compact2, r.Dialect)
	require.Len(t, r.Times, 2)
	assert.Equal(58000.0, r.Times[0])
	assert.InDelta(58000+30.0/86400, r.Times[1], 1e-12)
	assert.Equal([]SatType{"G01", "G02"}, r.Sats)

	ne, ns := r.Dims()
	assert.Equal(2, ne)
	assert.Equal(2, ns)
	assert.Equal(1.5, r.At(0, 0))
	assert.Equal(2.5, r.At(0, 1))
	assert.True(math.IsNaN(r.At(1, 0)))
	assert.True(math.IsNaN(r.At(1, 1)))
	assert.True(math.IsNaN(r.At(2, 0)))
	assert.Equal(2, r.Count())
}

func TestDecodeReuse(t *testing.T) {
	r, err := Decode([]string{"COMPACT2", "30", "58000", "1 G03", "9.0", "-1", "9.5"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []SatType{"G03"}, r.Sats)
	assert.Equal(t, []float64{9.0, 9.5}, r.Column("G03"))
	assert.Nil(t, r.Column("G01"))
}

func TestDecodeRecordError(t *testing.T) {
	r, err := Decode([]string{"COMPACT2", "30", "58000", "1 G03", "9.0", "-2 garbage"}, nil)
	assert.Nil(t, r)
	var re *RecordError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 6, re.Line)
	assert.Equal(t, "-2 garbage", re.Text)
	assert.Contains(t, err.Error(), "line 6")
}

func TestDecodeFormatError(t *testing.T) {
	assert := assert.New(t)
	opt := NewDecodeOpt()
	opt.Source = "site0010.txt"
	r, err := Decode([]string{"NOTAFORMAT", "30", "58000"}, opt)
	assert.Nil(r)
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal("site0010.txt", fe.Source)
	assert.Contains(err.Error(), "site0010.txt")

	_, err = Decode(nil, nil)
	assert.True(errors.As(err, &fe))
}

func TestDecodeHeaderError(t *testing.T) {
	assert := assert.New(t)
	var he *HeaderError

	_, err := Decode([]string{"COMPACT2", "abc", "58000"}, nil)
	require.True(t, errors.As(err, &he))
	assert.Equal(2, he.Line)

	_, err = Decode([]string{"COMPACT2", "30"}, nil)
	require.True(t, errors.As(err, &he))
	assert.Equal(3, he.Line)

	_, err = Decode([]string{"COMPACT"}, nil)
	require.True(t, errors.As(err, &he))
	assert.Equal(2, he.Line)

	_, err = Decode([]string{"COMPACT3", "GPS_START_TIME 2017 9 4"}, nil)
	require.True(t, errors.As(err, &he))
	assert.Equal(2, he.Line)
}

// COMPACT carries a satellite list line after the tag, and PRN tokens without system
func TestDecodeCompact(t *testing.T) {
	assert := assert.New(t)
	lines := []string{"COMPACT", " 1 2", "30", "58000", "2 1 2", "1 2", "1 R7", "3", "-2 x"}
	r, err := Decode(lines, nil)
	var re *RecordError
	require.True(t, errors.As(err, &re))
	assert.Equal(9, re.Line)
	assert.Nil(r)

	r, err = Decode(lines[:8], nil)
	require.NoError(t, err)
	assert.Equal(Compact, r.Dialect)
	assert.Equal([]SatType{"G01", "G02", "R07"}, r.Sats)
	assert.Equal([]float64{1, 2}, r.Row(0)[:2])
	assert.True(math.IsNaN(r.Row(0)[2]))
	assert.Equal(3.0, r.At(1, 2))
}

func TestDecodeCompact3(t *testing.T) {
	assert := assert.New(t)
	r, err := Decode([]string{
		"COMPACT3",
		"GPS_START_TIME 2017 9 4 0 0 0.000",
		"0.0 2 G01 R07",
		"1 2",
		"30.0 -1",
		"3 4",
		"90 1 E11",
		"5",
		"120 0",
	}, nil)
	require.NoError(t, err)

	assert.Equal(Compact3, r.Dialect)
	require.Len(t, r.Times, 4)
	assert.Equal(58000.0, r.Times[0])
	assert.InDelta(58000+30.0/86400, r.Times[1], 1e-12)
	assert.InDelta(58000+90.0/86400, r.Times[2], 1e-12)
	assert.InDelta(58000+120.0/86400, r.Times[3], 1e-12)
	assert.Equal([]SatType{"G01", "R07", "E11"}, r.Sats)
	assert.Equal([]float64{3, 4}, r.Row(1)[:2])
	assert.True(math.IsNaN(r.At(1, 2)))
	assert.Equal(5.0, r.At(2, 2))
	assert.True(math.IsNaN(r.At(2, 0)))
	for j := 0; j < 3; j++ {
		assert.True(math.IsNaN(r.At(3, j)))
	}
}

// Satellite names of COMPACT3 are used as they are
func TestDecodeCompact3NoNormalize(t *testing.T) {
	r, err := Decode([]string{"COMPACT3", "2017 9 4 12 0 0", "0 1 5", "1.0"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []SatType{"5"}, r.Sats)
	assert.Equal(t, 58000.5, r.Times[0])
}

func TestDecodeCompact3BadOffset(t *testing.T) {
	var re *RecordError
	_, err := Decode([]string{"COMPACT3", "2017 9 4 0 0 0", "abc 1 G01", "1"}, nil)
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 3, re.Line)

	_, err = Decode([]string{"COMPACT3", "2017 9 4 0 0 0", "30.0", "1"}, nil)
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 3, re.Line)
}

func TestDecodeFirstSeenOrder(t *testing.T) {
	r, err := Decode([]string{"COMPACT2", "1", "58000", "2 G05 G01", "1 2", "2 G03 G05", "3 4"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []SatType{"G05", "G01", "G03"}, r.Sats)
	assert.Equal(t, 4.0, r.At(1, 0))
	assert.Equal(t, 3.0, r.At(1, 2))
	assert.True(t, math.IsNaN(r.At(1, 1)))
}

func TestDecodeEmpty(t *testing.T) {
	assert := assert.New(t)
	r, err := Decode([]string{"COMPACT2", "30", "58000"}, nil)
	require.NoError(t, err)
	assert.Empty(r.Times)
	assert.Empty(r.Sats)
	assert.Nil(r.Values)
	assert.True(math.IsNaN(r.Start()))
	assert.Equal("NO DATA", r.String())

	r, err = Decode([]string{"COMPACT2", "30", "58000", "0", "0"}, nil)
	require.NoError(t, err)
	assert.Len(r.Times, 2)
	assert.Nil(r.Values)
	assert.Equal([]float64{}, r.Row(0))
}

func TestDecodeMaxSats(t *testing.T) {
	opt := NewDecodeOpt()
	opt.MaxSats = 1
	_, err := Decode([]string{"COMPACT2", "30", "58000", "2 G01 G02", "1 2"}, opt)
	assert.True(t, errors.Is(err, ErrCatalogFull))

	opt.MaxSats = 0
	_, err = Decode([]string{"COMPACT2", "30", "58000", "2 G01 G02", "1 2"}, opt)
	assert.NoError(t, err)
}

func TestReadReport(t *testing.T) {
	r, err := ReadReport(strings.NewReader("COMPACT2\n30\n58000\n2 G01 G02\n1.5 2.5\n0\n"), nil)
	require.NoError(t, err)
	assert.Len(t, r.Times, 2)
	assert.Equal(t, 58000.0, r.Start())
	assert.InDelta(t, 58000+30.0/86400, r.End(), 1e-12)
}

func TestReadFile(t *testing.T) {
	assert := assert.New(t)
	_, err := ReadFile(filepath.Join(t.TempDir(), "none.txt"), nil)
	assert.True(errors.Is(err, os.ErrNotExist))

	fn := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(fn, []byte("hello\n"), 0o644))
	_, err = ReadFile(fn, nil)
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(fn, fe.Source)
}

func TestReportSelect(t *testing.T) {
	assert := assert.New(t)
	r, err := Decode([]string{"COMPACT2", "30", "58000", "2 G01 G02", "1.5 2.5", "0"}, nil)
	require.NoError(t, err)

	q := r.Select([]SatType{"G02", "X99", "G01", "G02"})
	assert.Equal([]SatType{"G02", "G01"}, q.Sats)
	assert.Equal(2.5, q.At(0, 0))
	assert.Equal(1.5, q.At(0, 1))
	assert.True(math.IsNaN(q.At(1, 0)))

	q = r.Select(nil)
	assert.Empty(q.Sats)
	assert.Nil(q.Values)
	assert.Len(q.Times, 2)
}

func TestReportString(t *testing.T) {
	r, err := Decode([]string{"COMPACT2", "30", "58000", "2 R01 G02", "1.5 2.5", "0"}, nil)
	require.NoError(t, err)
	s := r.String()
	assert.Contains(t, s, "COMPACT2")
	assert.Contains(t, s, "G ( 1): 02")
	assert.Contains(t, s, "R ( 1): 01")
	assert.Contains(t, s, "2017/09/04 00:00:00.000 - 2017/09/04 00:00:30.000 (2)")
	assert.Contains(t, s, "50.0%")
}

func TestWriteCSV(t *testing.T) {
	r, err := Decode([]string{"COMPACT2", "30", "58000", "2 G01 G02", "1.5 2.5", "0"}, nil)
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, r.WriteCSV(&b, true))
	assert.Equal(t, "mjd,G01,G02\n58000.00000000,1.5,2.5\n58000.00034722,,\n", b.String())

	b.Reset()
	require.NoError(t, r.WriteCSV(&b, false))
	assert.Equal(t, "58000.00000000,1.5,2.5\n58000.00034722,,\n", b.String())
}
