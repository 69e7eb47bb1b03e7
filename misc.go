// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package teqc

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ------------------------------------
// Debug print function
// ------------------------------------

func PrintMat(X mat.Matrix) {
	if X == nil {
		fmt.Fprintf(os.Stderr, "(0 x 0)\n")
		return
	}
	r, c := X.Dims()
	fmt.Fprintf(os.Stderr, "(%d x %d)\n", r, c)
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	fmt.Fprintf(os.Stderr, "%v\n", fa)
}

func PrintA(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
}

func PrintAIf(cond bool, format string, a ...any) {
	if cond {
		PrintA(format, a...)
	}
}

// Debug display level
var DBG_ int

// Debug display
func PrintD(v int, format string, a ...any) {
	PrintAIf(DBG_ >= v, format, a...)
}

func PrintE(err error) {
	fmt.Fprintf(os.Stderr, "err=%s\n", err.Error())
}

// ------------------------------------
// For command argument parsing
// ------------------------------------

// Satellite list given like "G01,R07,5"
type SatVar []SatType

func (p *SatVar) Set(s string) error {
	*p = []SatType{}
	for _, a := range strings.Split(s, ",") {
		a = strings.TrimSpace(a)
		if len(a) == 0 {
			continue
		}
		if len(a) > 3 {
			return fmt.Errorf("invalid satellite name: %s", a)
		}
		*p = append(*p, NormalizePRN(a))
	}
	return nil
}

func (p *SatVar) String() string {
	if p == nil {
		return ""
	}
	a := make([]string, len(*p))
	for i, s := range *p {
		a[i] = string(s)
	}
	return strings.Join(a, ",")
}

// ------------------------------------
// Others
// ------------------------------------

// Sort the list of satellite names
func Sorted(s []SatType) []SatType {
	s2 := make([]SatType, len(s))
	copy(s2, s)
	sort.Slice(s2, func(i, j int) bool {
		m := map[byte]int{'G': 0, 'J': 1, 'E': 2, 'R': 3, 'C': 4, 'S': 5}
		a, b := s2[i].Sys(), s2[j].Sys()
		ma, oka := m[byte(a)]
		mb, okb := m[byte(b)]
		if !oka {
			ma = len(m)
		}
		if !okb {
			mb = len(m)
		}
		if ma == mb {
			return s2[i] < s2[j]
		} else {
			return ma < mb
		}
	})
	return s2
}
