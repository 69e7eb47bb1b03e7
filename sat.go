// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package teqc

import (
	"strconv"
	"strings"
)

// Type representing satellite name like "G10"
type SatType string

// Type representing satellite system like 'G'
type SysType byte

// Extract satellite system from satellite name
func (p *SatType) Sys() SysType {
	if len(*p) == 0 {
		return 0
	}
	return SysType((*p)[0])
}

// Extract satellite number from satellite name
func (p *SatType) Num() int {
	if len(*p) < 3 {
		return 0
	}
	i, err := strconv.Atoi(strings.TrimSpace(string((*p)[1:3])))
	if err != nil {
		return 0
	}
	return i
}

// Check validity of satellite system
func (p *SysType) IsValid() bool {
	return *p == 'G' || *p == 'J' || *p == 'E' || *p == 'R' || *p == 'C' || *p == 'S'
}

// Normalize a raw PRN token of the legacy reports into a canonical satellite name.
//
//	"1" -> "G01", " 5" -> "G05", "R7" -> "R07", "G01" -> "G01"
//
// A token whose first character is a letter keeps it as the system and the
// number is right-justified in the two remaining positions. Any other token is
// right-justified in the whole field. Blank system becomes 'G', blank tens digit '0'.
func NormalizePRN(tok string) SatType {
	if len(tok) == 0 {
		return ""
	}
	if len(tok) < 3 {
		tok = tok + strings.Repeat(" ", 3-len(tok))
	}
	b := []byte(tok[:3])
	if isLetter(b[0]) {
		n := strings.TrimSpace(string(b[1:]))
		b = []byte(string(b[0]) + strings.Repeat(" ", 2-len(n)) + n)
	} else {
		n := strings.TrimSpace(string(b))
		b = []byte(strings.Repeat(" ", 3-len(n)) + n)
	}
	if b[0] == ' ' {
		b[0] = DefSys
	}
	if b[1] == ' ' {
		b[1] = '0'
	}
	return SatType(strings.ToUpper(string(b)))
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
