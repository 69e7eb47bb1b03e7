// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package teqc

import "fmt"

// First line of the input is not a known report tag
type FormatError struct {
	Source string // Input name given in DecodeOpt
	Line   string // First line as read ("" if the input is empty)
}

func (e *FormatError) Error() string {
	if len(e.Source) == 0 {
		return fmt.Sprintf("input is corrupt or not a TEQC report (first line=%q)", e.Line)
	}
	return fmt.Sprintf("%s is corrupt or not a TEQC report (first line=%q)", e.Source, e.Line)
}

// A header line of the report could not be read
type HeaderError struct {
	Line int    // Line number (1-based)
	Text string // Line content
	Err  error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("invalid header at line %d: %q: %s", e.Line, e.Text, e.Err.Error())
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}

// A satellite list line could not be read
type RecordError struct {
	Line int    // Line number (1-based)
	Text string // Line content
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("invalid record at line %d: %q: %s", e.Line, e.Text, e.Err.Error())
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
