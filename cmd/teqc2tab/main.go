// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	m "github.com/mkhts/teqc"
	"github.com/mkhts/teqc/storage"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs()
	if err != nil {
		flag.Usage()
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Main application processing
func runApplication(args cmdOpt) error {

	// Load input file
	opt := m.NewDecodeOpt()
	opt.MaxSats = args.maxSats
	rep, err := m.ReadFile(args.repFn, opt)
	if err != nil {
		return fmt.Errorf("failed to read report file: %w", err)
	}

	// Satellite filter
	if len(args.sats) > 0 {
		rep = rep.Select(args.sats)
	}

	if m.DBG_ >= 1 || args.summary {
		m.PrintA("--- report (%s)---\n", filepath.Base(args.repFn))
		m.PrintA("%s\n", rep)
	}
	if m.DBG_ >= 3 {
		m.PrintMat(rep.Values)
	}

	// Store into the database
	if len(args.dbFn) > 0 {
		if err := storeReport(args.dbFn, filepath.Base(args.repFn), rep); err != nil {
			return fmt.Errorf("failed to store report: %w", err)
		}
	}

	if args.summary {
		return nil
	}

	// Prepare output file
	out, err := prepareOutput(args)
	if err != nil {
		return fmt.Errorf("failed to prepare output: %w", err)
	}
	defer closeOutput(out)

	return rep.WriteCSV(out, !args.noHeader)
}

// Store the report into the SQLite database
func storeReport(fn, name string, rep *m.Report) error {
	db, err := storage.Open(fn)
	if err != nil {
		return err
	}
	defer db.Close()
	id, err := db.SaveReport(context.Background(), name, rep)
	if err != nil {
		return err
	}
	m.PrintD(1, "stored as report %d in %s\n", id, fn)
	return nil
}

// Prepare output file
func prepareOutput(args cmdOpt) (io.WriteCloser, error) {

	// Use stdout if no output file is specified
	if len(args.outFn) == 0 {
		return &nopCloser{os.Stdout}, nil
	}

	// Create output file
	f, err := os.Create(args.outFn)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// Close output file
func closeOutput(out io.WriteCloser) {
	if out != nil {
		out.Close()
	}
}

// nopCloser - WriteCloser that ignores close operations
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Structure to hold command line argument information
type cmdOpt struct {
	repFn    string
	outFn    string
	dbFn     string
	noHeader bool
	summary  bool
	sats     m.SatVar
	maxSats  int
}

// Parse command line arguments
func parseArgs() (a cmdOpt, err error) {
	flag.Usage = func() {
		m.PrintA(`
[Usage]
	%s [Options] report_file

[Options]
`, filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	opt := m.NewDecodeOpt()
	flag.StringVar(&a.outFn, "o", "", "Output CSV file path. If not specified, output to stdout.")
	flag.StringVar(&a.dbFn, "db", "", "SQLite database file to store the decoded report into.")
	flag.BoolVar(&a.noHeader, "nh", false, "Do not output the header line of the CSV.")
	flag.BoolVar(&a.summary, "s", false, "Only display the report overview to stderr.")
	flag.Var(&a.sats, "sats", "Satellites to output, in the given order. Comma-separated without spaces like G01,R07.")
	flag.IntVar(&a.maxSats, "ms", opt.MaxSats, "Maximum number of distinct satellites in a report. Set to 0 for no limit.")
	var dbg int
	flag.IntVar(&dbg, "x", 0, "Debug information display. Specify level value. 0(OFF), 1(display), 2(detailed display), 3(most detailed)")
	flag.Parse()
	if flag.NArg() != 1 {
		return a, fmt.Errorf("too less or many arguments")
	}
	a.repFn = flag.Arg(0)
	m.DBG_ = dbg
	return
}
