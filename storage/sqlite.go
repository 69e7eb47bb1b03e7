// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

// Package storage keeps decoded TEQC reports in a SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	_ "modernc.org/sqlite"

	"github.com/mkhts/teqc"
)

// DB wraps a SQLite database connection for report storage.
type DB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		dialect INTEGER NOT NULL,
		created_at TEXT DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS epochs (
		report_id INTEGER NOT NULL REFERENCES reports(id),
		epoch INTEGER NOT NULL,
		mjd REAL NOT NULL,
		PRIMARY KEY (report_id, epoch)
	);

	CREATE TABLE IF NOT EXISTS sats (
		report_id INTEGER NOT NULL REFERENCES reports(id),
		col INTEGER NOT NULL,
		sat TEXT NOT NULL,
		PRIMARY KEY (report_id, col)
	);

	CREATE TABLE IF NOT EXISTS observations (
		report_id INTEGER NOT NULL REFERENCES reports(id),
		epoch INTEGER NOT NULL,
		col INTEGER NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (report_id, epoch, col)
	);

	CREATE INDEX IF NOT EXISTS idx_reports_name ON reports(name);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveReport stores a report and returns its id. Missing values are not stored.
func (d *DB) SaveReport(ctx context.Context, name string, r *teqc.Report) (int64, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO reports (name, dialect) VALUES (?, ?)`, name, int(r.Dialect))
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, t := range r.Times {
		if _, err := tx.ExecContext(ctx, `INSERT INTO epochs (report_id, epoch, mjd) VALUES (?, ?, ?)`, id, i, t); err != nil {
			return 0, fmt.Errorf("insert epoch %d: %w", i, err)
		}
	}
	for j, s := range r.Sats {
		if _, err := tx.ExecContext(ctx, `INSERT INTO sats (report_id, col, sat) VALUES (?, ?, ?)`, id, j, string(s)); err != nil {
			return 0, fmt.Errorf("insert satellite %s: %w", s, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO observations (report_id, epoch, col, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	for i := range r.Times {
		for j := range r.Sats {
			v := r.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			if _, err := stmt.ExecContext(ctx, id, i, j, v); err != nil {
				return 0, fmt.Errorf("insert observation (%d, %d): %w", i, j, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// LoadReport rebuilds a stored report.
func (d *DB) LoadReport(ctx context.Context, id int64) (*teqc.Report, error) {
	var dialect int
	err := d.db.QueryRowContext(ctx, `SELECT dialect FROM reports WHERE id = ?`, id).Scan(&dialect)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}
	r := &teqc.Report{Dialect: teqc.Dialect(dialect)}

	rows, err := d.db.QueryContext(ctx, `SELECT mjd FROM epochs WHERE report_id = ? ORDER BY epoch`, id)
	if err != nil {
		return nil, fmt.Errorf("query epochs: %w", err)
	}
	for rows.Next() {
		var t float64
		if err := rows.Scan(&t); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan epoch: %w", err)
		}
		r.Times = append(r.Times, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = d.db.QueryContext(ctx, `SELECT sat FROM sats WHERE report_id = ? ORDER BY col`, id)
	if err != nil {
		return nil, fmt.Errorf("query sats: %w", err)
	}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sat: %w", err)
		}
		r.Sats = append(r.Sats, teqc.SatType(s))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(r.Times) == 0 || len(r.Sats) == 0 {
		return r, nil
	}
	r.Values = mat.NewDense(len(r.Times), len(r.Sats), nil)
	for i := range r.Times {
		for j := range r.Sats {
			r.Values.Set(i, j, math.NaN())
		}
	}

	rows, err = d.db.QueryContext(ctx, `SELECT epoch, col, value FROM observations WHERE report_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var i, j int
		var v float64
		if err := rows.Scan(&i, &j, &v); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		if i < len(r.Times) && j < len(r.Sats) {
			r.Values.Set(i, j, v)
		}
	}
	return r, rows.Err()
}

// ReportInfo is one row of the reports table.
type ReportInfo struct {
	ID      int64
	Name    string
	Dialect teqc.Dialect
}

// ListReports returns stored reports, newest first.
func (d *DB) ListReports(ctx context.Context) ([]ReportInfo, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, name, dialect FROM reports ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()
	var a []ReportInfo
	for rows.Next() {
		var ri ReportInfo
		var dialect int
		if err := rows.Scan(&ri.ID, &ri.Name, &dialect); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		ri.Dialect = teqc.Dialect(dialect)
		a = append(a, ri)
	}
	return a, rows.Err()
}
