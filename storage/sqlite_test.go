// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package storage

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkhts/teqc"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveLoadReport(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := openTestDB(t)

	r, err := teqc.Decode([]string{"COMPACT2", "30", "58000", "2 G05 G01", "1.5 2.5", "0", "1 G03", "7"}, nil)
	require.NoError(t, err)

	id, err := db.SaveReport(ctx, "site.azi", r)
	require.NoError(t, err)

	got, err := db.LoadReport(ctx, id)
	require.NoError(t, err)
	assert.Equal(teqc.Compact2, got.Dialect)
	assert.Equal(r.Times, got.Times)
	assert.Equal([]teqc.SatType{"G05", "G01", "G03"}, got.Sats)
	for i := range r.Times {
		for j := range r.Sats {
			if math.IsNaN(r.At(i, j)) {
				assert.True(math.IsNaN(got.At(i, j)), "(%d, %d)", i, j)
			} else {
				assert.Equal(r.At(i, j), got.At(i, j), "(%d, %d)", i, j)
			}
		}
	}

	list, err := db.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(id, list[0].ID)
	assert.Equal("site.azi", list[0].Name)
}

func TestSaveEmptyReport(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	r, err := teqc.Decode([]string{"COMPACT2", "30", "58000", "0"}, nil)
	require.NoError(t, err)
	id, err := db.SaveReport(ctx, "empty", r)
	require.NoError(t, err)

	got, err := db.LoadReport(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Times, 1)
	assert.Empty(t, got.Sats)
	assert.Nil(t, got.Values)
}

func TestLoadMissingReport(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadReport(context.Background(), 42)
	assert.Error(t, err)
}
