/*
 *  Copyright (c) 2026, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wso2/api-platform/management-repository/config"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	cfg := &config.Database{
		Driver: "sqlite3",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := NewConnection(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema(context.Background()))
	return db
}

func TestInitSchemaIsRepeatable(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.InitSchema(context.Background()))

	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'`)
	require.NoError(t, err)
	assert.Equal(t, 24, count)
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := NewConnection(context.Background(), &config.Database{Driver: "mysql"}, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO organizations (id, name, created_at, updated_at) VALUES ('o1', 'one', '2024-01-01', '2024-01-01')`)
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM organizations`))
	assert.Equal(t, 1, count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO organizations (id, name, created_at, updated_at) VALUES ('o1', 'one', '2024-01-01', '2024-01-01')`)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM organizations`))
	assert.Equal(t, 0, count)
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = db.WithTx(ctx, func(tx *sqlx.Tx) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO organizations (id, name, created_at, updated_at) VALUES ('o1', 'one', '2024-01-01', '2024-01-01')`)
			require.NoError(t, err)
			panic("boom")
		})
	})

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM organizations`))
	assert.Equal(t, 0, count)
}

func TestSplitSQLStatements(t *testing.T) {
	sql := `
-- leading comment
CREATE TABLE a (id TEXT); /* block
comment */
INSERT INTO a VALUES ('x;y'); -- trailing
CREATE INDEX idx ON a(id)
`
	statements := splitSQLStatements(sql)
	require.Len(t, statements, 3)
	assert.Equal(t, "CREATE TABLE a (id TEXT)", statements[0])
	assert.Equal(t, "INSERT INTO a VALUES ('x;y')", statements[1])
	assert.Equal(t, "CREATE INDEX idx ON a(id)", statements[2])
}

func TestPostgresSchemaSplitsIntoStatements(t *testing.T) {
	statements := splitSQLStatements(postgresSchema)
	assert.NotEmpty(t, statements)
	for _, stmt := range statements {
		assert.NotContains(t, stmt, "--")
	}
}
