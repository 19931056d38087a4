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
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite3 driver
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/config"
)

//go:embed schema.sqlite.sql
var sqliteSchema string

//go:embed schema.postgres.sql
var postgresSchema string

// DB holds the database connection
type DB struct {
	*sqlx.DB
	driver string // configured driver name (sqlite3, postgres)
	logger *zap.Logger
}

// Driver returns the configured database driver name (e.g., sqlite3, postgres).
func (db *DB) Driver() string {
	return db.driver
}

// NewConnection creates a new database connection using configuration
func NewConnection(ctx context.Context, cfg *config.Database, logger *zap.Logger) (*DB, error) {
	var db *sqlx.DB
	var err error

	switch cfg.Driver {
	case "sqlite3":
		// Ensure the directory exists for SQLite
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

		dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_loc=UTC", cfg.Path)
		db, err = sqlx.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		// Prevents "database is locked" errors with concurrent access
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	case "postgres", "postgresql":
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
		)

		// sqlx binds $n placeholders for the pgx driver name
		db, err = sqlx.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}

		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("driver", cfg.Driver),
		zap.Int("max_open_conns", db.Stats().MaxOpenConnections))

	return &DB{DB: db, driver: cfg.Driver, logger: logger}, nil
}

// InitSchema creates every table of the management schema if it does not exist.
// The embedded schema file is selected by driver.
func (db *DB) InitSchema(ctx context.Context) error {
	switch db.driver {
	case "sqlite3":
		// SQLite handles multi-statement Exec
		if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	case "postgres", "postgresql":
		if err := db.initSchemaPostgres(ctx, postgresSchema); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported database driver for schema initialization: %s", db.driver)
	}

	db.logger.Info("Database schema initialized", zap.String("driver", db.driver))
	return nil
}

// initSchemaPostgres splits SQL statements and executes them individually within a transaction
func (db *DB) initSchemaPostgres(ctx context.Context, schemaSQL string) error {
	statements := splitSQLStatements(schemaSQL)

	return db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for i, stmt := range statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				firstLine := stmt
				if idx := strings.Index(stmt, "\n"); idx > 0 {
					firstLine = stmt[:idx]
				}
				return fmt.Errorf("failed to execute schema statement %d/%d: %w\nFirst line: %s", i+1, len(statements), err, firstLine)
			}
		}
		return nil
	})
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back when fn returns an error or panics.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				db.logger.Error("Failed to roll back transaction", zap.Error(rbErr))
			}
			return
		}
		if err = tx.Commit(); err != nil {
			err = fmt.Errorf("failed to commit transaction: %w", err)
		}
	}()

	return fn(tx)
}

var blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)

// splitSQLStatements splits SQL by semicolons, ignoring semicolons inside string literals
// and dropping comments
func splitSQLStatements(sql string) []string {
	sql = blockCommentRe.ReplaceAllString(sql, "\n")

	var statements []string
	current := strings.Builder{}
	inString := false

	flush := func() {
		if stmt := removeLineComments(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for _, r := range sql {
		if r == '\'' {
			inString = !inString
		}
		if !inString && r == ';' {
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()

	return statements
}

// removeLineComments strips "--" comments that are not inside a string literal
func removeLineComments(stmt string) string {
	var cleaned []string
	for _, line := range strings.Split(stmt, "\n") {
		if idx := strings.Index(line, "--"); idx >= 0 && strings.Count(line[:idx], "'")%2 == 0 {
			line = line[:idx]
		}
		if strings.TrimSpace(line) != "" {
			cleaned = append(cleaned, strings.TrimRight(line, " \t"))
		}
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}
