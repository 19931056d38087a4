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

package relational

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/metrics"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

// crud is the shared relational skeleton of every entity repository.
// Parent and child statements run on the same ExtContext, so a caller
// passing a *sqlx.Tx gets them in one transaction.
type crud[T any] struct {
	db     sqlx.ExtContext
	logger *zap.Logger
	m      *mapping[T]
}

func newCrud[T any](db sqlx.ExtContext, logger *zap.Logger, m *mapping[T]) *crud[T] {
	return &crud[T]{
		db:     db,
		logger: logger.With(zap.String("entity", m.entity)),
		m:      m,
	}
}

func (r *crud[T]) observe(operation string, start time.Time, err *error) {
	status := metrics.StatusSuccess
	switch {
	case *err == nil:
	case repository.IsNotFoundError(*err):
		status = metrics.StatusNotFound
	default:
		status = metrics.StatusError
	}
	metrics.ObserveOperation(BackendName, r.m.entity, operation, start, status)
}

// fail logs a driver error where it was caught and wraps it as technical
func (r *crud[T]) fail(operation string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))
	r.logger.Error("Repository operation failed", fields...)
	return repository.Technical(r.m.entity+" "+operation, err)
}

// FindByID returns the hydrated entity or nil when it does not exist
func (r *crud[T]) FindByID(ctx context.Context, id string) (_ *T, err error) {
	defer r.observe("find_by_id", time.Now(), &err)
	r.logger.Debug("Finding entity by id", zap.String("id", id))
	return r.findByID(ctx, id)
}

func (r *crud[T]) findByID(ctx context.Context, id string) (*T, error) {
	where := &clauses{}
	where.AddEqual(qualified(r.m.alias, r.m.idColumn), id)
	return r.findOne(ctx, "find_by_id", "", where)
}

// Create inserts the parent row and its child rows, then re-reads the entity
func (r *crud[T]) Create(ctx context.Context, entity *T) (_ *T, err error) {
	defer r.observe("create", time.Now(), &err)
	if err := repository.ValidateEntity(entity); err != nil {
		return nil, err
	}
	id := r.m.id(entity)
	r.logger.Debug("Creating entity", zap.String("id", id))

	if err := r.insert(ctx, entity); err != nil {
		return nil, r.fail("create", err, zap.String("id", id))
	}
	if err := r.insertChildren(ctx, id, entity); err != nil {
		return nil, r.fail("create", err, zap.String("id", id))
	}
	return r.findByID(ctx, id)
}

// Update rewrites the parent row and resynchronizes every child table.
// Existence is checked by re-reading after the UPDATE, not by rows affected.
func (r *crud[T]) Update(ctx context.Context, entity *T) (_ *T, err error) {
	defer r.observe("update", time.Now(), &err)
	if err := repository.ValidateEntity(entity); err != nil {
		return nil, err
	}
	id := r.m.id(entity)
	r.logger.Debug("Updating entity", zap.String("id", id))

	b := sq.Update(quote(r.m.table))
	for _, c := range r.m.columns {
		if c.name == r.m.idColumn {
			continue
		}
		b = b.Set(quote(c.name), c.value(entity))
	}
	b = b.Where(sq.Eq{quote(r.m.idColumn): id})
	if err := r.exec(ctx, b); err != nil {
		return nil, r.fail("update", err, zap.String("id", id))
	}

	found, err := r.exists(ctx, id)
	if err != nil {
		return nil, r.fail("update", err, zap.String("id", id))
	}
	if !found {
		r.logger.Debug("Entity to update does not exist", zap.String("id", id))
		return nil, repository.NotFound(r.m.entity, id)
	}

	if err := r.deleteChildren(ctx, id); err != nil {
		return nil, r.fail("update", err, zap.String("id", id))
	}
	if err := r.insertChildren(ctx, id, entity); err != nil {
		return nil, r.fail("update", err, zap.String("id", id))
	}
	return r.findByID(ctx, id)
}

// Delete removes the child rows then the parent row. Deleting a missing id succeeds.
func (r *crud[T]) Delete(ctx context.Context, id string) (err error) {
	defer r.observe("delete", time.Now(), &err)
	if err := repository.RequireID(id); err != nil {
		return err
	}
	r.logger.Debug("Deleting entity", zap.String("id", id))

	if err := r.deleteChildren(ctx, id); err != nil {
		return r.fail("delete", err, zap.String("id", id))
	}
	if err := r.exec(ctx, sq.Delete(quote(r.m.table)).Where(sq.Eq{quote(r.m.idColumn): id})); err != nil {
		return r.fail("delete", err, zap.String("id", id))
	}
	return nil
}

func (r *crud[T]) insert(ctx context.Context, entity *T) error {
	names := make([]string, len(r.m.columns))
	values := make([]any, len(r.m.columns))
	for i, c := range r.m.columns {
		names[i] = quote(c.name)
		values[i] = c.value(entity)
	}
	return r.exec(ctx, sq.Insert(quote(r.m.table)).Columns(names...).Values(values...))
}

// insertChildren batch-inserts the rows of every child table
func (r *crud[T]) insertChildren(ctx context.Context, id string, entity *T) error {
	for _, ch := range r.m.children {
		rows := ch.rows(entity)
		if len(rows) == 0 {
			continue
		}

		names := []string{quote(ch.fk)}
		if ch.ordered {
			names = append(names, quote(positionColumn))
		}
		for _, name := range ch.columns {
			names = append(names, quote(name))
		}

		b := sq.Insert(quote(ch.table)).Columns(names...)
		for i, row := range rows {
			values := []any{id}
			if ch.ordered {
				values = append(values, i)
			}
			b = b.Values(append(values, row...)...)
		}
		if err := r.exec(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

func (r *crud[T]) deleteChildren(ctx context.Context, id string) error {
	for _, ch := range r.m.children {
		if err := r.exec(ctx, sq.Delete(quote(ch.table)).Where(sq.Eq{quote(ch.fk): id})); err != nil {
			return err
		}
	}
	return nil
}

func (r *crud[T]) exists(ctx context.Context, id string) (bool, error) {
	query, args, err := sq.Select("1").From(quote(r.m.table)).Where(sq.Eq{quote(r.m.idColumn): id}).ToSql()
	if err != nil {
		return false, err
	}
	var one int
	err = r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *crud[T]) exec(ctx context.Context, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	return err
}

// selectSQL builds the hydrating SELECT: parent columns, child LEFT JOINs,
// extra joins, the WHERE fragment and a deterministic ORDER BY
func (r *crud[T]) selectSQL(joins string, where *clauses, orderBy ...string) string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(r.m.selectColumns())
	sb.WriteString(" FROM ")
	sb.WriteString(quote(r.m.table))
	sb.WriteString(" ")
	sb.WriteString(r.m.alias)
	sb.WriteString(r.m.childJoins())
	sb.WriteString(joins)
	sb.WriteString(where.SQL())
	sb.WriteString(" ORDER BY ")
	order := append([]string{}, orderBy...)
	idColumn := qualified(r.m.alias, r.m.idColumn)
	if !slices.ContainsFunc(order, func(o string) bool { return strings.HasPrefix(o, idColumn) }) {
		order = append(order, idColumn)
	}
	order = append(order, r.m.childOrder()...)
	sb.WriteString(strings.Join(order, ", "))
	return sb.String()
}

// find runs a hydrating SELECT and collates the joined rows into entities
func (r *crud[T]) find(ctx context.Context, operation, joins string, where *clauses, orderBy ...string) ([]*T, error) {
	return r.query(ctx, operation, r.selectSQL(joins, where, orderBy...), where.Args())
}

func (r *crud[T]) findOne(ctx context.Context, operation, joins string, where *clauses) (*T, error) {
	list, err := r.find(ctx, operation, joins, where)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *crud[T]) query(ctx context.Context, operation, query string, args []any) ([]*T, error) {
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, r.fail(operation, err)
	}
	defer rows.Close()

	list, err := r.collate(rows)
	if err != nil {
		return nil, r.fail(operation, err)
	}
	return list, nil
}

// collate folds joined rows into one entity per parent id. Parent columns
// are taken from the first row of each parent, child values are appended
// without duplicates in the order they are first seen.
func (r *crud[T]) collate(rows *sql.Rows) ([]*T, error) {
	list := []*T{}
	byID := make(map[string]*T)
	childValues := make([]sql.NullString, r.m.childColumnCount())

	for rows.Next() {
		row := new(T)
		dest := make([]any, 0, len(r.m.columns)+len(childValues))
		for _, c := range r.m.columns {
			dest = append(dest, c.scan(row))
		}
		for i := range childValues {
			childValues[i] = sql.NullString{}
			dest = append(dest, &childValues[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		id := r.m.id(row)
		parent, ok := byID[id]
		if !ok {
			r.m.initChildren(row)
			byID[id] = row
			list = append(list, row)
			parent = row
		}

		offset := 0
		for _, ch := range r.m.children {
			values := childValues[offset : offset+len(ch.columns)]
			offset += len(ch.columns)
			if values[0].Valid {
				ch.add(parent, values)
			}
		}
	}
	return list, rows.Err()
}

func (r *crud[T]) count(ctx context.Context, operation, joins string, where *clauses) (int64, error) {
	query := "SELECT COUNT(DISTINCT " + qualified(r.m.alias, r.m.idColumn) + ") FROM " +
		quote(r.m.table) + " " + r.m.alias + joins + where.SQL()
	var total int64
	if err := sqlx.GetContext(ctx, r.db, &total, r.db.Rebind(query), where.Args()...); err != nil {
		return 0, r.fail(operation, err)
	}
	return total, nil
}

// page returns one page of the matching entities. Entities without child
// tables are paged by the database with LIMIT/OFFSET and a COUNT query;
// joined entities are collated first and sliced in memory.
func (r *crud[T]) page(ctx context.Context, operation, joins string, where *clauses, pageable *repository.Pageable, orderBy ...string) (repository.Page[*T], error) {
	if pageable == nil || len(r.m.children) > 0 {
		list, err := r.find(ctx, operation, joins, where, orderBy...)
		if err != nil {
			return repository.Page[*T]{}, err
		}
		return repository.NewPage(list, pageable), nil
	}

	total, err := r.count(ctx, operation, joins, where)
	if err != nil {
		return repository.Page[*T]{}, err
	}
	if pageable.IsEmpty() || int64(pageable.Offset()) >= total {
		return repository.PageOf([]*T{}, pageable, total), nil
	}

	query := r.selectSQL(joins, where, orderBy...) + " LIMIT ? OFFSET ?"
	args := append(append([]any{}, where.Args()...), pageable.PageSize, pageable.Offset())
	list, err := r.query(ctx, operation, query, args)
	if err != nil {
		return repository.Page[*T]{}, err
	}
	return repository.PageOf(list, pageable, total), nil
}
