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
	"database/sql"
	"slices"
	"strconv"
	"strings"
	"time"
)

// quote escapes an identifier for both SQLite and PostgreSQL
func quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// qualified returns alias."column"
func qualified(alias, name string) string {
	return alias + "." + quote(name)
}

// column maps one table column to a field of T
type column[T any] struct {
	name  string
	value func(*T) any
	scan  func(*T) any
}

// nullable scans a possibly NULL column into a plain field, leaving the zero value for NULL
type nullable[V any] struct {
	dst *V
}

func (n nullable[V]) Scan(src any) error {
	var v sql.Null[V]
	if err := v.Scan(src); err != nil {
		return err
	}
	*n.dst = v.V
	return nil
}

// nullablePtr scans a possibly NULL column into a pointer field, nil for NULL
type nullablePtr[V any] struct {
	dst **V
}

func (n nullablePtr[V]) Scan(src any) error {
	var v sql.Null[V]
	if err := v.Scan(src); err != nil {
		return err
	}
	if !v.Valid {
		*n.dst = nil
		return nil
	}
	*n.dst = &v.V
	return nil
}

// utcTime scans a timestamp and normalizes it to UTC
type utcTime struct {
	dst **time.Time
}

func (u utcTime) Scan(src any) error {
	if err := (nullablePtr[time.Time]{dst: u.dst}).Scan(src); err != nil {
		return err
	}
	if *u.dst != nil {
		t := (*u.dst).UTC()
		*u.dst = &t
	}
	return nil
}

func col[T, V any](name string, field func(*T) *V) column[T] {
	return column[T]{
		name:  name,
		value: func(e *T) any { return *field(e) },
		scan:  func(e *T) any { return nullable[V]{dst: field(e)} },
	}
}

func enumCol[T any, S ~string](name string, field func(*T) *S) column[T] {
	return column[T]{
		name:  name,
		value: func(e *T) any { return string(*field(e)) },
		scan:  func(e *T) any { return nullable[S]{dst: field(e)} },
	}
}

func ptrCol[T, V any](name string, field func(*T) **V) column[T] {
	return column[T]{
		name: name,
		value: func(e *T) any {
			if p := *field(e); p != nil {
				return *p
			}
			return nil
		},
		scan: func(e *T) any { return nullablePtr[V]{dst: field(e)} },
	}
}

func timeCol[T any](name string, field func(*T) *time.Time) column[T] {
	return column[T]{
		name:  name,
		value: func(e *T) any { return field(e).UTC() },
		scan: func(e *T) any {
			return scanFunc(func(src any) error {
				var t *time.Time
				if err := (utcTime{dst: &t}).Scan(src); err != nil {
					return err
				}
				if t != nil {
					*field(e) = *t
				}
				return nil
			})
		},
	}
}

func timePtrCol[T any](name string, field func(*T) **time.Time) column[T] {
	return column[T]{
		name: name,
		value: func(e *T) any {
			if p := *field(e); p != nil {
				return p.UTC()
			}
			return nil
		},
		scan: func(e *T) any { return utcTime{dst: field(e)} },
	}
}

type scanFunc func(src any) error

func (f scanFunc) Scan(src any) error { return f(src) }

// child describes a child table holding one multi-valued attribute of T.
// Ordered children carry a position column that preserves list order.
type child[T any] struct {
	table   string
	fk      string
	columns []string
	ordered bool
	rows    func(*T) [][]any
	add     func(*T, []sql.NullString)
	init    func(*T)
}

const positionColumn = "position"

// stringSet maps an unordered []string; duplicates collapse to one row
func stringSet[T any](table, fk, name string, field func(*T) *[]string) child[T] {
	return child[T]{
		table:   table,
		fk:      fk,
		columns: []string{name},
		rows: func(e *T) [][]any {
			var rows [][]any
			seen := make(map[string]bool)
			for _, v := range *field(e) {
				if !seen[v] {
					seen[v] = true
					rows = append(rows, []any{v})
				}
			}
			return rows
		},
		add:  func(e *T, vals []sql.NullString) { appendUnique(field(e), vals[0].String) },
		init: func(e *T) { *field(e) = []string{} },
	}
}

// stringList maps an ordered []string
func stringList[T any](table, fk, name string, field func(*T) *[]string) child[T] {
	c := stringSet(table, fk, name, field)
	c.ordered = true
	c.rows = func(e *T) [][]any {
		rows := make([][]any, 0, len(*field(e)))
		for _, v := range *field(e) {
			rows = append(rows, []any{v})
		}
		return rows
	}
	return c
}

// intList maps an ordered []int
func intList[T any](table, fk, name string, field func(*T) *[]int) child[T] {
	return child[T]{
		table:   table,
		fk:      fk,
		columns: []string{name},
		ordered: true,
		rows: func(e *T) [][]any {
			rows := make([][]any, 0, len(*field(e)))
			for _, v := range *field(e) {
				rows = append(rows, []any{v})
			}
			return rows
		},
		add: func(e *T, vals []sql.NullString) {
			n, err := strconv.Atoi(vals[0].String)
			if err == nil && !slices.Contains(*field(e), n) {
				*field(e) = append(*field(e), n)
			}
		},
		init: func(e *T) { *field(e) = []int{} },
	}
}

// stringMap maps a map[string]string to (key, value) rows
func stringMap[T any](table, fk, keyName, valueName string, field func(*T) *map[string]string) child[T] {
	return child[T]{
		table:   table,
		fk:      fk,
		columns: []string{keyName, valueName},
		rows: func(e *T) [][]any {
			m := *field(e)
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			rows := make([][]any, 0, len(keys))
			for _, k := range keys {
				rows = append(rows, []any{k, m[k]})
			}
			return rows
		},
		add:  func(e *T, vals []sql.NullString) { (*field(e))[vals[0].String] = vals[1].String },
		init: func(e *T) { *field(e) = map[string]string{} },
	}
}

func appendUnique(dst *[]string, v string) {
	if !slices.Contains(*dst, v) {
		*dst = append(*dst, v)
	}
}

// mapping is the object-relational descriptor of one entity table
type mapping[T any] struct {
	entity   string
	table    string
	alias    string
	idColumn string
	id       func(*T) string
	columns  []column[T]
	children []child[T]
}

// selectColumns lists the parent columns followed by every child value column
func (m *mapping[T]) selectColumns() string {
	cols := make([]string, 0, len(m.columns)+2*len(m.children))
	for _, c := range m.columns {
		cols = append(cols, qualified(m.alias, c.name))
	}
	for i, ch := range m.children {
		for _, name := range ch.columns {
			cols = append(cols, qualified(m.childAlias(i), name))
		}
	}
	return strings.Join(cols, ", ")
}

// childJoins LEFT JOINs every child table so one query hydrates the aggregate
func (m *mapping[T]) childJoins() string {
	var sb strings.Builder
	for i, ch := range m.children {
		alias := m.childAlias(i)
		sb.WriteString(" LEFT JOIN ")
		sb.WriteString(quote(ch.table))
		sb.WriteString(" ")
		sb.WriteString(alias)
		sb.WriteString(" ON ")
		sb.WriteString(qualified(alias, ch.fk))
		sb.WriteString(" = ")
		sb.WriteString(qualified(m.alias, m.idColumn))
	}
	return sb.String()
}

// childOrder keeps ordered children in insertion order within each parent
func (m *mapping[T]) childOrder() []string {
	var order []string
	for i, ch := range m.children {
		if ch.ordered {
			order = append(order, qualified(m.childAlias(i), positionColumn))
		}
	}
	return order
}

func (m *mapping[T]) childAlias(i int) string {
	return m.alias + "c" + strconv.Itoa(i)
}

func (m *mapping[T]) childColumnCount() int {
	n := 0
	for _, ch := range m.children {
		n += len(ch.columns)
	}
	return n
}

func (m *mapping[T]) initChildren(e *T) {
	for _, ch := range m.children {
		ch.init(e)
	}
}
