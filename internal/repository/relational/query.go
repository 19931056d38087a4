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
	"strconv"
	"strings"

	"github.com/wso2/api-platform/management-repository/internal/repository"
)

// clauses accumulates a WHERE fragment and its positional arguments.
// The first appended clause opens with WHERE, every later one with AND.
type clauses struct {
	sb      strings.Builder
	args    []any
	started bool
}

func (c *clauses) next() {
	if c.started {
		c.sb.WriteString(" AND ")
		return
	}
	c.sb.WriteString(" WHERE ")
	c.started = true
}

// AddEqual appends column = ?
func (c *clauses) AddEqual(column string, value any) bool {
	c.next()
	c.sb.WriteString(column)
	c.sb.WriteString(" = ?")
	c.args = append(c.args, value)
	return true
}

// AddEqualIfSet appends column = ? only for a non-empty value
func (c *clauses) AddEqualIfSet(column, value string) bool {
	if value == "" {
		return false
	}
	return c.AddEqual(column, value)
}

// AddIn appends column IN (?, ...) with one placeholder per value. An empty list appends nothing.
func (c *clauses) AddIn(column string, values []string) bool {
	if len(values) == 0 {
		return false
	}
	c.next()
	c.sb.WriteString(column)
	c.sb.WriteString(" IN (")
	c.sb.WriteString(placeholders(len(values)))
	c.sb.WriteString(")")
	for _, v := range values {
		c.args = append(c.args, v)
	}
	return true
}

// AddRange appends column >= from and column < to for the bounds that are set
func (c *clauses) AddRange(column string, from, to int64) bool {
	appended := false
	if from > 0 {
		c.AddExpr(column+" >= ?", repository.Millis(from))
		appended = true
	}
	if to > 0 {
		c.AddExpr(column+" < ?", repository.Millis(to))
		appended = true
	}
	return appended
}

// AddExpr appends a raw predicate whose placeholders match args
func (c *clauses) AddExpr(expr string, args ...any) bool {
	c.next()
	c.sb.WriteString(expr)
	c.args = append(c.args, args...)
	return true
}

// AddContains appends a case-insensitive substring match. LIKE wildcards in
// value are escaped so it matches literally.
func (c *clauses) AddContains(column, value string) bool {
	if value == "" {
		return false
	}
	return c.AddExpr("LOWER("+column+`) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(value))+"%")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// AddProperties appends one OR group per filter key against the join aliases
// produced by propertyJoins, ANDing the groups together
func (c *clauses) AddProperties(aliases []string, keyColumn, valueColumn string, filter repository.PropertyFilter) bool {
	keys := filter.Keys()
	for i, key := range keys {
		alias := aliases[i]
		terms := make([]string, 0, len(filter[key]))
		for _, value := range filter[key] {
			terms = append(terms, "("+qualified(alias, keyColumn)+" = ? AND "+qualified(alias, valueColumn)+" = ?)")
			c.args = append(c.args, key, value)
		}
		c.next()
		c.sb.WriteString("(")
		c.sb.WriteString(strings.Join(terms, " OR "))
		c.sb.WriteString(")")
	}
	return len(keys) > 0
}

// SQL returns the fragment, empty when no clause was appended
func (c *clauses) SQL() string {
	return c.sb.String()
}

// Args returns the positional arguments in placeholder order
func (c *clauses) Args() []any {
	return c.args
}

// propertyJoins joins the property child table once per filter key
func propertyJoins(table, fk, parentAlias, idColumn, prefix string, filter repository.PropertyFilter) (string, []string) {
	keys := filter.Keys()
	aliases := make([]string, len(keys))
	var sb strings.Builder
	for i := range keys {
		alias := prefix + strconv.Itoa(i)
		aliases[i] = alias
		sb.WriteString(" INNER JOIN ")
		sb.WriteString(quote(table))
		sb.WriteString(" ")
		sb.WriteString(alias)
		sb.WriteString(" ON ")
		sb.WriteString(qualified(alias, fk))
		sb.WriteString(" = ")
		sb.WriteString(qualified(parentAlias, idColumn))
	}
	return sb.String(), aliases
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
