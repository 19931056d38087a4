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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wso2/api-platform/management-repository/internal/repository"
)

func TestClausesEmpty(t *testing.T) {
	where := &clauses{}
	assert.False(t, where.AddIn("a", nil))
	assert.False(t, where.AddEqualIfSet("b", ""))
	assert.False(t, where.AddRange("c", 0, 0))
	assert.False(t, where.AddProperties(nil, "k", "v", nil))

	assert.Empty(t, where.SQL())
	assert.Empty(t, where.Args())
}

func TestClausesJoinWithAnd(t *testing.T) {
	where := &clauses{}
	where.AddEqual(`e."environment_id"`, "DEFAULT")
	where.AddIn(`e."type"`, []string{"PUBLISH_API", "START_API"})
	where.AddRange(`e."updated_at"`, 1000, 2000)

	assert.Equal(t,
		` WHERE e."environment_id" = ? AND e."type" IN (?, ?) AND e."updated_at" >= ? AND e."updated_at" < ?`,
		where.SQL())
	assert.Equal(t,
		[]any{"DEFAULT", "PUBLISH_API", "START_API", repository.Millis(1000), repository.Millis(2000)},
		where.Args())
}

func TestClausesOpenRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to int64
		expected string
	}{
		{name: "lower bound only", from: 5, expected: ` WHERE c >= ?`},
		{name: "upper bound only", to: 5, expected: ` WHERE c < ?`},
		{name: "both bounds", from: 1, to: 5, expected: ` WHERE c >= ? AND c < ?`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where := &clauses{}
			assert.True(t, where.AddRange("c", tt.from, tt.to))
			assert.Equal(t, tt.expected, where.SQL())
		})
	}
}

func TestClausesProperties(t *testing.T) {
	filter := repository.PropertyFilter{
		"api":   {"a1", "a2"},
		"empty": {},
		"user":  {"u1"},
	}
	joins, aliases := propertyJoins("event_properties", "event_id", "e", "id", "pf", filter)
	assert.Equal(t, []string{"pf0", "pf1"}, aliases)
	assert.Equal(t,
		` INNER JOIN "event_properties" pf0 ON pf0."event_id" = e."id"`+
			` INNER JOIN "event_properties" pf1 ON pf1."event_id" = e."id"`,
		joins)

	where := &clauses{}
	assert.True(t, where.AddProperties(aliases, "k", "v", filter))
	assert.Equal(t,
		` WHERE ((pf0."k" = ? AND pf0."v" = ?) OR (pf0."k" = ? AND pf0."v" = ?)) AND ((pf1."k" = ? AND pf1."v" = ?))`,
		where.SQL())
	assert.Equal(t, []any{"api", "a1", "api", "a2", "user", "u1"}, where.Args())
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"order"`, quote("order"))
	assert.Equal(t, `"a""b"`, quote(`a"b`))
	assert.Equal(t, `p."order"`, qualified("p", "order"))
}

func TestClausesContainsEscapesWildcards(t *testing.T) {
	where := &clauses{}
	assert.False(t, where.AddContains(`a."name"`, ""))
	assert.True(t, where.AddContains(`a."name"`, `50%_Off\X`))

	assert.Equal(t, ` WHERE LOWER(a."name") LIKE ? ESCAPE '\'`, where.SQL())
	assert.Equal(t, []any{`%50\%\_off\\x%`}, where.Args())
}
