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
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

const (
	eventPropertiesTable = "event_properties"
	eventPropertyKey     = "property_key"
	eventPropertyValue   = "property_value"
)

var eventMapping = &mapping[model.Event]{
	entity:   "event",
	table:    "events",
	alias:    "e",
	idColumn: "id",
	id:       func(e *model.Event) string { return e.ID },
	columns: []column[model.Event]{
		col("id", func(e *model.Event) *string { return &e.ID }),
		col("environment_id", func(e *model.Event) *string { return &e.EnvironmentID }),
		enumCol("type", func(e *model.Event) *model.EventType { return &e.Type }),
		col("payload", func(e *model.Event) *string { return &e.Payload }),
		col("parent_id", func(e *model.Event) *string { return &e.ParentID }),
		timeCol("created_at", func(e *model.Event) *time.Time { return &e.CreatedAt }),
		timeCol("updated_at", func(e *model.Event) *time.Time { return &e.UpdatedAt }),
	},
	children: []child[model.Event]{
		stringMap(eventPropertiesTable, "event_id", eventPropertyKey, eventPropertyValue,
			func(e *model.Event) *map[string]string { return &e.Properties }),
	},
}

// EventRepo implements repository.EventRepository
type EventRepo struct {
	*crud[model.Event]
}

// NewEventRepo creates a new event repository
func NewEventRepo(db sqlx.ExtContext, logger *zap.Logger) *EventRepo {
	return &EventRepo{crud: newCrud(db, logger, eventMapping)}
}

// eventWhere compiles criteria against the events table aliased as alias.
// Property filter joins use aliases starting with prefix.
func eventWhere(alias, prefix string, criteria *repository.EventCriteria) (string, *clauses) {
	where := &clauses{}
	if criteria == nil {
		return "", where
	}
	joins, aliases := propertyJoins(eventPropertiesTable, "event_id", alias, "id", prefix, criteria.Properties)
	where.AddRange(qualified(alias, "updated_at"), criteria.From, criteria.To)
	where.AddEqualIfSet(qualified(alias, "environment_id"), criteria.EnvironmentID)
	where.AddIn(qualified(alias, "type"), repository.Strings(criteria.Types))
	where.AddProperties(aliases, eventPropertyKey, eventPropertyValue, criteria.Properties)
	return joins, where
}

func eventOrder(alias string) []string {
	return []string{qualified(alias, "updated_at") + " DESC", qualified(alias, "id") + " DESC"}
}

// Search returns one page of the events matching criteria, most recently updated first
func (r *EventRepo) Search(ctx context.Context, criteria *repository.EventCriteria, pageable *repository.Pageable) (_ repository.Page[*model.Event], err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching events", zap.Any("criteria", criteria), zap.Any("pageable", pageable))

	joins, where := eventWhere("e", "pf", criteria)
	return r.page(ctx, "search", joins, where, pageable, eventOrder("e")...)
}

// SearchAll returns every event matching criteria, most recently updated first
func (r *EventRepo) SearchAll(ctx context.Context, criteria *repository.EventCriteria) (_ []*model.Event, err error) {
	defer r.observe("search_all", time.Now(), &err)
	r.logger.Debug("Searching all events", zap.Any("criteria", criteria))

	joins, where := eventWhere("e", "pf", criteria)
	return r.find(ctx, "search_all", joins, where, eventOrder("e")...)
}

// SearchLatest returns, for every distinct value of the group property, the
// event with the greatest updated_at among the events matching criteria.
//
// The innermost query groups matching events by property value and takes the
// max updated_at per group. The middle query joins that back to the events to
// pick the rows carrying the per-group max, and pages over them. The outer
// query hydrates the picked events. Events of one group sharing the max
// updated_at are all returned.
func (r *EventRepo) SearchLatest(ctx context.Context, criteria *repository.EventCriteria, group model.EventProperty, pageable *repository.Pageable) (_ []*model.Event, err error) {
	defer r.observe("search_latest", time.Now(), &err)
	if group == "" {
		return nil, repository.InvalidArgument("group property must not be empty")
	}
	if pageable.IsEmpty() {
		return []*model.Event{}, nil
	}
	r.logger.Debug("Searching latest events", zap.String("group", string(group)), zap.Any("criteria", criteria))

	maxJoins, maxWhere := eventWhere("me", "mpf", criteria)
	latestJoins, latestWhere := eventWhere("ge", "gpf", criteria)

	var sb strings.Builder
	args := []any{string(group)}
	sb.WriteString(" INNER JOIN (SELECT ge.")
	sb.WriteString(quote("id"))
	sb.WriteString(" AS latest_id FROM ")
	sb.WriteString(quote("events"))
	sb.WriteString(" ge INNER JOIN ")
	sb.WriteString(quote(eventPropertiesTable))
	sb.WriteString(" gp ON ")
	sb.WriteString(qualified("gp", "event_id") + " = " + qualified("ge", "id"))
	sb.WriteString(" AND " + qualified("gp", eventPropertyKey) + " = ?")
	sb.WriteString(latestJoins)

	args = append(args, string(group))
	sb.WriteString(" INNER JOIN (SELECT ")
	sb.WriteString(qualified("mp", eventPropertyValue) + " AS group_value, MAX(" + qualified("me", "updated_at") + ") AS max_updated_at")
	sb.WriteString(" FROM " + quote("events") + " me INNER JOIN " + quote(eventPropertiesTable) + " mp ON ")
	sb.WriteString(qualified("mp", "event_id") + " = " + qualified("me", "id"))
	sb.WriteString(" AND " + qualified("mp", eventPropertyKey) + " = ?")
	sb.WriteString(maxJoins)
	sb.WriteString(maxWhere.SQL())
	args = append(args, maxWhere.Args()...)
	sb.WriteString(" GROUP BY " + qualified("mp", eventPropertyValue) + ") grp")
	sb.WriteString(" ON grp.group_value = " + qualified("gp", eventPropertyValue))
	sb.WriteString(" AND grp.max_updated_at = " + qualified("ge", "updated_at"))

	sb.WriteString(latestWhere.SQL())
	args = append(args, latestWhere.Args()...)
	sb.WriteString(" ORDER BY " + strings.Join(eventOrder("ge"), ", "))
	if pageable != nil {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, pageable.PageSize, pageable.Offset())
	}
	sb.WriteString(") latest ON latest.latest_id = " + qualified("e", "id"))

	return r.query(ctx, "search_latest", r.selectSQL(sb.String(), &clauses{}, eventOrder("e")...), args)
}
