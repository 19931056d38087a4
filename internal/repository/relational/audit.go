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
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

var auditMapping = &mapping[model.Audit]{
	entity:   "audit",
	table:    "audits",
	alias:    "a",
	idColumn: "id",
	id:       func(a *model.Audit) string { return a.ID },
	columns: []column[model.Audit]{
		col("id", func(a *model.Audit) *string { return &a.ID }),
		col("reference_id", func(a *model.Audit) *string { return &a.ReferenceID }),
		enumCol("reference_type", func(a *model.Audit) *model.AuditReferenceType { return &a.ReferenceType }),
		col("user", func(a *model.Audit) *string { return &a.User }),
		col("event", func(a *model.Audit) *string { return &a.Event }),
		col("patch", func(a *model.Audit) *string { return &a.Patch }),
		timeCol("created_at", func(a *model.Audit) *time.Time { return &a.CreatedAt }),
	},
	children: []child[model.Audit]{
		stringMap("audit_properties", "audit_id", "key", "value",
			func(a *model.Audit) *map[string]string { return &a.Properties }),
	},
}

// AuditRepo implements repository.AuditRepository
type AuditRepo struct {
	*crud[model.Audit]
}

// NewAuditRepo creates a new audit repository
func NewAuditRepo(db sqlx.ExtContext, logger *zap.Logger) *AuditRepo {
	return &AuditRepo{crud: newCrud(db, logger, auditMapping)}
}

// Search returns one page of the audit records matching criteria, newest first
func (r *AuditRepo) Search(ctx context.Context, criteria *repository.AuditCriteria, pageable *repository.Pageable) (_ repository.Page[*model.Audit], err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching audits", zap.Any("criteria", criteria), zap.Any("pageable", pageable))

	where := &clauses{}
	joins := ""
	if criteria != nil {
		var aliases []string
		joins, aliases = propertyJoins("audit_properties", "audit_id", "a", "id", "pf", criteria.Properties)
		where.AddRange(qualified("a", "created_at"), criteria.From, criteria.To)
		addReferences(where, criteria.References)
		where.AddIn(qualified("a", "event"), criteria.Events)
		where.AddProperties(aliases, "key", "value", criteria.Properties)
	}
	return r.page(ctx, "search", joins, where, pageable, qualified("a", "created_at")+" DESC")
}

// addReferences ORs one (reference_type = ? AND reference_id IN (...)) term per reference type
func addReferences(where *clauses, references map[model.AuditReferenceType][]string) bool {
	types := make([]string, 0, len(references))
	for t, ids := range references {
		if len(ids) > 0 {
			types = append(types, string(t))
		}
	}
	if len(types) == 0 {
		return false
	}
	sort.Strings(types)

	terms := make([]string, 0, len(types))
	var args []any
	for _, t := range types {
		ids := references[model.AuditReferenceType(t)]
		terms = append(terms, "("+qualified("a", "reference_type")+" = ? AND "+
			qualified("a", "reference_id")+" IN ("+placeholders(len(ids))+"))")
		args = append(args, t)
		for _, id := range ids {
			args = append(args, id)
		}
	}
	return where.AddExpr("("+strings.Join(terms, " OR ")+")", args...)
}
