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

package document

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

// AuditRepo implements repository.AuditRepository
type AuditRepo struct {
	*store[model.Audit]
}

// NewAuditRepo creates a new audit repository on coll
func NewAuditRepo(coll *mongo.Collection, logger *zap.Logger) *AuditRepo {
	return &AuditRepo{store: newStore(coll, logger, "audit",
		func(a *model.Audit) string { return a.ID },
		func(a *model.Audit) { emptyMapIfNil(&a.Properties) })}
}

func auditFilter(criteria *repository.AuditCriteria) *filter {
	f := &filter{}
	if criteria == nil {
		return f
	}
	f.between("createdAt", criteria.From, criteria.To).
		in("event", criteria.Events).
		properties("properties", criteria.Properties)

	types := make([]string, 0, len(criteria.References))
	for t, ids := range criteria.References {
		if len(ids) > 0 {
			types = append(types, string(t))
		}
	}
	if len(types) > 0 {
		sort.Strings(types)
		alternatives := make([]bson.D, 0, len(types))
		for _, t := range types {
			alternatives = append(alternatives, bson.D{
				{Key: "referenceType", Value: t},
				{Key: "referenceId", Value: bson.D{{Key: "$in", Value: criteria.References[model.AuditReferenceType(t)]}}},
			})
		}
		f.or(alternatives...)
	}
	return f
}

// Search returns one page of the audit records matching criteria, newest first
func (r *AuditRepo) Search(ctx context.Context, criteria *repository.AuditCriteria, pageable *repository.Pageable) (_ repository.Page[*model.Audit], err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching audits", zap.Any("criteria", criteria), zap.Any("pageable", pageable))

	return r.page(ctx, "search", auditFilter(criteria).doc(), sortBy("-createdAt", "_id"), pageable)
}
