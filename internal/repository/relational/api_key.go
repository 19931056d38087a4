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
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

var apiKeyMapping = &mapping[model.ApiKey]{
	entity:   "api_key",
	table:    "keys",
	alias:    "k",
	idColumn: "key",
	id:       func(k *model.ApiKey) string { return k.Key },
	columns: []column[model.ApiKey]{
		col("key", func(k *model.ApiKey) *string { return &k.Key }),
		col("subscription", func(k *model.ApiKey) *string { return &k.Subscription }),
		col("application", func(k *model.ApiKey) *string { return &k.Application }),
		col("plan", func(k *model.ApiKey) *string { return &k.Plan }),
		timePtrCol("expire_at", func(k *model.ApiKey) **time.Time { return &k.ExpireAt }),
		col("revoked", func(k *model.ApiKey) *bool { return &k.Revoked }),
		timePtrCol("revoked_at", func(k *model.ApiKey) **time.Time { return &k.RevokedAt }),
		col("paused", func(k *model.ApiKey) *bool { return &k.Paused }),
		timeCol("created_at", func(k *model.ApiKey) *time.Time { return &k.CreatedAt }),
		timeCol("updated_at", func(k *model.ApiKey) *time.Time { return &k.UpdatedAt }),
		ptrCol("days_to_expiration_on_last_notification", func(k *model.ApiKey) **int { return &k.DaysToExpirationOnLastNotification }),
	},
}

// ApiKeyRepo implements repository.ApiKeyRepository
type ApiKeyRepo struct {
	*crud[model.ApiKey]
}

// NewApiKeyRepo creates a new api key repository
func NewApiKeyRepo(db sqlx.ExtContext, logger *zap.Logger) *ApiKeyRepo {
	return &ApiKeyRepo{crud: newCrud(db, logger, apiKeyMapping)}
}

func apiKeyOrder() []string {
	return []string{qualified("k", "updated_at") + " DESC", qualified("k", "key") + " DESC"}
}

// FindByCriteria returns the keys matching criteria, most recently updated first.
// Revoked keys are excluded unless IncludeRevoked is set.
func (r *ApiKeyRepo) FindByCriteria(ctx context.Context, criteria *repository.ApiKeyCriteria) (_ []*model.ApiKey, err error) {
	defer r.observe("find_by_criteria", time.Now(), &err)
	r.logger.Debug("Finding api keys by criteria", zap.Any("criteria", criteria))

	where := &clauses{}
	if criteria == nil {
		criteria = &repository.ApiKeyCriteria{}
	}
	if !criteria.IncludeRevoked {
		where.AddEqual(qualified("k", "revoked"), false)
	}
	where.AddIn(qualified("k", "plan"), criteria.Plans)
	where.AddRange(qualified("k", "updated_at"), criteria.From, criteria.To)
	if criteria.ExpireAfter > 0 {
		where.AddExpr(qualified("k", "expire_at")+" >= ?", repository.Millis(criteria.ExpireAfter))
	}
	if criteria.ExpireBefore > 0 {
		where.AddExpr(qualified("k", "expire_at")+" <= ?", repository.Millis(criteria.ExpireBefore))
	}
	return r.find(ctx, "find_by_criteria", "", where, apiKeyOrder()...)
}

// FindBySubscription returns the keys of a subscription
func (r *ApiKeyRepo) FindBySubscription(ctx context.Context, subscription string) (_ []*model.ApiKey, err error) {
	defer r.observe("find_by_subscription", time.Now(), &err)
	r.logger.Debug("Finding api keys by subscription", zap.String("subscription", subscription))

	where := &clauses{}
	where.AddEqual(qualified("k", "subscription"), subscription)
	return r.find(ctx, "find_by_subscription", "", where, apiKeyOrder()...)
}

// FindByPlan returns the keys issued for a plan
func (r *ApiKeyRepo) FindByPlan(ctx context.Context, plan string) (_ []*model.ApiKey, err error) {
	defer r.observe("find_by_plan", time.Now(), &err)
	r.logger.Debug("Finding api keys by plan", zap.String("plan", plan))

	where := &clauses{}
	where.AddEqual(qualified("k", "plan"), plan)
	return r.find(ctx, "find_by_plan", "", where, apiKeyOrder()...)
}
