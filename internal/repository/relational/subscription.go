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

var subscriptionMapping = &mapping[model.Subscription]{
	entity:   "subscription",
	table:    "subscriptions",
	alias:    "s",
	idColumn: "id",
	id:       func(s *model.Subscription) string { return s.ID },
	columns: []column[model.Subscription]{
		col("id", func(s *model.Subscription) *string { return &s.ID }),
		col("api", func(s *model.Subscription) *string { return &s.API }),
		col("plan", func(s *model.Subscription) *string { return &s.Plan }),
		col("application", func(s *model.Subscription) *string { return &s.Application }),
		col("client_id", func(s *model.Subscription) *string { return &s.ClientID }),
		col("request", func(s *model.Subscription) *string { return &s.Request }),
		col("reason", func(s *model.Subscription) *string { return &s.Reason }),
		enumCol("status", func(s *model.Subscription) *model.SubscriptionStatus { return &s.Status }),
		col("processed_by", func(s *model.Subscription) *string { return &s.ProcessedBy }),
		col("subscribed_by", func(s *model.Subscription) *string { return &s.SubscribedBy }),
		timePtrCol("starting_at", func(s *model.Subscription) **time.Time { return &s.StartingAt }),
		timePtrCol("ending_at", func(s *model.Subscription) **time.Time { return &s.EndingAt }),
		timePtrCol("processed_at", func(s *model.Subscription) **time.Time { return &s.ProcessedAt }),
		timePtrCol("paused_at", func(s *model.Subscription) **time.Time { return &s.PausedAt }),
		timeCol("created_at", func(s *model.Subscription) *time.Time { return &s.CreatedAt }),
		timeCol("updated_at", func(s *model.Subscription) *time.Time { return &s.UpdatedAt }),
	},
}

// SubscriptionRepo implements repository.SubscriptionRepository
type SubscriptionRepo struct {
	*crud[model.Subscription]
}

// NewSubscriptionRepo creates a new subscription repository
func NewSubscriptionRepo(db sqlx.ExtContext, logger *zap.Logger) *SubscriptionRepo {
	return &SubscriptionRepo{crud: newCrud(db, logger, subscriptionMapping)}
}

func subscriptionWhere(criteria *repository.SubscriptionCriteria) *clauses {
	where := &clauses{}
	if criteria == nil {
		return where
	}
	where.AddRange(qualified("s", "updated_at"), criteria.From, criteria.To)
	where.AddEqualIfSet(qualified("s", "client_id"), criteria.ClientID)
	where.AddIn(qualified("s", "plan"), criteria.Plans)
	where.AddIn(qualified("s", "application"), criteria.Applications)
	where.AddIn(qualified("s", "api"), criteria.APIs)
	where.AddIn(qualified("s", "status"), repository.Strings(criteria.Statuses))
	return where
}

func subscriptionOrder() []string {
	return []string{qualified("s", "created_at") + " DESC", qualified("s", "id") + " DESC"}
}

// Search returns one page of the subscriptions matching criteria, paged by the database
func (r *SubscriptionRepo) Search(ctx context.Context, criteria *repository.SubscriptionCriteria, pageable *repository.Pageable) (_ repository.Page[*model.Subscription], err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching subscriptions", zap.Any("criteria", criteria), zap.Any("pageable", pageable))

	return r.page(ctx, "search", "", subscriptionWhere(criteria), pageable, subscriptionOrder()...)
}

// SearchAll returns every subscription matching criteria
func (r *SubscriptionRepo) SearchAll(ctx context.Context, criteria *repository.SubscriptionCriteria) (_ []*model.Subscription, err error) {
	defer r.observe("search_all", time.Now(), &err)
	r.logger.Debug("Searching all subscriptions", zap.Any("criteria", criteria))

	return r.find(ctx, "search_all", "", subscriptionWhere(criteria), subscriptionOrder()...)
}
