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
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

// SubscriptionRepo implements repository.SubscriptionRepository
type SubscriptionRepo struct {
	*store[model.Subscription]
}

// NewSubscriptionRepo creates a new subscription repository on coll
func NewSubscriptionRepo(coll *mongo.Collection, logger *zap.Logger) *SubscriptionRepo {
	return &SubscriptionRepo{store: newStore(coll, logger, "subscription",
		func(s *model.Subscription) string { return s.ID },
		func(*model.Subscription) {})}
}

var subscriptionSort = sortBy("-createdAt", "-_id")

func subscriptionFilter(criteria *repository.SubscriptionCriteria) *filter {
	f := &filter{}
	if criteria == nil {
		return f
	}
	return f.between("updatedAt", criteria.From, criteria.To).
		eqIfSet("clientId", criteria.ClientID).
		in("plan", criteria.Plans).
		in("application", criteria.Applications).
		in("api", criteria.APIs).
		in("status", repository.Strings(criteria.Statuses))
}

// Search returns one page of the subscriptions matching criteria
func (r *SubscriptionRepo) Search(ctx context.Context, criteria *repository.SubscriptionCriteria, pageable *repository.Pageable) (_ repository.Page[*model.Subscription], err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching subscriptions", zap.Any("criteria", criteria), zap.Any("pageable", pageable))

	return r.page(ctx, "search", subscriptionFilter(criteria).doc(), subscriptionSort, pageable)
}

// SearchAll returns every subscription matching criteria
func (r *SubscriptionRepo) SearchAll(ctx context.Context, criteria *repository.SubscriptionCriteria) (_ []*model.Subscription, err error) {
	defer r.observe("search_all", time.Now(), &err)
	r.logger.Debug("Searching all subscriptions", zap.Any("criteria", criteria))

	return r.find(ctx, "search_all", subscriptionFilter(criteria).doc(), options.Find().SetSort(subscriptionSort))
}
