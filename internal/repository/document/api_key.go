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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

// ApiKeyRepo implements repository.ApiKeyRepository
type ApiKeyRepo struct {
	*store[model.ApiKey]
}

// NewApiKeyRepo creates a new api key repository on coll
func NewApiKeyRepo(coll *mongo.Collection, logger *zap.Logger) *ApiKeyRepo {
	return &ApiKeyRepo{store: newStore(coll, logger, "api_key",
		func(k *model.ApiKey) string { return k.Key },
		func(*model.ApiKey) {})}
}

var apiKeySort = sortBy("-updatedAt", "-_id")

func apiKeyFilter(criteria *repository.ApiKeyCriteria) *filter {
	f := &filter{}
	if criteria == nil {
		criteria = &repository.ApiKeyCriteria{}
	}
	if !criteria.IncludeRevoked {
		f.eq("revoked", false)
	}
	f.in("plan", criteria.Plans).between("updatedAt", criteria.From, criteria.To)

	var expire bson.D
	if criteria.ExpireAfter > 0 {
		expire = append(expire, bson.E{Key: "$gte", Value: repository.Millis(criteria.ExpireAfter)})
	}
	if criteria.ExpireBefore > 0 {
		expire = append(expire, bson.E{Key: "$lte", Value: repository.Millis(criteria.ExpireBefore)})
	}
	if len(expire) > 0 {
		f.add("expireAt", expire)
	}
	return f
}

// FindByCriteria returns the keys matching criteria, most recently updated first.
// Revoked keys are excluded unless IncludeRevoked is set.
func (r *ApiKeyRepo) FindByCriteria(ctx context.Context, criteria *repository.ApiKeyCriteria) (_ []*model.ApiKey, err error) {
	defer r.observe("find_by_criteria", time.Now(), &err)
	r.logger.Debug("Finding api keys by criteria", zap.Any("criteria", criteria))

	return r.find(ctx, "find_by_criteria", apiKeyFilter(criteria).doc(), options.Find().SetSort(apiKeySort))
}

// FindBySubscription returns the keys of a subscription
func (r *ApiKeyRepo) FindBySubscription(ctx context.Context, subscription string) (_ []*model.ApiKey, err error) {
	defer r.observe("find_by_subscription", time.Now(), &err)
	r.logger.Debug("Finding api keys by subscription", zap.String("subscription", subscription))

	f := (&filter{}).eq("subscription", subscription)
	return r.find(ctx, "find_by_subscription", f.doc(), options.Find().SetSort(apiKeySort))
}

// FindByPlan returns the keys issued for a plan
func (r *ApiKeyRepo) FindByPlan(ctx context.Context, plan string) (_ []*model.ApiKey, err error) {
	defer r.observe("find_by_plan", time.Now(), &err)
	r.logger.Debug("Finding api keys by plan", zap.String("plan", plan))

	f := (&filter{}).eq("plan", plan)
	return r.find(ctx, "find_by_plan", f.doc(), options.Find().SetSort(apiKeySort))
}
