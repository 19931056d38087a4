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
)

// PlanRepo implements repository.PlanRepository
type PlanRepo struct {
	*store[model.Plan]
}

// NewPlanRepo creates a new plan repository on coll
func NewPlanRepo(coll *mongo.Collection, logger *zap.Logger) *PlanRepo {
	return &PlanRepo{store: newStore(coll, logger, "plan",
		func(p *model.Plan) string { return p.ID },
		func(p *model.Plan) {
			emptyIfNil(&p.Tags)
			emptyIfNil(&p.Characteristics)
			emptyIfNil(&p.ExcludedGroups)
		})}
}

var planSort = sortBy("order", "name", "_id")

// FindByAPI returns the plans of an API in display order
func (r *PlanRepo) FindByAPI(ctx context.Context, api string) (_ []*model.Plan, err error) {
	defer r.observe("find_by_api", time.Now(), &err)
	r.logger.Debug("Finding plans by api", zap.String("api", api))

	f := (&filter{}).eq("api", api)
	return r.find(ctx, "find_by_api", f.doc(), options.Find().SetSort(planSort))
}

// FindByIDs returns the plans with the given ids
func (r *PlanRepo) FindByIDs(ctx context.Context, ids []string) (_ []*model.Plan, err error) {
	defer r.observe("find_by_ids", time.Now(), &err)
	if len(ids) == 0 {
		return []*model.Plan{}, nil
	}
	r.logger.Debug("Finding plans by ids", zap.Strings("ids", ids))

	f := (&filter{}).in("_id", ids)
	return r.find(ctx, "find_by_ids", f.doc(), options.Find().SetSort(planSort))
}
