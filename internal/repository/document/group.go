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

// GroupRepo implements repository.GroupRepository
type GroupRepo struct {
	*store[model.Group]
}

// NewGroupRepo creates a new group repository on coll
func NewGroupRepo(coll *mongo.Collection, logger *zap.Logger) *GroupRepo {
	return &GroupRepo{store: newStore(coll, logger, "group",
		func(g *model.Group) string { return g.ID },
		func(g *model.Group) { emptyIfNil(&g.EventRules) })}
}

var groupSort = sortBy("name", "_id")

// FindAll returns every group sorted by name
func (r *GroupRepo) FindAll(ctx context.Context) (_ []*model.Group, err error) {
	defer r.observe("find_all", time.Now(), &err)
	r.logger.Debug("Finding all groups")

	return r.find(ctx, "find_all", (&filter{}).doc(), options.Find().SetSort(groupSort))
}

// FindByIDs returns the groups with the given ids
func (r *GroupRepo) FindByIDs(ctx context.Context, ids []string) (_ []*model.Group, err error) {
	defer r.observe("find_by_ids", time.Now(), &err)
	if len(ids) == 0 {
		return []*model.Group{}, nil
	}
	r.logger.Debug("Finding groups by ids", zap.Strings("ids", ids))

	return r.find(ctx, "find_by_ids", (&filter{}).in("_id", ids).doc(), options.Find().SetSort(groupSort))
}

// FindAllByEnvironment returns the groups of an environment
func (r *GroupRepo) FindAllByEnvironment(ctx context.Context, environmentID string) (_ []*model.Group, err error) {
	defer r.observe("find_all_by_environment", time.Now(), &err)
	r.logger.Debug("Finding groups by environment", zap.String("environment", environmentID))

	f := (&filter{}).eq("environmentId", environmentID)
	return r.find(ctx, "find_all_by_environment", f.doc(), options.Find().SetSort(groupSort))
}
