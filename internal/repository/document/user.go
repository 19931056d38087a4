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

// UserRepo implements repository.UserRepository
type UserRepo struct {
	*store[model.User]
}

// NewUserRepo creates a new user repository on coll
func NewUserRepo(coll *mongo.Collection, logger *zap.Logger) *UserRepo {
	return &UserRepo{store: newStore(coll, logger, "user",
		func(u *model.User) string { return u.ID },
		func(*model.User) {})}
}

var userSort = sortBy("lastname", "firstname", "_id")

// FindByIDs returns the users with the given ids
func (r *UserRepo) FindByIDs(ctx context.Context, ids []string) (_ []*model.User, err error) {
	defer r.observe("find_by_ids", time.Now(), &err)
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	r.logger.Debug("Finding users by ids", zap.Strings("ids", ids))

	return r.find(ctx, "find_by_ids", (&filter{}).in("_id", ids).doc(), options.Find().SetSort(userSort))
}

// FindByEmail returns the user of an organization with the given email, ignoring case
func (r *UserRepo) FindByEmail(ctx context.Context, email, organizationID string) (_ *model.User, err error) {
	defer r.observe("find_by_email", time.Now(), &err)
	r.logger.Debug("Finding user by email", zap.String("organization", organizationID))

	f := (&filter{}).add("email", equalsIgnoreCase(email)).eq("organizationId", organizationID)
	return r.findOne(ctx, "find_by_email", f.doc())
}

// FindBySource returns the user of an organization known to an identity source
func (r *UserRepo) FindBySource(ctx context.Context, source, sourceID, organizationID string) (_ *model.User, err error) {
	defer r.observe("find_by_source", time.Now(), &err)
	r.logger.Debug("Finding user by source", zap.String("source", source), zap.String("organization", organizationID))

	f := (&filter{}).
		eq("source", source).
		add("sourceId", equalsIgnoreCase(sourceID)).
		eq("organizationId", organizationID)
	return r.findOne(ctx, "find_by_source", f.doc())
}

func userFilter(criteria *repository.UserCriteria) *filter {
	f := &filter{}
	if criteria == nil {
		return f
	}
	f.eqIfSet("organizationId", criteria.OrganizationID)
	statuses := repository.Strings(criteria.Statuses)
	switch {
	case criteria.NoStatus && len(statuses) > 0:
		f.or(
			bson.D{{Key: "status", Value: nil}},
			bson.D{{Key: "status", Value: ""}},
			bson.D{{Key: "status", Value: bson.D{{Key: "$in", Value: statuses}}}},
		)
	case criteria.NoStatus:
		f.or(
			bson.D{{Key: "status", Value: nil}},
			bson.D{{Key: "status", Value: ""}},
		)
	default:
		f.in("status", statuses)
	}
	return f
}

// Search returns one page of the users matching criteria
func (r *UserRepo) Search(ctx context.Context, criteria *repository.UserCriteria, pageable *repository.Pageable) (_ repository.Page[*model.User], err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching users", zap.Any("criteria", criteria), zap.Any("pageable", pageable))

	return r.page(ctx, "search", userFilter(criteria).doc(), userSort, pageable)
}
