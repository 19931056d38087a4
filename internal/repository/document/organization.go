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

// OrganizationRepo implements repository.OrganizationRepository
type OrganizationRepo struct {
	*store[model.Organization]
}

// NewOrganizationRepo creates a new organization repository on coll
func NewOrganizationRepo(coll *mongo.Collection, logger *zap.Logger) *OrganizationRepo {
	return &OrganizationRepo{store: newStore(coll, logger, "organization",
		func(o *model.Organization) string { return o.ID },
		func(o *model.Organization) { emptyIfNil(&o.HRIDs) })}
}

var organizationSort = sortBy("name", "_id")

// FindAll returns every organization
func (r *OrganizationRepo) FindAll(ctx context.Context) (_ []*model.Organization, err error) {
	defer r.observe("find_all", time.Now(), &err)
	r.logger.Debug("Finding all organizations")

	return r.find(ctx, "find_all", (&filter{}).doc(), options.Find().SetSort(organizationSort))
}

// FindByIDs returns the organizations with the given ids
func (r *OrganizationRepo) FindByIDs(ctx context.Context, ids []string) (_ []*model.Organization, err error) {
	defer r.observe("find_by_ids", time.Now(), &err)
	if len(ids) == 0 {
		return []*model.Organization{}, nil
	}
	r.logger.Debug("Finding organizations by ids", zap.Strings("ids", ids))

	return r.find(ctx, "find_by_ids", (&filter{}).in("_id", ids).doc(), options.Find().SetSort(organizationSort))
}

// FindByHRIDs returns the organizations owning any of the given human readable ids
func (r *OrganizationRepo) FindByHRIDs(ctx context.Context, hrids []string) (_ []*model.Organization, err error) {
	defer r.observe("find_by_hrids", time.Now(), &err)
	if len(hrids) == 0 {
		return []*model.Organization{}, nil
	}
	r.logger.Debug("Finding organizations by hrids", zap.Strings("hrids", hrids))

	return r.find(ctx, "find_by_hrids", (&filter{}).in("hrids", hrids).doc(), options.Find().SetSort(organizationSort))
}
