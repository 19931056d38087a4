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
)

var organizationMapping = &mapping[model.Organization]{
	entity:   "organization",
	table:    "organizations",
	alias:    "o",
	idColumn: "id",
	id:       func(o *model.Organization) string { return o.ID },
	columns: []column[model.Organization]{
		col("id", func(o *model.Organization) *string { return &o.ID }),
		col("name", func(o *model.Organization) *string { return &o.Name }),
		col("description", func(o *model.Organization) *string { return &o.Description }),
		timeCol("created_at", func(o *model.Organization) *time.Time { return &o.CreatedAt }),
		timeCol("updated_at", func(o *model.Organization) *time.Time { return &o.UpdatedAt }),
	},
	children: []child[model.Organization]{
		stringList("organization_hrids", "organization_id", "hrid", func(o *model.Organization) *[]string { return &o.HRIDs }),
	},
}

// OrganizationRepo implements repository.OrganizationRepository
type OrganizationRepo struct {
	*crud[model.Organization]
}

// NewOrganizationRepo creates a new organization repository
func NewOrganizationRepo(db sqlx.ExtContext, logger *zap.Logger) *OrganizationRepo {
	return &OrganizationRepo{crud: newCrud(db, logger, organizationMapping)}
}

// FindAll returns every organization
func (r *OrganizationRepo) FindAll(ctx context.Context) (_ []*model.Organization, err error) {
	defer r.observe("find_all", time.Now(), &err)
	r.logger.Debug("Finding all organizations")

	return r.find(ctx, "find_all", "", &clauses{}, qualified("o", "name"))
}

// FindByIDs returns the organizations with the given ids
func (r *OrganizationRepo) FindByIDs(ctx context.Context, ids []string) (_ []*model.Organization, err error) {
	defer r.observe("find_by_ids", time.Now(), &err)
	if len(ids) == 0 {
		return []*model.Organization{}, nil
	}
	r.logger.Debug("Finding organizations by ids", zap.Strings("ids", ids))

	where := &clauses{}
	where.AddIn(qualified("o", "id"), ids)
	return r.find(ctx, "find_by_ids", "", where, qualified("o", "name"))
}

// FindByHRIDs returns the organizations owning any of the given human readable ids
func (r *OrganizationRepo) FindByHRIDs(ctx context.Context, hrids []string) (_ []*model.Organization, err error) {
	defer r.observe("find_by_hrids", time.Now(), &err)
	if len(hrids) == 0 {
		return []*model.Organization{}, nil
	}
	r.logger.Debug("Finding organizations by hrids", zap.Strings("hrids", hrids))

	args := make([]any, len(hrids))
	for i, h := range hrids {
		args[i] = h
	}
	where := &clauses{}
	where.AddExpr(qualified("o", "id")+" IN (SELECT "+qualified("oh", "organization_id")+" FROM "+
		quote("organization_hrids")+" oh WHERE "+qualified("oh", "hrid")+" IN ("+placeholders(len(hrids))+"))", args...)
	return r.find(ctx, "find_by_hrids", "", where, qualified("o", "name"))
}
