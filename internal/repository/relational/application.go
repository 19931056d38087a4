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

var applicationMapping = &mapping[model.Application]{
	entity:   "application",
	table:    "applications",
	alias:    "a",
	idColumn: "id",
	id:       func(a *model.Application) string { return a.ID },
	columns: []column[model.Application]{
		col("id", func(a *model.Application) *string { return &a.ID }),
		col("environment_id", func(a *model.Application) *string { return &a.EnvironmentID }),
		col("name", func(a *model.Application) *string { return &a.Name }),
		col("description", func(a *model.Application) *string { return &a.Description }),
		enumCol("type", func(a *model.Application) *model.ApplicationType { return &a.Type }),
		enumCol("status", func(a *model.Application) *model.ApplicationStatus { return &a.Status }),
		col("picture", func(a *model.Application) *string { return &a.Picture }),
		col("disable_membership_notifications", func(a *model.Application) *bool { return &a.DisableMembershipNotifications }),
		timeCol("created_at", func(a *model.Application) *time.Time { return &a.CreatedAt }),
		timeCol("updated_at", func(a *model.Application) *time.Time { return &a.UpdatedAt }),
	},
	children: []child[model.Application]{
		stringSet("application_groups", "application_id", "group_id", func(a *model.Application) *[]string { return &a.Groups }),
		stringMap("application_metadata", "application_id", "key", "value", func(a *model.Application) *map[string]string { return &a.Metadata }),
	},
}

// ApplicationRepo implements repository.ApplicationRepository
type ApplicationRepo struct {
	*crud[model.Application]
}

// NewApplicationRepo creates a new application repository
func NewApplicationRepo(db sqlx.ExtContext, logger *zap.Logger) *ApplicationRepo {
	return &ApplicationRepo{crud: newCrud(db, logger, applicationMapping)}
}

func applicationOrder() []string {
	return []string{qualified("a", "name")}
}

// FindByIDs returns the applications with the given ids
func (r *ApplicationRepo) FindByIDs(ctx context.Context, ids []string) (_ []*model.Application, err error) {
	defer r.observe("find_by_ids", time.Now(), &err)
	if len(ids) == 0 {
		return []*model.Application{}, nil
	}
	r.logger.Debug("Finding applications by ids", zap.Strings("ids", ids))

	where := &clauses{}
	where.AddIn(qualified("a", "id"), ids)
	return r.find(ctx, "find_by_ids", "", where, applicationOrder()...)
}

// FindAll returns every application, restricted to statuses when any are given
func (r *ApplicationRepo) FindAll(ctx context.Context, statuses ...model.ApplicationStatus) (_ []*model.Application, err error) {
	defer r.observe("find_all", time.Now(), &err)
	r.logger.Debug("Finding all applications", zap.Strings("statuses", repository.Strings(statuses)))

	where := &clauses{}
	where.AddIn(qualified("a", "status"), repository.Strings(statuses))
	return r.find(ctx, "find_all", "", where, applicationOrder()...)
}

// FindAllByEnvironment returns the applications of an environment
func (r *ApplicationRepo) FindAllByEnvironment(ctx context.Context, environmentID string, statuses ...model.ApplicationStatus) (_ []*model.Application, err error) {
	defer r.observe("find_all_by_environment", time.Now(), &err)
	r.logger.Debug("Finding applications by environment", zap.String("environment", environmentID))

	where := &clauses{}
	where.AddEqual(qualified("a", "environment_id"), environmentID)
	where.AddIn(qualified("a", "status"), repository.Strings(statuses))
	return r.find(ctx, "find_all_by_environment", "", where, applicationOrder()...)
}

// FindByGroups returns the applications belonging to at least one of groups
func (r *ApplicationRepo) FindByGroups(ctx context.Context, groups []string, statuses ...model.ApplicationStatus) (_ []*model.Application, err error) {
	defer r.observe("find_by_groups", time.Now(), &err)
	if len(groups) == 0 {
		return []*model.Application{}, nil
	}
	r.logger.Debug("Finding applications by groups", zap.Strings("groups", groups))

	where := &clauses{}
	args := make([]any, len(groups))
	for i, g := range groups {
		args[i] = g
	}
	where.AddExpr(qualified("a", "id")+" IN (SELECT "+quote("application_id")+" FROM "+quote("application_groups")+
		" WHERE "+quote("group_id")+" IN ("+placeholders(len(groups))+"))", args...)
	where.AddIn(qualified("a", "status"), repository.Strings(statuses))
	return r.find(ctx, "find_by_groups", "", where, applicationOrder()...)
}

// FindByName returns the applications whose name contains partialName, ignoring case
func (r *ApplicationRepo) FindByName(ctx context.Context, partialName string) (_ []*model.Application, err error) {
	defer r.observe("find_by_name", time.Now(), &err)
	r.logger.Debug("Finding applications by name", zap.String("name", partialName))

	where := &clauses{}
	addNameContains(where, partialName)
	return r.find(ctx, "find_by_name", "", where, applicationOrder()...)
}

// Search returns one page of the applications matching criteria, sorted by name
func (r *ApplicationRepo) Search(ctx context.Context, criteria *repository.ApplicationCriteria, pageable *repository.Pageable) (_ repository.Page[*model.Application], err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching applications", zap.Any("criteria", criteria), zap.Any("pageable", pageable))

	where := &clauses{}
	if criteria != nil {
		where.AddIn(qualified("a", "id"), criteria.IDs)
		addNameContains(where, criteria.Name)
		where.AddIn(qualified("a", "environment_id"), criteria.EnvironmentIDs)
		where.AddEqualIfSet(qualified("a", "status"), string(criteria.Status))
	}
	return r.page(ctx, "search", "", where, pageable, applicationOrder()...)
}

func addNameContains(where *clauses, name string) bool {
	return where.AddContains(qualified("a", "name"), name)
}
