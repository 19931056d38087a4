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

// ApplicationRepo implements repository.ApplicationRepository
type ApplicationRepo struct {
	*store[model.Application]
}

// NewApplicationRepo creates a new application repository on coll
func NewApplicationRepo(coll *mongo.Collection, logger *zap.Logger) *ApplicationRepo {
	return &ApplicationRepo{store: newStore(coll, logger, "application",
		func(a *model.Application) string { return a.ID },
		func(a *model.Application) {
			emptyIfNil(&a.Groups)
			emptyMapIfNil(&a.Metadata)
		})}
}

var applicationSort = sortBy("name", "_id")

func (r *ApplicationRepo) findSorted(ctx context.Context, operation string, f *filter) ([]*model.Application, error) {
	return r.find(ctx, operation, f.doc(), options.Find().SetSort(applicationSort))
}

// FindByIDs returns the applications with the given ids
func (r *ApplicationRepo) FindByIDs(ctx context.Context, ids []string) (_ []*model.Application, err error) {
	defer r.observe("find_by_ids", time.Now(), &err)
	if len(ids) == 0 {
		return []*model.Application{}, nil
	}
	r.logger.Debug("Finding applications by ids", zap.Strings("ids", ids))

	return r.findSorted(ctx, "find_by_ids", (&filter{}).in("_id", ids))
}

// FindAll returns every application, restricted to statuses when any are given
func (r *ApplicationRepo) FindAll(ctx context.Context, statuses ...model.ApplicationStatus) (_ []*model.Application, err error) {
	defer r.observe("find_all", time.Now(), &err)
	r.logger.Debug("Finding all applications", zap.Strings("statuses", repository.Strings(statuses)))

	return r.findSorted(ctx, "find_all", (&filter{}).in("status", repository.Strings(statuses)))
}

// FindAllByEnvironment returns the applications of an environment
func (r *ApplicationRepo) FindAllByEnvironment(ctx context.Context, environmentID string, statuses ...model.ApplicationStatus) (_ []*model.Application, err error) {
	defer r.observe("find_all_by_environment", time.Now(), &err)
	r.logger.Debug("Finding applications by environment", zap.String("environment", environmentID))

	f := (&filter{}).eq("environmentId", environmentID).in("status", repository.Strings(statuses))
	return r.findSorted(ctx, "find_all_by_environment", f)
}

// FindByGroups returns the applications belonging to at least one of groups
func (r *ApplicationRepo) FindByGroups(ctx context.Context, groups []string, statuses ...model.ApplicationStatus) (_ []*model.Application, err error) {
	defer r.observe("find_by_groups", time.Now(), &err)
	if len(groups) == 0 {
		return []*model.Application{}, nil
	}
	r.logger.Debug("Finding applications by groups", zap.Strings("groups", groups))

	f := (&filter{}).in("groups", groups).in("status", repository.Strings(statuses))
	return r.findSorted(ctx, "find_by_groups", f)
}

// FindByName returns the applications whose name contains partialName, ignoring case
func (r *ApplicationRepo) FindByName(ctx context.Context, partialName string) (_ []*model.Application, err error) {
	defer r.observe("find_by_name", time.Now(), &err)
	r.logger.Debug("Finding applications by name", zap.String("name", partialName))

	f := &filter{}
	if partialName != "" {
		f.add("name", containsIgnoreCase(partialName))
	}
	return r.findSorted(ctx, "find_by_name", f)
}

func applicationFilter(criteria *repository.ApplicationCriteria) *filter {
	f := &filter{}
	if criteria == nil {
		return f
	}
	f.in("_id", criteria.IDs).
		in("environmentId", criteria.EnvironmentIDs).
		eqIfSet("status", string(criteria.Status))
	if criteria.Name != "" {
		f.add("name", containsIgnoreCase(criteria.Name))
	}
	return f
}

// Search returns one page of the applications matching criteria, sorted by name
func (r *ApplicationRepo) Search(ctx context.Context, criteria *repository.ApplicationCriteria, pageable *repository.Pageable) (_ repository.Page[*model.Application], err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching applications", zap.Any("criteria", criteria), zap.Any("pageable", pageable))

	return r.page(ctx, "search", applicationFilter(criteria).doc(), applicationSort, pageable)
}
