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

var userMapping = &mapping[model.User]{
	entity:   "user",
	table:    "users",
	alias:    "u",
	idColumn: "id",
	id:       func(u *model.User) string { return u.ID },
	columns: []column[model.User]{
		col("id", func(u *model.User) *string { return &u.ID }),
		col("organization_id", func(u *model.User) *string { return &u.OrganizationID }),
		col("source", func(u *model.User) *string { return &u.Source }),
		col("source_id", func(u *model.User) *string { return &u.SourceID }),
		col("email", func(u *model.User) *string { return &u.Email }),
		col("firstname", func(u *model.User) *string { return &u.Firstname }),
		col("lastname", func(u *model.User) *string { return &u.Lastname }),
		col("password", func(u *model.User) *string { return &u.Password }),
		col("picture", func(u *model.User) *string { return &u.Picture }),
		enumCol("status", func(u *model.User) *model.UserStatus { return &u.Status }),
		col("login_count", func(u *model.User) *int64 { return &u.LoginCount }),
		timePtrCol("last_connection_at", func(u *model.User) **time.Time { return &u.LastConnectionAt }),
		timeCol("created_at", func(u *model.User) *time.Time { return &u.CreatedAt }),
		timeCol("updated_at", func(u *model.User) *time.Time { return &u.UpdatedAt }),
	},
}

// UserRepo implements repository.UserRepository
type UserRepo struct {
	*crud[model.User]
}

// NewUserRepo creates a new user repository
func NewUserRepo(db sqlx.ExtContext, logger *zap.Logger) *UserRepo {
	return &UserRepo{crud: newCrud(db, logger, userMapping)}
}

func userOrder() []string {
	return []string{qualified("u", "lastname"), qualified("u", "firstname")}
}

// FindByIDs returns the users with the given ids
func (r *UserRepo) FindByIDs(ctx context.Context, ids []string) (_ []*model.User, err error) {
	defer r.observe("find_by_ids", time.Now(), &err)
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	r.logger.Debug("Finding users by ids", zap.Strings("ids", ids))

	where := &clauses{}
	where.AddIn(qualified("u", "id"), ids)
	return r.find(ctx, "find_by_ids", "", where, userOrder()...)
}

// FindByEmail returns the user of an organization with the given email, ignoring case
func (r *UserRepo) FindByEmail(ctx context.Context, email, organizationID string) (_ *model.User, err error) {
	defer r.observe("find_by_email", time.Now(), &err)
	r.logger.Debug("Finding user by email", zap.String("organization", organizationID))

	where := &clauses{}
	where.AddExpr("LOWER("+qualified("u", "email")+") = LOWER(?)", email)
	where.AddEqual(qualified("u", "organization_id"), organizationID)
	return r.findOne(ctx, "find_by_email", "", where)
}

// FindBySource returns the user of an organization known to an identity source
func (r *UserRepo) FindBySource(ctx context.Context, source, sourceID, organizationID string) (_ *model.User, err error) {
	defer r.observe("find_by_source", time.Now(), &err)
	r.logger.Debug("Finding user by source", zap.String("source", source), zap.String("organization", organizationID))

	where := &clauses{}
	where.AddEqual(qualified("u", "source"), source)
	where.AddExpr("LOWER("+qualified("u", "source_id")+") = LOWER(?)", sourceID)
	where.AddEqual(qualified("u", "organization_id"), organizationID)
	return r.findOne(ctx, "find_by_source", "", where)
}

// Search returns one page of the users matching criteria, paged by the database
func (r *UserRepo) Search(ctx context.Context, criteria *repository.UserCriteria, pageable *repository.Pageable) (_ repository.Page[*model.User], err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching users", zap.Any("criteria", criteria), zap.Any("pageable", pageable))

	where := &clauses{}
	if criteria != nil {
		where.AddEqualIfSet(qualified("u", "organization_id"), criteria.OrganizationID)
		statuses := repository.Strings(criteria.Statuses)
		switch {
		case criteria.NoStatus && len(statuses) > 0:
			args := make([]any, len(statuses))
			for i, s := range statuses {
				args[i] = s
			}
			where.AddExpr("("+qualified("u", "status")+" IS NULL OR "+qualified("u", "status")+" = '' OR "+
				qualified("u", "status")+" IN ("+placeholders(len(statuses))+"))", args...)
		case criteria.NoStatus:
			where.AddExpr("(" + qualified("u", "status") + " IS NULL OR " + qualified("u", "status") + " = '')")
		default:
			where.AddIn(qualified("u", "status"), statuses)
		}
	}
	return r.page(ctx, "search", "", where, pageable, userOrder()...)
}
