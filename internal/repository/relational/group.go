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

var groupMapping = &mapping[model.Group]{
	entity:   "group",
	table:    "groups",
	alias:    "g",
	idColumn: "id",
	id:       func(g *model.Group) string { return g.ID },
	columns: []column[model.Group]{
		col("id", func(g *model.Group) *string { return &g.ID }),
		col("environment_id", func(g *model.Group) *string { return &g.EnvironmentID }),
		col("name", func(g *model.Group) *string { return &g.Name }),
		ptrCol("max_invitation", func(g *model.Group) **int { return &g.MaxInvitation }),
		col("lock_api_role", func(g *model.Group) *bool { return &g.LockAPIRole }),
		col("lock_application_role", func(g *model.Group) *bool { return &g.LockApplicationRole }),
		col("system_invitation", func(g *model.Group) *bool { return &g.SystemInvitation }),
		col("email_invitation", func(g *model.Group) *bool { return &g.EmailInvitation }),
		col("disable_membership_notifications", func(g *model.Group) *bool { return &g.DisableMembershipNotifications }),
		timeCol("created_at", func(g *model.Group) *time.Time { return &g.CreatedAt }),
		timeCol("updated_at", func(g *model.Group) *time.Time { return &g.UpdatedAt }),
	},
	children: []child[model.Group]{
		stringList("group_event_rules", "group_id", "event", func(g *model.Group) *[]string { return &g.EventRules }),
	},
}

// GroupRepo implements repository.GroupRepository
type GroupRepo struct {
	*crud[model.Group]
}

// NewGroupRepo creates a new group repository
func NewGroupRepo(db sqlx.ExtContext, logger *zap.Logger) *GroupRepo {
	return &GroupRepo{crud: newCrud(db, logger, groupMapping)}
}

// FindAll returns every group sorted by name
func (r *GroupRepo) FindAll(ctx context.Context) (_ []*model.Group, err error) {
	defer r.observe("find_all", time.Now(), &err)
	r.logger.Debug("Finding all groups")

	return r.find(ctx, "find_all", "", &clauses{}, qualified("g", "name"))
}

// FindByIDs returns the groups with the given ids
func (r *GroupRepo) FindByIDs(ctx context.Context, ids []string) (_ []*model.Group, err error) {
	defer r.observe("find_by_ids", time.Now(), &err)
	if len(ids) == 0 {
		return []*model.Group{}, nil
	}
	r.logger.Debug("Finding groups by ids", zap.Strings("ids", ids))

	where := &clauses{}
	where.AddIn(qualified("g", "id"), ids)
	return r.find(ctx, "find_by_ids", "", where, qualified("g", "name"))
}

// FindAllByEnvironment returns the groups of an environment
func (r *GroupRepo) FindAllByEnvironment(ctx context.Context, environmentID string) (_ []*model.Group, err error) {
	defer r.observe("find_all_by_environment", time.Now(), &err)
	r.logger.Debug("Finding groups by environment", zap.String("environment", environmentID))

	where := &clauses{}
	where.AddEqual(qualified("g", "environment_id"), environmentID)
	return r.find(ctx, "find_all_by_environment", "", where, qualified("g", "name"))
}
