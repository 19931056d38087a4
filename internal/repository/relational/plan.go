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

var planMapping = &mapping[model.Plan]{
	entity:   "plan",
	table:    "plans",
	alias:    "p",
	idColumn: "id",
	id:       func(p *model.Plan) string { return p.ID },
	columns: []column[model.Plan]{
		col("id", func(p *model.Plan) *string { return &p.ID }),
		col("name", func(p *model.Plan) *string { return &p.Name }),
		col("description", func(p *model.Plan) *string { return &p.Description }),
		enumCol("type", func(p *model.Plan) *model.PlanType { return &p.Type }),
		enumCol("validation", func(p *model.Plan) *model.PlanValidation { return &p.Validation }),
		enumCol("security", func(p *model.Plan) *model.PlanSecurity { return &p.Security }),
		col("security_definition", func(p *model.Plan) *string { return &p.SecurityDefinition }),
		col("definition", func(p *model.Plan) *string { return &p.Definition }),
		col("order", func(p *model.Plan) *int { return &p.Order }),
		col("api", func(p *model.Plan) *string { return &p.API }),
		enumCol("status", func(p *model.Plan) *model.PlanStatus { return &p.Status }),
		col("comment_required", func(p *model.Plan) *bool { return &p.CommentRequired }),
		col("comment_message", func(p *model.Plan) *string { return &p.CommentMessage }),
		col("selection_rule", func(p *model.Plan) *string { return &p.SelectionRule }),
		timeCol("created_at", func(p *model.Plan) *time.Time { return &p.CreatedAt }),
		timeCol("updated_at", func(p *model.Plan) *time.Time { return &p.UpdatedAt }),
		timePtrCol("published_at", func(p *model.Plan) **time.Time { return &p.PublishedAt }),
		timePtrCol("closed_at", func(p *model.Plan) **time.Time { return &p.ClosedAt }),
		timePtrCol("need_redeploy_at", func(p *model.Plan) **time.Time { return &p.NeedRedeployAt }),
	},
	children: []child[model.Plan]{
		stringSet("plan_tags", "plan_id", "tag", func(p *model.Plan) *[]string { return &p.Tags }),
		stringList("plan_characteristics", "plan_id", "characteristic", func(p *model.Plan) *[]string { return &p.Characteristics }),
		stringList("plan_excluded_groups", "plan_id", "excluded_group", func(p *model.Plan) *[]string { return &p.ExcludedGroups }),
	},
}

// PlanRepo implements repository.PlanRepository
type PlanRepo struct {
	*crud[model.Plan]
}

// NewPlanRepo creates a new plan repository
func NewPlanRepo(db sqlx.ExtContext, logger *zap.Logger) *PlanRepo {
	return &PlanRepo{crud: newCrud(db, logger, planMapping)}
}

func planOrder() []string {
	return []string{qualified("p", "order"), qualified("p", "name")}
}

// FindByAPI returns the plans of an API in display order
func (r *PlanRepo) FindByAPI(ctx context.Context, api string) (_ []*model.Plan, err error) {
	defer r.observe("find_by_api", time.Now(), &err)
	r.logger.Debug("Finding plans by api", zap.String("api", api))

	where := &clauses{}
	where.AddEqual(qualified("p", "api"), api)
	return r.find(ctx, "find_by_api", "", where, planOrder()...)
}

// FindByIDs returns the plans with the given ids
func (r *PlanRepo) FindByIDs(ctx context.Context, ids []string) (_ []*model.Plan, err error) {
	defer r.observe("find_by_ids", time.Now(), &err)
	if len(ids) == 0 {
		return []*model.Plan{}, nil
	}
	r.logger.Debug("Finding plans by ids", zap.Strings("ids", ids))

	where := &clauses{}
	where.AddIn(qualified("p", "id"), ids)
	return r.find(ctx, "find_by_ids", "", where, planOrder()...)
}
