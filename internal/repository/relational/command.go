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

var commandMapping = &mapping[model.Command]{
	entity:   "command",
	table:    "commands",
	alias:    "c",
	idColumn: "id",
	id:       func(c *model.Command) string { return c.ID },
	columns: []column[model.Command]{
		col("id", func(c *model.Command) *string { return &c.ID }),
		col("environment_id", func(c *model.Command) *string { return &c.EnvironmentID }),
		col("from", func(c *model.Command) *string { return &c.From }),
		col("to", func(c *model.Command) *string { return &c.To }),
		col("content", func(c *model.Command) *string { return &c.Content }),
		timePtrCol("expired_at", func(c *model.Command) **time.Time { return &c.ExpiredAt }),
		timeCol("created_at", func(c *model.Command) *time.Time { return &c.CreatedAt }),
		timeCol("updated_at", func(c *model.Command) *time.Time { return &c.UpdatedAt }),
	},
	children: []child[model.Command]{
		stringList("command_tags", "command_id", "tag", func(c *model.Command) *[]string { return &c.Tags }),
		stringList("command_acknowledgments", "command_id", "acknowledgment", func(c *model.Command) *[]string { return &c.Acknowledgments }),
	},
}

// CommandRepo implements repository.CommandRepository
type CommandRepo struct {
	*crud[model.Command]
	now func() time.Time
}

// NewCommandRepo creates a new command repository
func NewCommandRepo(db sqlx.ExtContext, logger *zap.Logger) *CommandRepo {
	return &CommandRepo{crud: newCrud(db, logger, commandMapping), now: time.Now}
}

// Search returns the commands matching criteria, most recently updated first
func (r *CommandRepo) Search(ctx context.Context, criteria *repository.CommandCriteria) (_ []*model.Command, err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching commands", zap.Any("criteria", criteria))

	where := &clauses{}
	if criteria != nil {
		where.AddEqualIfSet(qualified("c", "environment_id"), criteria.EnvironmentID)
		where.AddEqualIfSet(qualified("c", "to"), criteria.To)
		if criteria.NotFrom != "" {
			where.AddExpr(qualified("c", "from")+" <> ?", criteria.NotFrom)
		}
		if criteria.NotExpired {
			where.AddExpr("("+qualified("c", "expired_at")+" IS NULL OR "+qualified("c", "expired_at")+" >= ?)", r.now().UTC())
		}
		if criteria.NotAckBy != "" {
			where.AddExpr("NOT EXISTS (SELECT 1 FROM "+quote("command_acknowledgments")+" ca WHERE "+
				qualified("ca", "command_id")+" = "+qualified("c", "id")+" AND "+qualified("ca", "acknowledgment")+" = ?)", criteria.NotAckBy)
		}
		for _, tag := range criteria.Tags {
			where.AddExpr("EXISTS (SELECT 1 FROM "+quote("command_tags")+" ct WHERE "+
				qualified("ct", "command_id")+" = "+qualified("c", "id")+" AND "+qualified("ct", "tag")+" = ?)", tag)
		}
	}
	return r.find(ctx, "search", "", where, qualified("c", "updated_at")+" DESC")
}
