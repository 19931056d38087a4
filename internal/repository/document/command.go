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

// CommandRepo implements repository.CommandRepository
type CommandRepo struct {
	*store[model.Command]
	now func() time.Time
}

// NewCommandRepo creates a new command repository on coll
func NewCommandRepo(coll *mongo.Collection, logger *zap.Logger) *CommandRepo {
	return &CommandRepo{
		store: newStore(coll, logger, "command",
			func(c *model.Command) string { return c.ID },
			func(c *model.Command) {
				emptyIfNil(&c.Tags)
				emptyIfNil(&c.Acknowledgments)
			}),
		now: time.Now,
	}
}

func commandFilter(criteria *repository.CommandCriteria, now time.Time) *filter {
	f := &filter{}
	if criteria == nil {
		return f
	}
	f.eqIfSet("environmentId", criteria.EnvironmentID).eqIfSet("to", criteria.To)
	if criteria.NotFrom != "" {
		f.add("from", bson.D{{Key: "$ne", Value: criteria.NotFrom}})
	}
	if criteria.NotAckBy != "" {
		f.add("acknowledgments", bson.D{{Key: "$ne", Value: criteria.NotAckBy}})
	}
	if len(criteria.Tags) > 0 {
		f.add("tags", bson.D{{Key: "$all", Value: criteria.Tags}})
	}
	if criteria.NotExpired {
		f.or(
			bson.D{{Key: "expiredAt", Value: nil}},
			bson.D{{Key: "expiredAt", Value: bson.D{{Key: "$gte", Value: now.UTC()}}}},
		)
	}
	return f
}

// Search returns the commands matching criteria, most recently updated first
func (r *CommandRepo) Search(ctx context.Context, criteria *repository.CommandCriteria) (_ []*model.Command, err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching commands", zap.Any("criteria", criteria))

	return r.find(ctx, "search", commandFilter(criteria, r.now()).doc(), options.Find().SetSort(sortBy("-updatedAt", "-_id")))
}
