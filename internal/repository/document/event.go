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

// EventRepo implements repository.EventRepository
type EventRepo struct {
	*store[model.Event]
}

// NewEventRepo creates a new event repository on coll
func NewEventRepo(coll *mongo.Collection, logger *zap.Logger) *EventRepo {
	return &EventRepo{store: newStore(coll, logger, "event",
		func(e *model.Event) string { return e.ID },
		func(e *model.Event) { emptyMapIfNil(&e.Properties) })}
}

func eventFilter(criteria *repository.EventCriteria) *filter {
	f := &filter{}
	if criteria == nil {
		return f
	}
	return f.between("updatedAt", criteria.From, criteria.To).
		eqIfSet("environmentId", criteria.EnvironmentID).
		in("type", repository.Strings(criteria.Types)).
		properties("properties", criteria.Properties)
}

var eventSort = sortBy("-updatedAt", "-_id")

// Search returns one page of the events matching criteria, most recently updated first
func (r *EventRepo) Search(ctx context.Context, criteria *repository.EventCriteria, pageable *repository.Pageable) (_ repository.Page[*model.Event], err error) {
	defer r.observe("search", time.Now(), &err)
	r.logger.Debug("Searching events", zap.Any("criteria", criteria), zap.Any("pageable", pageable))

	return r.page(ctx, "search", eventFilter(criteria).doc(), eventSort, pageable)
}

// SearchAll returns every event matching criteria, most recently updated first
func (r *EventRepo) SearchAll(ctx context.Context, criteria *repository.EventCriteria) (_ []*model.Event, err error) {
	defer r.observe("search_all", time.Now(), &err)
	r.logger.Debug("Searching all events", zap.Any("criteria", criteria))

	return r.find(ctx, "search_all", eventFilter(criteria).doc(), options.Find().SetSort(eventSort))
}

// SearchLatest returns, for every distinct value of the group property, the
// events carrying the greatest updatedAt among those matching criteria
func (r *EventRepo) SearchLatest(ctx context.Context, criteria *repository.EventCriteria, group model.EventProperty, pageable *repository.Pageable) (_ []*model.Event, err error) {
	defer r.observe("search_latest", time.Now(), &err)
	if group == "" {
		return nil, repository.InvalidArgument("group property must not be empty")
	}
	if pageable.IsEmpty() {
		return []*model.Event{}, nil
	}
	r.logger.Debug("Searching latest events", zap.String("group", string(group)), zap.Any("criteria", criteria))

	cursor, err := r.coll.Aggregate(ctx, latestPipeline(criteria, group, pageable))
	if err != nil {
		return nil, r.fail("search_latest", err)
	}
	return r.decodeAll(ctx, "search_latest", cursor)
}

// latestPipeline groups the matching events by the group property, keeps the
// events whose updatedAt equals their group maximum and pages over them
func latestPipeline(criteria *repository.EventCriteria, group model.EventProperty, pageable *repository.Pageable) mongo.Pipeline {
	key := "properties." + string(group)
	match := eventFilter(criteria).add(key, bson.D{{Key: "$exists", Value: true}}).doc()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + key},
			{Key: "maxUpdatedAt", Value: bson.D{{Key: "$max", Value: "$updatedAt"}}},
			{Key: "events", Value: bson.D{{Key: "$push", Value: "$$ROOT"}}},
		}}},
		{{Key: "$unwind", Value: "$events"}},
		{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{
			{Key: "$eq", Value: bson.A{"$events.updatedAt", "$maxUpdatedAt"}},
		}}}}},
		{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$events"}}}},
		{{Key: "$sort", Value: eventSort}},
	}
	if pageable != nil {
		pipeline = append(pipeline,
			bson.D{{Key: "$skip", Value: int64(pageable.Offset())}},
			bson.D{{Key: "$limit", Value: int64(pageable.PageSize)}},
		)
	}
	return pipeline
}
