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
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/metrics"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

// store is the shared collection skeleton of every entity repository.
// Entities are stored as one document each, keyed by _id.
type store[T any] struct {
	coll      *mongo.Collection
	logger    *zap.Logger
	entity    string
	id        func(*T) string
	normalize func(*T)
}

func newStore[T any](coll *mongo.Collection, logger *zap.Logger, entity string, id func(*T) string, normalize func(*T)) *store[T] {
	return &store[T]{
		coll:      coll,
		logger:    logger.With(zap.String("entity", entity)),
		entity:    entity,
		id:        id,
		normalize: normalize,
	}
}

func (s *store[T]) observe(operation string, start time.Time, err *error) {
	status := metrics.StatusSuccess
	switch {
	case *err == nil:
	case repository.IsNotFoundError(*err):
		status = metrics.StatusNotFound
	default:
		status = metrics.StatusError
	}
	metrics.ObserveOperation(BackendName, s.entity, operation, start, status)
}

func (s *store[T]) fail(operation string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))
	s.logger.Error("Repository operation failed", fields...)
	return repository.Technical(s.entity+" "+operation, err)
}

// FindByID returns the entity or nil when it does not exist
func (s *store[T]) FindByID(ctx context.Context, id string) (_ *T, err error) {
	defer s.observe("find_by_id", time.Now(), &err)
	s.logger.Debug("Finding entity by id", zap.String("id", id))
	return s.findOne(ctx, "find_by_id", bson.D{{Key: "_id", Value: id}})
}

// Create inserts the entity and returns it as stored
func (s *store[T]) Create(ctx context.Context, entity *T) (_ *T, err error) {
	defer s.observe("create", time.Now(), &err)
	if err := repository.ValidateEntity(entity); err != nil {
		return nil, err
	}
	id := s.id(entity)
	s.logger.Debug("Creating entity", zap.String("id", id))

	if _, err := s.coll.InsertOne(ctx, entity); err != nil {
		return nil, s.fail("create", err, zap.String("id", id))
	}
	return s.findOne(ctx, "create", bson.D{{Key: "_id", Value: id}})
}

// Update replaces the whole document. A missing document yields ErrNotFound.
func (s *store[T]) Update(ctx context.Context, entity *T) (_ *T, err error) {
	defer s.observe("update", time.Now(), &err)
	if err := repository.ValidateEntity(entity); err != nil {
		return nil, err
	}
	id := s.id(entity)
	s.logger.Debug("Updating entity", zap.String("id", id))

	// No upsert: a missing document leaves MatchedCount at zero.
	result, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, entity)
	if err != nil {
		return nil, s.fail("update", err, zap.String("id", id))
	}
	if result.MatchedCount == 0 {
		s.logger.Debug("Entity to update does not exist", zap.String("id", id))
		return nil, repository.NotFound(s.entity, id)
	}
	return s.findOne(ctx, "update", bson.D{{Key: "_id", Value: id}})
}

// Delete removes the document. Deleting a missing id succeeds.
func (s *store[T]) Delete(ctx context.Context, id string) (err error) {
	defer s.observe("delete", time.Now(), &err)
	if err := repository.RequireID(id); err != nil {
		return err
	}
	s.logger.Debug("Deleting entity", zap.String("id", id))

	if _, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return s.fail("delete", err, zap.String("id", id))
	}
	return nil
}

func (s *store[T]) findOne(ctx context.Context, operation string, filter bson.D) (*T, error) {
	entity := new(T)
	err := s.coll.FindOne(ctx, filter).Decode(entity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail(operation, err)
	}
	s.normalize(entity)
	return entity, nil
}

func (s *store[T]) find(ctx context.Context, operation string, filter bson.D, opts ...*options.FindOptions) ([]*T, error) {
	cursor, err := s.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, s.fail(operation, err)
	}
	return s.decodeAll(ctx, operation, cursor)
}

func (s *store[T]) decodeAll(ctx context.Context, operation string, cursor *mongo.Cursor) ([]*T, error) {
	list := []*T{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, s.fail(operation, err)
	}
	for _, e := range list {
		s.normalize(e)
	}
	return list, nil
}

// page counts the matching documents and fetches one page with skip and limit
func (s *store[T]) page(ctx context.Context, operation string, filter, sort bson.D, pageable *repository.Pageable) (repository.Page[*T], error) {
	if pageable == nil {
		list, err := s.find(ctx, operation, filter, options.Find().SetSort(sort))
		if err != nil {
			return repository.Page[*T]{}, err
		}
		return repository.NewPage(list, nil), nil
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return repository.Page[*T]{}, s.fail(operation, err)
	}
	if pageable.IsEmpty() || int64(pageable.Offset()) >= total {
		return repository.PageOf([]*T{}, pageable, total), nil
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(int64(pageable.Offset())).
		SetLimit(int64(pageable.PageSize))
	list, err := s.find(ctx, operation, filter, opts)
	if err != nil {
		return repository.Page[*T]{}, err
	}
	return repository.PageOf(list, pageable, total), nil
}

func emptyIfNil[E any](s *[]E) {
	if *s == nil {
		*s = []E{}
	}
}

func emptyMapIfNil(m *map[string]string) {
	if *m == nil {
		*m = map[string]string{}
	}
}
