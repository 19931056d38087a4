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

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/metrics"
	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

var mediaMapping = &mapping[model.Media]{
	entity:   "media",
	table:    "media",
	alias:    "m",
	idColumn: "id",
	id:       func(m *model.Media) string { return m.ID },
	columns: []column[model.Media]{
		col("id", func(m *model.Media) *string { return &m.ID }),
		col("type", func(m *model.Media) *string { return &m.Type }),
		col("sub_type", func(m *model.Media) *string { return &m.SubType }),
		col("file_name", func(m *model.Media) *string { return &m.FileName }),
		col("size", func(m *model.Media) *int64 { return &m.Size }),
		col("hash", func(m *model.Media) *string { return &m.Hash }),
		col("api", func(m *model.Media) *string { return &m.API }),
		col("data", func(m *model.Media) *[]byte { return &m.Data }),
		timeCol("created_at", func(m *model.Media) *time.Time { return &m.CreatedAt }),
	},
}

// MediaRepo implements repository.MediaRepository on a blob column
type MediaRepo struct {
	*crud[model.Media]
}

// NewMediaRepo creates a new media repository
func NewMediaRepo(db sqlx.ExtContext, logger *zap.Logger) *MediaRepo {
	return &MediaRepo{crud: newCrud(db, logger, mediaMapping)}
}

// Create stores a copy of media. A missing id is generated, the size is
// taken from the payload and a zero creation time is set to now.
func (r *MediaRepo) Create(ctx context.Context, media *model.Media) (*model.Media, error) {
	if media == nil {
		return nil, repository.InvalidArgument("media must not be nil")
	}
	stored := *media
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	stored.Size = int64(len(stored.Data))
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	created, err := r.crud.Create(ctx, &stored)
	if err != nil {
		return nil, err
	}
	metrics.MediaBytesTotal.WithLabelValues(BackendName).Add(float64(created.Size))
	return created, nil
}

// FindByHash returns the media with the given hash that belongs to no API
func (r *MediaRepo) FindByHash(ctx context.Context, hash, mediaType string) (_ *model.Media, err error) {
	defer r.observe("find_by_hash", time.Now(), &err)
	r.logger.Debug("Finding media by hash", zap.String("hash", hash), zap.String("type", mediaType))

	where := &clauses{}
	where.AddEqual(qualified("m", "hash"), hash)
	where.AddEqualIfSet(qualified("m", "type"), mediaType)
	where.AddExpr("(" + qualified("m", "api") + " IS NULL OR " + qualified("m", "api") + " = '')")
	return r.findOne(ctx, "find_by_hash", "", where)
}

// FindByHashAndAPI returns the media with the given hash attached to api
func (r *MediaRepo) FindByHashAndAPI(ctx context.Context, hash, api, mediaType string) (_ *model.Media, err error) {
	defer r.observe("find_by_hash_and_api", time.Now(), &err)
	r.logger.Debug("Finding media by hash and api",
		zap.String("hash", hash), zap.String("api", api), zap.String("type", mediaType))

	where := &clauses{}
	where.AddEqual(qualified("m", "hash"), hash)
	where.AddEqual(qualified("m", "api"), api)
	where.AddEqualIfSet(qualified("m", "type"), mediaType)
	return r.findOne(ctx, "find_by_hash_and_api", "", where)
}

// FindAllByAPI returns every media attached to api, oldest first
func (r *MediaRepo) FindAllByAPI(ctx context.Context, api string) (_ []*model.Media, err error) {
	defer r.observe("find_all_by_api", time.Now(), &err)
	r.logger.Debug("Finding media by api", zap.String("api", api))

	where := &clauses{}
	where.AddEqual(qualified("m", "api"), api)
	return r.find(ctx, "find_all_by_api", "", where, qualified("m", "created_at"))
}

// DeleteAllByAPI removes every media attached to api
func (r *MediaRepo) DeleteAllByAPI(ctx context.Context, api string) (err error) {
	defer r.observe("delete_all_by_api", time.Now(), &err)
	if err := repository.RequireID(api); err != nil {
		return err
	}
	r.logger.Debug("Deleting media by api", zap.String("api", api))

	if err := r.exec(ctx, sq.Delete(quote("media")).Where(sq.Eq{quote("api"): api})); err != nil {
		return r.fail("delete_all_by_api", err, zap.String("api", api))
	}
	return nil
}
