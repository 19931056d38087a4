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
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/metrics"
	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

// mediaMetadata is the metadata document attached to every GridFS file.
// api is absent for media that do not belong to an API.
type mediaMetadata struct {
	Type    string `bson:"type"`
	SubType string `bson:"subType,omitempty"`
	Size    int64  `bson:"size"`
	Hash    string `bson:"hash"`
	API     string `bson:"api,omitempty"`
}

// mediaFile is the GridFS files collection document
type mediaFile struct {
	ID         string        `bson:"_id"`
	Filename   string        `bson:"filename"`
	UploadDate time.Time     `bson:"uploadDate"`
	Metadata   mediaMetadata `bson:"metadata"`
}

// MediaRepo implements repository.MediaRepository on a GridFS bucket
type MediaRepo struct {
	db     *mongo.Database
	bucket string
	logger *zap.Logger
}

// NewMediaRepo creates a media repository storing files in the named bucket of db
func NewMediaRepo(db *mongo.Database, bucket string, logger *zap.Logger) *MediaRepo {
	return &MediaRepo{db: db, bucket: bucket, logger: logger.With(zap.String("entity", "media"))}
}

func (r *MediaRepo) observe(operation string, start time.Time, err *error) {
	status := metrics.StatusSuccess
	if *err != nil {
		status = metrics.StatusError
	}
	metrics.ObserveOperation(BackendName, "media", operation, start, status)
}

func (r *MediaRepo) fail(operation string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("operation", operation), zap.Error(err))
	r.logger.Error("Repository operation failed", fields...)
	return repository.Technical("media "+operation, err)
}

// openBucket returns the bucket with the context deadline applied to streaming calls
func (r *MediaRepo) openBucket(ctx context.Context) (*gridfs.Bucket, error) {
	b, err := gridfs.NewBucket(r.db, options.GridFSBucket().SetName(r.bucket))
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := b.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
		if err := b.SetWriteDeadline(deadline); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Create uploads a copy of media. A missing id is generated and the size is taken from the payload.
func (r *MediaRepo) Create(ctx context.Context, media *model.Media) (_ *model.Media, err error) {
	defer r.observe("create", time.Now(), &err)
	if media == nil {
		return nil, repository.InvalidArgument("media must not be nil")
	}
	stored := *media
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	stored.Size = int64(len(stored.Data))
	if err := repository.ValidateEntity(&stored); err != nil {
		return nil, err
	}
	r.logger.Debug("Uploading media", zap.String("id", stored.ID), zap.String("hash", stored.Hash))

	bucket, err := r.openBucket(ctx)
	if err != nil {
		return nil, r.fail("create", err)
	}
	opts := options.GridFSUpload().SetMetadata(mediaMetadata{
		Type:    stored.Type,
		SubType: stored.SubType,
		Size:    stored.Size,
		Hash:    stored.Hash,
		API:     stored.API,
	})
	if err := bucket.UploadFromStreamWithID(stored.ID, stored.FileName, bytes.NewReader(stored.Data), opts); err != nil {
		return nil, r.fail("create", err, zap.String("id", stored.ID))
	}
	metrics.MediaBytesTotal.WithLabelValues(BackendName).Add(float64(stored.Size))

	found, err := r.findFiles(ctx, "create", bucket, bson.D{{Key: "_id", Value: stored.ID}}, 1)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, r.fail("create", mongo.ErrNoDocuments, zap.String("id", stored.ID))
	}
	return found[0], nil
}

// FindByHash returns the media with the given hash that belongs to no API
func (r *MediaRepo) FindByHash(ctx context.Context, hash, mediaType string) (_ *model.Media, err error) {
	defer r.observe("find_by_hash", time.Now(), &err)
	r.logger.Debug("Finding media by hash", zap.String("hash", hash), zap.String("type", mediaType))

	f := (&filter{}).
		eq("metadata.hash", hash).
		eqIfSet("metadata.type", mediaType).
		add("metadata.api", bson.D{{Key: "$exists", Value: false}})
	return r.findFirst(ctx, "find_by_hash", f.doc())
}

// FindByHashAndAPI returns the media with the given hash attached to api
func (r *MediaRepo) FindByHashAndAPI(ctx context.Context, hash, api, mediaType string) (_ *model.Media, err error) {
	defer r.observe("find_by_hash_and_api", time.Now(), &err)
	r.logger.Debug("Finding media by hash and api",
		zap.String("hash", hash), zap.String("api", api), zap.String("type", mediaType))

	f := (&filter{}).eq("metadata.hash", hash).eq("metadata.api", api).eqIfSet("metadata.type", mediaType)
	return r.findFirst(ctx, "find_by_hash_and_api", f.doc())
}

// FindAllByAPI returns every media attached to api, oldest first
func (r *MediaRepo) FindAllByAPI(ctx context.Context, api string) (_ []*model.Media, err error) {
	defer r.observe("find_all_by_api", time.Now(), &err)
	r.logger.Debug("Finding media by api", zap.String("api", api))

	bucket, err := r.openBucket(ctx)
	if err != nil {
		return nil, r.fail("find_all_by_api", err)
	}
	return r.findFiles(ctx, "find_all_by_api", bucket, (&filter{}).eq("metadata.api", api).doc(), 0)
}

// DeleteAllByAPI removes every media attached to api. Every file is
// attempted and the failures are combined.
func (r *MediaRepo) DeleteAllByAPI(ctx context.Context, api string) (err error) {
	defer r.observe("delete_all_by_api", time.Now(), &err)
	if err := repository.RequireID(api); err != nil {
		return err
	}
	r.logger.Debug("Deleting media by api", zap.String("api", api))

	bucket, err := r.openBucket(ctx)
	if err != nil {
		return r.fail("delete_all_by_api", err)
	}
	cursor, err := bucket.FindContext(ctx, (&filter{}).eq("metadata.api", api).doc())
	if err != nil {
		return r.fail("delete_all_by_api", err, zap.String("api", api))
	}
	var files []mediaFile
	if err := cursor.All(ctx, &files); err != nil {
		return r.fail("delete_all_by_api", err, zap.String("api", api))
	}

	var errs error
	for _, file := range files {
		errs = multierr.Append(errs, bucket.DeleteContext(ctx, file.ID))
	}
	if errs != nil {
		return r.fail("delete_all_by_api", errs, zap.String("api", api), zap.Int("files", len(files)))
	}
	return nil
}

func (r *MediaRepo) findFirst(ctx context.Context, operation string, filter bson.D) (*model.Media, error) {
	bucket, err := r.openBucket(ctx)
	if err != nil {
		return nil, r.fail(operation, err)
	}
	found, err := r.findFiles(ctx, operation, bucket, filter, 1)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

// findFiles looks up file documents then downloads the content of each
func (r *MediaRepo) findFiles(ctx context.Context, operation string, bucket *gridfs.Bucket, filter bson.D, limit int32) ([]*model.Media, error) {
	opts := options.GridFSFind().SetSort(sortBy("uploadDate", "_id"))
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := bucket.FindContext(ctx, filter, opts)
	if err != nil {
		return nil, r.fail(operation, err)
	}
	var files []mediaFile
	if err := cursor.All(ctx, &files); err != nil {
		return nil, r.fail(operation, err)
	}

	list := make([]*model.Media, 0, len(files))
	for _, file := range files {
		var buf bytes.Buffer
		if _, err := bucket.DownloadToStream(file.ID, &buf); err != nil {
			return nil, r.fail(operation, err, zap.String("id", file.ID))
		}
		list = append(list, &model.Media{
			ID:        file.ID,
			Type:      file.Metadata.Type,
			SubType:   file.Metadata.SubType,
			FileName:  file.Filename,
			Size:      file.Metadata.Size,
			Hash:      file.Metadata.Hash,
			API:       file.Metadata.API,
			Data:      buf.Bytes(),
			CreatedAt: file.UploadDate.UTC(),
		})
	}
	return list, nil
}
