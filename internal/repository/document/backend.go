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
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/config"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

// BackendName is the repository type selecting the document backend
const BackendName = config.RepositoryMongoDB

// Collection names before the configured prefix is applied
const (
	collEvents        = "events"
	collAudits        = "audits"
	collPlans         = "plans"
	collApiKeys       = "keys"
	collApplications  = "applications"
	collSubscriptions = "subscriptions"
	collCommands      = "commands"
	collGroups        = "groups"
	collUsers         = "users"
	collRoles         = "roles"
	collOrganizations = "organizations"
	bucketMedia       = "media"
)

func init() {
	repository.Register(BackendName, func(ctx context.Context, cfg *config.Server, logger *zap.Logger) (repository.Backend, error) {
		b, err := Open(ctx, &cfg.MongoDB, logger)
		if err != nil {
			return nil, err
		}
		if cfg.MongoDB.EnsureIndexes {
			if err := b.InitSchema(ctx); err != nil {
				_ = b.Close(ctx)
				return nil, err
			}
		}
		return b, nil
	})
}

// Backend groups the document repositories of one database
type Backend struct {
	client *mongo.Client
	db     *mongo.Database
	prefix string
	logger *zap.Logger

	events        *EventRepo
	audits        *AuditRepo
	plans         *PlanRepo
	apiKeys       *ApiKeyRepo
	applications  *ApplicationRepo
	subscriptions *SubscriptionRepo
	commands      *CommandRepo
	groups        *GroupRepo
	users         *UserRepo
	roles         *RoleRepo
	organizations *OrganizationRepo
	media         *MediaRepo
}

// New builds every repository on db. Collection and bucket names are prefixed with prefix.
func New(db *mongo.Database, prefix string, logger *zap.Logger) *Backend {
	logger = logger.With(zap.String("backend", BackendName))
	coll := func(name string) *mongo.Collection { return db.Collection(prefix + name) }
	return &Backend{
		db:            db,
		prefix:        prefix,
		logger:        logger,
		events:        NewEventRepo(coll(collEvents), logger),
		audits:        NewAuditRepo(coll(collAudits), logger),
		plans:         NewPlanRepo(coll(collPlans), logger),
		apiKeys:       NewApiKeyRepo(coll(collApiKeys), logger),
		applications:  NewApplicationRepo(coll(collApplications), logger),
		subscriptions: NewSubscriptionRepo(coll(collSubscriptions), logger),
		commands:      NewCommandRepo(coll(collCommands), logger),
		groups:        NewGroupRepo(coll(collGroups), logger),
		users:         NewUserRepo(coll(collUsers), logger),
		roles:         NewRoleRepo(coll(collRoles), logger),
		organizations: NewOrganizationRepo(coll(collOrganizations), logger),
		media:         NewMediaRepo(db, prefix+bucketMedia, logger),
	}
}

// Open connects to the configured deployment, checks it answers and builds a backend on it
func Open(ctx context.Context, cfg *config.MongoDB, logger *zap.Logger) (*Backend, error) {
	timeout := time.Duration(cfg.ConnectTimeout) * time.Second
	opts := options.Client().ApplyURI(cfg.URI).SetConnectTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("Connected to mongodb",
		zap.String("database", cfg.Database),
		zap.String("collection_prefix", cfg.CollectionPrefix))

	b := New(client.Database(cfg.Database), cfg.CollectionPrefix, logger)
	b.client = client
	return b, nil
}

// InitSchema creates the secondary indexes when they do not exist
func (b *Backend) InitSchema(ctx context.Context) error {
	return ensureIndexes(ctx, b.db, b.prefix, b.logger)
}

func (b *Backend) Name() string { return BackendName }

func (b *Backend) Events() repository.EventRepository               { return b.events }
func (b *Backend) Audits() repository.AuditRepository               { return b.audits }
func (b *Backend) Plans() repository.PlanRepository                 { return b.plans }
func (b *Backend) ApiKeys() repository.ApiKeyRepository             { return b.apiKeys }
func (b *Backend) Applications() repository.ApplicationRepository   { return b.applications }
func (b *Backend) Subscriptions() repository.SubscriptionRepository { return b.subscriptions }
func (b *Backend) Commands() repository.CommandRepository           { return b.commands }
func (b *Backend) Groups() repository.GroupRepository               { return b.groups }
func (b *Backend) Users() repository.UserRepository                 { return b.users }
func (b *Backend) Roles() repository.RoleRepository                 { return b.roles }
func (b *Backend) Organizations() repository.OrganizationRepository { return b.organizations }
func (b *Backend) Media() repository.MediaRepository                { return b.media }

// Close disconnects the client when the backend owns one
func (b *Backend) Close(ctx context.Context) error {
	if b.client == nil {
		return nil
	}
	return b.client.Disconnect(ctx)
}

var (
	_ repository.Backend           = (*Backend)(nil)
	_ repository.SchemaInitializer = (*Backend)(nil)
)
