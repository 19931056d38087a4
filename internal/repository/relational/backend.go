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
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/config"
	"github.com/wso2/api-platform/management-repository/internal/database"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

// BackendName is the repository type selecting the relational backend
const BackendName = config.RepositoryRelational

var errNoConnection = errors.New("relational backend is not bound to a connection")

func init() {
	repository.Register(BackendName, func(ctx context.Context, cfg *config.Server, logger *zap.Logger) (repository.Backend, error) {
		b, err := Open(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Database.ExecuteSchemaDDL {
			if err := b.InitSchema(ctx); err != nil {
				_ = b.Close(ctx)
				return nil, err
			}
		}
		return b, nil
	})
}

// Backend groups the relational repositories sharing one connection or transaction
type Backend struct {
	db     *database.DB
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

// New builds every repository on ext, which may be a *sqlx.DB or a *sqlx.Tx
func New(ext sqlx.ExtContext, logger *zap.Logger) *Backend {
	logger = logger.With(zap.String("backend", BackendName))
	return &Backend{
		logger:        logger,
		events:        NewEventRepo(ext, logger),
		audits:        NewAuditRepo(ext, logger),
		plans:         NewPlanRepo(ext, logger),
		apiKeys:       NewApiKeyRepo(ext, logger),
		applications:  NewApplicationRepo(ext, logger),
		subscriptions: NewSubscriptionRepo(ext, logger),
		commands:      NewCommandRepo(ext, logger),
		groups:        NewGroupRepo(ext, logger),
		users:         NewUserRepo(ext, logger),
		roles:         NewRoleRepo(ext, logger),
		organizations: NewOrganizationRepo(ext, logger),
		media:         NewMediaRepo(ext, logger),
	}
}

// NewWithDB builds a backend owning db
func NewWithDB(db *database.DB, logger *zap.Logger) *Backend {
	b := New(db.DB, logger)
	b.db = db
	return b
}

// Open connects to the configured database and builds a backend on it
func Open(ctx context.Context, cfg *config.Database, logger *zap.Logger) (*Backend, error) {
	db, err := database.NewConnection(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db, logger), nil
}

// WithTx runs fn with a backend whose repositories all share one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (b *Backend) WithTx(ctx context.Context, fn func(tx *Backend) error) error {
	if b.db == nil {
		return errNoConnection
	}
	return b.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		return fn(New(tx, b.logger))
	})
}

// InitSchema creates the tables and indexes when they do not exist
func (b *Backend) InitSchema(ctx context.Context) error {
	if b.db == nil {
		return errNoConnection
	}
	return b.db.InitSchema(ctx)
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

// Close releases the connection when the backend owns one
func (b *Backend) Close(context.Context) error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

var (
	_ repository.Backend           = (*Backend)(nil)
	_ repository.SchemaInitializer = (*Backend)(nil)
)
