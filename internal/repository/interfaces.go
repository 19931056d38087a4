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

package repository

import (
	"context"

	"github.com/wso2/api-platform/management-repository/internal/model"
)

// FindByID returns (nil, nil) when the entity does not exist. Create and Update
// return the entity as re-read from storage. Update fails with ErrNotFound when
// the entity does not exist and Delete succeeds silently in that case.
//
// List-valued fields (tags, characteristics, excluded groups, hrids, permissions,
// event rules, command tags and acknowledgments) come back without duplicates
// from the relational backend, while the document backend returns them as
// stored. Callers must not rely on a list carrying the same value twice.

// EventRepository defines the interface for event data access
type EventRepository interface {
	FindByID(ctx context.Context, id string) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, criteria *EventCriteria, pageable *Pageable) (Page[*model.Event], error)
	SearchAll(ctx context.Context, criteria *EventCriteria) ([]*model.Event, error)
	// SearchLatest returns the most recently updated event of every distinct value of the group property
	SearchLatest(ctx context.Context, criteria *EventCriteria, group model.EventProperty, pageable *Pageable) ([]*model.Event, error)
}

// AuditRepository defines the interface for audit data access
type AuditRepository interface {
	FindByID(ctx context.Context, id string) (*model.Audit, error)
	Create(ctx context.Context, audit *model.Audit) (*model.Audit, error)
	Search(ctx context.Context, criteria *AuditCriteria, pageable *Pageable) (Page[*model.Audit], error)
}

// PlanRepository defines the interface for plan data access
type PlanRepository interface {
	FindByID(ctx context.Context, id string) (*model.Plan, error)
	Create(ctx context.Context, plan *model.Plan) (*model.Plan, error)
	Update(ctx context.Context, plan *model.Plan) (*model.Plan, error)
	Delete(ctx context.Context, id string) error
	FindByAPI(ctx context.Context, api string) ([]*model.Plan, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Plan, error)
}

// ApiKeyRepository defines the interface for api key data access
type ApiKeyRepository interface {
	FindByID(ctx context.Context, key string) (*model.ApiKey, error)
	Create(ctx context.Context, apiKey *model.ApiKey) (*model.ApiKey, error)
	Update(ctx context.Context, apiKey *model.ApiKey) (*model.ApiKey, error)
	Delete(ctx context.Context, key string) error
	FindByCriteria(ctx context.Context, criteria *ApiKeyCriteria) ([]*model.ApiKey, error)
	FindBySubscription(ctx context.Context, subscription string) ([]*model.ApiKey, error)
	FindByPlan(ctx context.Context, plan string) ([]*model.ApiKey, error)
}

// ApplicationRepository defines the interface for application data access
type ApplicationRepository interface {
	FindByID(ctx context.Context, id string) (*model.Application, error)
	Create(ctx context.Context, application *model.Application) (*model.Application, error)
	Update(ctx context.Context, application *model.Application) (*model.Application, error)
	Delete(ctx context.Context, id string) error
	FindByIDs(ctx context.Context, ids []string) ([]*model.Application, error)
	FindAll(ctx context.Context, statuses ...model.ApplicationStatus) ([]*model.Application, error)
	FindAllByEnvironment(ctx context.Context, environmentID string, statuses ...model.ApplicationStatus) ([]*model.Application, error)
	FindByGroups(ctx context.Context, groups []string, statuses ...model.ApplicationStatus) ([]*model.Application, error)
	FindByName(ctx context.Context, partialName string) ([]*model.Application, error)
	Search(ctx context.Context, criteria *ApplicationCriteria, pageable *Pageable) (Page[*model.Application], error)
}

// SubscriptionRepository defines the interface for subscription data access
type SubscriptionRepository interface {
	FindByID(ctx context.Context, id string) (*model.Subscription, error)
	Create(ctx context.Context, subscription *model.Subscription) (*model.Subscription, error)
	Update(ctx context.Context, subscription *model.Subscription) (*model.Subscription, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, criteria *SubscriptionCriteria, pageable *Pageable) (Page[*model.Subscription], error)
	SearchAll(ctx context.Context, criteria *SubscriptionCriteria) ([]*model.Subscription, error)
}

// CommandRepository defines the interface for command data access
type CommandRepository interface {
	FindByID(ctx context.Context, id string) (*model.Command, error)
	Create(ctx context.Context, command *model.Command) (*model.Command, error)
	Update(ctx context.Context, command *model.Command) (*model.Command, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, criteria *CommandCriteria) ([]*model.Command, error)
}

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	FindByID(ctx context.Context, id string) (*model.Group, error)
	Create(ctx context.Context, group *model.Group) (*model.Group, error)
	Update(ctx context.Context, group *model.Group) (*model.Group, error)
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*model.Group, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Group, error)
	FindAllByEnvironment(ctx context.Context, environmentID string) ([]*model.Group, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	Update(ctx context.Context, user *model.User) (*model.User, error)
	Delete(ctx context.Context, id string) error
	FindByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	FindByEmail(ctx context.Context, email, organizationID string) (*model.User, error)
	FindBySource(ctx context.Context, source, sourceID, organizationID string) (*model.User, error)
	Search(ctx context.Context, criteria *UserCriteria, pageable *Pageable) (Page[*model.User], error)
}

// RoleRepository defines the interface for role data access
type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*model.Role, error)
	Create(ctx context.Context, role *model.Role) (*model.Role, error)
	Update(ctx context.Context, role *model.Role) (*model.Role, error)
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*model.Role, error)
	FindAllByReference(ctx context.Context, referenceID string, referenceType model.RoleReferenceType) ([]*model.Role, error)
	FindByScopeAndReference(ctx context.Context, scope model.RoleScope, referenceID string, referenceType model.RoleReferenceType) ([]*model.Role, error)
	FindByScopeAndNameAndReference(ctx context.Context, scope model.RoleScope, name, referenceID string, referenceType model.RoleReferenceType) (*model.Role, error)
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	FindByID(ctx context.Context, id string) (*model.Organization, error)
	Create(ctx context.Context, organization *model.Organization) (*model.Organization, error)
	Update(ctx context.Context, organization *model.Organization) (*model.Organization, error)
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]*model.Organization, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Organization, error)
	FindByHRIDs(ctx context.Context, hrids []string) ([]*model.Organization, error)
}

// MediaRepository stores binary attachments addressed by content hash
type MediaRepository interface {
	// Create stores the media, generating an id when none is set
	Create(ctx context.Context, media *model.Media) (*model.Media, error)
	// FindByHash only matches media that do not belong to an API
	FindByHash(ctx context.Context, hash, mediaType string) (*model.Media, error)
	FindByHashAndAPI(ctx context.Context, hash, api, mediaType string) (*model.Media, error)
	FindAllByAPI(ctx context.Context, api string) ([]*model.Media, error)
	DeleteAllByAPI(ctx context.Context, api string) error
}

// Backend is the full repository set of one storage technology
type Backend interface {
	Name() string
	Events() EventRepository
	Audits() AuditRepository
	Plans() PlanRepository
	ApiKeys() ApiKeyRepository
	Applications() ApplicationRepository
	Subscriptions() SubscriptionRepository
	Commands() CommandRepository
	Groups() GroupRepository
	Users() UserRepository
	Roles() RoleRepository
	Organizations() OrganizationRepository
	Media() MediaRepository
	Close(ctx context.Context) error
}

// SchemaInitializer is implemented by backends that can create their tables or indexes
type SchemaInitializer interface {
	InitSchema(ctx context.Context) error
}
