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
)

// The proxies below forward every call unchanged to the bound backend
// repository. Errors are neither translated nor wrapped.

type EventRepositoryProxy struct{ EventRepository }
type AuditRepositoryProxy struct{ AuditRepository }
type PlanRepositoryProxy struct{ PlanRepository }
type ApiKeyRepositoryProxy struct{ ApiKeyRepository }
type ApplicationRepositoryProxy struct{ ApplicationRepository }
type SubscriptionRepositoryProxy struct{ SubscriptionRepository }
type CommandRepositoryProxy struct{ CommandRepository }
type GroupRepositoryProxy struct{ GroupRepository }
type UserRepositoryProxy struct{ UserRepository }
type RoleRepositoryProxy struct{ RoleRepository }
type OrganizationRepositoryProxy struct{ OrganizationRepository }
type MediaRepositoryProxy struct{ MediaRepository }

// Proxy is the facade handed to callers. It holds one proxy per repository
// interface, all bound to the same backend.
type Proxy struct {
	target Backend

	events        EventRepositoryProxy
	audits        AuditRepositoryProxy
	plans         PlanRepositoryProxy
	apiKeys       ApiKeyRepositoryProxy
	applications  ApplicationRepositoryProxy
	subscriptions SubscriptionRepositoryProxy
	commands      CommandRepositoryProxy
	groups        GroupRepositoryProxy
	users         UserRepositoryProxy
	roles         RoleRepositoryProxy
	organizations OrganizationRepositoryProxy
	media         MediaRepositoryProxy
}

// NewProxy creates a proxy bound to target
func NewProxy(target Backend) *Proxy {
	p := &Proxy{}
	p.SetTarget(target)
	return p
}

// SetTarget rebinds every proxy to target. It must not race with calls
// through the proxy; bind once at start or between tests.
func (p *Proxy) SetTarget(target Backend) {
	p.target = target
	p.events.EventRepository = target.Events()
	p.audits.AuditRepository = target.Audits()
	p.plans.PlanRepository = target.Plans()
	p.apiKeys.ApiKeyRepository = target.ApiKeys()
	p.applications.ApplicationRepository = target.Applications()
	p.subscriptions.SubscriptionRepository = target.Subscriptions()
	p.commands.CommandRepository = target.Commands()
	p.groups.GroupRepository = target.Groups()
	p.users.UserRepository = target.Users()
	p.roles.RoleRepository = target.Roles()
	p.organizations.OrganizationRepository = target.Organizations()
	p.media.MediaRepository = target.Media()
}

// Target returns the currently bound backend
func (p *Proxy) Target() Backend {
	return p.target
}

func (p *Proxy) Name() string                          { return p.target.Name() }
func (p *Proxy) Events() EventRepository               { return &p.events }
func (p *Proxy) Audits() AuditRepository               { return &p.audits }
func (p *Proxy) Plans() PlanRepository                 { return &p.plans }
func (p *Proxy) ApiKeys() ApiKeyRepository             { return &p.apiKeys }
func (p *Proxy) Applications() ApplicationRepository   { return &p.applications }
func (p *Proxy) Subscriptions() SubscriptionRepository { return &p.subscriptions }
func (p *Proxy) Commands() CommandRepository           { return &p.commands }
func (p *Proxy) Groups() GroupRepository               { return &p.groups }
func (p *Proxy) Users() UserRepository                 { return &p.users }
func (p *Proxy) Roles() RoleRepository                 { return &p.roles }
func (p *Proxy) Organizations() OrganizationRepository { return &p.organizations }
func (p *Proxy) Media() MediaRepository                { return &p.media }

// InitSchema delegates to the backend when it manages its own schema
func (p *Proxy) InitSchema(ctx context.Context) error {
	if s, ok := p.target.(SchemaInitializer); ok {
		return s.InitSchema(ctx)
	}
	return nil
}

// Close releases the bound backend
func (p *Proxy) Close(ctx context.Context) error {
	return p.target.Close(ctx)
}
