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

package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

// Count is the outcome of seeding one kind of entity
type Count struct {
	Created  int
	Existing int
}

// Report maps entity kinds to their seeding outcome
type Report map[string]Count

// Seeder creates fixture entities through a repository backend.
//
// Seeding is idempotent: entities that already exist are left untouched.
type Seeder struct {
	backend repository.Backend
	logger  *zap.Logger
	now     func() time.Time
}

func NewSeeder(backend repository.Backend, logger *zap.Logger) *Seeder {
	return &Seeder{backend: backend, logger: logger, now: time.Now}
}

type entityRepo[T any] interface {
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
}

func seedAll[T any](ctx context.Context, s *Seeder, report Report, kind string, repo entityRepo[T], items []*T, id func(*T) string, stamp func(*T)) error {
	count := report[kind]
	defer func() { report[kind] = count }()

	for _, item := range items {
		if item == nil || id(item) == "" {
			continue
		}
		key := id(item)
		existing, err := repo.FindByID(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to look up %s %s: %w", kind, key, err)
		}
		if existing != nil {
			count.Existing++
			continue
		}

		stamp(item)
		if _, err := repo.Create(ctx, item); err != nil {
			// Be tolerant to concurrent seeding
			if existing, findErr := repo.FindByID(ctx, key); findErr == nil && existing != nil {
				count.Existing++
				continue
			}
			return fmt.Errorf("failed to create %s %s: %w", kind, key, err)
		}
		s.logger.Debug("Seeded entity", zap.String("kind", kind), zap.String("id", key))
		count.Created++
	}
	return nil
}

func stamp(createdAt, updatedAt *time.Time, now time.Time) {
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt != nil && updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}

// Seed creates every fixture entity that does not exist yet
func (s *Seeder) Seed(ctx context.Context, f *Fixtures) (Report, error) {
	report := Report{}
	if s == nil || s.backend == nil || f == nil {
		return report, nil
	}
	now := s.now().UTC().Truncate(time.Millisecond)
	b := s.backend

	steps := []func() error{
		func() error {
			return seedAll[model.Organization](ctx, s, report, "organizations", b.Organizations(), f.Organizations,
				func(o *model.Organization) string { return o.ID },
				func(o *model.Organization) { stamp(&o.CreatedAt, &o.UpdatedAt, now) })
		},
		func() error {
			return seedAll[model.Role](ctx, s, report, "roles", b.Roles(), f.Roles,
				func(r *model.Role) string { return r.ID },
				func(r *model.Role) { stamp(&r.CreatedAt, &r.UpdatedAt, now) })
		},
		func() error {
			return seedAll[model.Group](ctx, s, report, "groups", b.Groups(), f.Groups,
				func(g *model.Group) string { return g.ID },
				func(g *model.Group) { stamp(&g.CreatedAt, &g.UpdatedAt, now) })
		},
		func() error {
			return seedAll[model.User](ctx, s, report, "users", b.Users(), f.Users,
				func(u *model.User) string { return u.ID },
				func(u *model.User) { stamp(&u.CreatedAt, &u.UpdatedAt, now) })
		},
		func() error {
			return seedAll[model.Application](ctx, s, report, "applications", b.Applications(), f.Applications,
				func(a *model.Application) string { return a.ID },
				func(a *model.Application) { stamp(&a.CreatedAt, &a.UpdatedAt, now) })
		},
		func() error {
			return seedAll[model.Plan](ctx, s, report, "plans", b.Plans(), f.Plans,
				func(p *model.Plan) string { return p.ID },
				func(p *model.Plan) { stamp(&p.CreatedAt, &p.UpdatedAt, now) })
		},
		func() error {
			return seedAll[model.Subscription](ctx, s, report, "subscriptions", b.Subscriptions(), f.Subscriptions,
				func(sub *model.Subscription) string { return sub.ID },
				func(sub *model.Subscription) { stamp(&sub.CreatedAt, &sub.UpdatedAt, now) })
		},
		func() error {
			return seedAll[model.ApiKey](ctx, s, report, "apiKeys", b.ApiKeys(), f.ApiKeys,
				func(k *model.ApiKey) string { return k.Key },
				func(k *model.ApiKey) { stamp(&k.CreatedAt, &k.UpdatedAt, now) })
		},
		func() error {
			return seedAll[model.Event](ctx, s, report, "events", b.Events(), f.Events,
				func(e *model.Event) string { return e.ID },
				func(e *model.Event) { stamp(&e.CreatedAt, &e.UpdatedAt, now) })
		},
		func() error {
			return seedAll[model.Audit](ctx, s, report, "audits", b.Audits(), f.Audits,
				func(a *model.Audit) string { return a.ID },
				func(a *model.Audit) { stamp(&a.CreatedAt, nil, now) })
		},
		func() error {
			return seedAll[model.Command](ctx, s, report, "commands", b.Commands(), f.Commands,
				func(c *model.Command) string { return c.ID },
				func(c *model.Command) { stamp(&c.CreatedAt, &c.UpdatedAt, now) })
		},
		func() error { return s.seedMedia(ctx, report, f.Media, now) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return report, err
		}
	}

	s.logger.Info("Seeding completed", zap.Any("report", report))
	return report, nil
}

// seedMedia identifies media by content hash within their API
func (s *Seeder) seedMedia(ctx context.Context, report Report, media []*model.Media, now time.Time) error {
	count := report["media"]
	defer func() { report["media"] = count }()

	repo := s.backend.Media()
	for _, m := range media {
		if m == nil {
			continue
		}
		var existing *model.Media
		var err error
		if m.API == "" {
			existing, err = repo.FindByHash(ctx, m.Hash, m.Type)
		} else {
			existing, err = repo.FindByHashAndAPI(ctx, m.Hash, m.API, m.Type)
		}
		if err != nil {
			return fmt.Errorf("failed to look up media %s: %w", m.Hash, err)
		}
		if existing != nil {
			count.Existing++
			continue
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		if _, err := repo.Create(ctx, m); err != nil {
			return fmt.Errorf("failed to create media %s: %w", m.Hash, err)
		}
		count.Created++
	}
	return nil
}
