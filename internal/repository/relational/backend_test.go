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
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wso2/api-platform/management-repository/config"
	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	cfg := &config.Database{
		Driver: "sqlite3",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}
	b, err := Open(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { b.Close(context.Background()) })
	require.NoError(t, b.InitSchema(context.Background()))
	return b
}

// ts returns a UTC instant at the given offset in seconds from a fixed base
func ts(seconds int) time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(seconds) * time.Second)
}

func countRows(t *testing.T, b *Backend, table, fk, id string) int {
	t.Helper()
	var n int
	err := b.db.Get(&n, `SELECT COUNT(*) FROM `+quote(table)+` WHERE `+quote(fk)+` = ?`, id)
	require.NoError(t, err)
	return n
}

func TestBackendName(t *testing.T) {
	b := newTestBackend(t)
	assert.Equal(t, "relational", b.Name())
}

func TestWithTxRollsBackEveryRepository(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := b.WithTx(ctx, func(tx *Backend) error {
		if _, err := tx.Organizations().Create(ctx, &model.Organization{ID: "o1", Name: "one", HRIDs: []string{"one"}, CreatedAt: ts(0), UpdatedAt: ts(0)}); err != nil {
			return err
		}
		if _, err := tx.Groups().Create(ctx, &model.Group{ID: "g1", Name: "devs", CreatedAt: ts(0), UpdatedAt: ts(0)}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	org, err := b.Organizations().FindByID(ctx, "o1")
	require.NoError(t, err)
	assert.Nil(t, org)
	group, err := b.Groups().FindByID(ctx, "g1")
	require.NoError(t, err)
	assert.Nil(t, group)
	assert.Zero(t, countRows(t, b, "organization_hrids", "organization_id", "o1"))
}

func TestWithTxCommits(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	err := b.WithTx(ctx, func(tx *Backend) error {
		_, err := tx.Organizations().Create(ctx, &model.Organization{ID: "o1", Name: "one", CreatedAt: ts(0), UpdatedAt: ts(0)})
		return err
	})
	require.NoError(t, err)

	org, err := b.Organizations().FindByID(ctx, "o1")
	require.NoError(t, err)
	require.NotNil(t, org)
	assert.Equal(t, "one", org.Name)
}

func TestBackendWithoutConnection(t *testing.T) {
	b := New(newTestBackend(t).db.DB, zaptest.NewLogger(t))

	assert.ErrorIs(t, b.InitSchema(context.Background()), errNoConnection)
	assert.ErrorIs(t, b.WithTx(context.Background(), func(*Backend) error { return nil }), errNoConnection)
	assert.NoError(t, b.Close(context.Background()))
}

func TestOpenThroughRegistry(t *testing.T) {
	cfg := &config.Server{
		RepositoryType: config.RepositoryRelational,
		Database: config.Database{
			Driver:           "sqlite3",
			Path:             filepath.Join(t.TempDir(), "registry.db"),
			ExecuteSchemaDDL: true,
		},
	}
	ctx := context.Background()

	proxy, err := repository.Open(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { proxy.Close(ctx) })

	assert.Contains(t, repository.Backends(), config.RepositoryRelational)
	assert.Equal(t, BackendName, proxy.Name())

	created, err := proxy.Roles().Create(ctx, &model.Role{
		ID:            "r1",
		Name:          "USER",
		Scope:         model.RoleScopeAPI,
		ReferenceID:   "DEFAULT",
		ReferenceType: model.RoleReferenceOrganization,
		Permissions:   []int{1500, 1100},
		CreatedAt:     ts(0),
		UpdatedAt:     ts(0),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1500, 1100}, created.Permissions)
}
