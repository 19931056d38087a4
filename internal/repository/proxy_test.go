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

package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wso2/api-platform/management-repository/config"
	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
	"github.com/wso2/api-platform/management-repository/internal/repository/relational"
)

func openRelational(t *testing.T, name string) *relational.Backend {
	t.Helper()
	cfg := &config.Database{Driver: "sqlite3", Path: filepath.Join(t.TempDir(), name)}
	b, err := relational.Open(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { b.Close(context.Background()) })
	require.NoError(t, b.InitSchema(context.Background()))
	return b
}

func TestProxyDelegatesToTarget(t *testing.T) {
	ctx := context.Background()
	backend := openRelational(t, "proxy.db")
	proxy := repository.NewProxy(backend)
	assert.Same(t, backend, proxy.Target())
	assert.Equal(t, relational.BackendName, proxy.Name())

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := proxy.Groups().Create(ctx, &model.Group{ID: "g1", Name: "devs", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	direct, err := backend.Groups().FindByID(ctx, "g1")
	require.NoError(t, err)
	require.NotNil(t, direct)
	assert.Equal(t, "devs", direct.Name)
}

func TestProxyPassesErrorsThrough(t *testing.T) {
	ctx := context.Background()
	proxy := repository.NewProxy(openRelational(t, "errors.db"))

	_, err := proxy.Plans().Update(ctx, &model.Plan{ID: "missing", Name: "gold"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = proxy.Events().Create(ctx, nil)
	assert.ErrorIs(t, err, repository.ErrInvalidArgument)
}

func TestProxySetTargetRebindsEveryRepository(t *testing.T) {
	ctx := context.Background()
	first := openRelational(t, "first.db")
	second := openRelational(t, "second.db")
	proxy := repository.NewProxy(first)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := proxy.Organizations().Create(ctx, &model.Organization{ID: "o1", Name: "acme", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	proxy.SetTarget(second)
	found, err := proxy.Organizations().FindByID(ctx, "o1")
	require.NoError(t, err)
	assert.Nil(t, found)

	proxy.SetTarget(first)
	found, err = proxy.Organizations().FindByID(ctx, "o1")
	require.NoError(t, err)
	require.NotNil(t, found)

	require.NoError(t, proxy.InitSchema(ctx))
}
