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

package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/wso2/api-platform/management-repository/config"
	"github.com/wso2/api-platform/management-repository/internal/repository/relational"
	"github.com/wso2/api-platform/management-repository/internal/seed"
)

func newBackend(t *testing.T) *relational.Backend {
	t.Helper()
	ctx := context.Background()
	b, err := relational.Open(ctx, &config.Database{
		Driver: "sqlite3",
		Path:   filepath.Join(t.TempDir(), "seed.db"),
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { b.Close(ctx) })
	require.NoError(t, b.InitSchema(ctx))
	return b
}

func TestLoadFile(t *testing.T) {
	f, err := seed.LoadFile(filepath.Join("testdata", "fixtures.yaml"))
	require.NoError(t, err)

	require.Len(t, f.Organizations, 1)
	assert.Equal(t, []string{"default"}, f.Organizations[0].HRIDs)
	require.Len(t, f.Roles, 1)
	assert.Equal(t, []int{1115, 1215}, f.Roles[0].Permissions)
	require.Len(t, f.Events, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), f.Events[0].UpdatedAt.UTC())
	assert.Equal(t, "api-echo", f.Events[0].Properties["api"])

	require.Len(t, f.Media, 1)
	assert.Equal(t, "logo.png", f.Media[0].FileName)
	assert.Len(t, f.Media[0].Hash, 64)
	assert.NotEmpty(t, f.Media[0].Data)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := seed.LoadFile("")
	assert.Error(t, err)

	_, err = seed.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("media:\n  - type: image\n"), 0o600))
	_, err = seed.LoadFile(path)
	assert.ErrorContains(t, err, "must have a type and a file")
}

func TestSeedIsIdempotent(t *testing.T) {
	b := newBackend(t)
	ctx := context.Background()
	s := seed.NewSeeder(b, zaptest.NewLogger(t))

	f, err := seed.LoadFile(filepath.Join("testdata", "fixtures.yaml"))
	require.NoError(t, err)
	report, err := s.Seed(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, seed.Count{Created: 1}, report["organizations"])
	assert.Equal(t, seed.Count{Created: 1}, report["plans"])
	assert.Equal(t, seed.Count{Created: 1}, report["media"])

	user, err := b.Users().FindByID(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	f, err = seed.LoadFile(filepath.Join("testdata", "fixtures.yaml"))
	require.NoError(t, err)
	report, err = s.Seed(ctx, f)
	require.NoError(t, err)
	for kind, count := range report {
		assert.Zero(t, count.Created, kind)
	}
	assert.Equal(t, seed.Count{Existing: 1}, report["apiKeys"])
	assert.Equal(t, seed.Count{Existing: 1}, report["media"])
}

func TestSeedNilFixtures(t *testing.T) {
	report, err := seed.NewSeeder(newBackend(t), zaptest.NewLogger(t)).Seed(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, report)
}
