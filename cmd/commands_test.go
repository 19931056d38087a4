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

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wso2/api-platform/management-repository/internal/seed"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REPOSITORY_TYPE", "relational")
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("DATABASE_DB_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("METRICS_ENABLED", "false")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := execute(context.Background(), &out, args)
	return out.String(), err
}

func TestSeedThenQueryEvents(t *testing.T) {
	setupEnv(t)
	fixtures := filepath.Join("..", "internal", "seed", "testdata", "fixtures.yaml")

	out, err := run(t, "schema", "init")
	require.NoError(t, err, out)

	out, err = run(t, "seed", "--file", fixtures)
	require.NoError(t, err, out)
	var report seed.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report["events"].Created)

	out, err = run(t, "events", "latest", "--group", "api")
	require.NoError(t, err)
	assert.Contains(t, out, "evt-publish")

	out, err = run(t, "events", "search", "--type", "STOP_API")
	require.NoError(t, err)
	assert.NotContains(t, out, "evt-publish")

	out, err = run(t, "events", "search", "--property", "api=api-echo", "--from", "2024-03-01T00:00:00Z", "--size", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "evt-publish")
}

func TestEventFlagsRejectMalformedValues(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "events", "search", "--from", "yesterday")
	assert.ErrorContains(t, err, "invalid --from")

	_, err = run(t, "events", "search", "--property", "api")
	assert.ErrorContains(t, err, "expected key=value")
}

func TestMediaPurgeRequiresAPI(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "media", "purge")
	assert.Error(t, err)

	_, err = run(t, "media", "purge", "--api", "api-echo")
	assert.NoError(t, err)
}

func TestUnknownRepository(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "--repository", "cassandra", "schema", "init")
	assert.Error(t, err)
}
