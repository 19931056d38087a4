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

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, RepositoryRelational, cfg.RepositoryType)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.True(t, cfg.Database.ExecuteSchemaDDL)
	assert.Equal(t, "management", cfg.MongoDB.Database)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("REPOSITORY_TYPE", "mongodb")
	t.Setenv("MONGODB_URI", "mongodb://mongo:27017")
	t.Setenv("MONGODB_COLLECTION_PREFIX", "gio_")
	t.Setenv("METRICS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, RepositoryMongoDB, cfg.RepositoryType)
	assert.Equal(t, "mongodb://mongo:27017", cfg.MongoDB.URI)
	assert.Equal(t, "gio_", cfg.MongoDB.CollectionPrefix)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown repository type", map[string]string{"REPOSITORY_TYPE": "cassandra"}},
		{"unknown driver", map[string]string{"DATABASE_DRIVER": "mysql"}},
		{"empty sqlite path", map[string]string{"DATABASE_DB_PATH": ""}},
		{"postgres without host", map[string]string{"DATABASE_DRIVER": "postgres", "DATABASE_HOST": ""}},
		{"mongodb without database", map[string]string{"REPOSITORY_TYPE": "mongodb", "MONGODB_DATABASE": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
