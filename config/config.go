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
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"
)

const (
	RepositoryRelational = "relational"
	RepositoryMongoDB    = "mongodb"
)

// Server holds the configuration parameters for the application.
type Server struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// RepositoryType selects the storage backend (relational, mongodb)
	RepositoryType string `envconfig:"REPOSITORY_TYPE" default:"relational"`

	// Database configurations
	Database Database `envconfig:"DATABASE"`

	// MongoDB configurations
	MongoDB MongoDB `envconfig:"MONGODB"`

	// Metrics configurations
	Metrics Metrics `envconfig:"METRICS"`
}

// Database holds database-specific configuration
type Database struct {
	Driver string `envconfig:"DRIVER" default:"sqlite3"`
	// DBPath is the file path for SQLite databases.
	// Use DATABASE_DB_PATH to override; keeping it distinct from the OS PATH variable.
	Path            string `envconfig:"DB_PATH" default:"./data/management.db"`
	Host            string `envconfig:"HOST" default:"localhost"`
	Port            int    `envconfig:"PORT" default:"5432"`
	Name            string `envconfig:"NAME" default:"management"`
	User            string `envconfig:"USER" default:""`
	Password        string `envconfig:"PASSWORD" default:""`
	SSLMode         string `envconfig:"SSL_MODE" default:"disable"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime int    `envconfig:"CONN_MAX_LIFETIME" default:"300"` // seconds

	// ExecuteSchemaDDL controls whether to run the schema DDL (CREATE TABLE, etc.) on startup.
	// Set to false when the DB user lacks DDL privileges.
	// Env: DATABASE_EXECUTE_SCHEMA_DDL (default: true)
	ExecuteSchemaDDL bool `envconfig:"EXECUTE_SCHEMA_DDL" default:"true"`
}

// MongoDB holds document store configuration
type MongoDB struct {
	URI              string `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database         string `envconfig:"DATABASE" default:"management"`
	CollectionPrefix string `envconfig:"COLLECTION_PREFIX" default:""`
	ConnectTimeout   int    `envconfig:"CONNECT_TIMEOUT" default:"10"` // seconds
	EnsureIndexes    bool   `envconfig:"ENSURE_INDEXES" default:"true"`
}

// Metrics holds prometheus configuration
type Metrics struct {
	Enabled bool `envconfig:"ENABLED" default:"false"`
}

// package-level variable and mutex for thread safety
var (
	processOnce     sync.Once
	settingInstance *Server
)

// GetConfig initializes and returns a singleton instance of the Server struct.
// It uses sync.Once to ensure that the initialization logic is executed only once,
// making it safe for concurrent use. If there is an error during the initialization,
// the function will panic.
func GetConfig() *Server {
	var err error
	processOnce.Do(func() {
		settingInstance, err = Load()
	})
	if err != nil {
		panic(err)
	}
	return settingInstance
}

// Load reads the configuration from environment variables and validates it
func Load() (*Server, error) {
	cfg := &Server{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that the selected backend has the settings it needs
func validate(cfg *Server) error {
	switch cfg.RepositoryType {
	case RepositoryRelational:
		switch cfg.Database.Driver {
		case "sqlite3":
			if cfg.Database.Path == "" {
				return fmt.Errorf("sqlite3 driver selected but DATABASE_DB_PATH is not configured")
			}
		case "postgres", "postgresql":
			if cfg.Database.Host == "" || cfg.Database.Name == "" {
				return fmt.Errorf("postgres driver selected but DATABASE_HOST or DATABASE_NAME is not configured")
			}
		default:
			return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
		}
	case RepositoryMongoDB:
		if cfg.MongoDB.URI == "" {
			return fmt.Errorf("mongodb repository selected but MONGODB_URI is not configured")
		}
		if cfg.MongoDB.Database == "" {
			return fmt.Errorf("mongodb repository selected but MONGODB_DATABASE is not configured")
		}
	default:
		return fmt.Errorf("unsupported repository type: %s", cfg.RepositoryType)
	}
	return nil
}
