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
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/wso2/api-platform/management-repository/config"
	"github.com/wso2/api-platform/management-repository/internal/metrics"
)

// Factory opens a backend from configuration
type Factory func(ctx context.Context, cfg *config.Server, logger *zap.Logger) (Backend, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]Factory)
)

// Register makes a backend available under name. It panics if name is
// registered twice or factory is nil.
func Register(name string, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if factory == nil {
		panic("repository: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("repository: Register called twice for backend " + name)
	}
	factories[name] = factory
}

// Backends returns the sorted names of the registered backends
func Backends() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open resolves the backend named by cfg.RepositoryType and returns a proxy bound to it
func Open(ctx context.Context, cfg *config.Server, logger *zap.Logger) (*Proxy, error) {
	factoriesMu.RLock()
	factory, ok := factories[cfg.RepositoryType]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownBackend, cfg.RepositoryType, Backends())
	}

	backend, err := factory(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s repository: %w", cfg.RepositoryType, err)
	}

	metrics.Info.WithLabelValues(backend.Name()).Set(1)
	logger.Info("Repository backend opened", zap.String("backend", backend.Name()))
	return NewProxy(backend), nil
}
