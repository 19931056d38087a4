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

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset(enabled bool) {
	once = sync.Once{}
	registry = nil
	Enabled = enabled
}

func TestInitDisabled(t *testing.T) {
	reset(false)

	reg := Init()
	require.NotNil(t, reg)

	// noop metrics must be safe to use
	ObserveOperation("relational", "event", "create", time.Now(), StatusSuccess)
	Info.WithLabelValues("relational").Set(1)
	MediaBytesTotal.WithLabelValues("mongodb").Add(10)

	_, ok := OperationsTotal.(noopCounterVec)
	assert.True(t, ok)
}

func TestInitEnabled(t *testing.T) {
	reset(true)
	defer reset(false)

	reg := Init()
	require.NotNil(t, reg)

	ObserveOperation("relational", "event", "create", time.Now(), StatusSuccess)
	ObserveOperation("relational", "event", "create", time.Now(), StatusSuccess)
	ObserveOperation("relational", "event", "update", time.Now(), StatusNotFound)

	created := OperationsTotal.WithLabelValues("relational", "event", "create", StatusSuccess).(prometheus.Counter)
	assert.Equal(t, float64(2), testutil.ToFloat64(created))

	notFound := OperationsTotal.WithLabelValues("relational", "event", "update", StatusNotFound).(prometheus.Counter)
	assert.Equal(t, float64(1), testutil.ToFloat64(notFound))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["platform_repository_operations_total"])
	assert.True(t, names["platform_repository_operation_duration_seconds"])
}

func TestGetRegistry(t *testing.T) {
	reset(true)
	defer reset(false)

	reg := GetRegistry()
	require.NotNil(t, reg)
	assert.Same(t, reg, GetRegistry())
}

func TestSetEnabled(t *testing.T) {
	defer reset(false)

	SetEnabled(true)
	assert.True(t, IsEnabled())
	SetEnabled(false)
	assert.False(t, IsEnabled())
}
