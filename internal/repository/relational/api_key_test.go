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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

func newApiKey(key, plan string, updated int) *model.ApiKey {
	return &model.ApiKey{
		Key:          key,
		Subscription: "sub-" + plan,
		Application:  "app1",
		Plan:         plan,
		CreatedAt:    ts(0),
		UpdatedAt:    ts(updated),
	}
}

func TestApiKeyFindByCriteria(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	revoked := newApiKey("k2", "p1", 20)
	revoked.Revoked = true
	revokedAt := ts(20)
	revoked.RevokedAt = &revokedAt

	expiring := newApiKey("k3", "p2", 30)
	expireAt := ts(100)
	expiring.ExpireAt = &expireAt

	for _, k := range []*model.ApiKey{newApiKey("k1", "p1", 10), revoked, expiring} {
		_, err := b.ApiKeys().Create(ctx, k)
		require.NoError(t, err)
	}

	keys := func(list []*model.ApiKey) []string {
		out := make([]string, len(list))
		for i, k := range list {
			out[i] = k.Key
		}
		return out
	}

	tests := []struct {
		name     string
		criteria *repository.ApiKeyCriteria
		expected []string
	}{
		{
			name:     "revoked keys are excluded by default",
			criteria: &repository.ApiKeyCriteria{Plans: []string{"p1"}},
			expected: []string{"k1"},
		},
		{
			name:     "include revoked",
			criteria: &repository.ApiKeyCriteria{Plans: []string{"p1"}, IncludeRevoked: true},
			expected: []string{"k2", "k1"},
		},
		{
			name:     "nil criteria",
			criteria: nil,
			expected: []string{"k3", "k1"},
		},
		{
			name:     "updated range",
			criteria: &repository.ApiKeyCriteria{IncludeRevoked: true, From: ts(10).UnixMilli(), To: ts(30).UnixMilli()},
			expected: []string{"k2", "k1"},
		},
		{
			name:     "expire bounds are inclusive",
			criteria: &repository.ApiKeyCriteria{ExpireAfter: ts(100).UnixMilli(), ExpireBefore: ts(100).UnixMilli()},
			expected: []string{"k3"},
		},
		{
			name:     "expire after excludes keys without expiry",
			criteria: &repository.ApiKeyCriteria{ExpireAfter: ts(101).UnixMilli()},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := b.ApiKeys().FindByCriteria(ctx, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, keys(list))
		})
	}
}

func TestApiKeyFindBySubscriptionAndPlan(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	for _, k := range []*model.ApiKey{newApiKey("k1", "p1", 10), newApiKey("k2", "p1", 20), newApiKey("k3", "p2", 30)} {
		_, err := b.ApiKeys().Create(ctx, k)
		require.NoError(t, err)
	}

	bySub, err := b.ApiKeys().FindBySubscription(ctx, "sub-p1")
	require.NoError(t, err)
	assert.Len(t, bySub, 2)

	byPlan, err := b.ApiKeys().FindByPlan(ctx, "p2")
	require.NoError(t, err)
	require.Len(t, byPlan, 1)
	assert.Equal(t, "k3", byPlan[0].Key)
}

func TestApiKeyUpdate(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	_, err := b.ApiKeys().Create(ctx, newApiKey("k1", "p1", 10))
	require.NoError(t, err)

	days := 7
	changed := newApiKey("k1", "p1", 20)
	changed.Paused = true
	changed.DaysToExpirationOnLastNotification = &days
	updated, err := b.ApiKeys().Update(ctx, changed)
	require.NoError(t, err)
	assert.True(t, updated.Paused)
	require.NotNil(t, updated.DaysToExpirationOnLastNotification)
	assert.Equal(t, 7, *updated.DaysToExpirationOnLastNotification)
	assert.False(t, updated.IsExpired(time.Now()))
}
