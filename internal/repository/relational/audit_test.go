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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

func TestAuditSearch(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	audits := []*model.Audit{
		{ID: "au1", ReferenceType: model.AuditReferenceAPI, ReferenceID: "api1", User: "admin", Event: "API_CREATED",
			Properties: map[string]string{"PLAN": "p1"}, CreatedAt: ts(10)},
		{ID: "au2", ReferenceType: model.AuditReferenceAPI, ReferenceID: "api2", User: "admin", Event: "API_UPDATED",
			Properties: map[string]string{"PLAN": "p2"}, CreatedAt: ts(20)},
		{ID: "au3", ReferenceType: model.AuditReferenceApplication, ReferenceID: "app1", User: "bob", Event: "APPLICATION_CREATED",
			CreatedAt: ts(30)},
	}
	for _, a := range audits {
		_, err := b.Audits().Create(ctx, a)
		require.NoError(t, err)
	}

	ids := func(list []*model.Audit) []string {
		out := make([]string, len(list))
		for i, a := range list {
			out[i] = a.ID
		}
		return out
	}

	tests := []struct {
		name     string
		criteria *repository.AuditCriteria
		expected []string
	}{
		{
			name:     "all",
			expected: []string{"au3", "au2", "au1"},
		},
		{
			name: "references of several types are ORed",
			criteria: &repository.AuditCriteria{References: map[model.AuditReferenceType][]string{
				model.AuditReferenceAPI:         {"api1"},
				model.AuditReferenceApplication: {"app1"},
			}},
			expected: []string{"au3", "au1"},
		},
		{
			name:     "events",
			criteria: &repository.AuditCriteria{Events: []string{"API_UPDATED"}},
			expected: []string{"au2"},
		},
		{
			name:     "properties",
			criteria: &repository.AuditCriteria{Properties: repository.PropertyFilter{"PLAN": {"p1"}}},
			expected: []string{"au1"},
		},
		{
			name:     "range",
			criteria: &repository.AuditCriteria{From: ts(10).UnixMilli(), To: ts(30).UnixMilli()},
			expected: []string{"au2", "au1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := b.Audits().Search(ctx, tt.criteria, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(page.Content))
			assert.Equal(t, int64(len(tt.expected)), page.TotalElements)
		})
	}
}

func TestAuditFindByID(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	_, err := b.Audits().Create(ctx, &model.Audit{ID: "au1", User: "admin", Patch: `[{"op":"add"}]`, CreatedAt: ts(0)})
	require.NoError(t, err)

	found, err := b.Audits().FindByID(ctx, "au1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "admin", found.User)
	assert.Equal(t, `[{"op":"add"}]`, found.Patch)
	assert.Empty(t, found.Properties)
}
