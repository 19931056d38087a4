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

func seedUsers(t *testing.T, b *Backend) {
	t.Helper()
	users := []*model.User{
		{ID: "u1", OrganizationID: "o1", Source: "memory", SourceID: "U1-SRC", Email: "Ada@Example.com",
			Firstname: "Ada", Lastname: "Adams", Status: model.UserStatusActive, CreatedAt: ts(0), UpdatedAt: ts(0)},
		{ID: "u2", OrganizationID: "o1", Source: "ldap", SourceID: "u2", Email: "bo@example.com",
			Firstname: "Bo", Lastname: "Brown", CreatedAt: ts(0), UpdatedAt: ts(0)},
		{ID: "u3", OrganizationID: "o2", Source: "memory", SourceID: "u3", Email: "cy@example.com",
			Firstname: "Cy", Lastname: "Clark", Status: model.UserStatusPending, CreatedAt: ts(0), UpdatedAt: ts(0)},
	}
	for _, u := range users {
		_, err := b.Users().Create(context.Background(), u)
		require.NoError(t, err)
	}
}

func userIDs(users []*model.User) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func TestUserFinders(t *testing.T) {
	b := newTestBackend(t)
	seedUsers(t, b)
	ctx := context.Background()

	byEmail, err := b.Users().FindByEmail(ctx, "ada@example.COM", "o1")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "u1", byEmail.ID)

	otherOrg, err := b.Users().FindByEmail(ctx, "ada@example.com", "o2")
	require.NoError(t, err)
	assert.Nil(t, otherOrg)

	bySource, err := b.Users().FindBySource(ctx, "memory", "u1-src", "o1")
	require.NoError(t, err)
	require.NotNil(t, bySource)
	assert.Equal(t, "u1", bySource.ID)

	byIDs, err := b.Users().FindByIDs(ctx, []string{"u3", "u1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u3"}, userIDs(byIDs))
}

func TestUserSearch(t *testing.T) {
	b := newTestBackend(t)
	seedUsers(t, b)
	ctx := context.Background()

	tests := []struct {
		name     string
		criteria *repository.UserCriteria
		expected []string
	}{
		{name: "all", expected: []string{"u1", "u2", "u3"}},
		{name: "organization", criteria: &repository.UserCriteria{OrganizationID: "o1"}, expected: []string{"u1", "u2"}},
		{name: "no status", criteria: &repository.UserCriteria{NoStatus: true}, expected: []string{"u2"}},
		{
			name:     "statuses",
			criteria: &repository.UserCriteria{Statuses: []model.UserStatus{model.UserStatusActive, model.UserStatusPending}},
			expected: []string{"u1", "u3"},
		},
		{
			name:     "no status or given statuses",
			criteria: &repository.UserCriteria{NoStatus: true, Statuses: []model.UserStatus{model.UserStatusActive}},
			expected: []string{"u1", "u2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := b.Users().Search(ctx, tt.criteria, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, userIDs(page.Content))
		})
	}
}

func TestUserSearchPagesInDatabase(t *testing.T) {
	b := newTestBackend(t)
	seedUsers(t, b)

	page, err := b.Users().Search(context.Background(), nil, &repository.Pageable{PageNumber: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"u3"}, userIDs(page.Content))
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 1, page.PageElements)
}

func TestUserUpdateKeepsLoginData(t *testing.T) {
	b := newTestBackend(t)
	seedUsers(t, b)
	ctx := context.Background()

	user, err := b.Users().FindByID(ctx, "u2")
	require.NoError(t, err)
	last := ts(60)
	user.LoginCount = 3
	user.LastConnectionAt = &last
	user.Status = model.UserStatusActive

	updated, err := b.Users().Update(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated.LoginCount)
	require.NotNil(t, updated.LastConnectionAt)
	assert.True(t, last.Equal(*updated.LastConnectionAt))
	assert.Equal(t, model.UserStatusActive, updated.Status)
}
