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

func TestCommandSearch(t *testing.T) {
	b := newTestBackend(t)
	b.commands.now = func() time.Time { return ts(100) }
	ctx := context.Background()

	expired := ts(5)
	later := ts(200)
	commands := []*model.Command{
		{ID: "c1", EnvironmentID: "DEFAULT", From: "node1", To: "MANAGEMENT", Content: "{}",
			Tags: []string{"DATA_TO_INDEX"}, Acknowledgments: []string{"node2"}, CreatedAt: ts(0), UpdatedAt: ts(10)},
		{ID: "c2", EnvironmentID: "DEFAULT", From: "node2", To: "MANAGEMENT", Content: "{}",
			Tags: []string{"DATA_TO_INDEX", "SUBSCRIPTION_FAILURE"}, ExpiredAt: &expired, CreatedAt: ts(0), UpdatedAt: ts(20)},
		{ID: "c3", EnvironmentID: "OTHER", From: "node1", To: "GATEWAY", Content: "{}",
			Tags: []string{"SUBSCRIPTION_FAILURE"}, ExpiredAt: &later, CreatedAt: ts(0), UpdatedAt: ts(30)},
	}
	for _, c := range commands {
		_, err := b.Commands().Create(ctx, c)
		require.NoError(t, err)
	}

	ids := func(list []*model.Command) []string {
		out := make([]string, len(list))
		for i, c := range list {
			out[i] = c.ID
		}
		return out
	}

	tests := []struct {
		name     string
		criteria *repository.CommandCriteria
		expected []string
	}{
		{name: "all", expected: []string{"c3", "c2", "c1"}},
		{name: "environment", criteria: &repository.CommandCriteria{EnvironmentID: "DEFAULT"}, expected: []string{"c2", "c1"}},
		{name: "to", criteria: &repository.CommandCriteria{To: "GATEWAY"}, expected: []string{"c3"}},
		{name: "not from", criteria: &repository.CommandCriteria{NotFrom: "node1"}, expected: []string{"c2"}},
		{name: "not acknowledged by", criteria: &repository.CommandCriteria{NotAckBy: "node2"}, expected: []string{"c3", "c2"}},
		{name: "not expired", criteria: &repository.CommandCriteria{NotExpired: true}, expected: []string{"c3", "c1"}},
		{name: "every tag must match", criteria: &repository.CommandCriteria{Tags: []string{"DATA_TO_INDEX", "SUBSCRIPTION_FAILURE"}}, expected: []string{"c2"}},
		{name: "single tag", criteria: &repository.CommandCriteria{Tags: []string{"DATA_TO_INDEX"}}, expected: []string{"c2", "c1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := b.Commands().Search(ctx, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(list))
		})
	}
}

func TestCommandAcknowledge(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()
	command := &model.Command{ID: "c1", From: "node1", To: "MANAGEMENT", Tags: []string{"b", "a"}, CreatedAt: ts(0), UpdatedAt: ts(0)}
	_, err := b.Commands().Create(ctx, command)
	require.NoError(t, err)

	command.Acknowledgments = []string{"node2", "node3"}
	command.UpdatedAt = ts(1)
	updated, err := b.Commands().Update(ctx, command)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, updated.Tags)
	assert.Equal(t, []string{"node2", "node3"}, updated.Acknowledgments)
	assert.Nil(t, updated.ExpiredAt)
}
