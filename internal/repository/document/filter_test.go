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

package document

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/wso2/api-platform/management-repository/internal/model"
	"github.com/wso2/api-platform/management-repository/internal/repository"
)

func TestFilterEmptyDocument(t *testing.T) {
	assert.Equal(t, bson.D{}, (&filter{}).doc())
	assert.Equal(t, bson.D{}, (&filter{}).eqIfSet("a", "").in("b", nil).between("c", 0, 0).doc())
}

func TestFilterConditions(t *testing.T) {
	f := (&filter{}).
		eq("a", 1).
		eqIfSet("b", "x").
		in("c", []string{"1", "2"}).
		between("d", 1000, 2000).
		between("e", 0, 3000)

	expected := bson.D{
		{Key: "a", Value: 1},
		{Key: "b", Value: "x"},
		{Key: "c", Value: bson.D{{Key: "$in", Value: []string{"1", "2"}}}},
		{Key: "d", Value: bson.D{
			{Key: "$gte", Value: time.UnixMilli(1000).UTC()},
			{Key: "$lt", Value: time.UnixMilli(2000).UTC()},
		}},
		{Key: "e", Value: bson.D{{Key: "$lt", Value: time.UnixMilli(3000).UTC()}}},
	}
	assert.Equal(t, expected, f.doc())
}

func TestFilterPropertiesInKeyOrder(t *testing.T) {
	f := (&filter{}).properties("properties", repository.PropertyFilter{
		"b":     {"2"},
		"a":     {"1", "3"},
		"empty": nil,
	})

	assert.Equal(t, bson.D{
		{Key: "properties.a", Value: bson.D{{Key: "$in", Value: []string{"1", "3"}}}},
		{Key: "properties.b", Value: bson.D{{Key: "$in", Value: []string{"2"}}}},
	}, f.doc())
}

func TestSortBy(t *testing.T) {
	assert.Equal(t, bson.D{
		{Key: "updatedAt", Value: -1},
		{Key: "name", Value: 1},
	}, sortBy("-updatedAt", "name"))
	assert.Empty(t, sortBy())
}

func TestIgnoreCaseRegexEscapes(t *testing.T) {
	contains := containsIgnoreCase("a.b")
	assert.Equal(t, "i", contains.Options)
	re := regexp.MustCompile("(?i)" + contains.Pattern)
	assert.True(t, re.MatchString("xA.By"))
	assert.False(t, re.MatchString("axb"))

	equals := equalsIgnoreCase("John@Example.com")
	re = regexp.MustCompile("(?i)" + equals.Pattern)
	assert.True(t, re.MatchString("john@example.com"))
	assert.False(t, re.MatchString("john@example.com.evil"))
	assert.False(t, re.MatchString("johnXexample.com"))
}

func TestLatestPipeline(t *testing.T) {
	criteria := &repository.EventCriteria{EnvironmentID: "env1"}

	unpaged := latestPipeline(criteria, model.EventPropertyAPI, nil)
	require.Len(t, unpaged, 6)
	assert.Equal(t, bson.D{{Key: "$match", Value: bson.D{
		{Key: "environmentId", Value: "env1"},
		{Key: "properties.api", Value: bson.D{{Key: "$exists", Value: true}}},
	}}}, unpaged[0])
	assert.Equal(t, "$group", unpaged[1][0].Key)
	group := unpaged[1][0].Value.(bson.D)
	assert.Equal(t, bson.E{Key: "_id", Value: "$properties.api"}, group[0])
	assert.Equal(t, bson.D{{Key: "$sort", Value: eventSort}}, unpaged[5])

	paged := latestPipeline(criteria, model.EventPropertyAPI, &repository.Pageable{PageNumber: 2, PageSize: 5})
	require.Len(t, paged, 8)
	assert.Equal(t, bson.D{{Key: "$skip", Value: int64(10)}}, paged[6])
	assert.Equal(t, bson.D{{Key: "$limit", Value: int64(5)}}, paged[7])
}

func TestCommandFilter(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, bson.D{}, commandFilter(nil, now).doc())

	f := commandFilter(&repository.CommandCriteria{
		EnvironmentID: "env1",
		To:            "node2",
		NotFrom:       "node1",
		NotAckBy:      "node3",
		Tags:          []string{"DATA_TO_INDEX"},
		NotExpired:    true,
	}, now)

	assert.Equal(t, bson.D{
		{Key: "environmentId", Value: "env1"},
		{Key: "to", Value: "node2"},
		{Key: "from", Value: bson.D{{Key: "$ne", Value: "node1"}}},
		{Key: "acknowledgments", Value: bson.D{{Key: "$ne", Value: "node3"}}},
		{Key: "tags", Value: bson.D{{Key: "$all", Value: []string{"DATA_TO_INDEX"}}}},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "expiredAt", Value: nil}},
			bson.D{{Key: "expiredAt", Value: bson.D{{Key: "$gte", Value: now}}}},
		}},
	}, f.doc())
}

func TestUserFilter(t *testing.T) {
	tests := []struct {
		name     string
		criteria *repository.UserCriteria
		expected bson.D
	}{
		{
			name:     "nil criteria",
			expected: bson.D{},
		},
		{
			name:     "statuses",
			criteria: &repository.UserCriteria{OrganizationID: "org1", Statuses: []model.UserStatus{model.UserStatusActive}},
			expected: bson.D{
				{Key: "organizationId", Value: "org1"},
				{Key: "status", Value: bson.D{{Key: "$in", Value: []string{string(model.UserStatusActive)}}}},
			},
		},
		{
			name:     "no status",
			criteria: &repository.UserCriteria{NoStatus: true},
			expected: bson.D{{Key: "$or", Value: bson.A{
				bson.D{{Key: "status", Value: nil}},
				bson.D{{Key: "status", Value: ""}},
			}}},
		},
		{
			name:     "no status or statuses",
			criteria: &repository.UserCriteria{NoStatus: true, Statuses: []model.UserStatus{model.UserStatusPending}},
			expected: bson.D{{Key: "$or", Value: bson.A{
				bson.D{{Key: "status", Value: nil}},
				bson.D{{Key: "status", Value: ""}},
				bson.D{{Key: "status", Value: bson.D{{Key: "$in", Value: []string{string(model.UserStatusPending)}}}}},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, userFilter(tt.criteria).doc())
		})
	}
}

func TestApiKeyFilter(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "revoked", Value: false}}, apiKeyFilter(nil).doc())

	f := apiKeyFilter(&repository.ApiKeyCriteria{
		IncludeRevoked: true,
		Plans:          []string{"p1"},
		ExpireAfter:    1000,
		ExpireBefore:   2000,
	})
	assert.Equal(t, bson.D{
		{Key: "plan", Value: bson.D{{Key: "$in", Value: []string{"p1"}}}},
		{Key: "expireAt", Value: bson.D{
			{Key: "$gte", Value: time.UnixMilli(1000).UTC()},
			{Key: "$lte", Value: time.UnixMilli(2000).UTC()},
		}},
	}, f.doc())
}

func TestAuditFilterReferencesInTypeOrder(t *testing.T) {
	f := auditFilter(&repository.AuditCriteria{
		References: map[model.AuditReferenceType][]string{
			model.AuditReferenceOrganization: {"o1"},
			model.AuditReferenceAPI:          {"a1", "a2"},
			model.AuditReferenceApplication:  nil,
		},
	})

	doc := f.doc()
	require.Len(t, doc, 1)
	assert.Equal(t, "$or", doc[0].Key)
	assert.Equal(t, bson.A{
		bson.D{
			{Key: "referenceType", Value: string(model.AuditReferenceAPI)},
			{Key: "referenceId", Value: bson.D{{Key: "$in", Value: []string{"a1", "a2"}}}},
		},
		bson.D{
			{Key: "referenceType", Value: string(model.AuditReferenceOrganization)},
			{Key: "referenceId", Value: bson.D{{Key: "$in", Value: []string{"o1"}}}},
		},
	}, doc[0].Value)
}

func TestCollectionIndexesCoverEveryCollection(t *testing.T) {
	indexes := collectionIndexes()
	for _, name := range []string{
		collEvents, collAudits, collPlans, collApiKeys, collApplications, collSubscriptions,
		collCommands, collGroups, collUsers, collRoles, collOrganizations,
	} {
		assert.NotEmpty(t, indexes[name], name)
	}
}
