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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wso2/api-platform/management-repository/internal/model"
)

func TestPropertyFilterKeys(t *testing.T) {
	filter := PropertyFilter{"user": {"u"}, "api": {"a"}, "none": nil}
	assert.Equal(t, []string{"api", "user"}, filter.Keys())
	assert.Empty(t, PropertyFilter(nil).Keys())
}

func TestPropertyFilterMatches(t *testing.T) {
	props := map[string]string{"api": "a1", "user": "admin"}

	tests := []struct {
		name     string
		filter   PropertyFilter
		expected bool
	}{
		{name: "empty filter", filter: nil, expected: true},
		{name: "matching value", filter: PropertyFilter{"api": {"a2", "a1"}}, expected: true},
		{name: "other value", filter: PropertyFilter{"api": {"a2"}}, expected: false},
		{name: "missing key", filter: PropertyFilter{"dictionary": {"d"}}, expected: false},
		{name: "all keys match", filter: PropertyFilter{"api": {"a1"}, "user": {"admin"}}, expected: true},
		{name: "one key fails", filter: PropertyFilter{"api": {"a1"}, "user": {"bob"}}, expected: false},
		{name: "key without values is ignored", filter: PropertyFilter{"dictionary": {}}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(props))
		})
	}
}

func TestInRange(t *testing.T) {
	at := Millis(2000)

	assert.True(t, InRange(at, 0, 0))
	assert.True(t, InRange(at, 2000, 0))
	assert.False(t, InRange(at, 2001, 0))
	assert.True(t, InRange(at, 0, 2001))
	assert.False(t, InRange(at, 0, 2000))
	assert.True(t, InRange(at, 1000, 3000))
}

func TestMillisIsUTC(t *testing.T) {
	assert.Equal(t, "UTC", Millis(0).Location().String())
	assert.Equal(t, int64(1500), Millis(1500).UnixMilli())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"PUBLISH_API", "STOP_API"},
		Strings([]model.EventType{model.EventTypePublishAPI, model.EventTypeStopAPI}))
	assert.Equal(t, []string{}, Strings[model.EventType](nil))
}
