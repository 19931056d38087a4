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
	"slices"
	"sort"
	"time"

	"github.com/wso2/api-platform/management-repository/internal/model"
)

// PropertyFilter matches entities by child key/value pairs.
// Distinct keys are ANDed, the values of one key are ORed.
type PropertyFilter map[string][]string

// Keys returns the filter keys in a stable order
func (f PropertyFilter) Keys() []string {
	keys := make([]string, 0, len(f))
	for k, values := range f {
		if len(values) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Matches reports whether props satisfies every key of the filter
func (f PropertyFilter) Matches(props map[string]string) bool {
	for _, key := range f.Keys() {
		v, ok := props[key]
		if !ok || !slices.Contains(f[key], v) {
			return false
		}
	}
	return true
}

// EventCriteria filters events. From and To are epoch milliseconds on updated_at, 0 means unbounded.
type EventCriteria struct {
	From          int64
	To            int64
	EnvironmentID string
	Types         []model.EventType
	Properties    PropertyFilter
}

// AuditCriteria filters audit records. From and To apply to created_at.
type AuditCriteria struct {
	From       int64
	To         int64
	References map[model.AuditReferenceType][]string
	Properties PropertyFilter
	Events     []string
}

// ApiKeyCriteria filters api keys. ExpireAfter and ExpireBefore are inclusive bounds on expire_at.
type ApiKeyCriteria struct {
	IncludeRevoked bool
	Plans          []string
	From           int64
	To             int64
	ExpireAfter    int64
	ExpireBefore   int64
}

// ApplicationCriteria filters applications. Name is a case-insensitive contains match.
type ApplicationCriteria struct {
	IDs            []string
	Name           string
	EnvironmentIDs []string
	Status         model.ApplicationStatus
}

// SubscriptionCriteria filters subscriptions. From and To apply to updated_at.
type SubscriptionCriteria struct {
	From         int64
	To           int64
	ClientID     string
	Plans        []string
	Applications []string
	APIs         []string
	Statuses     []model.SubscriptionStatus
}

// CommandCriteria filters commands. Every tag in Tags must be present.
type CommandCriteria struct {
	NotAckBy      string
	NotFrom       string
	To            string
	EnvironmentID string
	NotExpired    bool
	Tags          []string
}

// UserCriteria filters users. NoStatus selects users without a status.
type UserCriteria struct {
	Statuses       []model.UserStatus
	NoStatus       bool
	OrganizationID string
}

// Millis converts epoch milliseconds to a UTC time
func Millis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// InRange reports whether t falls in the half-open range [from, to), 0 meaning unbounded
func InRange(t time.Time, from, to int64) bool {
	ms := t.UnixMilli()
	if from > 0 && ms < from {
		return false
	}
	if to > 0 && ms >= to {
		return false
	}
	return true
}

// Strings converts a slice of string-like values to plain strings
func Strings[S ~string](values []S) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
