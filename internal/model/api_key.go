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

package model

import (
	"time"
)

// ApiKey is a subscription credential. Its identity is the key value itself.
type ApiKey struct {
	Key          string     `json:"key" bson:"_id" yaml:"key" db:"key" validate:"required"`
	Subscription string     `json:"subscription" bson:"subscription" yaml:"subscription" db:"subscription"`
	Application  string     `json:"application" bson:"application" yaml:"application" db:"application"`
	Plan         string     `json:"plan" bson:"plan" yaml:"plan" db:"plan"`
	ExpireAt     *time.Time `json:"expireAt,omitempty" bson:"expireAt,omitempty" yaml:"expireAt" db:"expire_at"`
	Revoked      bool       `json:"revoked" bson:"revoked" yaml:"revoked" db:"revoked"`
	RevokedAt    *time.Time `json:"revokedAt,omitempty" bson:"revokedAt,omitempty" yaml:"revokedAt" db:"revoked_at"`
	Paused       bool       `json:"paused" bson:"paused" yaml:"paused" db:"paused"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt" yaml:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt" yaml:"updatedAt" db:"updated_at"`

	DaysToExpirationOnLastNotification *int `json:"daysToExpirationOnLastNotification,omitempty" bson:"daysToExpirationOnLastNotification,omitempty" yaml:"daysToExpirationOnLastNotification" db:"days_to_expiration_on_last_notification"`
}

// TableName returns the table name for the ApiKey model
func (ApiKey) TableName() string {
	return "keys"
}

// IsExpired reports whether the key has an expiry in the past relative to now
func (k *ApiKey) IsExpired(now time.Time) bool {
	return k.ExpireAt != nil && !k.ExpireAt.After(now)
}
