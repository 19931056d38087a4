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

type SubscriptionStatus string

const (
	SubscriptionStatusPending  SubscriptionStatus = "PENDING"
	SubscriptionStatusRejected SubscriptionStatus = "REJECTED"
	SubscriptionStatusAccepted SubscriptionStatus = "ACCEPTED"
	SubscriptionStatusClosed   SubscriptionStatus = "CLOSED"
	SubscriptionStatusPaused   SubscriptionStatus = "PAUSED"
)

// Subscription binds an application to a plan of an API
type Subscription struct {
	ID           string             `json:"id" bson:"_id" yaml:"id" db:"id" validate:"required"`
	API          string             `json:"api" bson:"api" yaml:"api" db:"api"`
	Plan         string             `json:"plan" bson:"plan" yaml:"plan" db:"plan"`
	Application  string             `json:"application" bson:"application" yaml:"application" db:"application"`
	ClientID     string             `json:"clientId,omitempty" bson:"clientId,omitempty" yaml:"clientId" db:"client_id"`
	Request      string             `json:"request,omitempty" bson:"request,omitempty" yaml:"request" db:"request"`
	Reason       string             `json:"reason,omitempty" bson:"reason,omitempty" yaml:"reason" db:"reason"`
	Status       SubscriptionStatus `json:"status" bson:"status" yaml:"status" db:"status"`
	ProcessedBy  string             `json:"processedBy,omitempty" bson:"processedBy,omitempty" yaml:"processedBy" db:"processed_by"`
	SubscribedBy string             `json:"subscribedBy,omitempty" bson:"subscribedBy,omitempty" yaml:"subscribedBy" db:"subscribed_by"`
	StartingAt   *time.Time         `json:"startingAt,omitempty" bson:"startingAt,omitempty" yaml:"startingAt" db:"starting_at"`
	EndingAt     *time.Time         `json:"endingAt,omitempty" bson:"endingAt,omitempty" yaml:"endingAt" db:"ending_at"`
	ProcessedAt  *time.Time         `json:"processedAt,omitempty" bson:"processedAt,omitempty" yaml:"processedAt" db:"processed_at"`
	PausedAt     *time.Time         `json:"pausedAt,omitempty" bson:"pausedAt,omitempty" yaml:"pausedAt" db:"paused_at"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt" yaml:"createdAt" db:"created_at"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt" yaml:"updatedAt" db:"updated_at"`
}

// TableName returns the table name for the Subscription model
func (Subscription) TableName() string {
	return "subscriptions"
}
