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

type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusRejected UserStatus = "REJECTED"
	UserStatusArchived UserStatus = "ARCHIVED"
)

// User is an account of an organization, authenticated by an identity source
type User struct {
	ID               string     `json:"id" bson:"_id" yaml:"id" db:"id" validate:"required"`
	OrganizationID   string     `json:"organizationId" bson:"organizationId" yaml:"organizationId" db:"organization_id"`
	Source           string     `json:"source" bson:"source" yaml:"source" db:"source"`
	SourceID         string     `json:"sourceId" bson:"sourceId" yaml:"sourceId" db:"source_id"`
	Email            string     `json:"email" bson:"email" yaml:"email" db:"email"`
	Firstname        string     `json:"firstname" bson:"firstname" yaml:"firstname" db:"firstname"`
	Lastname         string     `json:"lastname" bson:"lastname" yaml:"lastname" db:"lastname"`
	Password         string     `json:"-" bson:"password" yaml:"password" db:"password"`
	Picture          string     `json:"picture,omitempty" bson:"picture,omitempty" yaml:"picture" db:"picture"`
	Status           UserStatus `json:"status,omitempty" bson:"status,omitempty" yaml:"status" db:"status"`
	LoginCount       int64      `json:"loginCount" bson:"loginCount" yaml:"loginCount" db:"login_count"`
	LastConnectionAt *time.Time `json:"lastConnectionAt,omitempty" bson:"lastConnectionAt,omitempty" yaml:"lastConnectionAt" db:"last_connection_at"`
	CreatedAt        time.Time  `json:"createdAt" bson:"createdAt" yaml:"createdAt" db:"created_at"`
	UpdatedAt        time.Time  `json:"updatedAt" bson:"updatedAt" yaml:"updatedAt" db:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
