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

type RoleScope string

const (
	RoleScopeOrganization RoleScope = "ORGANIZATION"
	RoleScopeEnvironment  RoleScope = "ENVIRONMENT"
	RoleScopeAPI          RoleScope = "API"
	RoleScopeApplication  RoleScope = "APPLICATION"
)

type RoleReferenceType string

const (
	RoleReferenceOrganization RoleReferenceType = "ORGANIZATION"
	RoleReferenceEnvironment  RoleReferenceType = "ENVIRONMENT"
)

// Role grants a set of permissions within a scope. Each permission is an
// encoded integer: permission id * 100 + CRUD bit mask.
type Role struct {
	ID            string            `json:"id" bson:"_id" yaml:"id" db:"id" validate:"required"`
	Name          string            `json:"name" bson:"name" yaml:"name" db:"name"`
	Description   string            `json:"description" bson:"description" yaml:"description" db:"description"`
	Scope         RoleScope         `json:"scope" bson:"scope" yaml:"scope" db:"scope"`
	ReferenceID   string            `json:"referenceId" bson:"referenceId" yaml:"referenceId" db:"reference_id"`
	ReferenceType RoleReferenceType `json:"referenceType" bson:"referenceType" yaml:"referenceType" db:"reference_type"`
	DefaultRole   bool              `json:"defaultRole" bson:"defaultRole" yaml:"defaultRole" db:"default_role"`
	System        bool              `json:"system" bson:"system" yaml:"system" db:"system"`
	Permissions   []int             `json:"permissions" bson:"permissions" yaml:"permissions"`
	CreatedAt     time.Time         `json:"createdAt" bson:"createdAt" yaml:"createdAt" db:"created_at"`
	UpdatedAt     time.Time         `json:"updatedAt" bson:"updatedAt" yaml:"updatedAt" db:"updated_at"`
}

// TableName returns the table name for the Role model
func (Role) TableName() string {
	return "roles"
}
