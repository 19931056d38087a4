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

// AuditReferenceType identifies the kind of resource an audit record belongs to
type AuditReferenceType string

const (
	AuditReferenceOrganization AuditReferenceType = "ORGANIZATION"
	AuditReferenceEnvironment  AuditReferenceType = "ENVIRONMENT"
	AuditReferenceAPI          AuditReferenceType = "API"
	AuditReferenceApplication  AuditReferenceType = "APPLICATION"
)

// Audit records a single change made by a user on a referenced resource
type Audit struct {
	ID            string             `json:"id" bson:"_id" yaml:"id" db:"id" validate:"required"`
	ReferenceID   string             `json:"referenceId" bson:"referenceId" yaml:"referenceId" db:"reference_id"`
	ReferenceType AuditReferenceType `json:"referenceType" bson:"referenceType" yaml:"referenceType" db:"reference_type"`
	User          string             `json:"user" bson:"user" yaml:"user" db:"user"`
	Event         string             `json:"event" bson:"event" yaml:"event" db:"event"`
	Patch         string             `json:"patch" bson:"patch" yaml:"patch" db:"patch"`
	Properties    map[string]string  `json:"properties" bson:"properties" yaml:"properties"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt" yaml:"createdAt" db:"created_at"`
}

// TableName returns the table name for the Audit model
func (Audit) TableName() string {
	return "audits"
}
