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

type PlanType string

const (
	PlanTypeAPI     PlanType = "API"
	PlanTypeCatalog PlanType = "CATALOG"
)

type PlanValidation string

const (
	PlanValidationAuto   PlanValidation = "AUTO"
	PlanValidationManual PlanValidation = "MANUAL"
)

type PlanSecurity string

const (
	PlanSecurityKeyless PlanSecurity = "KEY_LESS"
	PlanSecurityAPIKey  PlanSecurity = "API_KEY"
	PlanSecurityOAuth2  PlanSecurity = "OAUTH2"
	PlanSecurityJWT     PlanSecurity = "JWT"
)

type PlanStatus string

const (
	PlanStatusStaging    PlanStatus = "STAGING"
	PlanStatusPublished  PlanStatus = "PUBLISHED"
	PlanStatusClosed     PlanStatus = "CLOSED"
	PlanStatusDeprecated PlanStatus = "DEPRECATED"
)

// Plan is a subscription offer attached to an API
type Plan struct {
	ID                 string         `json:"id" bson:"_id" yaml:"id" db:"id" validate:"required"`
	Name               string         `json:"name" bson:"name" yaml:"name" db:"name"`
	Description        string         `json:"description" bson:"description" yaml:"description" db:"description"`
	Type               PlanType       `json:"type" bson:"type" yaml:"type" db:"type"`
	Validation         PlanValidation `json:"validation" bson:"validation" yaml:"validation" db:"validation"`
	Security           PlanSecurity   `json:"security" bson:"security" yaml:"security" db:"security"`
	SecurityDefinition string         `json:"securityDefinition" bson:"securityDefinition" yaml:"securityDefinition" db:"security_definition"`
	Definition         string         `json:"definition" bson:"definition" yaml:"definition" db:"definition"`
	Order              int            `json:"order" bson:"order" yaml:"order" db:"order"`
	API                string         `json:"api" bson:"api" yaml:"api" db:"api"`
	Status             PlanStatus     `json:"status" bson:"status" yaml:"status" db:"status"`
	CommentRequired    bool           `json:"commentRequired" bson:"commentRequired" yaml:"commentRequired" db:"comment_required"`
	CommentMessage     string         `json:"commentMessage" bson:"commentMessage" yaml:"commentMessage" db:"comment_message"`
	SelectionRule      string         `json:"selectionRule" bson:"selectionRule" yaml:"selectionRule" db:"selection_rule"`

	// Tags is an unordered set; Characteristics and ExcludedGroups keep insertion order
	Tags            []string `json:"tags" bson:"tags" yaml:"tags"`
	Characteristics []string `json:"characteristics" bson:"characteristics" yaml:"characteristics"`
	ExcludedGroups  []string `json:"excludedGroups" bson:"excludedGroups" yaml:"excludedGroups"`

	CreatedAt      time.Time  `json:"createdAt" bson:"createdAt" yaml:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" bson:"updatedAt" yaml:"updatedAt" db:"updated_at"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty" bson:"publishedAt,omitempty" yaml:"publishedAt" db:"published_at"`
	ClosedAt       *time.Time `json:"closedAt,omitempty" bson:"closedAt,omitempty" yaml:"closedAt" db:"closed_at"`
	NeedRedeployAt *time.Time `json:"needRedeployAt,omitempty" bson:"needRedeployAt,omitempty" yaml:"needRedeployAt" db:"need_redeploy_at"`
}

// TableName returns the table name for the Plan model
func (Plan) TableName() string {
	return "plans"
}
