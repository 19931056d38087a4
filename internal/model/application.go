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

type ApplicationStatus string

const (
	ApplicationStatusActive   ApplicationStatus = "ACTIVE"
	ApplicationStatusArchived ApplicationStatus = "ARCHIVED"
)

type ApplicationType string

const (
	ApplicationTypeSimple     ApplicationType = "SIMPLE"
	ApplicationTypeBrowser    ApplicationType = "BROWSER"
	ApplicationTypeWeb        ApplicationType = "WEB"
	ApplicationTypeNative     ApplicationType = "NATIVE"
	ApplicationTypeBackendAPI ApplicationType = "BACKEND_TO_BACKEND"
)

// Application is a consumer registered to subscribe to plans
type Application struct {
	ID                             string            `json:"id" bson:"_id" yaml:"id" db:"id" validate:"required"`
	EnvironmentID                  string            `json:"environmentId" bson:"environmentId" yaml:"environmentId" db:"environment_id"`
	Name                           string            `json:"name" bson:"name" yaml:"name" db:"name"`
	Description                    string            `json:"description" bson:"description" yaml:"description" db:"description"`
	Type                           ApplicationType   `json:"type" bson:"type" yaml:"type" db:"type"`
	Status                         ApplicationStatus `json:"status" bson:"status" yaml:"status" db:"status"`
	Picture                        string            `json:"picture,omitempty" bson:"picture,omitempty" yaml:"picture" db:"picture"`
	DisableMembershipNotifications bool              `json:"disableMembershipNotifications" bson:"disableMembershipNotifications" yaml:"disableMembershipNotifications" db:"disable_membership_notifications"`
	Groups                         []string          `json:"groups" bson:"groups" yaml:"groups"`
	Metadata                       map[string]string `json:"metadata" bson:"metadata" yaml:"metadata"`
	CreatedAt                      time.Time         `json:"createdAt" bson:"createdAt" yaml:"createdAt" db:"created_at"`
	UpdatedAt                      time.Time         `json:"updatedAt" bson:"updatedAt" yaml:"updatedAt" db:"updated_at"`
}

// TableName returns the table name for the Application model
func (Application) TableName() string {
	return "applications"
}
