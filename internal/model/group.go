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

// Group is a set of users sharing default roles on APIs and applications
type Group struct {
	ID                             string    `json:"id" bson:"_id" yaml:"id" db:"id" validate:"required"`
	EnvironmentID                  string    `json:"environmentId" bson:"environmentId" yaml:"environmentId" db:"environment_id"`
	Name                           string    `json:"name" bson:"name" yaml:"name" db:"name"`
	MaxInvitation                  *int      `json:"maxInvitation,omitempty" bson:"maxInvitation,omitempty" yaml:"maxInvitation" db:"max_invitation"`
	LockAPIRole                    bool      `json:"lockApiRole" bson:"lockApiRole" yaml:"lockApiRole" db:"lock_api_role"`
	LockApplicationRole            bool      `json:"lockApplicationRole" bson:"lockApplicationRole" yaml:"lockApplicationRole" db:"lock_application_role"`
	SystemInvitation               bool      `json:"systemInvitation" bson:"systemInvitation" yaml:"systemInvitation" db:"system_invitation"`
	EmailInvitation                bool      `json:"emailInvitation" bson:"emailInvitation" yaml:"emailInvitation" db:"email_invitation"`
	DisableMembershipNotifications bool      `json:"disableMembershipNotifications" bson:"disableMembershipNotifications" yaml:"disableMembershipNotifications" db:"disable_membership_notifications"`
	EventRules                     []string  `json:"eventRules" bson:"eventRules" yaml:"eventRules"`
	CreatedAt                      time.Time `json:"createdAt" bson:"createdAt" yaml:"createdAt" db:"created_at"`
	UpdatedAt                      time.Time `json:"updatedAt" bson:"updatedAt" yaml:"updatedAt" db:"updated_at"`
}

// TableName returns the table name for the Group model
func (Group) TableName() string {
	return "groups"
}
