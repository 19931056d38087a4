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

// Organization is the top-level tenant. HRIDs are human readable aliases
// that may be used in place of the id.
type Organization struct {
	ID          string    `json:"id" bson:"_id" yaml:"id" db:"id" validate:"required"`
	Name        string    `json:"name" bson:"name" yaml:"name" db:"name"`
	Description string    `json:"description" bson:"description" yaml:"description" db:"description"`
	HRIDs       []string  `json:"hrids" bson:"hrids" yaml:"hrids"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" yaml:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt" yaml:"updatedAt" db:"updated_at"`
}

// TableName returns the table name for the Organization model
func (Organization) TableName() string {
	return "organizations"
}
