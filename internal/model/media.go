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

// Media is a binary attachment (logo, picture, documentation image).
// API is empty for media that do not belong to an API.
type Media struct {
	ID        string    `json:"id" db:"id"`
	Type      string    `json:"type" db:"type" validate:"required"`
	SubType   string    `json:"subType" db:"sub_type"`
	FileName  string    `json:"fileName" db:"file_name"`
	Size      int64     `json:"size" db:"size"`
	Hash      string    `json:"hash" db:"hash" validate:"required"`
	API       string    `json:"api,omitempty" db:"api"`
	Data      []byte    `json:"-" db:"data"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// TableName returns the table name for the Media model
func (Media) TableName() string {
	return "media"
}
