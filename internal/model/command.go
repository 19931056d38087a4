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

// Command is a message addressed to gateway or management nodes. Nodes
// acknowledge a command by appending their id to Acknowledgments.
type Command struct {
	ID              string     `json:"id" bson:"_id" yaml:"id" db:"id" validate:"required"`
	EnvironmentID   string     `json:"environmentId" bson:"environmentId" yaml:"environmentId" db:"environment_id"`
	From            string     `json:"from" bson:"from" yaml:"from" db:"from"`
	To              string     `json:"to" bson:"to" yaml:"to" db:"to"`
	Content         string     `json:"content" bson:"content" yaml:"content" db:"content"`
	Tags            []string   `json:"tags" bson:"tags" yaml:"tags"`
	Acknowledgments []string   `json:"acknowledgments" bson:"acknowledgments" yaml:"acknowledgments"`
	ExpiredAt       *time.Time `json:"expiredAt,omitempty" bson:"expiredAt,omitempty" yaml:"expiredAt" db:"expired_at"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt" yaml:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updatedAt" yaml:"updatedAt" db:"updated_at"`
}

// TableName returns the table name for the Command model
func (Command) TableName() string {
	return "commands"
}
