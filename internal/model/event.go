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

// EventType is the kind of change an event records
type EventType string

const (
	EventTypePublishAPI                 EventType = "PUBLISH_API"
	EventTypeUnpublishAPI               EventType = "UNPUBLISH_API"
	EventTypeStartAPI                   EventType = "START_API"
	EventTypeStopAPI                    EventType = "STOP_API"
	EventTypePublishDictionary          EventType = "PUBLISH_DICTIONARY"
	EventTypeUnpublishDictionary        EventType = "UNPUBLISH_DICTIONARY"
	EventTypeGatewayStarted             EventType = "GATEWAY_STARTED"
	EventTypeGatewayStopped             EventType = "GATEWAY_STOPPED"
	EventTypePublishOrganization        EventType = "PUBLISH_ORGANIZATION"
	EventTypeDebugAPI                   EventType = "DEBUG_API"
	EventTypeAlertNotification          EventType = "ALERT_NOTIFICATION"
	EventTypeApplicationCreatedOrUpdate EventType = "APPLICATION_CREATED_OR_UPDATED"
)

// EventProperty is a well-known key of the Event properties map
type EventProperty string

const (
	EventPropertyAPI          EventProperty = "api"
	EventPropertyDictionary   EventProperty = "dictionary"
	EventPropertyOrganization EventProperty = "organization"
	EventPropertyUser         EventProperty = "user"
	EventPropertyDeployment   EventProperty = "deployment_number"
	EventPropertyOrigin       EventProperty = "origin"
)

// Event is a deployment or lifecycle notification consumed by gateways
type Event struct {
	ID            string            `json:"id" bson:"_id" yaml:"id" db:"id" validate:"required"`
	EnvironmentID string            `json:"environmentId" bson:"environmentId" yaml:"environmentId" db:"environment_id"`
	Type          EventType         `json:"type" bson:"type" yaml:"type" db:"type"`
	Payload       string            `json:"payload" bson:"payload" yaml:"payload" db:"payload"`
	ParentID      string            `json:"parentId,omitempty" bson:"parentId,omitempty" yaml:"parentId" db:"parent_id"`
	Properties    map[string]string `json:"properties" bson:"properties" yaml:"properties"`
	CreatedAt     time.Time         `json:"createdAt" bson:"createdAt" yaml:"createdAt" db:"created_at"`
	UpdatedAt     time.Time         `json:"updatedAt" bson:"updatedAt" yaml:"updatedAt" db:"updated_at"`
}

// TableName returns the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// Property returns the value of a well-known property, or "" when unset
func (e *Event) Property(p EventProperty) string {
	if e.Properties == nil {
		return ""
	}
	return e.Properties[string(p)]
}
