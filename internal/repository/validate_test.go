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

package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wso2/api-platform/management-repository/internal/model"
)

func TestValidateEntity(t *testing.T) {
	assert.ErrorIs(t, ValidateEntity[model.Event](nil), ErrInvalidArgument)
	assert.ErrorIs(t, ValidateEntity(&model.Event{}), ErrInvalidArgument)
	assert.NoError(t, ValidateEntity(&model.Event{ID: "e1"}))

	assert.ErrorIs(t, ValidateEntity(&model.Media{Type: "image"}), ErrInvalidArgument)
	assert.NoError(t, ValidateEntity(&model.Media{Type: "image", Hash: "h"}))

	assert.ErrorIs(t, ValidateEntity(&model.ApiKey{Plan: "p1"}), ErrInvalidArgument)
}

func TestValidateEntityNamesType(t *testing.T) {
	err := ValidateEntity[model.Plan](nil)
	assert.ErrorContains(t, err, "Plan must not be nil")
}

func TestRequireID(t *testing.T) {
	assert.ErrorIs(t, RequireID(""), ErrInvalidArgument)
	assert.NoError(t, RequireID("x"))
}
