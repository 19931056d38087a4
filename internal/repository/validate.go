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
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateEntity rejects nil entities and entities failing their validate tags
func ValidateEntity[T any](entity *T) error {
	if entity == nil {
		var zero T
		return InvalidArgument("%s must not be nil", reflect.TypeOf(zero).Name())
	}
	if err := validate.Struct(entity); err != nil {
		return InvalidArgument("%v", err)
	}
	return nil
}

// RequireID rejects an empty identity
func RequireID(id string) error {
	if id == "" {
		return InvalidArgument("id must not be empty")
	}
	return nil
}
