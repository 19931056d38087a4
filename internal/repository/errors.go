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
	"errors"
	"fmt"
)

// Repository errors shared by every backend
var (
	// ErrNotFound is returned when an update targets an entity that does not exist
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidArgument is returned when a nil or incomplete entity is passed in
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrTechnical wraps any driver or storage failure
	ErrTechnical = errors.New("technical failure")

	// ErrUnknownBackend is returned when the configured repository type has no registered factory
	ErrUnknownBackend = errors.New("unknown repository backend")
)

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidArgumentError checks if an error is an invalid argument error
func IsInvalidArgumentError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsTechnicalError checks if an error is a technical storage error
func IsTechnicalError(err error) bool {
	return errors.Is(err, ErrTechnical)
}

// Technical wraps a storage error with the operation that failed.
// Errors that already carry a repository kind are returned unchanged.
func Technical(operation string, err error) error {
	if err == nil {
		return nil
	}
	if IsNotFoundError(err) || IsInvalidArgumentError(err) || IsTechnicalError(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrTechnical, operation, err)
}

// NotFound builds a not found error naming the entity kind and id
func NotFound(entity, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, entity, id)
}

// InvalidArgument builds an invalid argument error with a reason
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
