// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bootstrap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoPortAvailable is returned by [App.Start] when the sequential port
// probe exhausts its range without finding a free port.
var ErrNoPortAvailable = errors.New("no available port in probe range")

// ConfigError represents a configuration validation error with structured
// information. Validation happens once at [New] time, not during request
// handling.
type ConfigError struct {
	// Field is the name of the configuration field that failed validation
	Field string
	// Value is the actual value that was provided (may be nil for missing values)
	Value any
	// Message is a human-readable explanation of the failure
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("configuration error in %s: %s (value: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
}

// ValidationError collects multiple configuration errors so callers see all
// issues at once rather than one at a time.
type ValidationError struct {
	Errors []*ConfigError
}

// Error implements the error interface, listing every collected error.
func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation errors: (no errors)"
	}
	if len(ve.Errors) == 1 {
		return ve.Errors[0].Error()
	}

	var msg strings.Builder
	_, _ = msg.WriteString(fmt.Sprintf("validation errors (%d):", len(ve.Errors)))
	for i, err := range ve.Errors {
		_, _ = msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, err.Error()))
	}
	return msg.String()
}

// Add appends a new ConfigError to the collection.
func (ve *ValidationError) Add(err *ConfigError) {
	ve.Errors = append(ve.Errors, err)
}

// HasErrors returns true if any validation errors were collected.
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

// ToError returns nil when no errors were collected, otherwise the
// ValidationError itself.
func (ve *ValidationError) ToError() error {
	if !ve.HasErrors() {
		return nil
	}
	return ve
}

// newInvalidValueError creates a [ConfigError] for a field holding an
// invalid value.
func newInvalidValueError(field string, value any, message string) *ConfigError {
	return &ConfigError{Field: field, Value: value, Message: message}
}

// newEmptyFieldError creates a [ConfigError] for a required field that was
// left empty.
func newEmptyFieldError(field string) *ConfigError {
	return &ConfigError{Field: field, Message: "must not be empty"}
}
