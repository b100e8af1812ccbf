// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the input rules for users and posts.
//
// A Validator checks a value and returns FieldErrors listing every failed
// rule, so the transport layer can report each offending field. Callers may
// restrict a run to some fields by naming them.
package validators

import "context"

// Validator validates arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
