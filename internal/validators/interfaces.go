// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks user input before it reaches storage: list
// names, rating settings and field schemas, entry values against the schema
// of their list, profiles and uploaded images.
//
// Validators return sentinel errors from this package so the HTTP layer can
// map them to 400 responses.
package validators

import "context"

// Validator checks one input value. fields optionally narrows the check to
// the named attributes; validators that do not support partial checks
// ignore it.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
