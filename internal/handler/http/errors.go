// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the transport layer. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidPathParam is returned when an id in the URL path is not a
	// positive integer.
	ErrInvalidPathParam = errors.New("invalid path parameter")

	ErrInvalidQueryParam = errors.New("invalid query parameter")

	// ErrInvalidUpload is returned when a multipart upload has no "file" part
	// or exceeds the request size limit.
	ErrInvalidUpload = errors.New("invalid file upload")
)
