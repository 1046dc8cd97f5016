// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppInfo describes a running binary. The server reports it at
// /api/version/ and the client prints its own next to it.
//
// BuildDate and BuildCommit are injected with linker flags and stay empty
// in local builds.
type AppInfo struct {
	Version     string `json:"version"`
	BuildDate   string `json:"build_date,omitempty"`
	BuildCommit string `json:"build_commit,omitempty"`
}
