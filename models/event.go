// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EntityType names the kind of record an [EntityChanged] event refers to.
type EntityType string

const (
	EntityList         EntityType = "list"
	EntityEntry        EntityType = "entry"
	EntityProfile      EntityType = "profile"
	EntitySharedList   EntityType = "shared_list"
	EntitySubscription EntityType = "subscription"
)

// ChangeAction describes what happened to the entity.
type ChangeAction string

const (
	ActionCreated  ChangeAction = "created"
	ActionUpdated  ChangeAction = "updated"
	ActionDeleted  ChangeAction = "deleted"
	ActionMigrated ChangeAction = "migrated"
)

// EntityChanged is published after a mutation has been committed. Clients use
// it to invalidate cached reads keyed by list, entry or user id.
type EntityChanged struct {
	EntityType EntityType   `json:"entity_type"`
	Action     ChangeAction `json:"action"`

	ID     int64 `json:"id"`
	ListID int64 `json:"list_id,omitempty"`
	UserID int64 `json:"user_id"`

	OccurredAt time.Time `json:"occurred_at"`
}
