// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Profile is the public part of a user account.
type Profile struct {
	UserID      int64     `json:"user_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "profiles"
}

// SharedList publishes a list under a share code.
type SharedList struct {
	ID        int64     `json:"id"`
	ListID    int64     `json:"list_id"`
	UserID    int64     `json:"user_id"`
	ShareCode string    `json:"share_code"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the SharedList model.
func (s SharedList) TableName() string {
	return "shared_lists"
}

// SharedListView is what anonymous readers of a share code receive.
type SharedListView struct {
	List    List    `json:"list"`
	Entries []Entry `json:"entries"`
	Owner   Profile `json:"owner"`
}

// ListSubscription records a user following another user's shared list.
type ListSubscription struct {
	ID           int64     `json:"id"`
	ListID       int64     `json:"list_id"`
	SubscriberID int64     `json:"subscriber_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the ListSubscription model.
func (s ListSubscription) TableName() string {
	return "list_subscriptions"
}

// Upload describes a file pushed to the object store.
type Upload struct {
	// Bucket groups objects, e.g. "icons" or "avatars".
	Bucket string

	// OwnerID is used as the first path segment of the object key.
	OwnerID int64

	FileName    string
	ContentType string
	Data        []byte
}

// StoredObject is the result of an upload.
type StoredObject struct {
	Key       string `json:"key"`
	PublicURL string `json:"public_url"`
}

// CountResponse is returned by count-only queries.
type CountResponse struct {
	Count int64 `json:"count"`
}
