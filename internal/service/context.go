package service

import (
	"context"

	"github.com/MKhiriev/go-list-keeper/internal/utils"
	"github.com/MKhiriev/go-list-keeper/models"
)

func userIDFromContext(ctx context.Context) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok || userID <= 0 {
		return 0, ErrNoUserID
	}
	return userID, nil
}

// ownedList fails with ErrForbidden when list belongs to someone else.
func ownedList(list models.List, userID int64) (models.List, error) {
	if list.UserID != userID {
		return models.List{}, ErrForbidden
	}
	return list, nil
}
