package store

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-list-keeper/internal/logger"
	"github.com/MKhiriev/go-list-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fieldsJSON = `[{"id":"1","name":"Name","type":"text","required":true,"order":0},{"id":"2","name":"Cuisine","type":"text","required":false,"order":1}]`

func listRow(rows *sqlmock.Rows, id, userID int64, name string) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, userID, name, "stars", []byte(`{"max":5,"step":0.5}`), []byte(fieldsJSON), "🍜", now, now)
}

func TestCreateList(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewListRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO lists").
		WithArgs(int64(1), "Restaurants", "stars", sqlmock.AnyArg(), sqlmock.AnyArg(), "🍜").
		WillReturnRows(listRow(sqlmock.NewRows(listColumns), 10, 1, "Restaurants"))

	created, err := repo.CreateList(testContext(), models.List{
		UserID:     1,
		Name:       "Restaurants",
		RatingType: models.RatingStars,
		Icon:       "🍜",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, models.RatingStars, created.RatingType)
	assert.Equal(t, models.RatingConfig{Max: 5, Step: 0.5}, created.RatingConfig)
	require.Len(t, created.FieldDefinitions, 2)
	assert.Equal(t, models.FieldTypeText, created.FieldDefinitions[1].Type)
}

func TestCreateList_UnknownUser(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewListRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO lists").WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	_, err := repo.CreateList(testContext(), models.List{UserID: 1, Name: "x", RatingType: models.RatingStars})
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestGetList(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewListRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM lists WHERE id = \\$1").
		WithArgs(int64(10)).
		WillReturnRows(listRow(sqlmock.NewRows(listColumns), 10, 1, "Restaurants"))
	mock.ExpectQuery("SELECT (.+) FROM lists WHERE id = \\$1").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(listColumns))
	mock.ExpectQuery("SELECT (.+) FROM lists WHERE id = \\$1").
		WithArgs(int64(12)).
		WillReturnError(errors.New("boom"))

	list, err := repo.GetList(testContext(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Restaurants", list.Name)

	_, err = repo.GetList(testContext(), 11)
	assert.ErrorIs(t, err, ErrListNotFound)

	_, err = repo.GetList(testContext(), 12)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestGetUserLists(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewListRepository(db, logger.Nop())

	rows := sqlmock.NewRows(listColumns)
	listRow(rows, 1, 5, "Movies")
	listRow(rows, 2, 5, "Books")

	mock.ExpectQuery("SELECT (.+) FROM lists WHERE user_id = \\$1 ORDER BY updated_at DESC").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	lists, err := repo.GetUserLists(testContext(), 5)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "Books", lists[1].Name)
}

func TestGetUserLists_ScanError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewListRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM lists").
		WillReturnRows(sqlmock.NewRows(listColumns).
			AddRow(1, 5, "Movies", "stars", []byte(`not json`), []byte(`[]`), "", time.Now(), time.Now()))

	_, err := repo.GetUserLists(testContext(), 5)
	assert.ErrorIs(t, err, ErrScanningRow)
}

func TestCountLists(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewListRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM lists WHERE user_id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountLists(testContext(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestUpdateList_NotOwned(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewListRepository(db, logger.Nop())

	name := "Renamed"
	mock.ExpectQuery("UPDATE lists SET").
		WithArgs(name, int64(10), int64(99)).
		WillReturnRows(sqlmock.NewRows(listColumns))

	_, err := repo.UpdateList(testContext(), models.ListUpdate{ID: 10, UserID: 99, Name: &name})
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestUpdateListFields(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewListRepository(db, logger.Nop())

	mock.ExpectQuery("UPDATE lists SET field_definitions = \\$1").
		WithArgs(sqlmock.AnyArg(), int64(10)).
		WillReturnRows(listRow(sqlmock.NewRows(listColumns), 10, 1, "Restaurants"))

	list, err := repo.UpdateListFields(testContext(), 10, models.FieldDefinitions{{ID: "2", Name: "Cuisine", Type: models.FieldTypeText}})
	require.NoError(t, err)
	assert.Equal(t, int64(10), list.ID)
}

func TestDeleteList(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewListRepository(db, logger.Nop())

	mock.ExpectExec("DELETE FROM lists WHERE id = \\$1 AND user_id = \\$2").
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM lists").
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM lists").
		WithArgs(int64(10), int64(1)).
		WillReturnError(errors.New("boom"))

	require.NoError(t, repo.DeleteList(testContext(), 10, 1))
	assert.ErrorIs(t, repo.DeleteList(testContext(), 10, 1), ErrListNotFound)
	assert.ErrorIs(t, repo.DeleteList(testContext(), 10, 1), ErrExecutingStatement)
}
