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

func TestCreateUser_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	now := time.Now()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("john", "John", "hash").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "john", "John", "hash", now))

	created, err := repo.CreateUser(testContext(), models.User{Login: "john", Name: "John", PasswordHash: "hash"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.UserID)
	assert.Equal(t, "john", created.Login)
	assert.Equal(t, now, created.CreatedAt)
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(testContext(), models.User{Login: "john"})
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
}

func TestCreateUser_DBError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("INSERT INTO users").WillReturnError(errors.New("connection reset"))

	_, err := repo.CreateUser(testContext(), models.User{Login: "john"})
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestFindUserByLogin(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM users WHERE login = \\$1").
		WithArgs("john").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(7, "john", "John", "hash", time.Now()))

	user, err := repo.FindUserByLogin(testContext(), "john")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestFindUserByLogin_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindUserByLogin(testContext(), "ghost")
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}

func TestProfileRepository(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewProfileRepository(db, logger.Nop())
	now := time.Now()

	mock.ExpectQuery("INSERT INTO profiles (.+) ON CONFLICT \\(user_id\\) DO UPDATE").
		WithArgs(int64(3), "Ann", "", "films").
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(3, "Ann", "", "films", now, now))
	mock.ExpectQuery("SELECT (.+) FROM profiles").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(profileColumns))
	mock.ExpectQuery("UPDATE profiles SET avatar_url").
		WithArgs("http://x/a.png", int64(3)).
		WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(3, "Ann", "http://x/a.png", "films", now, now))
	mock.ExpectQuery("INSERT INTO profiles").
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))

	saved, err := repo.UpsertProfile(testContext(), models.Profile{UserID: 3, DisplayName: "Ann", Bio: "films"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", saved.DisplayName)

	_, err = repo.GetProfile(testContext(), 4)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	updated, err := repo.UpdateAvatar(testContext(), 3, "http://x/a.png")
	require.NoError(t, err)
	assert.Equal(t, "http://x/a.png", updated.AvatarURL)

	_, err = repo.UpsertProfile(testContext(), models.Profile{UserID: 99, DisplayName: "x"})
	assert.ErrorIs(t, err, ErrNoUserWasFound)
}
