package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"minutes-tracker/internal/repo"
)

func newUserServiceWithMock(t *testing.T) (*UserService, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewUserService(repo.NewUserRepo(db)), mock, db
}

func TestRegister(t *testing.T) {
	svc, mock, db := newUserServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("test123", "test@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "max_minutes_per_day"}).
			AddRow(1, "test123", "test@example.com", "hash", nil))

	user, err := svc.Register(context.Background(), "  test123  ", "test@example.com", "secret1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, user.ID)
	assert.Equal(t, "test123", user.Username)
	assert.Nil(t, user.MaxMinutesPerDay)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Validation(t *testing.T) {
	svc, _, db := newUserServiceWithMock(t)
	defer db.Close()

	_, err := svc.Register(context.Background(), "   ", "", "secret1")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(context.Background(), "test123", "", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, mock, db := newUserServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("test123", "", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := svc.Register(context.Background(), "test123", "", "secret1")
	require.ErrorIs(t, err, ErrUserAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate(t *testing.T) {
	svc, mock, db := newUserServiceWithMock(t)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, max_minutes_per_day`).
		WithArgs("test123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "max_minutes_per_day"}).
			AddRow(1, "test123", "", string(hash), nil))

	user, err := svc.Authenticate(context.Background(), "test123", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "test123", user.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, mock, db := newUserServiceWithMock(t)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, max_minutes_per_day`).
		WithArgs("test123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "max_minutes_per_day"}).
			AddRow(1, "test123", "", string(hash), nil))

	_, err = svc.Authenticate(context.Background(), "test123", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	svc, mock, db := newUserServiceWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash, max_minutes_per_day`).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Authenticate(context.Background(), "nobody", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthenticate_BlankCredentials(t *testing.T) {
	svc, _, db := newUserServiceWithMock(t)
	defer db.Close()

	_, err := svc.Authenticate(context.Background(), "", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "test123", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestInfo(t *testing.T) {
	svc, mock, db := newUserServiceWithMock(t)
	defer db.Close()

	limit := int64(480)

	mock.ExpectQuery(`SELECT id, username, email, password_hash, max_minutes_per_day`).
		WithArgs("test123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "max_minutes_per_day"}).
			AddRow(1, "test123", "", "hash", limit))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(w\.minutes\), 0\)`).
		WithArgs("test123", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(145))

	info, err := svc.Info(context.Background(), "test123")
	require.NoError(t, err)
	assert.Equal(t, "test123", info.Username)
	require.NotNil(t, info.MaxMinutesPerDay)
	assert.EqualValues(t, 480, *info.MaxMinutesPerDay)
	assert.EqualValues(t, 145, info.TodaysMinutes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMaxMinutes(t *testing.T) {
	svc, mock, db := newUserServiceWithMock(t)
	defer db.Close()

	limit := int64(300)

	mock.ExpectExec(`UPDATE users SET max_minutes_per_day = \$1 WHERE username = \$2`).
		WithArgs(limit, "test123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.UpdateMaxMinutes(context.Background(), "test123", &limit))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMaxMinutes_Negative(t *testing.T) {
	svc, _, db := newUserServiceWithMock(t)
	defer db.Close()

	bad := int64(-1)
	err := svc.UpdateMaxMinutes(context.Background(), "test123", &bad)
	require.ErrorIs(t, err, ErrValidation)
}
