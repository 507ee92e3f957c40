package repositories

import (
	"regexp"
	"testing"
	"time"

	"client_monitoring_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockUserRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewUserRepository(db), mock, func() { db.Close() }
}

func TestCreateUserDefaultsRole(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("anna", "anna@example.com", "hashed", "Anna K", models.DefaultUserRole,
			sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	user := &models.User{Username: "anna", Email: "anna@example.com", FullName: "Anna K"}
	id, err := repo.CreateUser(repo.(*userRepository).db, user, "hashed")
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_username_key", Message: "duplicate key"})

	user := &models.User{Username: "anna", Email: "anna@example.com", FullName: "Anna K"}
	_, err := repo.CreateUser(repo.(*userRepository).db, user, "hashed")
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "users_username_key")
}

func TestFindUserByUsernameIncludesHash(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "full_name", "role", "created_at", "updated_at"}).
		AddRow(3, "anna", "anna@example.com", "$2a$10$hash", "Anna K", "specialist", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("anna").
		WillReturnRows(rows)

	user, err := repo.FindUserByUsername("anna")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.Equal(t, "specialist", user.Role)
}

func TestFindUserByIDNotFound(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindUserByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserProfileReturnsUpdatedRow(t *testing.T) {
	repo, mock, cleanup := newMockUserRepo(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "full_name", "role", "created_at", "updated_at"}).
		AddRow(3, "anna", "new@example.com", "Anna K", "specialist", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE users SET email = $1, full_name = $2")).
		WithArgs("new@example.com", "Anna K", int64(3)).
		WillReturnRows(rows)

	user, err := repo.UpdateUserProfile(repo.(*userRepository).db, 3, "new@example.com", "Anna K")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
}
