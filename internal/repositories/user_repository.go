package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"client_monitoring_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByID(userID int64) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error) // PasswordHash populated
	FindUserByEmail(email string) (*models.User, error)
	UpdateUserProfile(executor SQLExecutor, userID int64, email, fullName string) (*models.User, error)
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser inserts a new user. The role falls back to the default when
// the caller leaves it empty.
func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	query := `INSERT INTO users (username, email, password_hash, full_name, role, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id`

	currentTime := time.Now()
	role := user.Role
	if role == "" {
		role = models.DefaultUserRole
	}

	var userID int64
	err := executor.QueryRow(
		query,
		user.Username,
		user.Email,
		hashedPassword,
		user.FullName,
		role,
		currentTime,
		currentTime,
	).Scan(&userID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return 0, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return userID, nil
}

// FindUserByID retrieves a user by their ID. The password hash is not selected.
func (r *userRepository) FindUserByID(userID int64) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, username, email, full_name, role, created_at, updated_at
	          FROM users WHERE id = $1`

	err := r.db.QueryRow(query, userID).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}

// FindUserByUsername retrieves a user by username for credential checks.
// The returned model carries the stored password hash; callers must clear
// it before the user leaves the service layer.
func (r *userRepository) FindUserByUsername(username string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, username, email, password_hash, full_name, role, created_at, updated_at
	          FROM users WHERE username = $1`

	err := r.db.QueryRow(query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.FullName, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by username %s: %v", ErrDatabaseError, username, err)
	}
	return user, nil
}

// FindUserByEmail retrieves a user by email. Used for duplicate checks at
// registration; the match is case-sensitive exact, same as the unique index.
func (r *userRepository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, username, email, full_name, role, created_at, updated_at
	          FROM users WHERE email = $1`

	err := r.db.QueryRow(query, email).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by email %s: %v", ErrDatabaseError, email, err)
	}
	return user, nil
}

// UpdateUserProfile overwrites the mutable profile columns and returns the
// updated row.
func (r *userRepository) UpdateUserProfile(executor SQLExecutor, userID int64, email, fullName string) (*models.User, error) {
	user := &models.User{}
	query := `UPDATE users SET email = $1, full_name = $2, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $3
	          RETURNING id, username, email, full_name, role, created_at, updated_at`

	err := executor.QueryRow(query, email, fullName, userID).Scan(
		&user.ID, &user.Username, &user.Email, &user.FullName, &user.Role,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: updating profile for user ID %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}
