package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"client_monitoring_backend/internal/models"
	"client_monitoring_backend/internal/repositories"
	"client_monitoring_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// --- Data Transfer Objects (DTOs) ---

// RegisterRequest DTO
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
}

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest DTO
type UpdateProfileRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// --- AuthService Interface ---
type AuthService interface {
	RegisterUser(req RegisterRequest) (*AuthResponse, error)
	LoginUser(req LoginRequest) (*AuthResponse, error)
	GetUserProfile(userID int64) (*models.User, error)
	UpdateProfile(userID int64, req UpdateProfileRequest) (*models.User, error)
}

// --- authService Implementation ---
type authService struct {
	userRepo repositories.UserRepository
	db       *sql.DB // passed to repositories as the SQLExecutor
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo repositories.UserRepository, db *sql.DB) AuthService {
	return &authService{userRepo: userRepo, db: db}
}

// RegisterUser handles the business logic for user registration. Duplicate
// checks are case-sensitive exact matches, same as the unique indexes.
func (s *authService) RegisterUser(req RegisterRequest) (*AuthResponse, error) {
	if _, err := s.userRepo.FindUserByUsername(req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}

	if _, err := s.userRepo.FindUserByEmail(req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     models.DefaultUserRole,
	}

	createdUserID, err := s.userRepo.CreateUser(s.db, &user, string(hashedPasswordBytes))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// Races with a concurrent registration land here; the constraint
			// name tells the two indexes apart.
			if strings.Contains(err.Error(), "users_email_key") {
				return nil, ErrEmailExists
			}
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	registeredUser, err := s.userRepo.FindUserByID(createdUserID)
	if err != nil {
		return nil, fmt.Errorf("user registered but failed to retrieve details: %w", err)
	}

	token, err := utils.GenerateToken(registeredUser)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	registeredUser.PasswordHash = ""
	return &AuthResponse{
		Message: "Registration successful",
		Token:   token,
		User:    registeredUser,
	}, nil
}

// LoginUser handles user login and token generation. Unknown usernames and
// wrong passwords collapse into the same error so callers cannot enumerate
// accounts.
func (s *authService) LoginUser(req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	user.PasswordHash = ""
	return &AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	}, nil
}

// GetUserProfile retrieves a user's profile by their ID.
func (s *authService) GetUserProfile(userID int64) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to retrieve user profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile overwrites the caller's email and full name.
func (s *authService) UpdateProfile(userID int64, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.UpdateUserProfile(s.db, userID, req.Email, req.FullName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}
