package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"client_monitoring_backend/internal/models"
	"client_monitoring_backend/internal/repositories"
)

// --- Custom Service Errors for Client ---
var (
	ErrClientNotFound   = errors.New("client not found or access denied")
	ErrClientValidation = errors.New("client data validation error")
	ErrDateFormat       = errors.New("invalid date format, please use YYYY-MM-DD")
)

// --- Client DTOs ---

// CreateClientRequest DTO
type CreateClientRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}

// UpdateClientRequest is the partial-update payload. Every field is an
// Optional: a key left out of the JSON leaves the column untouched, an
// explicit null clears it. Services, when present, fully replaces the
// attached service set.
type UpdateClientRequest struct {
	PlannedDate models.Optional[string]  `json:"planned_date"` // YYYY-MM-DD
	IsCompleted models.Optional[bool]    `json:"is_completed"`
	IsLurvSent  models.Optional[bool]    `json:"is_lurv_sent"`
	Phone       models.Optional[string]  `json:"phone"`
	Email       models.Optional[string]  `json:"email"`
	Notes       models.Optional[string]  `json:"notes"`
	Services    models.Optional[[]int64] `json:"services"`
}

// --- ClientService Interface ---
type ClientService interface {
	GetClients(userID int64, showCompleted bool) ([]models.Client, error)
	GetClientByID(clientID, userID int64) (*models.Client, error)
	CreateClient(userID int64, req CreateClientRequest) (*models.Client, error)
	UpdateClient(clientID, userID int64, req UpdateClientRequest) (*models.Client, error)
	CompleteMonth(userID int64) (int64, error)
	DeleteClient(clientID, userID int64) error
}

// --- clientService Implementation ---
type clientService struct {
	clientRepo  repositories.ClientRepository
	serviceRepo repositories.ServiceRepository
	db          *sql.DB
}

// NewClientService creates a new instance of ClientService.
func NewClientService(clientRepo repositories.ClientRepository, serviceRepo repositories.ServiceRepository, db *sql.DB) ClientService {
	return &clientService{
		clientRepo:  clientRepo,
		serviceRepo: serviceRepo,
		db:          db,
	}
}

// dateFormats accepted for planned_date payload values.
var dateFormats = []string{"2006-01-02", time.RFC3339}

func parsePlannedDate(value string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrDateFormat
}

func (s *clientService) GetClients(userID int64, showCompleted bool) ([]models.Client, error) {
	clients, err := s.clientRepo.GetClients(userID, showCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to get clients: %w", err)
	}
	return clients, nil
}

func (s *clientService) GetClientByID(clientID, userID int64) (*models.Client, error) {
	client, err := s.clientRepo.GetClientByID(clientID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client by ID: %w", err)
	}
	return client, nil
}

func (s *clientService) CreateClient(userID int64, req CreateClientRequest) (*models.Client, error) {
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrClientValidation)
	}

	client, err := s.clientRepo.CreateClient(s.db, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

// UpdateClient applies a partial update to an owned client. Ownership is
// checked before any mutation. When the services list is present it is
// fully replaced in its own transaction.
func (s *clientService) UpdateClient(clientID, userID int64, req UpdateClientRequest) (*models.Client, error) {
	current, err := s.clientRepo.GetClientByID(clientID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client for update: %w", err)
	}

	patch := models.ClientPatch{
		IsCompleted: req.IsCompleted,
		IsLurvSent:  req.IsLurvSent,
		Phone:       req.Phone,
		Email:       req.Email,
		Notes:       req.Notes,
	}
	if req.PlannedDate.Set {
		if req.PlannedDate.Valid {
			parsed, err := parsePlannedDate(req.PlannedDate.Value)
			if err != nil {
				return nil, err
			}
			patch.PlannedDate = models.NewOptional(parsed)
		} else {
			patch.PlannedDate = models.NullOptional[time.Time]()
		}
	}

	// No recognized column and no service list: hand back the client as-is.
	if patch.IsEmpty() && !req.Services.Set {
		return current, nil
	}

	if !patch.IsEmpty() {
		if err := s.clientRepo.UpdateClient(s.db, clientID, userID, patch); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrClientNotFound
			}
			return nil, fmt.Errorf("failed to update client: %w", err)
		}
	}

	// A present-but-null services key is ignored, matching the column
	// semantics only for actual lists.
	if req.Services.Set && req.Services.Valid {
		if err := s.serviceRepo.ReplaceClientServices(clientID, req.Services.Value); err != nil {
			return nil, fmt.Errorf("failed to replace client services: %w", err)
		}
	}

	return s.GetClientByID(clientID, userID)
}

// CompleteMonth rolls all completed clients of the caller into a new
// cycle. Returns the number of clients affected.
func (s *clientService) CompleteMonth(userID int64) (int64, error) {
	affected, err := s.clientRepo.CompleteMonth(s.db, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to complete month: %w", err)
	}
	return affected, nil
}

func (s *clientService) DeleteClient(clientID, userID int64) error {
	if err := s.clientRepo.DeleteClient(s.db, clientID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}
