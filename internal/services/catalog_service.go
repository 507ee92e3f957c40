package services

import (
	"database/sql"
	"errors"
	"fmt"

	"client_monitoring_backend/internal/models"
	"client_monitoring_backend/internal/repositories"
)

// ErrServiceAlreadyAttached is returned when a (client, service) pair
// already exists.
var ErrServiceAlreadyAttached = errors.New("service already attached to client")

// CatalogService exposes the global service catalog and per-client
// attachments. All client-scoped operations verify ownership through the
// client repository before touching join rows.
type CatalogService interface {
	ListServices() ([]models.Service, error)
	GetClientServices(clientID, userID int64) ([]models.Service, error)
	AttachService(clientID, serviceID, userID int64) (*models.ClientService, error)
	DetachService(clientID, serviceID, userID int64) error
}

type catalogService struct {
	serviceRepo repositories.ServiceRepository
	clientRepo  repositories.ClientRepository
	db          *sql.DB
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(serviceRepo repositories.ServiceRepository, clientRepo repositories.ClientRepository, db *sql.DB) CatalogService {
	return &catalogService{
		serviceRepo: serviceRepo,
		clientRepo:  clientRepo,
		db:          db,
	}
}

func (s *catalogService) ListServices() ([]models.Service, error) {
	services, err := s.serviceRepo.GetServices()
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// verifyClientOwnership resolves the client scoped by owner; a foreign or
// missing client surfaces as ErrClientNotFound.
func (s *catalogService) verifyClientOwnership(clientID, userID int64) error {
	if _, err := s.clientRepo.GetClientByID(clientID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("failed to verify client ownership: %w", err)
	}
	return nil
}

func (s *catalogService) GetClientServices(clientID, userID int64) ([]models.Service, error) {
	if err := s.verifyClientOwnership(clientID, userID); err != nil {
		return nil, err
	}
	services, err := s.serviceRepo.GetServicesByClientID(clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get client services: %w", err)
	}
	return services, nil
}

func (s *catalogService) AttachService(clientID, serviceID, userID int64) (*models.ClientService, error) {
	if err := s.verifyClientOwnership(clientID, userID); err != nil {
		return nil, err
	}
	link, err := s.serviceRepo.AddServiceToClient(s.db, clientID, serviceID)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrServiceAlreadyAttached
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to attach service: %w", err)
	}
	return link, nil
}

// DetachService removes the pair if present. Detaching an absent pair is
// a no-op, not an error.
func (s *catalogService) DetachService(clientID, serviceID, userID int64) error {
	if err := s.verifyClientOwnership(clientID, userID); err != nil {
		return err
	}
	if err := s.serviceRepo.RemoveServiceFromClient(s.db, clientID, serviceID); err != nil {
		return fmt.Errorf("failed to detach service: %w", err)
	}
	return nil
}
