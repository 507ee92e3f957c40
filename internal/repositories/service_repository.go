package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"client_monitoring_backend/internal/models"

	"github.com/lib/pq"
)

// ServiceRepository defines the interface for catalog services and their
// attachment to clients. The catalog itself is global; ownership of the
// target client is enforced by callers before attachment operations.
type ServiceRepository interface {
	GetServices() ([]models.Service, error)
	GetServicesByClientID(clientID int64) ([]models.Service, error)
	AddServiceToClient(executor SQLExecutor, clientID, serviceID int64) (*models.ClientService, error)
	RemoveServiceFromClient(executor SQLExecutor, clientID, serviceID int64) error
	ReplaceClientServices(clientID int64, serviceIDs []int64) error
}

type serviceRepository struct {
	db *sql.DB
}

// NewServiceRepository creates a new instance of ServiceRepository.
func NewServiceRepository(db *sql.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func scanService(row scanner) (*models.Service, error) {
	service := &models.Service{}
	var description sql.NullString
	if err := row.Scan(&service.ID, &service.ServiceName, &description); err != nil {
		return nil, err
	}
	if description.Valid {
		service.Description = &description.String
	}
	return service, nil
}

// GetServices returns the full catalog ordered by name.
func (r *serviceRepository) GetServices() ([]models.Service, error) {
	query := `SELECT id, service_name, description FROM services ORDER BY service_name`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying services: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning service: %v", ErrDatabaseError, err)
		}
		services = append(services, *service)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating service rows: %v", ErrDatabaseError, err)
	}
	return services, nil
}

// GetServicesByClientID returns the catalog services attached to a client.
func (r *serviceRepository) GetServicesByClientID(clientID int64) ([]models.Service, error) {
	query := `SELECT s.id, s.service_name, s.description
	          FROM services s
	          JOIN client_services cs ON s.id = cs.service_id
	          WHERE cs.client_id = $1
	          ORDER BY s.service_name`

	rows, err := r.db.Query(query, clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying services for client %d: %v", ErrDatabaseError, clientID, err)
	}
	defer rows.Close()

	services := []models.Service{}
	for rows.Next() {
		service, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning client service: %v", ErrDatabaseError, err)
		}
		services = append(services, *service)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client service rows: %v", ErrDatabaseError, err)
	}
	return services, nil
}

// AddServiceToClient inserts one join row. An already-attached pair
// surfaces as ErrDuplicateKey via the unique constraint.
func (r *serviceRepository) AddServiceToClient(executor SQLExecutor, clientID, serviceID int64) (*models.ClientService, error) {
	link := &models.ClientService{}
	query := `INSERT INTO client_services (client_id, service_id)
	          VALUES ($1, $2)
	          RETURNING client_id, service_id`

	err := executor.QueryRow(query, clientID, serviceID).Scan(&link.ClientID, &link.ServiceID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return nil, fmt.Errorf("%w: service %d already attached to client %d (constraint: %s)",
					ErrDuplicateKey, serviceID, clientID, pqErr.Constraint)
			}
			if pqErr.Code.Name() == "foreign_key_violation" {
				return nil, ErrNotFound
			}
		}
		return nil, fmt.Errorf("%w: attaching service %d to client %d: %v", ErrDatabaseError, serviceID, clientID, err)
	}
	return link, nil
}

// RemoveServiceFromClient deletes the matching join row. Deleting an
// absent pair is not an error.
func (r *serviceRepository) RemoveServiceFromClient(executor SQLExecutor, clientID, serviceID int64) error {
	query := `DELETE FROM client_services WHERE client_id = $1 AND service_id = $2`
	if _, err := executor.Exec(query, clientID, serviceID); err != nil {
		return fmt.Errorf("%w: detaching service %d from client %d: %v", ErrDatabaseError, serviceID, clientID, err)
	}
	return nil
}

// ReplaceClientServices swaps the client's full service set: all existing
// join rows are deleted, then one row is inserted per ID in the new list.
// Duplicate IDs in the input hit the unique constraint and abort the
// replacement. The whole swap runs in one transaction so a failure cannot
// leave the client with no services.
func (r *serviceRepository) ReplaceClientServices(clientID int64, serviceIDs []int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning service replacement for client %d: %v", ErrDatabaseError, clientID, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM client_services WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("%w: clearing services for client %d: %v", ErrDatabaseError, clientID, err)
	}

	for _, serviceID := range serviceIDs {
		_, err := tx.Exec(`INSERT INTO client_services (client_id, service_id) VALUES ($1, $2)`, clientID, serviceID)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: duplicate service %d for client %d (constraint: %s)",
					ErrDuplicateKey, serviceID, clientID, pqErr.Constraint)
			}
			return fmt.Errorf("%w: attaching service %d to client %d: %v", ErrDatabaseError, serviceID, clientID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing service replacement for client %d: %v", ErrDatabaseError, clientID, err)
	}
	return nil
}
