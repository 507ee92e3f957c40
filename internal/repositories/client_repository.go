package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"client_monitoring_backend/internal/models"

	"github.com/lib/pq"
)

// ClientRepository defines the interface for client-related database
// operations. Every method that touches a specific client row is scoped
// by (id, user_id); a miss on either returns ErrNotFound.
type ClientRepository interface {
	CreateClient(executor SQLExecutor, userID int64, clientName string) (*models.Client, error)
	GetClients(userID int64, showCompleted bool) ([]models.Client, error)
	GetClientByID(id, userID int64) (*models.Client, error)
	UpdateClient(executor SQLExecutor, id, userID int64, patch models.ClientPatch) error
	CompleteMonth(executor SQLExecutor, userID int64) (int64, error)
	DeleteClient(executor SQLExecutor, id, userID int64) error
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

// clientWithServicesQuery aggregates attached service names and IDs per
// client row. The FILTER clause keeps clients without services from
// producing a single NULL array element.
const clientWithServicesQuery = `
	SELECT c.id, c.client_name, c.user_id, c.planned_date, c.previous_month_date,
	       c.is_completed, c.is_lurv_sent, c.phone, c.email, c.notes,
	       c.created_at, c.updated_at,
	       COALESCE(array_agg(s.service_name ORDER BY s.service_name) FILTER (WHERE s.id IS NOT NULL), '{}') AS services,
	       COALESCE(array_agg(s.id ORDER BY s.service_name) FILTER (WHERE s.id IS NOT NULL), '{}') AS service_ids
	FROM clients c
	LEFT JOIN client_services cs ON c.id = cs.client_id
	LEFT JOIN services s ON cs.service_id = s.id`

// scanClient reads one aggregated client row, normalizing nullable columns.
func scanClient(row scanner) (*models.Client, error) {
	client := &models.Client{}
	var plannedDate, previousMonthDate sql.NullTime
	var phone, email, notes sql.NullString

	err := row.Scan(
		&client.ID, &client.ClientName, &client.UserID, &plannedDate, &previousMonthDate,
		&client.IsCompleted, &client.IsLurvSent, &phone, &email, &notes,
		&client.CreatedAt, &client.UpdatedAt,
		pq.Array(&client.Services), pq.Array(&client.ServiceIDs),
	)
	if err != nil {
		return nil, err
	}

	if plannedDate.Valid {
		client.PlannedDate = &plannedDate.Time
	}
	if previousMonthDate.Valid {
		client.PreviousMonthDate = &previousMonthDate.Time
	}
	if phone.Valid {
		client.Phone = &phone.String
	}
	if email.Valid {
		client.Email = &email.String
	}
	if notes.Valid {
		client.Notes = &notes.String
	}
	if client.Services == nil {
		client.Services = []string{}
	}
	if client.ServiceIDs == nil {
		client.ServiceIDs = []int64{}
	}
	return client, nil
}

// CreateClient inserts a new client for the given owner. New clients start
// with empty notes, no dates, and both flags cleared.
func (r *clientRepository) CreateClient(executor SQLExecutor, userID int64, clientName string) (*models.Client, error) {
	client := &models.Client{
		Services:   []string{},
		ServiceIDs: []int64{},
	}
	var phone, email sql.NullString
	var plannedDate, previousMonthDate sql.NullTime
	var notes sql.NullString

	query := `INSERT INTO clients (client_name, user_id, notes)
	          VALUES ($1, $2, '')
	          RETURNING id, client_name, user_id, planned_date, previous_month_date,
	                    is_completed, is_lurv_sent, phone, email, notes, created_at, updated_at`

	err := executor.QueryRow(query, clientName, userID).Scan(
		&client.ID, &client.ClientName, &client.UserID, &plannedDate, &previousMonthDate,
		&client.IsCompleted, &client.IsLurvSent, &phone, &email, &notes,
		&client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: creating client: %v", ErrDatabaseError, err)
	}

	if plannedDate.Valid {
		client.PlannedDate = &plannedDate.Time
	}
	if previousMonthDate.Valid {
		client.PreviousMonthDate = &previousMonthDate.Time
	}
	if phone.Valid {
		client.Phone = &phone.String
	}
	if email.Valid {
		client.Email = &email.String
	}
	if notes.Valid {
		client.Notes = &notes.String
	}
	return client, nil
}

// GetClients retrieves all clients owned by userID, with attached service
// names and IDs aggregated. When showCompleted is false, completed clients
// are filtered out.
func (r *clientRepository) GetClients(userID int64, showCompleted bool) ([]models.Client, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(clientWithServicesQuery)
	queryBuilder.WriteString(" WHERE c.user_id = $1")

	args := []interface{}{userID}
	if !showCompleted {
		queryBuilder.WriteString(" AND c.is_completed = $2")
		args = append(args, false)
	}
	queryBuilder.WriteString(" GROUP BY c.id ORDER BY c.planned_date ASC, c.id ASC")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients for user %d: %v", ErrDatabaseError, userID, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
		}
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// GetClientByID retrieves one client scoped by owner. This is the single
// ownership probe for the client and service paths: a row owned by another
// user is indistinguishable from a missing one.
func (r *clientRepository) GetClientByID(id, userID int64) (*models.Client, error) {
	query := clientWithServicesQuery + `
	WHERE c.id = $1 AND c.user_id = $2
	GROUP BY c.id`

	client, err := scanClient(r.db.QueryRow(query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting client by ID %d: %v", ErrDatabaseError, id, err)
	}
	return client, nil
}

// UpdateClient applies a partial update. Only columns present in the patch
// appear in the SET list; present-but-null values bind SQL NULL. A patch
// with no recognized columns is a no-op. updated_at is refreshed whenever
// at least one column changes.
func (r *clientRepository) UpdateClient(executor SQLExecutor, id, userID int64, patch models.ClientPatch) error {
	var setClauses []string
	var args []interface{}
	argCount := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if patch.PlannedDate.Set {
		var v sql.NullTime
		if patch.PlannedDate.Valid {
			v = sql.NullTime{Time: patch.PlannedDate.Value, Valid: true}
		}
		addClause("planned_date", v)
	}
	if patch.IsCompleted.Set {
		var v sql.NullBool
		if patch.IsCompleted.Valid {
			v = sql.NullBool{Bool: patch.IsCompleted.Value, Valid: true}
		}
		addClause("is_completed", v)
	}
	if patch.IsLurvSent.Set {
		var v sql.NullBool
		if patch.IsLurvSent.Valid {
			v = sql.NullBool{Bool: patch.IsLurvSent.Value, Valid: true}
		}
		addClause("is_lurv_sent", v)
	}
	if patch.Phone.Set {
		var v sql.NullString
		if patch.Phone.Valid {
			v = sql.NullString{String: patch.Phone.Value, Valid: true}
		}
		addClause("phone", v)
	}
	if patch.Email.Set {
		var v sql.NullString
		if patch.Email.Valid {
			v = sql.NullString{String: patch.Email.Value, Valid: true}
		}
		addClause("email", v)
	}
	if patch.Notes.Set {
		var v sql.NullString
		if patch.Notes.Valid {
			v = sql.NullString{String: patch.Notes.Value, Valid: true}
		}
		addClause("notes", v)
	}

	if len(setClauses) == 0 {
		return nil
	}
	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf(
		"UPDATE clients SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(setClauses, ", "), argCount, argCount+1,
	)
	args = append(args, id, userID)

	result, err := executor.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("%w: updating client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for updating client ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteMonth rolls every completed client of userID into a new cycle:
// planned_date is archived into previous_month_date and the planning state
// is reset. Single bulk statement; clients not marked completed stay put.
func (r *clientRepository) CompleteMonth(executor SQLExecutor, userID int64) (int64, error) {
	query := `UPDATE clients SET
	            previous_month_date = planned_date,
	            planned_date = NULL,
	            is_completed = false,
	            is_lurv_sent = false,
	            updated_at = CURRENT_TIMESTAMP
	          WHERE user_id = $1 AND is_completed = true`

	result, err := executor.Exec(query, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: completing month for user %d: %v", ErrDatabaseError, userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: getting rows affected for completing month: %v", ErrDatabaseError, err)
	}
	return rowsAffected, nil
}

// DeleteClient removes a client scoped by owner. Join rows cascade at the
// schema level.
func (r *clientRepository) DeleteClient(executor SQLExecutor, id, userID int64) error {
	query := `DELETE FROM clients WHERE id = $1 AND user_id = $2`
	result, err := executor.Exec(query, id, userID)
	if err != nil {
		return fmt.Errorf("%w: deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting client ID %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
