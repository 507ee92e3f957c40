package repositories

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockServiceRepo(t *testing.T) (ServiceRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewServiceRepository(db), mock, func() { db.Close() }
}

func TestAddServiceToClientDuplicate(t *testing.T) {
	repo, mock, cleanup := newMockServiceRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO client_services")).
		WithArgs(int64(1), int64(2)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "client_services_client_id_service_id_key"})

	_, err := repo.AddServiceToClient(repo.(*serviceRepository).db, 1, 2)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddServiceToClientReturnsLink(t *testing.T) {
	repo, mock, cleanup := newMockServiceRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO client_services")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"client_id", "service_id"}).AddRow(1, 2))

	link, err := repo.AddServiceToClient(repo.(*serviceRepository).db, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), link.ClientID)
	assert.Equal(t, int64(2), link.ServiceID)
}

func TestRemoveServiceFromClientIdempotent(t *testing.T) {
	repo, mock, cleanup := newMockServiceRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM client_services WHERE client_id = $1 AND service_id = $2")).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// Zero rows deleted is still success.
	err := repo.RemoveServiceFromClient(repo.(*serviceRepository).db, 1, 2)
	assert.NoError(t, err)
}

func TestReplaceClientServicesRunsInTransaction(t *testing.T) {
	repo, mock, cleanup := newMockServiceRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM client_services WHERE client_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO client_services (client_id, service_id) VALUES ($1, $2)")).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO client_services (client_id, service_id) VALUES ($1, $2)")).
		WithArgs(int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.ReplaceClientServices(5, []int64{1, 2})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceClientServicesRollsBackOnDuplicate(t *testing.T) {
	repo, mock, cleanup := newMockServiceRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM client_services WHERE client_id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO client_services")).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO client_services")).
		WithArgs(int64(5), int64(1)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "client_services_client_id_service_id_key"})
	mock.ExpectRollback()

	// Duplicate IDs in the replacement list hit the unique constraint and
	// abort the whole swap; the old set survives the rollback.
	err := repo.ReplaceClientServices(5, []int64{1, 1})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetServicesByClientID(t *testing.T) {
	repo, mock, cleanup := newMockServiceRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "service_name", "description"}).
		AddRow(1, "Audit", "yearly audit").
		AddRow(2, "Consulting", nil)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN client_services cs ON s.id = cs.service_id")).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	services, err := repo.GetServicesByClientID(5)
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "Audit", services[0].ServiceName)
	require.NotNil(t, services[0].Description)
	assert.Nil(t, services[1].Description)
}

func TestGetServicesDatabaseError(t *testing.T) {
	repo, mock, cleanup := newMockServiceRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM services ORDER BY service_name")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetServices()
	assert.ErrorIs(t, err, ErrDatabaseError)
}
