package services

import (
	"client_monitoring_backend/internal/models"
	"client_monitoring_backend/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// Repository mocks shared by the service tests.

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(executor repositories.SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	args := m.Called(executor, user, hashedPassword)
	id, _ := args.Get(0).(int64)
	return id, args.Error(1)
}

func (m *UserRepoMock) FindUserByID(userID int64) (*models.User, error) {
	args := m.Called(userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepoMock) FindUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepoMock) FindUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepoMock) UpdateUserProfile(executor repositories.SQLExecutor, userID int64, email, fullName string) (*models.User, error) {
	args := m.Called(executor, userID, email, fullName)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type ClientRepoMock struct {
	mock.Mock
}

func (m *ClientRepoMock) CreateClient(executor repositories.SQLExecutor, userID int64, clientName string) (*models.Client, error) {
	args := m.Called(executor, userID, clientName)
	client, _ := args.Get(0).(*models.Client)
	return client, args.Error(1)
}

func (m *ClientRepoMock) GetClients(userID int64, showCompleted bool) ([]models.Client, error) {
	args := m.Called(userID, showCompleted)
	clients, _ := args.Get(0).([]models.Client)
	return clients, args.Error(1)
}

func (m *ClientRepoMock) GetClientByID(id, userID int64) (*models.Client, error) {
	args := m.Called(id, userID)
	client, _ := args.Get(0).(*models.Client)
	return client, args.Error(1)
}

func (m *ClientRepoMock) UpdateClient(executor repositories.SQLExecutor, id, userID int64, patch models.ClientPatch) error {
	args := m.Called(executor, id, userID, patch)
	return args.Error(0)
}

func (m *ClientRepoMock) CompleteMonth(executor repositories.SQLExecutor, userID int64) (int64, error) {
	args := m.Called(executor, userID)
	affected, _ := args.Get(0).(int64)
	return affected, args.Error(1)
}

func (m *ClientRepoMock) DeleteClient(executor repositories.SQLExecutor, id, userID int64) error {
	args := m.Called(executor, id, userID)
	return args.Error(0)
}

type ServiceRepoMock struct {
	mock.Mock
}

func (m *ServiceRepoMock) GetServices() ([]models.Service, error) {
	args := m.Called()
	services, _ := args.Get(0).([]models.Service)
	return services, args.Error(1)
}

func (m *ServiceRepoMock) GetServicesByClientID(clientID int64) ([]models.Service, error) {
	args := m.Called(clientID)
	services, _ := args.Get(0).([]models.Service)
	return services, args.Error(1)
}

func (m *ServiceRepoMock) AddServiceToClient(executor repositories.SQLExecutor, clientID, serviceID int64) (*models.ClientService, error) {
	args := m.Called(executor, clientID, serviceID)
	link, _ := args.Get(0).(*models.ClientService)
	return link, args.Error(1)
}

func (m *ServiceRepoMock) RemoveServiceFromClient(executor repositories.SQLExecutor, clientID, serviceID int64) error {
	args := m.Called(executor, clientID, serviceID)
	return args.Error(0)
}

func (m *ServiceRepoMock) ReplaceClientServices(clientID int64, serviceIDs []int64) error {
	args := m.Called(clientID, serviceIDs)
	return args.Error(0)
}
