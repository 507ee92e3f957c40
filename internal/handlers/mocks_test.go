package handlers

import (
	"client_monitoring_backend/internal/middleware"
	"client_monitoring_backend/internal/models"
	"client_monitoring_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// withUser injects an authenticated user the way AuthMiddleware would,
// so handlers can be exercised without real tokens.
func withUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, user)
		c.Set(middleware.ContextUserIDKey, user.ID)
		c.Set(middleware.ContextUsernameKey, user.Username)
		c.Set(middleware.ContextUserRoleKey, user.Role)
	}
}

type ClientServiceMock struct {
	mock.Mock
}

func (m *ClientServiceMock) GetClients(userID int64, showCompleted bool) ([]models.Client, error) {
	args := m.Called(userID, showCompleted)
	clients, _ := args.Get(0).([]models.Client)
	return clients, args.Error(1)
}

func (m *ClientServiceMock) GetClientByID(clientID, userID int64) (*models.Client, error) {
	args := m.Called(clientID, userID)
	client, _ := args.Get(0).(*models.Client)
	return client, args.Error(1)
}

func (m *ClientServiceMock) CreateClient(userID int64, req services.CreateClientRequest) (*models.Client, error) {
	args := m.Called(userID, req)
	client, _ := args.Get(0).(*models.Client)
	return client, args.Error(1)
}

func (m *ClientServiceMock) UpdateClient(clientID, userID int64, req services.UpdateClientRequest) (*models.Client, error) {
	args := m.Called(clientID, userID, req)
	client, _ := args.Get(0).(*models.Client)
	return client, args.Error(1)
}

func (m *ClientServiceMock) CompleteMonth(userID int64) (int64, error) {
	args := m.Called(userID)
	affected, _ := args.Get(0).(int64)
	return affected, args.Error(1)
}

func (m *ClientServiceMock) DeleteClient(clientID, userID int64) error {
	args := m.Called(clientID, userID)
	return args.Error(0)
}

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) RegisterUser(req services.RegisterRequest) (*services.AuthResponse, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*services.AuthResponse)
	return resp, args.Error(1)
}

func (m *AuthServiceMock) LoginUser(req services.LoginRequest) (*services.AuthResponse, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*services.AuthResponse)
	return resp, args.Error(1)
}

func (m *AuthServiceMock) GetUserProfile(userID int64) (*models.User, error) {
	args := m.Called(userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *AuthServiceMock) UpdateProfile(userID int64, req services.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(userID, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type CatalogServiceMock struct {
	mock.Mock
}

func (m *CatalogServiceMock) ListServices() ([]models.Service, error) {
	args := m.Called()
	list, _ := args.Get(0).([]models.Service)
	return list, args.Error(1)
}

func (m *CatalogServiceMock) GetClientServices(clientID, userID int64) ([]models.Service, error) {
	args := m.Called(clientID, userID)
	list, _ := args.Get(0).([]models.Service)
	return list, args.Error(1)
}

func (m *CatalogServiceMock) AttachService(clientID, serviceID, userID int64) (*models.ClientService, error) {
	args := m.Called(clientID, serviceID, userID)
	link, _ := args.Get(0).(*models.ClientService)
	return link, args.Error(1)
}

func (m *CatalogServiceMock) DetachService(clientID, serviceID, userID int64) error {
	args := m.Called(clientID, serviceID, userID)
	return args.Error(0)
}
