package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"client_monitoring_backend/internal/models"
	"client_monitoring_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceRoutes(cs services.CatalogService, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewServiceHandler(cs)
	r := gin.New()
	group := r.Group("/api/services")
	if user != nil {
		group.Use(withUser(user))
	}
	group.GET("", h.GetServices)
	group.GET("/client/:clientId", h.GetClientServices)
	group.POST("/client/:clientId/:serviceId", h.AttachService)
	group.DELETE("/client/:clientId/:serviceId", h.DetachService)
	return r
}

func TestGetServicesCatalog(t *testing.T) {
	desc := "Monthly bookkeeping"
	cs := new(CatalogServiceMock)
	cs.On("ListServices").Return([]models.Service{
		{ID: 1, ServiceName: "Accounting", Description: &desc},
		{ID: 2, ServiceName: "Audit"},
	}, nil).Once()
	r := setupServiceRoutes(cs, testUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Service
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Accounting", list[0].ServiceName)
	assert.Nil(t, list[1].Description)
}

func TestGetClientServicesForeignClient(t *testing.T) {
	cs := new(CatalogServiceMock)
	cs.On("GetClientServices", int64(8), testUser.ID).Return(nil, services.ErrClientNotFound).Once()
	r := setupServiceRoutes(cs, testUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services/client/8", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttachService(t *testing.T) {
	t.Run("attached", func(t *testing.T) {
		cs := new(CatalogServiceMock)
		cs.On("AttachService", int64(8), int64(2), testUser.ID).
			Return(&models.ClientService{ClientID: 8, ServiceID: 2}, nil).Once()
		r := setupServiceRoutes(cs, testUser)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/services/client/8/2", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var link models.ClientService
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))
		assert.Equal(t, int64(8), link.ClientID)
		assert.Equal(t, int64(2), link.ServiceID)
	})

	t.Run("already attached", func(t *testing.T) {
		cs := new(CatalogServiceMock)
		cs.On("AttachService", int64(8), int64(2), testUser.ID).
			Return(nil, services.ErrServiceAlreadyAttached).Once()
		r := setupServiceRoutes(cs, testUser)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/services/client/8/2", nil))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("foreign client", func(t *testing.T) {
		cs := new(CatalogServiceMock)
		cs.On("AttachService", int64(8), int64(2), testUser.ID).
			Return(nil, services.ErrClientNotFound).Once()
		r := setupServiceRoutes(cs, testUser)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/services/client/8/2", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDetachService(t *testing.T) {
	cs := new(CatalogServiceMock)
	cs.On("DetachService", int64(8), int64(2), testUser.ID).Return(nil).Once()
	r := setupServiceRoutes(cs, testUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/services/client/8/2", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
