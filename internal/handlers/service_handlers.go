package handlers

import (
	"errors"
	"net/http"

	"client_monitoring_backend/internal/services"
	"client_monitoring_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler holds the catalog service.
type ServiceHandler struct {
	catalogService services.CatalogService
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(cs services.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalogService: cs}
}

// GetServices returns the global service catalog.
func (h *ServiceHandler) GetServices(c *gin.Context) {
	services, err := h.catalogService.ListServices()
	if err != nil {
		utils.LogError(err, "GetServices: Error from catalogService.ListServices")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve services.", err.Error()))
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetClientServices lists the services attached to an owned client.
func (h *ServiceHandler) GetClientServices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	attached, err := h.catalogService.GetClientServices(clientID, userID)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", ""))
			return
		}
		utils.LogError(err, "GetClientServices: Error from catalogService.GetClientServices")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve client services.", err.Error()))
		return
	}
	c.JSON(http.StatusOK, attached)
}

// AttachService links a catalog service to an owned client. Attaching an
// already-attached pair is a conflict.
func (h *ServiceHandler) AttachService(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	link, err := h.catalogService.AttachService(clientID, serviceID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", ""))
		case errors.Is(err, services.ErrServiceAlreadyAttached):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Service already attached to client.", err.Error()))
		default:
			utils.LogError(err, "AttachService: Error from catalogService.AttachService")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to attach service.", err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, link)
}

// DetachService unlinks a service from an owned client. Idempotent.
func (h *ServiceHandler) DetachService(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	if err := h.catalogService.DetachService(clientID, serviceID, userID); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", ""))
			return
		}
		utils.LogError(err, "DetachService: Error from catalogService.DetachService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to detach service.", err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
