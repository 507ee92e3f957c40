package handlers

import (
	"errors"
	"net/http"

	"client_monitoring_backend/internal/middleware"
	"client_monitoring_backend/internal/repositories"
	"client_monitoring_backend/internal/services"
	"client_monitoring_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ClientHandler holds the client service.
type ClientHandler struct {
	clientService services.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(cs services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: cs}
}

// currentUserID pulls the authenticated user's ID from the gin context.
func currentUserID(c *gin.Context) (int64, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", ""))
		return 0, false
	}
	return user.ID, true
}

// pathID parses a path parameter as an int64, responding 400 on junk.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name+" parameter.", err.Error()))
		return 0, false
	}
	return id, true
}

// GetClients lists the caller's clients. Completed clients are included
// unless showCompleted=false.
func (h *ClientHandler) GetClients(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	showCompleted := c.DefaultQuery("showCompleted", "true") != "false"
	clients, err := h.clientService.GetClients(userID, showCompleted)
	if err != nil {
		utils.LogError(err, "GetClients: Error from clientService.GetClients")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve clients.", err.Error()))
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClientByID returns one owned client. Foreign clients are reported as
// not found.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetClientByID(clientID, userID)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", ""))
			return
		}
		utils.LogError(err, "GetClientByID: Error from clientService.GetClientByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve client.", err.Error()))
		return
	}
	c.JSON(http.StatusOK, client)
}

// CreateClient creates a client with the given name for the caller.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	client, err := h.clientService.CreateClient(userID, req)
	if err != nil {
		if errors.Is(err, services.ErrClientValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "CreateClient: Error from clientService.CreateClient")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create client.", err.Error()))
		return
	}
	c.JSON(http.StatusCreated, client)
}

// UpdateClient applies a partial update to an owned client.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	client, err := h.clientService.UpdateClient(clientID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", ""))
		case errors.Is(err, services.ErrDateFormat):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, repositories.ErrDuplicateKey):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Duplicate service in list.", err.Error()))
		default:
			utils.LogError(err, "UpdateClient: Error from clientService.UpdateClient")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update client.", err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

// CompleteMonth rolls all of the caller's completed clients into a new cycle.
func (h *ClientHandler) CompleteMonth(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	affected, err := h.clientService.CompleteMonth(userID)
	if err != nil {
		utils.LogError(err, "CompleteMonth: Error from clientService.CompleteMonth")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to complete month.", err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "Month completed successfully",
		"clients_affected": affected,
	})
}

// DeleteClient removes an owned client.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	clientID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(clientID, userID); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Client not found.", ""))
			return
		}
		utils.LogError(err, "DeleteClient: Error from clientService.DeleteClient")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete client.", err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
