package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports process liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"message":   "Client Monitoring API is running",
	})
}

// availableEndpoints is echoed by the catch-all handler so a misrouted
// caller can see the surface at a glance.
var availableEndpoints = []string{
	"GET /health",
	"GET /api/test",
	"GET /api/auth/test",
	"POST /api/auth/register",
	"POST /api/auth/login",
	"GET /api/auth/profile",
	"PUT /api/auth/profile",
	"GET /api/clients",
	"POST /api/clients",
	"GET /api/clients/:id",
	"PUT /api/clients/:id",
	"DELETE /api/clients/:id",
	"POST /api/clients/complete-month",
	"GET /api/services",
	"GET /api/services/client/:clientId",
	"POST /api/services/client/:clientId/:serviceId",
	"DELETE /api/services/client/:clientId/:serviceId",
}

// RouteNotFound handles unmatched routes with a hint of what exists.
func RouteNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":     "Route not found",
		"requested": c.Request.Method + " " + c.Request.URL.Path,
		"available": availableEndpoints,
	})
}

// APITest is a plumbing-check endpoint.
func APITest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API is working!"})
}

// AuthTest is a plumbing-check endpoint for the auth route group.
func AuthTest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Auth routes are working!"})
}
