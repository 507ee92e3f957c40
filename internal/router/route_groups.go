package router

import (
	"client_monitoring_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the authentication routes. Register and login
// are public; profile access requires a valid token.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler, authRequired gin.HandlerFunc) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.GET("/test", handlers.AuthTest)
		authRoutes.POST("/register", authHandler.RegisterUser)
		authRoutes.POST("/login", authHandler.LoginUser)

		protected := authRoutes.Group("")
		protected.Use(authRequired)
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

// SetupClientRoutes sets up the client routes. All of them operate on the
// caller's own clients only.
func SetupClientRoutes(apiGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler, authRequired gin.HandlerFunc) {
	clientRoutes := apiGroup.Group("/clients")
	clientRoutes.Use(authRequired)
	{
		clientRoutes.GET("", clientHandler.GetClients)
		clientRoutes.POST("", clientHandler.CreateClient)
		clientRoutes.POST("/complete-month", clientHandler.CompleteMonth)
		clientRoutes.GET("/:id", clientHandler.GetClientByID)
		clientRoutes.PUT("/:id", clientHandler.UpdateClient)
		clientRoutes.DELETE("/:id", clientHandler.DeleteClient)
	}
}

// SetupServiceRoutes sets up the service catalog and attachment routes.
func SetupServiceRoutes(apiGroup *gin.RouterGroup, serviceHandler *handlers.ServiceHandler, authRequired gin.HandlerFunc) {
	serviceRoutes := apiGroup.Group("/services")
	serviceRoutes.Use(authRequired)
	{
		serviceRoutes.GET("", serviceHandler.GetServices)
		serviceRoutes.GET("/client/:clientId", serviceHandler.GetClientServices)
		serviceRoutes.POST("/client/:clientId/:serviceId", serviceHandler.AttachService)
		serviceRoutes.DELETE("/client/:clientId/:serviceId", serviceHandler.DetachService)
	}
}
