package router

import (
	"database/sql"

	"client_monitoring_backend/internal/handlers"
	"client_monitoring_backend/internal/middleware"
	"client_monitoring_backend/internal/repositories"
	"client_monitoring_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services, and handlers onto the engine. The
// database handle is injected from main; nothing here keeps global state.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, db)
	clientService := services.NewClientService(clientRepo, serviceRepo, db)
	catalogService := services.NewCatalogService(serviceRepo, clientRepo, db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(clientService)
	serviceHandler := handlers.NewServiceHandler(catalogService)

	authRequired := middleware.AuthMiddleware(userRepo)

	engine.GET("/health", handlers.HealthCheck)

	api := engine.Group("/api")
	api.GET("/test", handlers.APITest)

	SetupAuthRoutes(api, authHandler, authRequired)
	SetupClientRoutes(api, clientHandler, authRequired)
	SetupServiceRoutes(api, serviceHandler, authRequired)

	engine.NoRoute(handlers.RouteNotFound)
}
