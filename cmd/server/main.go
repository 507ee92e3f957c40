package main

import (
	"log"
	"os"
	"strings"

	"client_monitoring_backend/internal/database"
	"client_monitoring_backend/internal/router"
	"client_monitoring_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; plain environment variables still apply.
	_ = godotenv.Load()

	utils.InitLogger()
	utils.InitJWT(os.Getenv("JWT_SECRET"))

	dbCfg := database.Config{
		Host:       utils.Getenv("DB_HOST", "localhost"),
		Port:       utils.Getenv("DB_PORT", "5432"),
		User:       utils.Getenv("DB_USER", "client_monitoring_user"),
		Password:   utils.Getenv("DB_PASSWORD", "client_monitoring_password"),
		Name:       utils.Getenv("DB_NAME", "client_monitoring_db"),
		SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
		SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
	}

	db, err := database.Connect(dbCfg)
	if err != nil {
		utils.LogError(err, "Failed to initialize database")
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	utils.LogInfo("Database initialized", map[string]interface{}{"host": dbCfg.Host, "name": dbCfg.Name})

	engine := gin.New()
	engine.Use(utils.GinLogger())
	engine.Use(gin.Recovery())

	// CORS: wide open unless origins are pinned via env.
	corsConfig := cors.DefaultConfig()
	if originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS"); originsEnv != "" {
		corsConfig.AllowOrigins = strings.Split(originsEnv, ",")
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, db)

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
