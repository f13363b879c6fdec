package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/config"
	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/internal/routes"
	"github.com/ferdinand528/SAGA-Santa-Catalina-sub000/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment as-is")
	}

	settings := config.Load()
	config.ConnectDB()
	config.ConnectRedis()

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Alumno{},
		&models.PaymentRecord{},
		&models.Actividad{},
	); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	r := gin.Default()
	routes.SetupRoutes(r, settings)

	slog.Info("starting server", "addr", settings.ServerAddr)
	if err := r.Run(settings.ServerAddr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
