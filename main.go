package main

import (
	"log"
	"net/http"
	"os"

	"carrent/config"
	"carrent/controllers"
	"carrent/jobs"
	"carrent/models"
	"carrent/routes"
	"carrent/services"
	"carrent/services/logger"
	"carrent/validator"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func migrateTables() {
	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Rental{},
		&models.Review{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded, falling back to existing environment: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	migrateTables()

	validator.RegisterBindings()

	appLogger := logger.NewDefaultLogger(logger.InfoLevel)

	notificationService := services.NewNotificationService(services.NotificationServiceOptions{
		DB:     config.DB,
		Melody: m,
		Logger: appLogger,
	})
	rentalService := services.NewRentalService(services.RentalServiceOptions{
		DB:       config.DB,
		Logger:   appLogger,
		Notifier: notificationService,
	})
	reviewService := services.NewReviewService(services.ReviewServiceOptions{
		DB:       config.DB,
		Logger:   appLogger,
		Notifier: notificationService,
	})

	controllers.InitServices(rentalService, reviewService, notificationService)

	jobs.SetRentalCloser(rentalService)
	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
