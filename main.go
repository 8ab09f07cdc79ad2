// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"taja-backend/controllers"
	"taja-backend/middleware"
	"taja-backend/models"
	"taja-backend/routes"
	"taja-backend/services"
	"taja-backend/utils"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	// Connect to MongoDB and Redis
	client := utils.ConnectDB()
	defer func() {
		if err = client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()
	redisClient := utils.ConnectRedis()
	defer redisClient.Close()

	// Initialize services
	database := utils.DatabaseName()
	userStore := models.NewUserStore(client, database)
	emailService := utils.NewEmailService()
	shipbubbleService := services.NewShipbubbleService()
	cloudinaryService, err := services.NewCloudinaryService()
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}
	notificationService := services.NewNotificationService(client, database, emailService)
	unknownUserService := services.NewUnknownUserService(client, database)
	sessionManager := services.NewSessionManager(redisClient, userStore)
	whatsappClient := services.NewWhatsAppGatewayClient()

	// Initialize controllers
	userController := controllers.NewUserController(
		userStore,
		shipbubbleService,
		cloudinaryService,
		unknownUserService,
		notificationService,
		sessionManager,
		whatsappClient,
	)
	healthController := controllers.NewHealthController(client)

	// Sweep leftover temp files hourly
	cleanup := services.StartCleanupCron(userController.UploadDir, userController.BannerDir)
	defer cleanup.Stop()

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.LoggingMiddleware)

	// Register routes
	routes.RegisterRoutes(router, userController, healthController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	fmt.Printf("%s backend is running on port %s\n", utils.ProjectName(), port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
