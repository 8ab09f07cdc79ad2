// routes/routes.go
package routes

import (
	"taja-backend/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, userController *controllers.UserController, healthController *controllers.HealthController) {
	router.HandleFunc("/health", healthController.Health).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// User routes. The category routes must be registered before the
	// catch-all {phoneNumber} route.
	api.HandleFunc("/users/all-categories", userController.GetAllStoreCategories).Methods("GET")
	api.HandleFunc("/users/predefined-categories", userController.GetAllPredefinedCategories).Methods("GET")
	api.HandleFunc("/users", userController.CreateOrUpdateUser).Methods("POST")
	api.HandleFunc("/users/{phoneNumber}", userController.GetUser).Methods("GET")

	// Gateway-facing routes
	api.HandleFunc("/contacts/track", userController.TrackContact).Methods("POST")
}
