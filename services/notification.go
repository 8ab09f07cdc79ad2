package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"taja-backend/models"
	"taja-backend/utils"
)

// NotificationTemplate is one entry in the notification catalog.
type NotificationTemplate struct {
	Title   string
	Message string
	Type    string
}

// WelcomeTemplates holds the per-user-type welcome templates.
type WelcomeTemplates struct {
	Customer NotificationTemplate
	Seller   NotificationTemplate
}

// NotificationInput is the payload for recording a notification.
type NotificationInput struct {
	PhoneNumber string
	UserType    string
	Email       string
	Name        string
	Title       string
	Message     string
	Type        string
	Category    string
}

// NotificationService records in-app notifications and mirrors them to email
// when the recipient has an address on file.
type NotificationService struct {
	Collection *mongo.Collection
	Email      *utils.EmailService
}

// NewNotificationService creates a NotificationService on the given database
func NewNotificationService(client *mongo.Client, database string, email *utils.EmailService) *NotificationService {
	return &NotificationService{
		Collection: client.Database(database).Collection("notifications"),
		Email:      email,
	}
}

// GetWelcomeTemplates returns the welcome notification catalog keyed by user
// type.
func (s *NotificationService) GetWelcomeTemplates() WelcomeTemplates {
	project := utils.ProjectName()
	return WelcomeTemplates{
		Customer: NotificationTemplate{
			Title:   fmt.Sprintf("Welcome to %s!", project),
			Message: fmt.Sprintf("Your %s account is ready. Message us on WhatsApp any time to start shopping.", project),
			Type:    "welcome",
		},
		Seller: NotificationTemplate{
			Title:   fmt.Sprintf("Welcome to %s!", project),
			Message: fmt.Sprintf("Your %s store is live. Add products on WhatsApp and start selling today.", project),
			Type:    "welcome",
		},
	}
}

// CreateNotification records the notification and, best-effort, emails it.
// The email failure is logged but never surfaced: the stored notification is
// the source of truth.
func (s *NotificationService) CreateNotification(ctx context.Context, input NotificationInput) error {
	notification := models.Notification{
		PhoneNumber: input.PhoneNumber,
		UserType:    input.UserType,
		Title:       input.Title,
		Message:     input.Message,
		Type:        input.Type,
		Category:    input.Category,
		Read:        false,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := s.Collection.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	if s.Email != nil && input.Email != "" {
		if err := s.Email.SendWelcomeEmail(input.Name, input.Email, input.Title, input.Message); err != nil {
			log.Printf("Failed to email notification to %s: %v", input.Email, err)
		}
	}
	return nil
}
