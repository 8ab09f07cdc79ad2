// utils/email.go
package utils

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService handles sending emails using SendGrid
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		panic("SENDGRID_API_KEY is not set in environment variables")
	}
	sender := os.Getenv("EMAIL_SENDER")
	if sender == "" {
		sender = "hello@taja.com"
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toName, toEmail, subject, htmlContent string) error {
	from := mail.NewEmail(ProjectName(), es.sender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	response, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: sendgrid returned %d", response.StatusCode)
	}
	return nil
}

// SendWelcomeEmail sends the account-created email matching the in-app
// welcome notification.
func (es *EmailService) SendWelcomeEmail(toName, toEmail, title, message string) error {
	htmlContent := fmt.Sprintf(
		"<strong>%s</strong><br><br>%s<br><br>See you on WhatsApp!",
		title,
		message,
	)
	return es.SendEmail(toName, toEmail, title, htmlContent)
}
