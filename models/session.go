package models

import "time"

// Session is the per-phone-number conversational state kept by the chatbot.
// The backend does not own the session lifecycle; it only clears the
// needsAccount flag after signup and triggers a refresh.
type Session struct {
	PhoneNumber  string    `json:"phoneNumber"`
	NeedsAccount bool      `json:"needsAccount"`
	IsRegistered bool      `json:"isRegistered"`
	UserType     string    `json:"userType,omitempty"`
	Stage        string    `json:"stage,omitempty"` // current conversation step, chatbot-owned
	LastActivity time.Time `json:"lastActivity"`
}
