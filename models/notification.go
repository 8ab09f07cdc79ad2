package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification categories
const (
	NotificationCategorySystem = "system"
	NotificationCategoryOrder  = "order"
)

// Notification is an in-app notification shown in the web dashboard and
// mirrored to email when the user has an address on file.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	UserType    string             `bson:"userType" json:"userType"`
	Title       string             `bson:"title" json:"title"`
	Message     string             `bson:"message" json:"message"`
	Type        string             `bson:"type" json:"type"` // e.g. "welcome"
	Category    string             `bson:"category" json:"category"`
	Read        bool               `bson:"read" json:"read"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
