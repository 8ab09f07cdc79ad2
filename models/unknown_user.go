package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnknownUser tracks a contact that has messaged the bot without having an
// account yet. Signup marks the record as converted.
type UnknownUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PhoneNumber  string             `bson:"phoneNumber" json:"phoneNumber"`
	FirstSeenAt  time.Time          `bson:"firstSeenAt" json:"firstSeenAt"`
	MessageCount int                `bson:"messageCount" json:"messageCount"`
	Converted    bool               `bson:"converted" json:"converted"`
	ConvertedTo  string             `bson:"convertedTo,omitempty" json:"convertedTo,omitempty"`
	ConvertedAt  *time.Time         `bson:"convertedAt,omitempty" json:"convertedAt,omitempty"`
}
