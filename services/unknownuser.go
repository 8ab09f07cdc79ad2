package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UnknownUserService tracks contacts that message the bot before signing up.
// The chatbot records them; this backend marks them converted once an
// account exists.
type UnknownUserService struct {
	Collection *mongo.Collection
}

// NewUnknownUserService creates an UnknownUserService on the given database
func NewUnknownUserService(client *mongo.Client, database string) *UnknownUserService {
	return &UnknownUserService{
		Collection: client.Database(database).Collection("unknown_users"),
	}
}

// TrackContact upserts an unknown-contact record and bumps its message count.
func (s *UnknownUserService) TrackContact(ctx context.Context, phoneNumber string) error {
	_, err := s.Collection.UpdateOne(
		ctx,
		bson.M{"phoneNumber": phoneNumber},
		bson.M{
			"$inc":         bson.M{"messageCount": 1},
			"$setOnInsert": bson.M{"firstSeenAt": time.Now().UTC(), "converted": false},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to track contact: %w", err)
	}
	return nil
}

// MarkAsConverted flags a tracked contact as having created an account. A
// phone number that was never tracked is a no-op, not an error.
func (s *UnknownUserService) MarkAsConverted(ctx context.Context, phoneNumber, userType string) error {
	now := time.Now().UTC()
	_, err := s.Collection.UpdateOne(
		ctx,
		bson.M{"phoneNumber": phoneNumber},
		bson.M{"$set": bson.M{
			"converted":   true,
			"convertedTo": userType,
			"convertedAt": now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark contact as converted: %w", err)
	}
	return nil
}
