package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserStore persists users in the "users" collection. Upsert semantics
// (at most one record per phone number) are delegated to MongoDB.
type MongoUserStore struct {
	Collection *mongo.Collection
}

// NewUserStore creates a MongoUserStore on the given database
func NewUserStore(client *mongo.Client, database string) *MongoUserStore {
	return &MongoUserStore{
		Collection: client.Database(database).Collection("users"),
	}
}

// Upsert creates or updates the user keyed by normalized phone number and
// returns the persisted record. Only non-zero fields are written, so an
// update never blanks out fields the request did not carry.
func (s *MongoUserStore) Upsert(ctx context.Context, phoneNumber string, update UserUpdate) (*User, error) {
	set := bson.M{
		"name":      update.Name,
		"email":     update.Email,
		"userType":  update.UserType,
		"updatedAt": time.Now().UTC(),
	}
	if update.ProfileImage != "" {
		set["profileImage"] = update.ProfileImage
	}
	if update.StoreName != "" {
		set["storeName"] = update.StoreName
	}
	if update.StoreDescription != "" {
		set["storeDescription"] = update.StoreDescription
	}
	if update.StoreAddress != "" {
		set["storeAddress"] = update.StoreAddress
	}
	if len(update.StoreCategories) > 0 {
		set["storeCategories"] = update.StoreCategories
	}
	if update.StoreAddressValidation != nil {
		set["storeAddressValidation"] = update.StoreAddressValidation
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var user User
	err := s.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"phoneNumber": phoneNumber},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"createdAt": time.Now().UTC()},
		},
		opts,
	).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPhone returns the user for a normalized phone number, or nil when no
// record exists.
func (s *MongoUserStore) FindByPhone(ctx context.Context, phoneNumber string) (*User, error) {
	var user User
	err := s.Collection.FindOne(ctx, bson.M{"phoneNumber": phoneNumber}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DistinctSellerCategories returns the distinct storeCategories values across
// seller records that have at least one category. MongoDB flattens array
// fields, but nested arrays from legacy records are flattened here too.
func (s *MongoUserStore) DistinctSellerCategories(ctx context.Context) ([]string, error) {
	filter := bson.M{
		"userType":        UserTypeSeller,
		"storeCategories": bson.M{"$exists": true, "$ne": bson.A{}},
	}
	values, err := s.Collection.Distinct(ctx, "storeCategories", filter)
	if err != nil {
		return nil, err
	}

	var categories []string
	for _, v := range values {
		switch val := v.(type) {
		case string:
			categories = append(categories, val)
		case primitive.A:
			for _, inner := range val {
				if str, ok := inner.(string); ok {
					categories = append(categories, str)
				}
			}
		}
	}
	return categories, nil
}
