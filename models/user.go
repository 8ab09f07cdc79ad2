package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User types
const (
	UserTypeCustomer = "customer"
	UserTypeSeller   = "seller"
)

// AddressValidation is the normalized address payload returned by the
// logistics provider for a validated store address.
type AddressValidation struct {
	AddressCode      int     `bson:"address_code" json:"address_code"`
	Address          string  `bson:"address" json:"address"`
	FormattedAddress string  `bson:"formatted_address,omitempty" json:"formatted_address,omitempty"`
	Name             string  `bson:"name,omitempty" json:"name,omitempty"`
	Email            string  `bson:"email,omitempty" json:"email,omitempty"`
	Phone            string  `bson:"phone,omitempty" json:"phone,omitempty"`
	Country          string  `bson:"country,omitempty" json:"country,omitempty"`
	CountryCode      string  `bson:"country_code,omitempty" json:"country_code,omitempty"`
	State            string  `bson:"state,omitempty" json:"state,omitempty"`
	StateCode        string  `bson:"state_code,omitempty" json:"state_code,omitempty"`
	City             string  `bson:"city,omitempty" json:"city,omitempty"`
	CityCode         string  `bson:"city_code,omitempty" json:"city_code,omitempty"`
	PostalCode       string  `bson:"postal_code,omitempty" json:"postal_code,omitempty"`
	Latitude         float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude        float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}

// User represents a customer or seller account. Records are keyed by the
// normalized phone number (messaging suffix stripped).
type User struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PhoneNumber            string             `bson:"phoneNumber" json:"phoneNumber"`
	Name                   string             `bson:"name" json:"name"`
	Email                  string             `bson:"email" json:"email"`
	UserType               string             `bson:"userType" json:"userType"` // "customer" or "seller"
	ProfileImage           string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	StoreName              string             `bson:"storeName,omitempty" json:"storeName,omitempty"`
	StoreDescription       string             `bson:"storeDescription,omitempty" json:"storeDescription,omitempty"`
	StoreAddress           string             `bson:"storeAddress,omitempty" json:"storeAddress,omitempty"`
	StoreCategories        []string           `bson:"storeCategories,omitempty" json:"storeCategories,omitempty"`
	StoreAddressValidation *AddressValidation `bson:"storeAddressValidation,omitempty" json:"storeAddressValidation,omitempty"`
	CreatedAt              time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt              time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// UserUpdate carries the fields written by the provisioning upsert. Zero
// values are skipped so a customer record never gains empty store fields.
type UserUpdate struct {
	Name                   string
	Email                  string
	UserType               string
	ProfileImage           string
	StoreName              string
	StoreDescription       string
	StoreAddress           string
	StoreCategories        []string
	StoreAddressValidation *AddressValidation
}
