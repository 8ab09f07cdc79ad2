package utils

import (
	"os"
	"strings"
)

// WhatsAppSuffix is the address suffix used by the messaging channel for
// individual contacts.
const WhatsAppSuffix = "@c.us"

// ProjectName returns the product name used in captions, emails and the
// Cloudinary folder. Defaults to "Taja" when PROJECT_NAME is not set.
func ProjectName() string {
	name := os.Getenv("PROJECT_NAME")
	if name == "" {
		name = "Taja"
	}
	return name
}

// NormalizePhoneNumber strips the messaging suffix so user records are keyed
// by the bare phone number.
func NormalizePhoneNumber(phoneNumber string) string {
	return strings.TrimSuffix(phoneNumber, WhatsAppSuffix)
}

// WhatsAppAddress appends the messaging suffix if it is not already present.
func WhatsAppAddress(phoneNumber string) string {
	if strings.HasSuffix(phoneNumber, WhatsAppSuffix) {
		return phoneNumber
	}
	return phoneNumber + WhatsAppSuffix
}
