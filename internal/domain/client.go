package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

type ClientType string

const (
	ClientTypePrivate ClientType = "Private"
	ClientTypeBank    ClientType = "Bank"
)

// Client owns accounts and obligations. Exactly one client of type Bank
// exists; it represents the bank itself and holds the bootstrap account.
type Client struct {
	ID          uuid.UUID
	PhoneNumber string
	Type        ClientType
	PINHash     string
	Created     time.Time
	Modified    time.Time
}

var phonePattern = regexp.MustCompile(`^8\d{10}$`)

func ValidPhoneNumber(phone string) bool {
	return phonePattern.MatchString(phone)
}
