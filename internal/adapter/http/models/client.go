package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type RegisterClientRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	PIN         string `json:"pin"`
}

func (r RegisterClientRequest) Validate() error {
	var errs []string

	if !domain.ValidPhoneNumber(strings.TrimSpace(r.PhoneNumber)) {
		errs = append(errs, "phoneNumber must be 11 digits starting with 8")
	}
	pin := strings.TrimSpace(r.PIN)
	if len(pin) < 4 || len(pin) > 6 || !digitsOnly(pin) {
		errs = append(errs, "pin must be 4 to 6 digits")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type ClientResponse struct {
	ID          uuid.UUID `json:"id"`
	PhoneNumber string    `json:"phoneNumber"`
	Type        string    `json:"type"`
	Created     time.Time `json:"created"`
}

func NewClientResponse(client domain.Client) ClientResponse {
	return ClientResponse{
		ID:          client.ID,
		PhoneNumber: client.PhoneNumber,
		Type:        string(client.Type),
		Created:     client.Created,
	}
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
