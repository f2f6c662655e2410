package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type OpenAccountRequest struct {
	ClientID uuid.UUID `json:"clientId"`
	TariffID uuid.UUID `json:"tariffId"`
}

func (r OpenAccountRequest) Validate() error {
	var errs []string

	if r.ClientID == uuid.Nil {
		errs = append(errs, "clientId is required")
	}
	if r.TariffID == uuid.Nil {
		errs = append(errs, "tariffId is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	ID       uuid.UUID       `json:"id"`
	ClientID uuid.UUID       `json:"clientId"`
	TariffID uuid.UUID       `json:"tariffId"`
	Funds    decimal.Decimal `json:"funds"`
	Created  time.Time       `json:"created"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:       account.ID,
		ClientID: account.ClientID,
		TariffID: account.TariffID,
		Funds:    account.Funds,
		Created:  account.Created,
	}
}

func NewAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, NewAccountResponse(account))
	}
	return responses
}
