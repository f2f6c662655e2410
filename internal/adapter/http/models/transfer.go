package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type TransferRequest struct {
	ClientID           uuid.UUID       `json:"clientId"`
	SenderAccountID    uuid.UUID       `json:"senderAccountId"`
	RecipientAccountID uuid.UUID       `json:"recipientAccountId"`
	Amount             decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if r.ClientID == uuid.Nil {
		errs = append(errs, "clientId is required")
	}
	if r.SenderAccountID == uuid.Nil {
		errs = append(errs, "senderAccountId is required")
	}
	if r.RecipientAccountID == uuid.Nil {
		errs = append(errs, "recipientAccountId is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransactResponse struct {
	ID                 uuid.UUID       `json:"id"`
	SenderAccountID    uuid.UUID       `json:"senderAccountId"`
	RecipientAccountID uuid.UUID       `json:"recipientAccountId"`
	Amount             decimal.Decimal `json:"amount"`
	Type               string          `json:"type"`
	Created            time.Time       `json:"created"`
}

func NewTransactResponse(transact domain.Transact) TransactResponse {
	return TransactResponse{
		ID:                 transact.ID,
		SenderAccountID:    transact.SenderID,
		RecipientAccountID: transact.RecipientID,
		Amount:             transact.Amount,
		Type:               string(transact.Type),
		Created:            transact.Created,
	}
}

func NewTransactResponses(transacts []domain.Transact) []TransactResponse {
	responses := make([]TransactResponse, 0, len(transacts))
	for _, transact := range transacts {
		responses = append(responses, NewTransactResponse(transact))
	}
	return responses
}
