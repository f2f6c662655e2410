package models

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type PaymentCallbackRequest struct {
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers,omitempty"`
}

type CreatePaymentRequest struct {
	SenderAccountID    *uuid.UUID              `json:"senderAccountId,omitempty"`
	RecipientAccountID uuid.UUID               `json:"recipientAccountId"`
	Amount             decimal.Decimal         `json:"amount"`
	Type               string                  `json:"type"`
	PayDate            time.Time               `json:"payDate"`
	Callback           *PaymentCallbackRequest `json:"callback,omitempty"`
}

func (r CreatePaymentRequest) Validate() error {
	var errs []string

	if r.RecipientAccountID == uuid.Nil {
		errs = append(errs, "recipientAccountId is required")
	}
	if r.SenderAccountID != nil && *r.SenderAccountID == r.RecipientAccountID {
		errs = append(errs, "senderAccountId and recipientAccountId cannot be the same")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if !domain.TransactType(strings.TrimSpace(r.Type)).Valid() {
		errs = append(errs, "type must be one of Transfer, Purchase, Credit, Investment")
	}
	if r.PayDate.IsZero() {
		errs = append(errs, "payDate is required")
	}
	if r.Callback != nil {
		if parsed, err := url.Parse(strings.TrimSpace(r.Callback.URL)); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errs = append(errs, "callback.url must be an absolute URL")
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type ClaimPaymentRequest struct {
	ClientID        uuid.UUID `json:"clientId"`
	SenderAccountID uuid.UUID `json:"senderAccountId"`
	PIN             string    `json:"pin"`
}

func (r ClaimPaymentRequest) Validate() error {
	var errs []string

	if r.ClientID == uuid.Nil {
		errs = append(errs, "clientId is required")
	}
	if r.SenderAccountID == uuid.Nil {
		errs = append(errs, "senderAccountId is required")
	}
	if strings.TrimSpace(r.PIN) == "" {
		errs = append(errs, "pin is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type ConfirmPaymentRequest struct {
	ClientID uuid.UUID `json:"clientId"`
	PIN      string    `json:"pin"`
}

func (r ConfirmPaymentRequest) Validate() error {
	var errs []string

	if r.ClientID == uuid.Nil {
		errs = append(errs, "clientId is required")
	}
	if strings.TrimSpace(r.PIN) == "" {
		errs = append(errs, "pin is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type PaymentResponse struct {
	ID                 uuid.UUID       `json:"id"`
	SenderAccountID    *uuid.UUID      `json:"senderAccountId,omitempty"`
	RecipientAccountID uuid.UUID       `json:"recipientAccountId"`
	Amount             decimal.Decimal `json:"amount"`
	Status             string          `json:"status"`
	Type               string          `json:"type"`
	PayDate            time.Time       `json:"payDate"`
	Created            time.Time       `json:"created"`
}

func NewPaymentResponse(payment domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                 payment.ID,
		SenderAccountID:    payment.SenderID,
		RecipientAccountID: payment.RecipientID,
		Amount:             payment.Amount,
		Status:             string(payment.Status),
		Type:               string(payment.Type),
		PayDate:            payment.PayDate,
		Created:            payment.Created,
	}
}

func NewPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, NewPaymentResponse(payment))
	}
	return responses
}

type WaitingTotalResponse struct {
	ClientID uuid.UUID       `json:"clientId"`
	Type     string          `json:"type"`
	Total    decimal.Decimal `json:"total"`
}
