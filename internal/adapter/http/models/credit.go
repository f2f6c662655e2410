package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type OpenCreditRequest struct {
	ClientID           uuid.UUID       `json:"clientId"`
	TariffID           uuid.UUID       `json:"tariffId"`
	RecipientAccountID uuid.UUID       `json:"recipientAccountId"`
	PaymentAccountID   uuid.UUID       `json:"paymentAccountId"`
	Amount             decimal.Decimal `json:"amount"`
	TermMonths         int             `json:"termMonths"`
}

func (r OpenCreditRequest) Validate() error {
	var errs []string

	if r.ClientID == uuid.Nil {
		errs = append(errs, "clientId is required")
	}
	if r.TariffID == uuid.Nil {
		errs = append(errs, "tariffId is required")
	}
	if r.RecipientAccountID == uuid.Nil {
		errs = append(errs, "recipientAccountId is required")
	}
	if r.PaymentAccountID == uuid.Nil {
		errs = append(errs, "paymentAccountId is required")
	}
	if !domain.CreditAmountInBounds(r.Amount) {
		errs = append(errs, fmt.Sprintf("amount must be between %s and %s",
			domain.MinCreditAmount, domain.MaxCreditAmount))
	}
	if !domain.CreditTermInBounds(r.TermMonths) {
		errs = append(errs, fmt.Sprintf("termMonths must be between %d and %d",
			domain.MinCreditTermMonths, domain.MaxCreditTermMonths))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CreditResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ClientID           uuid.UUID       `json:"clientId"`
	TariffID           uuid.UUID       `json:"tariffId"`
	RecipientAccountID uuid.UUID       `json:"recipientAccountId"`
	PaymentAccountID   uuid.UUID       `json:"paymentAccountId"`
	Amount             decimal.Decimal `json:"amount"`
	MonthlyPayment     decimal.Decimal `json:"monthlyPayment"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	TermMonths         int             `json:"termMonths"`
	Status             string          `json:"status"`
	NextPaymentDate    *time.Time      `json:"nextPaymentDate,omitempty"`
	Created            time.Time       `json:"created"`
}

func NewCreditResponse(credit domain.Credit) CreditResponse {
	return CreditResponse{
		ID:                 credit.ID,
		ClientID:           credit.ClientID,
		TariffID:           credit.TariffID,
		RecipientAccountID: credit.RecipientAccountID,
		PaymentAccountID:   credit.PaymentAccountID,
		Amount:             credit.Amount,
		MonthlyPayment:     credit.MonthlyPayment,
		RemainingAmount:    credit.RemainingAmount,
		TermMonths:         credit.TermMonths,
		Status:             string(credit.Status),
		Created:            credit.Created,
	}
}

func NewCreditResponses(credits []domain.Credit) []CreditResponse {
	responses := make([]CreditResponse, 0, len(credits))
	for _, credit := range credits {
		responses = append(responses, NewCreditResponse(credit))
	}
	return responses
}
