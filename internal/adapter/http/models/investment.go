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

type OpenInvestmentRequest struct {
	ClientID           uuid.UUID       `json:"clientId"`
	TariffID           uuid.UUID       `json:"tariffId"`
	RecipientAccountID uuid.UUID       `json:"recipientAccountId"`
	PaymentAccountID   uuid.UUID       `json:"paymentAccountId"`
	Amount             decimal.Decimal `json:"amount"`
	TermYears          int             `json:"termYears"`
}

func (r OpenInvestmentRequest) Validate() error {
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
	if !domain.InvestmentAmountInBounds(r.Amount) {
		errs = append(errs, fmt.Sprintf("amount must be between %s and %s",
			domain.MinInvestmentAmount, domain.MaxInvestmentAmount))
	}
	if !domain.InvestmentTermInBounds(r.TermYears) {
		errs = append(errs, fmt.Sprintf("termYears must be between %d and %d",
			domain.MinInvestmentTermYears, domain.MaxInvestmentTermYears))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type InvestmentResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ClientID           uuid.UUID       `json:"clientId"`
	TariffID           uuid.UUID       `json:"tariffId"`
	RecipientAccountID uuid.UUID       `json:"recipientAccountId"`
	PaymentAccountID   uuid.UUID       `json:"paymentAccountId"`
	Amount             decimal.Decimal `json:"amount"`
	MonthlyPayment     decimal.Decimal `json:"monthlyPayment"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	TermYears          int             `json:"termYears"`
	Status             string          `json:"status"`
	Created            time.Time       `json:"created"`
}

func NewInvestmentResponse(investment domain.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:                 investment.ID,
		ClientID:           investment.ClientID,
		TariffID:           investment.TariffID,
		RecipientAccountID: investment.RecipientAccountID,
		PaymentAccountID:   investment.PaymentAccountID,
		Amount:             investment.Amount,
		MonthlyPayment:     investment.MonthlyPayment,
		RemainingAmount:    investment.RemainingAmount,
		TermYears:          investment.TermYears,
		Status:             string(investment.Status),
		Created:            investment.Created,
	}
}

func NewInvestmentResponses(investments []domain.Investment) []InvestmentResponse {
	responses := make([]InvestmentResponse, 0, len(investments))
	for _, investment := range investments {
		responses = append(responses, NewInvestmentResponse(investment))
	}
	return responses
}
