package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusWaiting   PaymentStatus = "Waiting"
	PaymentStatusConfirmed PaymentStatus = "Confirmed"
	PaymentStatusCancelled PaymentStatus = "Cancelled"
)

// Terminal reports whether the status permits no further transitions.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusConfirmed || s == PaymentStatusCancelled
}

// PaymentCallback describes the side effects owed when a payment reaches a
// terminal status: an optional external notification target, and optional
// back-references to the obligation the payment settles. The three effects
// are independent; any combination may be set.
type PaymentCallback struct {
	URL                    string            `json:"url,omitempty"`
	Headers                map[string]string `json:"headers,omitempty"`
	CreditPaymentHistoryID *uuid.UUID        `json:"credit_payment_history_id,omitempty"`
	CreditID               *uuid.UUID        `json:"credit_id,omitempty"`
	InvestmentID           *uuid.UUID        `json:"investment_id,omitempty"`
}

func (c PaymentCallback) Empty() bool {
	return c.URL == "" && c.CreditID == nil && c.CreditPaymentHistoryID == nil && c.InvestmentID == nil
}

// Payment is a deferred, confirmable transfer. SenderID may stay nil until a
// payer claims it; past PayDate an unconfirmed payment is swept to Cancelled.
type Payment struct {
	ID          uuid.UUID
	SenderID    *uuid.UUID
	RecipientID uuid.UUID
	Amount      decimal.Decimal
	Status      PaymentStatus
	PayDate     time.Time
	Type        TransactType
	Callback    *PaymentCallback
	Created     time.Time
}

// Expired reports whether an unconfirmed payment is past its deadline.
func (p Payment) Expired(now time.Time) bool {
	return p.Status == PaymentStatusWaiting && !now.Before(p.PayDate)
}
