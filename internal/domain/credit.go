package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ObligationStatus string

const (
	ObligationStatusActive ObligationStatus = "Active"
	ObligationStatusPaid   ObligationStatus = "Paid"
)

// Credit is a loan the bank extends. Its monthly payment and total remaining
// amount are computed once at creation and never recomputed; the remaining
// amount only decreases when an installment payment is confirmed.
type Credit struct {
	ID                 uuid.UUID
	ClientID           uuid.UUID
	RecipientAccountID uuid.UUID
	PaymentAccountID   uuid.UUID
	Amount             decimal.Decimal
	TariffID           uuid.UUID
	RemainingAmount    decimal.Decimal
	TermMonths         int
	MonthlyPayment     decimal.Decimal
	Status             ObligationStatus
	Created            time.Time
	Modified           time.Time
}

// CreditPaymentHistory anchors the billing day of one active credit. Created
// fixes the day-of-month; Modified marks the last period an installment was
// emitted for. Deleted once the credit is fully paid.
type CreditPaymentHistory struct {
	ID          uuid.UUID
	CreditID    uuid.UUID
	LastPayment time.Time
	Created     time.Time
	Modified    time.Time
}

// PaymentDate returns the next installment due date: the anchored day of
// month in the month after Modified, clamped to that month's last day.
// A December anchor rolls over into January of the following year.
func (h CreditPaymentHistory) PaymentDate() time.Time {
	day := h.Created.Day()
	year := h.Modified.Year()
	month := int(h.Modified.Month()) + 1
	if month > 12 {
		month = 1
		year++
	}

	lastDay := daysInMonth(year, time.Month(month))
	if day > lastDay {
		day = lastDay
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// DueOn reports whether the next installment falls on the given day.
func (h CreditPaymentHistory) DueOn(now time.Time) bool {
	due := h.PaymentDate()
	y1, m1, d1 := due.Date()
	y2, m2, d2 := now.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CreditWithHistory pairs a credit with its billing anchor for sweep runs.
type CreditWithHistory struct {
	Credit  Credit
	History CreditPaymentHistory
}
