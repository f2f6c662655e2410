package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Investment is a deposit the bank owes interest on. RemainingAmount is the
// full compounded payout, fixed at creation.
type Investment struct {
	ID                 uuid.UUID
	ClientID           uuid.UUID
	Amount             decimal.Decimal
	TariffID           uuid.UUID
	RecipientAccountID uuid.UUID
	PaymentAccountID   uuid.UUID
	RemainingAmount    decimal.Decimal
	TermYears          int
	MonthlyPayment     decimal.Decimal
	Status             ObligationStatus
	Created            time.Time
	Modified           time.Time
}

const daysPerYear = 365

// NeedsRepayment reports whether the investment has matured. Years are
// approximated as 365 days, so maturity drifts one day past each leap year.
func (i Investment) NeedsRepayment(now time.Time) bool {
	elapsedDays := int(now.Sub(i.Modified) / (24 * time.Hour))
	return elapsedDays >= i.TermYears*daysPerYear
}
