package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account holds a client's funds under one account tariff. Balances are only
// mutated through ledger postings; the account row itself is never deleted.
type Account struct {
	ID       uuid.UUID
	ClientID uuid.UUID
	TariffID uuid.UUID
	Funds    decimal.Decimal
	Created  time.Time
	Modified time.Time
}
