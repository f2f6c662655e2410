package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TariffKind string

const (
	TariffKindAccount    TariffKind = "Account"
	TariffKindCredit     TariffKind = "Credit"
	TariffKindInvestment TariffKind = "Investment"
)

// Tariff is seeded reference data: a rate and category for one product kind.
type Tariff struct {
	ID       uuid.UUID
	Kind     TariffKind
	Category string
	Rate     decimal.Decimal
	Created  time.Time
	Modified time.Time
}

var (
	AccountTariffCategories    = []string{"Deposit", "Saving", "Current"}
	CreditTariffCategories     = []string{"Auto", "Student", "Home", "Personal", "Business"}
	InvestmentTariffCategories = []string{"Cryptocurrency", "Stock"}
)

var (
	MinTariffRate = decimal.Zero
	MaxTariffRate = decimal.NewFromInt(20)
)

func (k TariffKind) Valid() bool {
	switch k {
	case TariffKindAccount, TariffKindCredit, TariffKindInvestment:
		return true
	}
	return false
}

// TariffCategories returns the allowed categories for a kind.
func TariffCategories(kind TariffKind) []string {
	switch kind {
	case TariffKindAccount:
		return AccountTariffCategories
	case TariffKindCredit:
		return CreditTariffCategories
	case TariffKindInvestment:
		return InvestmentTariffCategories
	}
	return nil
}

func ValidTariffCategory(kind TariffKind, category string) bool {
	for _, allowed := range TariffCategories(kind) {
		if allowed == category {
			return true
		}
	}
	return false
}

func ValidRate(rate decimal.Decimal) bool {
	return rate.GreaterThanOrEqual(MinTariffRate) && rate.LessThanOrEqual(MaxTariffRate)
}

func (t Tariff) ValidRate() bool {
	return ValidRate(t.Rate)
}
