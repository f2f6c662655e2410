package domain

import "github.com/shopspring/decimal"

// Product bounds, mirrored from the bank's reference configuration.
var (
	MinCreditAmount     = decimal.NewFromInt(1000)
	MaxCreditAmount     = decimal.NewFromInt(10000000)
	MinInvestmentAmount = decimal.NewFromInt(1000)
	MaxInvestmentAmount = decimal.NewFromInt(1000000)

	// InitialBankFunds seeds the bank's bootstrap account.
	InitialBankFunds = decimal.New(1, 15)
)

const (
	MinCreditTermMonths    = 3
	MaxCreditTermMonths    = 120
	MinInvestmentTermYears = 1
	MaxInvestmentTermYears = 10
)

func CreditAmountInBounds(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(MinCreditAmount) && amount.LessThanOrEqual(MaxCreditAmount)
}

func CreditTermInBounds(termMonths int) bool {
	return termMonths >= MinCreditTermMonths && termMonths <= MaxCreditTermMonths
}

func InvestmentAmountInBounds(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(MinInvestmentAmount) && amount.LessThanOrEqual(MaxInvestmentAmount)
}

func InvestmentTermInBounds(termYears int) bool {
	return termYears >= MinInvestmentTermYears && termYears <= MaxInvestmentTermYears
}
