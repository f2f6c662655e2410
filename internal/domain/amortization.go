package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositiveTerm = errors.New("term must be greater than zero")
	ErrNonPositiveRate = errors.New("rate must be greater than zero")
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// CreditSchedule computes the standard annuity schedule for a credit: the
// monthly payment for principal `amount` at `annualRate` percent over
// `termMonths`, and the total amount payable. Both values are fixed at
// obligation creation; later tariff changes do not affect them.
//
//	r = (rate/100)/12
//	payment = amount*r / (1 - (1+r)^-term)
//	remaining = payment * term
func CreditSchedule(amount, annualRate decimal.Decimal, termMonths int) (monthly, remaining decimal.Decimal, err error) {
	if termMonths <= 0 {
		return decimal.Zero, decimal.Zero, ErrNonPositiveTerm
	}
	if !annualRate.IsPositive() {
		// r = 0 makes the annuity denominator vanish.
		return decimal.Zero, decimal.Zero, ErrNonPositiveRate
	}

	monthlyRate := annualRate.Div(hundred).Div(twelve)
	growth := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(termMonths)))

	// amount*r / (1 - growth^-1) rewritten as amount*r*growth / (growth - 1)
	// to keep the division exact-precision friendly.
	monthly = amount.Mul(monthlyRate).Mul(growth).Div(growth.Sub(one)).Round(2)
	remaining = monthly.Mul(decimal.NewFromInt(int64(termMonths))).Round(2)
	return monthly, remaining, nil
}

// InvestmentSchedule computes the payout for an investment of `amount` at
// `annualRate` percent compounded yearly over `termYears`: the total amount
// the bank will owe and the per-year payable slice.
func InvestmentSchedule(amount, annualRate decimal.Decimal, termYears int) (remaining, monthly decimal.Decimal, err error) {
	if termYears <= 0 {
		return decimal.Zero, decimal.Zero, ErrNonPositiveTerm
	}
	if annualRate.IsNegative() {
		return decimal.Zero, decimal.Zero, ErrNonPositiveRate
	}

	growth := one.Add(annualRate.Div(hundred)).Pow(decimal.NewFromInt(int64(termYears)))
	remaining = amount.Mul(growth).Round(2)
	monthly = remaining.Div(decimal.NewFromInt(int64(termYears))).Round(2)
	return remaining, monthly, nil
}
