package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCreditSchedule(t *testing.T) {
	amount := decimal.NewFromInt(10000)
	rate := decimal.NewFromInt(12)

	monthly, remaining, err := CreditSchedule(amount, rate, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := monthly.StringFixed(2), "888.49"; got != want {
		t.Errorf("monthly payment = %s, want %s", got, want)
	}
	if got, want := remaining.StringFixed(2), "10661.88"; got != want {
		t.Errorf("remaining amount = %s, want %s", got, want)
	}
}

func TestCreditScheduleRejectsNonPositiveTerm(t *testing.T) {
	_, _, err := CreditSchedule(decimal.NewFromInt(10000), decimal.NewFromInt(12), 0)
	if !errors.Is(err, ErrNonPositiveTerm) {
		t.Fatalf("expected ErrNonPositiveTerm, got %v", err)
	}
}

func TestCreditScheduleRejectsZeroRate(t *testing.T) {
	_, _, err := CreditSchedule(decimal.NewFromInt(10000), decimal.Zero, 12)
	if !errors.Is(err, ErrNonPositiveRate) {
		t.Fatalf("expected ErrNonPositiveRate, got %v", err)
	}
}

func TestInvestmentSchedule(t *testing.T) {
	amount := decimal.NewFromInt(10000)
	rate := decimal.NewFromInt(10)

	remaining, monthly, err := InvestmentSchedule(amount, rate, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := remaining.StringFixed(2), "12100.00"; got != want {
		t.Errorf("remaining amount = %s, want %s", got, want)
	}
	if got, want := monthly.StringFixed(2), "6050.00"; got != want {
		t.Errorf("payable slice = %s, want %s", got, want)
	}
}

func TestInvestmentScheduleZeroRateReturnsPrincipal(t *testing.T) {
	amount := decimal.NewFromInt(5000)

	remaining, monthly, err := InvestmentSchedule(amount, decimal.Zero, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !remaining.Equal(amount) {
		t.Errorf("remaining amount = %s, want %s", remaining, amount)
	}
	if got, want := monthly.StringFixed(2), "1000.00"; got != want {
		t.Errorf("payable slice = %s, want %s", got, want)
	}
}
