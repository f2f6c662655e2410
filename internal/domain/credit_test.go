package domain

import (
	"testing"
	"time"
)

func TestPaymentDateKeepsAnchoredDay(t *testing.T) {
	history := CreditPaymentHistory{
		Created:  time.Date(2023, time.March, 15, 9, 30, 0, 0, time.UTC),
		Modified: time.Date(2023, time.March, 15, 9, 30, 0, 0, time.UTC),
	}

	got := history.PaymentDate()
	want := time.Date(2023, time.April, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("payment date = %s, want %s", got, want)
	}
}

func TestPaymentDateClampsToMonthEnd(t *testing.T) {
	history := CreditPaymentHistory{
		Created:  time.Date(2023, time.January, 31, 12, 0, 0, 0, time.UTC),
		Modified: time.Date(2023, time.May, 10, 12, 0, 0, 0, time.UTC),
	}

	got := history.PaymentDate()
	want := time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("payment date = %s, want %s", got, want)
	}
}

func TestPaymentDateFebruaryClamp(t *testing.T) {
	history := CreditPaymentHistory{
		Created:  time.Date(2023, time.December, 30, 0, 0, 0, 0, time.UTC),
		Modified: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
	}

	got := history.PaymentDate()
	want := time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("payment date = %s, want %s", got, want)
	}
}

func TestPaymentDateDecemberRollsToNextYear(t *testing.T) {
	history := CreditPaymentHistory{
		Created:  time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC),
		Modified: time.Date(2023, time.December, 5, 0, 0, 0, 0, time.UTC),
	}

	got := history.PaymentDate()
	want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("payment date = %s, want %s", got, want)
	}
}

func TestDueOnIgnoresTimeOfDay(t *testing.T) {
	history := CreditPaymentHistory{
		Created:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Modified: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
	}

	if !history.DueOn(time.Date(2024, time.April, 15, 23, 59, 0, 0, time.UTC)) {
		t.Error("expected due on the anchored day")
	}
	if history.DueOn(time.Date(2024, time.April, 14, 0, 0, 0, 0, time.UTC)) {
		t.Error("not due the day before the anchored day")
	}
	if history.DueOn(time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("not due a month past the anchored day")
	}
}
