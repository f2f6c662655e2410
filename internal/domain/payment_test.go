package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPaymentStatusTerminal(t *testing.T) {
	if PaymentStatusWaiting.Terminal() {
		t.Error("Waiting must not be terminal")
	}
	if !PaymentStatusConfirmed.Terminal() {
		t.Error("Confirmed must be terminal")
	}
	if !PaymentStatusCancelled.Terminal() {
		t.Error("Cancelled must be terminal")
	}
}

func TestPaymentExpired(t *testing.T) {
	deadline := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	payment := Payment{Status: PaymentStatusWaiting, PayDate: deadline}

	if payment.Expired(deadline.Add(-time.Minute)) {
		t.Error("not expired before the deadline")
	}
	if !payment.Expired(deadline) {
		t.Error("expired at the deadline")
	}

	payment.Status = PaymentStatusConfirmed
	if payment.Expired(deadline.Add(time.Hour)) {
		t.Error("a settled payment never expires")
	}
}

func TestPaymentCallbackEmpty(t *testing.T) {
	if !(PaymentCallback{}).Empty() {
		t.Error("zero callback must be empty")
	}

	id := uuid.New()
	if (PaymentCallback{CreditID: &id}).Empty() {
		t.Error("callback with a credit reference is not empty")
	}
	if (PaymentCallback{URL: "https://merchant.example/hook"}).Empty() {
		t.Error("callback with a url is not empty")
	}
}
