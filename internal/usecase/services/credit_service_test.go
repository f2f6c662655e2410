package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

func openCreditRequest(f *fixture, amount int64, termMonths int) models.OpenCreditRequest {
	return models.OpenCreditRequest{
		ClientID:           f.client.ID,
		TariffID:           f.creditTariff.ID,
		RecipientAccountID: f.savings.ID,
		PaymentAccountID:   f.checking.ID,
		Amount:             decimal.NewFromInt(amount),
		TermMonths:         termMonths,
	}
}

func TestOpenCreditFundsRecipient(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewCreditService(f.store.Credits(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs(), 3)

	response, err := service.OpenCredit(context.Background(), openCreditRequest(f, 10000, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Data == nil {
		t.Fatal("expected credit in response data")
	}

	if got, want := response.Data.MonthlyPayment.StringFixed(2), "888.49"; got != want {
		t.Errorf("monthly payment = %s, want %s", got, want)
	}
	if got, want := response.Data.RemainingAmount.StringFixed(2), "10661.88"; got != want {
		t.Errorf("remaining amount = %s, want %s", got, want)
	}
	if response.Data.NextPaymentDate == nil {
		t.Error("expected next payment date on a fresh credit")
	}

	if got := f.accountFunds(t, f.savings.ID); !got.Equal(decimal.NewFromInt(10500)) {
		t.Errorf("recipient funds = %s, want 10500", got)
	}
	bankFunds := f.accountFunds(t, f.bankAccount.ID)
	if !bankFunds.Equal(domain.InitialBankFunds.Sub(decimal.NewFromInt(10000))) {
		t.Errorf("bank funds = %s, want initial minus 10000", bankFunds)
	}
}

func TestOpenCreditEnforcesActiveLimit(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewCreditService(f.store.Credits(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs(), 1)

	if _, err := service.OpenCredit(context.Background(), openCreditRequest(f, 10000, 12)); err != nil {
		t.Fatalf("first credit: %v", err)
	}

	_, err := service.OpenCredit(context.Background(), openCreditRequest(f, 5000, 6))
	if !errors.Is(err, commons.ErrCreditLimitReached) {
		t.Fatalf("expected ErrCreditLimitReached, got %v", err)
	}
}

func TestOpenCreditRejectsBankClient(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewCreditService(f.store.Credits(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs(), 3)

	req := openCreditRequest(f, 10000, 12)
	req.ClientID = f.bank.ID
	req.RecipientAccountID = f.bankAccount.ID
	req.PaymentAccountID = f.bankAccount.ID

	_, err := service.OpenCredit(context.Background(), req)
	if !errors.Is(err, commons.ErrBankSelfDealing) {
		t.Fatalf("expected ErrBankSelfDealing, got %v", err)
	}
}

func TestOpenCreditRejectsWhenBankCannotCover(t *testing.T) {
	f := newFixture(t, decimal.NewFromInt(5000))
	service := NewCreditService(f.store.Credits(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs(), 3)

	_, err := service.OpenCredit(context.Background(), openCreditRequest(f, 10000, 12))
	if !errors.Is(err, commons.ErrBankInsolvency) {
		t.Fatalf("expected ErrBankInsolvency, got %v", err)
	}
}

func TestOpenCreditRejectsBankOwnedAccounts(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewCreditService(f.store.Credits(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs(), 3)

	// A bank-owned account on either side is self-dealing, even when the
	// requester is a private client.
	recipientReq := openCreditRequest(f, 10000, 12)
	recipientReq.RecipientAccountID = f.bankAccount.ID
	_, err := service.OpenCredit(context.Background(), recipientReq)
	if !errors.Is(err, commons.ErrBankSelfDealing) {
		t.Fatalf("bank recipient: expected ErrBankSelfDealing, got %v", err)
	}

	paymentReq := openCreditRequest(f, 10000, 12)
	paymentReq.PaymentAccountID = f.bankAccount.ID
	_, err = service.OpenCredit(context.Background(), paymentReq)
	if !errors.Is(err, commons.ErrBankSelfDealing) {
		t.Fatalf("bank payment account: expected ErrBankSelfDealing, got %v", err)
	}
}

func TestOpenCreditRejectsForeignAccounts(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewCreditService(f.store.Credits(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs(), 3)

	other, err := f.store.Clients().Create(context.Background(), domain.Client{
		ID: uuid.New(), PhoneNumber: "89997776655", Type: domain.ClientTypePrivate,
	})
	if err != nil {
		t.Fatalf("seed other client: %v", err)
	}
	foreign := f.seedAccount(t, other.ID, decimal.NewFromInt(100))

	req := openCreditRequest(f, 10000, 12)
	req.RecipientAccountID = foreign.ID

	_, err = service.OpenCredit(context.Background(), req)
	if !errors.Is(err, commons.ErrAccountOwnership) {
		t.Fatalf("expected ErrAccountOwnership, got %v", err)
	}
}
