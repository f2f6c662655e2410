package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

func openInvestmentRequest(f *fixture, amount int64, termYears int) models.OpenInvestmentRequest {
	return models.OpenInvestmentRequest{
		ClientID:           f.client.ID,
		TariffID:           f.investTariff.ID,
		RecipientAccountID: f.savings.ID,
		PaymentAccountID:   f.checking.ID,
		Amount:             decimal.NewFromInt(amount),
		TermYears:          termYears,
	}
}

func TestOpenInvestmentMovesPrincipalToBank(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewInvestmentService(f.store.Investments(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs())

	response, err := service.OpenInvestment(context.Background(), openInvestmentRequest(f, 1000, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Data == nil {
		t.Fatal("expected investment in response data")
	}

	// 1000 at 10% compounded over 2 years.
	if got, want := response.Data.RemainingAmount.StringFixed(2), "1210.00"; got != want {
		t.Errorf("remaining amount = %s, want %s", got, want)
	}
	if response.Data.Status != string(domain.ObligationStatusActive) {
		t.Errorf("status = %s, want Active", response.Data.Status)
	}

	if got := f.accountFunds(t, f.checking.ID); !got.Equal(decimal.Zero) {
		t.Errorf("payment account funds = %s, want 0", got)
	}
	bankFunds := f.accountFunds(t, f.bankAccount.ID)
	if !bankFunds.Equal(domain.InitialBankFunds.Add(decimal.NewFromInt(1000))) {
		t.Errorf("bank funds = %s, want initial plus 1000", bankFunds)
	}
}

func TestOpenInvestmentRejectsDuplicateTariff(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewInvestmentService(f.store.Investments(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs())

	if _, err := service.OpenInvestment(context.Background(), openInvestmentRequest(f, 1000, 2)); err != nil {
		t.Fatalf("first investment: %v", err)
	}

	_, err := service.OpenInvestment(context.Background(), openInvestmentRequest(f, 1000, 1))
	if !errors.Is(err, commons.ErrDuplicateTariff) {
		t.Fatalf("expected ErrDuplicateTariff, got %v", err)
	}
}

func TestOpenInvestmentRejectsInsufficientBalance(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewInvestmentService(f.store.Investments(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs())

	req := openInvestmentRequest(f, 1000, 2)
	req.PaymentAccountID = f.savings.ID
	req.RecipientAccountID = f.checking.ID

	_, err := service.OpenInvestment(context.Background(), req)
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestOpenInvestmentRejectsBankClient(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewInvestmentService(f.store.Investments(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs())

	req := openInvestmentRequest(f, 1000, 2)
	req.ClientID = f.bank.ID
	req.RecipientAccountID = f.bankAccount.ID
	req.PaymentAccountID = f.bankAccount.ID

	_, err := service.OpenInvestment(context.Background(), req)
	if !errors.Is(err, commons.ErrBankSelfDealing) {
		t.Fatalf("expected ErrBankSelfDealing, got %v", err)
	}
}

func TestOpenInvestmentRejectsBankOwnedAccounts(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewInvestmentService(f.store.Investments(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs())

	// A private client routing either side through a bank-owned account is
	// self-dealing, not an ownership problem.
	recipientReq := openInvestmentRequest(f, 1000, 2)
	recipientReq.RecipientAccountID = f.bankAccount.ID
	_, err := service.OpenInvestment(context.Background(), recipientReq)
	if !errors.Is(err, commons.ErrBankSelfDealing) {
		t.Fatalf("bank recipient: expected ErrBankSelfDealing, got %v", err)
	}

	paymentReq := openInvestmentRequest(f, 1000, 2)
	paymentReq.PaymentAccountID = f.bankAccount.ID
	_, err = service.OpenInvestment(context.Background(), paymentReq)
	if !errors.Is(err, commons.ErrBankSelfDealing) {
		t.Fatalf("bank payment account: expected ErrBankSelfDealing, got %v", err)
	}
}

func TestOpenInvestmentRejectsAccountTariff(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewInvestmentService(f.store.Investments(), f.store.Accounts(), f.store.Clients(), f.store.Tariffs())

	req := openInvestmentRequest(f, 1000, 2)
	req.TariffID = f.accountTariff.ID

	_, err := service.OpenInvestment(context.Background(), req)
	if !errors.Is(err, commons.ErrTariffNotFound) {
		t.Fatalf("expected ErrTariffNotFound, got %v", err)
	}
}
