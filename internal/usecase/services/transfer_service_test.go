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

func TestTransferFundsMovesBalance(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewTransferService(f.store.Transacts(), f.store.Accounts())

	response, err := service.TransferFunds(context.Background(), models.TransferRequest{
		ClientID:           f.client.ID,
		SenderAccountID:    f.checking.ID,
		RecipientAccountID: f.savings.ID,
		Amount:             decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !response.Success {
		t.Fatalf("expected success, got %q", response.Message)
	}

	if got := f.accountFunds(t, f.checking.ID); !got.Equal(decimal.NewFromInt(800)) {
		t.Errorf("sender funds = %s, want 800", got)
	}
	if got := f.accountFunds(t, f.savings.ID); !got.Equal(decimal.NewFromInt(700)) {
		t.Errorf("recipient funds = %s, want 700", got)
	}
}

func TestTransferFundsRejectsSameAccount(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewTransferService(f.store.Transacts(), f.store.Accounts())

	_, err := service.TransferFunds(context.Background(), models.TransferRequest{
		ClientID:           f.client.ID,
		SenderAccountID:    f.checking.ID,
		RecipientAccountID: f.checking.ID,
		Amount:             decimal.NewFromInt(10),
	})
	if !errors.Is(err, commons.ErrSameAccount) {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}
}

func TestTransferFundsRejectsInsufficientBalance(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewTransferService(f.store.Transacts(), f.store.Accounts())

	_, err := service.TransferFunds(context.Background(), models.TransferRequest{
		ClientID:           f.client.ID,
		SenderAccountID:    f.checking.ID,
		RecipientAccountID: f.savings.ID,
		Amount:             decimal.NewFromInt(5000),
	})
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	if got := f.accountFunds(t, f.checking.ID); !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("sender funds = %s, want untouched 1000", got)
	}
}

func TestTransferFundsRejectsForeignAccount(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewTransferService(f.store.Transacts(), f.store.Accounts())

	_, err := service.TransferFunds(context.Background(), models.TransferRequest{
		ClientID:           f.bank.ID,
		SenderAccountID:    f.checking.ID,
		RecipientAccountID: f.savings.ID,
		Amount:             decimal.NewFromInt(10),
	})
	if !errors.Is(err, commons.ErrAccountOwnership) {
		t.Fatalf("expected ErrAccountOwnership, got %v", err)
	}
}
