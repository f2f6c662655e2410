package services

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

func TestOpenAccountStartsEmpty(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewAccountService(f.store.Accounts(), f.store.Clients(), f.store.Tariffs())

	tariff := f.seedTariff(t, domain.TariffKindAccount, "Saving", 2)
	response, err := service.OpenAccount(context.Background(), models.OpenAccountRequest{
		ClientID: f.client.ID,
		TariffID: tariff.ID,
	})
	if err != nil {
		t.Fatalf("open account: %v", err)
	}
	if !response.Data.Funds.IsZero() {
		t.Errorf("funds = %s, want 0", response.Data.Funds)
	}
}

func TestOpenAccountRejectsDuplicateTariff(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewAccountService(f.store.Accounts(), f.store.Clients(), f.store.Tariffs())

	// The fixture already opened accounts on the account tariff.
	_, err := service.OpenAccount(context.Background(), models.OpenAccountRequest{
		ClientID: f.client.ID,
		TariffID: f.accountTariff.ID,
	})
	if !errors.Is(err, commons.ErrDuplicateTariff) {
		t.Fatalf("expected ErrDuplicateTariff, got %v", err)
	}
}

func TestOpenAccountRejectsCreditTariff(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewAccountService(f.store.Accounts(), f.store.Clients(), f.store.Tariffs())

	_, err := service.OpenAccount(context.Background(), models.OpenAccountRequest{
		ClientID: f.client.ID,
		TariffID: f.creditTariff.ID,
	})
	if !errors.Is(err, commons.ErrTariffNotFound) {
		t.Fatalf("expected ErrTariffNotFound, got %v", err)
	}
}

func TestListAccountsByClient(t *testing.T) {
	f := newFixture(t, domain.InitialBankFunds)
	service := NewAccountService(f.store.Accounts(), f.store.Clients(), f.store.Tariffs())

	response, err := service.ListAccounts(context.Background(), f.client.ID)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	if got := len(*response.Data); got != 2 {
		t.Fatalf("accounts = %d, want 2", got)
	}
}
