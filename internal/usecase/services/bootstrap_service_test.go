package services

import (
	"context"
	"testing"

	"github.com/api-sage/retail-bank-core/internal/adapter/repository/memory"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

func TestBootstrapSeedsBankAndTariffs(t *testing.T) {
	store := memory.NewStore()
	service := NewBootstrapService(store.Clients(), store.Tariffs(), store.Accounts(), testBankPIN)
	ctx := context.Background()

	if err := service.Run(ctx); err != nil {
		t.Fatalf("bootstrap run: %v", err)
	}

	bank, err := store.Clients().GetBankClient(ctx)
	if err != nil {
		t.Fatalf("fetch bank client: %v", err)
	}
	if bank.PhoneNumber != bankPhoneNumber {
		t.Errorf("bank phone = %s, want %s", bank.PhoneNumber, bankPhoneNumber)
	}
	if err := verifyPIN(bank.PINHash, testBankPIN); err != nil {
		t.Errorf("bank pin must verify: %v", err)
	}

	accounts, err := store.Accounts().ListByClient(ctx, bank.ID)
	if err != nil {
		t.Fatalf("list bank accounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("expected one bank account, got %d", len(accounts))
	}
	if !accounts[0].Funds.Equal(domain.InitialBankFunds) {
		t.Errorf("bank funds = %s, want %s", accounts[0].Funds, domain.InitialBankFunds)
	}

	assertTariffCounts(t, store)
}

func TestBootstrapIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	service := NewBootstrapService(store.Clients(), store.Tariffs(), store.Accounts(), testBankPIN)
	ctx := context.Background()

	if err := service.Run(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := service.Run(ctx); err != nil {
		t.Fatalf("second run: %v", err)
	}

	bank, err := store.Clients().GetBankClient(ctx)
	if err != nil {
		t.Fatalf("fetch bank client: %v", err)
	}
	accounts, err := store.Accounts().ListByClient(ctx, bank.ID)
	if err != nil {
		t.Fatalf("list bank accounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("expected one bank account after two runs, got %d", len(accounts))
	}

	assertTariffCounts(t, store)
}

func assertTariffCounts(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()

	for _, want := range []struct {
		kind  domain.TariffKind
		count int
	}{
		{domain.TariffKindAccount, len(domain.AccountTariffCategories)},
		{domain.TariffKindCredit, len(domain.CreditTariffCategories)},
		{domain.TariffKindInvestment, len(domain.InvestmentTariffCategories)},
	} {
		tariffs, err := store.Tariffs().ListByKind(ctx, want.kind)
		if err != nil {
			t.Fatalf("list %s tariffs: %v", want.kind, err)
		}
		if len(tariffs) != want.count {
			t.Errorf("%s tariffs = %d, want %d", want.kind, len(tariffs), want.count)
		}
		for _, tariff := range tariffs {
			if !tariff.ValidRate() {
				t.Errorf("%s/%s rate %s out of range", tariff.Kind, tariff.Category, tariff.Rate)
			}
		}
	}
}
