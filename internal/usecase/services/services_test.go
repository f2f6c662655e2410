package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/adapter/repository/memory"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

const (
	testPIN     = "4321"
	testBankPIN = "0000"
)

// fixture is a seeded in-memory bank: the Bank client with one funded
// account, a private client with two accounts, and one tariff per kind.
type fixture struct {
	store *memory.Store

	bank        domain.Client
	bankAccount domain.Account

	client   domain.Client
	checking domain.Account
	savings  domain.Account

	accountTariff domain.Tariff
	creditTariff  domain.Tariff
	investTariff  domain.Tariff
}

func newFixture(t *testing.T, bankFunds decimal.Decimal) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	bankHash, err := hashPIN(testBankPIN)
	if err != nil {
		t.Fatalf("hash bank pin: %v", err)
	}
	clientHash, err := hashPIN(testPIN)
	if err != nil {
		t.Fatalf("hash client pin: %v", err)
	}

	f := &fixture{store: store}

	f.bank, err = store.Clients().Create(ctx, domain.Client{
		ID: uuid.New(), PhoneNumber: "88000000000", Type: domain.ClientTypeBank, PINHash: bankHash,
	})
	if err != nil {
		t.Fatalf("seed bank client: %v", err)
	}
	f.client, err = store.Clients().Create(ctx, domain.Client{
		ID: uuid.New(), PhoneNumber: "89031112233", Type: domain.ClientTypePrivate, PINHash: clientHash,
	})
	if err != nil {
		t.Fatalf("seed private client: %v", err)
	}

	f.accountTariff = f.seedTariff(t, domain.TariffKindAccount, "Current", 1)
	f.creditTariff = f.seedTariff(t, domain.TariffKindCredit, "Personal", 12)
	f.investTariff = f.seedTariff(t, domain.TariffKindInvestment, "Stock", 10)

	f.bankAccount = f.seedAccount(t, f.bank.ID, bankFunds)
	f.checking = f.seedAccount(t, f.client.ID, decimal.NewFromInt(1000))
	f.savings = f.seedAccount(t, f.client.ID, decimal.NewFromInt(500))

	return f
}

func (f *fixture) seedTariff(t *testing.T, kind domain.TariffKind, category string, rate int64) domain.Tariff {
	t.Helper()
	tariff, err := f.store.Tariffs().Create(context.Background(), domain.Tariff{
		ID: uuid.New(), Kind: kind, Category: category, Rate: decimal.NewFromInt(rate),
	})
	if err != nil {
		t.Fatalf("seed %s tariff: %v", kind, err)
	}
	return tariff
}

func (f *fixture) seedAccount(t *testing.T, clientID uuid.UUID, funds decimal.Decimal) domain.Account {
	t.Helper()
	account, err := f.store.Accounts().Create(context.Background(), domain.Account{
		ID: uuid.New(), ClientID: clientID, TariffID: f.accountTariff.ID, Funds: funds,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func (f *fixture) accountFunds(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	account, err := f.store.Accounts().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("fetch account %s: %v", id, err)
	}
	return account.Funds
}

// recordingNotifier captures dispatched payments instead of calling out.
type recordingNotifier struct {
	mu        sync.Mutex
	delivered []domain.Payment
}

func (n *recordingNotifier) Dispatch(payment domain.Payment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delivered = append(n.delivered, payment)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.delivered)
}
