package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

func TestCreateWithPostingRejectsOverdraft(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	sender, _ := store.Accounts().Create(ctx, domain.Account{
		ID: uuid.New(), ClientID: uuid.New(), TariffID: uuid.New(), Funds: decimal.NewFromInt(50),
	})
	recipient, _ := store.Accounts().Create(ctx, domain.Account{
		ID: uuid.New(), ClientID: uuid.New(), TariffID: uuid.New(), Funds: decimal.NewFromInt(10),
	})

	_, err := store.Transacts().CreateWithPosting(ctx, domain.Transact{
		ID:          uuid.New(),
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Amount:      decimal.NewFromInt(100),
		Type:        domain.TransactTypeTransfer,
	})
	if !errors.Is(err, commons.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	gotSender, _ := store.Accounts().GetByID(ctx, sender.ID)
	gotRecipient, _ := store.Accounts().GetByID(ctx, recipient.ID)
	if !gotSender.Funds.Equal(decimal.NewFromInt(50)) {
		t.Errorf("sender funds = %s, want 50", gotSender.Funds)
	}
	if !gotRecipient.Funds.Equal(decimal.NewFromInt(10)) {
		t.Errorf("recipient funds = %s, want 10", gotRecipient.Funds)
	}

	transacts, _ := store.Transacts().ListByAccount(ctx, sender.ID)
	if len(transacts) != 0 {
		t.Errorf("expected no transact records, got %d", len(transacts))
	}
}

func TestCreateWithPostingMovesFunds(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	sender, _ := store.Accounts().Create(ctx, domain.Account{
		ID: uuid.New(), ClientID: uuid.New(), TariffID: uuid.New(), Funds: decimal.NewFromInt(500),
	})
	recipient, _ := store.Accounts().Create(ctx, domain.Account{
		ID: uuid.New(), ClientID: uuid.New(), TariffID: uuid.New(), Funds: decimal.Zero,
	})

	if _, err := store.Transacts().CreateWithPosting(ctx, domain.Transact{
		ID:          uuid.New(),
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Amount:      decimal.NewFromInt(120),
		Type:        domain.TransactTypeTransfer,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotSender, _ := store.Accounts().GetByID(ctx, sender.ID)
	gotRecipient, _ := store.Accounts().GetByID(ctx, recipient.ID)
	if !gotSender.Funds.Equal(decimal.NewFromInt(380)) {
		t.Errorf("sender funds = %s, want 380", gotSender.Funds)
	}
	if !gotRecipient.Funds.Equal(decimal.NewFromInt(120)) {
		t.Errorf("recipient funds = %s, want 120", gotRecipient.Funds)
	}
}

func TestBankAccountSelectionByBalance(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	tick := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	})

	bank, _ := store.Clients().Create(ctx, domain.Client{
		ID: uuid.New(), PhoneNumber: "88000000000", Type: domain.ClientTypeBank,
	})

	rich, _ := store.Accounts().Create(ctx, domain.Account{
		ID: uuid.New(), ClientID: bank.ID, TariffID: uuid.New(), Funds: decimal.NewFromInt(9000),
	})
	poor, _ := store.Accounts().Create(ctx, domain.Account{
		ID: uuid.New(), ClientID: bank.ID, TariffID: uuid.New(), Funds: decimal.NewFromInt(100),
	})

	highest, err := store.Accounts().BankAccountWithHighestBalance(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if highest.ID != rich.ID {
		t.Errorf("highest balance account = %s, want %s", highest.ID, rich.ID)
	}

	lowest, err := store.Accounts().BankAccountWithLowestBalance(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lowest.ID != poor.ID {
		t.Errorf("lowest balance account = %s, want %s", lowest.ID, poor.ID)
	}
}

func TestBankSolvencyNeedsOneCoveringAccount(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	bank, _ := store.Clients().Create(ctx, domain.Client{
		ID: uuid.New(), PhoneNumber: "88000000000", Type: domain.ClientTypeBank,
	})
	for _, funds := range []int64{600, 700} {
		_, _ = store.Accounts().Create(ctx, domain.Account{
			ID: uuid.New(), ClientID: bank.ID, TariffID: uuid.New(), Funds: decimal.NewFromInt(funds),
		})
	}

	covered, err := store.Accounts().HasBankAccountCovering(ctx, decimal.NewFromInt(650))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !covered {
		t.Error("one account holds 700, expected solvency")
	}

	// 600+700 would cover 1000, but balances never aggregate.
	covered, err = store.Accounts().HasBankAccountCovering(ctx, decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if covered {
		t.Error("no single account holds 1000, expected insolvency")
	}
}
