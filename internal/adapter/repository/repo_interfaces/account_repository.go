package repo_interfaces

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Account, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Account, error)
	HasAccountForClientAndTariff(ctx context.Context, clientID, tariffID uuid.UUID) (bool, error)
	// HasBankAccountCovering is the solvency check: true when at least one
	// single bank-owned account holds funds >= amount. Aggregate balance
	// across accounts does not count.
	HasBankAccountCovering(ctx context.Context, amount decimal.Decimal) (bool, error)
	// Bank account selection is a live query, never cached, so it reflects
	// balances as they stand under concurrent postings.
	BankAccountWithHighestBalance(ctx context.Context) (domain.Account, error)
	BankAccountWithLowestBalance(ctx context.Context) (domain.Account, error)
}
