package repo_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type TransactRepository interface {
	// CreateWithPosting inserts the transact record, debits the sender and
	// credits the recipient in one storage transaction. Either all three
	// effects land or none do. The debit fails the whole unit with
	// commons.ErrInsufficientBalance when it would drive funds negative.
	CreateWithPosting(ctx context.Context, transact domain.Transact) (domain.Transact, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Transact, error)
}
