package repo_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type CreditRepository interface {
	// OpenWithFunding persists the credit, transfers its amount from the
	// bank account currently holding the highest balance to the credit's
	// recipient account, and creates the payment-history anchor, all in one
	// storage transaction.
	OpenWithFunding(ctx context.Context, credit domain.Credit) (domain.Credit, domain.CreditPaymentHistory, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Credit, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Credit, error)
	CountActiveByClient(ctx context.Context, clientID uuid.UUID) (int, error)
	// ListWithHistory returns every credit that still has a billing anchor.
	ListWithHistory(ctx context.Context) ([]domain.CreditWithHistory, error)
}
