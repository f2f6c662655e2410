package repo_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type InvestmentRepository interface {
	// OpenWithFunding persists the investment and transfers its amount from
	// the payment account to the bank account currently holding the lowest
	// balance, in one storage transaction.
	OpenWithFunding(ctx context.Context, investment domain.Investment) (domain.Investment, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Investment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Investment, error)
	HasActiveForClientAndTariff(ctx context.Context, clientID, tariffID uuid.UUID) (bool, error)
	ListActive(ctx context.Context) ([]domain.Investment, error)
}
