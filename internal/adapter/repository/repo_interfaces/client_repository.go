package repo_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error)
	// GetBankClient returns the single client of type Bank.
	GetBankClient(ctx context.Context) (domain.Client, error)
}
