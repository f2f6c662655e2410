package repo_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type TariffRepository interface {
	Create(ctx context.Context, tariff domain.Tariff) (domain.Tariff, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Tariff, error)
	ListByKind(ctx context.Context, kind domain.TariffKind) ([]domain.Tariff, error)
	AnyOfKind(ctx context.Context, kind domain.TariffKind) (bool, error)
}
