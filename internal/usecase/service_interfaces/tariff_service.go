package service_interfaces

import (
	"context"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

type TariffService interface {
	CreateTariff(ctx context.Context, req models.CreateTariffRequest) (commons.Response[models.TariffResponse], error)
	ListTariffs(ctx context.Context, kind domain.TariffKind) (commons.Response[[]models.TariffResponse], error)
}
