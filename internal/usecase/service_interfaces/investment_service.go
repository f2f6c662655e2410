package service_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
)

type InvestmentService interface {
	OpenInvestment(ctx context.Context, req models.OpenInvestmentRequest) (commons.Response[models.InvestmentResponse], error)
	GetInvestment(ctx context.Context, id uuid.UUID) (commons.Response[models.InvestmentResponse], error)
	ListInvestments(ctx context.Context, clientID uuid.UUID) (commons.Response[[]models.InvestmentResponse], error)
}
