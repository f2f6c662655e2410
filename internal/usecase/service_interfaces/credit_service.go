package service_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
)

type CreditService interface {
	OpenCredit(ctx context.Context, req models.OpenCreditRequest) (commons.Response[models.CreditResponse], error)
	GetCredit(ctx context.Context, id uuid.UUID) (commons.Response[models.CreditResponse], error)
	ListCredits(ctx context.Context, clientID uuid.UUID) (commons.Response[[]models.CreditResponse], error)
}
