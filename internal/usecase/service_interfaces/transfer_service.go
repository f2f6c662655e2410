package service_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
)

type TransferService interface {
	TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactResponse], error)
	ListTransacts(ctx context.Context, accountID uuid.UUID) (commons.Response[[]models.TransactResponse], error)
}
