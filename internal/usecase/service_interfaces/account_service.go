package service_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
)

type AccountService interface {
	OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, id uuid.UUID) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, clientID uuid.UUID) (commons.Response[[]models.AccountResponse], error)
}
