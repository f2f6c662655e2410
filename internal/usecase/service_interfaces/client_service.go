package service_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
)

type ClientService interface {
	Register(ctx context.Context, req models.RegisterClientRequest) (commons.Response[models.ClientResponse], error)
	GetClient(ctx context.Context, id uuid.UUID) (commons.Response[models.ClientResponse], error)
}
