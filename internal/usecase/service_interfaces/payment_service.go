package service_interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (commons.Response[models.PaymentResponse], error)
	ClaimPayment(ctx context.Context, paymentID uuid.UUID, req models.ClaimPaymentRequest) (commons.Response[models.PaymentResponse], error)
	ConfirmPayment(ctx context.Context, paymentID uuid.UUID, req models.ConfirmPaymentRequest) (commons.Response[models.PaymentResponse], error)
	GetPayment(ctx context.Context, id uuid.UUID) (commons.Response[models.PaymentResponse], error)
	ListPayments(ctx context.Context, accountID uuid.UUID) (commons.Response[[]models.PaymentResponse], error)
	WaitingTotal(ctx context.Context, clientID uuid.UUID, transactType domain.TransactType) (commons.Response[models.WaitingTotalResponse], error)
}
