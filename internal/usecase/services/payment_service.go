package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
	"github.com/api-sage/retail-bank-core/internal/usecase/service_interfaces"
)

type PaymentService struct {
	paymentRepo repo_interfaces.PaymentRepository
	accountRepo repo_interfaces.AccountRepository
	clientRepo  repo_interfaces.ClientRepository
	notifier    service_interfaces.Notifier
}

func NewPaymentService(
	paymentRepo repo_interfaces.PaymentRepository,
	accountRepo repo_interfaces.AccountRepository,
	clientRepo repo_interfaces.ClientRepository,
	notifier service_interfaces.Notifier,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
		notifier:    notifier,
	}
}

func (s *PaymentService) CreatePayment(ctx context.Context, req models.CreatePaymentRequest) (commons.Response[models.PaymentResponse], error) {
	logger.Info("payment service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("payment service create validation failed", err, nil)
		return commons.ErrorResponse[models.PaymentResponse]("validation failed", err.Error()), err
	}

	if _, err := s.accountRepo.GetByID(ctx, req.RecipientAccountID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.PaymentResponse]("recipient account not found"), err
		}
		return commons.ErrorResponse[models.PaymentResponse]("failed to create payment", "Unable to create payment right now"), err
	}
	if req.SenderAccountID != nil {
		if _, err := s.accountRepo.GetByID(ctx, *req.SenderAccountID); err != nil {
			if errors.Is(err, commons.ErrRecordNotFound) {
				return commons.ErrorResponse[models.PaymentResponse]("sender account not found"), err
			}
			return commons.ErrorResponse[models.PaymentResponse]("failed to create payment", "Unable to create payment right now"), err
		}
	}

	payment := domain.Payment{
		ID:          uuid.New(),
		SenderID:    req.SenderAccountID,
		RecipientID: req.RecipientAccountID,
		Amount:      req.Amount,
		Status:      domain.PaymentStatusWaiting,
		PayDate:     req.PayDate.UTC(),
		Type:        domain.TransactType(strings.TrimSpace(req.Type)),
	}
	if req.Callback != nil {
		payment.Callback = &domain.PaymentCallback{
			URL:     strings.TrimSpace(req.Callback.URL),
			Headers: req.Callback.Headers,
		}
	}

	created, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		logger.Error("payment service create repository failed", err, logger.Fields{
			"paymentId": payment.ID,
		})
		return commons.ErrorResponse[models.PaymentResponse]("failed to create payment", "Unable to create payment right now"), err
	}

	logger.Info("payment service create succeeded", logger.Fields{"paymentId": created.ID})
	return commons.SuccessResponse("payment created", models.NewPaymentResponse(created)), nil
}

// ClaimPayment attaches the paying account to a waiting payment. The caller
// must own the account and present a valid pin.
func (s *PaymentService) ClaimPayment(ctx context.Context, paymentID uuid.UUID, req models.ClaimPaymentRequest) (commons.Response[models.PaymentResponse], error) {
	logger.Info("payment service claim request", logger.Fields{
		"paymentId": paymentID,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("payment service claim validation failed", err, nil)
		return commons.ErrorResponse[models.PaymentResponse]("validation failed", err.Error()), err
	}

	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.PaymentResponse]("client not found"), err
		}
		return commons.ErrorResponse[models.PaymentResponse]("failed to claim payment", "Unable to claim payment right now"), err
	}
	if err := verifyPIN(client.PINHash, strings.TrimSpace(req.PIN)); err != nil {
		if errors.Is(err, commons.ErrInvalidPIN) {
			return commons.ErrorResponse[models.PaymentResponse]("invalid pin", err.Error()), err
		}
		return commons.ErrorResponse[models.PaymentResponse]("failed to claim payment", "Unable to claim payment right now"), err
	}

	account, err := s.accountRepo.GetByID(ctx, req.SenderAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.PaymentResponse]("sender account not found"), err
		}
		return commons.ErrorResponse[models.PaymentResponse]("failed to claim payment", "Unable to claim payment right now"), err
	}
	if account.ClientID != req.ClientID {
		err := commons.ErrAccountOwnership
		return commons.ErrorResponse[models.PaymentResponse]("not the account owner", err.Error()), err
	}

	claimed, err := s.paymentRepo.AssignSender(ctx, paymentID, req.SenderAccountID)
	if err != nil {
		switch {
		case errors.Is(err, commons.ErrRecordNotFound):
			return commons.ErrorResponse[models.PaymentResponse]("payment not found"), err
		case errors.Is(err, commons.ErrPaymentLocked):
			return commons.ErrorResponse[models.PaymentResponse]("payment already settled", err.Error()), err
		case errors.Is(err, commons.ErrSameAccount):
			return commons.ErrorResponse[models.PaymentResponse]("validation failed", err.Error()), err
		}
		logger.Error("payment service claim repository failed", err, logger.Fields{"paymentId": paymentID})
		return commons.ErrorResponse[models.PaymentResponse]("failed to claim payment", "Unable to claim payment right now"), err
	}

	return commons.SuccessResponse("payment claimed", models.NewPaymentResponse(claimed)), nil
}

func (s *PaymentService) ConfirmPayment(ctx context.Context, paymentID uuid.UUID, req models.ConfirmPaymentRequest) (commons.Response[models.PaymentResponse], error) {
	logger.Info("payment service confirm request", logger.Fields{
		"paymentId": paymentID,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("payment service confirm validation failed", err, nil)
		return commons.ErrorResponse[models.PaymentResponse]("validation failed", err.Error()), err
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.PaymentResponse]("payment not found"), err
		}
		return commons.ErrorResponse[models.PaymentResponse]("failed to confirm payment", "Unable to confirm payment right now"), err
	}
	if payment.SenderID == nil {
		err := commons.ErrSenderNotAssigned
		return commons.ErrorResponse[models.PaymentResponse]("payment has no sender", err.Error()), err
	}

	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.PaymentResponse]("client not found"), err
		}
		return commons.ErrorResponse[models.PaymentResponse]("failed to confirm payment", "Unable to confirm payment right now"), err
	}
	if err := verifyPIN(client.PINHash, strings.TrimSpace(req.PIN)); err != nil {
		if errors.Is(err, commons.ErrInvalidPIN) {
			return commons.ErrorResponse[models.PaymentResponse]("invalid pin", err.Error()), err
		}
		return commons.ErrorResponse[models.PaymentResponse]("failed to confirm payment", "Unable to confirm payment right now"), err
	}

	sender, err := s.accountRepo.GetByID(ctx, *payment.SenderID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.PaymentResponse]("sender account not found"), err
		}
		return commons.ErrorResponse[models.PaymentResponse]("failed to confirm payment", "Unable to confirm payment right now"), err
	}
	if sender.ClientID != req.ClientID {
		err := commons.ErrAccountOwnership
		return commons.ErrorResponse[models.PaymentResponse]("not the account owner", err.Error()), err
	}

	if sender.Funds.LessThan(payment.Amount) {
		err := commons.ErrInsufficientBalance
		return commons.ErrorResponse[models.PaymentResponse]("insufficient balance", err.Error()), err
	}

	confirmed, err := s.paymentRepo.ConfirmWithPosting(ctx, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, commons.ErrPaymentLocked):
			return commons.ErrorResponse[models.PaymentResponse]("payment already settled", err.Error()), err
		case errors.Is(err, commons.ErrInsufficientBalance):
			return commons.ErrorResponse[models.PaymentResponse]("insufficient balance", err.Error()), err
		case errors.Is(err, commons.ErrSenderNotAssigned):
			return commons.ErrorResponse[models.PaymentResponse]("payment has no sender", err.Error()), err
		}
		logger.Error("payment service confirm repository failed", err, logger.Fields{"paymentId": paymentID})
		return commons.ErrorResponse[models.PaymentResponse]("failed to confirm payment", "Unable to confirm payment right now"), err
	}

	// Settlement is durable at this point; the callback rides outside the
	// transaction and its failure never unwinds the posting.
	s.notifier.Dispatch(confirmed)

	logger.Info("payment service confirm succeeded", logger.Fields{
		"paymentId": confirmed.ID,
		"amount":    confirmed.Amount,
	})
	return commons.SuccessResponse("payment confirmed", models.NewPaymentResponse(confirmed)), nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (commons.Response[models.PaymentResponse], error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.PaymentResponse]("payment not found"), err
		}
		logger.Error("payment service get repository failed", err, logger.Fields{"paymentId": id})
		return commons.ErrorResponse[models.PaymentResponse]("failed to fetch payment", "Unable to fetch payment right now"), err
	}
	return commons.SuccessResponse("payment fetched", models.NewPaymentResponse(payment)), nil
}

func (s *PaymentService) ListPayments(ctx context.Context, accountID uuid.UUID) (commons.Response[[]models.PaymentResponse], error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.PaymentResponse]("account not found"), err
		}
		return commons.ErrorResponse[[]models.PaymentResponse]("failed to list payments", "Unable to list payments right now"), err
	}

	payments, err := s.paymentRepo.ListByAccount(ctx, accountID)
	if err != nil {
		logger.Error("payment service list repository failed", err, logger.Fields{"accountId": accountID})
		return commons.ErrorResponse[[]models.PaymentResponse]("failed to list payments", "Unable to list payments right now"), err
	}
	return commons.SuccessResponse("payments fetched", models.NewPaymentResponses(payments)), nil
}

// WaitingTotal sums the waiting payments a client owes for one product type,
// e.g. the outstanding credit installments shown on their dashboard.
func (s *PaymentService) WaitingTotal(ctx context.Context, clientID uuid.UUID, transactType domain.TransactType) (commons.Response[models.WaitingTotalResponse], error) {
	if !transactType.Valid() {
		err := errors.New("type must be one of Transfer, Purchase, Credit, Investment")
		return commons.ErrorResponse[models.WaitingTotalResponse]("validation failed", err.Error()), err
	}

	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.WaitingTotalResponse]("client not found"), err
		}
		return commons.ErrorResponse[models.WaitingTotalResponse]("failed to sum payments", "Unable to sum payments right now"), err
	}

	total, err := s.paymentRepo.SumWaitingByClientAndType(ctx, clientID, transactType)
	if err != nil {
		logger.Error("payment service sum repository failed", err, logger.Fields{"clientId": clientID})
		return commons.ErrorResponse[models.WaitingTotalResponse]("failed to sum payments", "Unable to sum payments right now"), err
	}

	return commons.SuccessResponse("waiting total fetched", models.WaitingTotalResponse{
		ClientID: clientID,
		Type:     string(transactType),
		Total:    total,
	}), nil
}
