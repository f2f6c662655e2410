package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
)

type TransferService struct {
	transactRepo repo_interfaces.TransactRepository
	accountRepo  repo_interfaces.AccountRepository
}

func NewTransferService(
	transactRepo repo_interfaces.TransactRepository,
	accountRepo repo_interfaces.AccountRepository,
) *TransferService {
	return &TransferService{
		transactRepo: transactRepo,
		accountRepo:  accountRepo,
	}
}

func (s *TransferService) TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transfer service transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransactResponse]("validation failed", err.Error()), err
	}

	if req.SenderAccountID == req.RecipientAccountID {
		err := commons.ErrSameAccount
		return commons.ErrorResponse[models.TransactResponse]("validation failed", err.Error()), err
	}

	sender, err := s.accountRepo.GetByID(ctx, req.SenderAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactResponse]("sender account not found"), err
		}
		return commons.ErrorResponse[models.TransactResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}
	if sender.ClientID != req.ClientID {
		err := commons.ErrAccountOwnership
		return commons.ErrorResponse[models.TransactResponse]("not the account owner", err.Error()), err
	}

	if _, err := s.accountRepo.GetByID(ctx, req.RecipientAccountID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactResponse]("recipient account not found"), err
		}
		return commons.ErrorResponse[models.TransactResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	if sender.Funds.LessThan(req.Amount) {
		err := commons.ErrInsufficientBalance
		return commons.ErrorResponse[models.TransactResponse]("insufficient balance", err.Error()), err
	}

	transact := domain.Transact{
		ID:          uuid.New(),
		SenderID:    req.SenderAccountID,
		RecipientID: req.RecipientAccountID,
		Amount:      req.Amount,
		Type:        domain.TransactTypeTransfer,
	}

	// The posting re-checks funds inside the transaction; the pre-check
	// above only exists to answer fast without opening one.
	created, err := s.transactRepo.CreateWithPosting(ctx, transact)
	if err != nil {
		if errors.Is(err, commons.ErrInsufficientBalance) {
			return commons.ErrorResponse[models.TransactResponse]("insufficient balance", err.Error()), err
		}
		logger.Error("transfer service posting failed", err, logger.Fields{
			"transactId": transact.ID,
		})
		return commons.ErrorResponse[models.TransactResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	logger.Info("transfer service transfer succeeded", logger.Fields{
		"transactId": created.ID,
		"amount":     created.Amount,
	})
	return commons.SuccessResponse("transfer processed", models.NewTransactResponse(created)), nil
}

func (s *TransferService) ListTransacts(ctx context.Context, accountID uuid.UUID) (commons.Response[[]models.TransactResponse], error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.TransactResponse]("account not found"), err
		}
		return commons.ErrorResponse[[]models.TransactResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}

	transacts, err := s.transactRepo.ListByAccount(ctx, accountID)
	if err != nil {
		logger.Error("transfer service list repository failed", err, logger.Fields{"accountId": accountID})
		return commons.ErrorResponse[[]models.TransactResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}
	return commons.SuccessResponse("transactions fetched", models.NewTransactResponses(transacts)), nil
}
