package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
	clientRepo  repo_interfaces.ClientRepository
	tariffRepo  repo_interfaces.TariffRepository
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	clientRepo repo_interfaces.ClientRepository,
	tariffRepo repo_interfaces.TariffRepository,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		clientRepo:  clientRepo,
		tariffRepo:  tariffRepo,
	}
}

func (s *AccountService) OpenAccount(ctx context.Context, req models.OpenAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service open request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service open validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("client not found"), err
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	tariff, err := s.tariffRepo.GetByID(ctx, req.TariffID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("tariff not found"), commons.ErrTariffNotFound
		}
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}
	if tariff.Kind != domain.TariffKindAccount {
		err := commons.ErrTariffNotFound
		return commons.ErrorResponse[models.AccountResponse]("tariff not found", "tariff is not an account tariff"), err
	}

	// One account per tariff per client.
	taken, err := s.accountRepo.HasAccountForClientAndTariff(ctx, req.ClientID, req.TariffID)
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}
	if taken {
		err := commons.ErrDuplicateTariff
		return commons.ErrorResponse[models.AccountResponse]("tariff already in use", err.Error()), err
	}

	account := domain.Account{
		ID:       uuid.New(),
		ClientID: req.ClientID,
		TariffID: req.TariffID,
		Funds:    decimal.Zero,
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		logger.Error("account service open repository failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to open account", "Unable to open account right now"), err
	}

	logger.Info("account service open succeeded", logger.Fields{
		"accountId": created.ID,
		"clientId":  created.ClientID,
	})
	return commons.SuccessResponse("account opened", models.NewAccountResponse(created)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.AccountResponse]("account not found"), err
		}
		logger.Error("account service get repository failed", err, logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("failed to fetch account", "Unable to fetch account right now"), err
	}
	return commons.SuccessResponse("account fetched", models.NewAccountResponse(account)), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, clientID uuid.UUID) (commons.Response[[]models.AccountResponse], error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.AccountResponse]("client not found"), err
		}
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}

	accounts, err := s.accountRepo.ListByClient(ctx, clientID)
	if err != nil {
		logger.Error("account service list repository failed", err, logger.Fields{"clientId": clientID})
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}
	return commons.SuccessResponse("accounts fetched", models.NewAccountResponses(accounts)), nil
}
