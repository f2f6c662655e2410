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

type CreditService struct {
	creditRepo       repo_interfaces.CreditRepository
	accountRepo      repo_interfaces.AccountRepository
	clientRepo       repo_interfaces.ClientRepository
	tariffRepo       repo_interfaces.TariffRepository
	maxActiveCredits int
}

func NewCreditService(
	creditRepo repo_interfaces.CreditRepository,
	accountRepo repo_interfaces.AccountRepository,
	clientRepo repo_interfaces.ClientRepository,
	tariffRepo repo_interfaces.TariffRepository,
	maxActiveCredits int,
) *CreditService {
	return &CreditService{
		creditRepo:       creditRepo,
		accountRepo:      accountRepo,
		clientRepo:       clientRepo,
		tariffRepo:       tariffRepo,
		maxActiveCredits: maxActiveCredits,
	}
}

func (s *CreditService) OpenCredit(ctx context.Context, req models.OpenCreditRequest) (commons.Response[models.CreditResponse], error) {
	logger.Info("credit service open request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("credit service open validation failed", err, nil)
		return commons.ErrorResponse[models.CreditResponse]("validation failed", err.Error()), err
	}

	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CreditResponse]("client not found"), err
		}
		return commons.ErrorResponse[models.CreditResponse]("failed to open credit", "Unable to open credit right now"), err
	}
	if client.Type == domain.ClientTypeBank {
		err := commons.ErrBankSelfDealing
		return commons.ErrorResponse[models.CreditResponse]("bank cannot open products against itself", err.Error()), err
	}

	tariff, err := s.tariffRepo.GetByID(ctx, req.TariffID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CreditResponse]("tariff not found"), commons.ErrTariffNotFound
		}
		return commons.ErrorResponse[models.CreditResponse]("failed to open credit", "Unable to open credit right now"), err
	}
	if tariff.Kind != domain.TariffKindCredit {
		err := commons.ErrTariffNotFound
		return commons.ErrorResponse[models.CreditResponse]("tariff not found", "tariff is not a credit tariff"), err
	}

	recipient, err := s.accountRepo.GetByID(ctx, req.RecipientAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CreditResponse]("recipient account not found"), err
		}
		return commons.ErrorResponse[models.CreditResponse]("failed to open credit", "Unable to open credit right now"), err
	}
	payment, err := s.accountRepo.GetByID(ctx, req.PaymentAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CreditResponse]("payment account not found"), err
		}
		return commons.ErrorResponse[models.CreditResponse]("failed to open credit", "Unable to open credit right now"), err
	}
	// Self-dealing is judged per account: a bank-owned account on either
	// side disqualifies the credit no matter who asks.
	for _, account := range []domain.Account{recipient, payment} {
		owner, err := s.clientRepo.GetByID(ctx, account.ClientID)
		if err != nil {
			return commons.ErrorResponse[models.CreditResponse]("failed to open credit", "Unable to open credit right now"), err
		}
		if owner.Type == domain.ClientTypeBank {
			err := commons.ErrBankSelfDealing
			return commons.ErrorResponse[models.CreditResponse]("bank accounts cannot back client products", err.Error()), err
		}
	}
	if recipient.ClientID != req.ClientID || payment.ClientID != req.ClientID {
		err := commons.ErrAccountOwnership
		return commons.ErrorResponse[models.CreditResponse]("not the account owner", err.Error()), err
	}

	active, err := s.creditRepo.CountActiveByClient(ctx, req.ClientID)
	if err != nil {
		return commons.ErrorResponse[models.CreditResponse]("failed to open credit", "Unable to open credit right now"), err
	}
	if active >= s.maxActiveCredits {
		err := commons.ErrCreditLimitReached
		return commons.ErrorResponse[models.CreditResponse]("credit limit reached", err.Error()), err
	}

	solvent, err := s.accountRepo.HasBankAccountCovering(ctx, req.Amount)
	if err != nil {
		return commons.ErrorResponse[models.CreditResponse]("failed to open credit", "Unable to open credit right now"), err
	}
	if !solvent {
		err := commons.ErrBankInsolvency
		return commons.ErrorResponse[models.CreditResponse]("bank cannot fund this credit", err.Error()), err
	}

	monthly, remaining, err := domain.CreditSchedule(req.Amount, tariff.Rate, req.TermMonths)
	if err != nil {
		return commons.ErrorResponse[models.CreditResponse]("validation failed", err.Error()), err
	}

	credit := domain.Credit{
		ID:                 uuid.New(),
		ClientID:           req.ClientID,
		RecipientAccountID: req.RecipientAccountID,
		PaymentAccountID:   req.PaymentAccountID,
		Amount:             req.Amount,
		TariffID:           req.TariffID,
		RemainingAmount:    remaining,
		TermMonths:         req.TermMonths,
		MonthlyPayment:     monthly,
		Status:             domain.ObligationStatusActive,
	}

	created, history, err := s.creditRepo.OpenWithFunding(ctx, credit)
	if err != nil {
		if errors.Is(err, commons.ErrBankInsolvency) {
			return commons.ErrorResponse[models.CreditResponse]("bank cannot fund this credit", err.Error()), err
		}
		logger.Error("credit service open repository failed", err, logger.Fields{
			"creditId": credit.ID,
		})
		return commons.ErrorResponse[models.CreditResponse]("failed to open credit", "Unable to open credit right now"), err
	}

	logger.Info("credit service open succeeded", logger.Fields{
		"creditId":       created.ID,
		"clientId":       created.ClientID,
		"monthlyPayment": created.MonthlyPayment,
	})

	response := models.NewCreditResponse(created)
	next := history.PaymentDate()
	response.NextPaymentDate = &next
	return commons.SuccessResponse("credit opened", response), nil
}

func (s *CreditService) GetCredit(ctx context.Context, id uuid.UUID) (commons.Response[models.CreditResponse], error) {
	credit, err := s.creditRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CreditResponse]("credit not found"), err
		}
		logger.Error("credit service get repository failed", err, logger.Fields{"creditId": id})
		return commons.ErrorResponse[models.CreditResponse]("failed to fetch credit", "Unable to fetch credit right now"), err
	}
	return commons.SuccessResponse("credit fetched", models.NewCreditResponse(credit)), nil
}

func (s *CreditService) ListCredits(ctx context.Context, clientID uuid.UUID) (commons.Response[[]models.CreditResponse], error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.CreditResponse]("client not found"), err
		}
		return commons.ErrorResponse[[]models.CreditResponse]("failed to list credits", "Unable to list credits right now"), err
	}

	credits, err := s.creditRepo.ListByClient(ctx, clientID)
	if err != nil {
		logger.Error("credit service list repository failed", err, logger.Fields{"clientId": clientID})
		return commons.ErrorResponse[[]models.CreditResponse]("failed to list credits", "Unable to list credits right now"), err
	}
	return commons.SuccessResponse("credits fetched", models.NewCreditResponses(credits)), nil
}
