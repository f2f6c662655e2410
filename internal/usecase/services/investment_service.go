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

type InvestmentService struct {
	investmentRepo repo_interfaces.InvestmentRepository
	accountRepo    repo_interfaces.AccountRepository
	clientRepo     repo_interfaces.ClientRepository
	tariffRepo     repo_interfaces.TariffRepository
}

func NewInvestmentService(
	investmentRepo repo_interfaces.InvestmentRepository,
	accountRepo repo_interfaces.AccountRepository,
	clientRepo repo_interfaces.ClientRepository,
	tariffRepo repo_interfaces.TariffRepository,
) *InvestmentService {
	return &InvestmentService{
		investmentRepo: investmentRepo,
		accountRepo:    accountRepo,
		clientRepo:     clientRepo,
		tariffRepo:     tariffRepo,
	}
}

func (s *InvestmentService) OpenInvestment(ctx context.Context, req models.OpenInvestmentRequest) (commons.Response[models.InvestmentResponse], error) {
	logger.Info("investment service open request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("investment service open validation failed", err, nil)
		return commons.ErrorResponse[models.InvestmentResponse]("validation failed", err.Error()), err
	}

	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.InvestmentResponse]("client not found"), err
		}
		return commons.ErrorResponse[models.InvestmentResponse]("failed to open investment", "Unable to open investment right now"), err
	}
	if client.Type == domain.ClientTypeBank {
		err := commons.ErrBankSelfDealing
		return commons.ErrorResponse[models.InvestmentResponse]("bank cannot open products against itself", err.Error()), err
	}

	tariff, err := s.tariffRepo.GetByID(ctx, req.TariffID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.InvestmentResponse]("tariff not found"), commons.ErrTariffNotFound
		}
		return commons.ErrorResponse[models.InvestmentResponse]("failed to open investment", "Unable to open investment right now"), err
	}
	if tariff.Kind != domain.TariffKindInvestment {
		err := commons.ErrTariffNotFound
		return commons.ErrorResponse[models.InvestmentResponse]("tariff not found", "tariff is not an investment tariff"), err
	}

	recipient, err := s.accountRepo.GetByID(ctx, req.RecipientAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.InvestmentResponse]("recipient account not found"), err
		}
		return commons.ErrorResponse[models.InvestmentResponse]("failed to open investment", "Unable to open investment right now"), err
	}
	payment, err := s.accountRepo.GetByID(ctx, req.PaymentAccountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.InvestmentResponse]("payment account not found"), err
		}
		return commons.ErrorResponse[models.InvestmentResponse]("failed to open investment", "Unable to open investment right now"), err
	}
	// Self-dealing is judged per account: a bank-owned account on either
	// side disqualifies the investment no matter who asks.
	for _, account := range []domain.Account{recipient, payment} {
		owner, err := s.clientRepo.GetByID(ctx, account.ClientID)
		if err != nil {
			return commons.ErrorResponse[models.InvestmentResponse]("failed to open investment", "Unable to open investment right now"), err
		}
		if owner.Type == domain.ClientTypeBank {
			err := commons.ErrBankSelfDealing
			return commons.ErrorResponse[models.InvestmentResponse]("bank accounts cannot back client products", err.Error()), err
		}
	}
	if recipient.ClientID != req.ClientID || payment.ClientID != req.ClientID {
		err := commons.ErrAccountOwnership
		return commons.ErrorResponse[models.InvestmentResponse]("not the account owner", err.Error()), err
	}

	// One active investment per tariff per client.
	taken, err := s.investmentRepo.HasActiveForClientAndTariff(ctx, req.ClientID, req.TariffID)
	if err != nil {
		return commons.ErrorResponse[models.InvestmentResponse]("failed to open investment", "Unable to open investment right now"), err
	}
	if taken {
		err := commons.ErrDuplicateTariff
		return commons.ErrorResponse[models.InvestmentResponse]("tariff already in use", err.Error()), err
	}

	if payment.Funds.LessThan(req.Amount) {
		err := commons.ErrInsufficientBalance
		return commons.ErrorResponse[models.InvestmentResponse]("insufficient balance", err.Error()), err
	}

	remaining, monthly, err := domain.InvestmentSchedule(req.Amount, tariff.Rate, req.TermYears)
	if err != nil {
		return commons.ErrorResponse[models.InvestmentResponse]("validation failed", err.Error()), err
	}

	investment := domain.Investment{
		ID:                 uuid.New(),
		ClientID:           req.ClientID,
		Amount:             req.Amount,
		TariffID:           req.TariffID,
		RecipientAccountID: req.RecipientAccountID,
		PaymentAccountID:   req.PaymentAccountID,
		RemainingAmount:    remaining,
		TermYears:          req.TermYears,
		MonthlyPayment:     monthly,
		Status:             domain.ObligationStatusActive,
	}

	created, err := s.investmentRepo.OpenWithFunding(ctx, investment)
	if err != nil {
		if errors.Is(err, commons.ErrInsufficientBalance) {
			return commons.ErrorResponse[models.InvestmentResponse]("insufficient balance", err.Error()), err
		}
		logger.Error("investment service open repository failed", err, logger.Fields{
			"investmentId": investment.ID,
		})
		return commons.ErrorResponse[models.InvestmentResponse]("failed to open investment", "Unable to open investment right now"), err
	}

	logger.Info("investment service open succeeded", logger.Fields{
		"investmentId": created.ID,
		"clientId":     created.ClientID,
		"payout":       created.RemainingAmount,
	})
	return commons.SuccessResponse("investment opened", models.NewInvestmentResponse(created)), nil
}

func (s *InvestmentService) GetInvestment(ctx context.Context, id uuid.UUID) (commons.Response[models.InvestmentResponse], error) {
	investment, err := s.investmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.InvestmentResponse]("investment not found"), err
		}
		logger.Error("investment service get repository failed", err, logger.Fields{"investmentId": id})
		return commons.ErrorResponse[models.InvestmentResponse]("failed to fetch investment", "Unable to fetch investment right now"), err
	}
	return commons.SuccessResponse("investment fetched", models.NewInvestmentResponse(investment)), nil
}

func (s *InvestmentService) ListInvestments(ctx context.Context, clientID uuid.UUID) (commons.Response[[]models.InvestmentResponse], error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.InvestmentResponse]("client not found"), err
		}
		return commons.ErrorResponse[[]models.InvestmentResponse]("failed to list investments", "Unable to list investments right now"), err
	}

	investments, err := s.investmentRepo.ListByClient(ctx, clientID)
	if err != nil {
		logger.Error("investment service list repository failed", err, logger.Fields{"clientId": clientID})
		return commons.ErrorResponse[[]models.InvestmentResponse]("failed to list investments", "Unable to list investments right now"), err
	}
	return commons.SuccessResponse("investments fetched", models.NewInvestmentResponses(investments)), nil
}
