package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
)

const bankPhoneNumber = "88000000000"

// BootstrapService seeds the reference data a fresh deployment needs: a
// tariff per category for every product kind, the single Bank client, and
// the bank's bootstrap account holding the initial funds. Every step is
// idempotent, so running it on every startup is safe.
type BootstrapService struct {
	clientRepo  repo_interfaces.ClientRepository
	tariffRepo  repo_interfaces.TariffRepository
	accountRepo repo_interfaces.AccountRepository
	bankPIN     string
}

func NewBootstrapService(
	clientRepo repo_interfaces.ClientRepository,
	tariffRepo repo_interfaces.TariffRepository,
	accountRepo repo_interfaces.AccountRepository,
	bankPIN string,
) *BootstrapService {
	return &BootstrapService{
		clientRepo:  clientRepo,
		tariffRepo:  tariffRepo,
		accountRepo: accountRepo,
		bankPIN:     bankPIN,
	}
}

func (s *BootstrapService) Run(ctx context.Context) error {
	if err := s.seedTariffs(ctx); err != nil {
		return err
	}
	return s.seedBank(ctx)
}

func (s *BootstrapService) seedTariffs(ctx context.Context) error {
	for _, kind := range []domain.TariffKind{
		domain.TariffKindAccount,
		domain.TariffKindCredit,
		domain.TariffKindInvestment,
	} {
		exists, err := s.tariffRepo.AnyOfKind(ctx, kind)
		if err != nil {
			return fmt.Errorf("check %s tariffs: %w", kind, err)
		}
		if exists {
			continue
		}

		for _, category := range domain.TariffCategories(kind) {
			tariff := domain.Tariff{
				ID:       uuid.New(),
				Kind:     kind,
				Category: category,
				Rate:     decimal.NewFromInt(int64(rand.IntN(20) + 1)),
			}
			if _, err := s.tariffRepo.Create(ctx, tariff); err != nil {
				return fmt.Errorf("seed %s tariff %s: %w", kind, category, err)
			}
		}
		logger.Info("bootstrap seeded tariffs", logger.Fields{"kind": kind})
	}
	return nil
}

func (s *BootstrapService) seedBank(ctx context.Context) error {
	if _, err := s.clientRepo.GetBankClient(ctx); err == nil {
		return nil
	} else if !errors.Is(err, commons.ErrRecordNotFound) {
		return fmt.Errorf("check bank client: %w", err)
	}

	hashedPIN, err := hashPIN(s.bankPIN)
	if err != nil {
		return fmt.Errorf("hash bank pin: %w", err)
	}

	bank, err := s.clientRepo.Create(ctx, domain.Client{
		ID:          uuid.New(),
		PhoneNumber: bankPhoneNumber,
		Type:        domain.ClientTypeBank,
		PINHash:     hashedPIN,
	})
	if err != nil {
		return fmt.Errorf("seed bank client: %w", err)
	}

	tariffs, err := s.tariffRepo.ListByKind(ctx, domain.TariffKindAccount)
	if err != nil {
		return fmt.Errorf("list account tariffs: %w", err)
	}
	if len(tariffs) == 0 {
		return fmt.Errorf("no account tariffs to open bank account with")
	}

	account, err := s.accountRepo.Create(ctx, domain.Account{
		ID:       uuid.New(),
		ClientID: bank.ID,
		TariffID: tariffs[0].ID,
		Funds:    domain.InitialBankFunds,
	})
	if err != nil {
		return fmt.Errorf("seed bank account: %w", err)
	}

	logger.Info("bootstrap seeded bank", logger.Fields{
		"clientId":  bank.ID,
		"accountId": account.ID,
		"funds":     account.Funds,
	})
	return nil
}
