package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
)

type TariffService struct {
	tariffRepo repo_interfaces.TariffRepository
}

func NewTariffService(tariffRepo repo_interfaces.TariffRepository) *TariffService {
	return &TariffService{tariffRepo: tariffRepo}
}

func (s *TariffService) CreateTariff(ctx context.Context, req models.CreateTariffRequest) (commons.Response[models.TariffResponse], error) {
	logger.Info("tariff service create request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("tariff service create validation failed", err, nil)
		return commons.ErrorResponse[models.TariffResponse]("validation failed", err.Error()), err
	}

	tariff := domain.Tariff{
		ID:       uuid.New(),
		Kind:     domain.TariffKind(strings.TrimSpace(req.Kind)),
		Category: strings.TrimSpace(req.Category),
		Rate:     req.Rate,
	}

	created, err := s.tariffRepo.Create(ctx, tariff)
	if err != nil {
		logger.Error("tariff service create repository failed", err, logger.Fields{
			"tariffId": tariff.ID,
		})
		return commons.ErrorResponse[models.TariffResponse]("failed to create tariff", "Unable to create tariff right now"), err
	}

	return commons.SuccessResponse("tariff created", models.NewTariffResponse(created)), nil
}

func (s *TariffService) ListTariffs(ctx context.Context, kind domain.TariffKind) (commons.Response[[]models.TariffResponse], error) {
	if !kind.Valid() {
		err := fmt.Errorf("kind must be one of Account, Credit, Investment")
		return commons.ErrorResponse[[]models.TariffResponse]("validation failed", err.Error()), err
	}

	tariffs, err := s.tariffRepo.ListByKind(ctx, kind)
	if err != nil {
		logger.Error("tariff service list repository failed", err, logger.Fields{"kind": kind})
		return commons.ErrorResponse[[]models.TariffResponse]("failed to list tariffs", "Unable to list tariffs right now"), err
	}

	responses := make([]models.TariffResponse, 0, len(tariffs))
	for _, tariff := range tariffs {
		responses = append(responses, models.NewTariffResponse(tariff))
	}
	return commons.SuccessResponse("tariffs fetched", responses), nil
}
