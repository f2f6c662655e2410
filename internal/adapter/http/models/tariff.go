package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/domain"
)

type CreateTariffRequest struct {
	Kind     string          `json:"kind"`
	Category string          `json:"category"`
	Rate     decimal.Decimal `json:"rate"`
}

func (r CreateTariffRequest) Validate() error {
	var errs []string

	kind := domain.TariffKind(strings.TrimSpace(r.Kind))
	if !kind.Valid() {
		errs = append(errs, "kind must be one of Account, Credit, Investment")
	} else if !domain.ValidTariffCategory(kind, strings.TrimSpace(r.Category)) {
		errs = append(errs, "category is not supported for this kind")
	}
	if !domain.ValidRate(r.Rate) {
		errs = append(errs, "rate must be between 0 and 20 percent")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TariffResponse struct {
	ID       uuid.UUID       `json:"id"`
	Kind     string          `json:"kind"`
	Category string          `json:"category"`
	Rate     decimal.Decimal `json:"rate"`
	Created  time.Time       `json:"created"`
}

func NewTariffResponse(tariff domain.Tariff) TariffResponse {
	return TariffResponse{
		ID:       tariff.ID,
		Kind:     string(tariff.Kind),
		Category: tariff.Category,
		Rate:     tariff.Rate,
		Created:  tariff.Created,
	}
}
