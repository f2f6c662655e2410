package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/adapter/repository/memory"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

func TestCreateTariffAndListByKind(t *testing.T) {
	store := memory.NewStore()
	service := NewTariffService(store.Tariffs())
	ctx := context.Background()

	if _, err := service.CreateTariff(ctx, models.CreateTariffRequest{
		Kind:     string(domain.TariffKindCredit),
		Category: "Auto",
		Rate:     decimal.NewFromInt(9),
	}); err != nil {
		t.Fatalf("create tariff: %v", err)
	}

	response, err := service.ListTariffs(ctx, domain.TariffKindCredit)
	if err != nil {
		t.Fatalf("list tariffs: %v", err)
	}
	if got := len(*response.Data); got != 1 {
		t.Fatalf("tariffs = %d, want 1", got)
	}

	empty, err := service.ListTariffs(ctx, domain.TariffKindInvestment)
	if err != nil {
		t.Fatalf("list tariffs: %v", err)
	}
	if got := len(*empty.Data); got != 0 {
		t.Fatalf("investment tariffs = %d, want 0", got)
	}
}

func TestCreateTariffRejectsForeignCategory(t *testing.T) {
	service := NewTariffService(memory.NewStore().Tariffs())

	// Auto is a credit category, not an account one.
	if _, err := service.CreateTariff(context.Background(), models.CreateTariffRequest{
		Kind:     string(domain.TariffKindAccount),
		Category: "Auto",
		Rate:     decimal.NewFromInt(3),
	}); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestCreateTariffRejectsRateOutOfRange(t *testing.T) {
	service := NewTariffService(memory.NewStore().Tariffs())

	if _, err := service.CreateTariff(context.Background(), models.CreateTariffRequest{
		Kind:     string(domain.TariffKindCredit),
		Category: "Auto",
		Rate:     decimal.NewFromInt(25),
	}); err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestListTariffsRejectsUnknownKind(t *testing.T) {
	service := NewTariffService(memory.NewStore().Tariffs())

	if _, err := service.ListTariffs(context.Background(), domain.TariffKind("Mortgage")); err == nil {
		t.Fatal("expected a validation error")
	}
}
