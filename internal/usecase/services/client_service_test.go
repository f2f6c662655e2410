package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/adapter/repository/memory"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

func TestRegisterClientHashesPIN(t *testing.T) {
	store := memory.NewStore()
	service := NewClientService(store.Clients())
	ctx := context.Background()

	response, err := service.Register(ctx, models.RegisterClientRequest{
		PhoneNumber: "89161234567",
		PIN:         "4321",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if response.Data.Type != string(domain.ClientTypePrivate) {
		t.Errorf("type = %s, want Private", response.Data.Type)
	}

	client, err := store.Clients().GetByID(ctx, response.Data.ID)
	if err != nil {
		t.Fatalf("fetch client: %v", err)
	}
	if client.PINHash == "4321" {
		t.Error("pin must never be stored in the clear")
	}
	if err := verifyPIN(client.PINHash, "4321"); err != nil {
		t.Errorf("stored hash must verify the pin: %v", err)
	}
}

func TestRegisterClientRejectsBadPhone(t *testing.T) {
	service := NewClientService(memory.NewStore().Clients())

	for _, phone := range []string{"", "12345", "791612345678", "8916123456a"} {
		if _, err := service.Register(context.Background(), models.RegisterClientRequest{
			PhoneNumber: phone,
			PIN:         "4321",
		}); err == nil {
			t.Errorf("phone %q must be rejected", phone)
		}
	}
}

func TestRegisterClientRejectsBadPIN(t *testing.T) {
	service := NewClientService(memory.NewStore().Clients())

	for _, pin := range []string{"", "12", "1234567", "12ab"} {
		if _, err := service.Register(context.Background(), models.RegisterClientRequest{
			PhoneNumber: "89161234567",
			PIN:         pin,
		}); err == nil {
			t.Errorf("pin %q must be rejected", pin)
		}
	}
}

func TestGetClientNotFound(t *testing.T) {
	service := NewClientService(memory.NewStore().Clients())

	if _, err := service.GetClient(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected an error for an unknown client")
	}
}
