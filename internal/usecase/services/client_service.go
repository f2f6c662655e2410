package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
)

type ClientService struct {
	clientRepo repo_interfaces.ClientRepository
}

func NewClientService(clientRepo repo_interfaces.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

func (s *ClientService) Register(ctx context.Context, req models.RegisterClientRequest) (commons.Response[models.ClientResponse], error) {
	logger.Info("client service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("client service register validation failed", err, nil)
		return commons.ErrorResponse[models.ClientResponse]("validation failed", err.Error()), err
	}

	hashedPIN, err := hashPIN(strings.TrimSpace(req.PIN))
	if err != nil {
		logger.Error("client service register hash pin failed", err, nil)
		return commons.ErrorResponse[models.ClientResponse]("failed to register client", "failed to hash pin"), err
	}

	client := domain.Client{
		ID:          uuid.New(),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Type:        domain.ClientTypePrivate,
		PINHash:     hashedPIN,
	}

	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		logger.Error("client service register repository failed", err, logger.Fields{
			"clientId": client.ID,
		})
		return commons.ErrorResponse[models.ClientResponse]("failed to register client", "Unable to register client right now"), err
	}

	logger.Info("client service register succeeded", logger.Fields{"clientId": created.ID})
	return commons.SuccessResponse("client registered", models.NewClientResponse(created)), nil
}

func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (commons.Response[models.ClientResponse], error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.ClientResponse]("client not found"), err
		}
		logger.Error("client service get repository failed", err, logger.Fields{"clientId": id})
		return commons.ErrorResponse[models.ClientResponse]("failed to fetch client", "Unable to fetch client right now"), err
	}
	return commons.SuccessResponse("client fetched", models.NewClientResponse(client)), nil
}

func hashPIN(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// verifyPIN distinguishes a wrong pin from a broken stored hash.
func verifyPIN(storedHash, pin string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return commons.ErrInvalidPIN
		}
		return err
	}
	return nil
}
