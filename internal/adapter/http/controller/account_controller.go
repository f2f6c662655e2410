package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/logger"
	"github.com/api-sage/retail-bank-core/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("POST /accounts", wrap(c.open))
	mux.Handle("GET /accounts/{id}", wrap(c.get))
	mux.Handle("GET /clients/{id}/accounts", wrap(c.listByClient))
}

func (c *AccountController) open(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.OpenAccount(r.Context(), req)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := errorStatus(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *AccountController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response := commons.ErrorResponse[models.AccountResponse]("validation failed", "id must be a uuid")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetAccount(r.Context(), id)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := errorStatus(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *AccountController) listByClient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	clientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response := commons.ErrorResponse[[]models.AccountResponse]("validation failed", "id must be a uuid")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.ListAccounts(r.Context(), clientID)
	if err != nil {
		logError(r, err, logger.Fields{"message": response.Message})
		status := errorStatus(response.Message, err)
		writeJSON(w, status, response)
		logResponse(r, status, response, start)
		return
	}

	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}
