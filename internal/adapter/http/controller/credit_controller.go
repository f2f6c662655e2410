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

type CreditController struct {
	service service_interfaces.CreditService
}

func NewCreditController(service service_interfaces.CreditService) *CreditController {
	return &CreditController{service: service}
}

func (c *CreditController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("POST /credits", wrap(c.open))
	mux.Handle("GET /credits/{id}", wrap(c.get))
	mux.Handle("GET /clients/{id}/credits", wrap(c.listByClient))
}

func (c *CreditController) open(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.OpenCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.CreditResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.OpenCredit(r.Context(), req)
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

func (c *CreditController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response := commons.ErrorResponse[models.CreditResponse]("validation failed", "id must be a uuid")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetCredit(r.Context(), id)
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

func (c *CreditController) listByClient(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	clientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response := commons.ErrorResponse[[]models.CreditResponse]("validation failed", "id must be a uuid")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.ListCredits(r.Context(), clientID)
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
