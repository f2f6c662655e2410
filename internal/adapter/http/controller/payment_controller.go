package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/adapter/http/models"
	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
	"github.com/api-sage/retail-bank-core/internal/usecase/service_interfaces"
)

type PaymentController struct {
	service service_interfaces.PaymentService
}

func NewPaymentController(service service_interfaces.PaymentService) *PaymentController {
	return &PaymentController{service: service}
}

func (c *PaymentController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("POST /payments", wrap(c.create))
	mux.Handle("POST /payments/{id}/claim", wrap(c.claim))
	mux.Handle("POST /payments/{id}/confirm", wrap(c.confirm))
	mux.Handle("GET /payments/{id}", wrap(c.get))
	mux.Handle("GET /accounts/{id}/payments", wrap(c.listByAccount))
	mux.Handle("GET /clients/{id}/payments/waiting-total", wrap(c.waitingTotal))
}

func (c *PaymentController) create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.PaymentResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.CreatePayment(r.Context(), req)
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

func (c *PaymentController) claim(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	paymentID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response := commons.ErrorResponse[models.PaymentResponse]("validation failed", "id must be a uuid")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	var req models.ClaimPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.PaymentResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.ClaimPayment(r.Context(), paymentID, req)
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

func (c *PaymentController) confirm(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	paymentID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response := commons.ErrorResponse[models.PaymentResponse]("validation failed", "id must be a uuid")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	var req models.ConfirmPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[models.PaymentResponse]("invalid request body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, req)

	response, err := c.service.ConfirmPayment(r.Context(), paymentID, req)
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

func (c *PaymentController) get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response := commons.ErrorResponse[models.PaymentResponse]("validation failed", "id must be a uuid")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.GetPayment(r.Context(), id)
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

func (c *PaymentController) listByAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	accountID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response := commons.ErrorResponse[[]models.PaymentResponse]("validation failed", "id must be a uuid")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	response, err := c.service.ListPayments(r.Context(), accountID)
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

func (c *PaymentController) waitingTotal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	clientID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response := commons.ErrorResponse[models.WaitingTotalResponse]("validation failed", "id must be a uuid")
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}

	transactType := domain.TransactType(r.URL.Query().Get("type"))

	response, err := c.service.WaitingTotal(r.Context(), clientID, transactType)
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
