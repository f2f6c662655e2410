package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
)

// NotifierService delivers terminal-status callbacks over HTTP. Delivery is
// best effort: failures are logged and dropped, never retried, and never
// surfaced to the settlement that triggered them.
type NotifierService struct {
	client *http.Client
}

func NewNotifierService(timeout time.Duration) *NotifierService {
	return &NotifierService{
		client: &http.Client{Timeout: timeout},
	}
}

func (s *NotifierService) Dispatch(payment domain.Payment) {
	if payment.Callback == nil || payment.Callback.URL == "" {
		return
	}
	go s.deliver(payment)
}

func (s *NotifierService) deliver(payment domain.Payment) {
	body, err := json.Marshal(map[string]string{
		"id":     payment.ID.String(),
		"status": string(payment.Status),
	})
	if err != nil {
		logger.Error("notifier marshal failed", err, logger.Fields{"paymentId": payment.ID})
		return
	}

	req, err := http.NewRequest(http.MethodPatch, payment.Callback.URL, bytes.NewReader(body))
	if err != nil {
		logger.Error("notifier build request failed", err, logger.Fields{"paymentId": payment.ID})
		return
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range payment.Callback.Headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("notifier delivery failed", err, logger.Fields{
			"paymentId": payment.ID,
			"status":    payment.Status,
		})
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusMultipleChoices {
		logger.Error("notifier delivery rejected", fmt.Errorf("callback returned %d", resp.StatusCode), logger.Fields{
			"paymentId": payment.ID,
		})
		return
	}

	logger.Info("notifier delivery succeeded", logger.Fields{
		"paymentId": payment.ID,
		"status":    payment.Status,
	})
}
