package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/usecase/service_interfaces"
)

// SweepController exposes the scheduler's sweeps as operator endpoints, so a
// sweep can be forced between ticks.
type SweepController struct {
	scheduler service_interfaces.SchedulerService
}

func NewSweepController(scheduler service_interfaces.SchedulerService) *SweepController {
	return &SweepController{scheduler: scheduler}
}

func (c *SweepController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	wrap := func(h http.HandlerFunc) http.Handler {
		if authMiddleware != nil {
			return authMiddleware(h)
		}
		return h
	}

	mux.Handle("POST /sweeps/credits", wrap(c.sweep(c.scheduler.CheckCredits)))
	mux.Handle("POST /sweeps/investments", wrap(c.sweep(c.scheduler.CheckInvestments)))
	mux.Handle("POST /sweeps/payments", wrap(c.sweep(c.scheduler.CheckPayments)))
}

func (c *SweepController) sweep(run func(ctx context.Context, now time.Time) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logRequest(r, nil)

		if err := run(r.Context(), time.Now().UTC()); err != nil {
			logError(r, err, nil)
			response := commons.ErrorResponse[string]("sweep failed", "Unable to run sweep right now")
			writeJSON(w, http.StatusInternalServerError, response)
			logResponse(r, http.StatusInternalServerError, response, start)
			return
		}

		response := commons.SuccessResponse("sweep completed", "ok")
		writeJSON(w, http.StatusOK, response)
		logResponse(r, http.StatusOK, response, start)
	}
}
