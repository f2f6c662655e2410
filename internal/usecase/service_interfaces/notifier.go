package service_interfaces

import (
	"github.com/api-sage/retail-bank-core/internal/domain"
)

// Notifier delivers terminal-status callbacks to external listeners. Dispatch
// must not block the caller and must never fail the settlement that triggered
// it.
type Notifier interface {
	Dispatch(payment domain.Payment)
}
