package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactType string

const (
	TransactTypeTransfer   TransactType = "Transfer"
	TransactTypePurchase   TransactType = "Purchase"
	TransactTypeCredit     TransactType = "Credit"
	TransactTypeInvestment TransactType = "Investment"
)

func (t TransactType) Valid() bool {
	switch t {
	case TransactTypeTransfer, TransactTypePurchase, TransactTypeCredit, TransactTypeInvestment:
		return true
	}
	return false
}

// Transact is the immutable record of one balance movement. Its existence is
// the durable signal that the debit and credit it describes were applied.
type Transact struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Amount      decimal.Decimal
	Type        TransactType
	Created     time.Time
}
