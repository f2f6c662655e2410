package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
)

func execRequiredRows(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("execute transaction statement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	if rows == 0 {
		return 0, errors.New("posting failed: record not found or insufficient balance")
	}
	return rows, nil
}

// debitAccount applies a conditional debit inside tx. The funds >= amount
// guard makes the debit itself refuse to drive a balance negative, so two
// concurrent debits cannot both pass a stale validation read.
func debitAccount(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, amount decimal.Decimal, insufficientErr error) error {
	const query = `
UPDATE account
SET funds = funds - $2::numeric,
    modified = NOW()
WHERE id = $1
  AND funds >= $2::numeric`

	result, err := tx.ExecContext(ctx, query, accountID, amount)
	if err != nil {
		return fmt.Errorf("debit account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("debit account rows affected: %w", err)
	}
	if rows == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM account WHERE id = $1)`, accountID).Scan(&exists); err != nil {
			return fmt.Errorf("check debit account existence: %w", err)
		}
		if !exists {
			return commons.ErrRecordNotFound
		}
		return insufficientErr
	}
	return nil
}

func creditAccount(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, amount decimal.Decimal) error {
	const query = `
UPDATE account
SET funds = funds + $2::numeric,
    modified = NOW()
WHERE id = $1`

	result, err := tx.ExecContext(ctx, query, accountID, amount)
	if err != nil {
		return fmt.Errorf("credit account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("credit account rows affected: %w", err)
	}
	if rows == 0 {
		return commons.ErrRecordNotFound
	}
	return nil
}

// lockBankAccount selects and row-locks the bank-owned account with the
// highest (desc=true) or lowest balance, so the selection stays valid for the
// rest of the enclosing transaction.
func lockBankAccount(ctx context.Context, tx *sql.Tx, highest bool) (uuid.UUID, error) {
	order := "ASC"
	if highest {
		order = "DESC"
	}
	query := fmt.Sprintf(`
SELECT a.id
FROM account a
JOIN client c ON c.id = a.client_id
WHERE c.type = 'Bank'
ORDER BY a.funds %s, a.created ASC
LIMIT 1
FOR UPDATE OF a`, order)

	var id uuid.UUID
	if err := tx.QueryRowContext(ctx, query).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return uuid.Nil, commons.ErrRecordNotFound
		}
		return uuid.Nil, fmt.Errorf("lock bank account: %w", err)
	}
	return id, nil
}

func marshalCallback(callback *domain.PaymentCallback) (any, error) {
	if callback == nil || callback.Empty() {
		return nil, nil
	}
	raw, err := json.Marshal(callback)
	if err != nil {
		return nil, fmt.Errorf("marshal payment callback: %w", err)
	}
	return raw, nil
}

func unmarshalCallback(raw []byte) (*domain.PaymentCallback, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var callback domain.PaymentCallback
	if err := json.Unmarshal(raw, &callback); err != nil {
		return nil, fmt.Errorf("unmarshal payment callback: %w", err)
	}
	return &callback, nil
}
