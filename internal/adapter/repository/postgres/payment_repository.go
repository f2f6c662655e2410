package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentSelect = `
SELECT id, sender_id, recipient_id, amount, status, pay_date, type, callback, created
FROM payment`

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	logger.Info("payment repository create", logger.Fields{
		"paymentId":   payment.ID,
		"recipientId": payment.RecipientID,
		"amount":      payment.Amount,
		"type":        payment.Type,
	})

	callbackRaw, err := marshalCallback(payment.Callback)
	if err != nil {
		return domain.Payment{}, err
	}

	const query = `
INSERT INTO payment (id, sender_id, recipient_id, amount, status, pay_date, type, callback)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created`

	var senderID uuid.NullUUID
	if payment.SenderID != nil {
		senderID = uuid.NullUUID{UUID: *payment.SenderID, Valid: true}
	}

	if err := r.db.QueryRowContext(
		ctx,
		query,
		payment.ID,
		senderID,
		payment.RecipientID,
		payment.Amount,
		payment.Status,
		payment.PayDate,
		payment.Type,
		callbackRaw,
	).Scan(&payment.Created); err != nil {
		logger.Error("payment repository create failed", err, logger.Fields{"paymentId": payment.ID})
		return domain.Payment{}, fmt.Errorf("create payment: %w", err)
	}

	return payment, nil
}

// CreateInstallment inserts a scheduler-emitted installment and advances the
// billing anchor's modified timestamp in the same database transaction. The
// anchor bump moves the next due date a month forward, so re-running the
// sweep on the same day cannot emit a second installment.
func (r *PaymentRepository) CreateInstallment(ctx context.Context, payment domain.Payment, historyID uuid.UUID, now time.Time) (domain.Payment, error) {
	logger.Info("payment repository create installment", logger.Fields{
		"paymentId": payment.ID,
		"historyId": historyID,
	})

	callbackRaw, err := marshalCallback(payment.Callback)
	if err != nil {
		return domain.Payment{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("payment repository begin installment tx failed", err, nil)
		return domain.Payment{}, fmt.Errorf("begin installment transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `
INSERT INTO payment (id, sender_id, recipient_id, amount, status, pay_date, type, callback)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created`

	var senderID uuid.NullUUID
	if payment.SenderID != nil {
		senderID = uuid.NullUUID{UUID: *payment.SenderID, Valid: true}
	}

	if err = tx.QueryRowContext(
		ctx,
		insertQuery,
		payment.ID,
		senderID,
		payment.RecipientID,
		payment.Amount,
		payment.Status,
		payment.PayDate,
		payment.Type,
		callbackRaw,
	).Scan(&payment.Created); err != nil {
		logger.Error("payment repository insert installment failed", err, logger.Fields{"paymentId": payment.ID})
		return domain.Payment{}, fmt.Errorf("insert installment payment: %w", err)
	}

	if _, err = execRequiredRows(
		ctx,
		tx,
		`UPDATE credit_payment_history SET modified = $2 WHERE id = $1`,
		historyID,
		now,
	); err != nil {
		return domain.Payment{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("payment repository commit installment tx failed", err, nil)
		return domain.Payment{}, fmt.Errorf("commit installment transaction: %w", err)
	}

	return payment, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Payment, error) {
	const query = paymentSelect + ` WHERE id = $1`

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Payment{}, commons.ErrRecordNotFound
		}
		logger.Error("payment repository get failed", err, logger.Fields{"paymentId": id})
		return domain.Payment{}, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

func (r *PaymentRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Payment, error) {
	const query = paymentSelect + ` WHERE sender_id = $1 OR recipient_id = $1 ORDER BY created DESC`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		logger.Error("payment repository list failed", err, logger.Fields{"accountId": accountID})
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

func (r *PaymentRepository) SumWaitingByClientAndType(ctx context.Context, clientID uuid.UUID, transactType domain.TransactType) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(p.amount), 0)
FROM payment p
JOIN account a ON a.id = p.sender_id
WHERE a.client_id = $1
  AND p.status = 'Waiting'
  AND p.type = $2`

	var sum decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, clientID, transactType).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum waiting payments: %w", err)
	}
	return sum, nil
}

func (r *PaymentRepository) AssignSender(ctx context.Context, paymentID, senderAccountID uuid.UUID) (domain.Payment, error) {
	logger.Info("payment repository assign sender", logger.Fields{
		"paymentId": paymentID,
		"senderId":  senderAccountID,
	})

	const query = `
UPDATE payment
SET sender_id = $2
WHERE id = $1
  AND status = 'Waiting'
  AND recipient_id <> $2
RETURNING id, sender_id, recipient_id, amount, status, pay_date, type, callback, created`

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, paymentID, senderAccountID))
	if err == nil {
		return payment, nil
	}
	if err != sql.ErrNoRows {
		logger.Error("payment repository assign sender failed", err, logger.Fields{"paymentId": paymentID})
		return domain.Payment{}, fmt.Errorf("assign payment sender: %w", err)
	}

	// Zero rows: resolve which precondition failed.
	existing, getErr := r.GetByID(ctx, paymentID)
	if getErr != nil {
		return domain.Payment{}, getErr
	}
	if existing.Status.Terminal() {
		return domain.Payment{}, commons.ErrPaymentLocked
	}
	return domain.Payment{}, commons.ErrSameAccount
}

// ConfirmWithPosting performs the entire confirmation as one database
// transaction: the Waiting -> Confirmed flip, the transact record, the
// balance postings, and any credit/investment settlement the callback
// references. External notification is deliberately not part of this unit.
func (r *PaymentRepository) ConfirmWithPosting(ctx context.Context, paymentID uuid.UUID) (domain.Payment, error) {
	logger.Info("payment repository confirm with posting", logger.Fields{
		"paymentId": paymentID,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("payment repository begin confirm tx failed", err, nil)
		return domain.Payment{}, fmt.Errorf("begin confirm transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const lockQuery = paymentSelect + ` WHERE id = $1 FOR UPDATE`

	payment, err := scanPayment(tx.QueryRowContext(ctx, lockQuery, paymentID))
	if err != nil {
		if err == sql.ErrNoRows {
			err = commons.ErrRecordNotFound
			return domain.Payment{}, err
		}
		return domain.Payment{}, fmt.Errorf("lock payment: %w", err)
	}

	if payment.Status.Terminal() {
		err = commons.ErrPaymentLocked
		return domain.Payment{}, err
	}
	if payment.SenderID == nil {
		err = commons.ErrSenderNotAssigned
		return domain.Payment{}, err
	}

	const insertTransact = `
INSERT INTO transact (id, sender_id, recipient_id, amount, type)
VALUES ($1, $2, $3, $4, $5)`

	if _, err = tx.ExecContext(
		ctx,
		insertTransact,
		uuid.New(),
		*payment.SenderID,
		payment.RecipientID,
		payment.Amount,
		payment.Type,
	); err != nil {
		return domain.Payment{}, fmt.Errorf("insert payment transact: %w", err)
	}

	if err = debitAccount(ctx, tx, *payment.SenderID, payment.Amount, commons.ErrInsufficientBalance); err != nil {
		return domain.Payment{}, err
	}
	if err = creditAccount(ctx, tx, payment.RecipientID, payment.Amount); err != nil {
		return domain.Payment{}, err
	}

	if _, err = execRequiredRows(
		ctx,
		tx,
		`UPDATE payment SET status = 'Confirmed' WHERE id = $1`,
		payment.ID,
	); err != nil {
		return domain.Payment{}, err
	}
	payment.Status = domain.PaymentStatusConfirmed

	if payment.Callback != nil {
		if err = settleObligations(ctx, tx, *payment.Callback); err != nil {
			return domain.Payment{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		logger.Error("payment repository commit confirm tx failed", err, nil)
		return domain.Payment{}, fmt.Errorf("commit confirm transaction: %w", err)
	}

	return payment, nil
}

// settleObligations applies the callback's obligation back-references inside
// the confirmation transaction: one installment off the referenced credit,
// or marking the referenced investment paid.
func settleObligations(ctx context.Context, tx *sql.Tx, callback domain.PaymentCallback) error {
	if callback.CreditID != nil {
		var remaining, monthly decimal.Decimal
		if err := tx.QueryRowContext(
			ctx,
			`SELECT remaining_amount, monthly_payment FROM credit WHERE id = $1 FOR UPDATE`,
			*callback.CreditID,
		).Scan(&remaining, &monthly); err != nil {
			if err == sql.ErrNoRows {
				return commons.ErrRecordNotFound
			}
			return fmt.Errorf("lock credit for settlement: %w", err)
		}

		newRemaining := remaining.Sub(monthly)
		if newRemaining.IsPositive() {
			if _, err := execRequiredRows(
				ctx,
				tx,
				`UPDATE credit SET remaining_amount = $2, modified = NOW() WHERE id = $1`,
				*callback.CreditID,
				newRemaining,
			); err != nil {
				return err
			}
			if callback.CreditPaymentHistoryID != nil {
				if _, err := execRequiredRows(
					ctx,
					tx,
					`UPDATE credit_payment_history SET last_payment = NOW() WHERE id = $1`,
					*callback.CreditPaymentHistoryID,
				); err != nil {
					return err
				}
			}
		} else {
			if _, err := execRequiredRows(
				ctx,
				tx,
				`UPDATE credit SET remaining_amount = $2, status = 'Paid', modified = NOW() WHERE id = $1`,
				*callback.CreditID,
				newRemaining,
			); err != nil {
				return err
			}
			if _, err := tx.ExecContext(
				ctx,
				`DELETE FROM credit_payment_history WHERE credit_id = $1`,
				*callback.CreditID,
			); err != nil {
				return fmt.Errorf("delete credit payment history: %w", err)
			}
		}
	}

	if callback.InvestmentID != nil {
		if _, err := execRequiredRows(
			ctx,
			tx,
			`UPDATE investment SET status = 'Paid', modified = NOW() WHERE id = $1`,
			*callback.InvestmentID,
		); err != nil {
			return err
		}
	}

	return nil
}

func (r *PaymentRepository) HasWaitingForCredit(ctx context.Context, creditID uuid.UUID) (bool, error) {
	const query = `
SELECT EXISTS(
	SELECT 1 FROM payment
	WHERE status = 'Waiting'
	  AND callback->>'credit_id' = $1
)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, creditID.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check waiting installment: %w", err)
	}
	return exists, nil
}

func (r *PaymentRepository) HasWaitingForInvestment(ctx context.Context, investmentID uuid.UUID) (bool, error) {
	const query = `
SELECT EXISTS(
	SELECT 1 FROM payment
	WHERE status = 'Waiting'
	  AND callback->>'investment_id' = $1
)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, investmentID.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("check waiting repayment: %w", err)
	}
	return exists, nil
}

func (r *PaymentRepository) CancelExpired(ctx context.Context, now time.Time) ([]domain.Payment, error) {
	const query = `
UPDATE payment
SET status = 'Cancelled'
WHERE status = 'Waiting'
  AND pay_date <= $1
RETURNING id, sender_id, recipient_id, amount, status, pay_date, type, callback, created`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		logger.Error("payment repository cancel expired failed", err, nil)
		return nil, fmt.Errorf("cancel expired payments: %w", err)
	}
	defer rows.Close()

	return collectPayments(rows)
}

func scanPayment(row rowScanner) (domain.Payment, error) {
	var (
		payment     domain.Payment
		senderID    uuid.NullUUID
		callbackRaw []byte
	)

	if err := row.Scan(
		&payment.ID,
		&senderID,
		&payment.RecipientID,
		&payment.Amount,
		&payment.Status,
		&payment.PayDate,
		&payment.Type,
		&callbackRaw,
		&payment.Created,
	); err != nil {
		return domain.Payment{}, err
	}

	if senderID.Valid {
		value := senderID.UUID
		payment.SenderID = &value
	}

	callback, err := unmarshalCallback(callbackRaw)
	if err != nil {
		return domain.Payment{}, err
	}
	payment.Callback = callback

	return payment, nil
}

func collectPayments(rows *sql.Rows) ([]domain.Payment, error) {
	var payments []domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return payments, nil
}
