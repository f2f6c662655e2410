package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
)

type CreditRepository struct {
	db *sql.DB
}

func NewCreditRepository(db *sql.DB) *CreditRepository {
	return &CreditRepository{db: db}
}

// OpenWithFunding persists the credit and performs its funding in one
// database transaction: the bank account with the highest balance is locked
// and debited, the recipient account credited, a Credit-type transact is
// recorded and the payment-history anchor created. Partial application is
// never observable.
func (r *CreditRepository) OpenWithFunding(ctx context.Context, credit domain.Credit) (domain.Credit, domain.CreditPaymentHistory, error) {
	logger.Info("credit repository open with funding", logger.Fields{
		"creditId": credit.ID,
		"clientId": credit.ClientID,
		"amount":   credit.Amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("credit repository begin tx failed", err, nil)
		return domain.Credit{}, domain.CreditPaymentHistory{}, fmt.Errorf("begin credit transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	bankAccountID, err := lockBankAccount(ctx, tx, true)
	if err != nil {
		return domain.Credit{}, domain.CreditPaymentHistory{}, err
	}

	const insertCredit = `
INSERT INTO credit (
	id, client_id, recipient_account_id, payment_account_id,
	amount, tariff_id, remaining_amount, term, monthly_payment, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created, modified`

	if err = tx.QueryRowContext(
		ctx,
		insertCredit,
		credit.ID,
		credit.ClientID,
		credit.RecipientAccountID,
		credit.PaymentAccountID,
		credit.Amount,
		credit.TariffID,
		credit.RemainingAmount,
		credit.TermMonths,
		credit.MonthlyPayment,
		credit.Status,
	).Scan(&credit.Created, &credit.Modified); err != nil {
		logger.Error("credit repository insert failed", err, logger.Fields{"creditId": credit.ID})
		return domain.Credit{}, domain.CreditPaymentHistory{}, fmt.Errorf("insert credit: %w", err)
	}

	const insertTransact = `
INSERT INTO transact (id, sender_id, recipient_id, amount, type)
VALUES ($1, $2, $3, $4, $5)`

	if _, err = tx.ExecContext(
		ctx,
		insertTransact,
		uuid.New(),
		bankAccountID,
		credit.RecipientAccountID,
		credit.Amount,
		domain.TransactTypeCredit,
	); err != nil {
		return domain.Credit{}, domain.CreditPaymentHistory{}, fmt.Errorf("insert funding transact: %w", err)
	}

	// The solvency pre-check ran outside this transaction; the conditional
	// debit re-enforces it against the locked balance.
	if err = debitAccount(ctx, tx, bankAccountID, credit.Amount, commons.ErrBankInsolvency); err != nil {
		return domain.Credit{}, domain.CreditPaymentHistory{}, err
	}
	if err = creditAccount(ctx, tx, credit.RecipientAccountID, credit.Amount); err != nil {
		return domain.Credit{}, domain.CreditPaymentHistory{}, err
	}

	history := domain.CreditPaymentHistory{
		ID:       uuid.New(),
		CreditID: credit.ID,
	}

	const insertHistory = `
INSERT INTO credit_payment_history (id, credit_id)
VALUES ($1, $2)
RETURNING last_payment, created, modified`

	if err = tx.QueryRowContext(ctx, insertHistory, history.ID, history.CreditID).
		Scan(&history.LastPayment, &history.Created, &history.Modified); err != nil {
		return domain.Credit{}, domain.CreditPaymentHistory{}, fmt.Errorf("insert credit payment history: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.Error("credit repository commit tx failed", err, nil)
		return domain.Credit{}, domain.CreditPaymentHistory{}, fmt.Errorf("commit credit transaction: %w", err)
	}

	return credit, history, nil
}

func (r *CreditRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Credit, error) {
	const query = creditSelect + ` WHERE id = $1`

	var credit domain.Credit
	if err := scanCredit(r.db.QueryRowContext(ctx, query, id), &credit); err != nil {
		if err == sql.ErrNoRows {
			return domain.Credit{}, commons.ErrRecordNotFound
		}
		logger.Error("credit repository get failed", err, logger.Fields{"creditId": id})
		return domain.Credit{}, fmt.Errorf("get credit: %w", err)
	}
	return credit, nil
}

func (r *CreditRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Credit, error) {
	const query = creditSelect + ` WHERE client_id = $1 ORDER BY created DESC`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		logger.Error("credit repository list failed", err, logger.Fields{"clientId": clientID})
		return nil, fmt.Errorf("list credits: %w", err)
	}
	defer rows.Close()

	var credits []domain.Credit
	for rows.Next() {
		var credit domain.Credit
		if err := scanCredit(rows, &credit); err != nil {
			return nil, fmt.Errorf("scan credit: %w", err)
		}
		credits = append(credits, credit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credits: %w", err)
	}
	return credits, nil
}

func (r *CreditRepository) CountActiveByClient(ctx context.Context, clientID uuid.UUID) (int, error) {
	var count int
	if err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM credit WHERE client_id = $1 AND status = 'Active'`,
		clientID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active credits: %w", err)
	}
	return count, nil
}

func (r *CreditRepository) ListWithHistory(ctx context.Context) ([]domain.CreditWithHistory, error) {
	const query = `
SELECT c.id, c.client_id, c.recipient_account_id, c.payment_account_id,
       c.amount, c.tariff_id, c.remaining_amount, c.term, c.monthly_payment,
       c.status, c.created, c.modified,
       h.id, h.credit_id, h.last_payment, h.created, h.modified
FROM credit c
JOIN credit_payment_history h ON h.credit_id = c.id
ORDER BY c.created ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("credit repository list with history failed", err, nil)
		return nil, fmt.Errorf("list credits with history: %w", err)
	}
	defer rows.Close()

	var result []domain.CreditWithHistory
	for rows.Next() {
		var item domain.CreditWithHistory
		if err := rows.Scan(
			&item.Credit.ID,
			&item.Credit.ClientID,
			&item.Credit.RecipientAccountID,
			&item.Credit.PaymentAccountID,
			&item.Credit.Amount,
			&item.Credit.TariffID,
			&item.Credit.RemainingAmount,
			&item.Credit.TermMonths,
			&item.Credit.MonthlyPayment,
			&item.Credit.Status,
			&item.Credit.Created,
			&item.Credit.Modified,
			&item.History.ID,
			&item.History.CreditID,
			&item.History.LastPayment,
			&item.History.Created,
			&item.History.Modified,
		); err != nil {
			return nil, fmt.Errorf("scan credit with history: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credits with history: %w", err)
	}
	return result, nil
}

const creditSelect = `
SELECT id, client_id, recipient_account_id, payment_account_id,
       amount, tariff_id, remaining_amount, term, monthly_payment,
       status, created, modified
FROM credit`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCredit(row rowScanner, credit *domain.Credit) error {
	return row.Scan(
		&credit.ID,
		&credit.ClientID,
		&credit.RecipientAccountID,
		&credit.PaymentAccountID,
		&credit.Amount,
		&credit.TariffID,
		&credit.RemainingAmount,
		&credit.TermMonths,
		&credit.MonthlyPayment,
		&credit.Status,
		&credit.Created,
		&credit.Modified,
	)
}
