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

type InvestmentRepository struct {
	db *sql.DB
}

func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// OpenWithFunding persists the investment and moves its amount from the
// payment account to the bank account with the lowest balance, all in one
// database transaction.
func (r *InvestmentRepository) OpenWithFunding(ctx context.Context, investment domain.Investment) (domain.Investment, error) {
	logger.Info("investment repository open with funding", logger.Fields{
		"investmentId": investment.ID,
		"clientId":     investment.ClientID,
		"amount":       investment.Amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("investment repository begin tx failed", err, nil)
		return domain.Investment{}, fmt.Errorf("begin investment transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	bankAccountID, err := lockBankAccount(ctx, tx, false)
	if err != nil {
		return domain.Investment{}, err
	}

	const insertInvestment = `
INSERT INTO investment (
	id, client_id, amount, tariff_id, recipient_account_id, payment_account_id,
	remaining_amount, term, monthly_payment, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created, modified`

	if err = tx.QueryRowContext(
		ctx,
		insertInvestment,
		investment.ID,
		investment.ClientID,
		investment.Amount,
		investment.TariffID,
		investment.RecipientAccountID,
		investment.PaymentAccountID,
		investment.RemainingAmount,
		investment.TermYears,
		investment.MonthlyPayment,
		investment.Status,
	).Scan(&investment.Created, &investment.Modified); err != nil {
		logger.Error("investment repository insert failed", err, logger.Fields{"investmentId": investment.ID})
		return domain.Investment{}, fmt.Errorf("insert investment: %w", err)
	}

	const insertTransact = `
INSERT INTO transact (id, sender_id, recipient_id, amount, type)
VALUES ($1, $2, $3, $4, $5)`

	if _, err = tx.ExecContext(
		ctx,
		insertTransact,
		uuid.New(),
		investment.PaymentAccountID,
		bankAccountID,
		investment.Amount,
		domain.TransactTypeInvestment,
	); err != nil {
		return domain.Investment{}, fmt.Errorf("insert funding transact: %w", err)
	}

	if err = debitAccount(ctx, tx, investment.PaymentAccountID, investment.Amount, commons.ErrInsufficientBalance); err != nil {
		return domain.Investment{}, err
	}
	if err = creditAccount(ctx, tx, bankAccountID, investment.Amount); err != nil {
		return domain.Investment{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("investment repository commit tx failed", err, nil)
		return domain.Investment{}, fmt.Errorf("commit investment transaction: %w", err)
	}

	return investment, nil
}

func (r *InvestmentRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Investment, error) {
	const query = investmentSelect + ` WHERE id = $1`

	var investment domain.Investment
	if err := scanInvestment(r.db.QueryRowContext(ctx, query, id), &investment); err != nil {
		if err == sql.ErrNoRows {
			return domain.Investment{}, commons.ErrRecordNotFound
		}
		logger.Error("investment repository get failed", err, logger.Fields{"investmentId": id})
		return domain.Investment{}, fmt.Errorf("get investment: %w", err)
	}
	return investment, nil
}

func (r *InvestmentRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Investment, error) {
	const query = investmentSelect + ` WHERE client_id = $1 ORDER BY created DESC`
	return r.list(ctx, query, clientID)
}

func (r *InvestmentRepository) ListActive(ctx context.Context) ([]domain.Investment, error) {
	const query = investmentSelect + ` WHERE status = 'Active' ORDER BY created ASC`
	return r.list(ctx, query)
}

func (r *InvestmentRepository) HasActiveForClientAndTariff(ctx context.Context, clientID, tariffID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM investment WHERE client_id = $1 AND tariff_id = $2 AND status = 'Active')`,
		clientID,
		tariffID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check investment tariff existence: %w", err)
	}
	return exists, nil
}

func (r *InvestmentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Investment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("investment repository list failed", err, nil)
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var investments []domain.Investment
	for rows.Next() {
		var investment domain.Investment
		if err := scanInvestment(rows, &investment); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		investments = append(investments, investment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate investments: %w", err)
	}
	return investments, nil
}

const investmentSelect = `
SELECT id, client_id, amount, tariff_id, recipient_account_id, payment_account_id,
       remaining_amount, term, monthly_payment, status, created, modified
FROM investment`

func scanInvestment(row rowScanner, investment *domain.Investment) error {
	return row.Scan(
		&investment.ID,
		&investment.ClientID,
		&investment.Amount,
		&investment.TariffID,
		&investment.RecipientAccountID,
		&investment.PaymentAccountID,
		&investment.RemainingAmount,
		&investment.TermYears,
		&investment.MonthlyPayment,
		&investment.Status,
		&investment.Created,
		&investment.Modified,
	)
}
