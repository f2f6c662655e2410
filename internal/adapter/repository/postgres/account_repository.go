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

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"accountId": account.ID,
		"clientId":  account.ClientID,
	})

	const query = `
INSERT INTO account (id, client_id, tariff_id, funds)
VALUES ($1, $2, $3, $4)
RETURNING created, modified`

	var created, modified time.Time
	if err := r.db.QueryRowContext(ctx, query, account.ID, account.ClientID, account.TariffID, account.Funds).
		Scan(&created, &modified); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{"accountId": account.ID})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.Created = created
	account.Modified = modified
	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	const query = `
SELECT id, client_id, tariff_id, funds, created, modified
FROM account
WHERE id = $1`

	var account domain.Account
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.ClientID,
		&account.TariffID,
		&account.Funds,
		&account.Created,
		&account.Modified,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{"accountId": id})
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]domain.Account, error) {
	const query = `
SELECT id, client_id, tariff_id, funds, created, modified
FROM account
WHERE client_id = $1
ORDER BY created ASC`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		logger.Error("account repository list failed", err, logger.Fields{"clientId": clientID})
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.ClientID,
			&account.TariffID,
			&account.Funds,
			&account.Created,
			&account.Modified,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) HasAccountForClientAndTariff(ctx context.Context, clientID, tariffID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM account WHERE client_id = $1 AND tariff_id = $2)`,
		clientID,
		tariffID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check account tariff existence: %w", err)
	}
	return exists, nil
}

func (r *AccountRepository) HasBankAccountCovering(ctx context.Context, amount decimal.Decimal) (bool, error) {
	const query = `
SELECT EXISTS(
	SELECT 1
	FROM account a
	JOIN client c ON c.id = a.client_id
	WHERE c.type = 'Bank'
	  AND a.funds >= $1::numeric
)`

	var solvent bool
	if err := r.db.QueryRowContext(ctx, query, amount).Scan(&solvent); err != nil {
		return false, fmt.Errorf("check bank solvency: %w", err)
	}
	return solvent, nil
}

func (r *AccountRepository) BankAccountWithHighestBalance(ctx context.Context) (domain.Account, error) {
	return r.bankAccountByBalance(ctx, "DESC")
}

func (r *AccountRepository) BankAccountWithLowestBalance(ctx context.Context) (domain.Account, error) {
	return r.bankAccountByBalance(ctx, "ASC")
}

func (r *AccountRepository) bankAccountByBalance(ctx context.Context, order string) (domain.Account, error) {
	query := fmt.Sprintf(`
SELECT a.id, a.client_id, a.tariff_id, a.funds, a.created, a.modified
FROM account a
JOIN client c ON c.id = a.client_id
WHERE c.type = 'Bank'
ORDER BY a.funds %s, a.created ASC
LIMIT 1`, order)

	var account domain.Account
	if err := r.db.QueryRowContext(ctx, query).Scan(
		&account.ID,
		&account.ClientID,
		&account.TariffID,
		&account.Funds,
		&account.Created,
		&account.Modified,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository bank account lookup failed", err, nil)
		return domain.Account{}, fmt.Errorf("select bank account: %w", err)
	}
	return account, nil
}
