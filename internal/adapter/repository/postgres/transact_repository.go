package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"

	"github.com/api-sage/retail-bank-core/internal/commons"
)

type TransactRepository struct {
	db *sql.DB
}

func NewTransactRepository(db *sql.DB) *TransactRepository {
	return &TransactRepository{db: db}
}

// CreateWithPosting inserts the transact record and applies both balance
// mutations in one database transaction. A reader can never observe the
// record without its postings.
func (r *TransactRepository) CreateWithPosting(ctx context.Context, transact domain.Transact) (domain.Transact, error) {
	logger.Info("transact repository create with posting", logger.Fields{
		"transactId":  transact.ID,
		"senderId":    transact.SenderID,
		"recipientId": transact.RecipientID,
		"amount":      transact.Amount,
		"type":        transact.Type,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transact repository begin tx failed", err, nil)
		return domain.Transact{}, fmt.Errorf("begin transact transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertQuery = `
INSERT INTO transact (id, sender_id, recipient_id, amount, type)
VALUES ($1, $2, $3, $4, $5)
RETURNING created`

	var created time.Time
	if err = tx.QueryRowContext(
		ctx,
		insertQuery,
		transact.ID,
		transact.SenderID,
		transact.RecipientID,
		transact.Amount,
		transact.Type,
	).Scan(&created); err != nil {
		logger.Error("transact repository insert failed", err, logger.Fields{"transactId": transact.ID})
		return domain.Transact{}, fmt.Errorf("insert transact: %w", err)
	}

	if err = debitAccount(ctx, tx, transact.SenderID, transact.Amount, commons.ErrInsufficientBalance); err != nil {
		return domain.Transact{}, err
	}
	if err = creditAccount(ctx, tx, transact.RecipientID, transact.Amount); err != nil {
		return domain.Transact{}, err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("transact repository commit tx failed", err, nil)
		return domain.Transact{}, fmt.Errorf("commit transact transaction: %w", err)
	}

	transact.Created = created
	return transact, nil
}

func (r *TransactRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Transact, error) {
	const query = `
SELECT id, sender_id, recipient_id, amount, type, created
FROM transact
WHERE sender_id = $1 OR recipient_id = $1
ORDER BY created DESC`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		logger.Error("transact repository list failed", err, logger.Fields{"accountId": accountID})
		return nil, fmt.Errorf("list transacts: %w", err)
	}
	defer rows.Close()

	var transacts []domain.Transact
	for rows.Next() {
		var transact domain.Transact
		if err := rows.Scan(
			&transact.ID,
			&transact.SenderID,
			&transact.RecipientID,
			&transact.Amount,
			&transact.Type,
			&transact.Created,
		); err != nil {
			return nil, fmt.Errorf("scan transact: %w", err)
		}
		transacts = append(transacts, transact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transacts: %w", err)
	}
	return transacts, nil
}
