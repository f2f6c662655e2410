package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/api-sage/retail-bank-core/internal/commons"
	"github.com/api-sage/retail-bank-core/internal/domain"
	"github.com/api-sage/retail-bank-core/internal/logger"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	logger.Info("client repository create", logger.Fields{
		"clientId": client.ID,
		"type":     client.Type,
	})

	const query = `
INSERT INTO client (id, phone_number, type, pin_hash)
VALUES ($1, $2, $3, $4)
RETURNING created, modified`

	var created, modified time.Time
	if err := r.db.QueryRowContext(ctx, query, client.ID, client.PhoneNumber, client.Type, client.PINHash).
		Scan(&created, &modified); err != nil {
		logger.Error("client repository create failed", err, logger.Fields{"clientId": client.ID})
		return domain.Client{}, fmt.Errorf("create client: %w", err)
	}

	client.Created = created
	client.Modified = modified
	return client, nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	const query = `
SELECT id, phone_number, type, pin_hash, created, modified
FROM client
WHERE id = $1`

	return r.scanClient(r.db.QueryRowContext(ctx, query, id))
}

func (r *ClientRepository) GetBankClient(ctx context.Context) (domain.Client, error) {
	const query = `
SELECT id, phone_number, type, pin_hash, created, modified
FROM client
WHERE type = 'Bank'
LIMIT 1`

	return r.scanClient(r.db.QueryRowContext(ctx, query))
}

func (r *ClientRepository) scanClient(row *sql.Row) (domain.Client, error) {
	var client domain.Client
	if err := row.Scan(
		&client.ID,
		&client.PhoneNumber,
		&client.Type,
		&client.PINHash,
		&client.Created,
		&client.Modified,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Client{}, commons.ErrRecordNotFound
		}
		logger.Error("client repository get failed", err, nil)
		return domain.Client{}, fmt.Errorf("get client: %w", err)
	}
	return client, nil
}
