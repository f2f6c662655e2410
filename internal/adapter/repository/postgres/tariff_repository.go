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

type TariffRepository struct {
	db *sql.DB
}

func NewTariffRepository(db *sql.DB) *TariffRepository {
	return &TariffRepository{db: db}
}

func (r *TariffRepository) Create(ctx context.Context, tariff domain.Tariff) (domain.Tariff, error) {
	logger.Info("tariff repository create", logger.Fields{
		"tariffId": tariff.ID,
		"kind":     tariff.Kind,
		"category": tariff.Category,
	})

	const query = `
INSERT INTO tariff (id, kind, category, rate)
VALUES ($1, $2, $3, $4)
RETURNING created, modified`

	var created, modified time.Time
	if err := r.db.QueryRowContext(ctx, query, tariff.ID, tariff.Kind, tariff.Category, tariff.Rate).
		Scan(&created, &modified); err != nil {
		logger.Error("tariff repository create failed", err, logger.Fields{"tariffId": tariff.ID})
		return domain.Tariff{}, fmt.Errorf("create tariff: %w", err)
	}

	tariff.Created = created
	tariff.Modified = modified
	return tariff, nil
}

func (r *TariffRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Tariff, error) {
	const query = `
SELECT id, kind, category, rate, created, modified
FROM tariff
WHERE id = $1`

	var tariff domain.Tariff
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tariff.ID,
		&tariff.Kind,
		&tariff.Category,
		&tariff.Rate,
		&tariff.Created,
		&tariff.Modified,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Tariff{}, commons.ErrRecordNotFound
		}
		logger.Error("tariff repository get failed", err, logger.Fields{"tariffId": id})
		return domain.Tariff{}, fmt.Errorf("get tariff: %w", err)
	}
	return tariff, nil
}

func (r *TariffRepository) ListByKind(ctx context.Context, kind domain.TariffKind) ([]domain.Tariff, error) {
	const query = `
SELECT id, kind, category, rate, created, modified
FROM tariff
WHERE kind = $1
ORDER BY created ASC`

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		logger.Error("tariff repository list failed", err, logger.Fields{"kind": kind})
		return nil, fmt.Errorf("list tariffs: %w", err)
	}
	defer rows.Close()

	var tariffs []domain.Tariff
	for rows.Next() {
		var tariff domain.Tariff
		if err := rows.Scan(
			&tariff.ID,
			&tariff.Kind,
			&tariff.Category,
			&tariff.Rate,
			&tariff.Created,
			&tariff.Modified,
		); err != nil {
			return nil, fmt.Errorf("scan tariff: %w", err)
		}
		tariffs = append(tariffs, tariff)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tariffs: %w", err)
	}
	return tariffs, nil
}

func (r *TariffRepository) AnyOfKind(ctx context.Context, kind domain.TariffKind) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM tariff WHERE kind = $1)`, kind).
		Scan(&exists); err != nil {
		return false, fmt.Errorf("check tariff existence: %w", err)
	}
	return exists, nil
}
