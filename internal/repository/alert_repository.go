package repository

import (
	"context"
	"errors"
	"fmt"

	"shopcore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const alertColumns = `id, type, message, status, product_id, supplier_id, current_stock, reorder_threshold, created_at`

// alertRepository implements the AlertRepository interface using PostgreSQL.
type alertRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAlertRepository creates a new PostgreSQL-backed alert repository.
func NewAlertRepository(pool *pgxpool.Pool, logger zerolog.Logger) AlertRepository {
	return &alertRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "alert").Logger(),
	}
}

func scanAlert(row pgx.Row) (*model.Alert, error) {
	var a model.Alert
	err := row.Scan(&a.ID, &a.Type, &a.Message, &a.Status, &a.ProductID, &a.SupplierID,
		&a.CurrentStock, &a.ReorderThreshold, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateIfAbsent inserts an alert unless an active one already exists for
// the same product. The conflict target is the partial unique index on
// (product_id) WHERE status = 'active', so deduplication happens at write
// time inside the database rather than as a check-then-insert.
func (r *alertRepository) CreateIfAbsent(ctx context.Context, alert *model.Alert) (bool, error) {
	query := `
		INSERT INTO alerts (id, type, message, status, product_id, supplier_id, current_stock, reorder_threshold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (product_id) WHERE status = 'active' DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query,
		alert.ID, alert.Type, alert.Message, alert.Status, alert.ProductID,
		alert.SupplierID, alert.CurrentStock, alert.ReorderThreshold, alert.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", alert.ProductID.String()).Msg("failed to create alert")
		return false, fmt.Errorf("failed to create alert: %w", err)
	}

	created := tag.RowsAffected() > 0
	if created {
		r.logger.Info().
			Str("alert_id", alert.ID.String()).
			Str("product_id", alert.ProductID.String()).
			Int("current_stock", alert.CurrentStock).
			Int("reorder_threshold", alert.ReorderThreshold).
			Msg("restock alert created")
	} else {
		r.logger.Debug().
			Str("product_id", alert.ProductID.String()).
			Msg("active alert already exists, skipping")
	}

	return created, nil
}

// UpdateStatus moves an alert out of the active state. Conditional on the
// alert still being active, so ordered and dismissed stay terminal.
func (r *alertRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AlertStatus) (*model.Alert, error) {
	query := `
		UPDATE alerts
		SET status = $1
		WHERE id = $2 AND status = 'active'
		RETURNING ` + alertColumns

	a, err := scanAlert(r.pool.QueryRow(ctx, query, status, id))
	if err == nil {
		r.logger.Info().
			Str("alert_id", id.String()).
			Str("status", string(status)).
			Msg("alert status updated")
		return a, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error().Err(err).Str("alert_id", id.String()).Msg("failed to update alert status")
		return nil, fmt.Errorf("failed to update alert status: %w", err)
	}

	// Conditional update missed: alert absent, or no longer active.
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, model.ErrAlertNotFound
	}
	return nil, model.NewDomainError(
		model.ErrCodeIllegalStatusTransition,
		fmt.Sprintf("Cannot transition alert from %q to %q; only active alerts can change status", existing.Status, status),
	)
}

// GetByID retrieves an alert by its ID.
func (r *alertRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Alert, error) {
	a, err := scanAlert(r.pool.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("alert_id", id.String()).Msg("failed to query alert")
		return nil, fmt.Errorf("failed to query alert: %w", err)
	}
	return a, nil
}

// List retrieves alerts, newest first, optionally filtered by status.
func (r *alertRepository) List(ctx context.Context, status *model.AlertStatus) ([]model.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts`
	var args []any
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query alerts")
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []model.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan alert row")
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating alerts: %w", err)
	}

	return alerts, nil
}
