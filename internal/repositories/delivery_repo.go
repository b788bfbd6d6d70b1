package repositories

import (
	"context"
	"fmt"

	"sheetmart/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repositories use.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DeliveryRepository is the notification delivery log.
type DeliveryRepository interface {
	Record(ctx context.Context, delivery *models.Delivery) error
	ListRecent(ctx context.Context, tenantID string, limit int) ([]*models.Delivery, error)
}

const CreateDeliveriesTable = `
CREATE TABLE IF NOT EXISTS notification_deliveries (
	id UUID PRIMARY KEY,
	run_id UUID NOT NULL,
	tenant_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	recipient TEXT NOT NULL,
	status TEXT NOT NULL,
	error TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type deliveryRepo struct {
	db Database
}

func NewDeliveryRepo(db Database) DeliveryRepository {
	return &deliveryRepo{db: db}
}

func (r *deliveryRepo) Record(ctx context.Context, d *models.Delivery) error {
	query := `
		INSERT INTO notification_deliveries (id, run_id, tenant_id, kind, recipient, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query, d.ID, d.RunID, d.TenantID, d.Kind, d.Recipient, d.Status, d.Error, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record delivery: %w", err)
	}
	return nil
}

// ListRecent returns the newest deliveries first. An empty tenantID lists all tenants.
func (r *deliveryRepo) ListRecent(ctx context.Context, tenantID string, limit int) ([]*models.Delivery, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := `
		SELECT id, run_id, tenant_id, kind, recipient, status, error, created_at
		FROM notification_deliveries
		WHERE ($1 = '' OR tenant_id = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*models.Delivery
	for rows.Next() {
		d := &models.Delivery{}
		if err := rows.Scan(&d.ID, &d.RunID, &d.TenantID, &d.Kind, &d.Recipient, &d.Status, &d.Error, &d.CreatedAt); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

type noopDeliveryRepo struct{}

// NewNoopDeliveryRepo is used when no database is configured.
func NewNoopDeliveryRepo() DeliveryRepository {
	return noopDeliveryRepo{}
}

func (noopDeliveryRepo) Record(context.Context, *models.Delivery) error { return nil }

func (noopDeliveryRepo) ListRecent(context.Context, string, int) ([]*models.Delivery, error) {
	return []*models.Delivery{}, nil
}
