package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lascala/internal/domain"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// Eligible returns the in-stock rows of a product joined with their source.
func (r *InventoryRepo) Eligible(ctx context.Context, productID string) ([]domain.InventoryRow, error) {
	out := []domain.InventoryRow{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT i.id, i.product_id, i.size, i.quantity,
		       s.id AS source_id, s.name AS source_name, s.source_type, s.priority
		FROM inventory i
		JOIN inventory_sources s ON s.id = i.source_id
		WHERE i.product_id = ? AND i.quantity > 0
		ORDER BY s.priority, s.id, i.id
	`), productID)
	return out, err
}

// ByID returns a single row with its source, in stock or not.
func (r *InventoryRepo) ByID(ctx context.Context, id string) (domain.InventoryRow, error) {
	var row domain.InventoryRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`
		SELECT i.id, i.product_id, i.size, i.quantity,
		       s.id AS source_id, s.name AS source_name, s.source_type, s.priority
		FROM inventory i
		JOIN inventory_sources s ON s.id = i.source_id
		WHERE i.id = ?
	`), id)
	return row, notFound(err)
}

// AdminRow is one line of the /admin/inventory table.
type AdminRow struct {
	ID          string `db:"id"`
	SKU         string `db:"sku"`
	ProductName string `db:"product_name"`
	SourceName  string `db:"source_name"`
	SourceType  string `db:"source_type"`
	Size        string `db:"size"`
	Quantity    int    `db:"quantity"`
}

func (r *InventoryRepo) ListAll(ctx context.Context) ([]AdminRow, error) {
	out := []AdminRow{}
	err := r.db.SelectContext(ctx, &out, `
		SELECT i.id, p.sku, p.name AS product_name, s.name AS source_name, s.source_type, i.size, i.quantity
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN inventory_sources s ON s.id = i.source_id
		ORDER BY p.name, i.size, s.priority
	`)
	return out, err
}

func (r *InventoryRepo) Sources(ctx context.Context) ([]domain.InventorySource, error) {
	out := []domain.InventorySource{}
	err := r.db.SelectContext(ctx, &out, `SELECT id, name, source_type, priority FROM inventory_sources ORDER BY priority, id`)
	return out, err
}

// Upsert sets the quantity for (product, source, size), creating the row if needed.
func (r *InventoryRepo) Upsert(ctx context.Context, productID, sourceID, size string, qty int) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO inventory(id, product_id, source_id, size, quantity, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_id, source_id, size) DO UPDATE
		SET quantity = excluded.quantity, updated_at = excluded.updated_at
	`), uuid.NewString(), productID, sourceID, size, qty, now())
	return err
}
