package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartItemRow struct {
	InventoryID string  `db:"inventory_id"`
	SKU         string  `db:"sku"`
	ProductName string  `db:"product_name"`
	BrandName   string  `db:"brand_name"`
	Size        string  `db:"size"`
	SourceType  string  `db:"source_type"`
	Qty         int     `db:"qty"`
	PriceAtAdd  float64 `db:"price_at_add"`
}

func (it CartItemRow) Subtotal() float64 { return float64(it.Qty) * it.PriceAtAdd }

// EnsureCart returns the cart bound to the session, creating it on first use.
func (r *CartRepo) EnsureCart(ctx context.Context, sessionID string) (string, error) {
	var cartID string
	err := r.db.GetContext(ctx, &cartID, r.db.Rebind(`SELECT id FROM carts WHERE session_id = ?`), sessionID)
	if err == nil {
		return cartID, nil
	}
	if notFound(err) != ErrNotFound {
		return "", err
	}
	cartID = uuid.NewString()
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO carts(id, session_id, updated_at) VALUES (?, ?, ?)`),
		cartID, sessionID, now()); err != nil {
		return "", err
	}
	return cartID, nil
}

// UpsertItem adds qty of an inventory row, keeping the first price seen.
func (r *CartRepo) UpsertItem(ctx context.Context, cartID, inventoryID string, qty int, price float64) error {
	ts := now()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO cart_items(cart_id, inventory_id, qty, price_at_add, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cart_id, inventory_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty
	`), cartID, inventoryID, qty, price, ts)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.db.Rebind(`UPDATE carts SET updated_at = ? WHERE id = ?`), ts, cartID)
	return err
}

func (r *CartRepo) Items(ctx context.Context, cartID string) ([]CartItemRow, error) {
	out := []CartItemRow{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT ci.inventory_id, p.sku, p.name AS product_name, b.name AS brand_name, i.size,
		       s.source_type, ci.qty, ci.price_at_add
		FROM cart_items ci
		JOIN inventory i ON i.id = ci.inventory_id
		JOIN inventory_sources s ON s.id = i.source_id
		JOIN products p ON p.id = i.product_id
		JOIN brands b ON b.id = p.brand_id
		WHERE ci.cart_id = ?
		ORDER BY ci.created_at, ci.inventory_id
	`), cartID)
	return out, err
}

func (r *CartRepo) Remove(ctx context.Context, cartID, inventoryID string) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM cart_items WHERE cart_id = ? AND inventory_id = ?`), cartID, inventoryID)
	return err
}

// ItemQty is the quantity of an inventory row already in the cart.
func (r *CartRepo) ItemQty(ctx context.Context, cartID, inventoryID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`
		SELECT COALESCE(SUM(qty), 0) FROM cart_items WHERE cart_id = ? AND inventory_id = ?
	`), cartID, inventoryID)
	return n, err
}
