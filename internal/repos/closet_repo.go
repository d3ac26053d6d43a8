package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lascala/internal/domain"
)

type ClosetRepo struct{ db *sqlx.DB }

func NewClosetRepo(db *sqlx.DB) *ClosetRepo { return &ClosetRepo{db: db} }

// List returns a user's closet, newest first.
func (r *ClosetRepo) List(ctx context.Context, userID string) ([]domain.ClosetItem, error) {
	out := []domain.ClosetItem{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
		SELECT ci.id, ci.user_id, ci.product_id, p.sku, p.name AS product_name, b.name AS brand_name,
		       COALESCE((SELECT pi.url FROM product_images pi WHERE pi.product_id = p.id
		                 ORDER BY pi.is_primary DESC, pi.position LIMIT 1), '') AS primary_image,
		       p.retail_price, ci.size, ci.condition, ci.purchase_price, ci.notes,
		       ci.is_public, ci.open_to_offers, ci.created_at
		FROM closet_items ci
		JOIN products p ON p.id = ci.product_id
		JOIN brands b ON b.id = p.brand_id
		WHERE ci.user_id = ?
		ORDER BY ci.created_at DESC, ci.id
	`), userID)
	return out, err
}

func (r *ClosetRepo) Add(ctx context.Context, it domain.ClosetItem) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO closet_items(id, user_id, product_id, size, condition, purchase_price, notes,
		                         is_public, open_to_offers, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		id, it.UserID, it.ProductID, it.Size, it.Condition, nullFloat(it.PurchasePrice), it.Notes,
		it.IsPublic, it.OpenToOffers, now())
	if err != nil {
		return "", err
	}
	return id, nil
}

// TogglePublic flips visibility on the owner's item.
func (r *ClosetRepo) TogglePublic(ctx context.Context, userID, id string) error {
	return r.ownedExec(ctx, `UPDATE closet_items SET is_public = NOT is_public WHERE id = ? AND user_id = ?`, id, userID)
}

// ToggleOffers flips open_to_offers on the owner's item.
func (r *ClosetRepo) ToggleOffers(ctx context.Context, userID, id string) error {
	return r.ownedExec(ctx, `UPDATE closet_items SET open_to_offers = NOT open_to_offers WHERE id = ? AND user_id = ?`, id, userID)
}

func (r *ClosetRepo) Delete(ctx context.Context, userID, id string) error {
	return r.ownedExec(ctx, `DELETE FROM closet_items WHERE id = ? AND user_id = ?`, id, userID)
}

// ownedExec runs a statement scoped to (id, user_id); zero affected rows
// means the item is missing or belongs to someone else.
func (r *ClosetRepo) ownedExec(ctx context.Context, q string, id, userID string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(q), id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
