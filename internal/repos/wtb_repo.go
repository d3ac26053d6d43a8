package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lascala/internal/domain"
)

type WTBRepo struct{ db *sqlx.DB }

func NewWTBRepo(db *sqlx.DB) *WTBRepo { return &WTBRepo{db: db} }

const wtbSelect = `
	SELECT w.id, w.user_id, u.display_name AS buyer_name, w.product_id, p.sku, p.name AS product_name,
	       b.name AS brand_name, w.size, w.condition_minimum, w.max_price, w.status, w.created_at
	FROM wtb_offers w
	JOIN users u ON u.id = w.user_id
	JOIN products p ON p.id = w.product_id
	JOIN brands b ON b.id = p.brand_id`

// ActiveExcept returns active offers placed by anyone but userID.
func (r *WTBRepo) ActiveExcept(ctx context.Context, userID string) ([]domain.WTBOffer, error) {
	out := []domain.WTBOffer{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(wtbSelect+`
	WHERE w.status = ? AND w.user_id <> ?
	ORDER BY w.max_price DESC, w.created_at, w.id`), domain.OfferActive, userID)
	return out, err
}

func (r *WTBRepo) ByUser(ctx context.Context, userID string) ([]domain.WTBOffer, error) {
	out := []domain.WTBOffer{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(wtbSelect+`
	WHERE w.user_id = ? ORDER BY w.created_at DESC, w.id`), userID)
	return out, err
}

func (r *WTBRepo) Create(ctx context.Context, o domain.WTBOffer) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO wtb_offers(id, user_id, product_id, size, condition_minimum, max_price, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		id, o.UserID, o.ProductID, o.Size, o.ConditionMinimum, o.MaxPrice, domain.OfferActive, now())
	if err != nil {
		return "", err
	}
	return id, nil
}

// Cancel withdraws the owner's active offer.
func (r *WTBRepo) Cancel(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`
		UPDATE wtb_offers SET status = 'cancelled' WHERE id = ? AND user_id = ? AND status = ?`),
		id, userID, domain.OfferActive)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
