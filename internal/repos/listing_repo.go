package repos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"lascala/internal/domain"
)

type ListingRepo struct{ db *sqlx.DB }

func NewListingRepo(db *sqlx.DB) *ListingRepo { return &ListingRepo{db: db} }

const listingSelect = `
	SELECT l.id, l.product_id, l.seller_id, u.display_name AS seller_name, l.size, l.condition,
	       l.condition_notes, l.price, l.status, l.authentication_status, l.created_at,
	       COALESCE((SELECT li.url FROM listing_images li WHERE li.listing_id = l.id
	                 ORDER BY li.position LIMIT 1), '') AS primary_image
	FROM listings l
	JOIN users u ON u.id = l.seller_id`

// Active returns the product's buyable listings, cheapest first.
func (r *ListingRepo) Active(ctx context.Context, productID string) ([]domain.Listing, error) {
	out := []domain.Listing{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(listingSelect+`
	WHERE l.product_id = ? AND l.status = ?
	ORDER BY l.price ASC, l.created_at, l.id`), productID, domain.ListingActive)
	return out, err
}

func (r *ListingRepo) Get(ctx context.Context, id string) (domain.Listing, error) {
	var l domain.Listing
	err := r.db.GetContext(ctx, &l, r.db.Rebind(listingSelect+` WHERE l.id = ?`), id)
	return l, notFound(err)
}

func (r *ListingRepo) Pending(ctx context.Context) ([]domain.Listing, error) {
	out := []domain.Listing{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(listingSelect+`
	WHERE l.status = ? ORDER BY l.created_at, l.id`), domain.ListingPendingReview)
	return out, err
}

func (r *ListingRepo) BySeller(ctx context.Context, sellerID string) ([]domain.Listing, error) {
	out := []domain.Listing{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(listingSelect+`
	WHERE l.seller_id = ? ORDER BY l.created_at DESC, l.id`), sellerID)
	return out, err
}

// Create inserts the listing and its image urls in one transaction and
// returns the new id.
func (r *ListingRepo) Create(ctx context.Context, l domain.Listing, imageURLs []string) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx, tx.Rebind(`
		INSERT INTO listings(id, product_id, seller_id, size, condition, condition_notes, price,
		                     status, authentication_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		id, l.ProductID, l.SellerID, l.Size, l.Condition, l.ConditionNotes, l.Price,
		domain.ListingPendingReview, domain.AuthPending, now()); err != nil {
		return "", err
	}
	for i, u := range imageURLs {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO listing_images(id, listing_id, url, position) VALUES (?, ?, ?, ?)`),
			uuid.NewString(), id, u, i); err != nil {
			return "", err
		}
	}
	return id, tx.Commit()
}

// SetStatus moves a listing from one of the allowed statuses. It returns
// ErrNotFound when no listing matched in an allowed status.
func (r *ListingRepo) SetStatus(ctx context.Context, id, status, auth string, from ...string) error {
	q, args, err := sqlx.In(`
		UPDATE listings SET status = ?, authentication_status = ?
		WHERE id = ? AND status IN (?)`, status, auth, id, from)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
