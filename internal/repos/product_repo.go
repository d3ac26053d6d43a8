package repos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"lascala/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  p.id, p.sku, p.manufacturer_sku, p.name, p.brand_id, b.name AS brand_name,
  p.category_id, c.name AS category_name, p.gender, p.color, p.description,
  p.materials, p.origin_country, p.care_instructions, p.retail_price, p.current_price,
  COALESCE((SELECT pi.url FROM product_images pi
            WHERE pi.product_id = p.id
            ORDER BY pi.is_primary DESC, pi.position ASC LIMIT 1), '') AS primary_image,
  p.created_at`

const productFrom = `
  FROM products p
  JOIN brands b ON b.id = p.brand_id
  JOIN categories c ON c.id = p.category_id`

// CollectionFilter narrows the collection grid. Empty fields match everything.
type CollectionFilter struct {
	Gender     string
	CategoryID string
	Size       string
	Limit      int
	Offset     int
}

// List returns products sorted by effective price, highest first.
func (r *ProductRepo) List(ctx context.Context, f CollectionFilter) ([]domain.Product, error) {
	var (
		where []string
		args  []any
	)
	if f.Gender != "" {
		where = append(where, `p.gender IN (?, 'U')`)
		args = append(args, f.Gender)
	}
	if f.CategoryID != "" {
		where = append(where, `p.category_id = ?`)
		args = append(args, f.CategoryID)
	}
	if f.Size != "" {
		where = append(where, `EXISTS (SELECT 1 FROM product_sizes ps WHERE ps.product_id = p.id AND ps.size = ?)`)
		args = append(args, f.Size)
	}
	q := `SELECT ` + productCols + productFrom
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, ` AND `)
	}
	q += `
  ORDER BY CASE WHEN p.current_price > 0 THEN p.current_price ELSE COALESCE(p.retail_price, 0) END DESC,
           p.created_at DESC, p.id
  LIMIT ? OFFSET ?`
	args = append(args, f.Limit, f.Offset)

	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(q), args...)
	return out, err
}

// Newest returns the most recently added products.
func (r *ProductRepo) Newest(ctx context.Context, limit int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`SELECT `+productCols+productFrom+`
  ORDER BY p.created_at DESC, p.id LIMIT ?`), limit)
	return out, err
}

func (r *ProductRepo) BySKU(ctx context.Context, sku string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT `+productCols+productFrom+` WHERE p.sku = ?`), sku)
	return p, notFound(err)
}

func (r *ProductRepo) ByID(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`SELECT `+productCols+productFrom+` WHERE p.id = ?`), id)
	return p, notFound(err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches name, sku or manufacturer sku, case-insensitively. The term
// is matched literally.
func (r *ProductRepo) Search(ctx context.Context, term string, limit int) ([]domain.Product, error) {
	like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`SELECT `+productCols+productFrom+`
  WHERE LOWER(p.name) LIKE ? ESCAPE '\' OR LOWER(p.sku) LIKE ? ESCAPE '\'
     OR LOWER(p.manufacturer_sku) LIKE ? ESCAPE '\'
  ORDER BY p.name LIMIT ?`), like, like, like, limit)
	return out, err
}

// Images returns the primary image first, then by position.
func (r *ProductRepo) Images(ctx context.Context, productID string) ([]domain.Image, error) {
	out := []domain.Image{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT id, product_id, url, alt_text, position, is_primary
  FROM product_images WHERE product_id = ?
  ORDER BY is_primary DESC, position ASC, id`), productID)
	return out, err
}

// Sizes returns the declared sizes in catalog order.
func (r *ProductRepo) Sizes(ctx context.Context, productID string) ([]domain.Size, error) {
	out := []domain.Size{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT id, product_id, size FROM product_sizes WHERE product_id = ?
  ORDER BY position, id`), productID)
	return out, err
}

func (r *ProductRepo) HasSize(ctx context.Context, productID, size string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`
  SELECT COUNT(*) FROM product_sizes WHERE product_id = ? AND size = ?`), productID, size)
	return n > 0, err
}

func (r *ProductRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `SELECT id, name FROM categories ORDER BY name`)
	return out, err
}
