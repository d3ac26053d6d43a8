package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lascala/internal/cache"
	"lascala/internal/domain"
	"lascala/internal/inventory"
	"lascala/internal/log"
	"lascala/internal/repos"
	"lascala/internal/telemetry"
)

const PageSize = 12

type CatalogService struct {
	Prods    *repos.ProductRepo
	Inv      *repos.InventoryRepo
	Listings *repos.ListingRepo
	Cache    cache.Cache
}

func NewCatalogService(prods *repos.ProductRepo, inv *repos.InventoryRepo, listings *repos.ListingRepo, c cache.Cache) *CatalogService {
	if c == nil {
		c = cache.Nop{}
	}
	return &CatalogService{Prods: prods, Inv: inv, Listings: listings, Cache: c}
}

// Snapshot is everything the product page reads from storage.
type Snapshot struct {
	Product   domain.Product        `json:"product"`
	Images    []domain.Image        `json:"images"`
	Sizes     []domain.Size         `json:"sizes"`
	Inventory []domain.InventoryRow `json:"inventory"`
	Listings  []domain.Listing      `json:"listings"`
}

// ProductPage is a snapshot plus its resolved per-size view.
type ProductPage struct {
	Snapshot
	View inventory.View
}

func (s *CatalogService) Home(ctx context.Context) ([]domain.Product, error) {
	return s.Prods.Newest(ctx, 8)
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.Prods.Categories(ctx)
}

// ListCollection returns one page of the filtered collection and whether
// another page follows.
func (s *CatalogService) ListCollection(ctx context.Context, f repos.CollectionFilter, page int) ([]domain.Product, bool, error) {
	if page < 1 {
		page = 1
	}
	f.Limit = PageSize + 1
	f.Offset = (page - 1) * PageSize
	out, err := s.Prods.List(ctx, f)
	if err != nil {
		return nil, false, err
	}
	if len(out) > PageSize {
		return out[:PageSize], true, nil
	}
	return out, false, nil
}

// Search needs at least two characters and returns up to ten products.
func (s *CatalogService) Search(ctx context.Context, q string) ([]domain.Product, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < 2 {
		return []domain.Product{}, nil
	}
	return s.Prods.Search(ctx, q, 10)
}

// ProductPage loads the snapshot for sku and resolves per-size availability.
func (s *CatalogService) ProductPage(ctx context.Context, sku string) (ProductPage, error) {
	snap, err := s.snapshot(ctx, sku)
	if err != nil {
		return ProductPage{}, err
	}
	return ProductPage{
		Snapshot: snap,
		View:     inventory.Resolve(snap.Sizes, snap.Inventory, snap.Listings),
	}, nil
}

func (s *CatalogService) snapshot(ctx context.Context, sku string) (Snapshot, error) {
	key := cache.ProductKey(sku)
	var snap Snapshot
	hit, err := s.Cache.Get(ctx, key, &snap)
	switch {
	case err != nil:
		telemetry.CacheRequests.WithLabelValues("error").Inc()
		log.L().Warn("cache.get.fail", zap.String("key", key), zap.Error(err))
	case hit:
		telemetry.CacheRequests.WithLabelValues("hit").Inc()
		return snap, nil
	default:
		telemetry.CacheRequests.WithLabelValues("miss").Inc()
	}

	p, err := s.Prods.BySKU(ctx, sku)
	if err != nil {
		return Snapshot{}, err
	}
	snap = Snapshot{Product: p}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Images, err = s.Prods.Images(gctx, p.ID)
		return err
	})
	g.Go(func() (err error) {
		snap.Sizes, err = s.Prods.Sizes(gctx, p.ID)
		return err
	})
	g.Go(func() (err error) {
		snap.Inventory, err = s.Inv.Eligible(gctx, p.ID)
		return err
	})
	g.Go(func() (err error) {
		snap.Listings, err = s.Listings.Active(gctx, p.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	if err := s.Cache.Set(ctx, key, snap); err != nil {
		log.L().Warn("cache.set.fail", zap.String("key", key), zap.Error(err))
	}
	return snap, nil
}

// Invalidate drops the cached snapshot of the product with productID.
func (s *CatalogService) Invalidate(ctx context.Context, productID string) {
	p, err := s.Prods.ByID(ctx, productID)
	if err != nil {
		return
	}
	if err := s.Cache.Delete(ctx, cache.ProductKey(p.SKU)); err != nil {
		log.L().Warn("cache.delete.fail", zap.String("sku", p.SKU), zap.Error(err))
	}
}
