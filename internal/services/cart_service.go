package services

import (
	"context"

	"lascala/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Inv   *repos.InventoryRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, inv *repos.InventoryRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Inv: inv, Prods: prods}
}

// Add puts qty units of a retail inventory row in the session's cart at the
// product's current effective price. The bag never holds more units of a row
// than are in stock.
func (s *CartService) Add(ctx context.Context, sessionID, inventoryID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	row, err := s.Inv.ByID(ctx, inventoryID)
	if err != nil {
		return err
	}
	cartID, err := s.Carts.EnsureCart(ctx, sessionID)
	if err != nil {
		return err
	}
	held, err := s.Carts.ItemQty(ctx, cartID, inventoryID)
	if err != nil {
		return err
	}
	if row.Quantity < held+qty {
		return ErrOutOfStock
	}
	p, err := s.Prods.ByID(ctx, row.ProductID)
	if err != nil {
		return err
	}
	return s.Carts.UpsertItem(ctx, cartID, inventoryID, qty, p.EffectivePrice())
}

type CartView struct {
	Items []repos.CartItemRow
	Total float64
}

func (s *CartService) View(ctx context.Context, sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(ctx, sessionID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.Items(ctx, cartID)
	if err != nil {
		return CartView{}, err
	}
	total := 0.0
	for _, it := range items {
		total += it.Subtotal()
	}
	return CartView{Items: items, Total: total}, nil
}

func (s *CartService) Remove(ctx context.Context, sessionID, inventoryID string) error {
	cartID, err := s.Carts.EnsureCart(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Remove(ctx, cartID, inventoryID)
}
