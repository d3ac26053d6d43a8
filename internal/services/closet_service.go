package services

import (
	"context"
	"fmt"

	"lascala/internal/closet"
	"lascala/internal/domain"
	"lascala/internal/repos"
	"lascala/internal/validate"
)

type ClosetService struct {
	Prods  *repos.ProductRepo
	Closet *repos.ClosetRepo
	Offers *repos.WTBRepo
}

// ClosetSummary backs the closet page.
type ClosetSummary struct {
	Items     []domain.ClosetItem
	Count     int
	Valuation closet.Valuation
	Matches   []domain.WTBOffer
}

func (s *ClosetService) Summary(ctx context.Context, user *domain.User) (ClosetSummary, error) {
	items, err := s.Closet.List(ctx, user.ID)
	if err != nil {
		return ClosetSummary{}, err
	}
	offers, err := s.Offers.ActiveExcept(ctx, user.ID)
	if err != nil {
		return ClosetSummary{}, err
	}
	return ClosetSummary{
		Items:     items,
		Count:     len(items),
		Valuation: closet.Value(items),
		Matches:   closet.MatchOffers(user.ID, items, offers),
	}, nil
}

// Add records a piece the user owns. The size must be one the product declares.
func (s *ClosetService) Add(ctx context.Context, user *domain.User, in validate.ClosetInput) (string, error) {
	if err := validate.Struct(in); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	p, err := s.Prods.BySKU(ctx, in.SKU)
	if err != nil {
		return "", err
	}
	ok, err := s.Prods.HasSize(ctx, p.ID, in.Size)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUnknownSize
	}
	return s.Closet.Add(ctx, domain.ClosetItem{
		UserID:        user.ID,
		ProductID:     p.ID,
		Size:          in.Size,
		Condition:     in.Condition,
		PurchasePrice: in.PurchasePrice,
		Notes:         in.Notes,
		IsPublic:      in.IsPublic,
		OpenToOffers:  in.OpenToOffers,
	})
}

func (s *ClosetService) TogglePublic(ctx context.Context, user *domain.User, id string) error {
	return s.Closet.TogglePublic(ctx, user.ID, id)
}

func (s *ClosetService) ToggleOffers(ctx context.Context, user *domain.User, id string) error {
	return s.Closet.ToggleOffers(ctx, user.ID, id)
}

func (s *ClosetService) Remove(ctx context.Context, user *domain.User, id string) error {
	return s.Closet.Delete(ctx, user.ID, id)
}
