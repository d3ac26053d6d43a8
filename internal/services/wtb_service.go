package services

import (
	"context"
	"fmt"

	"lascala/internal/domain"
	"lascala/internal/repos"
	"lascala/internal/validate"
)

// WTBService manages a buyer's want-to-buy offers.
type WTBService struct {
	Prods  *repos.ProductRepo
	Offers *repos.WTBRepo
}

func (s *WTBService) Place(ctx context.Context, user *domain.User, in validate.OfferInput) (string, error) {
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
	return s.Offers.Create(ctx, domain.WTBOffer{
		UserID:           user.ID,
		ProductID:        p.ID,
		Size:             in.Size,
		ConditionMinimum: in.ConditionMinimum,
		MaxPrice:         in.MaxPrice,
	})
}

func (s *WTBService) Cancel(ctx context.Context, user *domain.User, id string) error {
	return s.Offers.Cancel(ctx, user.ID, id)
}

func (s *WTBService) Mine(ctx context.Context, user *domain.User) ([]domain.WTBOffer, error) {
	return s.Offers.ByUser(ctx, user.ID)
}
