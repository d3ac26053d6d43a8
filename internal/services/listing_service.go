package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"lascala/internal/domain"
	"lascala/internal/events"
	"lascala/internal/log"
	"lascala/internal/pricing"
	"lascala/internal/repos"
	"lascala/internal/storage"
	"lascala/internal/telemetry"
	"lascala/internal/validate"
)

type ListingService struct {
	Prods    *repos.ProductRepo
	Listings *repos.ListingRepo
	Store    storage.Storage
	Events   events.Publisher
	Catalog  *CatalogService
	FeeRate  decimal.Decimal
}

// Upload is one photo from the sell form.
type Upload struct {
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

const MaxImageBytes = 5 << 20

// Quote previews fee and payout. sku is optional and only supplies retail.
func (s *ListingService) Quote(ctx context.Context, sku string, price float64) (pricing.Quote, error) {
	retail := 0.0
	if sku != "" {
		p, err := s.Prods.BySKU(ctx, sku)
		if err != nil {
			return pricing.Quote{}, err
		}
		retail = p.Retail()
	}
	return pricing.NewQuote(price, retail, s.FeeRate), nil
}

// Submit stores the photos and creates a listing pending review.
func (s *ListingService) Submit(ctx context.Context, seller *domain.User, d validate.ListingDraft, images []Upload) (string, error) {
	d.Images = len(images)
	if err := validate.Struct(d); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidListing, err)
	}
	p, err := s.Prods.BySKU(ctx, d.SKU)
	if err != nil {
		return "", err
	}
	ok, err := s.Prods.HasSize(ctx, p.ID, d.Size)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrUnknownSize
	}
	for _, im := range images {
		if _, ok := storage.ExtFor(im.ContentType); !ok || im.Size > MaxImageBytes {
			return "", fmt.Errorf("%w: unsupported image", ErrInvalidListing)
		}
	}

	var keys, urls []string
	cleanup := func() {
		for _, k := range keys {
			_ = s.Store.Delete(ctx, k)
		}
	}
	for _, im := range images {
		ext, _ := storage.ExtFor(im.ContentType)
		key := storage.ListingKey(seller.ID, ext, time.Now())
		keys = append(keys, key)
		url, err := s.put(ctx, key, im)
		if err != nil {
			cleanup()
			return "", err
		}
		urls = append(urls, url)
	}

	id, err := s.Listings.Create(ctx, domain.Listing{
		ProductID:      p.ID,
		SellerID:       seller.ID,
		Size:           d.Size,
		Condition:      d.Condition,
		ConditionNotes: d.ConditionNotes,
		Price:          d.Price,
	}, urls)
	if err != nil {
		cleanup()
		return "", err
	}

	telemetry.ListingsSubmitted.Inc()
	s.publish(events.ListingSubmitted, id, p.ID, seller.ID, d.Size, domain.ListingPendingReview)
	s.Catalog.Invalidate(ctx, p.ID)
	return id, nil
}

func (s *ListingService) put(ctx context.Context, key string, im Upload) (string, error) {
	rc, err := im.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return s.Store.Put(ctx, key, io.LimitReader(rc, MaxImageBytes), im.ContentType)
}

func (s *ListingService) Pending(ctx context.Context) ([]domain.Listing, error) {
	return s.Listings.Pending(ctx)
}

func (s *ListingService) BySeller(ctx context.Context, sellerID string) ([]domain.Listing, error) {
	return s.Listings.BySeller(ctx, sellerID)
}

// Approve publishes a pending listing as authenticated.
func (s *ListingService) Approve(ctx context.Context, id string) error {
	return s.review(ctx, id, domain.ListingActive, domain.AuthAuthenticated, "approved")
}

// Reject marks a pending listing as failing authentication.
func (s *ListingService) Reject(ctx context.Context, id string) error {
	return s.review(ctx, id, domain.ListingRejected, domain.AuthFailed, "rejected")
}

func (s *ListingService) review(ctx context.Context, id, status, auth, outcome string) error {
	l, err := s.Listings.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Listings.SetStatus(ctx, id, status, auth, domain.ListingPendingReview); err != nil {
		return err
	}
	telemetry.ListingReviews.WithLabelValues(outcome).Inc()
	s.publish(events.ListingReviewed, id, l.ProductID, l.SellerID, l.Size, status)
	s.Catalog.Invalidate(ctx, l.ProductID)
	return nil
}

// Withdraw lets a seller pull their own pending or active listing.
// Listings of other sellers report ErrNotFound.
func (s *ListingService) Withdraw(ctx context.Context, seller *domain.User, id string) error {
	l, err := s.Listings.Get(ctx, id)
	if err != nil {
		return err
	}
	if l.SellerID != seller.ID {
		return ErrNotFound
	}
	if err := s.Listings.SetStatus(ctx, id, domain.ListingWithdrawn, l.AuthenticationStatus,
		domain.ListingPendingReview, domain.ListingActive); err != nil {
		return err
	}
	s.Catalog.Invalidate(ctx, l.ProductID)
	return nil
}

func (s *ListingService) publish(subject, listingID, productID, sellerID, size, status string) {
	err := s.Events.Publish(subject, events.ListingEvent{
		ListingID: listingID,
		ProductID: productID,
		SellerID:  sellerID,
		Size:      size,
		Status:    status,
		At:        time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		log.L().Warn("event.publish.fail", zap.String("subject", subject), zap.Error(err))
	}
}
