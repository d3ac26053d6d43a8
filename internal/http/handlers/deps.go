package handlers

import (
	"github.com/jmoiron/sqlx"

	"lascala/internal/cache"
	"lascala/internal/config"
	"lascala/internal/events"
	"lascala/internal/pricing"
	"lascala/internal/repos"
	"lascala/internal/services"
	"lascala/internal/storage"
)

type Deps struct {
	Auth *services.AuthService

	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	ProductHandler *ProductHandler
	SellHandler    *SellHandler
	ClosetHandler  *ClosetHandler
	CartHandler    *CartHandler
	WTBHandler     *WTBHandler
	AdminHandler   *AdminHandler
	APIHandler     *APIHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, c cache.Cache, pub events.Publisher, store storage.Storage) *Deps {
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	listingRepo := repos.NewListingRepo(db)
	closetRepo := repos.NewClosetRepo(db)
	wtbRepo := repos.NewWTBRepo(db)
	cartRepo := repos.NewCartRepo(db)
	userRepo := repos.NewUserRepo(db)

	authSvc := &services.AuthService{Users: userRepo}
	catalogSvc := services.NewCatalogService(prodRepo, invRepo, listingRepo, c)
	listingSvc := &services.ListingService{
		Prods:    prodRepo,
		Listings: listingRepo,
		Store:    store,
		Events:   pub,
		Catalog:  catalogSvc,
		FeeRate:  pricing.ParseRate(cfg.SellerFeeRate),
	}
	closetSvc := &services.ClosetService{Prods: prodRepo, Closet: closetRepo, Offers: wtbRepo}
	cartSvc := services.NewCartService(cartRepo, invRepo, prodRepo)
	wtbSvc := &services.WTBService{Prods: prodRepo, Offers: wtbRepo}

	return &Deps{
		Auth:           authSvc,
		AuthHandler:    &AuthHandler{Auth: authSvc, CookieSecure: cfg.CookieSecure},
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		SellHandler:    &SellHandler{Catalog: catalogSvc, Listings: listingSvc},
		ClosetHandler:  &ClosetHandler{Closet: closetSvc, Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc, CookieSecure: cfg.CookieSecure},
		WTBHandler:     &WTBHandler{WTB: wtbSvc},
		AdminHandler:   &AdminHandler{Listings: listingSvc, Catalog: catalogSvc, Prods: prodRepo, Inv: invRepo},
		APIHandler:     &APIHandler{Catalog: catalogSvc},
	}
}
