package repos_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lascala/internal/domain"
	"lascala/internal/repos"
)

func seededDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repos.Setup(db, true))
	return db
}

func TestSetup_SeedsOnce(t *testing.T) {
	db := seededDB(t)
	require.NoError(t, repos.SeedIfEmpty(db))

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM products`))
	assert.Equal(t, 4, n)
}

func TestProductRepo_BySKU(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(seededDB(t))

	p, err := r.BySKU(ctx, "BC-FJ-001")
	require.NoError(t, err)
	assert.Equal(t, "Brunello Cucinelli", p.BrandName)
	assert.Equal(t, "/static/img/bc-fj-001-front.jpg", p.PrimaryImage)
	require.NotNil(t, p.RetailPrice)
	assert.Equal(t, 6950.0, *p.RetailPrice)
	assert.Nil(t, p.CurrentPrice)

	_, err = r.BySKU(ctx, "NOPE")
	assert.ErrorIs(t, err, repos.ErrNotFound)
}

func TestProductRepo_SizesKeepCatalogOrder(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(seededDB(t))

	sizes, err := r.Sizes(ctx, "p-bc-field-jacket")
	require.NoError(t, err)
	var labels []string
	for _, s := range sizes {
		labels = append(labels, s.Label)
	}
	assert.Equal(t, []string{"46", "48", "50", "52", "54"}, labels)
}

func TestProductRepo_ListFilters(t *testing.T) {
	ctx := context.Background()
	r := repos.NewProductRepo(seededDB(t))

	all, err := r.List(ctx, repos.CollectionFilter{Limit: 12})
	require.NoError(t, err)
	require.Len(t, all, 4)
	// effective price descending
	assert.Equal(t, "KT-SUIT-004", all[0].SKU)
	assert.Equal(t, "ZG-OVS-003", all[3].SKU)

	women, err := r.List(ctx, repos.CollectionFilter{Gender: "W", Limit: 12})
	require.NoError(t, err)
	require.Len(t, women, 1)
	assert.Equal(t, "LP-TRV-002", women[0].SKU)

	size54, err := r.List(ctx, repos.CollectionFilter{Size: "54", Limit: 12})
	require.NoError(t, err)
	assert.Len(t, size54, 2)

	paged, err := r.List(ctx, repos.CollectionFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 2)
}

func TestProductRepo_Search(t *testing.T) {
	r := repos.NewProductRepo(seededDB(t))
	got, err := r.Search(context.Background(), "cashmere", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Cashmere Field Jacket", got[0].Name)
}

func TestProductRepo_SearchTreatsWildcardsLiterally(t *testing.T) {
	r := repos.NewProductRepo(seededDB(t))
	for _, term := range []string{"%%", "__", `\`, "b_-fj"} {
		got, err := r.Search(context.Background(), term, 10)
		require.NoError(t, err, term)
		assert.Empty(t, got, term)
	}
	got, err := r.Search(context.Background(), "bc-fj", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestInventoryRepo_EligibleSkipsEmptyStock(t *testing.T) {
	ctx := context.Background()
	r := repos.NewInventoryRepo(seededDB(t))

	rows, err := r.Eligible(ctx, "p-kiton-suit")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "50", rows[0].Size)
	assert.Equal(t, domain.SourceDropship, rows[0].SourceType)

	require.NoError(t, r.Upsert(ctx, "p-kiton-suit", "src-lascala", "52", 4))
	rows, err = r.Eligible(ctx, "p-kiton-suit")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestListingRepo_CreateAndReview(t *testing.T) {
	ctx := context.Background()
	r := repos.NewListingRepo(seededDB(t))

	id, err := r.Create(ctx, domain.Listing{
		ProductID: "p-lp-traveller", SellerID: "u-giulia", Size: "40",
		Condition: domain.ConditionExcellent, Price: 1800,
	}, []string{"/media/a.jpg", "/media/b.jpg"})
	require.NoError(t, err)

	l, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingPendingReview, l.Status)
	assert.Equal(t, domain.AuthPending, l.AuthenticationStatus)
	assert.Equal(t, "/media/a.jpg", l.PrimaryImage)

	active, err := r.Active(ctx, "p-lp-traveller")
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, r.SetStatus(ctx, id, domain.ListingActive, domain.AuthAuthenticated, domain.ListingPendingReview))
	active, err = r.Active(ctx, "p-lp-traveller")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	// no longer pending
	err = r.SetStatus(ctx, id, domain.ListingRejected, domain.AuthFailed, domain.ListingPendingReview)
	assert.ErrorIs(t, err, repos.ErrNotFound)
}

func TestListingRepo_ActiveCheapestFirst(t *testing.T) {
	r := repos.NewListingRepo(seededDB(t))
	got, err := r.Active(context.Background(), "p-bc-field-jacket")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 3200.0, got[0].Price)
	assert.Equal(t, "Marco", got[0].SellerName)
}

func TestClosetRepo_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	r := repos.NewClosetRepo(seededDB(t))

	require.NoError(t, r.TogglePublic(ctx, "u-giulia", "c-002"))
	assert.ErrorIs(t, r.TogglePublic(ctx, "u-marco", "c-002"), repos.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, "u-marco", "c-001"), repos.ErrNotFound)

	items, err := r.List(ctx, "u-giulia")
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		if it.ID == "c-002" {
			assert.True(t, it.IsPublic)
			assert.Nil(t, it.PurchasePrice)
		}
	}

	require.NoError(t, r.Delete(ctx, "u-giulia", "c-001"))
	items, err = r.List(ctx, "u-giulia")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartRepo_UpsertAccumulates(t *testing.T) {
	ctx := context.Background()
	db := seededDB(t)
	inv := repos.NewInventoryRepo(db)
	carts := repos.NewCartRepo(db)

	rows, err := inv.Eligible(ctx, "p-lp-traveller")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	cartID, err := carts.EnsureCart(ctx, "sid-1")
	require.NoError(t, err)
	again, err := carts.EnsureCart(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, cartID, again)

	require.NoError(t, carts.UpsertItem(ctx, cartID, rows[0].ID, 1, 4590))
	require.NoError(t, carts.UpsertItem(ctx, cartID, rows[0].ID, 1, 4590))
	items, err := carts.Items(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
	assert.Equal(t, 9180.0, items[0].Subtotal())
}

func TestUserRepo_Sessions(t *testing.T) {
	ctx := context.Background()
	r := repos.NewUserRepo(seededDB(t))

	u, err := r.ByEmail(ctx, "GIULIA@lascala.test")
	require.NoError(t, err)
	require.NoError(t, r.BindSession(ctx, "sid-9", u.ID))

	got, err := r.SessionUser(ctx, "sid-9")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, r.UnbindSession(ctx, "sid-9"))
	_, err = r.SessionUser(ctx, "sid-9")
	assert.ErrorIs(t, err, repos.ErrNotFound)
}
