package service

import (
	"context"
	"testing"

	"diversity-shop/internal/model"
	"diversity-shop/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a distinct database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderDetail{},
	))

	return db
}

func seedProducts(t *testing.T, db *gorm.DB) {
	t.Helper()

	categories := []model.Category{{ID: 1, Name: "Shirts"}}
	require.NoError(t, db.Create(&categories).Error)

	products := []model.Product{
		{ID: 1, Name: "Pride Tee", PriceCents: 1000, Currency: "CAD", CategoryID: 1},
		{ID: 2, Name: "Unity Tee", PriceCents: 500, Currency: "CAD", CategoryID: 1},
	}
	require.NoError(t, db.Create(&products).Error)
}

func newCartService(t *testing.T) (CartService, repository.CartRepository, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	seedProducts(t, db)
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)

	return NewCartService(db, cartRepo, productRepo), cartRepo, db
}

func TestAddItemRepeatAddsMergeIntoOneLine(t *testing.T) {
	svc, cartRepo, _ := newCartService(t)
	ctx := context.Background()

	for _, qty := range []int32{2, 1, 4} {
		_, err := svc.AddItem(ctx, "anon-1", 1, qty)
		require.NoError(t, err)
	}

	items, err := cartRepo.ListByOwner(ctx, "anon-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int32(7), items[0].Quantity)
	require.Equal(t, int64(1000), items[0].UnitPriceCents)
}

func TestAddItemSnapshotsPriceAtAddTime(t *testing.T) {
	svc, cartRepo, db := newCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "anon-1", 1, 1)
	require.NoError(t, err)

	// a later catalog price change must not touch the cart line
	require.NoError(t, db.Model(&model.Product{}).Where("id = ?", 1).Update("price_cents", 9999).Error)

	_, err = svc.AddItem(ctx, "anon-1", 1, 1)
	require.NoError(t, err)

	items, err := cartRepo.ListByOwner(ctx, "anon-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(1000), items[0].UnitPriceCents)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, cartRepo, _ := newCartService(t)
	ctx := context.Background()

	for _, qty := range []int32{0, -3} {
		_, err := svc.AddItem(ctx, "anon-1", 1, qty)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	}

	items, err := cartRepo.ListByOwner(ctx, "anon-1")
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _, _ := newCartService(t)

	_, err := svc.AddItem(context.Background(), "anon-1", 99, 1)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveItemMissingRowIsAnError(t *testing.T) {
	svc, _, _ := newCartService(t)

	err := svc.RemoveItem(context.Background(), 42)
	require.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestMigrateRekeysAndAdvancesSessionOnce(t *testing.T) {
	svc, cartRepo, _ := newCartService(t)
	ctx := context.Background()

	sess := &stubSession{}
	anonKey := ResolveOwnerKey(sess, model.Anonymous())

	_, err := svc.AddItem(ctx, anonKey, 1, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, anonKey, 2, 1)
	require.NoError(t, err)

	identity := model.Authenticated("user@example.com")
	require.NoError(t, svc.Migrate(ctx, sess, identity))

	orphans, err := cartRepo.ListByOwner(ctx, anonKey)
	require.NoError(t, err)
	require.Empty(t, orphans)

	items, err := cartRepo.ListByOwner(ctx, identity.Key())
	require.NoError(t, err)
	require.Len(t, items, 2)

	key, ok := sess.OwnerKey()
	require.True(t, ok)
	require.Equal(t, identity.Key(), key)

	// second invocation finds the stored key already advanced: no work
	require.NoError(t, svc.Migrate(ctx, sess, identity))
	items, err = cartRepo.ListByOwner(ctx, identity.Key())
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestMigrateKeepsPreexistingLinesDistinct(t *testing.T) {
	svc, cartRepo, _ := newCartService(t)
	ctx := context.Background()

	identity := model.Authenticated("user@example.com")

	// returning customer already has product 1 in their cart
	_, err := svc.AddItem(ctx, identity.Key(), 1, 3)
	require.NoError(t, err)

	sess := &stubSession{}
	anonKey := ResolveOwnerKey(sess, model.Anonymous())
	_, err = svc.AddItem(ctx, anonKey, 1, 2)
	require.NoError(t, err)

	require.NoError(t, svc.Migrate(ctx, sess, identity))

	// migration does not merge by product: both lines survive
	items, err := cartRepo.ListByOwner(ctx, identity.Key())
	require.NoError(t, err)
	require.Len(t, items, 2)

	// the next add folds the duplicates into the earliest line
	_, err = svc.AddItem(ctx, identity.Key(), 1, 1)
	require.NoError(t, err)

	items, err = cartRepo.ListByOwner(ctx, identity.Key())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int32(6), items[0].Quantity)
}

func TestMigrateRequiresAuthenticatedIdentity(t *testing.T) {
	svc, _, _ := newCartService(t)

	err := svc.Migrate(context.Background(), &stubSession{}, model.Anonymous())
	require.Error(t, err)
}
