package repository

import (
	"context"
	"testing"

	"diversity-shop/internal/model"

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

func TestCartRepositoryAddQuantityIncrementsInPlace(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	item := &model.CartItem{OwnerKey: "anon-1", ProductID: 1, Quantity: 2, UnitPriceCents: 1000}
	require.NoError(t, repo.Create(ctx, db, item))

	require.NoError(t, repo.AddQuantity(ctx, db, item.ID, 3))

	got, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, int32(5), got.Quantity)
	require.Equal(t, int64(1000), got.UnitPriceCents)
}

func TestCartRepositoryAddQuantityMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)

	err := repo.AddQuantity(context.Background(), db, 42, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepositoryListByOwnerInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	for _, productID := range []uint{3, 1, 2} {
		require.NoError(t, repo.Create(ctx, db, &model.CartItem{
			OwnerKey: "anon-1", ProductID: productID, Quantity: 1, UnitPriceCents: 100,
		}))
	}
	require.NoError(t, repo.Create(ctx, db, &model.CartItem{
		OwnerKey: "someone-else", ProductID: 9, Quantity: 1, UnitPriceCents: 100,
	}))

	items, err := repo.ListByOwner(ctx, "anon-1")
	require.NoError(t, err)
	require.Len(t, items, 3)

	// insertion order, not product order
	require.Equal(t, uint(3), items[0].ProductID)
	require.Equal(t, uint(1), items[1].ProductID)
	require.Equal(t, uint(2), items[2].ProductID)
}

func TestCartRepositoryRekeyMovesEveryRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	for i := uint(1); i <= 3; i++ {
		require.NoError(t, repo.Create(ctx, db, &model.CartItem{
			OwnerKey: "anon-1", ProductID: i, Quantity: 1, UnitPriceCents: 100,
		}))
	}

	moved, err := repo.Rekey(ctx, db, "anon-1", "user@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(3), moved)

	orphans, err := repo.ListByOwner(ctx, "anon-1")
	require.NoError(t, err)
	require.Empty(t, orphans)

	items, err := repo.ListByOwner(ctx, "user@example.com")
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestCartRepositoryDeleteReportsRowsAffected(t *testing.T) {
	db := newTestDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	item := &model.CartItem{OwnerKey: "anon-1", ProductID: 1, Quantity: 1, UnitPriceCents: 100}
	require.NoError(t, repo.Create(ctx, db, item))

	deleted, err := repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	deleted, err = repo.Delete(ctx, item.ID)
	require.NoError(t, err)
	require.Zero(t, deleted)
}
