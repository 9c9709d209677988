package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
)

// setupSQLite opens a private in-memory SQLite database. One connection keeps
// every query on the same database.
func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, migrations.Run(db))
	return db
}

func newProduct(t *testing.T, id string, qty int64) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, "Widget", 10, "a widget", qty, "")
	require.NoError(t, err)
	return p
}

func TestRepository_SaveGetList(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()

	saved, err := repo.Save(ctx, newProduct(t, "p1", 3))
	require.NoError(t, err)
	assert.Equal(t, "p1", saved.Entity.ID)
	assert.EqualValues(t, 3, saved.Entity.Quantity)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())

	_, err = repo.Save(ctx, newProduct(t, "p2", 0))
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_SetQuantity(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()
	_, err := repo.Save(ctx, newProduct(t, "p1", 3))
	require.NoError(t, err)

	updated, err := repo.SetQuantity(ctx, "p1", 12)
	require.NoError(t, err)
	assert.EqualValues(t, 12, updated.Entity.Quantity)

	_, err = repo.SetQuantity(ctx, "missing", 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_Decrement(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()
	_, err := repo.Save(ctx, newProduct(t, "p1", 5))
	require.NoError(t, err)

	after, err := repo.Decrement(ctx, "p1", 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, after.Entity.Quantity)

	_, err = repo.Decrement(ctx, "p1", 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = repo.Decrement(ctx, "missing", 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	current, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, current.Entity.Quantity)
}

func TestRepository_DecrementNeverOversells(t *testing.T) {
	repo := NewRepository(setupSQLite(t))
	ctx := context.Background()
	_, err := repo.Save(ctx, newProduct(t, "p1", 5))
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Decrement(ctx, "p1", 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	current, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, current.Entity.Quantity)
}

func TestIdempotencyStore_SaveAndConflict(t *testing.T) {
	store := NewIdempotencyStore(setupSQLite(t))
	ctx := context.Background()

	missing, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, missing)

	saved, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k", RequestHash: "h1", ProductID: "p-1"})
	require.NoError(t, err)
	assert.Equal(t, "p-1", saved.ProductID)

	again, err := store.Save(ctx, ports.IdempotencyRecord{Key: "k", RequestHash: "h1", ProductID: "p-2"})
	require.NoError(t, err)
	assert.Equal(t, "p-1", again.ProductID)

	_, err = store.Save(ctx, ports.IdempotencyRecord{Key: "k", RequestHash: "h2", ProductID: "p-3"})
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}
