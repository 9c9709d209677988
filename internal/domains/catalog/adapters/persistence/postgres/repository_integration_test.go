//go:build integration

package postgres

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/platform/migrations"
)

func setupCatalogPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestRepositoryIntegration_SaveUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	product, err := domain.NewProduct("p-1", "Chair", 49.99, "Oak chair", 3, "chair.png")
	require.NoError(t, err)
	first, err := repo.Save(ctx, product)
	require.NoError(t, err)

	product.Name = "Oak Chair"
	second, err := repo.Save(ctx, product)
	require.NoError(t, err)
	require.Equal(t, "Oak Chair", second.Entity.Name)
	require.WithinDuration(t, first.Metadata.CreatedAt, second.Metadata.CreatedAt, time.Millisecond)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepositoryIntegration_ConcurrentDecrement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	product, err := domain.NewProduct("p-2", "Desk", 120, "Standing desk", 7, "")
	require.NoError(t, err)
	_, err = repo.Save(ctx, product)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		accepted atomic.Int64
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Decrement(ctx, "p-2", 1); err == nil {
				accepted.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 7, accepted.Load())
	final, err := repo.GetByID(ctx, "p-2")
	require.NoError(t, err)
	require.EqualValues(t, 0, final.Entity.Quantity)
}
