package repository_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbarpro/openbar/internal/model"
	"github.com/openbarpro/openbar/internal/repository"
	"github.com/openbarpro/openbar/internal/storage/kv"
	"github.com/openbarpro/openbar/pkg/ptr"
)

func TestProductRepository_RoundTrip(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := repository.NewProductRepository(store, slog.Default())

	products := []model.Product{
		{ID: "p1", Name: "Draft Beer", UnitPrice: 4.5, Description: "per glass", Category: "drinks"},
		{ID: "p2", Name: "Bartender", UnitPrice: 120},
	}
	require.NoError(t, repo.Save(products))

	assert.Equal(t, products, repo.Load())
}

func TestProductRepository_EmptySlot(t *testing.T) {
	repo := repository.NewProductRepository(kv.NewMemoryStore(), slog.Default())

	products := repo.Load()
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductRepository_CorruptDataFallsBackToEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	require.NoError(t, store.Put(kv.SlotProducts, []byte(`{"not":"an array"`)))

	repo := repository.NewProductRepository(store, slog.Default())

	products := repo.Load()
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestPackageRepository_RoundTrip(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := repository.NewPackageRepository(store, slog.Default())

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	packages := []model.Package{
		{
			ID:          "k1",
			Name:        "Wedding Basic",
			Description: "open bar, 4 hours",
			Items: []model.PackageItem{
				{ProductID: "p1", Quantity: 3},
				{ProductID: "p2", Quantity: 1, CustomPrice: ptr.New(99.0)},
			},
			CreatedAt: created,
		},
	}
	require.NoError(t, repo.Save(packages))

	assert.Equal(t, packages, repo.Load())
}

func TestPackageRepository_CorruptDataFallsBackToEmpty(t *testing.T) {
	store := kv.NewMemoryStore()
	require.NoError(t, store.Put(kv.SlotPackages, []byte(`42`)))

	repo := repository.NewPackageRepository(store, slog.Default())

	packages := repo.Load()
	assert.NotNil(t, packages)
	assert.Empty(t, packages)
}
