package service_test

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbarpro/openbar/internal/apperr"
	"github.com/openbarpro/openbar/internal/repository"
	"github.com/openbarpro/openbar/internal/service"
	"github.com/openbarpro/openbar/internal/storage/kv"
	"github.com/openbarpro/openbar/pkg/ptr"
	"github.com/openbarpro/openbar/pkg/validator"
	"github.com/openbarpro/openbar/pkg/zerror"
)

func newService(t *testing.T, store kv.Store) service.CatalogService {
	t.Helper()

	logger := slog.Default()
	return service.NewCatalogService(
		repository.NewProductRepository(store, logger),
		repository.NewPackageRepository(store, logger),
		validator.NewDefaultValidator(),
	)
}

func TestCreateProduct(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	product, err := svc.CreateProduct(service.ProductParams{
		Name:      "Draft Beer",
		UnitPrice: 4.5,
		Category:  "drinks",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "Draft Beer", product.Name)

	products := svc.Products()
	require.Len(t, products, 1)
	assert.Equal(t, product, products[0])
}

func TestCreateProduct_ValidationRejectedBeforeMutation(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	_, err := svc.CreateProduct(service.ProductParams{UnitPrice: 3})
	require.Error(t, err)
	assert.Empty(t, svc.Products())

	_, err = svc.CreateProduct(service.ProductParams{Name: "Beer", UnitPrice: -1})
	require.Error(t, err)
	assert.Empty(t, svc.Products())
}

func TestUpdateProduct(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	created, err := svc.CreateProduct(service.ProductParams{Name: "Beer", UnitPrice: 3})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(created.ID, service.ProductParams{
		Name:      "Craft Beer",
		UnitPrice: 5.5,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID, "id is immutable")
	assert.Equal(t, "Craft Beer", updated.Name)

	_, err = svc.UpdateProduct("nope", service.ProductParams{Name: "x", UnitPrice: 1})
	var zErr zerror.ZError
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, apperr.ProductNotFoundCode, zErr.Code())
}

func TestDeleteProduct_NoCascade(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	product, err := svc.CreateProduct(service.ProductParams{Name: "Beer", UnitPrice: 10})
	require.NoError(t, err)

	pkg, err := svc.CreatePackage(service.PackageParams{
		Name:  "Happy Hour",
		Items: []service.PackageItemParams{{ProductID: product.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(product.ID))

	// the package keeps its items; the dangling line just stops
	// contributing to the total
	packages := svc.Packages()
	require.Len(t, packages, 1)
	assert.Equal(t, pkg.Items, packages[0].Items)
	assert.Zero(t, svc.Summary().GrandTotal)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	err := svc.DeleteProduct("nope")
	var zErr zerror.ZError
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, apperr.ProductNotFoundCode, zErr.Code())
}

func TestImportProducts_Appends(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	_, err := svc.CreateProduct(service.ProductParams{Name: "Existing", UnitPrice: 1})
	require.NoError(t, err)

	imported, err := svc.ImportProducts(strings.NewReader(
		"id,name,unitPrice\np1,Beer,3.5\np2,Wine,7\n"))
	require.NoError(t, err)
	assert.Len(t, imported, 2)

	products := svc.Products()
	require.Len(t, products, 3)
	assert.Equal(t, "Existing", products[0].Name)
	assert.Equal(t, "p1", products[1].ID)
	assert.Equal(t, "p2", products[2].ID)
}

func TestImportProducts_MalformedFileCommitsNothing(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	_, err := svc.CreateProduct(service.ProductParams{Name: "Existing", UnitPrice: 1})
	require.NoError(t, err)

	_, err = svc.ImportProducts(strings.NewReader("id,name,unitPrice\np1,Beer\n"))
	var zErr zerror.ZError
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, apperr.ImportFailedCode, zErr.Code())

	assert.Len(t, svc.Products(), 1, "no partial import")
}

func TestCreatePackage_RequiresItems(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	_, err := svc.CreatePackage(service.PackageParams{Name: "Empty"})
	assert.Error(t, err)

	_, err = svc.CreatePackage(service.PackageParams{
		Items: []service.PackageItemParams{{ProductID: "p1", Quantity: 1}},
	})
	assert.Error(t, err, "name is required")

	assert.Empty(t, svc.Packages())
}

func TestUpdatePackage_PreservesIDAndCreatedAt(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	created, err := svc.CreatePackage(service.PackageParams{
		Name:  "Wedding Basic",
		Items: []service.PackageItemParams{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	require.False(t, created.CreatedAt.IsZero())

	time.Sleep(5 * time.Millisecond)

	updated, err := svc.UpdatePackage(created.ID, service.PackageParams{
		Name:        "Wedding Deluxe",
		Description: "now with sparklers",
		Items: []service.PackageItemParams{
			{ProductID: "p1", Quantity: 2, CustomPrice: ptr.New(7.5)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Wedding Deluxe", updated.Name)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 7.5, *updated.Items[0].CustomPrice)
}

func TestUpdatePackage_NotFound(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	_, err := svc.UpdatePackage("nope", service.PackageParams{
		Name:  "x",
		Items: []service.PackageItemParams{{ProductID: "p1", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, apperr.PackageNotFoundErr))
}

func TestDeletePackage(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	created, err := svc.CreatePackage(service.PackageParams{
		Name:  "Happy Hour",
		Items: []service.PackageItemParams{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePackage(created.ID))
	assert.Empty(t, svc.Packages())

	assert.True(t, errors.Is(svc.DeletePackage(created.ID), apperr.PackageNotFoundErr))
}

func TestSummary(t *testing.T) {
	svc := newService(t, kv.NewMemoryStore())

	beer, err := svc.CreateProduct(service.ProductParams{Name: "Beer", UnitPrice: 10})
	require.NoError(t, err)
	wine, err := svc.CreateProduct(service.ProductParams{Name: "Wine", UnitPrice: 7})
	require.NoError(t, err)

	_, err = svc.CreatePackage(service.PackageParams{
		Name:  "A",
		Items: []service.PackageItemParams{{ProductID: beer.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = svc.CreatePackage(service.PackageParams{
		Name: "B",
		Items: []service.PackageItemParams{
			{ProductID: wine.ID, Quantity: 2, CustomPrice: ptr.New(5.0)},
			{ProductID: "dangling", Quantity: 9},
		},
	})
	require.NoError(t, err)

	summary := svc.Summary()
	assert.Equal(t, 2, summary.ProductCount)
	assert.Equal(t, 2, summary.PackageCount)
	assert.InDelta(t, 30.0, summary.GrandTotal, 1e-9)
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	store := kv.NewMemoryStore()

	svc := newService(t, store)
	product, err := svc.CreateProduct(service.ProductParams{Name: "Beer", UnitPrice: 3})
	require.NoError(t, err)
	_, err = svc.CreatePackage(service.PackageParams{
		Name:  "Happy Hour",
		Items: []service.PackageItemParams{{ProductID: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// a fresh service over the same store sees the same state
	reloaded := newService(t, store)
	assert.Len(t, reloaded.Products(), 1)
	require.Len(t, reloaded.Packages(), 1)
	assert.InDelta(t, 6.0, reloaded.Summary().GrandTotal, 1e-9)
}
