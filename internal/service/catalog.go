package service

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openbarpro/openbar/internal/apperr"
	"github.com/openbarpro/openbar/internal/csvio"
	"github.com/openbarpro/openbar/internal/model"
	"github.com/openbarpro/openbar/internal/pricing"
	"github.com/openbarpro/openbar/internal/repository"
	"github.com/openbarpro/openbar/pkg/validator"
)

type ProductParams struct {
	Name        string  `validate:"required"`
	UnitPrice   float64 `validate:"gte=0"`
	Description string
	Category    string
}

type PackageItemParams struct {
	ProductID   string   `validate:"required"`
	Quantity    int
	CustomPrice *float64 `validate:"omitempty,gte=0"`
}

type PackageParams struct {
	Name        string              `validate:"required"`
	Description string
	Items       []PackageItemParams `validate:"required,min=1,dive"`
}

type Summary struct {
	ProductCount int     `json:"productCount"`
	PackageCount int     `json:"packageCount"`
	GrandTotal   float64 `json:"grandTotal"`
}

// CatalogService owns the in-memory collections and performs every
// read-modify-write-persist sequence atomically from the caller's
// point of view. There is exactly one writer path: all mutations go
// through the mutex, and the full collection is persisted after each
// change.
type CatalogService interface {
	Products() []model.Product
	CreateProduct(params ProductParams) (model.Product, error)
	UpdateProduct(id string, params ProductParams) (model.Product, error)
	DeleteProduct(id string) error
	// ImportProducts parses a product CSV and appends every parsed row
	// to the catalog. Nothing is committed when parsing fails.
	ImportProducts(r io.Reader) ([]model.Product, error)

	Packages() []model.Package
	CreatePackage(params PackageParams) (model.Package, error)
	UpdatePackage(id string, params PackageParams) (model.Package, error)
	DeletePackage(id string) error

	// Snapshot returns copies of both collections for export consumers.
	Snapshot() ([]model.Product, []model.Package)
	Summary() Summary
}

type catalogService struct {
	mu          sync.Mutex
	products    []model.Product
	packages    []model.Package
	productRepo repository.ProductRepository
	packageRepo repository.PackageRepository
	validate    validator.Validator
}

// NewCatalogService loads both collections from their repositories.
// Load failures have already been degraded to empty collections there.
func NewCatalogService(
	productRepo repository.ProductRepository,
	packageRepo repository.PackageRepository,
	validate validator.Validator,
) CatalogService {
	return &catalogService{
		products:    productRepo.Load(),
		packages:    packageRepo.Load(),
		productRepo: productRepo,
		packageRepo: packageRepo,
		validate:    validate,
	}
}

func (s *catalogService) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyProducts(s.products)
}

func (s *catalogService) CreateProduct(params ProductParams) (model.Product, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.Product{}, fmt.Errorf("validate product params: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	product := model.Product{
		ID:          id.String(),
		Name:        params.Name,
		UnitPrice:   params.UnitPrice,
		Description: params.Description,
		Category:    params.Category,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(copyProducts(s.products), product)
	if err := s.productRepo.Save(next); err != nil {
		return model.Product{}, fmt.Errorf("persist products: %w", err)
	}
	s.products = next

	return product, nil
}

func (s *catalogService) UpdateProduct(id string, params ProductParams) (model.Product, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.Product{}, fmt.Errorf("validate product params: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := copyProducts(s.products)
	idx := -1
	for i, p := range next {
		if p.ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return model.Product{}, apperr.ProductNotFoundErr
	}

	// id is immutable after creation
	next[idx] = model.Product{
		ID:          id,
		Name:        params.Name,
		UnitPrice:   params.UnitPrice,
		Description: params.Description,
		Category:    params.Category,
	}

	if err := s.productRepo.Save(next); err != nil {
		return model.Product{}, fmt.Errorf("persist products: %w", err)
	}
	s.products = next

	return next[idx], nil
}

func (s *catalogService) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ID != id {
			next = append(next, p)
		}
	}
	if len(next) == len(s.products) {
		return apperr.ProductNotFoundErr
	}

	// no cascade: package items referencing id become dangling and are
	// excluded from totals and listings from here on
	if err := s.productRepo.Save(next); err != nil {
		return fmt.Errorf("persist products: %w", err)
	}
	s.products = next

	return nil
}

func (s *catalogService) ImportProducts(r io.Reader) ([]model.Product, error) {
	imported, err := csvio.ImportProducts(r)
	if err != nil {
		return nil, apperr.ImportFailedErr.WrapParent(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(copyProducts(s.products), imported...)
	if err := s.productRepo.Save(next); err != nil {
		return nil, fmt.Errorf("persist products: %w", err)
	}
	s.products = next

	return imported, nil
}

func (s *catalogService) Packages() []model.Package {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyPackages(s.packages)
}

func (s *catalogService) CreatePackage(params PackageParams) (model.Package, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.Package{}, fmt.Errorf("validate package params: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Package{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	pkg := model.Package{
		ID:          id.String(),
		Name:        params.Name,
		Description: params.Description,
		Items:       itemsFromParams(params.Items),
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(copyPackages(s.packages), pkg)
	if err := s.packageRepo.Save(next); err != nil {
		return model.Package{}, fmt.Errorf("persist packages: %w", err)
	}
	s.packages = next

	return pkg, nil
}

func (s *catalogService) UpdatePackage(id string, params PackageParams) (model.Package, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.Package{}, fmt.Errorf("validate package params: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := copyPackages(s.packages)
	idx := -1
	for i, pkg := range next {
		if pkg.ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return model.Package{}, apperr.PackageNotFoundErr
	}

	// edits replace name, description and items; id and createdAt are
	// preserved from the original record
	next[idx].Name = params.Name
	next[idx].Description = params.Description
	next[idx].Items = itemsFromParams(params.Items)

	if err := s.packageRepo.Save(next); err != nil {
		return model.Package{}, fmt.Errorf("persist packages: %w", err)
	}
	s.packages = next

	return next[idx], nil
}

func (s *catalogService) DeletePackage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Package, 0, len(s.packages))
	for _, pkg := range s.packages {
		if pkg.ID != id {
			next = append(next, pkg)
		}
	}
	if len(next) == len(s.packages) {
		return apperr.PackageNotFoundErr
	}

	if err := s.packageRepo.Save(next); err != nil {
		return fmt.Errorf("persist packages: %w", err)
	}
	s.packages = next

	return nil
}

func (s *catalogService) Snapshot() ([]model.Product, []model.Package) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyProducts(s.products), copyPackages(s.packages)
}

func (s *catalogService) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Summary{
		ProductCount: len(s.products),
		PackageCount: len(s.packages),
		GrandTotal:   pricing.GrandTotal(s.packages, s.products),
	}
}

func itemsFromParams(params []PackageItemParams) []model.PackageItem {
	items := make([]model.PackageItem, 0, len(params))
	for _, p := range params {
		items = append(items, model.PackageItem{
			ProductID:   p.ProductID,
			Quantity:    p.Quantity,
			CustomPrice: p.CustomPrice,
		})
	}
	return items
}

func copyProducts(products []model.Product) []model.Product {
	return append([]model.Product{}, products...)
}

func copyPackages(packages []model.Package) []model.Package {
	next := make([]model.Package, len(packages))
	for i, pkg := range packages {
		next[i] = pkg
		next[i].Items = append([]model.PackageItem{}, pkg.Items...)
	}
	return next
}
