package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/openbarpro/openbar/internal/model"
	"github.com/openbarpro/openbar/internal/storage/kv"
)

type ProductRepository interface {
	// Load returns the persisted catalog. It fails soft: a missing or
	// undecodable slot yields an empty collection, never an error.
	Load() []model.Product
	// Save overwrites the persisted catalog with the given collection.
	Save(products []model.Product) error
}

type productRepository struct {
	store  kv.Store
	logger *slog.Logger
}

func NewProductRepository(store kv.Store, logger *slog.Logger) ProductRepository {
	return &productRepository{
		store:  store,
		logger: logger.With(slog.String("repository", "product")),
	}
}

func (r *productRepository) Load() []model.Product {
	data, err := r.store.Get(kv.SlotProducts)
	if err != nil {
		r.logger.Error("load products", slog.Any("error", err))
		return []model.Product{}
	}
	if data == nil {
		return []model.Product{}
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		r.logger.Error("decode stored products, falling back to empty catalog",
			slog.Any("error", err))
		return []model.Product{}
	}
	if products == nil {
		products = []model.Product{}
	}

	return products
}

func (r *productRepository) Save(products []model.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}

	if err := r.store.Put(kv.SlotProducts, data); err != nil {
		return fmt.Errorf("store products: %w", err)
	}

	return nil
}
