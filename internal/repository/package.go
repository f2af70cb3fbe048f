package repository

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/openbarpro/openbar/internal/model"
	"github.com/openbarpro/openbar/internal/storage/kv"
)

type PackageRepository interface {
	// Load returns the persisted packages, empty on any decode failure.
	Load() []model.Package
	// Save overwrites the persisted packages with the given collection.
	Save(packages []model.Package) error
}

type packageRepository struct {
	store  kv.Store
	logger *slog.Logger
}

func NewPackageRepository(store kv.Store, logger *slog.Logger) PackageRepository {
	return &packageRepository{
		store:  store,
		logger: logger.With(slog.String("repository", "package")),
	}
}

func (r *packageRepository) Load() []model.Package {
	data, err := r.store.Get(kv.SlotPackages)
	if err != nil {
		r.logger.Error("load packages", slog.Any("error", err))
		return []model.Package{}
	}
	if data == nil {
		return []model.Package{}
	}

	var packages []model.Package
	if err := json.Unmarshal(data, &packages); err != nil {
		r.logger.Error("decode stored packages, falling back to empty collection",
			slog.Any("error", err))
		return []model.Package{}
	}
	if packages == nil {
		packages = []model.Package{}
	}

	return packages
}

func (r *packageRepository) Save(packages []model.Package) error {
	data, err := json.Marshal(packages)
	if err != nil {
		return fmt.Errorf("encode packages: %w", err)
	}

	if err := r.store.Put(kv.SlotPackages, data); err != nil {
		return fmt.Errorf("store packages: %w", err)
	}

	return nil
}
