package usecase

import (
	"context"
	"fmt"
	"log"

	"jobboard/internal/geo"
	"jobboard/internal/hierarchy"
	"jobboard/internal/repository"
)

type ImportResult struct {
	Decoded int
	Written int
	Rebuild hierarchy.RebuildStats
}

type rebuilder interface {
	Rebuild(ctx context.Context) (hierarchy.RebuildStats, error)
}

// DistrictImport loads district boundaries and then refreshes the cached
// region tree so it reflects the new rows.
type DistrictImport struct {
	districts repository.DistrictRepository
	rebuilder rebuilder
	keys      geo.PropertyKeys
	logger    *log.Logger
}

func NewDistrictImport(districts repository.DistrictRepository, rb rebuilder, keys geo.PropertyKeys, logger *log.Logger) *DistrictImport {
	return &DistrictImport{districts: districts, rebuilder: rb, keys: keys, logger: logger}
}

// Import decodes a GeoJSON FeatureCollection and upserts every district by
// town code. Nothing is written when any feature is invalid.
func (u *DistrictImport) Import(ctx context.Context, data []byte) (ImportResult, error) {
	items, err := geo.DecodeDistricts(data, u.keys)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if u.logger != nil {
		u.logger.Printf("[Import] decoded districts=%d", len(items))
	}

	written, err := u.districts.Upsert(ctx, items)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: upsert districts: %w", ErrInternal, err)
	}
	if u.logger != nil {
		u.logger.Printf("[Import] upserted districts=%d", written)
	}

	res := ImportResult{Decoded: len(items), Written: written}
	if u.rebuilder == nil {
		return res, nil
	}
	stats, err := u.rebuilder.Rebuild(ctx)
	if err != nil {
		return res, fmt.Errorf("%w: rebuild hierarchy: %w", ErrInternal, err)
	}
	res.Rebuild = stats
	return res, nil
}
