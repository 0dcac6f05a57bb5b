package hierarchy

import (
	"context"
	"errors"
	"log"
	"time"

	"jobboard/internal/domain/region"
)

const (
	RegionTreeKey = "region_tree"
	JobTreeKey    = "job_categories"
)

// Cache is the key-value store holding the serialized trees.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetManyJSON(ctx context.Context, values map[string]any, ttl time.Duration) error
}

// RowSource lists every District row ordered by id.
type RowSource interface {
	ListHierarchyRows(ctx context.Context) ([]region.Row, error)
}

// Store reads the cached trees. It never builds them: a miss is an empty tree.
type Store struct {
	cache Cache
}

func NewStore(cache Cache) *Store {
	return &Store{cache: cache}
}

func (s *Store) RegionTree(ctx context.Context) (RegionTree, error) {
	tree := RegionTree{}
	if s == nil || s.cache == nil {
		return tree, nil
	}
	found, err := s.cache.GetJSON(ctx, RegionTreeKey, &tree)
	if err != nil {
		return RegionTree{}, err
	}
	if !found || tree == nil {
		return RegionTree{}, nil
	}
	return tree, nil
}

func (s *Store) JobTree(ctx context.Context) (JobTree, error) {
	tree := JobTree{}
	if s == nil || s.cache == nil {
		return tree, nil
	}
	found, err := s.cache.GetJSON(ctx, JobTreeKey, &tree)
	if err != nil {
		return JobTree{}, err
	}
	if !found || tree == nil {
		return JobTree{}, nil
	}
	return tree, nil
}

type RebuildStats struct {
	Cities     int
	Towns      int
	Categories int
	Duration   time.Duration
}

// Rebuilder recomputes both trees and replaces the cached values.
type Rebuilder struct {
	rows   RowSource
	jobs   JobTree
	cache  Cache
	logger *log.Logger
	now    func() time.Time
}

func NewRebuilder(rows RowSource, jobs JobTree, cache Cache, logger *log.Logger) *Rebuilder {
	return &Rebuilder{rows: rows, jobs: jobs, cache: cache, logger: logger, now: time.Now}
}

// Rebuild loads every District, builds both trees in memory and only then
// writes them together with no expiry. A failure before the write leaves the
// previous trees in place.
func (r *Rebuilder) Rebuild(ctx context.Context) (RebuildStats, error) {
	if r == nil || r.rows == nil || r.cache == nil {
		return RebuildStats{}, errors.New("hierarchy rebuilder not configured")
	}
	start := r.now()

	rows, err := r.rows.ListHierarchyRows(ctx)
	if err != nil {
		return RebuildStats{}, err
	}
	regions := BuildRegionTree(rows)

	jobs := r.jobs
	if jobs == nil {
		jobs = JobTree{}
	}

	if err := r.cache.SetManyJSON(ctx, map[string]any{
		RegionTreeKey: regions,
		JobTreeKey:    jobs,
	}, 0); err != nil {
		return RebuildStats{}, err
	}

	stats := RebuildStats{
		Cities:     len(regions),
		Towns:      regions.TownCount(),
		Categories: len(jobs),
		Duration:   r.now().Sub(start),
	}
	if r.logger != nil {
		r.logger.Printf("[Hierarchy] rebuilt rows=%d cities=%d towns=%d categories=%d took=%s",
			len(rows), stats.Cities, stats.Towns, stats.Categories, stats.Duration)
	}
	return stats, nil
}
