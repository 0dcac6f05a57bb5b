package usecase

import (
	"context"
	"log"

	"jobboard/internal/hierarchy"
)

type HierarchyUsecase interface {
	RegionTree(ctx context.Context) hierarchy.RegionTree
	JobTree(ctx context.Context) hierarchy.JobTree
}

type treeReader interface {
	RegionTree(ctx context.Context) (hierarchy.RegionTree, error)
	JobTree(ctx context.Context) (hierarchy.JobTree, error)
}

// Hierarchy serves the cached trees. A cache failure is logged and served as
// an empty tree, the same as a tree that was never built.
type Hierarchy struct {
	store  treeReader
	logger *log.Logger
}

func NewHierarchyUsecase(store treeReader, logger *log.Logger) *Hierarchy {
	return &Hierarchy{store: store, logger: logger}
}

func (u *Hierarchy) RegionTree(ctx context.Context) hierarchy.RegionTree {
	t, err := u.store.RegionTree(ctx)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Hierarchy] read %s failed: %v", hierarchy.RegionTreeKey, err)
		}
		return hierarchy.RegionTree{}
	}
	return t
}

func (u *Hierarchy) JobTree(ctx context.Context) hierarchy.JobTree {
	t, err := u.store.JobTree(ctx)
	if err != nil {
		if u.logger != nil {
			u.logger.Printf("[Hierarchy] read %s failed: %v", hierarchy.JobTreeKey, err)
		}
		return hierarchy.JobTree{}
	}
	return t
}
