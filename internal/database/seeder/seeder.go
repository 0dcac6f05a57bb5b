package seeder

import (
	"context"
	"log"

	"jobboard/internal/repository"
)

// Env is what a seeder writes through. The Postgres repositories are used by
// cmd/seed; tests pass the in-memory ones.
type Env struct {
	Companies repository.CompanyRepository
	Districts repository.DistrictRepository
	Postings  repository.PostingRepository
	Logger    *log.Logger
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, env Env) error
}
