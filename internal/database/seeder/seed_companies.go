package seeder

import (
	"context"

	"jobboard/internal/domain/posting"
)

// DefaultCompanyName owns every generated posting.
const DefaultCompanyName = "더미 컴퍼니"

type CompaniesSeeder struct{}

func (CompaniesSeeder) Name() string { return "companies" }

func (CompaniesSeeder) Run(ctx context.Context, env Env) error {
	_, err := env.Companies.Upsert(ctx, posting.Company{Name: DefaultCompanyName})
	return err
}
