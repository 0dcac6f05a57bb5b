package seeder

import (
	"context"
	"fmt"
)

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, env Env) error {
	if env.Companies == nil || env.Districts == nil || env.Postings == nil {
		return fmt.Errorf("incomplete seeder env")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, env); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if env.Logger != nil {
			env.Logger.Printf("[Seed] %s done", s.Name())
		}
	}
	return nil
}
