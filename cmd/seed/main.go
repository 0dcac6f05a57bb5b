package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/database/seeder"
)

// seed applies migrations and fills the database with dummy postings. The
// districts table must already be populated by the importer.
func main() {
	n := flag.Int("n", 1000, "number of postings to generate")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	c, err := app.NewContainer(cfg, logger, app.ContainerOptions{Migrate: true, SkipCache: true})
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	env := seeder.Env{
		Companies: c.Companies,
		Districts: c.Districts,
		Postings:  c.Postings,
		Logger:    logger,
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults(*n)}).Run(ctx, env); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
