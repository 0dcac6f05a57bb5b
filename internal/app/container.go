package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/database/migration"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/hierarchy"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/repository"
	"jobboard/migrations"
)

// Container owns the process-wide connections and the repositories built on
// them. Every command builds one and closes it on exit.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis

	Companies repository.CompanyRepository
	Postings  repository.PostingRepository
	Districts repository.DistrictRepository
	Bookmarks repository.BookmarkRepository

	Trees     *hierarchy.Store
	Rebuilder *hierarchy.Rebuilder
}

type ContainerOptions struct {
	// Migrate applies pending migrations before the container is returned.
	Migrate bool
	// SkipCache leaves Cache nil; Trees and Rebuilder are then nil too.
	SkipCache bool
}

func NewContainer(cfg config.Config, logger *log.Logger, opts ContainerOptions) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if opts.Migrate {
		r := migration.Runner{FS: migrations.FS, Logger: logger}
		if err := r.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if err := dbpostgres.RequirePostGIS(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Companies: repository.NewPostgresCompanyRepository(db),
		Postings:  repository.NewPostgresPostingRepository(db),
		Districts: repository.NewPostgresDistrictRepository(db),
		Bookmarks: repository.NewPostgresBookmarkRepository(db),
	}

	if !opts.SkipCache {
		jobs, err := hierarchy.DefaultJobTree()
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		c.Cache = cache.NewRedis(cfg.Redis, logger)
		c.Trees = hierarchy.NewStore(c.Cache)
		c.Rebuilder = hierarchy.NewRebuilder(c.Districts, jobs, c.Cache, logger)
	}

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
