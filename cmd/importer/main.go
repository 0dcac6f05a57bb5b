package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"
	"jobboard/internal/geo"
	"jobboard/internal/usecase"

	"gopkg.in/yaml.v3"
)

// importer loads district boundaries from a GeoJSON FeatureCollection in
// EPSG:5179 and rebuilds the cached region tree.
func main() {
	file := flag.String("file", "", "GeoJSON FeatureCollection of town boundaries")
	keysFile := flag.String("keys", "", "optional YAML file mapping feature property names")
	flag.Parse()

	if *file == "" {
		log.Fatalf("-file is required")
	}

	keys := geo.DefaultPropertyKeys
	if *keysFile != "" {
		b, err := os.ReadFile(*keysFile)
		if err != nil {
			log.Fatalf("read keys file: %v", err)
		}
		if err := yaml.Unmarshal(b, &keys); err != nil {
			log.Fatalf("parse keys file: %v", err)
		}
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read geojson: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	c, err := app.NewContainer(cfg, logger, app.ContainerOptions{Migrate: true})
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	res, err := usecase.NewDistrictImport(c.Districts, c.Rebuilder, keys, logger).Import(ctx, data)
	if err != nil {
		log.Fatalf("district import failed: %v", err)
	}
	logger.Printf("[Import] done decoded=%d written=%d cities=%d towns=%d",
		res.Decoded, res.Written, res.Rebuild.Cities, res.Rebuild.Towns)
}
