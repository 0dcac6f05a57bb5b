package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard/internal/app"
	"jobboard/internal/config"

	"github.com/robfig/cron/v3"
)

// hierarchy rebuilds the cached region and job trees. It runs once unless
// -cron is given, in which case it rebuilds on that schedule until stopped.
func main() {
	spec := flag.String("cron", "", `cron spec for repeated rebuilds, e.g. "@daily" (empty runs once)`)
	useConfig := flag.Bool("use-config-schedule", false, "rebuild on HIERARCHY_CRON instead of running once")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	c, err := app.NewContainer(cfg, logger, app.ContainerOptions{})
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	rebuild := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		_, err := c.Rebuilder.Rebuild(ctx)
		return err
	}

	schedule := *spec
	if schedule == "" && *useConfig {
		schedule = cfg.Hierarchy.CronSpec
	}
	if schedule == "" {
		if err := rebuild(); err != nil {
			log.Fatalf("hierarchy rebuild failed: %v", err)
		}
		return
	}

	cr := cron.New(cron.WithLogger(cron.PrintfLogger(logger)))
	if _, err := cr.AddFunc(schedule, func() {
		if err := rebuild(); err != nil {
			logger.Printf("[Hierarchy] scheduled rebuild failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("invalid cron spec %q: %v", schedule, err)
	}

	if err := rebuild(); err != nil {
		logger.Printf("[Hierarchy] initial rebuild failed: %v", err)
	}

	cr.Start()
	logger.Printf("[Hierarchy] scheduled rebuilds: spec=%q", schedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	<-cr.Stop().Done()
}
