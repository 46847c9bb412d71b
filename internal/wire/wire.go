// Package wire provides dependency injection for the stagepatch application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/stagepatch/internal/adapters/cli"
	"github.com/example/stagepatch/internal/adapters/postgres"
	"github.com/example/stagepatch/internal/adapters/sqlite"
	"github.com/example/stagepatch/internal/app"
	"github.com/example/stagepatch/internal/config"
	"github.com/example/stagepatch/internal/db"
	"github.com/example/stagepatch/internal/ports/primary"
	"github.com/example/stagepatch/internal/ports/secondary"
)

var (
	cfg            *config.Config
	catalogService primary.CatalogService
	eventService   primary.EventService
	patchService   primary.PatchService
	once           sync.Once
)

// Config returns the loaded application config.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// CatalogService returns the singleton CatalogService instance.
func CatalogService() primary.CatalogService {
	once.Do(initServices)
	return catalogService
}

// EventService returns the singleton EventService instance.
func EventService() primary.EventService {
	once.Do(initServices)
	return eventService
}

// PatchService returns the singleton PatchService instance.
func PatchService() primary.PatchService {
	once.Do(initServices)
	return patchService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load(config.DefaultPath())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := cfg.NewLogger()

	var (
		categoryRepo secondary.CategoryRepository
		channelRepo  secondary.ChannelRepository
		eventRepo    secondary.EventRepository
		bandRepo     secondary.BandRepository
		patchRepo    secondary.PatchChannelRepository
		usageRepo    secondary.UsageRepository
	)

	switch cfg.Database.Driver {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.Database.DSN)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		if err := postgres.InitSchema(context.Background(), pool); err != nil {
			log.Fatalf("failed to initialize postgres schema: %v", err)
		}
		categoryRepo = postgres.NewCategoryRepository(pool)
		channelRepo = postgres.NewChannelRepository(pool)
		eventRepo = postgres.NewEventRepository(pool)
		bandRepo = postgres.NewBandRepository(pool)
		patchRepo = postgres.NewPatchChannelRepository(pool)
		usageRepo = postgres.NewUsageRepository(pool)
	default:
		database, err := db.GetDB()
		if err != nil {
			log.Fatalf("failed to initialize database: %v", err)
		}
		categoryRepo = sqlite.NewCategoryRepository(database)
		channelRepo = sqlite.NewChannelRepository(database)
		eventRepo = sqlite.NewEventRepository(database)
		bandRepo = sqlite.NewBandRepository(database)
		patchRepo = sqlite.NewPatchChannelRepository(database)
		usageRepo = sqlite.NewUsageRepository(database)
	}

	// Create services (primary ports implementation)
	catalogService = app.NewCatalogService(categoryRepo, channelRepo, logger)
	eventService = app.NewEventService(eventRepo, bandRepo, patchRepo, usageRepo, logger)
	patchService = app.NewPatchService(eventRepo, bandRepo, channelRepo, patchRepo, usageRepo, logger)
}

// CatalogAdapter returns a new CatalogAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func CatalogAdapter() *cliadapter.CatalogAdapter {
	return CatalogAdapterWithOutput(os.Stdout)
}

// CatalogAdapterWithOutput returns a new CatalogAdapter writing to the given output.
// This variant allows testing or alternate output destinations.
func CatalogAdapterWithOutput(out io.Writer) *cliadapter.CatalogAdapter {
	once.Do(initServices)
	return cliadapter.NewCatalogAdapter(catalogService, out)
}

// EventAdapter returns a new EventAdapter writing to stdout.
func EventAdapter() *cliadapter.EventAdapter {
	return EventAdapterWithOutput(os.Stdout)
}

// EventAdapterWithOutput returns a new EventAdapter writing to the given output.
func EventAdapterWithOutput(out io.Writer) *cliadapter.EventAdapter {
	once.Do(initServices)
	return cliadapter.NewEventAdapter(eventService, out)
}

// PatchAdapter returns a new PatchAdapter writing to stdout.
func PatchAdapter() *cliadapter.PatchAdapter {
	return PatchAdapterWithOutput(os.Stdout)
}

// PatchAdapterWithOutput returns a new PatchAdapter writing to the given output.
func PatchAdapterWithOutput(out io.Writer) *cliadapter.PatchAdapter {
	once.Do(initServices)
	return cliadapter.NewPatchAdapter(patchService, out)
}
