// Command kwscope explores keyword demand by product category.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/kwscope/internal/adapters/driven/catalog"
	"github.com/custodia-labs/kwscope/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kwscope/internal/adapters/driven/source/adapi"
	"github.com/custodia-labs/kwscope/internal/adapters/driven/source/synthetic"
	"github.com/custodia-labs/kwscope/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kwscope/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/kwscope/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/kwscope/internal/adapters/driving/cli"
	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driven"
	"github.com/custodia-labs/kwscope/internal/core/services"
	"github.com/custodia-labs/kwscope/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// EnvHome overrides the configuration directory.
const EnvHome = "KWSCOPE_HOME"

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, err := wire(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = cli.Execute(ctx)
	if cache != nil {
		_ = cache.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

// wire builds the services and hands them to the CLI. It returns the dataset
// cache so main can close it, or nil when caching is off.
func wire(ctx context.Context) (driven.DatasetCache, error) {
	configDir := os.Getenv(EnvHome)
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config directory: %w", err)
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	source, err := newSource(settings.Source)
	if err != nil {
		return nil, err
	}
	cache := newCache(ctx, settings.Cache, configDir)

	categories := catalog.New(settings.Catalog.Path)
	datasets := services.NewDatasetService(categories, source, cache, settings.Engine.BatchSize)
	categoryService := services.NewCategoryService(categories)

	cli.SetVersion(version)
	cli.SetSettingsService(settingsService)
	cli.SetCategoryService(categoryService)
	cli.SetKeywordService(services.NewKeywordService(datasets, settings.Engine))
	cli.SetTUIConfig(&cli.TUIConfig{
		CategoryService: categoryService,
		Browser:         services.NewSession(datasets, settings.Engine),
		ScrollThreshold: settings.Engine.ScrollThreshold,
	})

	return cache, nil
}

func newSource(cfg domain.SourceSettings) (driven.KeywordSource, error) {
	switch cfg.Kind {
	case domain.SourceAPI:
		client, err := adapi.New(adapi.Options{
			BaseURL:           cfg.BaseURL,
			Token:             cfg.Token,
			RequestsPerSecond: cfg.RequestsPerSecond,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring api source: %w", err)
		}
		return client, nil
	default:
		return synthetic.New(cfg.Seed), nil
	}
}

// newCache opens the configured cache backend. A backend that cannot be
// opened is logged and replaced by the in-memory cache.
func newCache(ctx context.Context, cfg domain.CacheSettings, configDir string) driven.DatasetCache {
	log := logger.With("cache")

	switch cfg.Backend {
	case domain.CacheNone:
		return nil
	case domain.CacheSQLite:
		dir := cfg.Dir
		if dir == "" {
			dir = filepath.Join(configDir, "data")
		}
		store, err := sqlite.NewStore(dir)
		if err != nil {
			log.Warn("sqlite cache unavailable, using memory", "dir", dir, "err", err)
			return memory.NewDatasetCache(cfg.TTL)
		}
		return store.DatasetCache(cfg.TTL)
	case domain.CacheRedis:
		client, err := redis.Connect(ctx, cfg.RedisAddr, 0)
		if err != nil {
			log.Warn("redis cache unavailable, using memory", "addr", cfg.RedisAddr, "err", err)
			return memory.NewDatasetCache(cfg.TTL)
		}
		return redis.NewDatasetCache(client, cfg.TTL)
	default:
		return memory.NewDatasetCache(cfg.TTL)
	}
}
