package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/kwscope/internal/core/domain"
	"github.com/custodia-labs/kwscope/internal/core/ports/driven"
	"github.com/custodia-labs/kwscope/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyPageSize        = "engine.page_size"
	keyIncrement       = "engine.increment"
	keyBatchSize       = "engine.batch_size"
	keyLoadDelay       = "engine.load_delay"
	keyLoadMoreDelay   = "engine.load_more_delay"
	keyScrollThreshold = "engine.scroll_threshold"
	keySourceKind      = "source.kind"
	keySourceBaseURL   = "source.base_url"
	keySourceToken     = "source.token"
	keySourceRPS       = "source.requests_per_second"
	keySourceSeed      = "source.seed"
	keyCacheBackend    = "cache.backend"
	keyCacheDir        = "cache.dir"
	keyCacheRedisAddr  = "cache.redis_addr"
	keyCacheTTL        = "cache.ttl"
	keyCatalogPath     = "catalog.path"
)

// Environment overrides, usually supplied through a .env file.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvAPIToken = "KWSCOPE_API_TOKEN"
	EnvAPIURL   = "KWSCOPE_API_URL"
)

// SecretKeys are settings whose values must not be echoed.
var SecretKeys = map[string]bool{keySourceToken: true}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
// Stored values that fail to parse fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Engine: domain.EngineSettings{
			PageSize:        s.getInt(keyPageSize, defaults.Engine.PageSize),
			Increment:       s.getInt(keyIncrement, defaults.Engine.Increment),
			BatchSize:       s.getInt(keyBatchSize, defaults.Engine.BatchSize),
			LoadDelay:       s.getDuration(keyLoadDelay, defaults.Engine.LoadDelay),
			LoadMoreDelay:   s.getDuration(keyLoadMoreDelay, defaults.Engine.LoadMoreDelay),
			ScrollThreshold: s.getInt(keyScrollThreshold, defaults.Engine.ScrollThreshold),
		},
		Source: domain.SourceSettings{
			Kind:              s.getSourceKind(defaults.Source.Kind),
			BaseURL:           s.configStore.GetString(keySourceBaseURL),
			Token:             s.configStore.GetString(keySourceToken),
			RequestsPerSecond: s.getFloat(keySourceRPS, defaults.Source.RequestsPerSecond),
			Seed:              uint64(max(s.configStore.GetInt(keySourceSeed), 0)),
		},
		Cache: domain.CacheSettings{
			Backend:   s.getCacheBackend(defaults.Cache.Backend),
			Dir:       s.configStore.GetString(keyCacheDir),
			RedisAddr: s.getString(keyCacheRedisAddr, defaults.Cache.RedisAddr),
			TTL:       s.getDuration(keyCacheTTL, defaults.Cache.TTL),
		},
		Catalog: domain.CatalogSettings{
			Path: s.configStore.GetString(keyCatalogPath),
		},
	}

	if v := s.getenv(EnvAPIToken); v != "" {
		settings.Source.Token = v
	}
	if v := s.getenv(EnvAPIURL); v != "" {
		settings.Source.BaseURL = v
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyPageSize, settings.Engine.PageSize},
		{keyIncrement, settings.Engine.Increment},
		{keyBatchSize, settings.Engine.BatchSize},
		{keyLoadDelay, settings.Engine.LoadDelay.String()},
		{keyLoadMoreDelay, settings.Engine.LoadMoreDelay.String()},
		{keyScrollThreshold, settings.Engine.ScrollThreshold},
		{keySourceKind, settings.Source.Kind.String()},
		{keySourceBaseURL, settings.Source.BaseURL},
		{keySourceRPS, settings.Source.RequestsPerSecond},
		{keySourceSeed, int(settings.Source.Seed)}, //nolint:gosec // G115: seeds are small
		{keyCacheBackend, settings.Cache.Backend.String()},
		{keyCacheDir, settings.Cache.Dir},
		{keyCacheRedisAddr, settings.Cache.RedisAddr},
		{keyCacheTTL, settings.Cache.TTL.String()},
		{keyCatalogPath, settings.Catalog.Path},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Tokens from the environment are never written back to disk.
	if settings.Source.Token != "" && settings.Source.Token != s.getenv(EnvAPIToken) {
		if err := s.configStore.Set(keySourceToken, settings.Source.Token); err != nil {
			return fmt.Errorf("save %s: %w", keySourceToken, err)
		}
	}

	return nil
}

// Keys lists the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		keyPageSize, keyIncrement, keyBatchSize, keyLoadDelay, keyLoadMoreDelay, keyScrollThreshold,
		keySourceKind, keySourceBaseURL, keySourceToken, keySourceRPS, keySourceSeed,
		keyCacheBackend, keyCacheDir, keyCacheRedisAddr, keyCacheTTL,
		keyCatalogPath,
	}
}

// Set parses and stores a single setting by key.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case keyPageSize:
		err = parseInt(value, &settings.Engine.PageSize)
	case keyIncrement:
		err = parseInt(value, &settings.Engine.Increment)
	case keyBatchSize:
		err = parseInt(value, &settings.Engine.BatchSize)
	case keyScrollThreshold:
		err = parseInt(value, &settings.Engine.ScrollThreshold)
	case keyLoadDelay:
		err = parseDuration(value, &settings.Engine.LoadDelay)
	case keyLoadMoreDelay:
		err = parseDuration(value, &settings.Engine.LoadMoreDelay)
	case keySourceKind:
		settings.Source.Kind = domain.SourceKind(strings.ToLower(value))
	case keySourceBaseURL:
		settings.Source.BaseURL = value
	case keySourceToken:
		settings.Source.Token = value
	case keySourceRPS:
		settings.Source.RequestsPerSecond, err = strconv.ParseFloat(value, 64)
	case keySourceSeed:
		settings.Source.Seed, err = strconv.ParseUint(value, 10, 63)
	case keyCacheBackend:
		settings.Cache.Backend = domain.CacheBackend(strings.ToLower(value))
	case keyCacheDir:
		settings.Cache.Dir = value
	case keyCacheRedisAddr:
		settings.Cache.RedisAddr = value
	case keyCacheTTL:
		err = parseDuration(value, &settings.Cache.TTL)
	case keyCatalogPath:
		settings.Catalog.Path = value
	default:
		return fmt.Errorf("%w: setting %q", domain.ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	return s.Save(settings)
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if !settings.Source.IsConfigured() {
		return fmt.Errorf(
			"source %q requires %s and %s to be configured",
			settings.Source.Kind.Description(), keySourceBaseURL, keySourceToken,
		)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getSourceKind(defaultVal domain.SourceKind) domain.SourceKind {
	kind := domain.SourceKind(s.configStore.GetString(keySourceKind))
	if !kind.IsValid() {
		return defaultVal
	}
	return kind
}

func (s *SettingsService) getCacheBackend(defaultVal domain.CacheBackend) domain.CacheBackend {
	backend := domain.CacheBackend(s.configStore.GetString(keyCacheBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func parseInt(value string, dst *int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseDuration(value string, dst *time.Duration) error {
	d, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
