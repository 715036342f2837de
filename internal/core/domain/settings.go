package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// SourceKind selects where keyword datasets come from.
type SourceKind string

// Available sources.
const (
	// SourceSynthetic generates random datasets locally.
	SourceSynthetic SourceKind = "synthetic"

	// SourceAPI queries the advertising API keyword endpoint.
	SourceAPI SourceKind = "api"
)

// IsValid returns true if the source kind is recognised.
func (k SourceKind) IsValid() bool {
	return k == SourceSynthetic || k == SourceAPI
}

// String returns the string representation.
func (k SourceKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the source.
func (k SourceKind) Description() string {
	switch k {
	case SourceSynthetic:
		return "Synthetic (generated locally)"
	case SourceAPI:
		return "Advertising API"
	default:
		return unknownDescription
	}
}

// CacheBackend selects where loaded datasets are cached.
type CacheBackend string

// Available cache backends.
const (
	CacheNone   CacheBackend = "none"
	CacheMemory CacheBackend = "memory"
	CacheSQLite CacheBackend = "sqlite"
	CacheRedis  CacheBackend = "redis"
)

// IsValid returns true if the backend is recognised.
func (b CacheBackend) IsValid() bool {
	switch b {
	case CacheNone, CacheMemory, CacheSQLite, CacheRedis:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b CacheBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b CacheBackend) Description() string {
	switch b {
	case CacheNone:
		return "Disabled"
	case CacheMemory:
		return "In-memory (process lifetime)"
	case CacheSQLite:
		return "SQLite (local file)"
	case CacheRedis:
		return "Redis"
	default:
		return unknownDescription
	}
}

// AllSourceKinds returns every source kind.
func AllSourceKinds() []SourceKind {
	return []SourceKind{SourceSynthetic, SourceAPI}
}

// AllCacheBackends returns every cache backend.
func AllCacheBackends() []CacheBackend {
	return []CacheBackend{CacheNone, CacheMemory, CacheSQLite, CacheRedis}
}

// EngineSettings tunes the keyword table engine.
type EngineSettings struct {
	// PageSize is the initial number of visible rows.
	PageSize int

	// Increment is the number of rows revealed per load-more.
	Increment int

	// BatchSize is the number of keywords loaded per category.
	BatchSize int

	// LoadDelay simulates latency on dataset loads.
	LoadDelay time.Duration

	// LoadMoreDelay simulates latency before the window grows.
	LoadMoreDelay time.Duration

	// ScrollThreshold is how close to the last row the cursor must be
	// before more rows are requested.
	ScrollThreshold int
}

// SourceSettings configures the keyword source.
type SourceSettings struct {
	Kind SourceKind

	// BaseURL is the API endpoint (api only).
	BaseURL string

	// Token is the bearer token (api only).
	Token string

	// RequestsPerSecond paces API calls.
	RequestsPerSecond float64

	// Seed fixes the synthetic generator when non-zero.
	Seed uint64
}

// IsConfigured returns true if the source has what it needs to run.
func (s SourceSettings) IsConfigured() bool {
	if !s.Kind.IsValid() {
		return false
	}
	if s.Kind == SourceAPI && (s.BaseURL == "" || s.Token == "") {
		return false
	}
	return true
}

// CacheSettings configures dataset caching.
type CacheSettings struct {
	Backend CacheBackend

	// Dir holds the SQLite database. Empty means the config directory.
	Dir string

	// RedisAddr is host:port for the redis backend.
	RedisAddr string

	// TTL expires cached datasets. Zero keeps them until cleared.
	TTL time.Duration
}

// CatalogSettings configures the category taxonomy.
type CatalogSettings struct {
	// Path overrides the built-in taxonomy with a TOML file.
	Path string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Engine  EngineSettings
	Source  SourceSettings
	Cache   CacheSettings
	Catalog CatalogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Engine: EngineSettings{
			PageSize:        DefaultPageSize,
			Increment:       DefaultIncrement,
			BatchSize:       500,
			LoadDelay:       500 * time.Millisecond,
			LoadMoreDelay:   300 * time.Millisecond,
			ScrollThreshold: 5,
		},
		Source: SourceSettings{
			Kind:              SourceSynthetic,
			RequestsPerSecond: 2,
		},
		Cache: CacheSettings{
			Backend:   CacheNone,
			RedisAddr: "localhost:6379",
			TTL:       24 * time.Hour,
		},
	}
}

// Validate checks the settings for values the engine cannot run with.
func (s AppSettings) Validate() error {
	if s.Engine.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive", ErrInvalidInput)
	}
	if s.Engine.Increment <= 0 {
		return fmt.Errorf("%w: increment must be positive", ErrInvalidInput)
	}
	if s.Engine.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive", ErrInvalidInput)
	}
	if s.Engine.LoadDelay < 0 || s.Engine.LoadMoreDelay < 0 {
		return fmt.Errorf("%w: delays cannot be negative", ErrInvalidInput)
	}
	if s.Engine.ScrollThreshold < 0 {
		return fmt.Errorf("%w: scroll threshold cannot be negative", ErrInvalidInput)
	}
	if !s.Source.Kind.IsValid() {
		return fmt.Errorf("%w: source kind %q", ErrInvalidInput, s.Source.Kind)
	}
	if s.Source.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests per second cannot be negative", ErrInvalidInput)
	}
	if !s.Cache.Backend.IsValid() {
		return fmt.Errorf("%w: cache backend %q", ErrInvalidInput, s.Cache.Backend)
	}
	if s.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache ttl cannot be negative", ErrInvalidInput)
	}
	return nil
}
