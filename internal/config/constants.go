package config

import "time"

// Environment variable names
const (
	EnvPort            = "PORT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvLogFormat       = "LOG_FORMAT"
	EnvLogDir          = "LOG_DIR"
	EnvEnvironment     = "ENVIRONMENT"
	EnvVersion         = "VERSION"
	EnvAPIKey          = "API_KEY"
	EnvTrustedProxies  = "TRUSTED_PROXIES"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvStoreDriver   = "STORE_DRIVER"
	EnvDBUser        = "DB_USER"
	EnvDBPassword    = "DB_PASSWORD"
	EnvDBHost        = "DB_HOST"
	EnvDBPort        = "DB_PORT"
	EnvDBName        = "DB_NAME"
	EnvDBMaxConns    = "DB_MAX_CONNS"
	EnvDBMaxIdle     = "DB_MAX_CONN_IDLE"
	EnvDBMaxLifetime = "DB_MAX_CONN_LIFETIME"

	EnvCardSearchURL     = "CARD_SEARCH_URL"
	EnvCardSearchRate    = "CARD_SEARCH_RATE"
	EnvCardSearchTimeout = "CARD_SEARCH_TIMEOUT"
	EnvCardCacheSize     = "CARD_CACHE_SIZE"
	EnvCardCacheTTL      = "CARD_CACHE_TTL"
	EnvSearchCacheSize   = "SEARCH_CACHE_SIZE"
	EnvSearchCacheTTL    = "SEARCH_CACHE_TTL"

	EnvSchemaVersion = "ENV_SCHEMA_VERSION"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Defaults
const (
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultLogDir          = "logs"
	DefaultEnvironment     = "dev"
	DefaultVersion         = "dev"
	DefaultShutdownTimeout = 15 * time.Second

	DefaultStoreDriver   = StoreDriverPostgres
	DefaultDBUser        = "postgres"
	DefaultDBPassword    = "postgres"
	DefaultDBHost        = "localhost"
	DefaultDBPort        = "5432"
	DefaultDBName        = "deckbuilder"
	DefaultDBMaxConns    = 20
	DefaultDBMaxIdle     = 5 * time.Minute
	DefaultDBMaxLifetime = time.Hour

	DefaultCardSearchURL     = "https://api.magicthegathering.io"
	DefaultCardSearchRate    = 5.0
	DefaultCardSearchTimeout = 15 * time.Second
	DefaultCardCacheSize     = 4096
	DefaultCardCacheTTL      = 24 * time.Hour
	DefaultSearchCacheSize   = 512
	DefaultSearchCacheTTL    = 10 * time.Minute
)
