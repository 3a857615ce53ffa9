package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port            int
	LogLevel        string
	LogFormat       string
	LogDir          string
	Environment     string
	Version         string
	APIKey          string // API key for authentication
	TrustedProxies  []string
	ShutdownTimeout time.Duration

	// Store
	StoreDriver   string
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBMaxConns    int
	DBMaxIdle     time.Duration
	DBMaxLifetime time.Duration

	// Remote card search and caches
	CardSearchURL     string
	CardSearchRate    float64
	CardSearchTimeout time.Duration
	CardCacheSize     int
	CardCacheTTL      time.Duration
	SearchCacheSize   int
	SearchCacheTTL    time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv(EnvPort, strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}

	cfg := &Config{
		Port:            port,
		LogLevel:        strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:       strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:          getEnv(EnvLogDir, DefaultLogDir),
		Environment:     getEnv(EnvEnvironment, DefaultEnvironment),
		Version:         getEnv(EnvVersion, DefaultVersion),
		APIKey:          getEnv(EnvAPIKey, ""),
		TrustedProxies:  getEnvAsList(EnvTrustedProxies),
		ShutdownTimeout: getEnvAsDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		StoreDriver:   strings.ToLower(getEnv(EnvStoreDriver, DefaultStoreDriver)),
		DBUser:        getEnv(EnvDBUser, DefaultDBUser),
		DBPassword:    getEnv(EnvDBPassword, DefaultDBPassword),
		DBHost:        getEnv(EnvDBHost, DefaultDBHost),
		DBPort:        getEnv(EnvDBPort, DefaultDBPort),
		DBName:        getEnv(EnvDBName, DefaultDBName),
		DBMaxConns:    getEnvAsInt(EnvDBMaxConns, DefaultDBMaxConns),
		DBMaxIdle:     getEnvAsDuration(EnvDBMaxIdle, DefaultDBMaxIdle),
		DBMaxLifetime: getEnvAsDuration(EnvDBMaxLifetime, DefaultDBMaxLifetime),

		CardSearchURL:     getEnv(EnvCardSearchURL, DefaultCardSearchURL),
		CardSearchRate:    getEnvAsFloat(EnvCardSearchRate, DefaultCardSearchRate),
		CardSearchTimeout: getEnvAsDuration(EnvCardSearchTimeout, DefaultCardSearchTimeout),
		CardCacheSize:     getEnvAsInt(EnvCardCacheSize, DefaultCardCacheSize),
		CardCacheTTL:      getEnvAsDuration(EnvCardCacheTTL, DefaultCardCacheTTL),
		SearchCacheSize:   getEnvAsInt(EnvSearchCacheSize, DefaultSearchCacheSize),
		SearchCacheTTL:    getEnvAsDuration(EnvSearchCacheTTL, DefaultSearchCacheTTL),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once
func (c *Config) Validate() error {
	var errs []error

	if c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY environment variable must be set for security"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DBHost == "" || c.DBName == "" || c.DBUser == "" {
			errs = append(errs, errors.New("DB_HOST, DB_NAME and DB_USER are required for the postgres store"))
		}
		if c.DBMaxConns < 1 {
			errs = append(errs, fmt.Errorf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
		}
	case StoreDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be %s or %s, got %q",
			StoreDriverPostgres, StoreDriverMemory, c.StoreDriver))
	}

	if u, err := url.Parse(c.CardSearchURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("CARD_SEARCH_URL must be an absolute URL, got %q", c.CardSearchURL))
	}
	if c.CardSearchRate <= 0 {
		errs = append(errs, fmt.Errorf("CARD_SEARCH_RATE must be positive, got %v", c.CardSearchRate))
	}
	if c.CardCacheSize < 1 || c.SearchCacheSize < 1 {
		errs = append(errs, errors.New("CARD_CACHE_SIZE and SEARCH_CACHE_SIZE must be positive"))
	}

	return errors.Join(errs...)
}

// UsesPostgres reports whether the configured store is postgres
func (c *Config) UsesPostgres() bool {
	return c.StoreDriver == StoreDriverPostgres
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
