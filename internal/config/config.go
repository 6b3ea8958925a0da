package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type LookupFunc func(string) (string, bool)

type Profile string

const (
	ProfileDev  Profile = "dev"
	ProfileTest Profile = "test"
	ProfileProd Profile = "prod"
)

type Config struct {
	Profile       Profile
	Service       ServiceConfig
	HTTP          HTTPConfig
	Store         StoreConfig
	AI            AIConfig
	Query         QueryConfig
	Ingest        IngestConfig
	Observability ObservabilityConfig
	Auth          AuthConfig
}

type ServiceConfig struct {
	Name string
}

type HTTPConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StoreConfig selects the relational store holding the supply chain
// dataset. Driver is one of "sqlite", "duckdb" or "postgres".
type StoreConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

type AIConfig struct {
	TranslateEnabled bool
	BaseURL          string
	APIKey           string
	Model            string
	Temperature      float64
	Timeout          time.Duration
}

type QueryConfig struct {
	DefaultLimit int
	MaxLimit     int
	SampleRows   int
}

type IngestConfig struct {
	CSVPath   string
	BatchSize int
	S3        S3Config
}

// S3Config points the ingest command at an object-store copy of the
// dataset CSV. Used only when an s3:// source is requested.
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

type ObservabilityConfig struct {
	LogLevel slog.Level
	LogJSON  bool
}

type AuthConfig struct {
	Required   bool
	StaticKeys string
}

func LoadFromEnv(serviceName string) (Config, error) {
	return Load(serviceName, os.LookupEnv)
}

func Load(serviceName string, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	profile := ProfileDev
	if raw, ok := lookup("SUPPLYQ_PROFILE"); ok {
		profile = Profile(strings.ToLower(strings.TrimSpace(raw)))
	}
	if !isValidProfile(profile) {
		return Config{}, fmt.Errorf("invalid SUPPLYQ_PROFILE: %q", profile)
	}

	cfg := defaultsForProfile(profile)
	if serviceName != "" {
		cfg.Service.Name = serviceName
	}

	if err := applyString(lookup, "SUPPLYQ_SERVICE_NAME", &cfg.Service.Name); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_HTTP_ADDR", &cfg.HTTP.Address); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SUPPLYQ_HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SUPPLYQ_HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SUPPLYQ_HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_STORE_DRIVER", &cfg.Store.Driver); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_STORE_DSN", &cfg.Store.DSN); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SUPPLYQ_STORE_MAX_OPEN_CONNS", &cfg.Store.MaxOpenConns); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SUPPLYQ_STORE_MAX_IDLE_CONNS", &cfg.Store.MaxIdleConns); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SUPPLYQ_STORE_CONN_MAX_IDLE_TIME", &cfg.Store.ConnMaxIdleTime); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SUPPLYQ_STORE_CONN_MAX_LIFETIME", &cfg.Store.ConnMaxLifetime); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SUPPLYQ_AI_TRANSLATE_ENABLED", &cfg.AI.TranslateEnabled); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_AI_BASE_URL", &cfg.AI.BaseURL); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_AI_API_KEY", &cfg.AI.APIKey); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_AI_MODEL", &cfg.AI.Model); err != nil {
		return Config{}, err
	}
	if err := applyFloat(lookup, "SUPPLYQ_AI_TEMPERATURE", &cfg.AI.Temperature); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SUPPLYQ_AI_TIMEOUT", &cfg.AI.Timeout); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SUPPLYQ_QUERY_DEFAULT_LIMIT", &cfg.Query.DefaultLimit); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SUPPLYQ_QUERY_MAX_LIMIT", &cfg.Query.MaxLimit); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SUPPLYQ_QUERY_SAMPLE_ROWS", &cfg.Query.SampleRows); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_INGEST_CSV_PATH", &cfg.Ingest.CSVPath); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SUPPLYQ_INGEST_BATCH_SIZE", &cfg.Ingest.BatchSize); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_INGEST_S3_ENDPOINT", &cfg.Ingest.S3.Endpoint); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_INGEST_S3_REGION", &cfg.Ingest.S3.Region); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_INGEST_S3_BUCKET", &cfg.Ingest.S3.Bucket); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_INGEST_S3_ACCESS_KEY", &cfg.Ingest.S3.AccessKeyID); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_INGEST_S3_SECRET_KEY", &cfg.Ingest.S3.SecretAccessKey); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SUPPLYQ_INGEST_S3_USE_SSL", &cfg.Ingest.S3.UseSSL); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SUPPLYQ_LOG_JSON", &cfg.Observability.LogJSON); err != nil {
		return Config{}, err
	}
	if err := applyLogLevel(lookup, "SUPPLYQ_LOG_LEVEL", &cfg.Observability.LogLevel); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SUPPLYQ_AUTH_REQUIRED", &cfg.Auth.Required); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SUPPLYQ_AUTH_STATIC_KEYS", &cfg.Auth.StaticKeys); err != nil {
		return Config{}, err
	}

	if cfg.Service.Name == "" {
		return Config{}, fmt.Errorf("service name is required")
	}
	if cfg.HTTP.Address == "" {
		return Config{}, fmt.Errorf("http address is required")
	}
	if !isValidDriver(cfg.Store.Driver) {
		return Config{}, fmt.Errorf("invalid SUPPLYQ_STORE_DRIVER: %q", cfg.Store.Driver)
	}
	if cfg.Query.DefaultLimit <= 0 {
		return Config{}, fmt.Errorf("query default limit must be positive")
	}
	if cfg.Query.MaxLimit < cfg.Query.DefaultLimit {
		return Config{}, fmt.Errorf("query max limit must be >= default limit")
	}
	return cfg, nil
}

func defaultsForProfile(profile Profile) Config {
	cfg := Config{
		Profile: profile,
		Service: ServiceConfig{Name: "supplyq-api"},
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Store: StoreConfig{
			Driver:          "sqlite",
			DSN:             "supply_chain.db",
			MaxOpenConns:    4,
			MaxIdleConns:    4,
			ConnMaxIdleTime: 5 * time.Minute,
			ConnMaxLifetime: 30 * time.Minute,
		},
		AI: AIConfig{
			TranslateEnabled: true,
			BaseURL:          "http://localhost:11434",
			Model:            "codellama:7b-instruct",
			Temperature:      0.1,
			Timeout:          15 * time.Second,
		},
		Query: QueryConfig{
			DefaultLimit: 10,
			MaxLimit:     50,
			SampleRows:   3,
		},
		Ingest: IngestConfig{
			CSVPath:   "data/DataCoSupplyChainDataset.csv",
			BatchSize: 10000,
			S3: S3Config{
				Endpoint: "localhost:9000",
				Region:   "us-east-1",
				Bucket:   "supplyq",
				UseSSL:   false,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel: slog.LevelDebug,
			LogJSON:  true,
		},
		Auth: AuthConfig{
			Required:   false,
			StaticKeys: "",
		},
	}

	switch profile {
	case ProfileTest:
		cfg.HTTP.Address = ":18080"
		cfg.Observability.LogLevel = slog.LevelWarn
		cfg.AI.TranslateEnabled = false
	case ProfileProd:
		cfg.Observability.LogLevel = slog.LevelInfo
		cfg.Auth.Required = true
		cfg.Ingest.S3.UseSSL = true
	}

	return cfg
}

func isValidProfile(profile Profile) bool {
	switch profile {
	case ProfileDev, ProfileTest, ProfileProd:
		return true
	default:
		return false
	}
}

func isValidDriver(driver string) bool {
	switch driver {
	case "sqlite", "duckdb", "postgres":
		return true
	default:
		return false
	}
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyDuration(lookup LookupFunc, key string, dst *time.Duration) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyBool(lookup LookupFunc, key string, dst *bool) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyInt(lookup LookupFunc, key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyFloat(lookup LookupFunc, key string, dst *float64) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyLogLevel(lookup LookupFunc, key string, dst *slog.Level) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		*dst = slog.LevelDebug
	case "info":
		*dst = slog.LevelInfo
	case "warn", "warning":
		*dst = slog.LevelWarn
	case "error":
		*dst = slog.LevelError
	default:
		return fmt.Errorf("invalid %s: %q", key, raw)
	}
	return nil
}
