package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/courtdata/gamelines/internal/platform/logging"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	DBURL          string
	LogLevel       logging.Level

	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string

	OddsAPIBaseURL    string
	OddsAPIKey        string
	OddsAPISport      string
	OddsAPIRegions    string
	OddsAPIMarkets    string
	OddsAPIOddsFormat string
	OddsAPITimeout    time.Duration

	MonitoringToken string

	IngestWorkers  int
	IngestInterval time.Duration

	UptraceEnabled bool
	UptraceDSN     string

	PprofEnabled bool
	PprofAddr    string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string

	BetterStackEnabled  bool
	BetterStackEndpoint string
	BetterStackToken    string
	BetterStackTimeout  time.Duration
	BetterStackMinLevel logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	oddsTimeout, err := getEnvAsDuration("ODDS_API_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, err
	}
	ingestWorkers, err := getEnvAsInt("INGEST_WORKERS", 8)
	if err != nil {
		return Config{}, err
	}
	if ingestWorkers <= 0 {
		return Config{}, fmt.Errorf("INGEST_WORKERS must be greater than zero")
	}
	ingestInterval, err := getEnvAsDuration("INGEST_INTERVAL", 0)
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := getEnvAsBool("UPTRACE_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := getEnvAsBool("PPROF_ENABLED", false)
	if err != nil {
		return Config{}, err
	}

	pyroscopeEnabled, err := getEnvAsBool("PYROSCOPE_ENABLED", false)
	if err != nil {
		return Config{}, err
	}

	betterStackEnabled, err := getEnvAsBool("BETTERSTACK_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	betterStackTimeout, err := getEnvAsDuration("BETTERSTACK_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("SERVICE_NAME", "gamelines"),
		ServiceVersion: getEnv("SERVICE_VERSION", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DBURL:          strings.TrimSpace(getEnv("DB_URL", "")),
		LogLevel:       parseLogLevel(getEnv("LOG_LEVEL", "info")),

		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),

		OddsAPIBaseURL:    getEnv("ODDS_API_BASE_URL", "https://api.the-odds-api.com/v4"),
		OddsAPIKey:        strings.TrimSpace(getEnv("ODDS_API_KEY", "")),
		OddsAPISport:      getEnv("ODDS_API_SPORT", "basketball_nba"),
		OddsAPIRegions:    getEnv("ODDS_API_REGIONS", "us"),
		OddsAPIMarkets:    getEnv("ODDS_API_MARKETS", "h2h,spreads,totals"),
		OddsAPIOddsFormat: getEnv("ODDS_API_ODDS_FORMAT", "american"),
		OddsAPITimeout:    oddsTimeout,

		MonitoringToken: strings.TrimSpace(getEnv("MONITORING_TOKEN", "")),

		IngestWorkers:  ingestWorkers,
		IngestInterval: ingestInterval,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PprofEnabled: pprofEnabled,
		PprofAddr:    getEnv("PPROF_ADDR", ":6060"),

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: getEnv("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeAppName:       getEnv("PYROSCOPE_APP_NAME", "gamelines"),
		PyroscopeAuthToken:     getEnv("PYROSCOPE_AUTH_TOKEN", ""),

		BetterStackEnabled:  betterStackEnabled,
		BetterStackEndpoint: getEnv("BETTERSTACK_ENDPOINT", ""),
		BetterStackToken:    getEnv("BETTERSTACK_TOKEN", ""),
		BetterStackTimeout:  betterStackTimeout,
		BetterStackMinLevel: parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "warn")),
	}

	if cfg.AppEnv == EnvProd && cfg.OddsAPIKey == "" {
		return Config{}, fmt.Errorf("ODDS_API_KEY is required in prod")
	}
	if betterStackEnabled && strings.TrimSpace(cfg.BetterStackEndpoint) == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	env := strings.ToLower(strings.TrimSpace(v))
	switch env {
	case EnvDev, EnvProd:
		return env, nil
	default:
		return "", fmt.Errorf("unknown APP_ENV %q (expected %s or %s)", v, EnvDev, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
