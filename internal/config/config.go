package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dev-match/internal/domain/matching"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Oracle   OracleConfig
	Ranking  RankingConfig
}

type AppConfig struct {
	AppName       string
	Environment   string
	HTTPPort      string
	LogJSON       bool
	LogDebug      bool
	MigrationsDir string
}

type DatabaseConfig struct {
	URL        string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type OracleConfig struct {
	APIKey   string
	Project  string
	Location string
	Model    string
	Timeout  time.Duration
}

// UseVertex reports whether the oracle should be reached through Vertex AI
// rather than the Gemini API key endpoint.
func (c OracleConfig) UseVertex() bool {
	return c.APIKey == "" && c.Project != ""
}

type RankingConfig struct {
	Preset   string
	TopN     int
	MinScore int
}

// Policy returns the ranking bounds the scorer runs with.
func (c RankingConfig) Policy() matching.Policy {
	return matching.Policy{TopN: c.TopN, MinScore: c.MinScore}
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

const (
	defaultOracleModel   = "gemini-2.5-flash"
	defaultOracleTimeout = 30 * time.Second
	defaultLocation      = "asia-northeast1"
	defaultRedisTTL      = 60 * time.Second
)

// Load reads configuration from the environment. Values from a local .env
// file are applied first without overriding variables already set.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string) bool {
		raw := opt(key)
		if raw == "" {
			return false
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return false
		}
		return v
	}
	optDur := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		LogJSON:       optBool("LOG_JSON"),
		LogDebug:      optBool("LOG_DEBUG"),
		MigrationsDir: opt("MIGRATIONS_DIR"),
	}
	if cfg.App.MigrationsDir == "" {
		cfg.App.MigrationsDir = "migrations"
	}

	cfg.Database = DatabaseConfig{
		URL:        opt("DATABASE_URL"),
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDur("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDur("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}
	if cfg.Database.URL == "" && cfg.Database.DBHost == "" {
		missing = append(missing, "DATABASE_URL or DB_HOST")
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optDur("REDIS_TTL", defaultRedisTTL),
	}

	cfg.Oracle = OracleConfig{
		APIKey:   opt("GEMINI_API_KEY"),
		Project:  opt("GOOGLE_CLOUD_PROJECT"),
		Location: opt("GOOGLE_CLOUD_LOCATION"),
		Model:    opt("ORACLE_MODEL"),
		Timeout:  optDur("ORACLE_TIMEOUT", defaultOracleTimeout),
	}
	if cfg.Oracle.APIKey == "" && cfg.Oracle.Project == "" {
		missing = append(missing, "GEMINI_API_KEY or GOOGLE_CLOUD_PROJECT")
	}
	if cfg.Oracle.Model == "" {
		cfg.Oracle.Model = defaultOracleModel
	}
	if cfg.Oracle.Location == "" {
		cfg.Oracle.Location = defaultLocation
	}

	// RANKING_POLICY picks the base bounds; RANKING_TOP_N and
	// RANKING_MIN_SCORE override them individually.
	preset := strings.ToLower(opt("RANKING_POLICY"))
	base := matching.DefaultPolicy
	switch preset {
	case "", "default":
		preset = "default"
	case "legacy":
		base = matching.LegacyPolicy
	default:
		invalid = append(invalid, "RANKING_POLICY")
	}
	cfg.Ranking = RankingConfig{
		Preset:   preset,
		TopN:     optInt("RANKING_TOP_N", base.TopN),
		MinScore: optInt("RANKING_MIN_SCORE", base.MinScore),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
