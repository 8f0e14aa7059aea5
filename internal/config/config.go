package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported storage drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// PlaceholderJWTSecret is the default secret. Validate rejects it.
const PlaceholderJWTSecret = "change-me"

// Config holds application level configuration. Values come from defaults, then an
// optional YAML file, then environment variables.
type Config struct {
	ServerPort string `yaml:"server_port"`

	DBDriver      string `yaml:"db_driver"`
	DatabaseDSN   string `yaml:"database_dsn"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	ResetDB       bool   `yaml:"reset_db"`

	RedisAddr string `yaml:"redis_addr"`
	RedisDB   int    `yaml:"redis_db"`
	RedisPass string `yaml:"redis_password"`

	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`

	NATSURL            string `yaml:"nats_url"`
	EventSubjectPrefix string `yaml:"event_subject_prefix"`

	GitHubAPIURL string `yaml:"github_api_url"`
	GitHubToken  string `yaml:"github_token"`

	StaticDir   string `yaml:"static_dir"`
	SwaggerHost string `yaml:"swagger_host"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		ServerPort:         "5000",
		DBDriver:           DriverMySQL,
		DatabaseDSN:        "user:password@tcp(localhost:3306)/smapp?charset=utf8mb4&parseTime=True&loc=Local",
		MongoURI:           "mongodb://localhost:27017",
		MongoDatabase:      "smapp",
		RedisAddr:          "localhost:6379",
		JWTSecret:          PlaceholderJWTSecret,
		TokenTTL:           360000 * time.Second,
		EventSubjectPrefix: "smapp",
		GitHubAPIURL:       "https://api.github.com",
		LogLevel:           "info",
	}
}

// Load builds Config from defaults, the YAML file at path (skipped when path is empty)
// and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.DBDriver = strings.ToLower(getEnv("DB_DRIVER", c.DBDriver))
	c.DatabaseDSN = getEnv("DATABASE_DSN", c.DatabaseDSN)
	c.MongoURI = getEnv("MONGO_URI", c.MongoURI)
	c.MongoDatabase = getEnv("MONGO_DATABASE", c.MongoDatabase)
	c.ResetDB = getEnvBool("RESET_DB", c.ResetDB)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)
	c.RedisPass = getEnv("REDIS_PASSWORD", c.RedisPass)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.TokenTTL = getEnvDuration("TOKEN_TTL", c.TokenTTL)
	c.NATSURL = getEnv("NATS_URL", c.NATSURL)
	c.EventSubjectPrefix = getEnv("EVENT_SUBJECT_PREFIX", c.EventSubjectPrefix)
	c.GitHubAPIURL = getEnv("GITHUB_API_URL", c.GitHubAPIURL)
	c.GitHubToken = getEnv("GITHUB_TOKEN", c.GitHubToken)
	c.StaticDir = getEnv("STATIC_DIR", c.StaticDir)
	c.SwaggerHost = getEnv("SWAGGER_HOST", c.SwaggerHost)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("database_dsn is required for driver %q", c.DBDriver)
		}
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("mongo_uri and mongo_database are required for driver %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("unknown db_driver %q", c.DBDriver)
	}
	if c.JWTSecret == "" || c.JWTSecret == PlaceholderJWTSecret {
		return fmt.Errorf("jwt_secret is required and must not be the placeholder %q", PlaceholderJWTSecret)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("100h") or a plain number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
