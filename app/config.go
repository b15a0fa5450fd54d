package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           int      `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`
	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`

	DBHost         string        `mapstructure:"POSTGRES_HOST"`
	DBPort         string        `mapstructure:"POSTGRES_PORT"`
	DBUser         string        `mapstructure:"POSTGRES_USER"`
	DBPassword     string        `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string        `mapstructure:"POSTGRES_DB"`
	DBMaxOpenConns int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxIdleTime  time.Duration `mapstructure:"DB_MAX_IDLE_TIME"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTIssuer string        `mapstructure:"JWT_ISSUER"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	RedisAddr        string        `mapstructure:"REDIS_ADDR"`
	RedisPassword    string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB          int           `mapstructure:"REDIS_DB"`
	RecipeRateLimit  int           `mapstructure:"RECIPE_RATE_LIMIT"`
	RecipeRateWindow time.Duration `mapstructure:"RECIPE_RATE_WINDOW"`

	AIProvider string        `mapstructure:"AI_PROVIDER"`
	AIAPIKey   string        `mapstructure:"AI_API_KEY"`
	AIModel    string        `mapstructure:"AI_MODEL"`
	AIBaseURL  string        `mapstructure:"AI_BASE_URL"`
	AITimeout  time.Duration `mapstructure:"AI_TIMEOUT"`

	StorageDriver    string `mapstructure:"STORAGE_DRIVER"`
	StorageEndpoint  string `mapstructure:"STORAGE_ENDPOINT"`
	StoragePublicURL string `mapstructure:"STORAGE_PUBLIC_URL"`
	StorageAccessKey string `mapstructure:"STORAGE_ACCESS_KEY"`
	StorageSecretKey string `mapstructure:"STORAGE_SECRET_KEY"`
	StorageBucket    string `mapstructure:"STORAGE_BUCKET"`
	StorageRegion    string `mapstructure:"STORAGE_REGION"`
	StorageUseSSL    bool   `mapstructure:"STORAGE_USE_SSL"`
}

// defaults also registers every key with viper, which AutomaticEnv needs for Unmarshal to see it.
var defaults = map[string]any{
	"PORT":            4000,
	"ENVIRONMENT":     "development",
	"VERSION":         "1.0.0",
	"TRUSTED_ORIGINS": "http://localhost:5173",

	"RATE_LIMIT_RPS":     2,
	"RATE_LIMIT_BURST":   4,
	"RATE_LIMIT_ENABLED": true,

	"LOG_LEVEL":  "info",
	"LOG_FORMAT": "text",

	"TLS_CERT_FILE": "",
	"TLS_KEY_FILE":  "",

	"POSTGRES_HOST":     "localhost",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "recipehub",
	"DB_MAX_OPEN_CONNS": 25,
	"DB_MAX_IDLE_CONNS": 25,
	"DB_MAX_IDLE_TIME":  "15m",

	"JWT_SECRET": "",
	"JWT_ISSUER": "recipehub",
	"JWT_TTL":    "24h",

	"MAIL_HOST":     "localhost",
	"MAIL_PORT":     1025,
	"MAIL_USER":     "",
	"MAIL_PASSWORD": "",
	"MAIL_SENDER":   "RecipeHub <no-reply@recipehub.local>",

	"RABBITMQ_HOST":     "localhost",
	"RABBITMQ_PORT":     "5672",
	"RABBITMQ_USER":     "guest",
	"RABBITMQ_PASSWORD": "guest",

	"REDIS_ADDR":         "",
	"REDIS_PASSWORD":     "",
	"REDIS_DB":           0,
	"RECIPE_RATE_LIMIT":  10,
	"RECIPE_RATE_WINDOW": "1h",

	"AI_PROVIDER": "gemini",
	"AI_API_KEY":  "",
	"AI_MODEL":    "",
	"AI_BASE_URL": "",
	"AI_TIMEOUT":  "30s",

	"STORAGE_DRIVER":     "minio",
	"STORAGE_ENDPOINT":   "localhost:9000",
	"STORAGE_PUBLIC_URL": "",
	"STORAGE_ACCESS_KEY": "minioadmin",
	"STORAGE_SECRET_KEY": "minioadmin",
	"STORAGE_BUCKET":     "recipehub",
	"STORAGE_REGION":     "us-east-1",
	"STORAGE_USE_SSL":    false,
}

// loadConfig reads the .env style file at path, if it exists, and lets the environment override it.
func loadConfig(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("could not read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	for i, origin := range config.TrustedOrigins {
		config.TrustedOrigins[i] = strings.TrimSpace(origin)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.isProduction() {
			return errors.New("JWT_SECRET must be set in production")
		}
		c.JWTSecret = "development-secret"
	}

	if c.isProduction() && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set in production")
	}

	return nil
}

func (c *Config) isProduction() bool {
	return c.Environment == "production"
}

func (c *Config) rabbitURI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.MQUser, c.MQPassword, c.MQHost, c.MQPort)
}

func newLogger(cfg *Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
