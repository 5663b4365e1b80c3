package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Database struct {
	Host     string `env:"HOST, default=localhost"`
	User     string `env:"USER, default=postgres"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME, default=karma"`
	Port     string `env:"PORT, default=5432"`
	SSLMode  string `env:"SSLMODE, default=disable"`
}

func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type Ledger struct {
	// memory, redis, postgres or sqlite
	Store            string `env:"STORE, default=postgres"`
	SQLitePath       string `env:"SQLITE_PATH, default=karma-ledger.db"`
	Timezone         string `env:"TIMEZONE, default=Local"`
	SubscriberBuffer int    `env:"SUBSCRIBER_BUFFER, default=64"`
}

type Config struct {
	Port        string        `env:"PORT, default=3000"`
	AppEnv      string        `env:"APP_ENV, default=development"`
	JWTSecret   string        `env:"JWT_SECRET, required"`
	JWTTTL      time.Duration `env:"JWT_TTL, default=15m"`
	RefreshTTL  time.Duration `env:"JWT_REFRESH_TTL, default=168h"`
	RedisAddr   string        `env:"REDIS_ADDR, default=localhost:6379"`
	KafkaBroker string        `env:"KAFKA_BROKER"`

	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL, default=3s"`
	ConnectRetries     int           `env:"CONNECT_RETRIES, default=5"`

	Database Database `env:",prefix=DB_"`
	Ledger   Ledger   `env:",prefix=LEDGER_"`
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Location resolves the ledger's calendar-day timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Ledger.Timezone == "" || strings.EqualFold(c.Ledger.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Ledger.Timezone)
}

func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}

	cfg.Ledger.Store = strings.ToLower(strings.TrimSpace(cfg.Ledger.Store))
	switch cfg.Ledger.Store {
	case StoreMemory, StoreRedis, StorePostgres, StoreSQLite:
	default:
		return nil, fmt.Errorf("unsupported LEDGER_STORE %q", cfg.Ledger.Store)
	}
	if cfg.Ledger.SubscriberBuffer < 1 {
		cfg.Ledger.SubscriberBuffer = 1
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("invalid LEDGER_TIMEZONE: %w", err)
	}

	return &cfg, nil
}
