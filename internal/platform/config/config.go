package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Lineage policies accepted by LINEAGE_POLICY.
const (
	LineageStrict = "strict"
	LineageLoose  = "loose"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string        `env:"LEDGER_ADDR" envDefault:":8080"`
	AdminPrincipal string        `env:"LEDGER_ADMIN_PRINCIPAL,required,notEmpty"`
	JWTSigningKey  string        `env:"LEDGER_JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer      string        `env:"LEDGER_JWT_ISSUER" envDefault:"supplyledger"`
	JWTAudience    string        `env:"LEDGER_JWT_AUDIENCE" envDefault:"supplyledger"`
	Store          string        `env:"LEDGER_STORE" envDefault:"memory"`
	TxTimeout      time.Duration `env:"LEDGER_TX_TIMEOUT" envDefault:"5s"`
	LineagePolicy  string        `env:"LINEAGE_POLICY" envDefault:"strict"`

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	URL             string        `env:"DATABASE_URL"`
	MaxOpenConns    int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig configures the token class cache. An empty URL disables it.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	CacheTTL     time.Duration `env:"REDIS_CACHE_TTL" envDefault:"1h"`
}

// KafkaConfig configures the outbox relay. No brokers disables the relay.
type KafkaConfig struct {
	Brokers            []string      `env:"KAFKA_BROKERS" envSeparator:","`
	Topic              string        `env:"KAFKA_TOPIC" envDefault:"ledger.notifications"`
	Partitions         int32         `env:"KAFKA_TOPIC_PARTITIONS" envDefault:"3"`
	ReplicationFactor  int16         `env:"KAFKA_TOPIC_REPLICATION" envDefault:"1"`
	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"1s"`
	OutboxBatchSize    int           `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Server, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Server{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

func (c Server) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required when LEDGER_STORE=postgres")
		}
	default:
		return fmt.Errorf("unsupported LEDGER_STORE %q", c.Store)
	}
	switch c.LineagePolicy {
	case LineageStrict, LineageLoose:
	default:
		return fmt.Errorf("unsupported LINEAGE_POLICY %q", c.LineagePolicy)
	}
	return nil
}

// RelayEnabled reports whether the outbox relay should run.
func (c Server) RelayEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}
