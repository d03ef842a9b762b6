package config

import (
	"errors"
	"fmt"
	"time"
)

// Application modes.
const (
	ModeBatch    = "batch"
	ModeConsumer = "consumer"
)

// Config holds application configuration.
type Config struct {
	Mode          string        `env:"MODE" envDefault:"batch"`
	DatabaseURL   string        `env:"DATABASE_URL,required"`
	BatchSize     int           `env:"BATCH_SIZE" envDefault:"500"`
	HTTPTimeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	Concurrency   int           `env:"SYNC_CONCURRENCY" envDefault:"8"`
	BatchTimeout  time.Duration `env:"SYNC_BATCH_TIMEOUT" envDefault:"0s"`
	RunStaleAfter time.Duration `env:"RUN_STALE_AFTER" envDefault:"1h"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`

	Catalog  Catalog
	RabbitMQ RabbitMQ
}

// Catalog holds catalog API client configuration.
type Catalog struct {
	BaseURL       string        `env:"CATALOG_BASE_URL" envDefault:"https://api.moysklad.ru/api/remap/1.2"`
	StockStrategy string        `env:"CATALOG_STOCK_STRATEGY" envDefault:"embedded"`
	RetryAttempts uint64        `env:"CATALOG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"CATALOG_RETRY_INTERVAL" envDefault:"500ms"`
	// RateLimit is max number of requests per second, zero disables limiting.
	RateLimit    float64 `env:"CATALOG_RATE_LIMIT" envDefault:"0"`
	PriceType    string  `env:"CATALOG_PRICE_TYPE"`
	VerifyTokens bool    `env:"CATALOG_VERIFY_TOKENS" envDefault:"false"`
}

// RabbitMQ holds RabbitMQ configuration.
// RabbitMQ is disabled when URL is empty.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"cfs-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"catalog-feed-sync.commands"`
	CommandKey string `env:"RABBITMQ_COMMAND_ROUTING_KEY" envDefault:"catalog-feed-sync.sync"`
	// ReportRoutingKey receives batch reports, OutcomeRoutingKey receives outcomes of single sync commands.
	ReportRoutingKey  string `env:"RABBITMQ_REPORT_ROUTING_KEY" envDefault:"catalog-feed-sync.reports"`
	OutcomeRoutingKey string `env:"RABBITMQ_OUTCOME_ROUTING_KEY" envDefault:"catalog-feed-sync.outcomes"`
	Prefetch          int    `env:"RABBITMQ_PREFETCH" envDefault:"4"`
}

// Validate checks settings which can't be expressed with env tags.
func (c *Config) Validate() error {
	if c.Mode != ModeBatch && c.Mode != ModeConsumer {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}

	if c.Mode == ModeConsumer && c.RabbitMQ.URL == "" {
		return errors.New("RabbitMQ URL is required in consumer mode")
	}

	if c.RabbitMQ.URL != "" && c.RabbitMQ.ReportRoutingKey == c.RabbitMQ.OutcomeRoutingKey {
		return errors.New("report and outcome routing keys must differ")
	}

	return nil
}
