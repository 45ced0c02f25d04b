package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	PgURL     string `env:"PG_URL" required:"true"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Uber Eats is the only platform that requires an outbound round trip:
	// a client-credentials token exchange followed by an order fetch.
	UberEatsClientID     string        `env:"UBER_EATS_CLIENT_ID" required:"true"`
	UberEatsClientSecret string        `env:"UBER_EATS_CLIENT_SECRET" required:"true"`
	UberEatsTokenURL     string        `env:"UBER_EATS_TOKEN_URL" envDefault:"https://auth.uber.com/oauth/v2/token"`
	HTTPUberEatsTimeout  time.Duration `env:"HTTP_UBER_EATS_CLIENT_TIMEOUT" envDefault:"10s"`

	// Kafka configuration (optional; empty brokers disables downstream publishing)
	KafkaBrokers     []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaOrdersTopic string   `env:"KAFKA_ORDERS_TOPIC" envDefault:"orders.received"`

	// OpenSearch audit index (optional; empty URLs disables indexing)
	OpensearchURLs        []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexOrders string   `env:"OPENSEARCH_INDEX_ORDERS" envDefault:"orders-audit"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
