package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v6"
	"golang.org/x/text/language"

	"github.com/Apurer/order-board/internal/domains/orders/selection"
	platformobservability "github.com/Apurer/order-board/internal/platform/observability"
)

// Config carries environment-driven settings for the board processes.
type Config struct {
	Port              string `env:"PORT" envDefault:"8080"`
	PostgresDSN       string `env:"POSTGRES_DSN"`
	TemporalAddress   string `env:"TEMPORAL_ADDRESS" envDefault:"localhost:7233"`
	TemporalNamespace string `env:"TEMPORAL_NAMESPACE" envDefault:"default"`
	TemporalDisabled  bool   `env:"TEMPORAL_DISABLED"`

	SeedFile                 string `env:"ORDERS_SEED_FILE"`
	Locale                   string `env:"ORDERS_LOCALE" envDefault:"en"`
	LastUpdatedPolicyName    string `env:"ORDERS_LAST_UPDATED_POLICY" envDefault:"preserve"`
	CommitTouchesLastUpdated bool   `env:"ORDERS_COMMIT_TOUCHES_LAST_UPDATED"`

	Environment  string `env:"ENVIRONMENT" envDefault:"local"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`

	locale language.Tag
	policy selection.LastUpdatedPolicy
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	return loadConfig(env.Options{})
}

func loadConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.Port = strings.TrimSpace(c.Port)
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be a TCP port number, got %q", c.Port)
	}
	c.PostgresDSN = strings.TrimSpace(c.PostgresDSN)
	c.SeedFile = strings.TrimSpace(c.SeedFile)

	tag, err := language.Parse(strings.TrimSpace(c.Locale))
	if err != nil {
		return fmt.Errorf("ORDERS_LOCALE must be a BCP 47 tag: %w", err)
	}
	c.locale = tag

	policy, err := selection.ParseLastUpdatedPolicy(c.LastUpdatedPolicyName)
	if err != nil {
		return fmt.Errorf("ORDERS_LAST_UPDATED_POLICY: %w", err)
	}
	if c.CommitTouchesLastUpdated {
		policy = selection.TouchLastUpdated
	}
	c.policy = policy
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// LocaleTag is the collation locale for sorting text columns.
func (c Config) LocaleTag() language.Tag {
	if c.locale == language.Und {
		return language.English
	}
	return c.locale
}

// LastUpdatedPolicy is what a commit does to an order's last-updated date.
func (c Config) LastUpdatedPolicy() selection.LastUpdatedPolicy {
	if c.policy == "" {
		return selection.PreserveLastUpdated
	}
	return c.policy
}

// Observability returns the telemetry settings for the named process.
func (c Config) Observability(serviceName string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  c.Environment,
		LogLevel:     c.LogLevel,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
	}
}
