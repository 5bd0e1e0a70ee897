// Package config loads per-service configuration, grounded on the
// teacher's internal/config package (koanf file+env layering), widened to
// the fabric's shared concerns: JWT secret, downstream URLs, RabbitMQ,
// Redis, and resilience overrides. A service's own main.go reads only
// the Config fields it needs.
package config

import "time"

type Config struct {
	App           AppConfig           `koanf:"app"`
	Auth          AuthConfig          `koanf:"auth"`
	Downstream    DownstreamConfig    `koanf:"downstream"`
	Gateway       GatewayConfig       `koanf:"gateway"`
	Database      DatabaseConfig      `koanf:"database"`
	RabbitMQ      RabbitMQConfig      `koanf:"rabbitmq"`
	Redis         RedisConfig         `koanf:"redis"`
	RateLimit     RateLimitConfig     `koanf:"ratelimit"`
	Observability  ObservabilityConfig `koanf:"otel"`
	Log           LogConfig           `koanf:"log"`
}

// GatewayConfig carries the base URL of every downstream service the
// gateway's route table (spec §4.1) can forward to, plus its CORS
// policy; every other service leaves this zero-valued.
type GatewayConfig struct {
	AuthBaseURL         string `koanf:"auth_base_url"`
	ProfileBaseURL      string `koanf:"profile_base_url"`
	DiscoveryBaseURL    string `koanf:"discovery_base_url"`
	MediaBaseURL        string `koanf:"media_base_url"`
	ChatBaseURL         string `koanf:"chat_base_url"`
	AdminBaseURL        string `koanf:"admin_base_url"`
	NotificationBaseURL string `koanf:"notification_base_url"`
	CORSOrigin          string `koanf:"cors_origin"`
	CORSWildcard        bool   `koanf:"cors_wildcard"`
}

// DatabaseConfig carries the data collaborator's Postgres connection
// string; every other service leaves this zero-valued.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

type AppConfig struct {
	Name     string `koanf:"name"`
	Env      string `koanf:"env"`
	HTTPPort int    `koanf:"http_port"`
}

// AuthConfig carries the JWT material every service needs to verify
// bearer tokens issued by the auth collaborator.
type AuthConfig struct {
	JWTSecret        string        `koanf:"jwt_secret"`
	JWTIssuer        string        `koanf:"jwt_issuer"`
	JWTAudience      string        `koanf:"jwt_audience"`
	TokenTTL         time.Duration `koanf:"token_ttl"`
	TelegramBotToken string        `koanf:"telegram_bot_token"`
	InitDataMaxAge   time.Duration `koanf:"init_data_max_age"`
	AdminTelegramIDs []string      `koanf:"admin_telegram_ids"`
}

// DownstreamConfig names the data collaborator base URL every edge
// service calls through platform/outbound.Client.
type DownstreamConfig struct {
	DataBaseURL         string `koanf:"data_base_url"`
	NotificationBaseURL string `koanf:"notification_base_url"`
}

type RabbitMQConfig struct {
	URL     string `koanf:"url"`
	Enabled bool   `koanf:"enabled"`
}

func (c RabbitMQConfig) IsEnabled() bool { return c.Enabled && c.URL != "" }

type RedisConfig struct {
	Addr    string `koanf:"addr"`
	Enabled bool   `koanf:"enabled"`
}

type RateLimitConfig struct {
	DefaultLimit  int           `koanf:"default_limit"`
	DefaultPeriod time.Duration `koanf:"default_period"`
	AuthLimit     int           `koanf:"auth_limit"`
	AuthPeriod    time.Duration `koanf:"auth_period"`
}

type ObservabilityConfig struct {
	ExporterEndpoint string `koanf:"exporter_otlp_endpoint"`
	ServiceName      string `koanf:"service_name"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

const minJWTSecretLength = 32

// Validate fails fast on a missing mandatory secret, per spec §6's rule
// that a service must refuse to start without its signing key.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < minJWTSecretLength {
		return errMinSecretLength
	}
	if c.App.HTTPPort <= 0 {
		return errInvalidPort
	}
	return nil
}
