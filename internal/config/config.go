package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

const devJWTSecret = "dev-secret-change-me"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	StoreDriver string

	AWSRegion        string
	DynamoDBEndpoint string
	DatabaseURL      string

	JWTSecret string
	JWTTTL    time.Duration

	RabbitMQURL      string
	NotifyExchange   string
	NotifyRoutingKey string
}

// Load reads configuration from the environment (and a .env file, when
// present). Every key has a default so a bare `go run` works locally.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", StoreDynamoDB)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("DYNAMODB_ENDPOINT", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("JWT_SECRET", devJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("NOTIFY_EXCHANGE", "fnol.notifications")
	v.SetDefault("NOTIFY_ROUTING_KEY", "claim.registered")

	cfg := Config{
		Port:             v.GetString("PORT"),
		GinMode:          v.GetString("GIN_MODE"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		StoreDriver:      strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		AWSRegion:        v.GetString("AWS_REGION"),
		DynamoDBEndpoint: v.GetString("DYNAMODB_ENDPOINT"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTTTL:           v.GetDuration("JWT_TTL"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		NotifyExchange:   v.GetString("NOTIFY_EXCHANGE"),
		NotifyRoutingKey: v.GetString("NOTIFY_ROUTING_KEY"),
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreDynamoDB, StoreMemory:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required when STORE_DRIVER=postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown STORE_DRIVER %q", ErrInvalidConfig, c.StoreDriver)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("%w: JWT_TTL must be positive", ErrInvalidConfig)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("%w: JWT_SECRET is required", ErrInvalidConfig)
	}
	return nil
}

// UsesDevSecret reports whether tokens are signed with the built-in secret.
func (c Config) UsesDevSecret() bool {
	return c.JWTSecret == devJWTSecret
}
