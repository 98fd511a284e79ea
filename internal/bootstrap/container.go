// Package bootstrap wires configuration into stores, notifiers and use cases.
// Both the HTTP server and the operator CLI build their dependencies here.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"fnol_intake/internal/adapter/persistence/repository"
	"fnol_intake/internal/config"
	"fnol_intake/internal/infrastructure/database"
	"fnol_intake/internal/infrastructure/notification"
	"fnol_intake/internal/infrastructure/security"
	"fnol_intake/internal/usecase"
	"fnol_intake/internal/usecase/interfaces"
	"fnol_intake/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type Container struct {
	Config config.Config
	Log    *logger.Logger

	ClaimRepo interfaces.IClaimRepository
	UserRepo  interfaces.IUserRepository

	Claims       *usecase.ClaimUseCase
	Auth         *usecase.AuthUseCase
	Certificates *usecase.CertificateUseCase

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	if err := c.openStores(ctx); err != nil {
		return nil, err
	}
	notifier := c.openNotifier()

	tokens := security.NewJWTIssuer(cfg.JWTSecret, cfg.JWTTTL)
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	c.Claims = usecase.NewClaimUseCase(c.ClaimRepo, c.UserRepo, notifier)
	c.Auth = usecase.NewAuthUseCase(c.UserRepo, hasher, tokens)
	c.Certificates = usecase.NewCertificateUseCase(c.UserRepo)

	if cfg.UsesDevSecret() {
		log.Warnf("JWT_SECRET not set, signing sessions with the development secret")
	}
	return c, nil
}

func (c *Container) openStores(ctx context.Context) error {
	switch c.Config.StoreDriver {
	case config.StoreMemory:
		c.ClaimRepo = repository.NewClaimMemoryRepository()
		c.UserRepo = repository.NewUserMemoryRepository()

	case config.StorePostgres:
		db, err := database.ConnectPostgres(c.Config.DatabaseURL)
		if err != nil {
			return err
		}
		if err := repository.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		c.closers = append(c.closers, sqlDB.Close)
		c.ClaimRepo = repository.NewClaimGormRepository(db)
		c.UserRepo = repository.NewUserGormRepository(db)

	case config.StoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBSettings{
			Region:   c.Config.AWSRegion,
			Endpoint: c.Config.DynamoDBEndpoint,
		})
		if err != nil {
			return fmt.Errorf("dynamodb: %w", err)
		}
		c.ClaimRepo = repository.NewClaimDynamoRepository(ddb)
		c.UserRepo = repository.NewUserDynamoRepository(ddb)

	default:
		return fmt.Errorf("%w: unknown STORE_DRIVER %q", config.ErrInvalidConfig, c.Config.StoreDriver)
	}

	c.Log.Infof("store ready driver=%s", c.Config.StoreDriver)
	return nil
}

// openNotifier prefers RabbitMQ and falls back to logging when the broker is
// not configured or unreachable at startup.
func (c *Container) openNotifier() interfaces.INotifier {
	fallback := notification.NewLogNotifier(c.Log.Component("notification"))
	if c.Config.RabbitMQURL == "" {
		return fallback
	}

	n, err := notification.NewRabbitMQNotifier(c.Config.RabbitMQURL, c.Config.NotifyExchange, c.Config.NotifyRoutingKey)
	if err != nil {
		c.Log.Errorf(err, "rabbitmq unavailable, notifications will only be logged")
		return fallback
	}
	c.closers = append(c.closers, n.Close)
	return n
}

func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
