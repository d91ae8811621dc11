package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/DrNytkenstien/secureauth/domain"
	"github.com/DrNytkenstien/secureauth/internal/config"
	"github.com/DrNytkenstien/secureauth/internal/infrastructure/database"
	"github.com/DrNytkenstien/secureauth/internal/infrastructure/notifications"
	"github.com/DrNytkenstien/secureauth/internal/infrastructure/repositories"
	"github.com/DrNytkenstien/secureauth/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure (nil with the memory driver)
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo    domain.UserRepository
	OTPRepo     domain.OTPRepository
	SessionRepo domain.SessionRepository

	// Services
	Mailer  domain.Mailer
	OTPSvc  domain.OTPService
	AuthSvc domain.AuthService
	Cleanup *services.CleanupService
}

// NewContainer creates and initializes all dependencies. The store backend
// is selected here, at composition time: every repository pair is
// behaviorally interchangeable, durability is the only difference.
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initRepositories(); err != nil {
		return nil, err
	}
	c.initServices()

	return c, nil
}

func (c *Container) initRepositories() error {
	if c.Config.StoreDriver == "memory" {
		c.UserRepo = repositories.NewMemoryUserRepository()
		c.OTPRepo = repositories.NewMemoryOTPRepository()
		c.SessionRepo = repositories.NewMemorySessionRepository()
		return nil
	}

	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db

	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}
	c.RedisClient = rdb.Client

	c.UserRepo = repositories.NewUserRepository(db)
	c.OTPRepo = repositories.NewRedisOTPRepository(rdb.Client)
	c.SessionRepo = repositories.NewRedisSessionRepository(rdb.Client)
	return nil
}

func (c *Container) initServices() {
	c.Mailer = notifications.NewSMTPService(
		c.Config.SMTPHost,
		c.Config.SMTPPort,
		c.Config.SMTPUsername,
		c.Config.SMTPPassword,
		c.Config.SMTPFrom,
	)

	c.OTPSvc = services.NewOTPService(c.OTPRepo, services.OTPConfig{
		Length:      c.Config.OTPLength,
		TTL:         c.Config.OTPTTL,
		MaxAttempts: c.Config.OTPMaxAttempts,
	})

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.OTPRepo,
		c.SessionRepo,
		c.OTPSvc,
		c.Mailer,
		services.AuthConfig{
			ResendCooldown:    c.Config.OTPResendCooldown,
			SessionTTL:        c.Config.SessionTTL,
			PreProvisionUsers: c.Config.PreProvisionUsers,
		},
	)

	c.Cleanup = services.NewCleanupService(c.OTPRepo, c.SessionRepo, c.Config.SweepInterval)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
