package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type StoreConfig struct {
	// Driver selects the persistence backend: "memory" or "postgres".
	// With postgres, OTP and session records live in Redis.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type OTPConfig struct {
	Length         int    `yaml:"length"`
	TTL            string `yaml:"ttl"`
	MaxAttempts    int    `yaml:"max_attempts"`
	ResendCooldown string `yaml:"resend_cooldown"`
}

type SessionConfig struct {
	TTL string `yaml:"ttl"`
}

type SweepConfig struct {
	Interval string `yaml:"interval"`
}

type AuthConfig struct {
	// PreProvisionUsers creates the user record at OTP-request time, before
	// verification succeeds, matching the reference behavior. When false the
	// user is only created on successful verification.
	PreProvisionUsers *bool `yaml:"pre_provision_users"`
}

type ConfigFile struct {
	App     AppConfig     `yaml:"app"`
	Store   StoreConfig   `yaml:"store"`
	Redis   RedisConfig   `yaml:"redis"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	OTP     OTPConfig     `yaml:"otp"`
	Session SessionConfig `yaml:"session"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Auth    AuthConfig    `yaml:"auth"`
}

type Config struct {
	Port              string
	GinMode           string
	StoreDriver       string
	DSN               string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	SMTPFrom          string
	OTPLength         int
	OTPTTL            time.Duration
	OTPMaxAttempts    int
	OTPResendCooldown time.Duration
	SessionTTL        time.Duration
	SweepInterval     time.Duration
	PreProvisionUsers bool
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Load reads the YAML config file, falling back to environment variables
// with built-in defaults when no file is present.
func Load() (*Config, error) {
	path := env("CONFIG_PATH", "config/config.yml")

	file, err := loadConfigFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		file = fileFromEnv()
	}

	otpTTL, err := parseDuration(file.OTP.TTL, 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	cooldown, err := parseDuration(file.OTP.ResendCooldown, 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP resend cooldown: %w", err)
	}

	sessionTTL, err := parseDuration(file.Session.TTL, 24*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid session TTL: %w", err)
	}

	sweepInterval, err := parseDuration(file.Sweep.Interval, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	port := file.App.Port
	if port == 0 {
		port = 5000
	}

	length := file.OTP.Length
	if length == 0 {
		length = 6
	}

	maxAttempts := file.OTP.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 5
	}

	driver := file.Store.Driver
	if driver == "" {
		driver = "memory"
	}
	if driver != "memory" && driver != "postgres" {
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}

	preProvision := true
	if file.Auth.PreProvisionUsers != nil {
		preProvision = *file.Auth.PreProvisionUsers
	}

	return &Config{
		Port:              fmt.Sprintf("%d", port),
		GinMode:           file.App.GinMode,
		StoreDriver:       driver,
		DSN:               file.Store.DSN,
		RedisAddr:         file.Redis.Addr,
		RedisPassword:     file.Redis.Password,
		RedisDB:           file.Redis.DB,
		SMTPHost:          file.SMTP.Host,
		SMTPPort:          file.SMTP.Port,
		SMTPUsername:      file.SMTP.Username,
		SMTPPassword:      file.SMTP.Password,
		SMTPFrom:          file.SMTP.From,
		OTPLength:         length,
		OTPTTL:            otpTTL,
		OTPMaxAttempts:    maxAttempts,
		OTPResendCooldown: cooldown,
		SessionTTL:        sessionTTL,
		SweepInterval:     sweepInterval,
		PreProvisionUsers: preProvision,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file ConfigFile
	if err := yaml.Unmarshal(bytes, &file); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &file, nil
}

func fileFromEnv() *ConfigFile {
	return &ConfigFile{
		App: AppConfig{
			Port:    envInt("PORT", 5000),
			GinMode: env("GIN_MODE", ""),
		},
		Store: StoreConfig{
			Driver: env("STORE_DRIVER", "memory"),
			DSN:    env("DATABASE_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: env("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:     env("SMTP_HOST", "smtp.gmail.com"),
			Port:     envInt("SMTP_PORT", 587),
			Username: env("SMTP_USER", ""),
			Password: env("SMTP_PASSWORD", ""),
			From:     env("SMTP_FROM", "noreply@secureauth.com"),
		},
		OTP: OTPConfig{
			Length:         envInt("OTP_LENGTH", 6),
			TTL:            env("OTP_TTL", ""),
			MaxAttempts:    envInt("OTP_MAX_ATTEMPTS", 5),
			ResendCooldown: env("OTP_RESEND_COOLDOWN", ""),
		},
		Session: SessionConfig{TTL: env("SESSION_TTL", "")},
		Sweep:   SweepConfig{Interval: env("SWEEP_INTERVAL", "")},
		Auth:    AuthConfig{PreProvisionUsers: envBoolPtr("PRE_PROVISION_USERS")},
	}
}

func envBoolPtr(k string) *bool {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	b := v == "true" || v == "1"
	return &b
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
