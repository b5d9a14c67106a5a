package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the database URL used by the migration runner.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// KafkaConfig holds broker and topic settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// SMTPConfig holds outbound email settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// JWTConfig holds admin session token settings.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// OTPConfig holds admin login OTP settings.
type OTPConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
	RedisAddr     string // empty selects the in-memory store
}

// ServiceConfig holds all configuration for the admin service.
type ServiceConfig struct {
	Port   string
	AppEnv string
	DB     DatabaseConfig
	Kafka  KafkaConfig
	SMTP   SMTPConfig
	JWT    JWTConfig
	OTP    OTPConfig
}

// Load reads configuration from ADMIN_-prefixed environment variables with
// sane defaults for local development.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("ADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "autoconnect")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "autoconnect.")
	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SMTP_FROM", "otocnct@gmail.com")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("OTP_TTL", "10m")
	v.SetDefault("OTP_SWEEP_INTERVAL", "5m")
	v.SetDefault("REDIS_ADDR", "")

	if v.GetString("JWT_SECRET") == "" && v.GetString("APP_ENV") != "development" {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET is required outside development")
	}
	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
	}

	jwtTTL, err := time.ParseDuration(v.GetString("JWT_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_JWT_TTL: %w", err)
	}
	otpTTL, err := time.ParseDuration(v.GetString("OTP_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_OTP_TTL: %w", err)
	}
	sweep, err := time.ParseDuration(v.GetString("OTP_SWEEP_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_OTP_SWEEP_INTERVAL: %w", err)
	}

	return &ServiceConfig{
		Port:   v.GetString("SERVICE_PORT"),
		AppEnv: v.GetString("APP_ENV"),
		DB: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(v.GetString("KAFKA_BROKERS"), ","),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("SMTP_FROM"),
		},
		JWT: JWTConfig{Secret: secret, TTL: jwtTTL},
		OTP: OTPConfig{
			TTL:           otpTTL,
			SweepInterval: sweep,
			RedisAddr:     v.GetString("REDIS_ADDR"),
		},
	}, nil
}
