// Package config holds the kong flag groups shared by the storefront
// commands. Every flag can also be set from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type Log struct {
	Level       string `name:"log-level" env:"LOG_LEVEL" default:"info" help:"Log level (debug, info, warn, error)."`
	Development bool   `name:"log-development" env:"LOG_DEVELOPMENT" help:"Human-readable console logs."`
}

// Store selects and configures the weekly order counter backend.
type Store struct {
	Backend       string `name:"counter-backend" env:"COUNTER_BACKEND" enum:"sqlite,postgres,redis,memory" default:"sqlite" help:"Where weekly order counts are kept (${enum})."`
	Record        string `name:"counter-record" env:"COUNTER_RECORD" default:"orderCounts" help:"Name of the counter record."`
	SQLitePath    string `name:"sqlite-path" env:"SQLITE_PATH" default:"storefront.db" help:"SQLite database file."`
	DatabaseDSN   string `name:"database-dsn" env:"DATABASE_DSN" help:"Postgres DSN for the postgres backend."`
	RunMigrations bool   `name:"run-migrations" env:"RUN_MIGRATIONS" default:"true" negatable:"" help:"Apply embedded Postgres migrations on start."`
	RedisAddr     string `name:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" help:"Redis address for the redis backend."`
	RedisPassword string `name:"redis-password" env:"REDIS_PASSWORD" help:"Redis password."`
	RedisDB       int    `name:"redis-db" env:"REDIS_DB" default:"0" help:"Redis database number."`
}

func (s Store) Validate() error {
	switch s.Backend {
	case BackendPostgres:
		if s.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN is required for the postgres counter backend")
		}
	case BackendRedis:
		if s.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis counter backend")
		}
	case BackendSQLite:
		if s.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite counter backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown counter backend %q", s.Backend)
	}
	if s.Record == "" {
		return errors.New("counter record name must not be empty")
	}
	return nil
}

// Server configures the HTTP API and outbound order submission.
type Server struct {
	Port             string        `name:"port" env:"PORT" default:"8080" help:"HTTP listen port."`
	CatalogPath      string        `name:"catalog" env:"CATALOG_PATH" default:"configs/catalog.yaml" help:"Product catalog YAML file."`
	CORSAllowOrigins []string      `name:"cors-allow-origins" env:"CORS_ALLOW_ORIGINS" default:"*" help:"Comma-separated browser origins allowed to call the API."`
	CollectorURL     string        `name:"collector-url" env:"COLLECTOR_URL" help:"Endpoint that receives placed orders as JSON."`
	SubmitTimeout    time.Duration `name:"submit-timeout" env:"SUBMIT_TIMEOUT" default:"10s" help:"Upper bound for each outbound order submission."`
	RabbitMQURL      string        `name:"rabbitmq-url" env:"RABBITMQ_URL" help:"Publish OrderPlaced events to this broker when set."`
	AdminEnabled     bool          `name:"admin" env:"ADMIN_ENABLED" help:"Expose POST /api/admin/limits/reset."`
	PaymentMethod    string        `name:"default-payment-method" env:"DEFAULT_PAYMENT_METHOD" enum:"Cash,Card,Venmo" default:"Cash" help:"Payment method used when the form leaves it blank (${enum})."`
	ShutdownTimeout  time.Duration `name:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" default:"15s" help:"Time allowed for in-flight requests and submissions on shutdown."`
}

func (s Server) Validate() error {
	if s.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if s.SubmitTimeout <= 0 {
		return errors.New("SUBMIT_TIMEOUT must be positive")
	}
	if _, err := order.ParsePaymentMethod(s.PaymentMethod); err != nil {
		return err
	}
	return nil
}

func (s Server) DefaultPaymentMethod() order.PaymentMethod {
	m, err := order.ParsePaymentMethod(s.PaymentMethod)
	if err != nil {
		return order.PaymentCash
	}
	return m
}
