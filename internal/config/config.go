// Package config содержит конфигурацию приложения
package config

import (
	"flag"
	"os"
	"strings"
)

// Config содержит настройки приложения
type Config struct {
	RunAddr       string
	GRPCAddr      string
	StoragePath   string
	DatabaseDSN   string
	JWTSecret     string
	TrustedSubnet string
	NoTokenCheck  bool
}

// NewConfig создает и возвращает новый объект Config: парсит флаги командной
// строки, затем применяет переменные окружения поверх них
func NewConfig() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddr, "a", ":8080", "address and port to run HTTP server")
	flag.StringVar(&cfg.GRPCAddr, "g", ":3200", "address and port to run gRPC server")
	flag.StringVar(&cfg.StoragePath, "f", "", "path to BadgerDB directory for persistent storage")
	flag.StringVar(&cfg.DatabaseDSN, "d", "", "database DSN for PostgreSQL")
	flag.StringVar(&cfg.JWTSecret, "j", "default_jwt_secret", "JWT secret key for session tokens")
	flag.StringVar(&cfg.TrustedSubnet, "t", "", "trusted subnet in CIDR notation for internal endpoints")
	flag.BoolVar(&cfg.NoTokenCheck, "no-token", false, "disable session token checks")
	flag.Parse()

	// Переменные окружения имеют приоритет над флагами
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		cfg.RunAddr = addr
	}
	if addr := os.Getenv("GRPC_ADDRESS"); addr != "" {
		cfg.GRPCAddr = addr
	}
	if path := os.Getenv("STORAGE_PATH"); path != "" {
		cfg.StoragePath = path
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}
	if subnet := os.Getenv("TRUSTED_SUBNET"); subnet != "" {
		cfg.TrustedSubnet = subnet
	}
	if _, ok := os.LookupEnv("KRNLGO_NO_TOKEN"); ok {
		cfg.NoTokenCheck = true
	}

	// Валидация значений
	if !strings.Contains(cfg.RunAddr, ":") {
		cfg.RunAddr = ":" + cfg.RunAddr
	}
	if !strings.Contains(cfg.GRPCAddr, ":") {
		cfg.GRPCAddr = ":" + cfg.GRPCAddr
	}
	if cfg.StoragePath != "" {
		if err := os.MkdirAll(cfg.StoragePath, 0755); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
