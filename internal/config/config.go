// Package config собирает настройки дашборда из значений по умолчанию,
// YAML-файла, флагов командной строки и переменных окружения.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config содержит настройки приложения
type Config struct {
	RunAddr         string        `yaml:"run_addr"`
	GRPCAddr        string        `yaml:"grpc_addr"`
	APIBaseURL      string        `yaml:"api_base_url"`
	FileStoragePath string        `yaml:"file_storage_path"`
	DatabaseDSN     string        `yaml:"database_dsn"`
	RedisAddr       string        `yaml:"redis_addr"`
	JWTSecret       string        `yaml:"jwt_secret"`
	CookieTTL       time.Duration `yaml:"cookie_ttl"`
	SnapshotTTL     time.Duration `yaml:"snapshot_ttl"`
	TrustedSubnet   string        `yaml:"trusted_subnet"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	ExportTimezone  string        `yaml:"export_timezone"`
	LogLevel        string        `yaml:"log_level"`
}

// Default возвращает настройки по умолчанию
func Default() *Config {
	return &Config{
		RunAddr:         ":8080",
		GRPCAddr:        ":3200",
		APIBaseURL:      "http://localhost:7784/api",
		JWTSecret:       "default_jwt_secret",
		CookieTTL:       24 * time.Hour,
		SnapshotTTL:     24 * time.Hour,
		RequestTimeout:  10 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		ExportTimezone:  "UTC",
		LogLevel:        "info",
	}
}

// NewConfig читает .env, флаги из os.Args и переменные окружения
func NewConfig() (*Config, error) {
	// Файл .env необязателен
	_ = godotenv.Load()
	return Parse(os.Args[1:])
}

// Parse собирает настройки: значения по умолчанию, затем YAML-файл,
// затем явно заданные флаги, затем переменные окружения
func Parse(args []string) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	flagConfig := fs.String("c", "", "path to YAML config file")
	flagRunAddr := fs.String("a", cfg.RunAddr, "address and port to run HTTP server")
	flagGRPCAddr := fs.String("g", cfg.GRPCAddr, "address and port to run gRPC server")
	flagAPIBaseURL := fs.String("u", cfg.APIBaseURL, "base URL of the shortener API")
	flagFilePath := fs.String("f", "", "path to file for storing sessions")
	flagDatabaseDSN := fs.String("d", "", "database DSN for PostgreSQL")
	flagRedisAddr := fs.String("r", "", "Redis address for links snapshots")
	flagJWTSecret := fs.String("j", cfg.JWTSecret, "JWT secret key")
	flagTrustedSubnet := fs.String("t", "", "trusted subnet in CIDR notation")
	flagLogLevel := fs.String("l", cfg.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	configPath := *flagConfig
	if path := os.Getenv("CONFIG"); path != "" {
		configPath = path
	}
	if configPath != "" {
		if err := loadFile(configPath, cfg); err != nil {
			return nil, err
		}
	}

	// Флаги перекрывают файл, только если заданы явно
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "a":
			cfg.RunAddr = *flagRunAddr
		case "g":
			cfg.GRPCAddr = *flagGRPCAddr
		case "u":
			cfg.APIBaseURL = *flagAPIBaseURL
		case "f":
			cfg.FileStoragePath = *flagFilePath
		case "d":
			cfg.DatabaseDSN = *flagDatabaseDSN
		case "r":
			cfg.RedisAddr = *flagRedisAddr
		case "j":
			cfg.JWTSecret = *flagJWTSecret
		case "t":
			cfg.TrustedSubnet = *flagTrustedSubnet
		case "l":
			cfg.LogLevel = *flagLogLevel
		}
	})

	// Проверяем переменные окружения
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// Валидация значений
	cfg.RunAddr = validateAddress(cfg.RunAddr)
	cfg.GRPCAddr = validateAddress(cfg.GRPCAddr)
	cfg.APIBaseURL = validateBaseURL(cfg.APIBaseURL)
	if _, err := time.LoadLocation(cfg.ExportTimezone); err != nil {
		return nil, fmt.Errorf("invalid EXPORT_TZ %q: %w", cfg.ExportTimezone, err)
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT secret must not be empty")
	}
	if cfg.FileStoragePath != "" {
		// Создаём директорию для файла, если она не существует
		if err := os.MkdirAll(filepath.Dir(cfg.FileStoragePath), 0755); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	values := map[string]*string{
		"SERVER_ADDRESS":    &cfg.RunAddr,
		"GRPC_ADDRESS":      &cfg.GRPCAddr,
		"API_BASE_URL":      &cfg.APIBaseURL,
		"FILE_STORAGE_PATH": &cfg.FileStoragePath,
		"DATABASE_DSN":      &cfg.DatabaseDSN,
		"REDIS_ADDRESS":     &cfg.RedisAddr,
		"JWT_SECRET":        &cfg.JWTSecret,
		"TRUSTED_SUBNET":    &cfg.TrustedSubnet,
		"EXPORT_TZ":         &cfg.ExportTimezone,
		"LOG_LEVEL":         &cfg.LogLevel,
	}
	for name, dst := range values {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"COOKIE_TTL":       &cfg.CookieTTL,
		"SNAPSHOT_TTL":     &cfg.SnapshotTTL,
		"API_TIMEOUT":      &cfg.RequestTimeout,
		"SHUTDOWN_TIMEOUT": &cfg.ShutdownTimeout,
	}
	for name, dst := range durations {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = d
	}
	return nil
}

// validateAddress дополняет адрес двоеточием, если указан только порт
func validateAddress(addr string) string {
	if !strings.Contains(addr, ":") {
		return ":" + addr
	}
	return addr
}

// validateBaseURL добавляет схему http, если она не указана
func validateBaseURL(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "http://" + url
	}
	return url
}
