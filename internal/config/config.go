// Package config содержит логику чтения конфигурации сервиса ордердеск.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config содержит параметры конфигурации сервиса ордердеск.
type Config struct {
	RunAddress           string        `env:"RUN_ADDRESS"`
	MessageSystemAddress string        `env:"MESSAGE_SYSTEM_ADDRESS"`
	StoreLatency         time.Duration `env:"STORE_LATENCY"`
}

// Parse считывает конфигурацию из .env-файла, переменных окружения и
// флагов командной строки. Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envMessageAddress := cfg.MessageSystemAddress
	envStoreLatency := cfg.StoreLatency

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	flag.StringVar(&cfg.MessageSystemAddress, "r", "", "message generation system address")
	flag.DurationVar(&cfg.StoreLatency, "l", 500*time.Millisecond, "simulated store latency")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envMessageAddress != "" {
		cfg.MessageSystemAddress = envMessageAddress
	}
	if envStoreLatency != 0 {
		cfg.StoreLatency = envStoreLatency
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8080"
	}

	return cfg, nil
}
