package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
)

// Config хранит настройки сервиса: адрес HTTP-сервера, строку подключения
// к базе и таймаут загрузки одной ленты.
type Config struct {
	Addr        string `json:"addr"`
	DatabaseURL string `json:"database_url"`
	// FetchTimeout — таймаут одного HTTP-запроса к ленте в секундах.
	// 0 отключает дедлайн (поведение по умолчанию).
	FetchTimeout int `json:"fetch_timeout_seconds"`
	// BatchLimit — максимум статей, обрабатываемых за один запуск.
	BatchLimit int `json:"batch_limit"`
}

// Validate проверяет, что DatabaseURL задан и является валидным URL,
// а числовые поля неотрицательны.
func (cfg *Config) Validate() error {
	if cfg.DatabaseURL == "" {
		return errors.New("database_url is required")
	}
	if _, err := url.ParseRequestURI(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("invalid database URL: %s", cfg.DatabaseURL)
	}
	if cfg.FetchTimeout < 0 {
		return errors.New("fetch_timeout_seconds must be ≥ 0")
	}
	if cfg.BatchLimit < 0 {
		return errors.New("batch_limit must be ≥ 0")
	}
	return nil
}

// LoadConfig читает JSON-файл по пути path, декодирует его в Config
// и подставляет значения по умолчанию.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	return &cfg, nil
}
