package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config конфигурация процесса, загружаемая из config.toml
type Config struct {
	Studio   StudioConfig   `toml:"studio"`
	Telegram TelegramConfig `toml:"telegram"`
	Watcher  WatcherConfig  `toml:"watcher"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// StudioConfig параметры API расписания студии
type StudioConfig struct {
	BaseURL          string `toml:"base_url"`
	UnitList         string `toml:"unit_list"`
	ActivityList     string `toml:"activity_list"`
	TimezoneFromUnit string `toml:"timezone_from_unit"`
	Timeout          int    `toml:"timeout"` // секунды
}

// TelegramConfig параметры доставки уведомлений.
// Токен и chat id приходят из флагов/окружения, не из файла.
type TelegramConfig struct {
	BaseURL   string `toml:"base_url"`
	ParseMode string `toml:"parse_mode"`
	Timeout   int    `toml:"timeout"` // секунды
}

// WatcherConfig бизнес-параметры пайплайна
type WatcherConfig struct {
	InstructorID    int64  `toml:"instructor_id"`
	Region          string `toml:"region"`
	WindowDays      int    `toml:"window_days"`
	Pages           []int  `toml:"pages"`
	IntervalMinutes int    `toml:"interval_minutes"` // период watch-режима
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры Prometheus-метрик (watch-режим)
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
	Port        int    `toml:"port"`
}

// Default конфигурация по умолчанию; файл переопределяет её частично
func Default() *Config {
	return &Config{
		Studio: StudioConfig{
			BaseURL:          "https://studiovelocity.com.br/api/v1",
			UnitList:         "35",
			ActivityList:     "1",
			TimezoneFromUnit: "35",
			Timeout:          30,
		},
		Telegram: TelegramConfig{
			BaseURL:   "https://api.telegram.org",
			ParseMode: "HTML",
			Timeout:   30,
		},
		Watcher: WatcherConfig{
			InstructorID:    525,
			Region:          "SP",
			WindowDays:      14,
			Pages:           []int{1, 2},
			IntervalMinutes: 15,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			ServiceName: "smc-spotwatcher",
			Path:        "/metrics",
			Port:        9090,
		},
	}
}

// Load загружает конфигурацию из toml-файла поверх значений по умолчанию.
// Отсутствующий файл не ошибка — работают значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Studio.BaseURL == "" {
		return fmt.Errorf("studio.base_url must not be empty")
	}
	if c.Studio.Timeout <= 0 {
		return fmt.Errorf("studio.timeout must be positive")
	}
	if c.Telegram.BaseURL == "" {
		return fmt.Errorf("telegram.base_url must not be empty")
	}
	if c.Telegram.Timeout <= 0 {
		return fmt.Errorf("telegram.timeout must be positive")
	}
	if c.Watcher.InstructorID <= 0 {
		return fmt.Errorf("watcher.instructor_id must be positive")
	}
	if c.Watcher.WindowDays <= 0 {
		return fmt.Errorf("watcher.window_days must be positive")
	}
	if len(c.Watcher.Pages) == 0 {
		return fmt.Errorf("watcher.pages must not be empty")
	}
	if c.Watcher.IntervalMinutes <= 0 {
		return fmt.Errorf("watcher.interval_minutes must be positive")
	}
	if c.Metrics.Enabled {
		if c.Metrics.Path == "" {
			return fmt.Errorf("metrics.path must not be empty when metrics are enabled")
		}
		if c.Metrics.Port <= 0 {
			return fmt.Errorf("metrics.port must be positive when metrics are enabled")
		}
	}
	return nil
}
