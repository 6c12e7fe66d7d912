package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	DataSource    DataSourceConfig    `yaml:"data_source"`
	Predictor     PredictorConfig     `yaml:"predictor"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

type ServerConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	AllowedOrigins    []string      `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type DataSourceConfig struct {
	BaseURL         string        `yaml:"base_url"`
	Timeout         time.Duration `yaml:"timeout"`
	RequestsPerSec  float64       `yaml:"requests_per_sec"` // rate limit towards the provider
	BrowserFallback bool          `yaml:"browser_fallback"` // render JS-guarded responses in headless Chrome
}

type PredictorConfig struct {
	MaxGoals       int     `yaml:"max_goals"`        // Poisson score grid bound (default: 10)
	HomeAdvantage  float64 `yaml:"home_advantage"`   // multiplier on home expected goals (default: 1.15)
	MinPatternConf float64 `yaml:"min_pattern_conf"` // patterns below this confidence are dropped
}

type NotificationsConfig struct {
	TelegramBotToken string `yaml:"telegram_bot_token"`
	TelegramChatID   int64  `yaml:"telegram_chat_id"`
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 30 * time.Second
	}
	if c.DataSource.RequestsPerSec == 0 {
		c.DataSource.RequestsPerSec = 2
	}
	if c.Predictor.MaxGoals == 0 {
		c.Predictor.MaxGoals = 10
	}
	if c.Predictor.HomeAdvantage == 0 {
		c.Predictor.HomeAdvantage = 1.15
	}
}
