package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jentichuang-afk/stock-watchlist/internal/calculator"
)

// Config holds all application configuration.
type Config struct {
	Log struct {
		Level       string `yaml:"level"`
		Environment string `yaml:"environment"`
	} `yaml:"log"`
	DataSource struct {
		LookbackDays int           `yaml:"lookback_days"`
		Suffixes     []string      `yaml:"suffixes"`
		Timeout      time.Duration `yaml:"timeout"`
	} `yaml:"data_source"`
	Scan struct {
		MinBars      int `yaml:"min_bars"`
		FallbackBars int `yaml:"fallback_bars"`
		CardLimit    int `yaml:"card_limit"`
	} `yaml:"scan"`
	Indicators calculator.Params `yaml:"indicators"`
	Names      struct {
		Cache         string        `yaml:"cache"` // memory | redis
		TTL           time.Duration `yaml:"ttl"`
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		Scrape        *bool         `yaml:"scrape"`
	} `yaml:"names"`
	Watchlist struct {
		File    string `yaml:"file"`
		Default string `yaml:"default"`
	} `yaml:"watchlist"`
	Narrative struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url"`
		Models  []string      `yaml:"models"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"narrative"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		RefreshCron        string `yaml:"refresh_cron"`
		RunOnStart         bool   `yaml:"run_on_start"`
		NarrativeOnRefresh bool   `yaml:"narrative_on_refresh"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Listen string `yaml:"listen"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Log.Environment = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Narrative.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODELS"); v != "" {
		c.Narrative.Models = splitList(v)
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		c.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("WATCHLIST_FILE"); v != "" {
		c.Watchlist.File = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Names.RedisAddr = v
		if c.Names.Cache == "" {
			c.Names.Cache = "redis"
		}
	}
	if v := os.Getenv("METRICS_LISTEN"); v != "" {
		c.Metrics.Listen = v
	}
	if v := os.Getenv("MIN_BARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Scan.MinBars = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Environment == "" {
		c.Log.Environment = "production"
	}
	if c.DataSource.LookbackDays == 0 {
		c.DataSource.LookbackDays = 90
	}
	if len(c.DataSource.Suffixes) == 0 {
		c.DataSource.Suffixes = []string{".TW", ".TWO"}
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 30 * time.Second
	}
	if c.Scan.MinBars == 0 {
		c.Scan.MinBars = 30
	}
	if c.Scan.FallbackBars == 0 {
		c.Scan.FallbackBars = 20
	}
	if c.Scan.CardLimit == 0 {
		c.Scan.CardLimit = 4
	}
	if c.Names.Cache == "" {
		c.Names.Cache = "memory"
	}
	if c.Names.TTL == 0 {
		c.Names.TTL = 24 * time.Hour
	}
	if c.Names.Scrape == nil {
		on := true
		c.Names.Scrape = &on
	}
	if c.Watchlist.File == "" {
		c.Watchlist.File = "data/watchlist.json"
	}
	if c.Watchlist.Default == "" {
		c.Watchlist.Default = "2330, 2376, 3034, 2317, 2383, 2027"
	}
	if len(c.Narrative.Models) == 0 {
		c.Narrative.Models = []string{"gemini-2.5-flash", "gemini-2.5-pro"}
	}
	if c.Narrative.Timeout == 0 {
		c.Narrative.Timeout = 120 * time.Second
	}
	if c.Schedule.RefreshCron == "" {
		// 13:45 Taipei, after the close, Mon-Fri
		c.Schedule.RefreshCron = "0 45 13 * * 1-5"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/radar.db"
	}
	if c.Metrics.Listen == "" {
		c.Metrics.Listen = ":9108"
	}
}

// Validate checks the settings every command relies on.
func (c *Config) Validate() error {
	if c.Scan.MinBars < 2 {
		return fmt.Errorf("scan.min_bars must be at least 2")
	}
	if c.Scan.CardLimit < 0 {
		return fmt.Errorf("scan.card_limit must not be negative")
	}
	if c.DataSource.LookbackDays <= 0 {
		return fmt.Errorf("data_source.lookback_days must be positive")
	}
	switch c.Names.Cache {
	case "memory":
	case "redis":
		if c.Names.RedisAddr == "" {
			return fmt.Errorf("names.redis_addr is required for the redis cache")
		}
	default:
		return fmt.Errorf("names.cache must be memory or redis, got %q", c.Names.Cache)
	}
	return nil
}

// ValidateServe additionally requires the Telegram bot settings.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}

// NarrativeEnabled reports whether an API key is configured.
func (c *Config) NarrativeEnabled() bool {
	return c.Narrative.APIKey != ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
