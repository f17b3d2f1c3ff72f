package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"IDXScreener/internal/detector"
	"IDXScreener/internal/screener"
)

// Config holds all application configuration.
type Config struct {
	Universe struct {
		SheetURL string   `yaml:"sheet_url"`
		File     string   `yaml:"file"`
		Symbols  []string `yaml:"symbols"`
	} `yaml:"universe"`
	DataSource struct {
		Suffix string `yaml:"suffix"` // venue suffix for bare tickers
	} `yaml:"data_source"`
	Screening struct {
		Detectors   []string `yaml:"detectors"`
		Mode        string   `yaml:"mode"` // all | at_least_n | preset
		MinMatches  int      `yaml:"min_matches"`
		Preset      string   `yaml:"preset"`
		MAPeriod    int      `yaml:"ma_period"`
		GoldenShort int      `yaml:"golden_short"`
		GoldenLong  int      `yaml:"golden_long"`
		Workers     int      `yaml:"workers"`
	} `yaml:"screening"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		ScreenCron string `yaml:"screen_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
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

	// Environment variable overrides
	if v := os.Getenv("SHEET_URL"); v != "" {
		cfg.Universe.SheetURL = v
	}
	if v := os.Getenv("SYMBOL_FILE"); v != "" {
		cfg.Universe.File = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.Universe.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("DETECTORS"); v != "" {
		cfg.Screening.Detectors = strings.Split(v, ",")
	}
	if v := os.Getenv("SCREEN_MODE"); v != "" {
		cfg.Screening.Mode = v
	}
	if v := os.Getenv("SCREEN_PRESET"); v != "" {
		cfg.Screening.Preset = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SCREEN_CRON"); v != "" {
		cfg.Schedule.ScreenCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Suffix == "" {
		cfg.DataSource.Suffix = ".JK"
	}
	if cfg.Screening.Mode == "" {
		cfg.Screening.Mode = "all"
	}
	if cfg.Screening.Workers == 0 {
		cfg.Screening.Workers = 4
	}
	if cfg.Schedule.ScreenCron == "" {
		// 17:00 WIB, Monday to Friday, after the IDX close
		cfg.Schedule.ScreenCron = "0 0 17 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Universe.SheetURL == "" && c.Universe.File == "" && len(c.Universe.Symbols) == 0 {
		return fmt.Errorf("universe: one of sheet_url, file or symbols is required")
	}
	if _, err := c.ScreeningConfig(); err != nil {
		return err
	}
	return nil
}

// ScreeningConfig translates the screening section into the typed run
// configuration, resolving detector keys and the combination mode.
func (c *Config) ScreeningConfig() (*screener.Config, error) {
	mode, err := screener.ParseMode(c.Screening.Mode)
	if err != nil {
		return nil, fmt.Errorf("screening: %w", err)
	}
	ids := make([]detector.ID, 0, len(c.Screening.Detectors))
	for _, key := range c.Screening.Detectors {
		id, err := detector.Parse(strings.TrimSpace(key))
		if err != nil {
			return nil, fmt.Errorf("screening: %w", err)
		}
		ids = append(ids, id)
	}
	sc := &screener.Config{
		Detectors:  ids,
		Mode:       mode,
		MinMatches: c.Screening.MinMatches,
		Preset:     c.Screening.Preset,
		Params: detector.Params{
			MAPeriod:    c.Screening.MAPeriod,
			GoldenShort: c.Screening.GoldenShort,
			GoldenLong:  c.Screening.GoldenLong,
		},
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}
