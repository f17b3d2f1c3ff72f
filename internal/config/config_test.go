package config

import (
	"os"
	"path/filepath"
	"testing"

	"IDXScreener/internal/detector"
	"IDXScreener/internal/screener"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file must fall back to defaults, got %v", err)
	}
	if cfg.DataSource.Suffix != ".JK" {
		t.Errorf("default suffix = %q", cfg.DataSource.Suffix)
	}
	if cfg.Screening.Mode != "all" {
		t.Errorf("default mode = %q", cfg.Screening.Mode)
	}
	if cfg.Screening.Workers != 4 {
		t.Errorf("default workers = %d", cfg.Screening.Workers)
	}
	if cfg.Schedule.ScreenCron == "" {
		t.Error("default screen cron missing")
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
universe:
  symbols: [BBCA, TLKM]
data_source:
  suffix: ".NS"
screening:
  detectors: [rsi_oversold, volume_spike]
  mode: at_least_n
  min_matches: 1
  ma_period: 50
  workers: 8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataSource.Suffix != ".NS" {
		t.Errorf("suffix = %q", cfg.DataSource.Suffix)
	}
	if len(cfg.Universe.Symbols) != 2 {
		t.Errorf("symbols = %v", cfg.Universe.Symbols)
	}
	if cfg.Screening.Workers != 8 {
		t.Errorf("workers = %d", cfg.Screening.Workers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
universe:
  symbols: [BBCA]
screening:
  detectors: [rsi_oversold]
  mode: all
`)
	t.Setenv("SCREEN_MODE", "preset")
	t.Setenv("SCREEN_PRESET", "three-of-kind")
	t.Setenv("SYMBOLS", "TLKM,ASII")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Screening.Mode != "preset" || cfg.Screening.Preset != "three-of-kind" {
		t.Errorf("env override ignored: mode=%q preset=%q", cfg.Screening.Mode, cfg.Screening.Preset)
	}
	if len(cfg.Universe.Symbols) != 2 || cfg.Universe.Symbols[0] != "TLKM" {
		t.Errorf("SYMBOLS override ignored: %v", cfg.Universe.Symbols)
	}
}

func TestScreeningConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Screening.Detectors = []string{"rsi_oversold", " macd_bullish_cross "}
	cfg.Screening.Mode = "at_least_n"
	cfg.Screening.MinMatches = 1
	cfg.Screening.GoldenShort = 20
	cfg.Screening.GoldenLong = 100

	sc, err := cfg.ScreeningConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Mode != screener.ModeAtLeastN || sc.MinMatches != 1 {
		t.Errorf("mode translation wrong: %+v", sc)
	}
	if len(sc.Detectors) != 2 || sc.Detectors[1] != detector.MACDBullishCross {
		t.Errorf("detector keys not resolved: %v", sc.Detectors)
	}
	if sc.Params.GoldenLong != 100 {
		t.Errorf("params not carried: %+v", sc.Params)
	}
}

func TestScreeningConfig_Errors(t *testing.T) {
	cfg := &Config{}
	cfg.Screening.Mode = "all"
	cfg.Screening.Detectors = []string{"rsi_overbought"}
	if _, err := cfg.ScreeningConfig(); err == nil {
		t.Error("expected error for unknown detector key")
	}

	cfg.Screening.Detectors = nil
	if _, err := cfg.ScreeningConfig(); err == nil {
		t.Error("expected error for empty selection")
	}

	cfg.Screening.Detectors = []string{"rsi_oversold"}
	cfg.Screening.Mode = "sometimes"
	if _, err := cfg.ScreeningConfig(); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestValidateUniverseRequired(t *testing.T) {
	cfg := &Config{}
	cfg.Screening.Detectors = []string{"rsi_oversold"}
	cfg.Screening.Mode = "all"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when no universe source is configured")
	}
}
