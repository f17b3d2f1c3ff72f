package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"IDXScreener/internal/collector"
	"IDXScreener/internal/config"
	"IDXScreener/internal/notifier"
	"IDXScreener/internal/recorder"
	"IDXScreener/internal/scheduler"
	"IDXScreener/internal/screener"
	"IDXScreener/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] IDXScreener starting...")

	// Local .env is optional; real deployments use the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	screenCfg, err := cfg.ScreeningConfig()
	if err != nil {
		log.Fatalf("[FATAL] screening config: %v", err)
	}

	// Symbol universe
	var src universe.Source
	switch {
	case cfg.Universe.SheetURL != "":
		src = universe.NewSheetSource(cfg.Universe.SheetURL, cfg.Proxy)
	case cfg.Universe.File != "":
		src = &universe.FileSource{Path: cfg.Universe.File}
	default:
		src = &universe.StaticSource{List: cfg.Universe.Symbols}
	}
	log.Printf("[INFO] symbol source: %s", src.Name())

	// Bar source and driver
	fetcher := collector.NewYahooFetcher(cfg.DataSource.Suffix, cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	drv := screener.NewDriver(fetcher)
	drv.Workers = cfg.Screening.Workers

	// Report sink
	var sink notifier.Notifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		sink = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	} else {
		log.Println("[INFO] telegram not configured, reports go to the log")
		sink = notifier.LogNotifier{}
	}

	// Run recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, drv, src, screenCfg, cfg.Screening.Mode, sink, rec)

	// One-shot mode: screen once and exit.
	if os.Getenv("RUN_ONCE") == "true" {
		sched.RunScreenNow()
		return
	}

	if err := sched.Register(cfg.Schedule.ScreenCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn, ok := sink.(*notifier.TelegramNotifier); ok {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("SCREEN_ON_START") == "true" {
		log.Println("[INFO] SCREEN_ON_START enabled, executing screening now")
		go sched.RunScreenNow()
	}

	log.Println("[INFO] IDXScreener is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] IDXScreener stopped")
}
