package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"IDXScreener/internal/model"
	"IDXScreener/internal/notifier"
	"IDXScreener/internal/recorder"
	"IDXScreener/internal/screener"
	"IDXScreener/internal/universe"
)

// Scheduler runs screening on a cron schedule and serves manual triggers.
type Scheduler struct {
	Cron     *cron.Cron
	Driver   *screener.Driver
	Source   universe.Source
	Config   *screener.Config
	Mode     string
	Notifier notifier.Notifier
	Recorder recorder.Recorder
	Ctx      context.Context

	mu      sync.Mutex
	running bool
	last    *model.Report
}

// NewScheduler creates a scheduler around an already-validated configuration.
func NewScheduler(ctx context.Context, drv *screener.Driver, src universe.Source, cfg *screener.Config, mode string, n notifier.Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Driver:   drv,
		Source:   src,
		Config:   cfg,
		Mode:     mode,
		Notifier: n,
		Recorder: rec,
		Ctx:      ctx,
	}
}

// Register installs the screening cron task.
func (s *Scheduler) Register(screenCron string) error {
	if _, err := s.Cron.AddFunc(screenCron, s.screenTask); err != nil {
		return fmt.Errorf("register screen task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScreenNow executes the screening task immediately (manual trigger).
func (s *Scheduler) RunScreenNow() {
	s.screenTask()
}

func (s *Scheduler) screenTask() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("[WARN] screening already in progress, skipping trigger")
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	log.Println("[INFO] running screening task")
	symbols, err := s.Source.Symbols(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] load symbols: %v", err)
		s.trySend(fmt.Sprintf("❌ Screening aborted, symbol list unavailable: %v", err))
		return
	}

	progress := func(done, total int, symbol string) {
		if done%25 == 0 || done == total {
			log.Printf("[INFO] screened %d/%d (%s)", done, total, symbol)
		}
	}
	report, err := s.Driver.Run(s.Ctx, symbols, s.Config, time.Now(), progress)
	if err != nil && report == nil {
		log.Printf("[ERROR] screening run: %v", err)
		s.trySend(fmt.Sprintf("❌ Screening aborted: %v", err))
		return
	}
	if err != nil {
		// Cancelled mid-run; the partial report is still worth keeping.
		log.Printf("[WARN] screening interrupted: %v", err)
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	names := s.detectorNames()
	if recErr := s.Recorder.RecordRun(&recorder.RunRecord{
		Mode:      s.Mode,
		Detectors: names,
		Report:    report,
	}); recErr != nil {
		log.Printf("[ERROR] record run: %v", recErr)
	}

	s.trySend(notifier.FormatScreenReport(report, s.Mode, names))
}

func (s *Scheduler) detectorNames() []string {
	ids := s.Config.Selected()
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Name()
	}
	return names
}

func (s *Scheduler) trySend(text string) {
	if tn, ok := s.Notifier.(*notifier.TelegramNotifier); ok {
		if err := tn.SendWithRetry(s.Ctx, text, 3); err != nil {
			log.Printf("[ERROR] send report: %v", err)
		}
		return
	}
	if err := s.Notifier.Send(text); err != nil {
		log.Printf("[ERROR] send report: %v", err)
	}
}

// HandleCommand dispatches Telegram commands.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch strings.ToLower(fields[0]) {
	case "/screen":
		go s.RunScreenNow()
		return "🔍 Screening started, report will follow."
	case "/status":
		s.mu.Lock()
		last := s.last
		s.mu.Unlock()
		return notifier.FormatRunStatus(last)
	case "/help":
		return "Commands:\n/screen - run the screen now\n/status - last run summary\n/help - this message"
	default:
		return ""
	}
}
