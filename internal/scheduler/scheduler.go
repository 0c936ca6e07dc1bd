package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"StockSage/internal/pipeline"
)

// Sender delivers run notices to the configured chat.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the analysis pipeline for a watchlist on a cron schedule
// and serves Telegram commands for on-demand runs.
type Scheduler struct {
	Cron      *cron.Cron
	Pipeline  *pipeline.Pipeline
	Notifier  Sender
	Watchlist []string
	Ctx       context.Context

	// runMu serializes analyses: the generation client enforces its pacing
	// and retry cadence only across serialized calls.
	runMu sync.Mutex
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p *pipeline.Pipeline, tn Sender, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Pipeline:  p,
		Notifier:  tn,
		Watchlist: watchlist,
		Ctx:       ctx,
	}
}

// Register registers the watchlist task.
func (s *Scheduler) Register(watchCron string) error {
	if _, err := s.Cron.AddFunc(watchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watchlist task: %w", err)
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

// RunWatchlistNow executes the watchlist task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunWatchlistNow() {
	s.watchTask()
}

func (s *Scheduler) watchTask() {
	log.Printf("[INFO] running watchlist analysis for %d symbols", len(s.Watchlist))
	for _, symbol := range s.Watchlist {
		s.analyzeAndNotify(symbol)
	}
}

func (s *Scheduler) analyzeAndNotify(symbol string) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	res, err := s.Pipeline.Run(s.Ctx, symbol, nil)
	if err != nil {
		s.trySend(fmt.Sprintf("❌ <b>%s</b> analysis failed: %v", strings.ToUpper(symbol), err))
		return
	}
	s.trySend(fmt.Sprintf("✅ <b>%s</b>: %s (score %+.3f)\nReport: %s",
		res.Symbol, res.Signal.Recommendation, res.Signal.Score, res.ReportPath))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL"
		}
		go s.analyzeAndNotify(fields[1])
		return fmt.Sprintf("Analyzing %s...", strings.ToUpper(fields[1]))
	case "/watchlist":
		go s.watchTask()
		return fmt.Sprintf("Analyzing %d watchlist symbols...", len(s.Watchlist))
	case "/status":
		return s.statusReply()
	default:
		return "Available commands:\n• /analyze SYMBOL\n• /watchlist\n• /status"
	}
}

func (s *Scheduler) statusReply() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Watching %d symbols: %s\n", len(s.Watchlist), strings.Join(s.Watchlist, ", ")))
	for _, e := range s.Cron.Entries() {
		b.WriteString(fmt.Sprintf("Next scheduled run: %s\n", e.Next.Format("2006-01-02 15:04:05")))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
