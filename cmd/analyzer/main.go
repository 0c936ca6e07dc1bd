package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"StockSage/internal/collector"
	"StockSage/internal/config"
	"StockSage/internal/generator"
	"StockSage/internal/notifier"
	"StockSage/internal/pipeline"
	"StockSage/internal/recorder"
	"StockSage/internal/report"
	"StockSage/internal/scheduler"
	"StockSage/internal/scraper"
	"StockSage/internal/suggest"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	symbol := flag.String("symbol", "", "ticker symbol to analyze once and exit")
	cfgPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		*cfgPath = v
	}

	log.Println("[INFO] StockSage starting...")

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewMarketAPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.DataSource.Exchange, cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	col := collector.NewCollector(fetcher)

	scr := scraper.New(scraper.Config{
		FundamentalsURL: cfg.Scraper.FundamentalsURL,
		NewsURL:         cfg.Scraper.NewsURL,
		Exchange:        cfg.DataSource.Exchange,
		UserAgent:       cfg.Scraper.UserAgent,
		Proxy:           cfg.Proxy,
	})

	gen, err := generator.NewClient(generator.Config{
		APIKey:          cfg.GenAI.APIKey,
		Model:           cfg.GenAI.Model,
		BaseURL:         cfg.GenAI.BaseURL,
		RequestInterval: time.Duration(cfg.GenAI.RequestIntervalSec) * time.Second,
		RetryCooldown:   time.Duration(cfg.GenAI.RetryCooldownSec) * time.Second,
		Proxy:           cfg.Proxy,
	})
	if err != nil {
		log.Fatalf("[FATAL] init generation client: %v", err)
	}

	sink := report.NewFileSink(cfg.Reports.Dir)

	// Init recorder
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

	p := pipeline.New(col, scr, gen, sink, rec)

	if *symbol != "" {
		runOnce(p, cfg, *symbol)
		return
	}
	runWatch(p, cfg)
}

// runOnce analyzes a single symbol and exits.
func runOnce(p *pipeline.Pipeline, cfg *config.Config, symbol string) {
	if cfg.Suggestions.CSVPath != "" {
		list, err := suggest.Load(cfg.Suggestions.CSVPath)
		if err != nil {
			log.Printf("[WARN] load suggestions: %v", err)
		} else if !list.Valid(symbol) {
			log.Printf("[WARN] %s is not in the known symbol list, proceeding anyway", strings.ToUpper(symbol))
		}
	}

	res, err := p.Run(context.Background(), symbol, func(step, total int) {
		log.Printf("[INFO] progress: step %d/%d", step, total)
	})
	if err != nil {
		log.Fatalf("[FATAL] analysis failed: %v", err)
	}
	log.Printf("[INFO] %s: %s (score %+.3f), report at %s",
		res.Symbol, res.Signal.Recommendation, res.Signal.Score, res.ReportPath)
}

// runWatch runs the scheduled watchlist loop with Telegram notifications.
func runWatch(p *pipeline.Pipeline, cfg *config.Config) {
	if err := cfg.ValidateWatch(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tn := notifier.New(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	sched := scheduler.NewScheduler(ctx, p, tn, cfg.Schedule.Watchlist)
	if err := sched.Register(cfg.Schedule.WatchCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing watchlist task now")
		go sched.RunWatchlistNow()
	}

	log.Println("[INFO] StockSage is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockSage stopped")
}
