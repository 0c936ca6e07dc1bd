package pipeline

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"StockSage/internal/collector"
	"StockSage/internal/generator"
	"StockSage/internal/model"
	"StockSage/internal/recorder"
	"StockSage/internal/report"
	"StockSage/internal/strategy"
)

const totalSteps = 3

// ProgressFunc reports pipeline progress after each completed step. It is a
// UI affordance only; a nil callback is fine.
type ProgressFunc func(step, total int)

// Generator produces a narrative report from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// FundamentalsSource supplies scraped company attributes and news.
type FundamentalsSource interface {
	FetchFundamentals(ctx context.Context, symbol string) (*model.Fundamentals, error)
}

// Pipeline sequences one full analysis: fetch and score the price series,
// scrape fundamentals, generate the narrative report, persist it. Each step
// gates on the previous one succeeding; a failed run leaves no partial
// artifacts.
type Pipeline struct {
	Collector *collector.Collector
	Scraper   FundamentalsSource
	Generator Generator
	Sink      report.Sink
	Recorder  recorder.Recorder
}

// New creates a Pipeline.
func New(col *collector.Collector, scr FundamentalsSource, gen Generator, sink report.Sink, rec recorder.Recorder) *Pipeline {
	return &Pipeline{Collector: col, Scraper: scr, Generator: gen, Sink: sink, Recorder: rec}
}

// Result summarizes a finished run.
type Result struct {
	RunID      string
	Symbol     string
	Signal     *model.TechSignal
	ReportPath string
}

// Run executes the full analysis for one symbol.
func (p *Pipeline) Run(ctx context.Context, symbol string, progress ProgressFunc) (*Result, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	runID := uuid.NewString()
	started := time.Now()
	log.Printf("[INFO] run %s: analyzing %s", runID, symbol)

	_, ind, err := p.Collector.Collect(symbol)
	if err != nil {
		ferr := &FetchError{Err: err}
		p.record(runID, symbol, started, nil, StatusFetchError, "", ferr.Error())
		log.Printf("[ERROR] run %s: %v", runID, ferr)
		return nil, ferr
	}
	sig := strategy.Evaluate(ind)
	log.Printf("[INFO] run %s: technical recommendation %s (score %+.3f)", runID, sig.Recommendation, sig.Score)

	fund, err := p.Scraper.FetchFundamentals(ctx, symbol)
	if err != nil {
		ferr := &FetchError{Err: err}
		p.record(runID, symbol, started, sig, StatusFetchError, "", ferr.Error())
		log.Printf("[ERROR] run %s: %v", runID, ferr)
		return nil, ferr
	}
	step(progress, 1)

	prompt := generator.BuildPrompt(fund, sig, ind)
	text, err := p.Generator.Generate(ctx, prompt)
	if err != nil {
		p.record(runID, symbol, started, sig, StatusGenerationError, "", err.Error())
		log.Printf("[ERROR] run %s: %v", runID, err)
		return nil, err
	}
	step(progress, 2)

	path, err := p.Sink.Write(symbol, text)
	if err != nil {
		perr := &PersistenceError{Err: err}
		p.record(runID, symbol, started, sig, StatusPersistError, "", perr.Error())
		log.Printf("[ERROR] run %s: %v", runID, perr)
		return nil, perr
	}
	step(progress, 3)

	p.record(runID, symbol, started, sig, StatusOK, path, "")
	log.Printf("[INFO] run %s: report written to %s", runID, path)
	return &Result{RunID: runID, Symbol: symbol, Signal: sig, ReportPath: path}, nil
}

func step(progress ProgressFunc, n int) {
	if progress != nil {
		progress(n, totalSteps)
	}
}

func (p *Pipeline) record(runID, symbol string, started time.Time, sig *model.TechSignal, status, path, errMsg string) {
	rec := &recorder.RunRecord{
		RunID:      runID,
		Symbol:     symbol,
		Status:     status,
		ReportPath: path,
		Duration:   time.Since(started),
		ErrorMsg:   errMsg,
	}
	if sig != nil {
		rec.Score = sig.Score
		rec.Recommendation = string(sig.Recommendation)
		if len(sig.Votes) == 5 {
			rec.VoteSMA = sig.Votes[0].Weighted
			rec.VoteRSI = sig.Votes[1].Weighted
			rec.VoteMACD = sig.Votes[2].Weighted
			rec.VoteBB = sig.Votes[3].Weighted
			rec.VoteEMA = sig.Votes[4].Weighted
		}
	}
	if err := p.Recorder.RecordRun(rec); err != nil {
		log.Printf("[ERROR] record run %s: %v", runID, err)
	}
}
