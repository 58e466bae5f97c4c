package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"EquityPulse/internal/pipeline"
	"EquityPulse/internal/recorder"
	"EquityPulse/internal/renderer"
	"EquityPulse/internal/state"
)

// Scheduler rebuilds the dataset for every configured ticker on a cron
// schedule.
type Scheduler struct {
	Cron         *cron.Cron
	Builder      *pipeline.Builder
	Recorder     recorder.Recorder
	Tickers      []string
	LookbackDays int
	OutputDir    string
	StateFile    string
}

// NewScheduler creates a new Scheduler.
func NewScheduler(b *pipeline.Builder, rec recorder.Recorder, tickers []string, lookbackDays int, outputDir, stateFile string) *Scheduler {
	return &Scheduler{
		Cron:         cron.New(cron.WithSeconds()),
		Builder:      b,
		Recorder:     rec,
		Tickers:      tickers,
		LookbackDays: lookbackDays,
		OutputDir:    outputDir,
		StateFile:    stateFile,
	}
}

// Register registers the rebuild task under the given cron spec.
func (s *Scheduler) Register(cronSpec string) error {
	if _, err := s.Cron.AddFunc(cronSpec, s.rebuildTask); err != nil {
		return fmt.Errorf("register rebuild task: %w", err)
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

// RunNow executes the rebuild task immediately (for manual trigger / one-shot
// builds).
func (s *Scheduler) RunNow() {
	s.rebuildTask()
}

// rebuildTask builds every configured ticker. One ticker failing never stops
// the rest.
func (s *Scheduler) rebuildTask() {
	log.Printf("[INFO] rebuilding datasets for %d ticker(s)", len(s.Tickers))

	st, err := state.Load(s.StateFile)
	if err != nil {
		log.Printf("[WARN] load run state: %v, starting from zero state", err)
		st = &state.RunState{}
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -s.LookbackDays)

	for _, ticker := range s.Tickers {
		ds, err := s.Builder.Build(ticker, start, end)
		if err != nil {
			log.Printf("[ERROR] build %s: %v", ticker, err)
			continue
		}

		if err := s.Recorder.RecordBuild(ds); err != nil {
			log.Printf("[ERROR] record %s: %v", ticker, err)
		}
		if path, err := renderer.WriteCSV(s.OutputDir, ds); err != nil {
			log.Printf("[ERROR] write csv for %s: %v", ticker, err)
		} else {
			log.Printf("[INFO] wrote %s", path)
		}

		log.Print(renderer.FormatBuildReport(ds))
		st.Mark(ticker, len(ds.Rows), ds.ArticleCount, ds.DroppedArticles)
	}

	if err := state.Save(s.StateFile, st); err != nil {
		log.Printf("[ERROR] save run state: %v", err)
	}
}
