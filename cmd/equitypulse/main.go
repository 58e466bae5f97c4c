package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"EquityPulse/internal/collector"
	"EquityPulse/internal/config"
	"EquityPulse/internal/news"
	"EquityPulse/internal/pipeline"
	"EquityPulse/internal/recorder"
	"EquityPulse/internal/scheduler"
)

var version = "dev"

var (
	configPath string
	tickers    []string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "equitypulse",
	Short:   "Price, RSI, and news headline dataset builder",
	Long:    "EquityPulse fetches daily price history and news headlines for a ticker, computes RSI, and aligns headlines to price dates with a tolerance-bounded nearest-date merge.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		if cmd.Name() == "version" {
			return nil
		}

		path := configPath
		if path == "" {
			path = "configs/config.yaml"
			if v := os.Getenv("CONFIG_PATH"); v != "" {
				path = v
			}
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if len(tickers) > 0 {
			cfg.Tickers = tickers
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringSliceVarP(&tickers, "ticker", "t", nil, "Ticker(s) to build, overrides config")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("equitypulse", version)
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the dataset for every configured ticker once",
	RunE: func(_ *cobra.Command, _ []string) error {
		sched, cleanup, err := newScheduler()
		if err != nil {
			return err
		}
		defer cleanup()
		sched.RunNow()
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild datasets on the configured cron schedule until interrupted",
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.Schedule.Cron == "" {
			return fmt.Errorf("schedule.cron is required for watch mode")
		}

		sched, cleanup, err := newScheduler()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := sched.Register(cfg.Schedule.Cron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, building now")
			go sched.RunNow()
		}

		log.Printf("[INFO] EquityPulse watching %s. Press Ctrl+C to stop.", strings.Join(cfg.Tickers, ", "))
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")
		return nil
	},
}

// newScheduler wires fetcher, news provider, pipeline, and recorder from the
// loaded config.
func newScheduler() (*scheduler.Scheduler, func(), error) {
	var fetcher collector.Fetcher
	if cfg.PriceSource.BaseURL != "" {
		fetcher = collector.NewRestFetcher(cfg.PriceSource.BaseURL, cfg.PriceSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] price source: %s", fetcher.Name())

	var provider news.Provider
	switch cfg.News.Source {
	case "finnhub":
		provider = news.NewFinnhubProvider(cfg.News.FinnhubAPIKey, "", cfg.Proxy)
	case "yahoo":
		provider = news.NewYahooScraper(cfg.Proxy, cfg.News.MaxArticles)
	case "none":
		provider = nil
	}
	if provider != nil {
		log.Printf("[INFO] news source: %s", provider.Name())
	} else {
		log.Println("[WARN] no news source configured, datasets will have no headlines")
	}

	builder := pipeline.NewBuilder(fetcher, provider, cfg.RSIPeriod, cfg.ToleranceDays)

	var rec recorder.Recorder
	cleanup := func() {}
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			cleanup = func() { sr.Close() }
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	sched := scheduler.NewScheduler(builder, rec, cfg.Tickers, cfg.LookbackDays, cfg.Output.Dir, cfg.StateFile)
	return sched, cleanup, nil
}
