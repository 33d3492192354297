package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/eventscope/pkg/categorizer"
	"github.com/umputun/eventscope/pkg/config"
	"github.com/umputun/eventscope/pkg/domain"
	"github.com/umputun/eventscope/pkg/fetcher"
	"github.com/umputun/eventscope/pkg/ingest"
	"github.com/umputun/eventscope/pkg/llm"
	"github.com/umputun/eventscope/pkg/metrics"
	"github.com/umputun/eventscope/pkg/repository"
	"github.com/umputun/eventscope/pkg/scheduler"
	"github.com/umputun/eventscope/pkg/service"
	"github.com/umputun/eventscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DB     string `long:"db" env:"DB" description:"database DSN, overrides config"`
	Once   bool   `long:"once" description:"run one scheduler pass and exit"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)
	lgr.Printf("[INFO] starting eventscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	lgr.Printf("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled, or until one pass is done with --once
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.LLM.APIKey != "" {
		setupLog(opts.Debug, cfg.LLM.APIKey)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	svc := service.New(repos)
	recorder, err := metrics.New(nil)
	if err != nil {
		return fmt.Errorf("failed to setup metrics: %w", err)
	}

	pipeline := ingest.New(ingest.Params{
		Fetcher: fetcher.NewHTTPFetcher(fetcher.Params{
			Timeout:     cfg.Fetcher.Timeout,
			UserAgent:   cfg.Fetcher.UserAgent,
			MaxBodySize: cfg.Fetcher.MaxBodySize,
			Location:    cfg.Location(),
		}),
		Sources:         svc,
		Queue:           svc,
		Categorizer:     categorizer.Default(),
		Fallback:        fallbackCategorizer(cfg.LLM),
		Leases:          svc,
		Recorder:        recorder,
		ErrorThreshold:  cfg.Ingest.ErrorThreshold,
		LeaseTTL:        cfg.Ingest.LeaseTTL,
		DefaultCategory: domain.Category(cfg.Ingest.DefaultCategory),
	})

	sched := scheduler.NewScheduler(scheduler.Params{
		Sources:          svc,
		Scraper:          pipeline,
		Granter:          svc,
		CheckInterval:    cfg.Scheduler.CheckInterval,
		RescrapeInterval: cfg.Scheduler.RescrapeInterval,
		PolitenessDelay:  cfg.Scheduler.PolitenessDelay,
		StartupDelay:     cfg.Scheduler.StartupDelay,
		MonthlyCredits:   cfg.Scheduler.MonthlyCredits,
		Now:              clock(cfg.Location()),
	})

	if opts.Once {
		sum := sched.RunOnce(ctx)
		lgr.Printf("[INFO] single pass done: %d sources, %d new events, %d failed", sum.Sources, sum.NewEvents, sum.Failed)
		return nil
	}

	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Params{
		Config:  cfg,
		Sources: svc,
		Pending: svc,
		Scraper: pipeline,
		Metrics: recorder.Handler(),
		Version: revision,
		Debug:   opts.Debug,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file if set, applies defaults and CLI overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := &config.Config{}
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	cfg.SetDefaults()
	return cfg, nil
}

// fallbackCategorizer returns the LLM classifier if enabled, nil otherwise
func fallbackCategorizer(cfg config.LLMConfig) ingest.FallbackCategorizer {
	if !cfg.Enabled {
		return nil
	}
	lgr.Printf("[INFO] llm fallback categorization enabled, model %s", cfg.Model)
	return llm.NewClassifier(cfg)
}

// clock returns the current time in loc, the monthly grant rolls over on the calendar month of loc
func clock(loc *time.Location) func() time.Time {
	return func() time.Time { return time.Now().In(loc) }
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
