package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/akarasev/daytales/pkg/builder"
	"github.com/akarasev/daytales/pkg/config"
	"github.com/akarasev/daytales/pkg/curator"
	"github.com/akarasev/daytales/pkg/feed"
	"github.com/akarasev/daytales/pkg/platform"
	"github.com/akarasev/daytales/pkg/repository"
	"github.com/akarasev/daytales/pkg/scheduler"
	"github.com/akarasev/daytales/pkg/tts"
	"github.com/akarasev/daytales/server"
)

// Opts with all CLI options
type Opts struct {
	Config  string `short:"f" long:"config" env:"CONFIG" description:"config file path"`
	Listen  string `short:"l" long:"listen" env:"LISTEN" description:"listen address override"`
	Offline bool   `long:"offline" env:"OFFLINE" description:"force offline mode, no external calls"`

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
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.Offline {
		cfg.OfflineMode = true
	}

	setupLog(opts.Debug, cfg.LLM.APIKey, cfg.TTS.APIKey)
	log.Printf("[INFO] starting daytales version %s, offline=%v", revision, cfg.OfflineMode)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init repositories: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	feedClient := feed.NewClient(feed.Config{
		Endpoint:  cfg.Feed.Endpoint,
		UserAgent: cfg.Feed.UserAgent,
		Timeout:   cfg.Feed.Timeout,
		Offline:   cfg.OfflineMode,
	})

	bld := builder.New(builder.Params{
		Feed:       feedClient,
		Curator:    curator.New(cfg.LLM),
		TTS:        tts.NewClient(cfg.TTS),
		Platform:   platform.NewClient(cfg.Platform),
		Tokens:     platform.NewTokenManager(cfg.Platform, repos.User),
		Cache:      repos.Cache,
		Tracks:     repos.Track,
		Builds:     repos.Build,
		Users:      repos.User,
		MaxStories: cfg.Schedule.MaxStories,
		Offline:    cfg.OfflineMode,
	})

	sched := scheduler.NewScheduler(scheduler.Params{
		Builder:    bld,
		Users:      repos.User,
		Interval:   cfg.Schedule.BuildInterval,
		MaxWorkers: cfg.Schedule.MaxWorkers,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, sched, repos.Build, repos.User, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
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

	var filtered []string
	for _, s := range secs {
		if s != "" {
			filtered = append(filtered, s)
		}
	}
	if len(filtered) > 0 {
		logOpts = append(logOpts, lgr.Secret(filtered...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
