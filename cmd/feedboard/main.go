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

	"github.com/umputun/feedboard/pkg/auth"
	"github.com/umputun/feedboard/pkg/config"
	"github.com/umputun/feedboard/pkg/domain"
	"github.com/umputun/feedboard/pkg/intake"
	"github.com/umputun/feedboard/pkg/llm"
	"github.com/umputun/feedboard/pkg/notify"
	"github.com/umputun/feedboard/pkg/repository"
	"github.com/umputun/feedboard/pkg/source"
	"github.com/umputun/feedboard/pkg/workflow"
	"github.com/umputun/feedboard/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"feedboard.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides server.listen"`

	// common options
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

	setupLog(opts.Debug, opts.NoColor)
	lgr.Printf("[INFO] starting feedboard version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	lgr.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until the server is stopped
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	setupLog(opts.Debug, opts.NoColor, cfg.LLM.APIKey, cfg.Auth.Password)

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

	completer, err := makeCompleter(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to create llm client: %w", err)
	}
	lgr.Printf("[INFO] analysis with %s model %s", cfg.LLM.Provider, cfg.LLM.Model)

	var notifier workflow.Notifier
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.Notify.WebhookURL, cfg.Notify.Timeout)
		lgr.Printf("[INFO] webhook notifications for %s urgency and above", cfg.Notify.MinUrgency)
	}

	engine := workflow.NewEngine(llm.NewAnalyzer(completer, cfg.LLM.MaxTokens), repos.Feedback, repos.Run, notifier, workflow.Config{
		MaxWorkers:       cfg.Workflow.MaxWorkers,
		QueueSize:        cfg.Workflow.QueueSize,
		MaxAttempts:      cfg.Workflow.MaxAttempts,
		RetryDelay:       cfg.Workflow.RetryDelay,
		MaxRetryDelay:    cfg.Workflow.MaxRetryDelay,
		NotifyMinUrgency: domain.Urgency(cfg.Notify.MinUrgency),
	})
	if err := engine.Start(ctx); err != nil {
		return fmt.Errorf("failed to start workflow engine: %w", err)
	}
	defer engine.Stop()

	in := intake.NewService(repos.Feedback, engine)

	importer := source.NewImporter(source.NewParser(cfg.Sources.Timeout, ""), repos.Feedback, in, cfg.Sources)
	if err := importer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start source importer: %w", err)
	}
	defer importer.Stop()

	guard := auth.NewGuard(auth.Credentials{
		Username:     cfg.Auth.Username,
		Password:     cfg.Auth.Password,
		PasswordHash: cfg.Auth.PasswordHash,
	}, makeSessionStore(cfg.Auth, repos), cfg.Auth.SessionTTL)

	srv := server.New(cfg, server.NewRepositoryAdapter(repos), in, engine, guard, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeCompleter creates the completion backend for the configured provider
func makeCompleter(ctx context.Context, cfg config.LLMConfig) (llm.Completer, error) {
	if cfg.Provider == config.ProviderGemini {
		genai, err := llm.NewGenAI(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return genai, nil
	}
	return llm.NewOpenAI(cfg), nil
}

// makeSessionStore picks the session store, db-backed sessions survive restarts
func makeSessionStore(cfg config.AuthConfig, repos *repository.Repositories) auth.SessionStore {
	if cfg.SessionStore == config.SessionStoreMemory {
		lgr.Print("[INFO] sessions kept in memory")
		return auth.NewMemoryStore(cfg.SessionTTL)
	}
	return auth.NewDBStore(repos.Session, cfg.SessionTTL)
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	secrets := make([]string, 0, len(secs))
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
