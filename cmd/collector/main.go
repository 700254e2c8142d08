package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ikenox/ftx-history-collector/internal/api"
	"github.com/ikenox/ftx-history-collector/internal/auth"
	"github.com/ikenox/ftx-history-collector/internal/collector"
	"github.com/ikenox/ftx-history-collector/internal/config"
	"github.com/ikenox/ftx-history-collector/internal/fills"
	"github.com/ikenox/ftx-history-collector/internal/version"
	"github.com/ikenox/ftx-history-collector/internal/writer"
)

func main() {
	credPath := flag.String("credential", "", "path to the FTX credential JSON file")
	outDir := flag.String("outdir", "", "output directory for CSV files")
	subAccount := flag.String("sub-account", "", "sub-account name (default: main account)")
	startDate := flag.String("start", "", "inclusive start date, yyyy-MM-dd")
	endDate := flag.String("end", "", "exclusive end date, yyyy-MM-dd (default: now)")
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Parse()

	// Pick up a local .env before config expansion, if present.
	_ = godotenv.Load()

	// Bootstrap logger; replaced once the configured level is known.
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.Log.Level),
	})).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	// Flags override config file values.
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *subAccount != "" {
		cfg.API.SubAccount = *subAccount
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	// Resolve run bounds before any network activity.
	var start time.Time
	if *startDate != "" {
		start, err = parseDate(*startDate, loc)
		if err != nil {
			logger.Error("invalid -start date", "error", err)
			os.Exit(1)
		}
	}
	end := time.Now().In(loc)
	if *endDate != "" {
		end, err = parseDate(*endDate, loc)
		if err != nil {
			logger.Error("invalid -end date", "error", err)
			os.Exit(1)
		}
	}
	if *startDate != "" && *endDate != "" && !start.Before(end) {
		logger.Error("end date must be greater than start date", "start", *startDate, "end", *endDate)
		os.Exit(1)
	}

	if *credPath == "" {
		logger.Error("missing required flag -credential")
		os.Exit(1)
	}
	creds, err := auth.LoadCredentials(*credPath)
	if err != nil {
		logger.Error("failed to load credentials", "error", err)
		os.Exit(1)
	}

	logger.Info("starting fill collection",
		"version", version.String(),
		"outdir", cfg.Output.Dir,
		"sub_account", accountName(cfg.API.SubAccount),
		"timezone", cfg.Output.Timezone,
		"start", *startDate,
		"end", end.Format(time.RFC3339),
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	apiClient := api.NewClient(
		cfg.API.BaseURL,
		creds,
		api.WithTimeout(cfg.API.Timeout),
		api.WithSubAccount(cfg.API.SubAccount),
		api.WithLogger(logger),
	)

	// Fail fast on bad credentials before paginating.
	account, err := apiClient.GetAccount(ctx)
	if err != nil {
		logger.Error("failed to verify credentials", "error", err)
		os.Exit(1)
	}
	logger.Info("authenticated", "username", account.Username)

	cursor, err := fills.New(apiClient, start, end, logger)
	if err != nil {
		logger.Error("invalid date range", "error", err)
		os.Exit(1)
	}

	w := writer.NewPartitioned(
		writer.NewCSVFactory(cfg.Output.Dir, cfg.API.SubAccount),
		loc,
		logger,
	)

	if err := collector.New(cursor, w, logger).Run(ctx); err != nil {
		logger.Error("collection failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.CollectorConfig, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadAndValidate(path)
}

// parseDate interprets a yyyy-MM-dd date as midnight in loc.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, s, loc)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func accountName(sub string) string {
	if sub == "" {
		return writer.DefaultAccountName
	}
	return sub
}
