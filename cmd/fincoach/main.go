package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"fincoach/internal/charts"
	"fincoach/internal/cli"
	"fincoach/internal/coach"
	applog "fincoach/internal/log"
	"fincoach/internal/reports"
	"fincoach/internal/voice"
)

const (
	greeting = "Hello! I'm your finance coach. Let's chat about your finances!"
	farewell = "Goodbye! Keep tracking your financial goals!"
)

// exitWords end the session. Checked by this loop, never by the router.
var exitWords = map[string]bool{
	"exit": true,
	"quit": true,
	"bye":  true,
	"stop": true,
}

func main() {
	logger := cli.SetupLogger(slog.LevelInfo)
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	if level, err := cfg.SlogLevel(); err == nil && level != slog.LevelInfo {
		logger = cli.SetupLogger(level)
	}

	ctx := context.Background()

	repo := cli.InitLedger(ctx, logger, cfg.DBPath)
	defer repo.Close()

	visualizer := charts.NewVisualizer(repo, cfg.ReportsDir)
	reporter := reports.NewReporter(repo, cfg.ReportsDir)
	router := coach.New(repo, visualizer, reporter, logger)
	channel := voice.NewConsole(os.Stdin, os.Stdout)

	logger.Info("Finance coach ready",
		applog.FieldPath, cfg.DBPath,
		"reports_dir", cfg.ReportsDir)

	channel.Speak(greeting)

	for {
		utterance, err := channel.Listen()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Error("Utterance channel failed", applog.FieldError, err)
				os.Exit(1)
			}
			break
		}
		if utterance == "" {
			continue
		}
		if exitWords[utterance] {
			break
		}

		response, err := router.Route(ctx, utterance)
		if err != nil {
			// Only storage faults reach here; without a working ledger
			// there is nothing left to do.
			logger.Error("Ledger store failed", applog.FieldError, err, applog.FieldUtterance, utterance)
			os.Exit(1)
		}
		channel.Speak(response)
	}

	channel.Speak(farewell)
}
