package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GhostWriters/dotenv/cmd"
	"github.com/GhostWriters/dotenv/internal/config"
	"github.com/GhostWriters/dotenv/internal/logger"
	"github.com/GhostWriters/dotenv/internal/version"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	conf, confErr := config.LoadAppConfig()

	l, closeLog := logger.NewLogger(conf.LogFile())
	slog.SetDefault(l)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Recover from logger.FatalError so deferred cleanup still runs
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(logger.FatalError); ok {
				exitCode = 1
			} else {
				panic(r)
			}
		}
		if exitCode != 0 {
			fmt.Fprintf(os.Stderr, "%s did not finish running successfully.\n", version.ApplicationName)
		}
	}()

	if errors.Is(confErr, config.ErrNotSaved) {
		logger.Fatal(ctx, "Failed to create config file '%s': %v", conf.Path, confErr)
	}
	if confErr != nil {
		logger.Warn(ctx, "%v", confErr)
	}

	groups, err := cmd.Parse(os.Args[1:])
	if err != nil {
		logger.Error(ctx, err.Error())
		return 1
	}

	return cmd.Execute(ctx, conf, groups)
}
