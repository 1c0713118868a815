package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/devries/synacor/internal/logging"
	"github.com/devries/synacor/internal/settings"
	"github.com/devries/synacor/search"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	exitFound     = 0
	exitNotFound  = 1
	exitBadConfig = 2
	exitAborted   = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := settings.Flags("teleporter")
	cfg, err := settings.Load(flags, args)
	if errors.Is(err, pflag.ErrHelp) {
		return exitFound
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "teleporter: %s\n", err)
		return exitBadConfig
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "teleporter: %s\n", err)
		return exitBadConfig
	}
	defer logger.Sync()

	s, err := search.New(cfg.Search, logger)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return exitBadConfig
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := s.Run(ctx)
	if err != nil {
		logger.Error("search aborted", zap.Error(err))
		return exitAborted
	}
	return report(os.Stdout, os.Stderr, out, cfg.Search)
}

func report(stdout, stderr io.Writer, out search.Outcome, cfg search.Config) int {
	if out.Status == search.Found {
		fmt.Fprintf(stdout, "Correct Value: %d\n", out.K)
		return exitFound
	}
	fmt.Fprintf(stderr, "teleporter: no k in [%d, %d] produces %d\n", cfg.KMin, cfg.KMax, cfg.Target)
	return exitNotFound
}
