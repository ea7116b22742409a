package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lixing-Zhang/canteen/internal/cli"
	"github.com/Lixing-Zhang/canteen/internal/config"
	"github.com/Lixing-Zhang/canteen/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var env *cli.Env
	resolve := func(cmd *cobra.Command) (*cli.Env, error) {
		if env != nil {
			return env, nil
		}

		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}

		// Command output owns stdout; logs go to stderr
		log := logger.NewWithWriter(os.Stderr, cfg.LogLevel)
		slog.SetDefault(log)

		env, err = cli.NewEnv(cmd.Context(), cfg, log)
		return env, err
	}

	err := cli.NewRootCmd(resolve).ExecuteContext(ctx)
	if env != nil {
		if cerr := env.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
