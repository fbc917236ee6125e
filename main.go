package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/tictactoe-rooms/internal"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/logger"
)

// main - is the entry point of the application. It loads .env, parses flags and runs the server.
func main() {
	loadDotEnv()

	cmd := &cli.Command{
		Name:  "tictactoe-rooms",
		Usage: "tic-tac-toe server with a lobby of concurrent rooms",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yml",
				Usage:   "path to the config file; environment only when it does not exist",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "overrides log-level of the config (debug, info, warn, error)",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "app run failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if level := cmd.String("log-level"); level != "" {
		conf.LogLevel = level
	}

	log := logger.New(logger.Config{
		Level:   conf.LogLevel,
		Backend: logger.Backend(conf.LogBackend),
	})

	return app.RunApp(ctx, log, conf)
}

// loadDotEnv - a missing .env file is not an error.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: error loading .env file: %v\n", err)
	}
}
