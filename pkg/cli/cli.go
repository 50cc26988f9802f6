package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kubesnap/kubesnap/pkg/version"
)

// New builds the kubesnap root command.
func New() *cli.Command {
	return &cli.Command{
		Name:                  "kubesnap",
		Usage:                 "Collect a diagnostic snapshot of a Kubernetes namespace",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Output logs in JSON format",
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			snapshotCmd(),
		},
	}
}

// setupLogging configures the process-wide slog handler from the global
// flags before any command runs.
func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := slog.LevelInfo
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cmd.Bool("log-json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return ctx, nil
}
