package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"

	"github.com/kubesnap/kubesnap/pkg/config"
	"github.com/kubesnap/kubesnap/pkg/kube"
	"github.com/kubesnap/kubesnap/pkg/snapshotter"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Capture resource listings, descriptions, logs, and events for a namespace",
		Description: `Captures a diagnostic snapshot of the target namespace into a timestamped
directory tree. Pods, StatefulSets, Deployments, Secrets, Jobs, ConfigMaps,
and Services are always collected; additional custom resource kinds can be
requested with --custom-resources. Unknown kinds are skipped with a warning.

# Examples

Snapshot a namespace:
  kubesnap snapshot --namespace demo

Include custom resource kinds and archive the result:
  kubesnap snapshot -n demo --custom-resources widgets,gadgets --zip

Bound the collection fan-out and throttle API calls:
  kubesnap snapshot -n demo --concurrency 16 --api-qps 50`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "Target namespace to snapshot (required unless set in --config file)",
			},
			&cli.StringFlag{
				Name:    "custom-resources",
				Aliases: []string{"r"},
				Usage:   "Comma-separated custom resource kind names to collect in addition to the built-in set",
			},
			&cli.BoolFlag{
				Name:    "zip",
				Aliases: []string{"z"},
				Usage:   "Archive the output tree into <namespace>_<timestamp>.zip after collection",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Parent directory for the output tree (default: current directory)",
			},
			&cli.StringFlag{
				Name:  "kubeconfig",
				Usage: "Path to kubeconfig file (default: KUBECONFIG, then ~/.kube/config, then in-cluster)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file; individual flags override file values",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Bound on concurrent per-instance fetches per phase (0 = unbounded)",
			},
			&cli.FloatFlag{
				Name:  "api-qps",
				Usage: "Client-side limit on API calls per second (0 = unlimited)",
			},
			&cli.IntFlag{
				Name:  "tail",
				Usage: "Capture only the last N lines of each container log (0 = everything)",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address for the duration of the run (e.g. :9090)",
			},
		},
		Action: runSnapshot,
	}
}

func runSnapshot(ctx context.Context, cmd *cli.Command) error {
	var file config.File
	if path := cmd.String("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		file = *loaded
	}

	run, err := config.New(file, config.Run{
		Namespace:   cmd.String("namespace"),
		CustomKinds: config.ParseKindList(cmd.String("custom-resources")),
		Zip:         cmd.Bool("zip"),
		OutputDir:   cmd.String("output"),
		Kubeconfig:  cmd.String("kubeconfig"),
		TailLines:   int64(cmd.Int("tail")),
		Concurrency: int(cmd.Int("concurrency")),
		APIQPS:      cmd.Float("api-qps"),
	})
	if err != nil {
		return err
	}

	if addr := cmd.String("metrics-addr"); addr != "" {
		serveMetrics(addr)
	}

	adapter, err := kube.NewClient(run.Kubeconfig, run.APIQPS)
	if err != nil {
		return fmt.Errorf("failed to connect to cluster: %w", err)
	}

	snap := &snapshotter.NamespaceSnapshotter{Adapter: adapter, Run: run}
	if _, _, err := snap.Snapshot(ctx); err != nil {
		return err
	}
	return nil
}

// serveMetrics exposes the run's Prometheus metrics for scraping while the
// collection is in flight. The listener dies with the process.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Warn("metrics listener failed", slog.String("addr", addr), slog.String("error", err.Error()))
		}
	}()
}
