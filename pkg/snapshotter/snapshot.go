// Package snapshotter orchestrates a full namespace snapshot: the pod phase,
// the concurrent built-in kind and event phases, custom kinds, the log error
// scan, the summary report, and optional archival.
package snapshotter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kubesnap/kubesnap/pkg/archive"
	"github.com/kubesnap/kubesnap/pkg/collector"
	"github.com/kubesnap/kubesnap/pkg/config"
	"github.com/kubesnap/kubesnap/pkg/kube"
	"github.com/kubesnap/kubesnap/pkg/layout"
	"github.com/kubesnap/kubesnap/pkg/logscan"
	"github.com/kubesnap/kubesnap/pkg/summary"
)

// NamespaceSnapshotter collects a diagnostic snapshot of one namespace into
// a timestamped output tree.
type NamespaceSnapshotter struct {
	Adapter kube.Adapter
	Run     config.Run
}

// Snapshot runs the full collection. Per-resource failures degrade to
// placeholder files and zero counts; only output-tree setup and summary
// writing are fatal. The returned counts mirror summary.txt exactly.
func (s *NamespaceSnapshotter) Snapshot(ctx context.Context) (*summary.Counts, *layout.Tree, error) {
	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	tree := layout.New(s.Run.OutputDir, s.Run.Namespace, s.Run.Started)
	if err := tree.Create(); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return nil, nil, err
	}

	slog.Info("starting namespace snapshot",
		slog.String("namespace", s.Run.Namespace),
		slog.String("output", tree.Root),
		slog.String("run_id", s.Run.RunID),
	)

	col := &collector.Collector{
		Adapter:   s.Adapter,
		Tree:      tree,
		Limit:     s.Run.Concurrency,
		TailLines: s.Run.TailLines,
	}

	// Pods run first: container log extraction depends on pod metadata.
	phaseStart := time.Now()
	pods := col.CollectPods(ctx, s.Run.Namespace)
	snapshotPhaseDuration.WithLabelValues("pods").Observe(time.Since(phaseStart).Seconds())
	slog.Debug("pod phase complete", slog.Int("pods", pods.Found), slog.Int("logs", len(pods.Logs)))

	// The remaining built-in kinds run concurrently with each other and with
	// the events exporter; the Wait below is the phase barrier.
	var mu sync.Mutex
	kinds := make([]collector.KindResult, 0, len(kube.BuiltinKinds()))
	var events int

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kube.BuiltinKinds() {
		g.Go(func() error {
			phaseStart := time.Now()
			kr := col.CollectKind(gctx, s.Run.Namespace, kind)
			snapshotPhaseDuration.WithLabelValues("kinds").Observe(time.Since(phaseStart).Seconds())
			mu.Lock()
			kinds = append(kinds, kr)
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		phaseStart := time.Now()
		n := col.CollectEvents(gctx, s.Run.Namespace)
		snapshotPhaseDuration.WithLabelValues("events").Observe(time.Since(phaseStart).Seconds())
		mu.Lock()
		events = n
		mu.Unlock()
		return nil
	})
	if err := g.Wait(); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return nil, nil, err
	}
	orderKinds(kinds)

	phaseStart = time.Now()
	custom := col.CollectCustomKinds(ctx, s.Run.Namespace, s.Run.CustomKinds)
	snapshotPhaseDuration.WithLabelValues("custom").Observe(time.Since(phaseStart).Seconds())

	// The scanner runs strictly after every log fetch has completed.
	phaseStart = time.Now()
	scanner := &logscan.Scanner{Tree: tree}
	errorPairs, err := scanner.Scan(pods.Logs)
	snapshotPhaseDuration.WithLabelValues("logscan").Observe(time.Since(phaseStart).Seconds())
	if err != nil {
		slog.Warn("error report incomplete", slog.String("error", err.Error()))
	}

	counts := &summary.Counts{
		RunID:      s.Run.RunID,
		Namespace:  s.Run.Namespace,
		Started:    s.Run.Started,
		Pods:       pods,
		Kinds:      kinds,
		Custom:     custom,
		ErrorPairs: errorPairs,
		Events:     events,
	}
	if err := summary.Write(tree, counts); err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		return nil, tree, fmt.Errorf("failed to write summary: %w", err)
	}

	observeCounts(counts)

	if s.Run.Zip {
		phaseStart = time.Now()
		s.archiveTree(tree)
		snapshotPhaseDuration.WithLabelValues("archive").Observe(time.Since(phaseStart).Seconds())
	}

	snapshotCollectionTotal.WithLabelValues("success").Inc()
	slog.Info("snapshot complete",
		slog.String("output", tree.Root),
		slog.Int("pods", pods.Found),
		slog.Int("events", events),
		slog.Int("error_pairs", errorPairs),
	)
	return counts, tree, nil
}

// archiveTree zips the tree and copies the summary out. Failure is a
// diagnostic, not an error; the uncompressed tree stays authoritative.
func (s *NamespaceSnapshotter) archiveTree(tree *layout.Tree) {
	target, err := archive.Zip(tree)
	if err != nil {
		slog.Warn("archival skipped, uncompressed output remains",
			slog.String("output", tree.Root),
			slog.String("error", err.Error()))
		return
	}
	if err := summary.CopyOut(tree); err != nil {
		slog.Warn("failed to copy summary next to archive", slog.String("error", err.Error()))
	}
	slog.Info("archive created", slog.String("archive", target))
}

// orderKinds restores the fixed built-in ordering after concurrent collection.
func orderKinds(kinds []collector.KindResult) {
	order := make(map[string]int, len(kube.BuiltinKinds()))
	for i, kind := range kube.BuiltinKinds() {
		order[kind.Plural] = i
	}
	for i := 1; i < len(kinds); i++ {
		for j := i; j > 0 && order[kinds[j-1].Kind.Plural] > order[kinds[j].Kind.Plural]; j-- {
			kinds[j-1], kinds[j] = kinds[j], kinds[j-1]
		}
	}
}

func observeCounts(counts *summary.Counts) {
	total := counts.Pods.Found
	failures := counts.Pods.Failed
	for _, kr := range counts.Kinds {
		total += kr.Found
		failures += kr.Failed
	}
	for _, cr := range counts.Custom {
		total += cr.Found
		failures += cr.Failed
	}
	snapshotResourceCount.Set(float64(total))
	snapshotFetchFailures.Add(float64(failures))
}
