package collector

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"text/tabwriter"
	"time"

	"k8s.io/apimachinery/pkg/util/duration"

	"github.com/kubesnap/kubesnap/pkg/kube"
	"github.com/kubesnap/kubesnap/pkg/layout"
)

// CollectKind lists every instance of kind in the namespace and concurrently
// captures each instance's describe text and structured YAML. A failed
// listing degrades to a placeholder listing file and a zero count; failed
// per-instance fetches are counted, logged, and otherwise suppressed.
func (c *Collector) CollectKind(ctx context.Context, namespace string, kind kube.Kind) KindResult {
	if err := c.Tree.EnsureKindDir(kind); err != nil {
		slog.Warn("skipping kind, cannot create output directory",
			slog.String("kind", kind.Plural), slog.String("error", err.Error()))
		return KindResult{Kind: kind}
	}

	instances, err := c.Adapter.List(ctx, namespace, kind)
	if err != nil {
		slog.Warn("listing failed, recording zero instances",
			slog.String("kind", kind.Plural), slog.String("error", err.Error()))
		c.writeListing(kind, namespace, nil)
		return KindResult{Kind: kind}
	}

	c.writeListing(kind, namespace, instances)

	var failed atomic.Int64
	g := c.newGroup()
	for _, instance := range instances {
		g.Go(func() {
			if err := c.captureDescribe(ctx, namespace, kind, instance.Name); err != nil {
				failed.Add(1)
				slog.Warn("describe failed",
					slog.String("kind", kind.Singular),
					slog.String("name", instance.Name),
					slog.String("error", err.Error()))
			}
		})
		g.Go(func() {
			if err := c.captureYAML(ctx, namespace, kind, instance.Name); err != nil {
				failed.Add(1)
				slog.Warn("structured fetch failed",
					slog.String("kind", kind.Singular),
					slog.String("name", instance.Name),
					slog.String("error", err.Error()))
			}
		})
	}
	g.Wait()

	return KindResult{Kind: kind, Found: len(instances), Failed: int(failed.Load())}
}

func (c *Collector) captureDescribe(ctx context.Context, namespace string, kind kube.Kind, name string) error {
	text, err := c.Adapter.Describe(ctx, namespace, kind, name)
	if err != nil {
		return err
	}
	return layout.WriteFile(c.Tree.DescribeFile(kind, name), []byte(text))
}

func (c *Collector) captureYAML(ctx context.Context, namespace string, kind kube.Kind, name string) error {
	data, err := c.Adapter.GetYAML(ctx, namespace, kind, name)
	if err != nil {
		return err
	}
	return layout.WriteFile(c.Tree.InstanceYAML(kind, name), data)
}

func (c *Collector) writeListing(kind kube.Kind, namespace string, instances []kube.Instance) {
	if err := layout.WriteFile(c.Tree.ListFile(kind), renderListing(kind, namespace, instances)); err != nil {
		slog.Warn("failed to write listing", slog.String("kind", kind.Plural), slog.String("error", err.Error()))
	}
}

// renderListing produces the per-kind listing text: a NAME/AGE table, or a
// placeholder line when the namespace holds no instances of the kind.
func renderListing(kind kube.Kind, namespace string, instances []kube.Instance) []byte {
	if len(instances) == 0 {
		return fmt.Appendf(nil, "No %ss found in namespace %s\n", kind.Name, namespace)
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 8, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tAGE")
	for _, instance := range instances {
		fmt.Fprintf(tw, "%s\t%s\n", instance.Name, age(instance.Created))
	}
	tw.Flush()
	return buf.Bytes()
}

func age(created time.Time) string {
	if created.IsZero() {
		return "<unknown>"
	}
	return duration.HumanDuration(time.Since(created))
}
