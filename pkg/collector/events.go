package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"text/tabwriter"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/kubesnap/kubesnap/pkg/layout"
)

// CollectEvents captures the namespace-wide event set in three independent
// views: server order, sorted by last-occurrence timestamp ascending, and
// structured JSON. No deduplication or filtering is applied. The returned
// count is the number of event records captured.
func (c *Collector) CollectEvents(ctx context.Context, namespace string) int {
	events, err := c.Adapter.Events(ctx, namespace)
	if err != nil {
		slog.Warn("event listing failed, recording zero events", slog.String("error", err.Error()))
		placeholder := fmt.Appendf(nil, "No Events found in namespace %s\n", namespace)
		c.writeEventsFile(c.Tree.EventsFile(), placeholder)
		return 0
	}

	c.writeEventsFile(c.Tree.EventsFile(), renderEvents(namespace, events))

	sorted := make([]corev1.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastTimestamp.Time.Before(sorted[j].LastTimestamp.Time)
	})
	c.writeEventsFile(c.Tree.EventsByTimestampFile(), renderEvents(namespace, sorted))

	structured, err := json.MarshalIndent(&corev1.EventList{
		TypeMeta: metav1.TypeMeta{Kind: "List", APIVersion: "v1"},
		Items:    events,
	}, "", "  ")
	if err != nil {
		slog.Warn("failed to render events as json", slog.String("error", err.Error()))
	} else {
		c.writeEventsFile(c.Tree.EventsJSONFile(), structured)
	}

	return len(events)
}

func (c *Collector) writeEventsFile(path string, data []byte) {
	if err := layout.WriteFile(path, data); err != nil {
		slog.Warn("failed to write events view", slog.String("path", path), slog.String("error", err.Error()))
	}
}

// renderEvents produces the textual event table: one header line followed by
// one line per event record, in the order given.
func renderEvents(namespace string, events []corev1.Event) []byte {
	if len(events) == 0 {
		return fmt.Appendf(nil, "No Events found in namespace %s\n", namespace)
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 8, 3, ' ', 0)
	fmt.Fprintln(tw, "LAST SEEN\tTYPE\tREASON\tOBJECT\tMESSAGE")
	for _, ev := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			age(ev.LastTimestamp.Time),
			ev.Type,
			ev.Reason,
			eventObject(ev),
			strings.ReplaceAll(strings.TrimSpace(ev.Message), "\n", " "),
		)
	}
	tw.Flush()
	return buf.Bytes()
}

func eventObject(ev corev1.Event) string {
	kind := strings.ToLower(ev.InvolvedObject.Kind)
	if kind == "" {
		return ev.InvolvedObject.Name
	}
	return kind + "/" + ev.InvolvedObject.Name
}
