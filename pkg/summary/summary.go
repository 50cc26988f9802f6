// Package summary renders the aggregate run report. It is pure aggregation
// of counters returned by the collection phases; nothing is recomputed from
// the output tree.
package summary

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kubesnap/kubesnap/pkg/collector"
	"github.com/kubesnap/kubesnap/pkg/layout"
)

// Counts is the aggregate of one run, assembled from explicit per-phase
// counters.
type Counts struct {
	RunID     string
	Namespace string
	Started   time.Time

	Pods   collector.PodResult
	Kinds  []collector.KindResult
	Custom []collector.CustomResult

	// ErrorPairs is the number of (pod, container) pairs that contributed a
	// block to the consolidated error report.
	ErrorPairs int

	// Events is the number of event records captured.
	Events int
}

var titler = cases.Title(language.English)

// Render produces the flat, ordered text report.
func (c *Counts) Render() []byte {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "kubesnap diagnostic summary")
	fmt.Fprintf(&buf, "Run ID:    %s\n", c.RunID)
	fmt.Fprintf(&buf, "Namespace: %s\n", c.Namespace)
	fmt.Fprintf(&buf, "Started:   %s\n", c.Started.Format(time.RFC3339))
	fmt.Fprintln(&buf, "----------------------------------------")

	writeCount(&buf, "Pods", c.Pods.Found, c.Pods.Failed)
	for _, kr := range c.Kinds {
		writeCount(&buf, kr.Kind.Name+"s", kr.Found, kr.Failed)
	}

	if len(c.Custom) > 0 {
		fmt.Fprintln(&buf, "Custom resources:")
		for _, cr := range c.Custom {
			if !cr.Known {
				fmt.Fprintf(&buf, "  %s: unknown kind (0)\n", titler.String(cr.Requested))
				continue
			}
			label := titler.String(cr.Kind.Plural)
			if cr.Failed > 0 {
				fmt.Fprintf(&buf, "  %s: %d (%d fetch failures)\n", label, cr.Found, cr.Failed)
			} else {
				fmt.Fprintf(&buf, "  %s: %d\n", label, cr.Found)
			}
		}
	}

	fmt.Fprintf(&buf, "Error log pairs: %d\n", c.ErrorPairs)
	fmt.Fprintf(&buf, "Events: %d\n", c.Events)

	return buf.Bytes()
}

func writeCount(w io.Writer, label string, found, failed int) {
	if failed > 0 {
		fmt.Fprintf(w, "%s: %d (%d fetch failures)\n", label, found, failed)
		return
	}
	fmt.Fprintf(w, "%s: %d\n", label, found)
}

// Write renders the report into the output tree.
func Write(tree *layout.Tree, counts *Counts) error {
	return layout.WriteFile(tree.SummaryFile(), counts.Render())
}

// CopyOut copies the in-tree summary next to the archive so the counts are
// readable without opening it. The copy is byte-identical to the in-tree
// report.
func CopyOut(tree *layout.Tree) error {
	data, err := os.ReadFile(tree.SummaryFile())
	if err != nil {
		return fmt.Errorf("failed to read summary for copy: %w", err)
	}
	return layout.WriteFile(tree.SummaryCopyFile(), data)
}
