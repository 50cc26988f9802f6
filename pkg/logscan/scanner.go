// Package logscan post-processes captured container logs, extracting lines
// that contain an error marker into a single consolidated report.
package logscan

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kubesnap/kubesnap/pkg/collector"
	"github.com/kubesnap/kubesnap/pkg/layout"
)

// Marker is the case-insensitive substring that flags a log line.
const Marker = "error"

// Scanner consolidates error lines from captured logs. It runs strictly
// after all log fetches have completed.
type Scanner struct {
	Tree *layout.Tree
}

// Scan reads every captured (pod, container) log in order and appends each
// matching line, under a per-pair header block, to error_summary.log. Pairs
// with empty or marker-free logs produce no output at all. The returned
// count is the number of pairs that contributed a block.
func (s *Scanner) Scan(logs []collector.ContainerLog) (int, error) {
	var report bytes.Buffer
	pairs := 0

	for _, ref := range logs {
		matches, err := scanFile(ref.Path)
		if err != nil {
			slog.Warn("skipping unreadable log capture",
				slog.String("pod", ref.Pod),
				slog.String("container", ref.Container),
				slog.String("error", err.Error()))
			continue
		}
		if len(matches) == 0 {
			continue
		}

		pairs++
		fmt.Fprintf(&report, "pod: %s, container: %s\n", ref.Pod, ref.Container)
		for _, line := range matches {
			fmt.Fprintln(&report, line)
		}
		fmt.Fprintln(&report)
	}

	if err := layout.WriteFile(s.Tree.ErrorSummaryFile(), report.Bytes()); err != nil {
		return pairs, err
	}
	return pairs, nil
}

// scanFile returns the lines of path containing the marker, in original
// order. A missing or empty file yields no matches.
func scanFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var matches []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(strings.ToLower(line), Marker) {
			matches = append(matches, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
