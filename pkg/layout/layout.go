// Package layout defines the on-disk shape of a snapshot output tree and
// builds every path written during a run. Concurrent writers always target
// disjoint paths produced here, so no write contention exists by construction.
package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kubesnap/kubesnap/pkg/kube"
)

const dirMode = 0o755

// Tree is a snapshot output tree rooted at <namespace>_<timestamp>.
type Tree struct {
	Root string
}

// New derives the tree root from the namespace and run start time. parent may
// be empty for the current working directory.
func New(parent, namespace string, started time.Time) *Tree {
	name := fmt.Sprintf("%s_%s", namespace, started.Format("20060102_150405"))
	return &Tree{Root: filepath.Join(parent, name)}
}

// Create makes the root and its fixed subdirectories.
func (t *Tree) Create() error {
	for _, dir := range []string{t.Root, t.GetDir(), t.DescribeDir(), t.EventsDir(), t.LogsDir()} {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	return nil
}

func (t *Tree) GetDir() string      { return filepath.Join(t.Root, "get") }
func (t *Tree) DescribeDir() string { return filepath.Join(t.Root, "describe") }
func (t *Tree) EventsDir() string   { return filepath.Join(t.Root, "events") }
func (t *Tree) LogsDir() string     { return filepath.Join(t.Root, "logs") }

// KindDir is the per-kind listing directory, created lazily so that unknown
// custom kinds never leave an empty directory behind.
func (t *Tree) KindDir(kind kube.Kind) string {
	return filepath.Join(t.GetDir(), kind.Plural)
}

// EnsureKindDir creates the per-kind directory under get/.
func (t *Tree) EnsureKindDir(kind kube.Kind) error {
	if err := os.MkdirAll(t.KindDir(kind), dirMode); err != nil {
		return fmt.Errorf("failed to create kind directory for %s: %w", kind.Plural, err)
	}
	return nil
}

// EnsurePodLogDir creates the per-pod directory under logs/.
func (t *Tree) EnsurePodLogDir(pod string) error {
	if err := os.MkdirAll(filepath.Join(t.LogsDir(), pod), dirMode); err != nil {
		return fmt.Errorf("failed to create log directory for pod %s: %w", pod, err)
	}
	return nil
}

// ListFile is the per-kind listing, e.g. get/pods/pods.txt.
func (t *Tree) ListFile(kind kube.Kind) string {
	return filepath.Join(t.KindDir(kind), kind.Plural+".txt")
}

// InstanceYAML is the structured per-instance file, e.g. get/pods/web-0.yaml.
func (t *Tree) InstanceYAML(kind kube.Kind, name string) string {
	return filepath.Join(t.KindDir(kind), name+".yaml")
}

// DescribeFile is the descriptive per-instance file, e.g. describe/pod_web-0.txt.
func (t *Tree) DescribeFile(kind kube.Kind, name string) string {
	return filepath.Join(t.DescribeDir(), fmt.Sprintf("%s_%s.txt", kind.Singular, name))
}

// LogFile is the raw container log capture, e.g. logs/web-0/app.log.
func (t *Tree) LogFile(pod, container string) string {
	return filepath.Join(t.LogsDir(), pod, container+".log")
}

func (t *Tree) EventsFile() string            { return filepath.Join(t.EventsDir(), "events.txt") }
func (t *Tree) EventsByTimestampFile() string { return filepath.Join(t.EventsDir(), "events_by_timestamp.txt") }
func (t *Tree) EventsJSONFile() string        { return filepath.Join(t.EventsDir(), "events.json") }

func (t *Tree) ErrorSummaryFile() string { return filepath.Join(t.Root, "error_summary.log") }
func (t *Tree) SummaryFile() string      { return filepath.Join(t.Root, "summary.txt") }

// ArchiveFile is the sibling zip path, e.g. ./demo_20240101_120000.zip.
func (t *Tree) ArchiveFile() string { return t.Root + ".zip" }

// SummaryCopyFile is the standalone summary copy placed next to the archive,
// e.g. ./summary_demo_20240101_120000.txt.
func (t *Tree) SummaryCopyFile() string {
	return filepath.Join(filepath.Dir(t.Root), "summary_"+filepath.Base(t.Root)+".txt")
}

// WriteFile writes data to path with the run's default file mode.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
