// Package config holds the immutable per-run configuration. A Run value is
// built once at startup, from flags and an optional YAML file, and passed to
// every component; nothing mutates it afterwards.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Run is the configuration for a single snapshot run.
type Run struct {
	// Namespace is the target scope. Required.
	Namespace string

	// CustomKinds are user-supplied resource kind names collected in
	// addition to the built-in set.
	CustomKinds []string

	// Zip archives the output tree after collection.
	Zip bool

	// OutputDir is the parent directory for the timestamped output tree.
	// Empty means the current working directory.
	OutputDir string

	// Kubeconfig is an explicit kubeconfig path. Empty enables automatic
	// discovery.
	Kubeconfig string

	// TailLines caps per-container log capture; <= 0 captures everything.
	TailLines int64

	// Concurrency bounds per-phase fan-out width; <= 0 is unbounded.
	Concurrency int

	// APIQPS throttles API calls client-side; <= 0 disables throttling.
	APIQPS float64

	// RunID uniquely identifies this run in the summary report.
	RunID string

	// Started is the run start time; the output tree name derives from it.
	Started time.Time
}

// File mirrors the optional YAML configuration file. Flag values take
// precedence over file values.
type File struct {
	Namespace       string   `yaml:"namespace"`
	CustomResources []string `yaml:"customResources"`
	Zip             bool     `yaml:"zip"`
	OutputDir       string   `yaml:"outputDir"`
	Kubeconfig      string   `yaml:"kubeconfig"`
	TailLines       int64    `yaml:"tailLines"`
	Concurrency     int      `yaml:"concurrency"`
	APIQPS          float64  `yaml:"apiQPS"`
}

// LoadFile reads and parses a YAML configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &f, nil
}

// New builds the run configuration, layering flag values over file values and
// validating the result. The zero File is a valid base when no file is given.
func New(file File, flags Run) (Run, error) {
	run := Run{
		Namespace:   firstOf(flags.Namespace, file.Namespace),
		CustomKinds: flags.CustomKinds,
		Zip:         flags.Zip || file.Zip,
		OutputDir:   firstOf(flags.OutputDir, file.OutputDir),
		Kubeconfig:  firstOf(flags.Kubeconfig, file.Kubeconfig),
		TailLines:   flags.TailLines,
		Concurrency: flags.Concurrency,
		APIQPS:      flags.APIQPS,
		RunID:       uuid.New().String(),
		Started:     time.Now(),
	}
	if len(run.CustomKinds) == 0 {
		run.CustomKinds = file.CustomResources
	}
	if run.TailLines == 0 {
		run.TailLines = file.TailLines
	}
	if run.Concurrency == 0 {
		run.Concurrency = file.Concurrency
	}
	if run.APIQPS == 0 {
		run.APIQPS = file.APIQPS
	}

	if strings.TrimSpace(run.Namespace) == "" {
		return Run{}, fmt.Errorf("namespace is required")
	}
	return run, nil
}

// ParseKindList splits a comma-separated kind list, dropping empty entries.
func ParseKindList(raw string) []string {
	var kinds []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kinds = append(kinds, trimmed)
		}
	}
	return kinds
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
