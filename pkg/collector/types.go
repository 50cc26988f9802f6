// Package collector gathers the contents of a namespace: resource listings,
// per-instance descriptions and structured representations, pod container
// logs, and events. Per-instance fetches fan out concurrently; individual
// fetch failures degrade to placeholder or empty files and are reported as
// counts, never as errors.
package collector

import (
	"github.com/kubesnap/kubesnap/pkg/kube"
	"github.com/kubesnap/kubesnap/pkg/layout"
)

// Collector drives collection for a single run against one output tree.
type Collector struct {
	Adapter kube.Adapter
	Tree    *layout.Tree

	// Limit bounds per-phase fan-out width; <= 0 is unbounded.
	Limit int

	// TailLines caps per-container log capture; <= 0 captures everything.
	TailLines int64
}

// KindResult reports what a per-kind collection produced.
type KindResult struct {
	Kind kube.Kind

	// Found is the number of instances listed. Zero covers both an empty
	// namespace and a failed listing.
	Found int

	// Failed counts per-instance fetches that produced no usable file.
	Failed int
}

// ContainerLog locates one captured container log stream.
type ContainerLog struct {
	Pod       string
	Container string
	Path      string
}

// PodResult reports the pod phase: instance counts plus every captured log.
type PodResult struct {
	KindResult

	// Logs lists every captured (pod, container) log in pod, container order.
	Logs []ContainerLog
}

// CustomResult reports collection of one user-requested custom kind.
type CustomResult struct {
	// Requested is the kind name as the user supplied it.
	Requested string

	// Kind is the resolved kind; zero when Known is false.
	Kind kube.Kind

	// Known is false when the cluster does not serve the requested kind.
	Known bool

	// Suggestion is the closest served kind name, used in the unknown-kind
	// warning. Empty when nothing is close.
	Suggestion string

	Found  int
	Failed int
}

func (c *Collector) newGroup() *group {
	return newGroup(c.Limit)
}
