package collector

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/kubesnap/kubesnap/pkg/kube"
	"github.com/kubesnap/kubesnap/pkg/layout"
)

// CollectPods runs the pod phase: list pods, then for each pod concurrently
// capture its describe text, structured YAML, and container name set, then
// fan out every (pod, container) log fetch and join once. Pods run before
// the other kinds because log extraction depends on pod metadata.
//
// A log fetch failure yields an empty log file, which the error scanner
// naturally skips. A namespace with zero pods produces only the placeholder
// listing; no per-pod log directories are created.
func (c *Collector) CollectPods(ctx context.Context, namespace string) PodResult {
	result := PodResult{KindResult: KindResult{Kind: kube.Pods}}

	if err := c.Tree.EnsureKindDir(kube.Pods); err != nil {
		slog.Warn("skipping pods, cannot create output directory", slog.String("error", err.Error()))
		return result
	}

	pods, err := c.Adapter.List(ctx, namespace, kube.Pods)
	if err != nil {
		slog.Warn("pod listing failed, recording zero pods", slog.String("error", err.Error()))
		c.writeListing(kube.Pods, namespace, nil)
		return result
	}

	c.writeListing(kube.Pods, namespace, pods)
	result.Found = len(pods)
	if len(pods) == 0 {
		return result
	}

	var failed atomic.Int64
	var mu sync.Mutex
	containers := make(map[string][]string, len(pods))

	// Per-pod describe, structured fetch, and container discovery run
	// concurrently across all pods.
	g := c.newGroup()
	for _, pod := range pods {
		g.Go(func() {
			if err := c.captureDescribe(ctx, namespace, kube.Pods, pod.Name); err != nil {
				failed.Add(1)
				slog.Warn("pod describe failed", slog.String("pod", pod.Name), slog.String("error", err.Error()))
			}
		})
		g.Go(func() {
			if err := c.captureYAML(ctx, namespace, kube.Pods, pod.Name); err != nil {
				failed.Add(1)
				slog.Warn("pod structured fetch failed", slog.String("pod", pod.Name), slog.String("error", err.Error()))
			}
		})
		g.Go(func() {
			names, err := c.Adapter.ContainerNames(ctx, namespace, pod.Name)
			if err != nil {
				failed.Add(1)
				slog.Warn("container discovery failed", slog.String("pod", pod.Name), slog.String("error", err.Error()))
				return
			}
			if err := c.Tree.EnsurePodLogDir(pod.Name); err != nil {
				failed.Add(1)
				slog.Warn("log directory setup failed", slog.String("pod", pod.Name), slog.String("error", err.Error()))
				return
			}
			mu.Lock()
			containers[pod.Name] = names
			mu.Unlock()
		})
	}
	g.Wait()

	// All container log fetches across all pods launch before any is
	// awaited; the Wait below is the single join point for the log phase.
	logs := c.newGroup()
	for _, pod := range pods {
		for _, container := range containers[pod.Name] {
			ref := ContainerLog{Pod: pod.Name, Container: container, Path: c.Tree.LogFile(pod.Name, container)}
			result.Logs = append(result.Logs, ref)
			logs.Go(func() {
				c.captureLog(ctx, namespace, ref)
			})
		}
	}
	logs.Wait()

	sort.Slice(result.Logs, func(i, j int) bool {
		if result.Logs[i].Pod != result.Logs[j].Pod {
			return result.Logs[i].Pod < result.Logs[j].Pod
		}
		return result.Logs[i].Container < result.Logs[j].Container
	})

	result.Failed = int(failed.Load())
	return result
}

// captureLog writes the container's log stream, or an empty file when the
// fetch fails, so downstream consumers always find the path present.
func (c *Collector) captureLog(ctx context.Context, namespace string, ref ContainerLog) {
	data, err := c.Adapter.Logs(ctx, namespace, ref.Pod, ref.Container, c.TailLines)
	if err != nil {
		slog.Warn("log fetch failed, writing empty capture",
			slog.String("pod", ref.Pod),
			slog.String("container", ref.Container),
			slog.String("error", err.Error()))
		data = nil
	}
	if err := layout.WriteFile(ref.Path, data); err != nil {
		slog.Warn("failed to write log capture", slog.String("path", ref.Path), slog.String("error", err.Error()))
	}
}
