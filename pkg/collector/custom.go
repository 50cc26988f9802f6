package collector

import (
	"context"
	"log/slog"
)

// CollectCustom validates one user-supplied kind name against the cluster's
// served resources and, when known, collects it like a built-in kind. An
// unknown kind is a warning and a zero count, never an error, and leaves no
// get/<kind>/ directory behind.
func (c *Collector) CollectCustom(ctx context.Context, namespace, requested string) CustomResult {
	kind, ok, suggest, err := c.Adapter.ResolveKind(ctx, requested)
	if err != nil {
		slog.Warn("custom kind lookup failed, recording zero count",
			slog.String("kind", requested), slog.String("error", err.Error()))
		return CustomResult{Requested: requested}
	}
	if !ok {
		if suggest != "" {
			slog.Warn("unknown custom resource kind, skipping",
				slog.String("kind", requested), slog.String("did_you_mean", suggest))
		} else {
			slog.Warn("unknown custom resource kind, skipping", slog.String("kind", requested))
		}
		return CustomResult{Requested: requested, Suggestion: suggest}
	}

	kr := c.CollectKind(ctx, namespace, kind)
	return CustomResult{
		Requested: requested,
		Kind:      kind,
		Known:     true,
		Found:     kr.Found,
		Failed:    kr.Failed,
	}
}

// CollectCustomKinds collects every requested kind sequentially, preserving
// the order the user gave for summary reporting.
func (c *Collector) CollectCustomKinds(ctx context.Context, namespace string, requested []string) []CustomResult {
	results := make([]CustomResult, 0, len(requested))
	for _, name := range requested {
		results = append(results, c.CollectCustom(ctx, namespace, name))
	}
	return results
}
