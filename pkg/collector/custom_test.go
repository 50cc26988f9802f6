package collector

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/kubesnap/kubesnap/pkg/kube"
)

var widgetKind = kube.Kind{
	Singular: "widget",
	Plural:   "widgets",
	Name:     "Widget",
	GVR:      schema.GroupVersionResource{Group: "example.com", Version: "v1", Resource: "widgets"},
}

func TestCollectCustomUnknownKind(t *testing.T) {
	tree := newTestTree(t)
	adapter := &fakeAdapter{suggest: map[string]string{"widgits": "widgets"}}
	c := &Collector{Adapter: adapter, Tree: tree}

	result := c.CollectCustom(context.Background(), "demo", "widgits")

	assert.False(t, result.Known)
	assert.Zero(t, result.Found)
	assert.Equal(t, "widgets", result.Suggestion)

	// An unknown kind leaves no get/<kind>/ directory behind.
	_, err := os.Stat(tree.KindDir(kube.Kind{Plural: "widgits"}))
	assert.True(t, os.IsNotExist(err))
}

func TestCollectCustomKnownKindWithNoInstances(t *testing.T) {
	tree := newTestTree(t)
	adapter := &fakeAdapter{
		resolvable: map[string]kube.Kind{"widgets": widgetKind},
	}
	c := &Collector{Adapter: adapter, Tree: tree}

	result := c.CollectCustom(context.Background(), "demo", "widgets")

	// Empty result is a zero count, not a failure.
	assert.True(t, result.Known)
	assert.Zero(t, result.Found)

	listing, err := os.ReadFile(tree.ListFile(widgetKind))
	require.NoError(t, err)
	assert.Contains(t, string(listing), "No Widgets found")
}

func TestCollectCustomKinds(t *testing.T) {
	tree := newTestTree(t)
	adapter := &fakeAdapter{
		resolvable: map[string]kube.Kind{"widgets": widgetKind},
		instances: map[string][]kube.Instance{
			"widgets": {{Name: "w1"}, {Name: "w2"}},
		},
	}
	c := &Collector{Adapter: adapter, Tree: tree}

	results := c.CollectCustomKinds(context.Background(), "demo", []string{"widgets", "bogus"})

	require.Len(t, results, 2)
	assert.Equal(t, "widgets", results[0].Requested)
	assert.Equal(t, 2, results[0].Found)
	assert.False(t, results[1].Known)
}
