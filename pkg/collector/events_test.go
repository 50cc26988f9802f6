package collector

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func testEvent(reason, pod string, last time.Time) corev1.Event {
	return corev1.Event{
		Type:           corev1.EventTypeWarning,
		Reason:         reason,
		Message:        "test message for " + reason,
		LastTimestamp:  metav1.NewTime(last),
		InvolvedObject: corev1.ObjectReference{Kind: "Pod", Name: pod},
	}
}

func TestCollectEvents(t *testing.T) {
	tree := newTestTree(t)
	now := time.Now()
	adapter := &fakeAdapter{
		events: []corev1.Event{
			testEvent("BackOff", "web-0", now),
			testEvent("Scheduled", "web-0", now.Add(-time.Hour)),
			testEvent("Pulled", "db-0", now.Add(-30*time.Minute)),
		},
	}
	c := &Collector{Adapter: adapter, Tree: tree}

	count := c.CollectEvents(context.Background(), "demo")
	assert.Equal(t, 3, count)

	// Default view preserves server order.
	text, err := os.ReadFile(tree.EventsFile())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(text)), "\n")
	require.Len(t, lines, 4) // header + 3 events
	assert.Contains(t, lines[0], "LAST SEEN")
	assert.Contains(t, lines[1], "BackOff")
	assert.Contains(t, lines[1], "pod/web-0")

	// Time-sorted view orders by last occurrence, ascending.
	sorted, err := os.ReadFile(tree.EventsByTimestampFile())
	require.NoError(t, err)
	sortedLines := strings.Split(strings.TrimSpace(string(sorted)), "\n")
	assert.Contains(t, sortedLines[1], "Scheduled")
	assert.Contains(t, sortedLines[2], "Pulled")
	assert.Contains(t, sortedLines[3], "BackOff")

	// Structured view round-trips as an EventList.
	raw, err := os.ReadFile(tree.EventsJSONFile())
	require.NoError(t, err)
	var list corev1.EventList
	require.NoError(t, json.Unmarshal(raw, &list))
	assert.Len(t, list.Items, 3)
	assert.Equal(t, "BackOff", list.Items[0].Reason)
}

func TestCollectEventsEmpty(t *testing.T) {
	tree := newTestTree(t)
	c := &Collector{Adapter: &fakeAdapter{}, Tree: tree}

	count := c.CollectEvents(context.Background(), "demo")
	assert.Zero(t, count)

	text, err := os.ReadFile(tree.EventsFile())
	require.NoError(t, err)
	assert.Equal(t, "No Events found in namespace demo\n", string(text))
}

func TestCollectEventsListingFailure(t *testing.T) {
	tree := newTestTree(t)
	c := &Collector{Adapter: &fakeAdapter{eventsErr: errors.New("unreachable")}, Tree: tree}

	count := c.CollectEvents(context.Background(), "demo")
	assert.Zero(t, count)

	text, err := os.ReadFile(tree.EventsFile())
	require.NoError(t, err)
	assert.Contains(t, string(text), "No Events found")
}
