package kube

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	fakediscovery "k8s.io/client-go/discovery/fake"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"
)

func testScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	scheme := runtime.NewScheme()
	require.NoError(t, corev1.AddToScheme(scheme))
	return scheme
}

func testPod(name string) *corev1.Pod {
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "demo"},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{{Name: "app"}, {Name: "sidecar"}},
		},
	}
}

func TestClientList(t *testing.T) {
	scheme := testScheme(t)
	client := &Client{
		Dynamic: dynamicfake.NewSimpleDynamicClient(scheme, testPod("web-0"), testPod("db-0")),
	}

	instances, err := client.List(context.Background(), "demo", Pods)
	require.NoError(t, err)
	require.Len(t, instances, 2)

	names := []string{instances[0].Name, instances[1].Name}
	assert.Contains(t, names, "web-0")
	assert.Contains(t, names, "db-0")
}

func TestClientListEmpty(t *testing.T) {
	client := &Client{Dynamic: dynamicfake.NewSimpleDynamicClient(testScheme(t))}

	instances, err := client.List(context.Background(), "demo", Pods)
	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestClientGetYAML(t *testing.T) {
	client := &Client{Dynamic: dynamicfake.NewSimpleDynamicClient(testScheme(t), testPod("web-0"))}

	out, err := client.GetYAML(context.Background(), "demo", Pods, "web-0")
	require.NoError(t, err)
	assert.Contains(t, string(out), "name: web-0")
	assert.Contains(t, string(out), "namespace: demo")
}

func TestClientDescribeFallsBackToYAML(t *testing.T) {
	// Without a rest config there is no kubectl describer; describe text
	// degrades to the structured rendering.
	client := &Client{Dynamic: dynamicfake.NewSimpleDynamicClient(testScheme(t), testPod("web-0"))}

	text, err := client.Describe(context.Background(), "demo", Pods, "web-0")
	require.NoError(t, err)
	assert.Contains(t, text, "name: web-0")
}

func TestClientContainerNames(t *testing.T) {
	client := &Client{Clientset: fake.NewClientset(testPod("web-0"))}

	names, err := client.ContainerNames(context.Background(), "demo", "web-0")
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "sidecar"}, names)
}

func TestClientContainerNamesMissingPod(t *testing.T) {
	client := &Client{Clientset: fake.NewClientset()}

	_, err := client.ContainerNames(context.Background(), "demo", "gone-0")
	assert.Error(t, err)
}

func TestClientLogs(t *testing.T) {
	client := &Client{Clientset: fake.NewClientset(testPod("web-0"))}

	data, err := client.Logs(context.Background(), "demo", "web-0", "app", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestClientEvents(t *testing.T) {
	event := &corev1.Event{
		ObjectMeta:     metav1.ObjectMeta{Name: "web-0.1", Namespace: "demo"},
		Reason:         "BackOff",
		InvolvedObject: corev1.ObjectReference{Kind: "Pod", Name: "web-0"},
	}
	client := &Client{Clientset: fake.NewClientset(event)}

	events, err := client.Events(context.Background(), "demo")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "BackOff", events[0].Reason)
}

func TestClientResolveKind(t *testing.T) {
	fakeClient := fake.NewClientset()
	disc := fakeClient.Discovery().(*fakediscovery.FakeDiscovery)
	disc.Resources = []*metav1.APIResourceList{
		{
			GroupVersion: "example.com/v1",
			APIResources: []metav1.APIResource{
				{Name: "widgets", SingularName: "widget", Namespaced: true, Kind: "Widget", ShortNames: []string{"wg"}},
			},
		},
	}
	client := &Client{Discovery: disc}

	for _, input := range []string{"widgets", "widget", "Widget", "wg"} {
		kind, ok, _, err := client.ResolveKind(context.Background(), input)
		require.NoError(t, err, input)
		require.True(t, ok, input)
		assert.Equal(t, "widgets", kind.Plural)
		assert.Equal(t, "widget", kind.Singular)
		assert.Equal(t, "Widget", kind.Name)
		assert.Equal(t, "example.com", kind.GVR.Group)
		assert.Equal(t, "v1", kind.GVR.Version)
	}
}

func TestClientResolveKindUnknownSuggestsNearest(t *testing.T) {
	fakeClient := fake.NewClientset()
	disc := fakeClient.Discovery().(*fakediscovery.FakeDiscovery)
	disc.Resources = []*metav1.APIResourceList{
		{
			GroupVersion: "example.com/v1",
			APIResources: []metav1.APIResource{
				{Name: "widgets", SingularName: "widget", Namespaced: true, Kind: "Widget"},
			},
		},
	}
	client := &Client{Discovery: disc}

	_, ok, suggest, err := client.ResolveKind(context.Background(), "widgits")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "widgets", suggest)

	_, ok, suggest, err = client.ResolveKind(context.Background(), "zzzzzzzzzz")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, suggest)
}

func TestKindGroupKind(t *testing.T) {
	gk := Deployments.GroupKind()
	assert.Equal(t, "apps", gk.Group)
	assert.Equal(t, "Deployment", gk.Kind)
}

func TestBuiltinKindsExcludePods(t *testing.T) {
	for _, kind := range BuiltinKinds() {
		assert.NotEqual(t, "pods", kind.Plural)
	}
	assert.Len(t, BuiltinKinds(), 6)
}
