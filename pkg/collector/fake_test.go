package collector

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"

	"github.com/kubesnap/kubesnap/pkg/kube"
)

// fakeAdapter serves canned cluster state for collector tests.
type fakeAdapter struct {
	instances  map[string][]kube.Instance // keyed by kind plural
	listErr    map[string]error
	describes  map[string]string // keyed by singular/name
	getErr     map[string]error
	containers map[string][]string
	logs       map[string]string // keyed by pod/container
	logErr     map[string]error
	events     []corev1.Event
	eventsErr  error
	resolvable map[string]kube.Kind
	suggest    map[string]string
}

func (f *fakeAdapter) List(_ context.Context, _ string, kind kube.Kind) ([]kube.Instance, error) {
	if err := f.listErr[kind.Plural]; err != nil {
		return nil, err
	}
	return f.instances[kind.Plural], nil
}

func (f *fakeAdapter) GetYAML(_ context.Context, _ string, kind kube.Kind, name string) ([]byte, error) {
	key := kind.Singular + "/" + name
	if err := f.getErr[key]; err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "kind: %s\nmetadata:\n  name: %s\n", kind.Name, name), nil
}

func (f *fakeAdapter) Describe(_ context.Context, _ string, kind kube.Kind, name string) (string, error) {
	key := kind.Singular + "/" + name
	if text, ok := f.describes[key]; ok {
		return text, nil
	}
	return fmt.Sprintf("Name: %s\nKind: %s\n", name, kind.Name), nil
}

func (f *fakeAdapter) ContainerNames(_ context.Context, _, pod string) ([]string, error) {
	return f.containers[pod], nil
}

func (f *fakeAdapter) Logs(_ context.Context, _, pod, container string, _ int64) ([]byte, error) {
	key := pod + "/" + container
	if err := f.logErr[key]; err != nil {
		return nil, err
	}
	return []byte(f.logs[key]), nil
}

func (f *fakeAdapter) Events(_ context.Context, _ string) ([]corev1.Event, error) {
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}
	return f.events, nil
}

func (f *fakeAdapter) ResolveKind(_ context.Context, name string) (kube.Kind, bool, string, error) {
	if kind, ok := f.resolvable[name]; ok {
		return kind, true, "", nil
	}
	return kube.Kind{}, false, f.suggest[name], nil
}
