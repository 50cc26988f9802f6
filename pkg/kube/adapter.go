package kube

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"golang.org/x/time/rate"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	kubeclient "github.com/kubesnap/kubesnap/pkg/k8s/client"
)

// Instance is a named resource discovered by listing a kind.
type Instance struct {
	Name    string
	Created time.Time
}

// Adapter is the cluster access surface used by the collectors. All methods
// are namespace-scoped and honor context cancellation.
type Adapter interface {
	// List returns every instance of kind in the namespace. An empty result
	// is valid, not an error.
	List(ctx context.Context, namespace string, kind Kind) ([]Instance, error)

	// GetYAML returns the structured representation of a single instance.
	GetYAML(ctx context.Context, namespace string, kind Kind, name string) ([]byte, error)

	// Describe returns the human-readable description of a single instance,
	// including its recent events where the kind supports them.
	Describe(ctx context.Context, namespace string, kind Kind, name string) (string, error)

	// ContainerNames returns the container names declared in a pod's spec.
	ContainerNames(ctx context.Context, namespace, pod string) ([]string, error)

	// Logs returns the captured log stream of one container. tailLines <= 0
	// means the full stream.
	Logs(ctx context.Context, namespace, pod, container string, tailLines int64) ([]byte, error)

	// Events returns the namespace-wide event set in server order.
	Events(ctx context.Context, namespace string) ([]corev1.Event, error)

	// ResolveKind maps a user-supplied kind name (singular, plural, CamelCase
	// kind, or short name) to a served namespaced resource. When the name is
	// not served, ok is false and suggest holds the closest served name, if
	// any is close enough to be worth mentioning.
	ResolveKind(ctx context.Context, name string) (kind Kind, ok bool, suggest string, err error)
}

// Client implements Adapter against a live API server using the typed
// clientset for pods, logs, and events, and the dynamic client for everything
// else. An optional rate limiter throttles every API call.
type Client struct {
	Clientset  kubernetes.Interface
	Dynamic    dynamic.Interface
	Discovery  discovery.DiscoveryInterface
	RestConfig *rest.Config
	Limiter    *rate.Limiter

	// describe is a seam for tests; nil selects the kubectl describer.
	describe func(ctx context.Context, namespace string, kind Kind, name string) (string, error)
}

// NewClient builds a Client from the given kubeconfig path, falling back to
// KUBECONFIG, ~/.kube/config, and in-cluster configuration in that order.
// qps > 0 enables client-side throttling of API calls.
func NewClient(kubeconfig string, qps float64) (*Client, error) {
	clientset, config, err := kubeclient.BuildKubeClient(kubeconfig)
	if err != nil {
		return nil, err
	}

	dyn, err := dynamic.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	c := &Client{
		Clientset:  clientset,
		Dynamic:    dyn,
		Discovery:  clientset.Discovery(),
		RestConfig: config,
	}
	if qps > 0 {
		c.Limiter = rate.NewLimiter(rate.Limit(qps), int(qps))
	}
	return c, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.Limiter == nil {
		return ctx.Err()
	}
	return c.Limiter.Wait(ctx)
}

// List implements Adapter.
func (c *Client) List(ctx context.Context, namespace string, kind Kind) ([]Instance, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	list, err := c.Dynamic.Resource(kind.GVR).Namespace(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind.Plural, err)
	}

	instances := make([]Instance, 0, len(list.Items))
	for _, item := range list.Items {
		instances = append(instances, Instance{
			Name:    item.GetName(),
			Created: item.GetCreationTimestamp().Time,
		})
	}
	return instances, nil
}

// GetYAML implements Adapter.
func (c *Client) GetYAML(ctx context.Context, namespace string, kind Kind, name string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	obj, err := c.Dynamic.Resource(kind.GVR).Namespace(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s/%s: %w", kind.Singular, name, err)
	}

	out, err := yaml.Marshal(obj.Object)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s/%s as yaml: %w", kind.Singular, name, err)
	}
	return out, nil
}

// Describe implements Adapter. Built-in kinds use the kubectl describer;
// kinds without a registered describer fall back to the YAML rendering.
func (c *Client) Describe(ctx context.Context, namespace string, kind Kind, name string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	if c.describe != nil {
		return c.describe(ctx, namespace, kind, name)
	}
	return c.kubectlDescribe(ctx, namespace, kind, name)
}

// ContainerNames implements Adapter.
func (c *Client) ContainerNames(ctx context.Context, namespace, pod string) ([]string, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	p, err := c.Clientset.CoreV1().Pods(namespace).Get(ctx, pod, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get pod %s: %w", pod, err)
	}

	names := make([]string, 0, len(p.Spec.Containers))
	for _, container := range p.Spec.Containers {
		names = append(names, container.Name)
	}
	return names, nil
}

// Logs implements Adapter.
func (c *Client) Logs(ctx context.Context, namespace, pod, container string, tailLines int64) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	opts := &corev1.PodLogOptions{Container: container}
	if tailLines > 0 {
		opts.TailLines = ptr.To(tailLines)
	}

	stream, err := c.Clientset.CoreV1().Pods(namespace).GetLogs(pod, opts).Stream(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to stream logs for %s/%s: %w", pod, container, err)
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read logs for %s/%s: %w", pod, container, err)
	}
	return data, nil
}

// Events implements Adapter.
func (c *Client) Events(ctx context.Context, namespace string) ([]corev1.Event, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	list, err := c.Clientset.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return list.Items, nil
}

// ResolveKind implements Adapter.
func (c *Client) ResolveKind(ctx context.Context, name string) (Kind, bool, string, error) {
	if err := c.wait(ctx); err != nil {
		return Kind{}, false, "", err
	}

	lists, err := c.Discovery.ServerPreferredNamespacedResources()
	if err != nil {
		// Partial discovery still yields usable lists; only give up when
		// nothing came back at all.
		if len(lists) == 0 {
			return Kind{}, false, "", fmt.Errorf("failed to discover api resources: %w", err)
		}
	}

	lower := strings.ToLower(name)
	var known []string
	for _, list := range lists {
		gv, gvErr := schema.ParseGroupVersion(list.GroupVersion)
		if gvErr != nil {
			continue
		}
		for _, res := range list.APIResources {
			if strings.Contains(res.Name, "/") {
				continue // subresources are not collectable
			}
			known = append(known, res.Name)
			if matchesResource(lower, res) {
				singular := res.SingularName
				if singular == "" {
					singular = strings.ToLower(res.Kind)
				}
				return Kind{
					Singular: singular,
					Plural:   res.Name,
					Name:     res.Kind,
					GVR:      gv.WithResource(res.Name),
				}, true, "", nil
			}
		}
	}

	return Kind{}, false, nearest(lower, known), nil
}

func matchesResource(lower string, res metav1.APIResource) bool {
	if lower == res.Name || lower == res.SingularName || lower == strings.ToLower(res.Kind) {
		return true
	}
	for _, short := range res.ShortNames {
		if lower == short {
			return true
		}
	}
	return false
}

// nearest returns the known resource name closest to input, or "" when no
// candidate is within editing distance 3.
func nearest(input string, known []string) string {
	sort.Strings(known)
	best, bestDist := "", 4
	for _, candidate := range known {
		if d := levenshtein.ComputeDistance(input, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
