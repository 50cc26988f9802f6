package kube

import "k8s.io/apimachinery/pkg/runtime/schema"

// Kind identifies a collectable resource kind. Singular and Plural drive
// output file naming; GVR drives API access.
type Kind struct {
	// Singular is the lower-case singular form, e.g. "pod".
	Singular string

	// Plural is the lower-case plural form, e.g. "pods".
	Plural string

	// Name is the CamelCase kind name, e.g. "Pod".
	Name string

	// GVR is the group/version/resource used for list and get operations.
	GVR schema.GroupVersionResource
}

// GroupKind returns the schema.GroupKind for describe lookups.
func (k Kind) GroupKind() schema.GroupKind {
	return schema.GroupKind{Group: k.GVR.Group, Kind: k.Name}
}

// Built-in kinds collected on every run. Pods are handled separately from the
// rest because container log extraction depends on pod metadata.
var (
	Pods         = Kind{Singular: "pod", Plural: "pods", Name: "Pod", GVR: schema.GroupVersionResource{Version: "v1", Resource: "pods"}}
	StatefulSets = Kind{Singular: "statefulset", Plural: "statefulsets", Name: "StatefulSet", GVR: schema.GroupVersionResource{Group: "apps", Version: "v1", Resource: "statefulsets"}}
	Deployments  = Kind{Singular: "deployment", Plural: "deployments", Name: "Deployment", GVR: schema.GroupVersionResource{Group: "apps", Version: "v1", Resource: "deployments"}}
	Secrets      = Kind{Singular: "secret", Plural: "secrets", Name: "Secret", GVR: schema.GroupVersionResource{Version: "v1", Resource: "secrets"}}
	Jobs         = Kind{Singular: "job", Plural: "jobs", Name: "Job", GVR: schema.GroupVersionResource{Group: "batch", Version: "v1", Resource: "jobs"}}
	ConfigMaps   = Kind{Singular: "configmap", Plural: "configmaps", Name: "ConfigMap", GVR: schema.GroupVersionResource{Version: "v1", Resource: "configmaps"}}
	Services     = Kind{Singular: "service", Plural: "services", Name: "Service", GVR: schema.GroupVersionResource{Version: "v1", Resource: "services"}}
)

// BuiltinKinds returns the fixed set of kinds collected alongside pods.
// Pods are excluded; see CollectPods.
func BuiltinKinds() []Kind {
	return []Kind{StatefulSets, Deployments, Secrets, Jobs, ConfigMaps, Services}
}
