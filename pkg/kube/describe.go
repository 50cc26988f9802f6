package kube

import (
	"context"

	"k8s.io/kubectl/pkg/describe"
)

// kubectlDescribe renders describe text using kubectl's describer registry.
// Kinds without a registered describer (custom resources) fall back to the
// structured YAML rendering so the describe file is never empty on success.
func (c *Client) kubectlDescribe(ctx context.Context, namespace string, kind Kind, name string) (string, error) {
	if c.RestConfig != nil {
		if describer, ok := describe.DescriberFor(kind.GroupKind(), c.RestConfig); ok {
			return describer.Describe(namespace, name, describe.DescriberSettings{ShowEvents: true})
		}
	}

	out, err := c.GetYAML(ctx, namespace, kind, name)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
