package deploy

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/Ciwooooo/ai-chat-app/pkg/deploy/types"
)

// YAML renders the full descriptor set as YAML documents keyed by
// filename, in the same order the orchestrator would apply them.
func YAML(opts types.DeployOptions) (map[string][]byte, error) {
	docs := map[string][]byte{}

	for _, stage := range Plan(opts) {
		for _, obj := range stage.Objects {
			data, err := yaml.Marshal(obj)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to marshal %s", describeObject(obj))
			}

			kind := strings.ToLower(obj.GetObjectKind().GroupVersionKind().Kind)
			docs[fmt.Sprintf("%s-%s.yaml", kind, obj.GetName())] = data
		}
	}

	return docs, nil
}
