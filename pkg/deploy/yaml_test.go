package deploy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_YAML(t *testing.T) {
	req := require.New(t)

	docs, err := YAML(testDeployOptions())
	req.NoError(err)

	// one document per object in the plan
	req.Len(docs, 9)

	expected := []string{
		"namespace-ai-chat.yaml",
		"persistentvolumeclaim-ollama-models.yaml",
		"deployment-ollama.yaml",
		"service-ollama.yaml",
		"job-model-pull.yaml",
		"configmap-aichat-web-config.yaml",
		"deployment-aichat-web.yaml",
		"service-aichat-web.yaml",
		"ingress-aichat.yaml",
	}
	for _, name := range expected {
		req.Contains(docs, name)
	}

	assert.Contains(t, string(docs["namespace-ai-chat.yaml"]), "kind: Namespace")
	assert.Contains(t, string(docs["deployment-ollama.yaml"]), "image: ollama/ollama:latest")
	assert.Contains(t, string(docs["ingress-aichat.yaml"]), "host: ai-chat.local")
}
