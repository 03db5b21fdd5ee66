package cli

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_getNamespaceOrDefault(t *testing.T) {
	assert.Equal(t, "ai-chat", getNamespaceOrDefault(""))
	assert.Equal(t, "custom", getNamespaceOrDefault("custom"))
}

func Test_getDeployOptions(t *testing.T) {
	req := require.New(t)

	v := viper.New()
	v.Set("namespace", "my-ns")
	v.Set("hostname", "chat.example.com")
	v.Set("ingress-class", "traefik")
	v.Set("web-image", "web:1.0")
	v.Set("model-server-image", "ollama/ollama:0.5")
	v.Set("model", "llama3.2:3b")
	v.Set("model-volume-size", "20Gi")
	v.Set("model-server-timeout", "5m")
	v.Set("model-pull-timeout", "30m")
	v.Set("web-timeout", "3m")
	v.Set("strict-model-pull", true)

	opts, err := getDeployOptions(v)
	req.NoError(err)
	assert.Equal(t, "my-ns", opts.Namespace)
	assert.Equal(t, "chat.example.com", opts.Hostname)
	assert.Equal(t, "traefik", opts.IngressClass)
	assert.Equal(t, "llama3.2:3b", opts.Model)
	assert.Equal(t, "20Gi", opts.ModelVolumeSize)
	assert.Equal(t, 30*time.Minute, opts.ModelPullTimeout)
	assert.True(t, opts.StrictModelPull)
}

func Test_getDeployOptions_DefaultNamespace(t *testing.T) {
	req := require.New(t)

	v := viper.New()
	v.Set("model-volume-size", "10Gi")

	opts, err := getDeployOptions(v)
	req.NoError(err)
	assert.Equal(t, "ai-chat", opts.Namespace)
}

func Test_getDeployOptions_InvalidVolumeSize(t *testing.T) {
	v := viper.New()
	v.Set("model-volume-size", "ten gigs")

	_, err := getDeployOptions(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model volume size")
}
