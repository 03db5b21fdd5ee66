package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/api/resource"

	deploytypes "github.com/Ciwooooo/ai-chat-app/pkg/deploy/types"
)

const defaultNamespace = "ai-chat"

func getNamespaceOrDefault(namespace string) string {
	if namespace == "" {
		return defaultNamespace
	}
	return namespace
}

// deployFlags registers the flags shared by deploy and manifests.
func deployFlags(flagset *pflag.FlagSet) {
	flagset.String("hostname", "ai-chat.local", "hostname the ingress will answer on")
	flagset.String("ingress-class", "nginx", "ingress class to route through")
	flagset.String("web-image", "aichat-web:latest", "image for the chat web application")
	flagset.String("model-server-image", "ollama/ollama:latest", "image for the model server")
	flagset.String("model", "llama3.2:1b", "model to pull and serve")
	flagset.String("model-volume-size", "10Gi", "size of the model weights volume")
	flagset.Duration("model-server-timeout", deployDefaults.modelServerTimeout, "how long to wait for the model server to become available")
	flagset.Duration("model-pull-timeout", deployDefaults.modelPullTimeout, "how long to wait for the model weights download")
	flagset.Duration("web-timeout", deployDefaults.webTimeout, "how long to wait for the web app to become available")
	flagset.Bool("strict-model-pull", false, "abort the deploy when the model pull times out instead of continuing")
}

func getDeployOptions(v *viper.Viper) (deploytypes.DeployOptions, error) {
	opts := deploytypes.DeployOptions{
		Namespace:          getNamespaceOrDefault(v.GetString("namespace")),
		Hostname:           v.GetString("hostname"),
		IngressClass:       v.GetString("ingress-class"),
		WebImage:           v.GetString("web-image"),
		ModelServerImage:   v.GetString("model-server-image"),
		Model:              v.GetString("model"),
		ModelVolumeSize:    v.GetString("model-volume-size"),
		ModelServerTimeout: v.GetDuration("model-server-timeout"),
		ModelPullTimeout:   v.GetDuration("model-pull-timeout"),
		WebTimeout:         v.GetDuration("web-timeout"),
		StrictModelPull:    v.GetBool("strict-model-pull"),
	}

	if _, err := resource.ParseQuantity(opts.ModelVolumeSize); err != nil {
		return opts, errors.Wrapf(err, "invalid model volume size %q", opts.ModelVolumeSize)
	}

	return opts, nil
}
