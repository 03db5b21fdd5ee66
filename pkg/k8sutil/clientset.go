package k8sutil

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

var kubernetesConfigFlags *genericclioptions.ConfigFlags

// AddFlags registers the standard kubeconfig connection flags
// (--kubeconfig, --context, --namespace, ...) on the given flag set.
func AddFlags(flags *pflag.FlagSet) {
	kubernetesConfigFlags = genericclioptions.NewConfigFlags(false)
	kubernetesConfigFlags.AddFlags(flags)
}

func GetRESTConfig() (*rest.Config, error) {
	if kubernetesConfigFlags == nil {
		kubernetesConfigFlags = genericclioptions.NewConfigFlags(false)
	}

	cfg, err := kubernetesConfigFlags.ToRESTConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert kube flags to rest config")
	}

	return cfg, nil
}

func GetClientset() (kubernetes.Interface, error) {
	cfg, err := GetRESTConfig()
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create kubernetes clientset")
	}

	return clientset, nil
}
