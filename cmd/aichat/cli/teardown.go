package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ciwooooo/ai-chat-app/pkg/cluster"
	"github.com/Ciwooooo/ai-chat-app/pkg/deploy"
	deploytypes "github.com/Ciwooooo/ai-chat-app/pkg/deploy/types"
	"github.com/Ciwooooo/ai-chat-app/pkg/k8sutil"
	"github.com/Ciwooooo/ai-chat-app/pkg/logger"
)

func TeardownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "teardown",
		Short:        "Remove the deployed topology from the cluster",
		Long:         `Delete the deployment namespace and everything in it. The local cluster keeps running so the next deploy stays fast.`,
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()
			log := logger.NewCLILogger(cmd.OutOrStdout())

			opts := deploytypes.DeployOptions{
				Namespace: getNamespaceOrDefault(v.GetString("namespace")),
				Hostname:  v.GetString("hostname"),
			}

			clientset, err := k8sutil.GetClientset()
			if err != nil {
				return errors.Wrap(err, "failed to get clientset")
			}

			log.Initialize()

			result, err := deploy.Teardown(cmd.Context(), cluster.NewKubeClient(clientset), opts, log)
			if err != nil {
				log.Error(err)
				return err
			}

			log.ActionWithoutSpinner("")
			log.ActionWithoutSpinner("Left in place:")
			for _, remnant := range result.Remnants {
				log.ChildActionWithoutSpinner("%s", remnant)
			}
			log.ActionWithoutSpinner("")
			log.ActionWithoutSpinner("To remove the cluster itself: minikube delete --profile %s", v.GetString("profile"))
			log.Finish()

			return nil
		},
	}

	cmd.Flags().String("hostname", "ai-chat.local", "hostname used for the ingress hosts entry")
	cmd.Flags().String("profile", "aichat", "minikube profile used at setup")

	return cmd
}
