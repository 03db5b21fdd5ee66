package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ciwooooo/ai-chat-app/pkg/localcluster"
	"github.com/Ciwooooo/ai-chat-app/pkg/logger"
)

func SetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "setup",
		Short:        "Provision the local cluster and enable ingress",
		Long:         `Start a local minikube cluster, enable the ingress addon, and point your kubeconfig at it. Run once before the first deploy.`,
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()
			log := logger.NewCLILogger(cmd.OutOrStdout())

			mk := localcluster.NewMinikube(v.GetString("profile"))
			if err := mk.Check(); err != nil {
				return err
			}

			log.Initialize()

			log.ActionWithSpinner("Starting local cluster")
			if err := mk.Start(cmd.Context()); err != nil {
				log.FinishSpinnerWithError()
				return err
			}
			log.FinishSpinner()

			log.ActionWithSpinner("Enabling ingress controller")
			if err := mk.EnableIngress(cmd.Context()); err != nil {
				log.FinishSpinnerWithError()
				return err
			}
			log.FinishSpinner()

			hostname := v.GetString("hostname")

			ip, err := mk.IP(cmd.Context())
			if err != nil {
				log.ActionWithoutSpinner("Could not determine the cluster address; find it with 'minikube ip' and add a hosts entry for %s", hostname)
			} else {
				log.ActionWithoutSpinner("Cluster is up. Add this line to /etc/hosts so %s resolves:", hostname)
				log.ActionWithoutSpinner("  %s  %s", ip, hostname)
			}

			log.ActionWithoutSpinner("")
			log.ActionWithoutSpinner("Your kubeconfig now points at the new cluster. Next: aichat deploy")
			log.Finish()

			return nil
		},
	}

	cmd.Flags().String("profile", "aichat", "minikube profile to start")
	cmd.Flags().String("hostname", "ai-chat.local", "hostname the ingress will answer on")

	return cmd
}
