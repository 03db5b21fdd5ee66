package cli

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ciwooooo/ai-chat-app/pkg/cluster"
	"github.com/Ciwooooo/ai-chat-app/pkg/deploy"
	"github.com/Ciwooooo/ai-chat-app/pkg/k8sutil"
	"github.com/Ciwooooo/ai-chat-app/pkg/logger"
	"github.com/Ciwooooo/ai-chat-app/pkg/print"
)

var deployDefaults = struct {
	modelServerTimeout time.Duration
	modelPullTimeout   time.Duration
	webTimeout         time.Duration
}{
	modelServerTimeout: time.Minute * 5,
	// model weight downloads are large, give them room
	modelPullTimeout: time.Minute * 30,
	webTimeout:       time.Minute * 3,
}

func DeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "deploy",
		Short:        "Deploy the chat topology to the cluster",
		Long:         `Apply the full topology in order and wait for each gated stage. Safe to re-run; a second deploy converges to the same state.`,
		SilenceUsage: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()
			log := logger.NewCLILogger(cmd.OutOrStdout())

			opts, err := getDeployOptions(v)
			if err != nil {
				return err
			}

			clientset, err := k8sutil.GetClientset()
			if err != nil {
				return errors.Wrap(err, "failed to get clientset")
			}

			log.Initialize()
			log.ActionWithoutSpinner("Deploying to namespace %s", opts.Namespace)

			orchestrator := deploy.NewOrchestrator(cluster.NewKubeClient(clientset), deploy.Plan(opts), opts.Namespace, log)

			report, err := orchestrator.Run(cmd.Context())
			if err != nil {
				log.Error(err)
				return err
			}

			log.ActionWithoutSpinner("")
			print.Topology(cmd.OutOrStdout(), report.Snapshot, v.GetString("output"))
			log.ActionWithoutSpinner("")

			if report.HasWarnings() {
				log.ActionWithoutSpinner("Some stages did not become ready in time; they may still catch up. Re-run deploy to check, or inspect the namespace with kubectl.")
				log.ActionWithoutSpinner("")
			}

			log.ActionWithoutSpinner("The chat app will answer on http://%s once the hostname resolves.", opts.Hostname)
			log.ActionWithoutSpinner("If you have not added it yet, append this to /etc/hosts (use 'minikube ip' for the address):")
			log.ActionWithoutSpinner("  <cluster-ip>  %s", opts.Hostname)
			log.Finish()

			return nil
		},
	}

	deployFlags(cmd.Flags())
	cmd.Flags().StringP("output", "o", "", "output format for the topology summary (table or json)")

	return cmd
}
