package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ciwooooo/ai-chat-app/pkg/k8sutil"
)

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aichat",
		Short: "Deploy an AI chat app backed by a local model server to Kubernetes",
		Long: `aichat stands up a small chat web application and an Ollama model
server on a single-node local Kubernetes cluster, in order:
namespace, model server, model weights pull, web app, ingress.`,
		PreRun: func(cmd *cobra.Command, args []string) {
			viper.BindPFlags(cmd.Flags())
		},
	}

	cobra.OnInitialize(initConfig)

	k8sutil.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(SetupCmd())
	cmd.AddCommand(DeployCmd())
	cmd.AddCommand(TeardownCmd())
	cmd.AddCommand(ManifestsCmd())
	cmd.AddCommand(VersionCmd())

	viper.BindPFlags(cmd.Flags())

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return cmd
}

func InitAndExecute() {
	if err := RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("AICHAT")
	viper.AutomaticEnv()
}
