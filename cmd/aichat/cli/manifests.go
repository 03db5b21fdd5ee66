package cli

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Ciwooooo/ai-chat-app/pkg/deploy"
	"github.com/Ciwooooo/ai-chat-app/pkg/logger"
)

func ManifestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "manifests",
		Short:        "Write the deployment manifests to a directory",
		Long:         `Render the same resources the deploy command applies, as YAML files, for inspection or for applying with other tooling.`,
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

			docs, err := deploy.YAML(opts)
			if err != nil {
				return errors.Wrap(err, "failed to render manifests")
			}

			rootDir := v.GetString("rootdir")
			if err := os.MkdirAll(rootDir, 0755); err != nil {
				return errors.Wrapf(err, "failed to create %s", rootDir)
			}

			for name, data := range docs {
				path := filepath.Join(rootDir, name)
				if err := os.WriteFile(path, data, 0644); err != nil {
					return errors.Wrapf(err, "failed to write %s", path)
				}
			}

			log.ActionWithoutSpinner("Wrote %d manifests to %s", len(docs), rootDir)

			return nil
		},
	}

	deployFlags(cmd.Flags())
	cmd.Flags().String("rootdir", "./manifests", "directory to write the manifests into")

	return cmd
}
