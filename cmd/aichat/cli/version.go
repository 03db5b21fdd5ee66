package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// set via -ldflags at build time
var version = "dev"

func VersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current version and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "aichat %s\n", version)
			return nil
		},
	}

	return cmd
}
