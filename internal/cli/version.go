package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"tempmatch/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tempmatch %s\ncommit: %s\nbuilt: %s\ngo: %s\n", version.Version, version.Commit, version.BuildDate, runtime.Version())
	},
}
