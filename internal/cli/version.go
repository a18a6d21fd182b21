package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	SnapoptimizeVersion, SnapoptimizeCommit, SnapoptimizeDate string
)

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Display version, commit hash, build date, and other build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("SnapOptimize version: %s\n", SnapoptimizeVersion)
		fmt.Printf("Commit: %s\n", SnapoptimizeCommit)
		fmt.Printf("Built: %s\n", SnapoptimizeDate)
	},
}

func init() {
	rootCommand.AddCommand(versionCommand)
}
