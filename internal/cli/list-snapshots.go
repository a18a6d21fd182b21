package cli

import (
	"fmt"
	"os"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/workflow"
	"github.com/spf13/cobra"
)

var listPattern string

var listSnapshotsCommand = &cobra.Command{
	Use:     "list-snapshots",
	GroupID: "snapoptimize",
	Short:   "List all snapshots of a volume",
	Long:    `Prints every snapshot of the volume, oldest first, with its lineage UUID, create time and its rank relative to the youngest relevant snapshot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(headerStyle.Render("SnapOptimize - Snapshot Listing"))

		target, err := targetFromFlags()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		return workflow.RunListSnapshots(ctx, workflow.ListConfig{
			Target:          target,
			SnapshotPattern: listPattern,
			Timeouts:        timeoutConfig(),
			LogLevel:        effectiveLogLevel(),
			Out:             os.Stdout,
		})
	},
}

func init() {
	listSnapshotsCommand.Flags().StringVar(&listPattern, "snapshot-pattern", "", "Regular expression marking relevant snapshots (default \"^(NONE|LH|FREEZE)\")")
	rootCommand.AddCommand(listSnapshotsCommand)
}
