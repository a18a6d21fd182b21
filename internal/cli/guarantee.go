package cli

import (
	"fmt"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	guaranteeValue  string
	guaranteeDryRun bool
)

var guaranteeCommand = &cobra.Command{
	Use:     "guarantee",
	GroupID: "snapoptimize",
	Short:   "Set the space guarantee of a read-write volume",
	Long:    `Reads the current space guarantee of a read-write volume and changes it to the requested value (volume or none) when it differs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(headerStyle.Render("SnapOptimize - Guarantee Workflow"))

		target, err := targetFromFlags()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		return workflow.RunGuaranteeWorkflow(ctx, workflow.GuaranteeConfig{
			Target:    target,
			Guarantee: guaranteeValue,
			DryRun:    guaranteeDryRun,
			Timeouts:  timeoutConfig(),
			LogLevel:  effectiveLogLevel(),
			Webhook:   webhookProvider(),
		})
	},
}

func init() {
	guaranteeCommand.Flags().StringVarP(&guaranteeValue, "guarantee", "g", "", "Space guarantee to set (volume, none)")
	guaranteeCommand.Flags().BoolVar(&guaranteeDryRun, "dry-run", false, "Report the intended change without applying it")
	_ = guaranteeCommand.MarkFlagRequired("guarantee")

	rootCommand.AddCommand(guaranteeCommand)
}
