package cli

import (
	"fmt"
	"os"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/workflow"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	skipSourceValidation bool
	dryRun               bool
	optimizeGuarantee    string
	snapshotPattern      string
)

var optimizeCommand = &cobra.Command{
	Use:     "optimize",
	GroupID: "snapoptimize",
	Short:   "Restore a volume to the snapshot following its youngest relevant snapshot",
	Long: `Looks up the youngest snapshot matching the naming pattern on a read-write volume,
validates it on the source volume and, after confirmation, restores the volume to
the next younger snapshot. Every snapshot younger than that one is discarded.

With --dry-run the restore is only validated by the cluster and nothing changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(headerStyle.Render("SnapOptimize - Restore Workflow"))

		target, err := targetFromFlags()
		if err != nil {
			return err
		}

		cfg := workflow.OptimizeConfig{
			Target:               target,
			SkipSourceValidation: skipSourceValidation,
			DryRun:               dryRun,
			Guarantee:            optimizeGuarantee,
			SnapshotPattern:      viper.GetString("snapshot-pattern"),
			Timeouts:             timeoutConfig(),
			LogLevel:             effectiveLogLevel(),
			Webhook:              webhookProvider(),
			Confirm:              workflow.PromptConfirmer{In: os.Stdin, Out: os.Stdout},
			Out:                  os.Stdout,
		}

		if !skipSourceValidation && viper.GetString("source-cluster") != "" {
			explicit := credentials{
				Username: viper.GetString("source-username"),
				Password: viper.GetString("source-password"),
			}
			fallback := credentials{Username: target.Profile.Username, Password: target.Profile.Password}
			profile, err := resolveProfile(viper.GetString("source-cluster"), explicit, fallback)
			if err != nil {
				return err
			}
			cfg.Source = workflow.ClusterTarget{
				Profile: profile,
				SVM:     viper.GetString("source-vserver"),
				Volume:  viper.GetString("source-volume"),
			}
		}

		ctx, cancel := signalContext()
		defer cancel()

		return workflow.RunOptimizeWorkflow(ctx, cfg)
	},
}

func init() {
	flags := optimizeCommand.Flags()
	flags.String("source-cluster", "", "Source cluster profile name or management address")
	flags.String("source-vserver", "", "Source SVM (vserver)")
	flags.String("source-volume", "", "Source volume name")
	flags.String("source-username", "", "Source API username (defaults to --username)")
	flags.String("source-password", "", "Source API password (defaults to --password)")
	flags.StringVar(&snapshotPattern, "snapshot-pattern", "", "Regular expression marking relevant snapshots, anchored at the name start (default \"^(NONE|LH|FREEZE)\")")
	flags.BoolVar(&skipSourceValidation, "skip-source-validation", false, "Do not validate the relevant snapshot on the source volume")
	flags.BoolVar(&dryRun, "dry-run", false, "Validate the restore only, no data is changed")
	flags.StringVar(&optimizeGuarantee, "guarantee", "", "Set the volume space guarantee after the restore (volume, none)")

	for _, name := range []string{
		"source-cluster", "source-vserver", "source-volume",
		"source-username", "source-password", "snapshot-pattern",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCommand.AddCommand(optimizeCommand)
}
