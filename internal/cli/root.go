package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	clusterName, vserverName, volumeName string
	username, password                   string
	insecure                             bool
	logLevel                             string
	debug, verbose                       bool
	timeout                              int
	configFile                           string
	webhookURL                           string
	webhookUsername                      string
	webhookPassword                      string
)

var rootCommand = &cobra.Command{
	Use:     "snapoptimize",
	Aliases: []string{"snapoptimize-go"},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1. Allow 'version' (and 'help') to run without the flags
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		// 2. Optional config file with cluster profiles
		if configFile != "" {
			viper.SetConfigFile(configFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("reading config file %s: %w", configFile, err)
			}
		}

		// 3. Manually enforce the target flags (flag, env or config)
		var missing []string
		for _, name := range []string{"cluster", "vserver", "volume"} {
			if viper.GetString(name) == "" {
				missing = append(missing, fmt.Sprintf("%q", name))
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("required flag(s) %s not set", strings.Join(missing, ", "))
		}

		return nil
	},
	SilenceUsage: true,
	Short:        "SnapOptimize: ONTAP Snapshot Chain Optimizer",
	Long: `SnapOptimize reverts a read-write ONTAP volume to the snapshot taken right after
its youngest application-consistent snapshot (names starting with NONE, LH or FREEZE),
discarding every younger snapshot.

Before anything is changed the relevant snapshot is validated against the source
(SnapMirror primary) volume and the operator has to confirm the restore.

Author: Aravindh Murugesan`,
}

func Execute() error {
	return rootCommand.Execute()
}

func init() {
	rootCommand.AddGroup(&cobra.Group{ID: "snapoptimize", Title: "SnapOptimize"})

	// Global Persistent Flags with env vars support
	flags := rootCommand.PersistentFlags()
	flags.StringVarP(&clusterName, "cluster", "c", "", "Cluster profile name or management address (required)")
	flags.StringVarP(&vserverName, "vserver", "s", "", "SVM (vserver) owning the volume (required)")
	flags.StringVarP(&volumeName, "volume", "v", "", "Volume name (required)")
	flags.StringVarP(&username, "username", "u", "", "API username (default \"admin\")")
	flags.StringVarP(&password, "password", "p", "", "API password (prompted when empty)")
	flags.BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	flags.IntVar(&timeout, "timeout", 0, "Per-call timeout in seconds (0 = 60s default)")
	flags.StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	flags.BoolVar(&debug, "debug", false, "Shortcut for --log-level debug")
	flags.BoolVar(&verbose, "verbose", false, "Shortcut for --log-level debug")
	flags.StringVar(&configFile, "config", "", "YAML config file with cluster profiles")
	flags.StringVar(&webhookURL, "webhook-url", "", "Webhook URL for run reports")
	flags.StringVar(&webhookUsername, "webhook-username", "", "Webhook username for run reports")
	flags.StringVar(&webhookPassword, "webhook-password", "", "Webhook password for run reports")

	// Bind to env vars
	for _, name := range []string{
		"cluster", "vserver", "volume", "username", "password", "insecure",
		"timeout", "log-level", "webhook-url", "webhook-username", "webhook-password",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	viper.SetEnvPrefix("SNAPOPTIMIZE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
