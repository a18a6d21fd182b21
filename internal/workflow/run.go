package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/notifications"
	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/snapshot"
)

// ClusterTarget identifies a volume by cluster profile, SVM and name.
type ClusterTarget struct {
	Profile cluster.Profile
	SVM     string
	Volume  string
}

func (t ClusterTarget) configured() bool {
	return t.Profile.Address != "" && t.SVM != "" && t.Volume != ""
}

// OptimizeConfig carries everything the optimize command collected from flags.
type OptimizeConfig struct {
	Target ClusterTarget
	Source ClusterTarget

	SkipSourceValidation bool
	DryRun               bool
	Guarantee            string
	SnapshotPattern      string

	Timeouts cluster.TimeoutConfig
	LogLevel string
	Webhook  notifications.Webhook

	Confirm Confirmer
	Out     io.Writer
}

// RunOptimizeWorkflow orchestrates one restore run against one volume pair.
//
// Responsibilities:
//  1. Validation: flags are checked before any cluster is contacted.
//  2. Connection: one session per cluster, target first.
//  3. Decision: the restore gate runs to a terminal state.
//  4. Guarantee: the optional guarantee change runs after a successful restore.
//  5. Reporting: the run report is posted to the webhook, when configured.
func RunOptimizeWorkflow(ctx context.Context, cfg OptimizeConfig) error {
	// 1. Setup Logger
	runID := newRunID()
	logger := SetupLogger(cfg.LogLevel, cfg.Target.Profile.Name).With("workflow", "optimize", "run_id", runID)
	logger.Info("Initializing snapshot optimization workflow", "dry_run", cfg.DryRun)

	report := notifications.RunReport{
		Service:  "snapoptimize",
		Workflow: "optimize",
		RunID:    runID,
		Cluster:  cfg.Target.Profile.Name,
		VServer:  cfg.Target.SVM,
		Volume:   cfg.Target.Volume,
		DryRun:   cfg.DryRun,
	}

	err := runOptimize(ctx, cfg, logger, &report)
	notify(ctx, cfg.Webhook, report, err, logger)
	return err
}

func runOptimize(ctx context.Context, cfg OptimizeConfig, logger *slog.Logger, report *notifications.RunReport) error {
	// 1. Validate Input
	matcher, err := snapshot.NewMatcher(cfg.SnapshotPattern)
	if err != nil {
		return err
	}

	var desired cluster.Guarantee
	if cfg.Guarantee != "" {
		g, ok := cluster.ParseGuarantee(cfg.Guarantee)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidGuarantee, cfg.Guarantee)
		}
		desired = g
	}

	if !cfg.SkipSourceValidation && !cfg.Source.configured() {
		logger.Error("Source validation requested but source is incomplete",
			"source_cluster", cfg.Source.Profile.Address,
			"source_vserver", cfg.Source.SVM,
			"source_volume", cfg.Source.Volume)
		return ErrSourceNotConfigured
	}

	// 2. Connect
	logger.Debug("Attempting to connect to target cluster", "address", cfg.Target.Profile.Address)
	target, err := connect(ctx, cfg.Target.Profile, cfg.Timeouts)
	if err != nil {
		logger.Error("Target cluster connection failed", "error", err)
		return err
	}
	logger.Info("Target cluster connection established", "cluster_name", target.ClusterName, "version", target.Version)

	req := RestoreRequest{
		Target:               VolumeRef{Client: target, SVM: cfg.Target.SVM, Volume: cfg.Target.Volume},
		SkipSourceValidation: cfg.SkipSourceValidation,
		DryRun:               cfg.DryRun,
		Matcher:              matcher,
		Confirm:              cfg.Confirm,
		Out:                  cfg.Out,
	}

	if !cfg.SkipSourceValidation {
		logger.Debug("Attempting to connect to source cluster", "address", cfg.Source.Profile.Address)
		source, err := connect(ctx, cfg.Source.Profile, cfg.Timeouts)
		if err != nil {
			logger.Error("Source cluster connection failed", "source_cluster", cfg.Source.Profile.Name, "error", err)
			return err
		}
		logger.Info("Source cluster connection established", "source_cluster", source.Name(), "cluster_name", source.ClusterName)
		req.Source = &VolumeRef{Client: source, SVM: cfg.Source.SVM, Volume: cfg.Source.Volume}
	}

	// 3. Decide & Restore
	result, err := Restore(ctx, req, logger)
	fillReport(report, result)
	if err != nil {
		return err
	}

	// 4. Guarantee
	if desired != "" {
		g, err := AdjustGuarantee(ctx, target, result.TargetVolume.UUID, desired, cfg.DryRun,
			logger.With("volume", result.TargetVolume.Name, "volume_uuid", result.TargetVolume.UUID))
		report.Guarantee = string(g.Current)
		if err != nil {
			return err
		}
	}

	logger.Info("Snapshot optimization workflow completed", "outcome", result.Outcome)
	return nil
}

func fillReport(report *notifications.RunReport, result RestoreResult) {
	report.Outcome = string(result.Outcome)
	report.VolumeUUID = result.TargetVolume.UUID
	if result.Selection.Matched {
		report.Anchor = result.Selection.Anchor.Name
	}
	report.RestoreTo = result.RestoreTarget.Name
	for _, s := range result.Selection.Discarded() {
		report.Discarded = append(report.Discarded, s.Name)
	}
	if result.Consistency != nil {
		for _, d := range result.Consistency.Differences {
			report.Mismatches = append(report.Mismatches, d.VersionUUID)
		}
	}
}

func notify(ctx context.Context, webhook notifications.Webhook, report notifications.RunReport, runErr error, logger *slog.Logger) {
	if !webhook.Enabled() {
		return
	}

	report.Message = "completed"
	if runErr != nil {
		report.Message = runErr.Error()
		if report.Outcome == "" || report.Outcome == string(OutcomeDone) {
			report.Outcome = string(OutcomeFailed)
		}
	}

	if err := webhook.Notify(context.WithoutCancel(ctx), report); err != nil {
		logger.Warn("Webhook notification failed", "error", err)
		return
	}
	logger.Debug("Webhook notification sent", "outcome", report.Outcome)
}

// GuaranteeConfig carries the guarantee command flags.
type GuaranteeConfig struct {
	Target    ClusterTarget
	Guarantee string
	DryRun    bool

	Timeouts cluster.TimeoutConfig
	LogLevel string
	Webhook  notifications.Webhook
}

// RunGuaranteeWorkflow sets a volume's space guarantee, standalone.
func RunGuaranteeWorkflow(ctx context.Context, cfg GuaranteeConfig) error {
	runID := newRunID()
	logger := SetupLogger(cfg.LogLevel, cfg.Target.Profile.Name).With("workflow", "guarantee", "run_id", runID)

	report := notifications.RunReport{
		Service:  "snapoptimize",
		Workflow: "guarantee",
		RunID:    runID,
		Cluster:  cfg.Target.Profile.Name,
		VServer:  cfg.Target.SVM,
		Volume:   cfg.Target.Volume,
		DryRun:   cfg.DryRun,
	}

	err := func() error {
		if _, ok := cluster.ParseGuarantee(cfg.Guarantee); !ok {
			return fmt.Errorf("%w: %q", ErrInvalidGuarantee, cfg.Guarantee)
		}

		client, err := connect(ctx, cfg.Target.Profile, cfg.Timeouts)
		if err != nil {
			logger.Error("Cluster connection failed", "error", err)
			return err
		}

		result, err := SetGuarantee(ctx, GuaranteeRequest{
			Target:  VolumeRef{Client: client, SVM: cfg.Target.SVM, Volume: cfg.Target.Volume},
			Desired: cfg.Guarantee,
			DryRun:  cfg.DryRun,
		}, logger)
		report.Guarantee = string(result.Current)
		return err
	}()

	switch {
	case err == nil:
		report.Outcome = string(OutcomeDone)
	case errors.Is(err, ErrIneligibleVolume):
		report.Outcome = string(OutcomeIneligibleVolume)
	default:
		report.Outcome = string(OutcomeFailed)
	}
	notify(ctx, cfg.Webhook, report, err, logger)
	return err
}
