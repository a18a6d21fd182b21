package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/snapshot"
)

// Outcome is the terminal state of a restore run.
type Outcome string

const (
	OutcomeDone             Outcome = "done"
	OutcomeIneligibleVolume Outcome = "ineligible-volume"
	OutcomeNoRelevant       Outcome = "no-relevant-snapshot"
	OutcomeAlreadyOptimal   Outcome = "already-optimal"
	OutcomeUnconfirmed      Outcome = "unconfirmed-lineage"
	OutcomeDeclined         Outcome = "operator-declined"
	OutcomeFailed           Outcome = "failed"
)

// VolumeRef names a volume on one cluster session.
type VolumeRef struct {
	Client cluster.Client
	SVM    string
	Volume string
}

// RestoreRequest is the input of the restore decision gate.
type RestoreRequest struct {
	Target VolumeRef
	// Source is required unless SkipSourceValidation is set.
	Source *VolumeRef

	SkipSourceValidation bool
	DryRun               bool

	Matcher *snapshot.Matcher
	Confirm Confirmer
	// Out receives the pre-execution summary. Nil discards it.
	Out io.Writer
}

// RestoreResult describes how far the gate got and what it decided.
type RestoreResult struct {
	Outcome       Outcome
	TargetVolume  cluster.Volume
	Selection     snapshot.Selection
	Consistency   *ConsistencyReport
	RestoreTarget cluster.Snapshot
	DryRun        bool
}

// Restore runs the restore decision gate for one volume.
//
// States, in order (every state before EXECUTE is read-only):
//  1. CHECK_VOLUME_TYPE: the target must be read-write.
//  2. SELECT_SNAPSHOT: the youngest matching snapshot must exist and be followed
//     by at least one younger snapshot (the restore target).
//  3. VALIDATE_SOURCE (skippable): the anchor must exist on the source volume;
//     prefix-set mismatches are only warned about.
//  4. CONFIRM: the summary is rendered; dry runs auto-proceed, otherwise the
//     operator must answer yes.
//  5. EXECUTE: the restore (or its validate-only variant) is issued once.
//
// A non-nil error always wraps one of the workflow sentinel errors or a
// cluster error; RestoreResult.Outcome names the terminal state.
func Restore(ctx context.Context, req RestoreRequest, logger *slog.Logger) (RestoreResult, error) {
	result := RestoreResult{Outcome: OutcomeFailed, DryRun: req.DryRun}
	target := req.Target.Client

	if req.Matcher == nil {
		req.Matcher = snapshot.MustMatcher(snapshot.DefaultPattern)
	}
	if !req.SkipSourceValidation && req.Source == nil {
		return result, ErrSourceNotConfigured
	}

	// 1. Resolve & Check Volume Type
	logger.Info("Looking up volume", "vserver", req.Target.SVM, "volume", req.Target.Volume)
	vol, err := target.GetVolumeByName(ctx, req.Target.SVM, req.Target.Volume)
	if err != nil {
		logger.Error("Target volume lookup failed", "error", err)
		return result, fmt.Errorf("resolving target volume: %w", err)
	}
	result.TargetVolume = vol
	volLogger := logger.With("volume", vol.Name, "volume_uuid", vol.UUID)
	volLogger.Info("Found volume")

	volType, err := target.GetVolumeType(ctx, vol.UUID)
	if err != nil {
		volLogger.Error("Reading volume type failed", "error", err)
		return result, fmt.Errorf("reading volume type: %w", err)
	}
	vol.Type = volType
	result.TargetVolume = vol
	if !vol.IsReadWrite() {
		volLogger.Error("Volume type is not RW, restore is not possible (SnapMirror destination?)", "type", volType)
		result.Outcome = OutcomeIneligibleVolume
		return result, fmt.Errorf("%w: %s is of type %q", ErrIneligibleVolume, vol.Name, volType)
	}

	// 2. Select Snapshot
	volLogger.Info("Searching relevant snapshots", "pattern", req.Matcher.String())
	snaps, err := target.ListSnapshots(ctx, vol.UUID)
	if err != nil {
		volLogger.Error("Listing snapshots failed", "error", err)
		return result, fmt.Errorf("listing target snapshots: %w", err)
	}
	logSnapshots(volLogger, "target", snaps)

	sel := snapshot.Select(snaps, req.Matcher)
	result.Selection = sel

	switch sel.State() {
	case snapshot.StateNoSnapshots, snapshot.StateNoMatch:
		volLogger.Error("Relevant snapshot for restoration is not found", "snapshot_count", len(snaps))
		result.Outcome = OutcomeNoRelevant
		return result, ErrNoRelevantSnapshot
	case snapshot.StateAlreadyOptimal:
		volLogger.Info("Relevant snapshot is the last snapshot in the volume, no snapshots to optimize",
			"snapshot", sel.Anchor.Name)
		result.Outcome = OutcomeAlreadyOptimal
		return result, fmt.Errorf("%w: %s", ErrAlreadyOptimal, sel.Anchor.Name)
	}

	restoreTarget, _ := sel.RestoreTarget()
	result.RestoreTarget = restoreTarget
	volLogger.Info("The youngest relevant snapshot is found",
		"snapshot", sel.Anchor.Name,
		"version_uuid", sel.Anchor.VersionUUID,
		"create_time", formatTime(sel.Anchor.CreateTime),
		"restore_snapshot", restoreTarget.Name)

	// 3. Validate Source
	if req.SkipSourceValidation {
		volLogger.Warn("Skipping source volume snapshot validation as requested")
	} else {
		source := req.Source.Client
		srcVol, err := source.GetVolumeByName(ctx, req.Source.SVM, req.Source.Volume)
		if err != nil {
			volLogger.Error("Source volume lookup failed", "source_cluster", source.Name(), "error", err)
			return result, fmt.Errorf("resolving source volume: %w", err)
		}
		volLogger.Info("Found source volume", "source_cluster", source.Name(), "source_volume", srcVol.Name, "source_volume_uuid", srcVol.UUID)

		report, err := CheckSourceConsistency(ctx, source, srcVol, snaps, sel.Anchor, req.Matcher, volLogger)
		if err != nil {
			volLogger.Error("Source validation failed", "error", err)
			return result, err
		}
		result.Consistency = &report

		if !report.AnchorConfirmed {
			volLogger.Error("Relevant snapshot cannot be validated on source cluster",
				"snapshot", sel.Anchor.Name,
				"source_cluster", report.SourceCluster)
			result.Outcome = OutcomeUnconfirmed
			return result, fmt.Errorf("%w: %s on %s", ErrUnconfirmedLineage, sel.Anchor.Name, report.SourceCluster)
		}
		volLogger.Info("Relevant snapshot exists on source cluster",
			"source_cluster", report.SourceCluster,
			"restore_snapshot", restoreTarget.Name)
	}

	// 4. Confirm
	if req.Out != nil {
		fmt.Fprintln(req.Out, RenderSummary(Summary{
			TargetCluster: target.Name(),
			TargetVolume:  vol,
			Selection:     sel,
			Consistency:   result.Consistency,
			DryRun:        req.DryRun,
		}))
	}

	if !req.DryRun {
		if req.Confirm == nil {
			result.Outcome = OutcomeDeclined
			return result, fmt.Errorf("%w: no confirmation available", ErrOperatorDeclined)
		}
		question := fmt.Sprintf("Please confirm restoring volume %s to snapshot %s (UUID %s)",
			vol.Name, restoreTarget.Name, restoreTarget.VersionUUID)
		ok, err := req.Confirm.Confirm(question)
		if err != nil {
			result.Outcome = OutcomeDeclined
			return result, fmt.Errorf("%w: %w", ErrOperatorDeclined, err)
		}
		if !ok {
			volLogger.Info("Volume restore is cancelled by operator")
			result.Outcome = OutcomeDeclined
			return result, ErrOperatorDeclined
		}
	}

	// 5. Execute
	if req.DryRun {
		volLogger.Info("Executing dry-run restore, only data validation",
			"restore_snapshot", restoreTarget.Name,
			"version_uuid", restoreTarget.VersionUUID)
	} else {
		volLogger.Info("Restoring volume",
			"restore_snapshot", restoreTarget.Name,
			"version_uuid", restoreTarget.VersionUUID,
			"discarded_count", len(sel.Discarded()))
	}

	if err := target.RestoreVolumeToSnapshot(ctx, vol.UUID, restoreTarget.VersionUUID, req.DryRun); err != nil {
		if req.DryRun {
			volLogger.Error("Dry-run has failed", "error", err)
		} else {
			volLogger.Error("Volume restore was not successful", "error", err)
		}
		result.Outcome = OutcomeFailed
		return result, fmt.Errorf("%w: %w", ErrRestoreRejected, err)
	}

	result.Outcome = OutcomeDone
	if req.DryRun {
		volLogger.Info("Dry-run did not detect any issues")
		return result, nil
	}

	volLogger.Info("Volume was restored successfully")
	if after, err := target.ListSnapshots(ctx, vol.UUID); err == nil {
		logSnapshots(volLogger, "after-restore", after)
	} else {
		volLogger.Warn("Listing snapshots after restore failed", "error", err)
	}

	return result, nil
}
