package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
)

// GuaranteeResult reports what the guarantee adjuster observed and did.
type GuaranteeResult struct {
	Previous cluster.Guarantee
	Current  cluster.Guarantee
	Changed  bool
}

// AdjustGuarantee brings the volume's space guarantee to the desired value.
//
// Behavior:
//   - Idempotent: when the current value already matches, nothing is patched.
//   - Dry run: the intended change is logged, nothing is patched.
//   - Verification: after the update the guarantee is read back; a mismatch is
//     reported as ErrGuaranteeNotApplied. The update is never retried.
func AdjustGuarantee(ctx context.Context, client cluster.Client, volumeID string, desired cluster.Guarantee, dryRun bool, logger *slog.Logger) (GuaranteeResult, error) {
	var result GuaranteeResult

	current, err := client.GetVolumeGuarantee(ctx, volumeID)
	if err != nil {
		logger.Error("Reading volume guarantee failed", "error", err)
		return result, fmt.Errorf("reading volume guarantee: %w", err)
	}
	result.Previous = current
	result.Current = current

	if current == desired {
		logger.Info("Volume guarantee is already set, no action needed", "guarantee", current)
		return result, nil
	}

	if dryRun {
		logger.Info("DRY-RUN: volume guarantee would be changed", "from", current, "to", desired)
		return result, nil
	}

	logger.Info("Setting volume guarantee", "from", current, "to", desired)
	if _, err := client.SetVolumeGuarantee(ctx, volumeID, desired); err != nil {
		logger.Error("Setting volume guarantee was not successful", "guarantee", desired, "error", err)
		return result, fmt.Errorf("%w: %w", ErrGuaranteeUpdate, err)
	}

	// Re-read after the change; the PATCH response is not trusted.
	after, err := client.GetVolumeGuarantee(ctx, volumeID)
	if err != nil {
		logger.Error("Re-reading volume guarantee failed", "error", err)
		return result, fmt.Errorf("re-reading volume guarantee: %w", err)
	}
	result.Current = after
	logger.Info("Volume guarantee now", "guarantee", after)

	if after != desired {
		logger.Error("Volume guarantee does not reflect the requested value", "requested", desired, "actual", after)
		return result, fmt.Errorf("%w: requested %s, cluster reports %s", ErrGuaranteeNotApplied, desired, after)
	}

	result.Changed = true
	return result, nil
}

// GuaranteeRequest is the input of the standalone guarantee workflow.
type GuaranteeRequest struct {
	Target  VolumeRef
	Desired string
	DryRun  bool
}

// SetGuarantee resolves the volume, checks it is read-write and adjusts its guarantee.
func SetGuarantee(ctx context.Context, req GuaranteeRequest, logger *slog.Logger) (GuaranteeResult, error) {
	desired, ok := cluster.ParseGuarantee(req.Desired)
	if !ok {
		return GuaranteeResult{}, fmt.Errorf("%w: %q", ErrInvalidGuarantee, req.Desired)
	}

	client := req.Target.Client
	logger.Info("Looking up volume and checking its capabilities", "vserver", req.Target.SVM, "volume", req.Target.Volume)

	vol, err := client.GetVolumeByName(ctx, req.Target.SVM, req.Target.Volume)
	if err != nil {
		logger.Error("Volume lookup failed", "error", err)
		return GuaranteeResult{}, fmt.Errorf("resolving volume: %w", err)
	}
	volLogger := logger.With("volume", vol.Name, "volume_uuid", vol.UUID)
	volLogger.Info("Found volume", "guarantee", vol.Guarantee)

	volType, err := client.GetVolumeType(ctx, vol.UUID)
	if err != nil {
		volLogger.Error("Reading volume type failed", "error", err)
		return GuaranteeResult{}, fmt.Errorf("reading volume type: %w", err)
	}
	vol.Type = volType
	if !vol.IsReadWrite() {
		volLogger.Error("Volume type is not RW, no changes can be made (SnapMirror destination?)", "type", volType)
		return GuaranteeResult{}, fmt.Errorf("%w: %s is of type %q", ErrIneligibleVolume, vol.Name, volType)
	}

	return AdjustGuarantee(ctx, client, vol.UUID, desired, req.DryRun, volLogger)
}
