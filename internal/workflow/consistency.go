package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/snapshot"
)

// Difference is one lineage identifier present on only one side.
type Difference struct {
	VersionUUID string
	Name        string
	MissingOn   string // "source" or "target"
}

// ConsistencyReport is the outcome of the cross-cluster check.
type ConsistencyReport struct {
	SourceCluster string
	SourceVolume  cluster.Volume

	// Differences lists matching snapshots present on only one of the volumes.
	// It is advisory: a non-empty list is logged and shown, never blocking.
	Differences []Difference

	// AnchorConfirmed is true when the anchor's lineage id was found on the source.
	AnchorConfirmed bool
	SourceAnchor    cluster.Snapshot
}

// CheckSourceConsistency compares the naming-convention snapshots of the
// target against the source volume and confirms the anchor exists on the source.
//
// Behavior:
//  1. Prefix sets: the source snapshot list is fetched independently and both
//     histories are reduced to lineage id -> name for matching snapshots.
//  2. Integrity: the symmetric difference is logged as a warning only.
//  3. Confirmation: the anchor is looked up on the source by lineage id. A
//     NotFoundError yields AnchorConfirmed=false; transport errors are returned.
func CheckSourceConsistency(
	ctx context.Context,
	source cluster.Client,
	sourceVolume cluster.Volume,
	targetSnapshots []cluster.Snapshot,
	anchor cluster.Snapshot,
	matcher *snapshot.Matcher,
	logger *slog.Logger,
) (ConsistencyReport, error) {
	report := ConsistencyReport{
		SourceCluster: source.Name(),
		SourceVolume:  sourceVolume,
	}

	// 1. Prefix Sets
	sourceSnapshots, err := source.ListSnapshots(ctx, sourceVolume.UUID)
	if err != nil {
		return report, fmt.Errorf("listing source snapshots: %w", err)
	}
	logSnapshots(logger, "source", sourceSnapshots)

	targetSet := snapshot.CollectPrefixSet(targetSnapshots, matcher)
	sourceSet := snapshot.CollectPrefixSet(sourceSnapshots, matcher)

	// 2. Integrity Check
	for _, id := range snapshot.SymmetricDifference(targetSet, sourceSet) {
		d := Difference{VersionUUID: id, Name: snapshot.Lookup(id, targetSet, sourceSet), MissingOn: "source"}
		if _, onTarget := targetSet[id]; !onTarget {
			d.MissingOn = "target"
		}
		report.Differences = append(report.Differences, d)
	}

	if len(report.Differences) > 0 {
		logger.Warn("Relevant snapshots differ between source and target",
			"source_cluster", report.SourceCluster,
			"source_volume", sourceVolume.Name,
			"difference_count", len(report.Differences))
		for _, d := range report.Differences {
			logger.Warn("Snapshot lineage mismatch",
				"version_uuid", d.VersionUUID,
				"name", d.Name,
				"missing_on", d.MissingOn)
		}
	} else {
		logger.Debug("Relevant snapshots are identical on source and target", "count", len(targetSet))
	}

	// 3. Anchor Confirmation
	logger.Info("Validating relevant snapshot on source",
		"source_cluster", report.SourceCluster,
		"version_uuid", anchor.VersionUUID)

	found, err := source.GetSnapshotByUUID(ctx, sourceVolume.UUID, anchor.VersionUUID)
	switch {
	case cluster.IsNotFound(err):
		return report, nil
	case err != nil:
		return report, fmt.Errorf("looking up relevant snapshot on source: %w", err)
	}

	report.SourceAnchor = found
	report.AnchorConfirmed = found.VersionUUID == anchor.VersionUUID
	return report, nil
}
