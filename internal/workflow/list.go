package workflow

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/snapshot"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ListConfig carries the list-snapshots command flags.
type ListConfig struct {
	Target          ClusterTarget
	SnapshotPattern string

	Timeouts cluster.TimeoutConfig
	LogLevel string
	Out      io.Writer
}

// RunListSnapshots prints every snapshot of a volume, oldest first, with the
// rank each one gets from the selector.
func RunListSnapshots(ctx context.Context, cfg ListConfig) error {
	logger := SetupLogger(cfg.LogLevel, cfg.Target.Profile.Name).With("workflow", "list-snapshots", "run_id", newRunID())

	matcher, err := snapshot.NewMatcher(cfg.SnapshotPattern)
	if err != nil {
		return err
	}

	client, err := connect(ctx, cfg.Target.Profile, cfg.Timeouts)
	if err != nil {
		logger.Error("Cluster connection failed", "error", err)
		return err
	}

	vol, err := client.GetVolumeByName(ctx, cfg.Target.SVM, cfg.Target.Volume)
	if err != nil {
		logger.Error("Volume lookup failed", "error", err)
		return err
	}

	snaps, err := client.ListSnapshots(ctx, vol.UUID)
	if err != nil {
		logger.Error("Listing snapshots failed", "volume", vol.Name, "error", err)
		return err
	}
	logger.Info("All snapshots on volume", "volume", vol.Name, "count", len(snaps))

	fmt.Fprintln(cfg.Out, RenderSnapshotTable(snaps, snapshot.Select(snaps, matcher)))
	return nil
}

// RenderSnapshotTable formats snapshots as a table. The RANK column is empty
// for snapshots older than the anchor.
func RenderSnapshotTable(snaps []cluster.Snapshot, sel snapshot.Selection) string {
	ranks := map[string]string{}
	if sel.Matched {
		ranks[sel.Anchor.VersionUUID] = "0"
		for i, s := range sel.Tail {
			ranks[s.VersionUUID] = strconv.Itoa(i + 1)
		}
	}

	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		rows = append(rows, []string{ranks[s.VersionUUID], s.VersionUUID, s.Name, formatTime(s.CreateTime)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("RANK", "VERSION UUID", "NAME", "CREATE TIME").
		Rows(rows...).
		String()
}
