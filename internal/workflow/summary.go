package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/snapshot"
	"github.com/charmbracelet/lipgloss"
)

var (
	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 2)

	summaryTitleStyle = lipgloss.NewStyle().Bold(true)
	summaryWarnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F4D03F"))
)

// Summary is everything the operator sees before a restore is executed.
type Summary struct {
	TargetCluster string
	TargetVolume  cluster.Volume
	Selection     snapshot.Selection

	// Consistency is nil when source validation was skipped.
	Consistency *ConsistencyReport
	DryRun      bool
}

// RenderSummary formats the pre-execution summary.
func RenderSummary(s Summary) string {
	var b strings.Builder

	anchor, _ := s.Selection.Rank(0)
	target, _ := s.Selection.RestoreTarget()

	if s.DryRun {
		b.WriteString(summaryWarnStyle.Render("DRY-RUN: validation only, no data will change") + "\n\n")
	}

	b.WriteString(summaryTitleStyle.Render("Target") + "\n")
	fmt.Fprintf(&b, "  cluster:        %s\n", s.TargetCluster)
	fmt.Fprintf(&b, "  vserver:        %s\n", s.TargetVolume.SVM)
	fmt.Fprintf(&b, "  volume:         %s (%s)\n", s.TargetVolume.Name, s.TargetVolume.UUID)
	fmt.Fprintf(&b, "  rel. snapshot:  %s  *** %s *** %s\n", anchor.Name, anchor.VersionUUID, formatTime(anchor.CreateTime))

	b.WriteString("\n" + summaryTitleStyle.Render("Source") + "\n")
	if s.Consistency == nil {
		b.WriteString(summaryWarnStyle.Render("  validation skipped") + "\n")
	} else {
		c := s.Consistency
		found := "*** NOT FOUND ***"
		if c.AnchorConfirmed {
			found = "Yes, UUID = " + c.SourceAnchor.VersionUUID
		}
		fmt.Fprintf(&b, "  cluster:        %s\n", c.SourceCluster)
		fmt.Fprintf(&b, "  vserver:        %s\n", c.SourceVolume.SVM)
		fmt.Fprintf(&b, "  volume:         %s\n", c.SourceVolume.Name)
		fmt.Fprintf(&b, "  rel. snap found: %s\n", found)
		if len(c.Differences) > 0 {
			b.WriteString(summaryWarnStyle.Render(fmt.Sprintf("  ATTENTION: %d relevant snapshot(s) differ between source and target", len(c.Differences))) + "\n")
			for _, d := range c.Differences {
				fmt.Fprintf(&b, "    %s  %s  (missing on %s)\n", d.VersionUUID, d.Name, d.MissingOn)
			}
		}
	}

	b.WriteString("\n" + summaryTitleStyle.Render("Suitable restore snapshot") + "\n")
	fmt.Fprintf(&b, "  name:           %s\n", target.Name)
	fmt.Fprintf(&b, "  create time:    %s\n", formatTime(target.CreateTime))
	fmt.Fprintf(&b, "  UUID:           %s\n", target.VersionUUID)

	b.WriteString("\n" + summaryTitleStyle.Render("All snapshots after the relevant one will be deleted") + "\n")
	for i, snap := range s.Selection.Discarded() {
		fmt.Fprintf(&b, "  id: %d  name: %s  create time: %s\n", i+1, snap.Name, formatTime(snap.CreateTime))
	}

	return summaryBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
