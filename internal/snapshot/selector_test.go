package snapshot

import (
	"fmt"
	"testing"
	"time"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
)

// history builds an ascending snapshot sequence from names, one hour apart.
func history(names ...string) []cluster.Snapshot {
	base := time.Date(2025, 12, 21, 0, 0, 0, 0, time.UTC)
	snaps := make([]cluster.Snapshot, 0, len(names))
	for i, name := range names {
		snaps = append(snaps, cluster.Snapshot{
			UUID:        fmt.Sprintf("local-%d", i+1),
			VersionUUID: fmt.Sprintf("S%d", i+1),
			Name:        name,
			CreateTime:  base.Add(time.Duration(i) * time.Hour),
		})
	}
	return snaps
}

func lineage(snaps []cluster.Snapshot) []string {
	ids := make([]string, 0, len(snaps))
	for _, s := range snaps {
		ids = append(ids, s.VersionUUID)
	}
	return ids
}

func TestSelect(t *testing.T) {
	matcher := MustMatcher(DefaultPattern)

	tests := []struct {
		name        string
		snapshots   []cluster.Snapshot
		wantState   State
		wantMatched bool
		wantAnchor  string   // lineage id of rank 0
		wantTail    []string // lineage ids of ranks 1..N
	}{
		{
			name:        "Empty History",
			snapshots:   nil,
			wantState:   StateNoSnapshots,
			wantMatched: false,
		},
		{
			name:        "No Matching Snapshot",
			snapshots:   history("daily.1", "daily.2", "hourly.1"),
			wantState:   StateNoMatch,
			wantMatched: false,
			wantTail:    []string{"S1", "S2", "S3"},
		},
		{
			name:        "Single Match Is Newest (Already Optimal)",
			snapshots:   history("NONE-x"),
			wantState:   StateAlreadyOptimal,
			wantMatched: true,
			wantAnchor:  "S1",
		},
		{
			name:        "Match Followed By Tail",
			snapshots:   history("data", "NONE-weekly", "data", "LH-daily", "data"),
			wantState:   StateActionable,
			wantMatched: true,
			wantAnchor:  "S4",
			wantTail:    []string{"S5"},
		},
		{
			name:        "Repeated Matches Re-anchor And Drop Earlier Tail",
			snapshots:   history("FREEZE-1", "a", "b", "FREEZE-2", "c", "d"),
			wantState:   StateActionable,
			wantMatched: true,
			wantAnchor:  "S4",
			wantTail:    []string{"S5", "S6"},
		},
		{
			name:        "Youngest Match Is Last",
			snapshots:   history("LH-1", "x", "y", "NONE-2"),
			wantState:   StateAlreadyOptimal,
			wantMatched: true,
			wantAnchor:  "S4",
		},
		{
			name:        "Prefix Must Be At Start",
			snapshots:   history("weekly-NONE", "x-LH"),
			wantState:   StateNoMatch,
			wantMatched: false,
			wantTail:    []string{"S1", "S2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Select(tt.snapshots, matcher)

			// 1. Check Decision
			if sel.State() != tt.wantState {
				t.Errorf("State() = %v, want %v", sel.State(), tt.wantState)
			}
			if sel.Matched != tt.wantMatched {
				t.Errorf("Matched = %v, want %v", sel.Matched, tt.wantMatched)
			}

			// 2. Check Rank 0
			anchor, ok := sel.Rank(0)
			if ok != tt.wantMatched {
				t.Fatalf("Rank(0) present = %v, want %v", ok, tt.wantMatched)
			}
			if ok && anchor.VersionUUID != tt.wantAnchor {
				t.Errorf("anchor = %s, want %s", anchor.VersionUUID, tt.wantAnchor)
			}

			// 3. Check Ranks 1..N
			got := lineage(sel.Tail)
			if fmt.Sprint(got) != fmt.Sprint(tt.wantTail) && !(len(got) == 0 && len(tt.wantTail) == 0) {
				t.Errorf("tail = %v, want %v", got, tt.wantTail)
			}
			for i, want := range tt.wantTail {
				snap, ok := sel.Rank(i + 1)
				if !ok || snap.VersionUUID != want {
					t.Errorf("Rank(%d) = %s (%v), want %s", i+1, snap.VersionUUID, ok, want)
				}
			}
			if _, ok := sel.Rank(len(tt.wantTail) + 1); ok {
				t.Errorf("Rank(%d) unexpectedly present", len(tt.wantTail)+1)
			}
		})
	}
}

func TestSelect_RestoreTarget(t *testing.T) {
	matcher := MustMatcher(DefaultPattern)

	sel := Select(history("data", "NONE-weekly", "data", "LH-daily", "data"), matcher)
	target, ok := sel.RestoreTarget()
	if !ok {
		t.Fatalf("RestoreTarget() not found")
	}
	if target.VersionUUID != "S5" {
		t.Errorf("RestoreTarget() = %s, want S5", target.VersionUUID)
	}
	if got := lineage(sel.Discarded()); fmt.Sprint(got) != "[S5]" {
		t.Errorf("Discarded() = %v, want [S5]", got)
	}

	optimal := Select(history("NONE-x"), matcher)
	if _, ok := optimal.RestoreTarget(); ok {
		t.Errorf("RestoreTarget() present for already optimal selection")
	}
	if optimal.Len() != 1 {
		t.Errorf("Len() = %d, want 1", optimal.Len())
	}

	unmatched := Select(history("a", "b"), matcher)
	if _, ok := unmatched.RestoreTarget(); ok {
		t.Errorf("RestoreTarget() present without anchor")
	}
	if unmatched.Discarded() != nil {
		t.Errorf("Discarded() = %v, want nil without anchor", unmatched.Discarded())
	}
}

// TestSelect_AnchorIsYoungestMatch checks every position of a single late
// match against histories with several earlier matches.
func TestSelect_AnchorIsYoungestMatch(t *testing.T) {
	matcher := MustMatcher(DefaultPattern)
	names := []string{"NONE-a", "x", "LH-b", "y", "z", "FREEZE-c", "w"}

	for n := 1; n <= len(names); n++ {
		snaps := history(names[:n]...)

		wantAnchor := -1
		for i, s := range snaps {
			if matcher.Match(s) {
				wantAnchor = i
			}
		}

		sel := Select(snaps, matcher)
		if sel.Anchor.VersionUUID != snaps[wantAnchor].VersionUUID {
			t.Errorf("n=%d: anchor = %s, want %s", n, sel.Anchor.VersionUUID, snaps[wantAnchor].VersionUUID)
		}

		// Tail is contiguous and ascending, right after the anchor.
		if len(sel.Tail) != n-wantAnchor-1 {
			t.Fatalf("n=%d: tail length = %d, want %d", n, len(sel.Tail), n-wantAnchor-1)
		}
		for i, s := range sel.Tail {
			if s.VersionUUID != snaps[wantAnchor+1+i].VersionUUID {
				t.Errorf("n=%d: rank %d = %s, want %s", n, i+1, s.VersionUUID, snaps[wantAnchor+1+i].VersionUUID)
			}
		}
	}
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	snaps := history("a", "NONE-1", "b", "LH-2", "c")
	before := lineage(snaps)

	_ = Select(snaps, MustMatcher(DefaultPattern))

	if fmt.Sprint(lineage(snaps)) != fmt.Sprint(before) {
		t.Errorf("input mutated: %v, want %v", lineage(snaps), before)
	}
}
