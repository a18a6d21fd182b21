package snapshot

import "github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"

// State classifies a Selection for the restore decision.
type State int

const (
	// StateNoSnapshots means the volume has no snapshots at all.
	StateNoSnapshots State = iota
	// StateNoMatch means snapshots exist but none carries the naming convention.
	StateNoMatch
	// StateAlreadyOptimal means the youngest matching snapshot is also the newest snapshot.
	StateAlreadyOptimal
	// StateActionable means at least one snapshot follows the anchor.
	StateActionable
)

func (s State) String() string {
	switch s {
	case StateNoSnapshots:
		return "no-snapshots"
	case StateNoMatch:
		return "no-match"
	case StateAlreadyOptimal:
		return "already-optimal"
	case StateActionable:
		return "actionable"
	default:
		return "unknown"
	}
}

// Selection is the ranked view of a volume's snapshot history.
//
// Rank 0 is the anchor (youngest matching snapshot). Ranks 1..N are every
// snapshot strictly younger than the anchor, ascending by create time. Rank 1
// is the restore target; ranks >= 1 become unreachable after the restore.
//
// When nothing matched there is no rank 0 and Tail holds the whole history.
type Selection struct {
	Anchor  cluster.Snapshot
	Tail    []cluster.Snapshot
	Matched bool
}

// Select scans snapshots (ascending by create time) in a single pass.
// Every match re-anchors the selection and discards the tail collected so far,
// so the youngest match wins. The input slice is not modified.
func Select(snapshots []cluster.Snapshot, m *Matcher) Selection {
	var sel Selection
	for _, snap := range snapshots {
		if m.Match(snap) {
			sel = Selection{Anchor: snap, Matched: true}
			continue
		}
		sel.Tail = append(sel.Tail, snap)
	}
	return sel
}

// State reports which terminal or actionable case the selection represents.
func (s Selection) State() State {
	switch {
	case s.Matched && len(s.Tail) > 0:
		return StateActionable
	case s.Matched:
		return StateAlreadyOptimal
	case len(s.Tail) > 0:
		return StateNoMatch
	default:
		return StateNoSnapshots
	}
}

// Rank returns the snapshot at the given rank.
func (s Selection) Rank(rank int) (cluster.Snapshot, bool) {
	if rank == 0 {
		return s.Anchor, s.Matched
	}
	if rank < 0 || rank > len(s.Tail) {
		return cluster.Snapshot{}, false
	}
	return s.Tail[rank-1], true
}

// Len returns the number of ranked entries, including the anchor when present.
func (s Selection) Len() int {
	if s.Matched {
		return len(s.Tail) + 1
	}
	return len(s.Tail)
}

// RestoreTarget returns the rank-1 snapshot, which only exists in the actionable state.
func (s Selection) RestoreTarget() (cluster.Snapshot, bool) {
	if s.State() != StateActionable {
		return cluster.Snapshot{}, false
	}
	return s.Tail[0], true
}

// Discarded returns the snapshots that become unreachable after restoring to
// the restore target (ranks 1..N). It is empty unless the selection is actionable.
func (s Selection) Discarded() []cluster.Snapshot {
	if s.State() != StateActionable {
		return nil
	}
	return s.Tail
}
