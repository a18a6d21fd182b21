package snapshot

import (
	"slices"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
)

// PrefixSet maps lineage identifier (version UUID) to snapshot name for
// the snapshots of one volume that carry the naming convention.
type PrefixSet map[string]string

// CollectPrefixSet filters snapshots by the matcher and indexes them by lineage.
func CollectPrefixSet(snapshots []cluster.Snapshot, m *Matcher) PrefixSet {
	set := PrefixSet{}
	for _, snap := range snapshots {
		if m.Match(snap) {
			set[snap.VersionUUID] = snap.Name
		}
	}
	return set
}

// SymmetricDifference returns the lineage identifiers present in exactly one
// of the two sets, sorted for stable output.
func SymmetricDifference(a, b PrefixSet) []string {
	var diff []string
	for id := range a {
		if _, ok := b[id]; !ok {
			diff = append(diff, id)
		}
	}
	for id := range b {
		if _, ok := a[id]; !ok {
			diff = append(diff, id)
		}
	}
	slices.Sort(diff)
	return diff
}

// Lookup returns the snapshot name for a lineage id from whichever set holds it.
func Lookup(id string, sets ...PrefixSet) string {
	for _, s := range sets {
		if name, ok := s[id]; ok {
			return name
		}
	}
	return ""
}
