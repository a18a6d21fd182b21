package cluster

import (
	"strings"
	"time"
)

// TimeoutConfig bounds every management-plane round trip.
// Calls are attempted exactly once; there is no retry configuration.
type TimeoutConfig struct {
	// OperationTimeout is the hard limit for a single API call.
	// A call that exceeds it is reported as a TransportError.
	OperationTimeout time.Duration

	// JobTimeout is the hard limit for waiting on an asynchronous cluster job
	// (restore, guarantee change) to reach a terminal state.
	JobTimeout time.Duration

	// JobPollInterval is the pause between two job status reads.
	JobPollInterval time.Duration
}

// DefaultTimeoutConfig is used when the operator does not override timeouts.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		OperationTimeout: 60 * time.Second,
		JobTimeout:       10 * time.Minute,
		JobPollInterval:  2 * time.Second,
	}
}

// VolumeTypeReadWrite is the only volume type a restore or guarantee change may touch.
// Other types (e.g. "dp" for replication destinations, "ls" for load-sharing mirrors)
// are read-only from the point of view of this tool.
const VolumeTypeReadWrite = "rw"

// Guarantee is the space-guarantee policy of a volume.
type Guarantee string

const (
	// GuaranteeVolume reserves the full volume size in the aggregate.
	GuaranteeVolume Guarantee = "volume"
	// GuaranteeNone thin-provisions the volume.
	GuaranteeNone Guarantee = "none"
)

// ParseGuarantee normalizes user input into a Guarantee.
// It returns false when the value is not one of the supported policies.
func ParseGuarantee(value string) (Guarantee, bool) {
	switch Guarantee(strings.ToLower(strings.TrimSpace(value))) {
	case GuaranteeVolume:
		return GuaranteeVolume, true
	case GuaranteeNone:
		return GuaranteeNone, true
	default:
		return "", false
	}
}

// Volume is the subset of volume attributes the workflows need.
type Volume struct {
	UUID      string
	Name      string
	SVM       string
	Type      string
	Guarantee Guarantee
}

// IsReadWrite reports whether the volume may be mutated.
func (v Volume) IsReadWrite() bool {
	return strings.EqualFold(v.Type, VolumeTypeReadWrite)
}

// Snapshot is a point-in-time marker on a volume.
type Snapshot struct {
	// UUID is cluster-local; it differs between replicated copies.
	UUID string `json:"uuid"`
	// VersionUUID is the lineage identifier, identical on every replica of the same snapshot.
	VersionUUID string    `json:"version_uuid"`
	Name        string    `json:"name"`
	CreateTime  time.Time `json:"create_time"`
}
