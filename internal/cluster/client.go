package cluster

import "context"

// Client is the narrow management-plane boundary used by the workflows.
// One Client holds one session to one cluster; it is never shared between clusters.
type Client interface {
	// Name returns the cluster address or profile name, for logging.
	Name() string

	GetVolumeByName(ctx context.Context, svm, name string) (Volume, error)
	GetVolumeType(ctx context.Context, volumeID string) (string, error)
	GetVolumeGuarantee(ctx context.Context, volumeID string) (Guarantee, error)
	SetVolumeGuarantee(ctx context.Context, volumeID string, guarantee Guarantee) (Volume, error)

	// ListSnapshots returns every snapshot of the volume, ascending by create time.
	ListSnapshots(ctx context.Context, volumeID string) ([]Snapshot, error)

	// GetSnapshotByUUID looks a snapshot up by its lineage identifier (version UUID),
	// not by the cluster-local UUID.
	GetSnapshotByUUID(ctx context.Context, volumeID, lineageID string) (Snapshot, error)

	// RestoreVolumeToSnapshot reverts the volume to the snapshot with the given
	// lineage identifier. With validateOnly set the cluster only checks the request.
	RestoreVolumeToSnapshot(ctx context.Context, volumeID, lineageID string, validateOnly bool) error
}
