package ontap

import (
	"context"
	"fmt"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
)

// GetVolumeByName resolves a volume inside an SVM.
// Returns a NotFoundError when the SVM holds no volume with that name.
func (c *Client) GetVolumeByName(ctx context.Context, svm, name string) (cluster.Volume, error) {
	missing := &cluster.NotFoundError{Resource: "volume", Name: svm + ":" + name}

	var page volumeCollection
	err := c.executeCall(ctx, "GetVolumeByName", missing, func(innerCtx context.Context) error {
		url, err := c.queryURL(volumeQuery{SVM: svm, Name: name, Fields: volumeFields}, "storage", "volumes")
		if err != nil {
			return err
		}
		_, err = c.service.Get(innerCtx, url, &page, nil)
		return err
	})
	if err != nil {
		return cluster.Volume{}, err
	}

	if len(page.Records) == 0 {
		return cluster.Volume{}, missing
	}
	return page.Records[0].toVolume(), nil
}

// GetVolume reads a volume by its UUID.
func (c *Client) GetVolume(ctx context.Context, volumeID string) (cluster.Volume, error) {
	var record volumeRecord
	err := c.executeCall(ctx, "GetVolume", &cluster.NotFoundError{Resource: "volume", Name: volumeID}, func(innerCtx context.Context) error {
		url, err := c.queryURL(fieldsQuery{Fields: volumeFields}, "storage", "volumes", volumeID)
		if err != nil {
			return err
		}
		_, err = c.service.Get(innerCtx, url, &record, nil)
		return err
	})
	if err != nil {
		return cluster.Volume{}, err
	}
	return record.toVolume(), nil
}

// GetVolumeType returns the operational role of the volume ("rw", "dp", "ls").
func (c *Client) GetVolumeType(ctx context.Context, volumeID string) (string, error) {
	vol, err := c.GetVolume(ctx, volumeID)
	if err != nil {
		return "", err
	}
	return vol.Type, nil
}

// GetVolumeGuarantee returns the space-guarantee policy of the volume.
func (c *Client) GetVolumeGuarantee(ctx context.Context, volumeID string) (cluster.Guarantee, error) {
	vol, err := c.GetVolume(ctx, volumeID)
	if err != nil {
		return "", err
	}
	return vol.Guarantee, nil
}

// SetVolumeGuarantee patches the space-guarantee policy and waits for the
// resulting job. The returned volume is read back after the job finished.
func (c *Client) SetVolumeGuarantee(ctx context.Context, volumeID string, guarantee cluster.Guarantee) (cluster.Volume, error) {
	var resp jobResponse
	err := c.executeCall(ctx, "SetVolumeGuarantee", &cluster.NotFoundError{Resource: "volume", Name: volumeID}, func(innerCtx context.Context) error {
		body := map[string]any{
			"guarantee": map[string]string{"type": string(guarantee)},
		}
		_, err := c.service.Patch(innerCtx, c.service.ServiceURL("storage", "volumes", volumeID), body, &resp, nil)
		return err
	})
	if err != nil {
		return cluster.Volume{}, err
	}

	if err := c.waitForJob(ctx, "SetVolumeGuarantee", resp.Job); err != nil {
		return cluster.Volume{}, err
	}

	return c.GetVolume(ctx, volumeID)
}

// RestoreVolumeToSnapshot reverts the volume to the snapshot with the given
// lineage identifier.
//
// Behavior:
//   - Resolution: the lineage identifier is resolved to the cluster-local
//     snapshot UUID first, since the restore endpoint addresses snapshots locally.
//   - Validate only: with validateOnly set, the cluster checks the request
//     without touching data.
//   - Synchronous Wait: blocks until the restore job reaches a terminal state.
//   - Never retried.
func (c *Client) RestoreVolumeToSnapshot(ctx context.Context, volumeID, lineageID string, validateOnly bool) error {
	snap, err := c.GetSnapshotByUUID(ctx, volumeID, lineageID)
	if err != nil {
		return fmt.Errorf("resolving restore snapshot: %w", err)
	}

	var resp jobResponse
	err = c.executeCall(ctx, "RestoreVolumeToSnapshot", &cluster.NotFoundError{Resource: "volume", Name: volumeID}, func(innerCtx context.Context) error {
		url, err := c.queryURL(restoreQuery{SnapshotUUID: snap.UUID, ValidateOnly: validateOnly}, "storage", "volumes", volumeID)
		if err != nil {
			return err
		}
		_, err = c.service.Patch(innerCtx, url, map[string]any{}, &resp, nil)
		return err
	})
	if err != nil {
		return err
	}

	return c.waitForJob(ctx, "RestoreVolumeToSnapshot", resp.Job)
}
