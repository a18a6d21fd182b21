package ontap

import (
	"context"
	"sort"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
)

// ListSnapshots returns all snapshots of a volume, ascending by create time.
//
// The cluster is asked to order by create_time; the result is additionally
// stable-sorted so callers can rely on the order regardless of paging.
// A volume without snapshots yields an empty, non-nil slice.
func (c *Client) ListSnapshots(ctx context.Context, volumeID string) ([]cluster.Snapshot, error) {
	missing := &cluster.NotFoundError{Resource: "volume", Name: volumeID}

	url, err := c.queryURL(snapshotQuery{
		Fields:     snapshotFields,
		OrderBy:    "create_time",
		MaxRecords: snapshotPageSize,
	}, "storage", "volumes", volumeID, "snapshots")
	if err != nil {
		return nil, err
	}

	snaps := []cluster.Snapshot{}
	for url != "" {
		var page snapshotCollection
		pageURL := url
		err := c.executeCall(ctx, "ListSnapshots", missing, func(innerCtx context.Context) error {
			_, err := c.service.Get(innerCtx, pageURL, &page, nil)
			return err
		})
		if err != nil {
			return nil, err
		}

		snaps = append(snaps, page.Records...)

		url = ""
		if page.Links.Next != nil && page.Links.Next.Href != "" {
			url = c.absoluteURL(page.Links.Next.Href)
		}
	}

	sort.SliceStable(snaps, func(i, j int) bool {
		return snaps[i].CreateTime.Before(snaps[j].CreateTime)
	})

	return snaps, nil
}

// GetSnapshotByUUID looks a snapshot up by lineage identifier (version_uuid).
// Replicated copies share the version UUID but not the cluster-local UUID.
func (c *Client) GetSnapshotByUUID(ctx context.Context, volumeID, lineageID string) (cluster.Snapshot, error) {
	missing := &cluster.NotFoundError{Resource: "snapshot", Name: lineageID}

	var page snapshotCollection
	err := c.executeCall(ctx, "GetSnapshotByUUID", &cluster.NotFoundError{Resource: "volume", Name: volumeID}, func(innerCtx context.Context) error {
		url, err := c.queryURL(snapshotQuery{VersionUUID: lineageID, Fields: snapshotFields}, "storage", "volumes", volumeID, "snapshots")
		if err != nil {
			return err
		}
		_, err = c.service.Get(innerCtx, url, &page, nil)
		return err
	})
	if err != nil {
		return cluster.Snapshot{}, err
	}

	for _, snap := range page.Records {
		if snap.VersionUUID == lineageID {
			return snap, nil
		}
	}
	return cluster.Snapshot{}, missing
}
