package cluster

import (
	"context"
	"slices"
	"strings"
)

// RestoreCall records one RestoreVolumeToSnapshot invocation on a FakeClient.
type RestoreCall struct {
	VolumeID     string
	LineageID    string
	ValidateOnly bool
}

// FakeClient is an in-memory implementation for unit tests.
type FakeClient struct {
	ClusterName string
	Volumes     map[string]Volume
	Snapshots   map[string][]Snapshot

	// RestoreErr, when set, is returned by RestoreVolumeToSnapshot.
	RestoreErr error
	// SetGuaranteeErr, when set, is returned by SetVolumeGuarantee.
	SetGuaranteeErr error
	// DropGuaranteeUpdates makes SetVolumeGuarantee succeed without changing state.
	DropGuaranteeUpdates bool

	Restores []RestoreCall
	Calls    []string
}

func NewFake(name string) *FakeClient {
	return &FakeClient{
		ClusterName: name,
		Volumes:     map[string]Volume{},
		Snapshots:   map[string][]Snapshot{},
	}
}

// AddVolume registers a volume and its snapshots (ascending by create time).
func (f *FakeClient) AddVolume(v Volume, snaps ...Snapshot) {
	f.Volumes[v.UUID] = v
	f.Snapshots[v.UUID] = snaps
}

func (f *FakeClient) Name() string { return f.ClusterName }

func (f *FakeClient) GetVolumeByName(_ context.Context, svm, name string) (Volume, error) {
	f.Calls = append(f.Calls, "GetVolumeByName")
	for _, v := range f.Volumes {
		if v.SVM == svm && v.Name == name {
			return v, nil
		}
	}
	return Volume{}, &NotFoundError{Resource: "volume", Name: svm + ":" + name}
}

func (f *FakeClient) GetVolumeType(_ context.Context, volumeID string) (string, error) {
	f.Calls = append(f.Calls, "GetVolumeType")
	v, ok := f.Volumes[volumeID]
	if !ok {
		return "", &NotFoundError{Resource: "volume", Name: volumeID}
	}
	return v.Type, nil
}

func (f *FakeClient) GetVolumeGuarantee(_ context.Context, volumeID string) (Guarantee, error) {
	f.Calls = append(f.Calls, "GetVolumeGuarantee")
	v, ok := f.Volumes[volumeID]
	if !ok {
		return "", &NotFoundError{Resource: "volume", Name: volumeID}
	}
	return v.Guarantee, nil
}

func (f *FakeClient) SetVolumeGuarantee(_ context.Context, volumeID string, guarantee Guarantee) (Volume, error) {
	f.Calls = append(f.Calls, "SetVolumeGuarantee")
	v, ok := f.Volumes[volumeID]
	if !ok {
		return Volume{}, &NotFoundError{Resource: "volume", Name: volumeID}
	}
	if f.SetGuaranteeErr != nil {
		return Volume{}, f.SetGuaranteeErr
	}
	if !f.DropGuaranteeUpdates {
		v.Guarantee = guarantee
		f.Volumes[volumeID] = v
	}
	return v, nil
}

func (f *FakeClient) ListSnapshots(_ context.Context, volumeID string) ([]Snapshot, error) {
	f.Calls = append(f.Calls, "ListSnapshots")
	snaps, ok := f.Snapshots[volumeID]
	if !ok {
		return nil, &NotFoundError{Resource: "volume", Name: volumeID}
	}
	return slices.Clone(snaps), nil
}

func (f *FakeClient) GetSnapshotByUUID(_ context.Context, volumeID, lineageID string) (Snapshot, error) {
	f.Calls = append(f.Calls, "GetSnapshotByUUID")
	for _, s := range f.Snapshots[volumeID] {
		if s.VersionUUID == lineageID {
			return s, nil
		}
	}
	return Snapshot{}, &NotFoundError{Resource: "snapshot", Name: lineageID}
}

// RestoreVolumeToSnapshot mimics the platform: on a real restore every snapshot
// newer than the target is discarded.
func (f *FakeClient) RestoreVolumeToSnapshot(_ context.Context, volumeID, lineageID string, validateOnly bool) error {
	f.Calls = append(f.Calls, "RestoreVolumeToSnapshot")
	f.Restores = append(f.Restores, RestoreCall{VolumeID: volumeID, LineageID: lineageID, ValidateOnly: validateOnly})
	if f.RestoreErr != nil {
		return f.RestoreErr
	}

	snaps := f.Snapshots[volumeID]
	idx := slices.IndexFunc(snaps, func(s Snapshot) bool { return s.VersionUUID == lineageID })
	if idx < 0 {
		return &NotFoundError{Resource: "snapshot", Name: lineageID}
	}
	if !validateOnly {
		f.Snapshots[volumeID] = snaps[:idx+1]
	}
	return nil
}

// Called reports whether the named method was invoked at least once.
func (f *FakeClient) Called(method string) bool {
	return slices.ContainsFunc(f.Calls, func(c string) bool { return strings.EqualFold(c, method) })
}
