package workflow

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aravindh-murugesan/ontap-snapoptimize-go/internal/cluster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guaranteeFixture(volType string, g cluster.Guarantee) *cluster.FakeClient {
	f := cluster.NewFake("cluster-dr")
	f.AddVolume(cluster.Volume{UUID: "tv-1", Name: "vol1", SVM: "svm_dr", Type: volType, Guarantee: g})
	return f
}

func TestAdjustGuarantee(t *testing.T) {
	tests := []struct {
		name        string
		current     cluster.Guarantee
		desired     cluster.Guarantee
		dryRun      bool
		drop        bool
		setErr      error
		wantErr     error
		wantChanged bool
		wantCurrent cluster.Guarantee
		wantPatched bool
	}{
		{
			name:        "Already Set",
			current:     cluster.GuaranteeNone,
			desired:     cluster.GuaranteeNone,
			wantCurrent: cluster.GuaranteeNone,
		},
		{
			name:        "Changed",
			current:     cluster.GuaranteeNone,
			desired:     cluster.GuaranteeVolume,
			wantChanged: true,
			wantCurrent: cluster.GuaranteeVolume,
			wantPatched: true,
		},
		{
			name:        "Dry Run",
			current:     cluster.GuaranteeVolume,
			desired:     cluster.GuaranteeNone,
			dryRun:      true,
			wantCurrent: cluster.GuaranteeVolume,
		},
		{
			name:        "Not Applied",
			current:     cluster.GuaranteeNone,
			desired:     cluster.GuaranteeVolume,
			drop:        true,
			wantErr:     ErrGuaranteeNotApplied,
			wantCurrent: cluster.GuaranteeNone,
			wantPatched: true,
		},
		{
			name:        "Update Rejected",
			current:     cluster.GuaranteeNone,
			desired:     cluster.GuaranteeVolume,
			setErr:      &cluster.TransportError{Op: "SetVolumeGuarantee", Err: errors.New("space full")},
			wantErr:     ErrGuaranteeUpdate,
			wantCurrent: cluster.GuaranteeNone,
			wantPatched: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := guaranteeFixture("rw", tt.current)
			f.DropGuaranteeUpdates = tt.drop
			f.SetGuaranteeErr = tt.setErr

			var logs bytes.Buffer
			result, err := AdjustGuarantee(context.Background(), f, "tv-1", tt.desired, tt.dryRun, newLogger(&logs, "info", true))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.current, result.Previous)
			assert.Equal(t, tt.wantCurrent, result.Current)
			assert.Equal(t, tt.wantChanged, result.Changed)
			assert.Equal(t, tt.wantPatched, f.Called("SetVolumeGuarantee"))
		})
	}
}

func TestSetGuarantee(t *testing.T) {
	t.Run("Read-Write Volume", func(t *testing.T) {
		f := guaranteeFixture("rw", cluster.GuaranteeVolume)
		var logs bytes.Buffer

		result, err := SetGuarantee(context.Background(), GuaranteeRequest{
			Target:  VolumeRef{Client: f, SVM: "svm_dr", Volume: "vol1"},
			Desired: "NONE",
		}, newLogger(&logs, "info", true))
		require.NoError(t, err)

		assert.True(t, result.Changed)
		assert.Equal(t, cluster.GuaranteeNone, f.Volumes["tv-1"].Guarantee)
	})

	t.Run("Data Protection Volume", func(t *testing.T) {
		f := guaranteeFixture("dp", cluster.GuaranteeVolume)
		var logs bytes.Buffer

		_, err := SetGuarantee(context.Background(), GuaranteeRequest{
			Target:  VolumeRef{Client: f, SVM: "svm_dr", Volume: "vol1"},
			Desired: "none",
		}, newLogger(&logs, "info", true))
		require.ErrorIs(t, err, ErrIneligibleVolume)
		assert.False(t, f.Called("GetVolumeGuarantee"))
		assert.False(t, f.Called("SetVolumeGuarantee"))
	})

	t.Run("Invalid Value", func(t *testing.T) {
		f := guaranteeFixture("rw", cluster.GuaranteeVolume)
		var logs bytes.Buffer

		_, err := SetGuarantee(context.Background(), GuaranteeRequest{
			Target:  VolumeRef{Client: f, SVM: "svm_dr", Volume: "vol1"},
			Desired: "thin",
		}, newLogger(&logs, "info", true))
		require.ErrorIs(t, err, ErrInvalidGuarantee)
		assert.Empty(t, f.Calls)
	})

	t.Run("Unknown Volume", func(t *testing.T) {
		f := guaranteeFixture("rw", cluster.GuaranteeVolume)
		var logs bytes.Buffer

		_, err := SetGuarantee(context.Background(), GuaranteeRequest{
			Target:  VolumeRef{Client: f, SVM: "svm_dr", Volume: "missing"},
			Desired: "volume",
		}, newLogger(&logs, "info", true))
		require.Error(t, err)
		assert.True(t, cluster.IsNotFound(err))
	})
}
