package configfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcfleet/hpcfleet/internal/cluster"
	"github.com/hpcfleet/hpcfleet/internal/util/ptr"
)

func TestGraph_MinimalSpec(t *testing.T) {
	t.Parallel()

	spec := &Spec{Name: "demo"}
	cfg := spec.Graph()

	assert.Equal(t, cluster.Variant{Topology: cluster.SingleInstanceType, Scheduler: cluster.SchedulerSlurm}, cfg.Variant)
	assert.Equal(t, "demo", cfg.Name.StringValue())
	require.NotNil(t, cfg.Image, "the image section always exists so defaults apply")
	assert.Nil(t, cfg.HeadNode)
	assert.Nil(t, cfg.Scheduling)
	assert.Nil(t, cfg.ComputeFleet)
	assert.Nil(t, cfg.Tags)
	assert.Nil(t, cfg.DevSettings)
}

func TestGraph_SchedulingSelectsMultiQueue(t *testing.T) {
	t.Parallel()

	spec := &Spec{
		Name:       "demo",
		Scheduling: &SchedulingSpec{Queues: []QueueSpec{{Name: "q1"}}},
	}
	cfg := spec.Graph()

	assert.Equal(t, cluster.MultiQueue, cfg.Variant.Topology)
	require.NotNil(t, cfg.Scheduling)
	require.Len(t, cfg.Scheduling.Queues, 1)
	assert.Nil(t, cfg.Scheduling.Queues[0].Networking)
}

func TestGraph_OptionalScalars(t *testing.T) {
	t.Parallel()

	spec := &Spec{
		Name: "demo",
		HeadNode: &HeadNodeSpec{
			InstanceType: ptr.To("c5.xlarge"),
			Networking:   &HeadNodeNetworkingSpec{SubnetID: ptr.To("subnet-head")},
			RootVolume:   &RootVolumeSpec{},
		},
		ComputeFleet: &ComputeFleetSpec{
			InstanceType: ptr.To("c5.xlarge"),
			MinCount:     ptr.To(0),
			MaxCount:     ptr.To(16),
			SpotPrice:    ptr.To(0.42),
		},
	}
	cfg := spec.Graph()

	require.NotNil(t, cfg.HeadNode)
	assert.Equal(t, "c5.xlarge", cfg.HeadNode.InstanceType.StringValue())
	assert.Nil(t, cfg.HeadNode.Ssh)
	assert.Equal(t, 35, cfg.HeadNode.RootVolume.Size.IntValue())
	assert.True(t, cfg.HeadNode.RootVolume.Size.Implied(), "an empty root_volume block still takes the size default")

	require.NotNil(t, cfg.ComputeFleet)
	// An explicit zero is user input, not a default.
	assert.False(t, cfg.ComputeFleet.MinCount.Implied())
	assert.Equal(t, 0.42, cfg.ComputeFleet.SpotPrice.Value())
}
