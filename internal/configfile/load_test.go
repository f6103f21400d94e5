package configfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcfleet/hpcfleet/internal/cluster"
)

const multiQueueYAML = `
name: research-cluster
image:
  os: ubuntu2004
  custom_ami: ami-0123456789abcdef0
head_node:
  instance_type: c5.xlarge
  networking:
    subnet_id: subnet-head
  ssh:
    key_name: lab-key
  root_volume:
    size: 50
scheduling:
  queues:
    - name: q1
      compute_type: spot
      networking:
        subnet_ids: [subnet-a, subnet-b]
      compute_resources:
        - name: cr1
          instance_type: c5.xlarge
          min_count: 2
          max_count: 20
        - name: cr2
          instance_type: m5.large
          disable_simultaneous_multithreading: true
tags:
  team: research
dev_settings:
  cookbook_url: https://artifacts.example.com/cookbook.tgz
`

func TestLoad_MultiQueue(t *testing.T) {
	t.Parallel()

	spec, err := Load([]byte(multiQueueYAML))
	require.NoError(t, err)

	cfg := spec.Graph()
	assert.Equal(t, cluster.Variant{Topology: cluster.MultiQueue, Scheduler: cluster.SchedulerSlurm}, cfg.Variant)
	assert.Equal(t, "research-cluster", cfg.Name.StringValue())
	assert.Equal(t, "ubuntu2004", cfg.Image.OS.StringValue())
	assert.Equal(t, "ami-0123456789abcdef0", cfg.Image.CustomAMI.StringValue())
	assert.Equal(t, 50, cfg.HeadNode.RootVolume.Size.IntValue())
	assert.False(t, cfg.HeadNode.RootVolume.Size.Implied())

	require.NotNil(t, cfg.Scheduling)
	require.Len(t, cfg.Scheduling.Queues, 1)
	q := cfg.Scheduling.Queues[0]
	assert.Equal(t, "q1", q.Label())
	assert.Equal(t, "spot", q.ComputeType.StringValue())
	assert.Equal(t, []string{"subnet-a", "subnet-b"}, q.Networking.SubnetIDs.Value())

	require.Len(t, q.ComputeResources, 2)
	cr1, cr2 := q.ComputeResources[0], q.ComputeResources[1]
	assert.Equal(t, 2, cr1.MinCount.IntValue())
	assert.Equal(t, 20, cr1.MaxCount.IntValue())
	assert.True(t, cr2.DisableSMT.BoolValue())
	assert.Equal(t, 10, cr2.MaxCount.IntValue(), "omitted max_count takes the default")
	assert.True(t, cr2.MaxCount.Implied())

	assert.Nil(t, cfg.ComputeFleet)
	require.NotNil(t, cfg.Tags)
	require.NotNil(t, cfg.DevSettings)
	assert.Equal(t, "https://artifacts.example.com/cookbook.tgz", cfg.DevSettings.CookbookURL.StringValue())
}

func TestLoad_SingleInstanceType(t *testing.T) {
	t.Parallel()

	spec, err := Load([]byte(`
name: batch-cluster
scheduler: awsbatch
head_node:
  instance_type: c5.xlarge
  networking:
    subnet_id: subnet-head
compute_fleet:
  instance_type: c5.xlarge
  max_count: 16
  spot_price: 0.42
`))
	require.NoError(t, err)

	cfg := spec.Graph()
	assert.Equal(t, cluster.Variant{Topology: cluster.SingleInstanceType, Scheduler: cluster.SchedulerAWSBatch}, cfg.Variant)
	assert.Nil(t, cfg.Scheduling)
	require.NotNil(t, cfg.ComputeFleet)
	assert.Equal(t, 16, cfg.ComputeFleet.MaxCount.IntValue())
	assert.Equal(t, 0.42, cfg.ComputeFleet.SpotPrice.Value())
	assert.Equal(t, 0, cfg.ComputeFleet.MinCount.IntValue())
	assert.True(t, cfg.ComputeFleet.MinCount.Implied())

	// Omitted singletons still resolve to sections with defaults.
	assert.Equal(t, "alinux2", cfg.Image.OS.StringValue())
	assert.True(t, cfg.Image.OS.Implied())
}

func TestLoad_UnknownKeyIsRejected(t *testing.T) {
	t.Parallel()

	_, err := Load([]byte(`
name: demo
head_nod:
  instance_type: c5.xlarge
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "head_nod")
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Load([]byte("name: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal yaml")
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cluster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(multiQueueYAML), 0o600))

	spec, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "research-cluster", spec.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
