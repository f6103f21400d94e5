package cluster

import "fmt"

// Topology is the cluster shape family.
type Topology string

const (
	// SingleInstanceType clusters run one compute fleet with one instance type.
	SingleInstanceType Topology = "single-instance-type"
	// MultiQueue clusters run heterogeneous instance types across named queues.
	MultiQueue Topology = "multi-queue"
)

// Scheduler is the workload scheduling family the cluster is built around.
type Scheduler string

const (
	SchedulerSlurm    Scheduler = "slurm"
	SchedulerAWSBatch Scheduler = "awsbatch"
)

// Variant tags a cluster configuration with its topology and scheduler.
// All variant-specific behavior is selected through explicit lookups on
// this tag; there is no polymorphic dispatch on cluster type.
type Variant struct {
	Topology  Topology
	Scheduler Scheduler
}

func (v Variant) String() string {
	return fmt.Sprintf("%s/%s", v.Topology, v.Scheduler)
}

// Capability describes what a variant supports and how its checks are
// scoped. Unknown variants have no capability entry and fail validation.
type Capability struct {
	// MaxQueues bounds the number of queues (multi-queue topology only).
	MaxQueues int

	// MaxComputeResourcesPerQueue bounds compute resource definitions per queue.
	MaxComputeResourcesPerQueue int

	// SampleLaunchChecks restricts dry-run launch checks to one
	// representative compute resource per queue instead of all of them.
	SampleLaunchChecks bool

	// SupportsSpot enables spot compute pricing parameters.
	SupportsSpot bool
}

// capabilities is the variant dispatch table: one explicit entry per
// supported variant, no subclassing.
var capabilities = map[Variant]Capability{
	{Topology: SingleInstanceType, Scheduler: SchedulerSlurm}: {
		MaxQueues:                   1,
		MaxComputeResourcesPerQueue: 1,
		SampleLaunchChecks:          false,
		SupportsSpot:                true,
	},
	{Topology: MultiQueue, Scheduler: SchedulerSlurm}: {
		MaxQueues:                   10,
		MaxComputeResourcesPerQueue: 5,
		SampleLaunchChecks:          true,
		SupportsSpot:                true,
	},
	// AWS Batch manages spot bidding itself, so the spot price cap is not
	// a cluster-level parameter there.
	{Topology: SingleInstanceType, Scheduler: SchedulerAWSBatch}: {
		MaxQueues:                   1,
		MaxComputeResourcesPerQueue: 1,
		SampleLaunchChecks:          false,
		SupportsSpot:                false,
	},
}

// CapabilityOf returns the capability entry for the variant; ok is false
// for variants this build does not support.
func CapabilityOf(v Variant) (Capability, bool) {
	c, ok := capabilities[v]
	return c, ok
}
