package cluster

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/hpcfleet/hpcfleet/internal/awsapi"
	"github.com/hpcfleet/hpcfleet/internal/validate"
)

// slurmMultiQueue is the variant most tests exercise.
var slurmMultiQueue = Variant{Topology: MultiQueue, Scheduler: SchedulerSlurm}

// testQueue builds a queue with one default compute resource per name.
func testQueue(name string, resourceNames ...string) *Queue {
	resources := make([]*ComputeResource, len(resourceNames))
	for i, rn := range resourceNames {
		resources[i] = NewComputeResource(rn, "c5.xlarge", nil, nil, nil, nil)
	}
	return NewQueue(name, nil, NewQueueNetworking([]string{"subnet-compute"}), resources)
}

// testConfig builds a well-formed multi-queue cluster.
func testConfig(queues ...*Queue) *ClusterConfig {
	if len(queues) == 0 {
		queues = []*Queue{testQueue("q1", "cr1")}
	}
	return NewClusterConfig(
		slurmMultiQueue,
		"demo",
		NewImage(nil, nil),
		NewHeadNode("c5.xlarge", NewHeadNodeNetworking("subnet-head"), NewSsh("lab-key"), NewRootVolume(nil)),
		NewScheduling(queues),
		nil,
		NewTags(map[string]string{"team": "research"}),
		nil,
	)
}

// runStatic validates a tree with live checks disabled.
func runStatic(root Section) ([]validate.Result, error) {
	return validate.Run(context.Background(), root, validate.NewRunContext(nil, logr.Discard()))
}

// runLive validates a tree against a mock provider.
func runLive(root Section, mock *awsapi.MockEC2) ([]validate.Result, error) {
	return validate.Run(context.Background(), root, validate.NewRunContext(mock, logr.Discard()))
}
