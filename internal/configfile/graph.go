package configfile

import (
	"github.com/hpcfleet/hpcfleet/internal/cluster"
)

// Graph turns the parsed file into the typed resource tree. The variant is
// inferred from the file's shape: a scheduling section selects the
// multi-queue topology, otherwise the cluster is single-instance-type. The
// scheduler defaults to slurm.
//
// Graph is deliberately lenient: structural problems (missing sections,
// unsupported variants) are left for the validation engine so they surface
// as diagnostics instead of load failures.
func (s *Spec) Graph() *cluster.ClusterConfig {
	variant := cluster.Variant{
		Topology:  cluster.SingleInstanceType,
		Scheduler: cluster.SchedulerSlurm,
	}
	if s.Scheduling != nil {
		variant.Topology = cluster.MultiQueue
	}
	if s.Scheduler != "" {
		variant.Scheduler = cluster.Scheduler(s.Scheduler)
	}

	return cluster.NewClusterConfig(
		variant,
		stringOrNil(s.Name),
		s.image(),
		s.headNode(),
		s.scheduling(),
		s.computeFleet(),
		s.tags(),
		s.devSettings(),
	)
}

func (s *Spec) image() *cluster.Image {
	if s.Image == nil {
		return cluster.NewImage(nil, nil)
	}
	return cluster.NewImage(opt(s.Image.OS), opt(s.Image.CustomAMI))
}

func (s *Spec) headNode() *cluster.HeadNode {
	if s.HeadNode == nil {
		return nil
	}
	var networking *cluster.HeadNodeNetworking
	if s.HeadNode.Networking != nil {
		networking = cluster.NewHeadNodeNetworking(opt(s.HeadNode.Networking.SubnetID))
	}
	var ssh *cluster.Ssh
	if s.HeadNode.Ssh != nil {
		ssh = cluster.NewSsh(opt(s.HeadNode.Ssh.KeyName))
	}
	rootVolume := cluster.NewRootVolume(nil)
	if s.HeadNode.RootVolume != nil {
		rootVolume = cluster.NewRootVolume(opt(s.HeadNode.RootVolume.Size))
	}
	return cluster.NewHeadNode(opt(s.HeadNode.InstanceType), networking, ssh, rootVolume)
}

func (s *Spec) scheduling() *cluster.Scheduling {
	if s.Scheduling == nil {
		return nil
	}
	queues := make([]*cluster.Queue, len(s.Scheduling.Queues))
	for i, q := range s.Scheduling.Queues {
		var networking *cluster.QueueNetworking
		if q.Networking != nil {
			networking = cluster.NewQueueNetworking(q.Networking.SubnetIDs)
		}
		resources := make([]*cluster.ComputeResource, len(q.ComputeResources))
		for j, cr := range q.ComputeResources {
			resources[j] = cluster.NewComputeResource(
				cr.Name,
				opt(cr.InstanceType),
				opt(cr.MinCount),
				opt(cr.MaxCount),
				opt(cr.DisableSMT),
				opt(cr.CustomAMI),
			)
		}
		queues[i] = cluster.NewQueue(q.Name, opt(q.ComputeType), networking, resources)
	}
	return cluster.NewScheduling(queues)
}

func (s *Spec) computeFleet() *cluster.ComputeFleet {
	if s.ComputeFleet == nil {
		return nil
	}
	return cluster.NewComputeFleet(
		opt(s.ComputeFleet.InstanceType),
		opt(s.ComputeFleet.MinCount),
		opt(s.ComputeFleet.MaxCount),
		opt(s.ComputeFleet.SpotPrice),
	)
}

func (s *Spec) tags() *cluster.Tags {
	if len(s.Tags) == 0 {
		return nil
	}
	return cluster.NewTags(s.Tags)
}

func (s *Spec) devSettings() *cluster.DevSettings {
	if s.DevSettings == nil {
		return nil
	}
	return cluster.NewDevSettings(opt(s.DevSettings.CookbookURL), opt(s.DevSettings.NodePackage))
}

// opt unwraps an optional scalar: nil pointers stay nil so the parameter
// layer can substitute the declared default and mark the value implied.
func opt[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func stringOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
