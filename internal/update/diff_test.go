package update

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/hpcfleet/hpcfleet/internal/cluster"
)

var slurmMultiQueue = cluster.Variant{Topology: cluster.MultiQueue, Scheduler: cluster.SchedulerSlurm}

type configOptions struct {
	name        string
	customAMI   any
	rootVolume  any
	headType    any
	tags        map[string]string
	devSettings *cluster.DevSettings
	queues      []*cluster.Queue
}

func buildQueue(name string, maxCounts ...int) *cluster.Queue {
	resources := make([]*cluster.ComputeResource, len(maxCounts))
	for i, m := range maxCounts {
		var max any
		if m != 0 {
			max = m
		}
		resources[i] = cluster.NewComputeResource(
			"cr"+string(rune('1'+i)), "c5.xlarge", nil, max, nil, nil)
	}
	return cluster.NewQueue(name, nil, cluster.NewQueueNetworking([]string{"subnet-compute"}), resources)
}

func buildConfig(o configOptions) *cluster.ClusterConfig {
	if o.name == "" {
		o.name = "demo"
	}
	if o.headType == nil {
		o.headType = "c5.xlarge"
	}
	if o.queues == nil {
		o.queues = []*cluster.Queue{buildQueue("q1", 10)}
	}
	var tags *cluster.Tags
	if o.tags != nil {
		tags = cluster.NewTags(o.tags)
	}
	return cluster.NewClusterConfig(
		slurmMultiQueue,
		o.name,
		cluster.NewImage(nil, o.customAMI),
		cluster.NewHeadNode(o.headType,
			cluster.NewHeadNodeNetworking("subnet-head"),
			cluster.NewSsh("lab-key"),
			cluster.NewRootVolume(o.rootVolume)),
		cluster.NewScheduling(o.queues),
		nil,
		tags,
		o.devSettings,
	)
}

func TestDiff_IdenticalConfigs(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	changes, overall := Diff(buildConfig(configOptions{}), buildConfig(configOptions{}))
	g.Expect(changes).To(BeEmpty())
	g.Expect(overall).To(Equal(NoChange))
}

func TestDiff_UnsetEqualsExplicitDefault(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	// 35 is the root volume default; writing it out is not a change.
	changes, overall := Diff(
		buildConfig(configOptions{}),
		buildConfig(configOptions{rootVolume: 35}),
	)
	g.Expect(changes).To(BeEmpty())
	g.Expect(overall).To(Equal(NoChange))
}

func TestDiff_OverallIsMostDisruptiveChange(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	base := buildConfig(configOptions{tags: map[string]string{"team": "research"}})
	target := buildConfig(configOptions{
		tags:     map[string]string{"team": "platform"}, // ALLOWED
		headType: "m5.2xlarge",                          // MASTER_RESTART
	})

	changes, overall := Diff(base, target)
	g.Expect(changes).To(HaveLen(2))
	g.Expect(overall).To(Equal(MasterRestart))

	grades := make(map[string]Updatability, 2)
	for _, c := range changes {
		grades[c.Target()] = c.Updatability
	}
	g.Expect(grades).To(HaveKeyWithValue("cluster/head_node.instance_type", MasterRestart))
	g.Expect(grades).To(HaveKeyWithValue("cluster/tags.team", Allowed))
}

func TestDiff_VariantMismatchShortCircuits(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	base := buildConfig(configOptions{})
	target := cluster.NewClusterConfig(
		cluster.Variant{Topology: cluster.SingleInstanceType, Scheduler: cluster.SchedulerSlurm},
		"demo",
		cluster.NewImage(nil, nil),
		cluster.NewHeadNode("c5.xlarge", cluster.NewHeadNodeNetworking("subnet-head"), cluster.NewSsh("lab-key"), cluster.NewRootVolume(nil)),
		nil,
		cluster.NewComputeFleet("c5.xlarge", nil, nil, nil),
		nil, nil)

	changes, overall := Diff(base, target)
	g.Expect(overall).To(Equal(Unsupported))
	g.Expect(changes).To(HaveLen(1))
	g.Expect(changes[0].Param).To(Equal("variant"))
	g.Expect(changes[0].Old).To(Equal("multi-queue/slurm"))
	g.Expect(changes[0].New).To(Equal("single-instance-type/slurm"))
}

func TestDiff_QueueRenameIsRemovePlusAdd(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	base := buildConfig(configOptions{queues: []*cluster.Queue{buildQueue("batch", 10)}})
	target := buildConfig(configOptions{queues: []*cluster.Queue{buildQueue("compute", 10)}})

	changes, overall := Diff(base, target)
	g.Expect(overall).To(Equal(ComputeFleetRestart))
	g.Expect(changes).To(HaveLen(2))

	g.Expect(changes[0].Kind).To(Equal(Added))
	g.Expect(changes[0].PathString()).To(Equal("cluster/scheduling/queue[compute]"))
	g.Expect(changes[1].Kind).To(Equal(Removed))
	g.Expect(changes[1].PathString()).To(Equal("cluster/scheduling/queue[batch]"))
}

func TestDiff_ComputeResourceAddition(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	base := buildConfig(configOptions{queues: []*cluster.Queue{buildQueue("q1", 10)}})
	target := buildConfig(configOptions{queues: []*cluster.Queue{buildQueue("q1", 10, 20)}})

	changes, overall := Diff(base, target)
	g.Expect(overall).To(Equal(ComputeFleetRestart))
	g.Expect(changes).To(HaveLen(1))
	g.Expect(changes[0].Kind).To(Equal(Added))
	g.Expect(changes[0].PathString()).To(Equal("cluster/scheduling/queue[q1]/compute_resource[cr2]"))
}

func TestDiff_SizeChangesGradeByScheduler(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	base := buildConfig(configOptions{queues: []*cluster.Queue{buildQueue("q1", 10)}})
	target := buildConfig(configOptions{queues: []*cluster.Queue{buildQueue("q1", 50)}})

	changes, overall := Diff(base, target)
	g.Expect(overall).To(Equal(ComputeFleetStop), "slurm capacity ceilings require a fleet stop")
	g.Expect(changes).To(HaveLen(1))
	g.Expect(changes[0].Target()).To(Equal("cluster/scheduling/queue[q1]/compute_resource[cr1].max_count"))
	g.Expect(changes[0].Old).To(Equal(10))
	g.Expect(changes[0].New).To(Equal(50))
}

func TestDiff_MinCountChangeIsAllowed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	target := buildConfig(configOptions{queues: []*cluster.Queue{
		cluster.NewQueue("q1", nil, cluster.NewQueueNetworking([]string{"subnet-compute"}),
			[]*cluster.ComputeResource{cluster.NewComputeResource("cr1", "c5.xlarge", 2, 10, nil, nil)}),
	}})

	changes, overall := Diff(buildConfig(configOptions{}), target)
	g.Expect(overall).To(Equal(Allowed))
	g.Expect(changes).To(HaveLen(1))
	g.Expect(changes[0].Param).To(Equal("min_count"))
}

func TestDiff_TagLifecycle(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	base := buildConfig(configOptions{tags: map[string]string{"team": "research", "cost-center": "42"}})
	target := buildConfig(configOptions{tags: map[string]string{"team": "research", "env": "prod"}})

	changes, overall := Diff(base, target)
	g.Expect(overall).To(Equal(Allowed))
	g.Expect(changes).To(HaveLen(2))

	kinds := make(map[string]ChangeKind, 2)
	for _, c := range changes {
		kinds[c.Param] = c.Kind
	}
	g.Expect(kinds).To(HaveKeyWithValue("env", Added))
	g.Expect(kinds).To(HaveKeyWithValue("cost-center", Removed))
}

func TestDiff_UnknownParameterFailsClosed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	base := buildConfig(configOptions{devSettings: cluster.NewDevSettings(nil, nil)})
	target := buildConfig(configOptions{devSettings: cluster.NewDevSettings("https://host/cookbook.tgz", nil)})

	changes, overall := Diff(base, target)
	g.Expect(overall).To(Equal(Unsupported))
	g.Expect(changes).To(HaveLen(1))
	g.Expect(changes[0].Param).To(Equal("cookbook_url"))
	g.Expect(changes[0].Updatability).To(Equal(Unsupported))
}

func TestDiff_ClusterRenameIsUnsupported(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	changes, overall := Diff(
		buildConfig(configOptions{name: "alpha"}),
		buildConfig(configOptions{name: "beta"}),
	)
	g.Expect(overall).To(Equal(Unsupported))
	g.Expect(changes).To(HaveLen(1))
	g.Expect(changes[0].Target()).To(Equal("cluster.name"))
}

func TestDiff_CustomImageSwapStopsTheFleet(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	changes, overall := Diff(
		buildConfig(configOptions{customAMI: "ami-aaa"}),
		buildConfig(configOptions{customAMI: "ami-bbb"}),
	)
	g.Expect(overall).To(Equal(ComputeFleetStop))
	g.Expect(changes).To(HaveLen(1))
	g.Expect(changes[0].Target()).To(Equal("cluster/image.custom_ami"))
}

func TestPolicyTable_SchedulerDifferences(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	slurm := TableFor(cluster.Variant{Topology: cluster.MultiQueue, Scheduler: cluster.SchedulerSlurm})
	batch := TableFor(cluster.Variant{Topology: cluster.SingleInstanceType, Scheduler: cluster.SchedulerAWSBatch})

	g.Expect(slurm.ForParam("compute_resource", "max_count")).To(Equal(ComputeFleetStop))
	g.Expect(batch.ForParam("compute_resource", "max_count")).To(Equal(Allowed))

	// Unknown elements fail closed.
	g.Expect(slurm.ForParam("compute_resource", "brand_new_knob")).To(Equal(Unsupported))
	g.Expect(slurm.ForSection("brand_new_section")).To(Equal(Unsupported))
}
