package cluster

import (
	"sort"

	"github.com/hpcfleet/hpcfleet/internal/validate"
)

// Image identifies the machine image the cluster nodes boot from.
type Image struct {
	base
	OS        *Param
	CustomAMI *Param
}

// NewImage creates the image section. A nil customAMI means the official
// image for the OS is used.
func NewImage(os, customAMI any) *Image {
	img := &Image{
		OS:        NewParam("os", os, "alinux2"),
		CustomAMI: NewParam("custom_ami", customAMI, nil),
	}
	img.base = newBase("image", "", []*Param{img.OS, img.CustomAMI}, nil)
	return img
}

// RegisterValidators registers the image's static checks.
func (i *Image) RegisterValidators(_ *validate.RunContext, reg *validate.Registry) {
	reg.Add(1, &imageOsValidator{os: i.OS})
}

// RootVolume is the head node's root device configuration.
type RootVolume struct {
	base
	Size *Param
}

// NewRootVolume creates the root volume section; size defaults to 35 GiB.
func NewRootVolume(size any) *RootVolume {
	rv := &RootVolume{Size: NewParam("size", size, 35)}
	rv.base = newBase("root_volume", "", []*Param{rv.Size}, nil)
	return rv
}

// RegisterValidators registers the root volume's static bounds check.
func (rv *RootVolume) RegisterValidators(_ *validate.RunContext, reg *validate.Registry) {
	reg.Add(1, &rootVolumeBoundsValidator{size: rv.Size})
}

// Ssh holds cluster access key configuration.
type Ssh struct {
	base
	KeyName *Param
}

// NewSsh creates the ssh section.
func NewSsh(keyName any) *Ssh {
	s := &Ssh{KeyName: NewParam("key_name", keyName, nil)}
	s.base = newBase("ssh", "", []*Param{s.KeyName}, nil)
	return s
}

// HeadNodeNetworking places the head node in a subnet.
type HeadNodeNetworking struct {
	base
	SubnetID *Param
}

// NewHeadNodeNetworking creates the head node networking section.
func NewHeadNodeNetworking(subnetID any) *HeadNodeNetworking {
	n := &HeadNodeNetworking{SubnetID: NewParam("subnet_id", subnetID, nil)}
	n.base = newBase("networking", "", []*Param{n.SubnetID}, nil)
	return n
}

// HeadNode is the cluster's management node.
type HeadNode struct {
	base
	InstanceType *Param
	Networking   *HeadNodeNetworking
	Ssh          *Ssh
	RootVolume   *RootVolume
}

// NewHeadNode creates the head node section and its nested sections.
func NewHeadNode(instanceType any, networking *HeadNodeNetworking, ssh *Ssh, rootVolume *RootVolume) *HeadNode {
	h := &HeadNode{
		InstanceType: NewParam("instance_type", instanceType, nil),
		Networking:   networking,
		Ssh:          ssh,
		RootVolume:   rootVolume,
	}
	var children []Section
	if networking != nil {
		children = append(children, networking)
	}
	if ssh != nil {
		children = append(children, ssh)
	}
	if rootVolume != nil {
		children = append(children, rootVolume)
	}
	h.base = newBase("head_node", "", []*Param{h.InstanceType}, children)
	return h
}

// RegisterValidators registers the head node's checks. The instance type
// existence probe runs before anything else that may depend on it.
func (h *HeadNode) RegisterValidators(rc *validate.RunContext, reg *validate.Registry) {
	if rc.LiveChecksEnabled() {
		reg.Add(100, &instanceTypeValidator{instanceType: h.InstanceType})
	}
}

// QueueNetworking places a queue's compute nodes in subnets.
type QueueNetworking struct {
	base
	SubnetIDs *Param
}

// NewQueueNetworking creates the queue networking section; subnetIDs is a
// []string value.
func NewQueueNetworking(subnetIDs any) *QueueNetworking {
	n := &QueueNetworking{SubnetIDs: NewParam("subnet_ids", subnetIDs, nil)}
	n.base = newBase("networking", "", []*Param{n.SubnetIDs}, nil)
	return n
}

// ComputeResource is one instance type definition inside a queue.
type ComputeResource struct {
	base
	InstanceType *Param
	MinCount     *Param
	MaxCount     *Param
	DisableSMT   *Param
	CustomAMI    *Param
}

// NewComputeResource creates a compute resource definition. The label is
// the resource's identity within its queue.
func NewComputeResource(name string, instanceType, minCount, maxCount, disableSMT, customAMI any) *ComputeResource {
	cr := &ComputeResource{
		InstanceType: NewParam("instance_type", instanceType, nil),
		MinCount:     NewParam("min_count", minCount, 0),
		MaxCount:     NewParam("max_count", maxCount, 10),
		DisableSMT:   NewParam("disable_simultaneous_multithreading", disableSMT, false),
		CustomAMI:    NewParam("custom_ami", customAMI, nil),
	}
	cr.base = newBase("compute_resource", name,
		[]*Param{cr.InstanceType, cr.MinCount, cr.MaxCount, cr.DisableSMT, cr.CustomAMI}, nil)
	return cr
}

// RegisterValidators registers the compute resource's checks.
func (cr *ComputeResource) RegisterValidators(rc *validate.RunContext, reg *validate.Registry) {
	reg.Add(50, &nameFormatValidator{kind: "compute resource", name: cr.Label()})
	reg.Add(10, &computeSizeValidator{minCount: cr.MinCount, maxCount: cr.MaxCount})
	if cr.CustomAMI.StringValue() != "" && rc.SignalOnce("compute-custom-ami-override") {
		reg.Add(1, &customAmiOverrideValidator{})
	}
	if rc.LiveChecksEnabled() {
		reg.Add(100, &instanceTypeValidator{instanceType: cr.InstanceType})
	}
}

// Queue is a named scheduling queue of compute resources.
type Queue struct {
	base
	ComputeType      *Param
	Networking       *QueueNetworking
	ComputeResources []*ComputeResource
}

// NewQueue creates a queue. The label is the queue's identity.
func NewQueue(name string, computeType any, networking *QueueNetworking, resources []*ComputeResource) *Queue {
	q := &Queue{
		ComputeType:      NewParam("compute_type", computeType, "ondemand"),
		Networking:       networking,
		ComputeResources: resources,
	}
	var children []Section
	if networking != nil {
		children = append(children, networking)
	}
	for _, cr := range resources {
		children = append(children, cr)
	}
	q.base = newBase("queue", name, []*Param{q.ComputeType}, children)
	return q
}

// RegisterValidators registers the queue's static checks.
func (q *Queue) RegisterValidators(_ *validate.RunContext, reg *validate.Registry) {
	reg.Add(50, &nameFormatValidator{kind: "queue", name: q.Label()})

	labels := make([]string, len(q.ComputeResources))
	types := make([]*Param, len(q.ComputeResources))
	for i, cr := range q.ComputeResources {
		labels[i] = cr.Label()
		types[i] = cr.InstanceType
	}
	reg.Add(10, &duplicateNameValidator{kind: "compute resource", scope: q.Label(), names: labels})
	reg.Add(10, &duplicateInstanceTypeValidator{queue: q.Label(), instanceTypes: types})
}

// Scheduling groups the queues of a multi-queue cluster.
type Scheduling struct {
	base
	Queues []*Queue
}

// NewScheduling creates the scheduling section.
func NewScheduling(queues []*Queue) *Scheduling {
	s := &Scheduling{Queues: queues}
	children := make([]Section, len(queues))
	for i, q := range queues {
		children[i] = q
	}
	s.base = newBase("scheduling", "", nil, children)
	return s
}

// TotalMaxCount is the fleet-wide upper capacity bound across all queues.
func (s *Scheduling) TotalMaxCount() int {
	total := 0
	for _, q := range s.Queues {
		for _, cr := range q.ComputeResources {
			total += cr.MaxCount.IntValue()
		}
	}
	return total
}

// RegisterValidators registers the scheduling-level checks. The capacity
// check is bound to the TotalMaxCount getter, not a snapshot, so each run
// re-reads the tree's current state.
func (s *Scheduling) RegisterValidators(_ *validate.RunContext, reg *validate.Registry) {
	reg.Add(10, &duplicateNameValidator{kind: "queue", names: queueLabels(s.Queues)})
	reg.Add(1, &fleetCapacityValidator{total: s.TotalMaxCount})
}

func queueLabels(queues []*Queue) []string {
	out := make([]string, len(queues))
	for i, q := range queues {
		out[i] = q.Label()
	}
	return out
}

// ComputeFleet is the single compute pool of a single-instance-type cluster.
type ComputeFleet struct {
	base
	InstanceType *Param
	MinCount     *Param
	MaxCount     *Param
	SpotPrice    *Param
}

// NewComputeFleet creates the compute fleet section.
func NewComputeFleet(instanceType, minCount, maxCount, spotPrice any) *ComputeFleet {
	f := &ComputeFleet{
		InstanceType: NewParam("instance_type", instanceType, nil),
		MinCount:     NewParam("min_count", minCount, 0),
		MaxCount:     NewParam("max_count", maxCount, 10),
		SpotPrice:    NewParam("spot_price", spotPrice, nil),
	}
	f.base = newBase("compute_fleet", "", []*Param{f.InstanceType, f.MinCount, f.MaxCount, f.SpotPrice}, nil)
	return f
}

// RegisterValidators registers the compute fleet's checks. The spot price
// check lives at the cluster level, where the variant capability is known.
func (f *ComputeFleet) RegisterValidators(rc *validate.RunContext, reg *validate.Registry) {
	reg.Add(10, &computeSizeValidator{minCount: f.MinCount, maxCount: f.MaxCount})
	if rc.LiveChecksEnabled() {
		reg.Add(100, &instanceTypeValidator{instanceType: f.InstanceType})
	}
}

// Tags holds user tags propagated to provisioned resources. Each tag is a
// parameter keyed by tag name, ordered by key for deterministic traversal.
type Tags struct {
	base
}

// NewTags creates the tags section from a key/value map.
func NewTags(entries map[string]string) *Tags {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make([]*Param, len(keys))
	for i, k := range keys {
		params[i] = NewParam(k, entries[k], nil)
	}
	t := &Tags{}
	t.base = newBase("tags", "", params, nil)
	return t
}

// RegisterValidators registers the reserved-prefix check.
func (t *Tags) RegisterValidators(_ *validate.RunContext, reg *validate.Registry) {
	reg.Add(1, &reservedTagValidator{tags: t.params})
}

// DevSettings is the advanced escape hatch for overriding release
// artifacts. Using it is supported but bypasses the usual guarantees.
type DevSettings struct {
	base
	CookbookURL *Param
	NodePackage *Param
}

// NewDevSettings creates the dev settings section.
func NewDevSettings(cookbookURL, nodePackage any) *DevSettings {
	d := &DevSettings{
		CookbookURL: NewParam("cookbook_url", cookbookURL, nil),
		NodePackage: NewParam("node_package", nodePackage, nil),
	}
	d.base = newBase("dev_settings", "", []*Param{d.CookbookURL, d.NodePackage}, nil)
	return d
}

// RegisterValidators registers the artifact URL checks.
func (d *DevSettings) RegisterValidators(_ *validate.RunContext, reg *validate.Registry) {
	reg.Add(1, &artifactURLValidator{param: d.CookbookURL})
	reg.Add(1, &artifactURLValidator{param: d.NodePackage})
}

// ClusterConfig is the root of the resource tree.
type ClusterConfig struct {
	base
	Variant      Variant
	Name         *Param
	Image        *Image
	HeadNode     *HeadNode
	Scheduling   *Scheduling
	ComputeFleet *ComputeFleet
	Tags         *Tags
	DevSettings  *DevSettings
}

// NewClusterConfig assembles the root section. Scheduling and ComputeFleet
// are mutually exclusive; which one must be present is decided by the
// variant and enforced at validation time.
func NewClusterConfig(variant Variant, name any, image *Image, head *HeadNode,
	scheduling *Scheduling, fleet *ComputeFleet, tags *Tags, dev *DevSettings) *ClusterConfig {

	c := &ClusterConfig{
		Variant:      variant,
		Name:         NewParam("name", name, nil),
		Image:        image,
		HeadNode:     head,
		Scheduling:   scheduling,
		ComputeFleet: fleet,
		Tags:         tags,
		DevSettings:  dev,
	}
	var children []Section
	if image != nil {
		children = append(children, image)
	}
	if head != nil {
		children = append(children, head)
	}
	if scheduling != nil {
		children = append(children, scheduling)
	}
	if fleet != nil {
		children = append(children, fleet)
	}
	if tags != nil {
		children = append(children, tags)
	}
	if dev != nil {
		children = append(children, dev)
	}
	c.base = newBase("cluster", "", []*Param{c.Name}, children)
	return c
}

// RegisterValidators registers the cluster-level checks, including the
// cross-section live checks that need data from several subtrees.
func (c *ClusterConfig) RegisterValidators(rc *validate.RunContext, reg *validate.Registry) {
	reg.Add(100, &variantShapeValidator{config: c})
	reg.Add(50, &nameFormatValidator{kind: "cluster", name: c.Name.StringValue()})

	if c.ComputeFleet != nil {
		if caps, ok := CapabilityOf(c.Variant); ok && caps.SupportsSpot {
			reg.Add(1, &spotPriceValidator{spotPrice: c.ComputeFleet.SpotPrice})
		}
	}

	if !rc.LiveChecksEnabled() {
		return
	}

	if c.Image != nil && c.HeadNode != nil && c.HeadNode.RootVolume != nil &&
		c.Image.CustomAMI.StringValue() != "" {
		reg.Add(1, &rootVolumeSizeValidator{
			imageID: c.Image.CustomAMI,
			size:    c.HeadNode.RootVolume.Size,
		})
	}

	c.registerPlacementChecks(reg)
	c.registerLaunchChecks(reg)
}

// registerPlacementChecks compares each queue's subnets against the head
// node's availability zone.
func (c *ClusterConfig) registerPlacementChecks(reg *validate.Registry) {
	if c.HeadNode == nil || c.HeadNode.Networking == nil || c.Scheduling == nil {
		return
	}
	for _, q := range c.Scheduling.Queues {
		if q.Networking == nil {
			continue
		}
		reg.Add(1, &subnetPlacementValidator{
			queue:        q.Label(),
			headSubnetID: c.HeadNode.Networking.SubnetID,
			queueSubnets: q.Networking.SubnetIDs,
		})
	}
}

// registerLaunchChecks registers dry-run launch feasibility probes.
//
// Dry-run launches consume a rate-limited (and billable) quota of provider
// calls, so for the multi-queue variant only the first compute resource of
// each queue is probed when the capability table asks for sampling:
// structurally similar siblings in a queue share subnet and image, which is
// what the probe exercises. This trades validation coverage for bounded
// latency and cost.
func (c *ClusterConfig) registerLaunchChecks(reg *validate.Registry) {
	// Only custom images need a feasibility probe; official images are
	// validated at release time.
	imageID := ""
	if c.Image != nil {
		imageID = c.Image.CustomAMI.StringValue()
	}
	if imageID == "" || c.HeadNode == nil || c.HeadNode.Networking == nil {
		return
	}

	keyName := ""
	if c.HeadNode.Ssh != nil {
		keyName = c.HeadNode.Ssh.KeyName.StringValue()
	}

	reg.Add(1, &instanceLaunchValidator{
		target:       "head node",
		instanceType: c.HeadNode.InstanceType,
		imageID:      imageID,
		subnetID:     c.HeadNode.Networking.SubnetID.StringValue(),
		keyName:      keyName,
	})

	caps, ok := CapabilityOf(c.Variant)
	if !ok {
		return
	}

	if c.ComputeFleet != nil {
		reg.Add(1, &instanceLaunchValidator{
			target:       "compute fleet",
			instanceType: c.ComputeFleet.InstanceType,
			imageID:      imageID,
			subnetID:     c.HeadNode.Networking.SubnetID.StringValue(),
			keyName:      keyName,
		})
	}

	if c.Scheduling == nil {
		return
	}
	for _, q := range c.Scheduling.Queues {
		resources := q.ComputeResources
		if caps.SampleLaunchChecks && len(resources) > 1 {
			resources = resources[:1]
		}
		subnetID := ""
		if q.Networking != nil {
			if ids, ok := q.Networking.SubnetIDs.Value().([]string); ok && len(ids) > 0 {
				subnetID = ids[0]
			}
		}
		for _, cr := range resources {
			launchImage := imageID
			if override := cr.CustomAMI.StringValue(); override != "" {
				launchImage = override
			}
			reg.Add(1, &instanceLaunchValidator{
				target:       "queue " + q.Label() + " compute resource " + cr.Label(),
				instanceType: cr.InstanceType,
				imageID:      launchImage,
				subnetID:     subnetID,
				keyName:      keyName,
			})
		}
	}
}
