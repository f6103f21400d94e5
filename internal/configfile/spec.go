package configfile

// Spec mirrors the YAML configuration file. Scalar fields are pointers so a
// value left out of the file is distinguishable from one explicitly set to a
// zero value; defaults are applied when the resource tree is built.
type Spec struct {
	Name         string            `mapstructure:"name"`
	Scheduler    string            `mapstructure:"scheduler"`
	Image        *ImageSpec        `mapstructure:"image"`
	HeadNode     *HeadNodeSpec     `mapstructure:"head_node"`
	Scheduling   *SchedulingSpec   `mapstructure:"scheduling"`
	ComputeFleet *ComputeFleetSpec `mapstructure:"compute_fleet"`
	Tags         map[string]string `mapstructure:"tags"`
	DevSettings  *DevSettingsSpec  `mapstructure:"dev_settings"`
}

// ImageSpec selects the machine image.
type ImageSpec struct {
	OS        *string `mapstructure:"os"`
	CustomAMI *string `mapstructure:"custom_ami"`
}

// HeadNodeSpec describes the management node.
type HeadNodeSpec struct {
	InstanceType *string                 `mapstructure:"instance_type"`
	Networking   *HeadNodeNetworkingSpec `mapstructure:"networking"`
	Ssh          *SshSpec                `mapstructure:"ssh"`
	RootVolume   *RootVolumeSpec         `mapstructure:"root_volume"`
}

// HeadNodeNetworkingSpec places the head node.
type HeadNodeNetworkingSpec struct {
	SubnetID *string `mapstructure:"subnet_id"`
}

// SshSpec configures cluster access.
type SshSpec struct {
	KeyName *string `mapstructure:"key_name"`
}

// RootVolumeSpec configures the head node root device.
type RootVolumeSpec struct {
	Size *int `mapstructure:"size"`
}

// SchedulingSpec declares the queues of a multi-queue cluster.
type SchedulingSpec struct {
	Queues []QueueSpec `mapstructure:"queues"`
}

// QueueSpec declares one scheduling queue.
type QueueSpec struct {
	Name             string                `mapstructure:"name"`
	ComputeType      *string               `mapstructure:"compute_type"`
	Networking       *QueueNetworkingSpec  `mapstructure:"networking"`
	ComputeResources []ComputeResourceSpec `mapstructure:"compute_resources"`
}

// QueueNetworkingSpec places a queue's compute nodes.
type QueueNetworkingSpec struct {
	SubnetIDs []string `mapstructure:"subnet_ids"`
}

// ComputeResourceSpec declares one instance type definition inside a queue.
type ComputeResourceSpec struct {
	Name         string  `mapstructure:"name"`
	InstanceType *string `mapstructure:"instance_type"`
	MinCount     *int    `mapstructure:"min_count"`
	MaxCount     *int    `mapstructure:"max_count"`
	DisableSMT   *bool   `mapstructure:"disable_simultaneous_multithreading"`
	CustomAMI    *string `mapstructure:"custom_ami"`
}

// ComputeFleetSpec declares the single compute pool of a
// single-instance-type cluster.
type ComputeFleetSpec struct {
	InstanceType *string  `mapstructure:"instance_type"`
	MinCount     *int     `mapstructure:"min_count"`
	MaxCount     *int     `mapstructure:"max_count"`
	SpotPrice    *float64 `mapstructure:"spot_price"`
}

// DevSettingsSpec overrides release artifacts.
type DevSettingsSpec struct {
	CookbookURL *string `mapstructure:"cookbook_url"`
	NodePackage *string `mapstructure:"node_package"`
}
