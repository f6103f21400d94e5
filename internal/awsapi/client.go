package awsapi

import (
	"context"
)

// LaunchSpec describes a single-instance launch used for dry-run checks.
type LaunchSpec struct {
	InstanceType string
	ImageID      string
	SubnetID     string
	KeyName      string
}

// ImageInfo is the subset of image metadata the checks compare against.
type ImageInfo struct {
	ID string

	// RootVolumeSizeGiB is the size of the image's root device volume.
	RootVolumeSizeGiB int

	State        string
	Architecture string
}

// InstanceTypeInfo is the subset of instance type metadata the checks use.
type InstanceTypeInfo struct {
	Name          string
	VCPUs         int
	Architectures []string
	EFASupported  bool
}

// SubnetInfo holds the subnet attributes relevant to placement checks.
type SubnetInfo struct {
	ID               string
	AvailabilityZone string
	VPCID            string
}

// EC2 is the provider surface consumed by configuration checks.
//
// DryRunLaunch returns (nil, nil) when the provider signals the launch would
// succeed, a non-nil *APIFault when the provider rejected the request with a
// structured code, and a non-nil error only for transport-level failures.
// Describe calls return provider rejections (for example an unknown image
// id) as an *APIFault wrapped in the error chain; use [AsFault] to grade
// them.
type EC2 interface {
	DryRunLaunch(ctx context.Context, spec LaunchSpec) (*APIFault, error)
	DescribeImage(ctx context.Context, imageID string) (*ImageInfo, error)
	DescribeInstanceType(ctx context.Context, name string) (*InstanceTypeInfo, error)
	DescribeSubnet(ctx context.Context, subnetID string) (*SubnetInfo, error)
}
