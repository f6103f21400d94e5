package awsapi

import (
	"context"
	"fmt"
	"sync/atomic"
)

// MockEC2 is a mock implementation of the EC2 interface.
type MockEC2 struct {
	DryRunLaunchFunc         func(ctx context.Context, spec LaunchSpec) (*APIFault, error)
	DescribeImageFunc        func(ctx context.Context, imageID string) (*ImageInfo, error)
	DescribeInstanceTypeFunc func(ctx context.Context, name string) (*InstanceTypeInfo, error)
	DescribeSubnetFunc       func(ctx context.Context, subnetID string) (*SubnetInfo, error)

	// Call counters, useful for asserting memoization and sampling.
	DryRunLaunchCalls         atomic.Int32
	DescribeImageCalls        atomic.Int32
	DescribeInstanceTypeCalls atomic.Int32
	DescribeSubnetCalls       atomic.Int32
}

// Ensure interface compliance
var _ EC2 = (*MockEC2)(nil)

// DryRunLaunch mocks a dry-run launch; succeeds by default.
func (m *MockEC2) DryRunLaunch(ctx context.Context, spec LaunchSpec) (*APIFault, error) {
	m.DryRunLaunchCalls.Add(1)
	if m.DryRunLaunchFunc != nil {
		return m.DryRunLaunchFunc(ctx, spec)
	}
	return nil, nil
}

// DescribeImage mocks an image lookup.
func (m *MockEC2) DescribeImage(ctx context.Context, imageID string) (*ImageInfo, error) {
	m.DescribeImageCalls.Add(1)
	if m.DescribeImageFunc != nil {
		return m.DescribeImageFunc(ctx, imageID)
	}
	return &ImageInfo{ID: imageID, RootVolumeSizeGiB: 35, State: "available", Architecture: "x86_64"}, nil
}

// DescribeInstanceType mocks an instance type lookup.
func (m *MockEC2) DescribeInstanceType(ctx context.Context, name string) (*InstanceTypeInfo, error) {
	m.DescribeInstanceTypeCalls.Add(1)
	if m.DescribeInstanceTypeFunc != nil {
		return m.DescribeInstanceTypeFunc(ctx, name)
	}
	return &InstanceTypeInfo{Name: name, VCPUs: 4, Architectures: []string{"x86_64"}}, nil
}

// DescribeSubnet mocks a subnet lookup.
func (m *MockEC2) DescribeSubnet(ctx context.Context, subnetID string) (*SubnetInfo, error) {
	m.DescribeSubnetCalls.Add(1)
	if m.DescribeSubnetFunc != nil {
		return m.DescribeSubnetFunc(ctx, subnetID)
	}
	return &SubnetInfo{ID: subnetID, AvailabilityZone: "us-east-1a", VPCID: "vpc-mock"}, nil
}

// FaultError wraps an APIFault the way the real client reports describe-call
// rejections, for use in mock funcs.
func FaultError(action string, fault *APIFault) error {
	return fmt.Errorf("%s: %w", action, fault)
}
