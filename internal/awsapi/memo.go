package awsapi

import (
	"context"
	"sync"
)

// MemoizedEC2 caches read-only describe results for the duration of one
// validation run. Entries are never invalidated: the wrapper must be created
// per run and discarded with it, so independent runs cannot observe each
// other's results. Dry-run launches are never cached.
type MemoizedEC2 struct {
	inner EC2

	mu            sync.Mutex
	images        map[string]*ImageInfo
	instanceTypes map[string]*InstanceTypeInfo
	subnets       map[string]*SubnetInfo
}

// Ensure interface compliance
var _ EC2 = (*MemoizedEC2)(nil)

// Memoize wraps a client with run-scoped caching of describe calls.
func Memoize(inner EC2) *MemoizedEC2 {
	return &MemoizedEC2{
		inner:         inner,
		images:        make(map[string]*ImageInfo),
		instanceTypes: make(map[string]*InstanceTypeInfo),
		subnets:       make(map[string]*SubnetInfo),
	}
}

// DryRunLaunch always passes through to the underlying client.
func (m *MemoizedEC2) DryRunLaunch(ctx context.Context, spec LaunchSpec) (*APIFault, error) {
	return m.inner.DryRunLaunch(ctx, spec)
}

// DescribeImage returns the cached result for the image id, querying the
// underlying client on first use. Failed lookups are not cached.
func (m *MemoizedEC2) DescribeImage(ctx context.Context, imageID string) (*ImageInfo, error) {
	m.mu.Lock()
	cached, ok := m.images[imageID]
	m.mu.Unlock()
	if ok {
		return cached, nil
	}

	info, err := m.inner.DescribeImage(ctx, imageID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.images[imageID] = info
	m.mu.Unlock()
	return info, nil
}

// DescribeInstanceType returns the cached result for the instance type,
// querying the underlying client on first use.
func (m *MemoizedEC2) DescribeInstanceType(ctx context.Context, name string) (*InstanceTypeInfo, error) {
	m.mu.Lock()
	cached, ok := m.instanceTypes[name]
	m.mu.Unlock()
	if ok {
		return cached, nil
	}

	info, err := m.inner.DescribeInstanceType(ctx, name)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.instanceTypes[name] = info
	m.mu.Unlock()
	return info, nil
}

// DescribeSubnet returns the cached result for the subnet id, querying the
// underlying client on first use.
func (m *MemoizedEC2) DescribeSubnet(ctx context.Context, subnetID string) (*SubnetInfo, error) {
	m.mu.Lock()
	cached, ok := m.subnets[subnetID]
	m.mu.Unlock()
	if ok {
		return cached, nil
	}

	info, err := m.inner.DescribeSubnet(ctx, subnetID)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.subnets[subnetID] = info
	m.mu.Unlock()
	return info, nil
}
