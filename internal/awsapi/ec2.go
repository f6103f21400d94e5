package awsapi

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/go-logr/logr"

	"github.com/hpcfleet/hpcfleet/internal/util/retry"
)

// Client is the EC2-backed implementation of the [EC2] interface.
type Client struct {
	api    *ec2.Client
	log    logr.Logger
	region string
}

// Ensure interface compliance
var _ EC2 = (*Client)(nil)

// NewClient creates an EC2 client using the default credential chain.
func NewClient(ctx context.Context, region string, log logr.Logger) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Client{api: ec2.NewFromConfig(cfg), log: log, region: region}, nil
}

// do runs one provider call, retrying throttling-class rejections with
// exponential backoff. Any other failure is surfaced immediately.
func (c *Client) do(ctx context.Context, action string, op func() error) error {
	apiCalls.WithLabelValues(action).Inc()
	return retry.Do(ctx, op,
		retry.WithMaxAttempts(5),
		retry.WithInitialDelay(500*time.Millisecond),
		retry.WithRetryable(func(err error) bool {
			if isThrottling(err) {
				throttleRetries.WithLabelValues(action).Inc()
				c.log.V(1).Info("provider throttled, backing off", "action", action)
				return true
			}
			return false
		}),
	)
}

// DryRunLaunch asks EC2 whether launching one instance per the launch spec
// would succeed, without launching anything.
func (c *Client) DryRunLaunch(ctx context.Context, spec LaunchSpec) (*APIFault, error) {
	input := &ec2.RunInstancesInput{
		DryRun:       aws.Bool(true),
		ImageId:      aws.String(spec.ImageID),
		InstanceType: types.InstanceType(spec.InstanceType),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
		SubnetId:     aws.String(spec.SubnetID),
	}
	if spec.KeyName != "" {
		input.KeyName = aws.String(spec.KeyName)
	}

	err := c.do(ctx, "RunInstances", func() error {
		_, err := c.api.RunInstances(ctx, input)
		return err
	})

	fault, err := splitOutcome(err)
	if err != nil {
		return nil, fmt.Errorf("dry-run launch for instance type %s: %w", spec.InstanceType, err)
	}
	if fault != nil && fault.Code == dryRunSuccessCode {
		// The provider signals a would-succeed dry run via this code.
		return nil, nil
	}
	return fault, nil
}

// DescribeImage returns metadata for the given image id.
func (c *Client) DescribeImage(ctx context.Context, imageID string) (*ImageInfo, error) {
	var out *ec2.DescribeImagesOutput
	err := c.do(ctx, "DescribeImages", func() error {
		var callErr error
		out, callErr = c.api.DescribeImages(ctx, &ec2.DescribeImagesInput{
			ImageIds: []string{imageID},
		})
		return callErr
	})
	if fault, splitErr := splitOutcome(err); splitErr != nil {
		return nil, fmt.Errorf("describe image %s: %w", imageID, splitErr)
	} else if fault != nil {
		return nil, fmt.Errorf("describe image %s: %w", imageID, fault)
	}
	if len(out.Images) == 0 {
		return nil, fmt.Errorf("describe image %s: empty response", imageID)
	}

	image := out.Images[0]
	info := &ImageInfo{
		ID:           aws.ToString(image.ImageId),
		State:        string(image.State),
		Architecture: string(image.Architecture),
	}
	for _, mapping := range image.BlockDeviceMappings {
		if aws.ToString(mapping.DeviceName) == aws.ToString(image.RootDeviceName) && mapping.Ebs != nil {
			info.RootVolumeSizeGiB = int(aws.ToInt32(mapping.Ebs.VolumeSize))
		}
	}
	return info, nil
}

// DescribeInstanceType returns metadata for the given instance type name.
func (c *Client) DescribeInstanceType(ctx context.Context, name string) (*InstanceTypeInfo, error) {
	var out *ec2.DescribeInstanceTypesOutput
	err := c.do(ctx, "DescribeInstanceTypes", func() error {
		var callErr error
		out, callErr = c.api.DescribeInstanceTypes(ctx, &ec2.DescribeInstanceTypesInput{
			InstanceTypes: []types.InstanceType{types.InstanceType(name)},
		})
		return callErr
	})
	if fault, splitErr := splitOutcome(err); splitErr != nil {
		return nil, fmt.Errorf("describe instance type %s: %w", name, splitErr)
	} else if fault != nil {
		return nil, fmt.Errorf("describe instance type %s: %w", name, fault)
	}
	if len(out.InstanceTypes) == 0 {
		return nil, fmt.Errorf("describe instance type %s: empty response", name)
	}

	it := out.InstanceTypes[0]
	info := &InstanceTypeInfo{Name: name}
	if it.VCpuInfo != nil {
		info.VCPUs = int(aws.ToInt32(it.VCpuInfo.DefaultVCpus))
	}
	if it.ProcessorInfo != nil {
		for _, arch := range it.ProcessorInfo.SupportedArchitectures {
			info.Architectures = append(info.Architectures, string(arch))
		}
	}
	if it.NetworkInfo != nil {
		info.EFASupported = aws.ToBool(it.NetworkInfo.EfaSupported)
	}
	return info, nil
}

// DescribeSubnet returns placement attributes for the given subnet id.
func (c *Client) DescribeSubnet(ctx context.Context, subnetID string) (*SubnetInfo, error) {
	var out *ec2.DescribeSubnetsOutput
	err := c.do(ctx, "DescribeSubnets", func() error {
		var callErr error
		out, callErr = c.api.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
			SubnetIds: []string{subnetID},
		})
		return callErr
	})
	if fault, splitErr := splitOutcome(err); splitErr != nil {
		return nil, fmt.Errorf("describe subnet %s: %w", subnetID, splitErr)
	} else if fault != nil {
		return nil, fmt.Errorf("describe subnet %s: %w", subnetID, fault)
	}
	if len(out.Subnets) == 0 {
		return nil, fmt.Errorf("describe subnet %s: empty response", subnetID)
	}

	subnet := out.Subnets[0]
	return &SubnetInfo{
		ID:               aws.ToString(subnet.SubnetId),
		AvailabilityZone: aws.ToString(subnet.AvailabilityZone),
		VPCID:            aws.ToString(subnet.VpcId),
	}, nil
}
