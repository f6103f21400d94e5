package cluster

import (
	"context"
	"fmt"
	"strings"

	"github.com/hpcfleet/hpcfleet/internal/awsapi"
	"github.com/hpcfleet/hpcfleet/internal/validate"
)

// instanceTypeValidator confirms the instance type exists in the region.
type instanceTypeValidator struct {
	instanceType *Param
}

func (v *instanceTypeValidator) Type() string { return "InstanceTypeValidator" }

func (v *instanceTypeValidator) Check(ctx context.Context, rc *validate.RunContext) ([]validate.Result, error) {
	if !v.instanceType.Valid() {
		return nil, nil
	}
	name := v.instanceType.StringValue()
	if name == "" {
		return nil, nil
	}

	_, err := rc.EC2.DescribeInstanceType(ctx, name)
	if err != nil {
		if fault, ok := awsapi.AsFault(err); ok {
			return []validate.Result{{
				Level:         validate.LevelError,
				Message:       fmt.Sprintf("instance type %s is not available in this region: %s", name, fault.Message),
				ValidatorType: v.Type(),
			}}, nil
		}
		// The lookup itself failed; the run cannot complete.
		return nil, err
	}
	return nil, nil
}

// instanceLaunchValidator asks the provider, in dry-run mode, whether a
// launch with the bound parameters would succeed, and translates the
// provider's error codes into remediation-oriented diagnostics.
type instanceLaunchValidator struct {
	target       string
	instanceType *Param
	imageID      string
	subnetID     string
	keyName      string
}

func (v *instanceLaunchValidator) Type() string { return "InstanceLaunchValidator" }

func (v *instanceLaunchValidator) Check(ctx context.Context, rc *validate.RunContext) ([]validate.Result, error) {
	if !v.instanceType.Valid() {
		return nil, nil
	}
	instanceType := v.instanceType.StringValue()
	if instanceType == "" || v.imageID == "" || v.subnetID == "" {
		return nil, nil
	}

	fault, err := rc.EC2.DryRunLaunch(ctx, awsapi.LaunchSpec{
		InstanceType: instanceType,
		ImageID:      v.imageID,
		SubnetID:     v.subnetID,
		KeyName:      v.keyName,
	})
	if err != nil {
		// Transport failure: the check did not actually run.
		return nil, err
	}
	if fault == nil {
		// The provider confirmed the launch would succeed.
		return nil, nil
	}
	return []validate.Result{v.translate(fault, instanceType)}, nil
}

// translate maps provider launch rejections to diagnostics. Unrecognized
// codes fall back to a generic message naming the raw provider error.
func (v *instanceLaunchValidator) translate(fault *awsapi.APIFault, instanceType string) validate.Result {
	result := validate.Result{Level: validate.LevelError, ValidatorType: v.Type()}

	switch fault.Code {
	case "InstanceLimitExceeded":
		result.Message = fmt.Sprintf(
			"you have reached the limit on the number of %s instances that can run concurrently; request fewer instances for the %s or ask for a limit increase. %s",
			instanceType, v.target, fault.Message)
	case "InsufficientInstanceCapacity":
		result.Message = fmt.Sprintf(
			"there is not enough capacity to fulfill the %s request for the %s. %s",
			instanceType, v.target, fault.Message)
	case "InsufficientFreeAddressesInSubnet":
		result.Message = fmt.Sprintf(
			"subnet %s does not have enough free private IP addresses to fulfill the %s request. %s",
			v.subnetID, v.target, fault.Message)
	case "UnsupportedOperation":
		result.Message = fmt.Sprintf("launch of %s for the %s is unsupported: %s", instanceType, v.target, fault.Message)
	case "InvalidParameterCombination":
		if strings.Contains(fault.Message, "associatePublicIPAddress") {
			result.Level = validate.LevelWarning
			result.Message = fmt.Sprintf(
				"instance type %s cannot take a public IP; make sure subnet %s routes private addresses to the internet (for example through a NAT gateway)",
				instanceType, v.subnetID)
		} else {
			result.Message = fmt.Sprintf("invalid launch parameter combination for the %s: %s", v.target, fault.Message)
		}
	default:
		result.Message = fmt.Sprintf(
			"unable to validate launch parameters for instance type %s (%s); double check the cluster configuration. %s",
			instanceType, v.target, fault.Message)
	}
	return result
}

// rootVolumeSizeValidator checks the requested root volume against the
// parent image's root device size.
type rootVolumeSizeValidator struct {
	imageID *Param
	size    *Param
}

func (v *rootVolumeSizeValidator) Type() string { return "RootVolumeSizeValidator" }

func (v *rootVolumeSizeValidator) Check(ctx context.Context, rc *validate.RunContext) ([]validate.Result, error) {
	if !v.imageID.Valid() || !v.size.Valid() {
		return nil, nil
	}
	imageID := v.imageID.StringValue()
	if imageID == "" {
		return nil, nil
	}

	info, err := rc.EC2.DescribeImage(ctx, imageID)
	if err != nil {
		if fault, ok := awsapi.AsFault(err); ok {
			return []validate.Result{{
				Level:         validate.LevelError,
				Message:       fmt.Sprintf("image %s could not be inspected: %s", imageID, fault.Message),
				ValidatorType: v.Type(),
			}}, nil
		}
		return nil, err
	}

	var results []validate.Result
	if info.State != "" && info.State != "available" {
		results = append(results, validate.Result{
			Level:         validate.LevelWarning,
			Message:       fmt.Sprintf("image %s is in state %q, not \"available\"", imageID, info.State),
			ValidatorType: v.Type(),
		})
	}
	if requested := v.size.IntValue(); info.RootVolumeSizeGiB > 0 && requested < info.RootVolumeSizeGiB {
		results = append(results, validate.Result{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("root volume size %d GiB is smaller than the root volume of image %s, which is %d GiB", requested, imageID, info.RootVolumeSizeGiB),
			ValidatorType: v.Type(),
		})
	}
	return results, nil
}

// subnetPlacementValidator compares a queue's subnets against the head
// node's availability zone. Cross-zone placement works but costs latency
// and data transfer, so it is surfaced as a warning.
type subnetPlacementValidator struct {
	queue        string
	headSubnetID *Param
	queueSubnets *Param
}

func (v *subnetPlacementValidator) Type() string { return "SubnetPlacementValidator" }

func (v *subnetPlacementValidator) Check(ctx context.Context, rc *validate.RunContext) ([]validate.Result, error) {
	if !v.headSubnetID.Valid() || !v.queueSubnets.Valid() {
		return nil, nil
	}
	headSubnet := v.headSubnetID.StringValue()
	subnetIDs, _ := v.queueSubnets.Value().([]string)
	if headSubnet == "" || len(subnetIDs) == 0 {
		return nil, nil
	}

	headInfo, err := rc.EC2.DescribeSubnet(ctx, headSubnet)
	if err != nil {
		return v.lookupFailure(headSubnet, err)
	}

	var results []validate.Result
	for _, subnetID := range subnetIDs {
		info, err := rc.EC2.DescribeSubnet(ctx, subnetID)
		if err != nil {
			failure, abortErr := v.lookupFailure(subnetID, err)
			if abortErr != nil {
				return nil, abortErr
			}
			results = append(results, failure...)
			continue
		}
		if info.AvailabilityZone != headInfo.AvailabilityZone {
			results = append(results, validate.Result{
				Level: validate.LevelWarning,
				Message: fmt.Sprintf(
					"queue %s subnet %s is in availability zone %s while the head node is in %s; cross-zone traffic adds latency and transfer cost",
					v.queue, subnetID, info.AvailabilityZone, headInfo.AvailabilityZone),
				ValidatorType: v.Type(),
			})
		}
	}
	return results, nil
}

func (v *subnetPlacementValidator) lookupFailure(subnetID string, err error) ([]validate.Result, error) {
	if fault, ok := awsapi.AsFault(err); ok {
		return []validate.Result{{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("subnet %s could not be inspected: %s", subnetID, fault.Message),
			ValidatorType: v.Type(),
		}}, nil
	}
	return nil, err
}
