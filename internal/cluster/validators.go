package cluster

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hpcfleet/hpcfleet/internal/validate"
)

// namePattern constrains cluster, queue and compute resource names. Names
// become provider resource identifiers, so the character set is strict.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]{0,29}$`)

// reservedTagPrefixes may not be used for user tags.
var reservedTagPrefixes = []string{"aws:", "hpcfleet:"}

// supportedOses are the operating systems release images exist for.
var supportedOses = map[string]struct{}{
	"alinux2":    {},
	"centos7":    {},
	"ubuntu1804": {},
	"ubuntu2004": {},
}

// variantShapeValidator checks that the tree's concrete shape matches its
// variant tag: which sections must exist and the per-variant size limits.
type variantShapeValidator struct {
	config *ClusterConfig
}

func (v *variantShapeValidator) Type() string { return "VariantShapeValidator" }

func (v *variantShapeValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	caps, ok := CapabilityOf(v.config.Variant)
	if !ok {
		return []validate.Result{{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("cluster variant %s is not supported", v.config.Variant),
			ValidatorType: v.Type(),
		}}, nil
	}

	var results []validate.Result
	fail := func(format string, args ...any) {
		results = append(results, validate.Result{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf(format, args...),
			ValidatorType: v.Type(),
		})
	}

	switch v.config.Variant.Topology {
	case SingleInstanceType:
		if v.config.ComputeFleet == nil {
			fail("single-instance-type clusters require a compute fleet section")
		}
		if v.config.Scheduling != nil {
			fail("single-instance-type clusters cannot declare queues")
		}
	case MultiQueue:
		if v.config.Scheduling == nil {
			fail("multi-queue clusters require a scheduling section")
		}
		if v.config.ComputeFleet != nil {
			fail("multi-queue clusters cannot declare a compute fleet section")
		}
	}

	if v.config.Scheduling != nil {
		if n := len(v.config.Scheduling.Queues); n > caps.MaxQueues {
			fail("cluster declares %d queues, the %s variant allows at most %d", n, v.config.Variant, caps.MaxQueues)
		}
		for _, q := range v.config.Scheduling.Queues {
			if n := len(q.ComputeResources); n > caps.MaxComputeResourcesPerQueue {
				fail("queue %s declares %d compute resources, the %s variant allows at most %d",
					q.Label(), n, v.config.Variant, caps.MaxComputeResourcesPerQueue)
			}
		}
	}
	return results, nil
}

// nameFormatValidator checks identifier format.
type nameFormatValidator struct {
	kind string
	name string
}

func (v *nameFormatValidator) Type() string { return "NameFormatValidator" }

func (v *nameFormatValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	if v.name == "" {
		return []validate.Result{{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("%s name is required", v.kind),
			ValidatorType: v.Type(),
		}}, nil
	}
	if !namePattern.MatchString(v.name) {
		return []validate.Result{{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("%s name %q must start with a lowercase letter and contain only lowercase letters, digits and hyphens (max 30 characters)", v.kind, v.name),
			ValidatorType: v.Type(),
		}}, nil
	}
	return nil, nil
}

// computeSizeValidator checks capacity bounds of a compute pool.
type computeSizeValidator struct {
	minCount *Param
	maxCount *Param
}

func (v *computeSizeValidator) Type() string { return "ComputeSizeValidator" }

func (v *computeSizeValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	// Skip on upstream resolution failures; the schema layer already
	// reported them.
	if !v.minCount.Valid() || !v.maxCount.Valid() {
		return nil, nil
	}

	minCount, maxCount := v.minCount.IntValue(), v.maxCount.IntValue()
	var results []validate.Result
	if minCount < 0 {
		results = append(results, validate.Result{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("min_count must not be negative, got %d", minCount),
			ValidatorType: v.Type(),
		})
	}
	if maxCount < 1 {
		results = append(results, validate.Result{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("max_count must be at least 1, got %d", maxCount),
			ValidatorType: v.Type(),
		})
	}
	if minCount >= 0 && maxCount >= 1 && maxCount < minCount {
		results = append(results, validate.Result{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("max_count (%d) must be greater than or equal to min_count (%d)", maxCount, minCount),
			ValidatorType: v.Type(),
		})
	}
	return results, nil
}

// duplicateNameValidator checks label uniqueness within a collection.
type duplicateNameValidator struct {
	kind  string
	scope string
	names []string
}

func (v *duplicateNameValidator) Type() string { return "DuplicateNameValidator" }

func (v *duplicateNameValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	seen := make(map[string]struct{}, len(v.names))
	var results []validate.Result
	for _, name := range v.names {
		if _, dup := seen[name]; dup {
			message := fmt.Sprintf("duplicate %s name %q", v.kind, name)
			if v.scope != "" {
				message += fmt.Sprintf(" in queue %s", v.scope)
			}
			results = append(results, validate.Result{
				Level:         validate.LevelError,
				Message:       message,
				ValidatorType: v.Type(),
			})
		}
		seen[name] = struct{}{}
	}
	return results, nil
}

// duplicateInstanceTypeValidator checks that a queue does not declare the
// same instance type twice.
type duplicateInstanceTypeValidator struct {
	queue         string
	instanceTypes []*Param
}

func (v *duplicateInstanceTypeValidator) Type() string { return "DuplicateInstanceTypeValidator" }

func (v *duplicateInstanceTypeValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	seen := make(map[string]struct{}, len(v.instanceTypes))
	var results []validate.Result
	for _, p := range v.instanceTypes {
		if !p.Valid() {
			continue
		}
		name := p.StringValue()
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			results = append(results, validate.Result{
				Level:         validate.LevelError,
				Message:       fmt.Sprintf("instance type %s is declared by more than one compute resource in queue %s", name, v.queue),
				ValidatorType: v.Type(),
			})
		}
		seen[name] = struct{}{}
	}
	return results, nil
}

// fleetCapacityValidator warns about very large fleets. It is bound to a
// getter so every run reflects the tree's state at call time.
type fleetCapacityValidator struct {
	total func() int
}

const fleetCapacityWarningThreshold = 5000

func (v *fleetCapacityValidator) Type() string { return "FleetCapacityValidator" }

func (v *fleetCapacityValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	total := v.total()
	if total <= fleetCapacityWarningThreshold {
		return nil, nil
	}
	return []validate.Result{{
		Level:         validate.LevelWarning,
		Message:       fmt.Sprintf("the cluster can scale up to %d compute nodes, which exceeds %d; provider capacity and account limits may throttle scale-out", total, fleetCapacityWarningThreshold),
		ValidatorType: v.Type(),
	}}, nil
}

// spotPriceValidator checks the optional spot price cap.
type spotPriceValidator struct {
	spotPrice *Param
}

func (v *spotPriceValidator) Type() string { return "SpotPriceValidator" }

func (v *spotPriceValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	if !v.spotPrice.Valid() || v.spotPrice.Value() == nil {
		return nil, nil
	}
	price, ok := v.spotPrice.Value().(float64)
	if !ok || price <= 0 {
		return []validate.Result{{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("spot_price must be a positive amount, got %v", v.spotPrice.Value()),
			ValidatorType: v.Type(),
		}}, nil
	}
	return nil, nil
}

// reservedTagValidator rejects tags under reserved prefixes.
type reservedTagValidator struct {
	tags []*Param
}

func (v *reservedTagValidator) Type() string { return "ReservedTagValidator" }

func (v *reservedTagValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	var results []validate.Result
	for _, tag := range v.tags {
		for _, prefix := range reservedTagPrefixes {
			if strings.HasPrefix(tag.Name(), prefix) {
				results = append(results, validate.Result{
					Level:         validate.LevelError,
					Message:       fmt.Sprintf("tag key %q uses the reserved prefix %q", tag.Name(), prefix),
					ValidatorType: v.Type(),
				})
			}
		}
	}
	return results, nil
}

// artifactURLValidator checks override artifact locations.
type artifactURLValidator struct {
	param *Param
}

func (v *artifactURLValidator) Type() string { return "ArtifactURLValidator" }

func (v *artifactURLValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	if !v.param.Valid() {
		return nil, nil
	}
	url := v.param.StringValue()
	if url == "" {
		return nil, nil
	}
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "s3://") {
		return []validate.Result{{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("%s must be an https:// or s3:// URL, got %q", v.param.Name(), url),
			ValidatorType: v.Type(),
		}}, nil
	}
	return nil, nil
}

// imageOsValidator checks the operating system choice.
type imageOsValidator struct {
	os *Param
}

func (v *imageOsValidator) Type() string { return "ImageOsValidator" }

func (v *imageOsValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	if !v.os.Valid() {
		return nil, nil
	}
	if _, ok := supportedOses[v.os.StringValue()]; !ok {
		return []validate.Result{{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("os %q is not supported", v.os.StringValue()),
			ValidatorType: v.Type(),
		}}, nil
	}
	return nil, nil
}

// rootVolumeBoundsValidator checks static EBS volume size limits. The
// comparison against the parent image's root volume is a separate live check.
type rootVolumeBoundsValidator struct {
	size *Param
}

func (v *rootVolumeBoundsValidator) Type() string { return "RootVolumeBoundsValidator" }

func (v *rootVolumeBoundsValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	if !v.size.Valid() {
		return nil, nil
	}
	size := v.size.IntValue()
	if size < 8 || size > 16384 {
		return []validate.Result{{
			Level:         validate.LevelError,
			Message:       fmt.Sprintf("root volume size must be between 8 and 16384 GiB, got %d", size),
			ValidatorType: v.Type(),
		}}, nil
	}
	return nil, nil
}

// customAmiOverrideValidator notes the compute custom-AMI escape hatch. Its
// registration is gated on the run's single-fire set, so the notice is
// emitted at most once per validation run, however many compute resources
// use the override, and always from the first one in tree order.
type customAmiOverrideValidator struct{}

func (v *customAmiOverrideValidator) Type() string { return "CustomAmiOverrideValidator" }

func (v *customAmiOverrideValidator) Check(_ context.Context, _ *validate.RunContext) ([]validate.Result, error) {
	return []validate.Result{{
		Level:         validate.LevelWarning,
		Message:       "one or more compute resources override the cluster image with a custom AMI; nodes booted from it bypass release validation, monitor them carefully",
		ValidatorType: v.Type(),
	}}, nil
}
