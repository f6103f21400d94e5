package update

import (
	"github.com/hpcfleet/hpcfleet/internal/cluster"
)

type paramKey struct {
	sectionType string
	param       string
}

// PolicyTable maps configuration elements to the disruption applying a
// change to them causes. Lookups are fail-closed: anything the table does
// not know is UNSUPPORTED, so new parameters must be graded explicitly
// before they become updatable.
type PolicyTable struct {
	params map[paramKey]Updatability

	// paramWildcards grades every parameter of a section type, for sections
	// whose parameter names are user-chosen (tags) or uniformly graded.
	paramWildcards map[string]Updatability

	// sections grades adding or removing a whole section.
	sections map[string]Updatability
}

// ForParam grades a parameter change.
func (t *PolicyTable) ForParam(sectionType, param string) Updatability {
	if u, ok := t.params[paramKey{sectionType, param}]; ok {
		return u
	}
	if u, ok := t.paramWildcards[sectionType]; ok {
		return u
	}
	return Unsupported
}

// ForSection grades adding or removing a section of the given type.
func (t *PolicyTable) ForSection(sectionType string) Updatability {
	if u, ok := t.sections[sectionType]; ok {
		return u
	}
	return Unsupported
}

// TableFor returns the policy table for a cluster variant. The tables differ
// only where schedulers genuinely behave differently; everything else is
// shared so grades cannot drift apart by accident.
func TableFor(v cluster.Variant) *PolicyTable {
	t := &PolicyTable{
		params: map[paramKey]Updatability{
			{"cluster", "name"}: Unsupported,

			{"image", "os"}:         Unsupported,
			{"image", "custom_ami"}: ComputeFleetStop,

			{"head_node", "instance_type"}: MasterRestart,
			{"root_volume", "size"}:        MasterRestart,
			{"ssh", "key_name"}:            Unsupported,

			{"networking", "subnet_id"}:  Unsupported,
			{"networking", "subnet_ids"}: Unsupported,

			{"queue", "compute_type"}: ComputeFleetStop,

			{"compute_resource", "instance_type"}:                       ComputeFleetRestart,
			{"compute_resource", "min_count"}:                           Allowed,
			{"compute_resource", "max_count"}:                           ComputeFleetStop,
			{"compute_resource", "disable_simultaneous_multithreading"}: ComputeFleetStop,
			{"compute_resource", "custom_ami"}:                          ComputeFleetStop,

			{"compute_fleet", "instance_type"}: ComputeFleetRestart,
			{"compute_fleet", "min_count"}:     Allowed,
			{"compute_fleet", "max_count"}:     ComputeFleetStop,
			{"compute_fleet", "spot_price"}:    ComputeFleetStop,
		},
		paramWildcards: map[string]Updatability{
			"tags":         Allowed,
			"dev_settings": Unsupported,
		},
		sections: map[string]Updatability{
			"queue":            ComputeFleetRestart,
			"compute_resource": ComputeFleetRestart,
			"tags":             Allowed,
		},
	}

	// AWS Batch manages its compute environment capacity itself, so size
	// changes propagate without touching the fleet.
	if v.Scheduler == cluster.SchedulerAWSBatch {
		t.params[paramKey{"compute_resource", "max_count"}] = Allowed
		t.params[paramKey{"compute_fleet", "max_count"}] = Allowed
	}

	return t
}
