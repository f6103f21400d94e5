package update

// Updatability grades how disruptive applying a configuration change is.
// The values form a total order from least to most disruptive; the grade of
// a whole change set is the maximum grade of its individual changes.
type Updatability int

const (
	// NoChange means the configurations are effectively identical.
	NoChange Updatability = iota
	// Allowed changes apply in place with no service interruption.
	Allowed
	// ComputeFleetStop changes require the compute fleet to be stopped.
	ComputeFleetStop
	// ComputeFleetRestart changes require compute nodes to be replaced.
	ComputeFleetRestart
	// MasterRestart changes require the head node to be stopped and started.
	MasterRestart
	// Unsupported changes cannot be applied to a running cluster.
	Unsupported
)

var updatabilityNames = map[Updatability]string{
	NoChange:            "NO_CHANGE",
	Allowed:             "ALLOWED",
	ComputeFleetStop:    "COMPUTE_FLEET_STOP",
	ComputeFleetRestart: "COMPUTE_FLEET_RESTART",
	MasterRestart:       "MASTER_RESTART",
	Unsupported:         "UNSUPPORTED",
}

func (u Updatability) String() string {
	if name, ok := updatabilityNames[u]; ok {
		return name
	}
	return "UNSUPPORTED"
}

// Combine returns the more disruptive of the two grades.
func Combine(a, b Updatability) Updatability {
	if a > b {
		return a
	}
	return b
}
