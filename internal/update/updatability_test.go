package update

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestUpdatability_Order(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ordered := []Updatability{NoChange, Allowed, ComputeFleetStop, ComputeFleetRestart, MasterRestart, Unsupported}
	for i := 1; i < len(ordered); i++ {
		g.Expect(ordered[i] > ordered[i-1]).To(BeTrue(),
			"%s must rank above %s", ordered[i], ordered[i-1])
	}
}

func TestUpdatability_Combine(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(Combine(NoChange, Allowed)).To(Equal(Allowed))
	g.Expect(Combine(MasterRestart, ComputeFleetStop)).To(Equal(MasterRestart))
	g.Expect(Combine(Unsupported, Allowed)).To(Equal(Unsupported))
	g.Expect(Combine(NoChange, NoChange)).To(Equal(NoChange))
}

func TestUpdatability_String(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(NoChange.String()).To(Equal("NO_CHANGE"))
	g.Expect(ComputeFleetRestart.String()).To(Equal("COMPUTE_FLEET_RESTART"))
	g.Expect(Updatability(99).String()).To(Equal("UNSUPPORTED"))
}
