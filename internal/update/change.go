package update

import (
	"fmt"
	"strings"
)

// ChangeKind classifies what happened to a parameter or section.
type ChangeKind string

const (
	Modified ChangeKind = "MODIFIED"
	Added    ChangeKind = "ADDED"
	Removed  ChangeKind = "REMOVED"
)

// PathSegment is one step in a change's location: the section type, plus the
// collection label for labelled sections such as queues.
type PathSegment struct {
	SectionType string
	Label       string
}

func (s PathSegment) String() string {
	if s.Label == "" {
		return s.SectionType
	}
	return fmt.Sprintf("%s[%s]", s.SectionType, s.Label)
}

// Change is one difference between two cluster configurations. Param is
// empty for section-level additions and removals.
type Change struct {
	Path         []PathSegment
	Param        string
	Kind         ChangeKind
	Old          any
	New          any
	Updatability Updatability
}

// PathString renders the change location, e.g.
// "cluster/scheduling/queue[q1]/compute_resource[cr1]".
func (c Change) PathString() string {
	parts := make([]string, len(c.Path))
	for i, seg := range c.Path {
		parts[i] = seg.String()
	}
	return strings.Join(parts, "/")
}

// Target renders the full change target including the parameter name.
func (c Change) Target() string {
	path := c.PathString()
	if c.Param == "" {
		return path
	}
	return path + "." + c.Param
}
