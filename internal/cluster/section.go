package cluster

import (
	"github.com/hpcfleet/hpcfleet/internal/validate"
)

// Section is a node of the resource tree. Labelled sections (collection
// items such as queues) carry their label; singleton sections have an empty
// label. Params and nested sections are returned in declaration order.
type Section interface {
	validate.Node
	Params() []*Param
	Sections() []Section
}

// base carries the section bookkeeping shared by every concrete shape.
// Shapes embed it and override RegisterValidators.
type base struct {
	sectionType string
	label       string
	params      []*Param
	children    []Section
}

func newBase(sectionType, label string, params []*Param, children []Section) base {
	return base{sectionType: sectionType, label: label, params: params, children: children}
}

// SectionType returns the section type name, e.g. "queue".
func (b *base) SectionType() string { return b.sectionType }

// Label returns the collection label; empty for singleton sections.
func (b *base) Label() string { return b.label }

// Params returns the declared parameters in declaration order.
func (b *base) Params() []*Param { return b.params }

// Param returns the declared parameter with the given name, or nil.
func (b *base) Param(name string) *Param {
	for _, p := range b.params {
		if p.name == name {
			return p
		}
	}
	return nil
}

// Sections returns nested sections in declaration/collection order.
func (b *base) Sections() []Section { return b.children }

// Nested adapts the children to the validation engine's node interface.
func (b *base) Nested() []validate.Node {
	out := make([]validate.Node, len(b.children))
	for i, c := range b.children {
		out[i] = c
	}
	return out
}

// RegisterValidators is a no-op by default; shapes with checks override it.
func (b *base) RegisterValidators(*validate.RunContext, *validate.Registry) {}
