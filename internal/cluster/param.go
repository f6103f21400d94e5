package cluster

import "reflect"

// Param is one configuration parameter of a section. It keeps both the raw
// user-supplied value and the effective value after default substitution, so
// later comparisons can treat "unset" and "explicitly set to the default" as
// the same configuration.
type Param struct {
	name    string
	raw     any
	value   any
	def     any
	implied bool
	valid   bool
}

// NewParam creates a parameter. A nil raw value takes the default and is
// marked implied.
func NewParam(name string, raw, def any) *Param {
	p := &Param{name: name, raw: raw, value: raw, def: def, valid: true}
	if raw == nil {
		p.value = def
		p.implied = true
	}
	return p
}

// Name returns the parameter name within its section.
func (p *Param) Name() string { return p.name }

// Raw returns the user-supplied value; nil when the parameter was unset.
func (p *Param) Raw() any { return p.raw }

// Value returns the effective value after default substitution.
func (p *Param) Value() any { return p.value }

// Default returns the declared default value.
func (p *Param) Default() any { return p.def }

// Implied reports whether the effective value came from the default rather
// than user input.
func (p *Param) Implied() bool { return p.implied }

// Valid reports whether the parameter survived schema resolution. Validators
// skip invalid parameters so one bad value does not cascade into follow-on
// diagnostics.
func (p *Param) Valid() bool { return p.valid }

// Invalidate marks the parameter as failed at the schema layer.
func (p *Param) Invalidate() { p.valid = false }

// StringValue returns the effective value as a string, or "" when the value
// is unset or not a string.
func (p *Param) StringValue() string {
	s, _ := p.value.(string)
	return s
}

// IntValue returns the effective value as an int, or 0 when the value is
// unset or not an integer.
func (p *Param) IntValue() int {
	switch v := p.value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

// BoolValue returns the effective value as a bool, or false when the value
// is unset or not a bool.
func (p *Param) BoolValue() bool {
	b, _ := p.value.(bool)
	return b
}

// EffectiveEquals reports whether two parameters resolve to the same
// effective value. An unset parameter compares equal to one explicitly set
// to the default.
func (p *Param) EffectiveEquals(other *Param) bool {
	return reflect.DeepEqual(p.value, other.value)
}
