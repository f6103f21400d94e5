package update

import (
	"github.com/hpcfleet/hpcfleet/internal/cluster"
)

// Diff compares two cluster configurations and grades every difference.
// The overall grade is the most disruptive grade among the changes, or
// NO_CHANGE when the configurations are effectively identical.
//
// Sections are matched by (section type, label): a renamed queue or compute
// resource is reported as a removal plus an addition, never as a rename.
func Diff(base, target *cluster.ClusterConfig) ([]Change, Updatability) {
	if base.Variant != target.Variant {
		change := Change{
			Path:         []PathSegment{{SectionType: "cluster"}},
			Param:        "variant",
			Kind:         Modified,
			Old:          base.Variant.String(),
			New:          target.Variant.String(),
			Updatability: Unsupported,
		}
		return []Change{change}, Unsupported
	}

	w := &walker{table: TableFor(target.Variant)}
	w.section([]PathSegment{{SectionType: "cluster"}}, base, target)

	overall := NoChange
	for _, c := range w.changes {
		overall = Combine(overall, c.Updatability)
	}
	return w.changes, overall
}

type walker struct {
	table   *PolicyTable
	changes []Change
}

type sectionKey struct {
	sectionType string
	label       string
}

// section diffs one matched pair of sections: its parameters first, then its
// nested sections in lockstep.
func (w *walker) section(path []PathSegment, base, target cluster.Section) {
	w.params(path, base, target)

	baseChildren := make(map[sectionKey]cluster.Section, len(base.Sections()))
	for _, child := range base.Sections() {
		baseChildren[sectionKey{child.SectionType(), child.Label()}] = child
	}
	matched := make(map[sectionKey]struct{}, len(baseChildren))

	for _, child := range target.Sections() {
		key := sectionKey{child.SectionType(), child.Label()}
		childPath := append(append([]PathSegment{}, path...), PathSegment{
			SectionType: child.SectionType(),
			Label:       child.Label(),
		})
		if baseChild, ok := baseChildren[key]; ok {
			matched[key] = struct{}{}
			w.section(childPath, baseChild, child)
			continue
		}
		w.changes = append(w.changes, Change{
			Path:         childPath,
			Kind:         Added,
			Updatability: w.table.ForSection(child.SectionType()),
		})
	}

	for _, child := range base.Sections() {
		key := sectionKey{child.SectionType(), child.Label()}
		if _, ok := matched[key]; ok {
			continue
		}
		w.changes = append(w.changes, Change{
			Path: append(append([]PathSegment{}, path...), PathSegment{
				SectionType: child.SectionType(),
				Label:       child.Label(),
			}),
			Kind:         Removed,
			Updatability: w.table.ForSection(child.SectionType()),
		})
	}
}

// params diffs the parameters of a matched section pair. Comparison is on
// effective values, so a parameter left unset compares equal to one set to
// its default.
func (w *walker) params(path []PathSegment, base, target cluster.Section) {
	sectionType := target.SectionType()

	baseParams := make(map[string]*cluster.Param, len(base.Params()))
	for _, p := range base.Params() {
		baseParams[p.Name()] = p
	}
	seen := make(map[string]struct{}, len(baseParams))

	for _, p := range target.Params() {
		baseParam, ok := baseParams[p.Name()]
		if !ok {
			w.changes = append(w.changes, Change{
				Path:         path,
				Param:        p.Name(),
				Kind:         Added,
				New:          p.Value(),
				Updatability: w.table.ForParam(sectionType, p.Name()),
			})
			continue
		}
		seen[p.Name()] = struct{}{}
		if baseParam.EffectiveEquals(p) {
			continue
		}
		w.changes = append(w.changes, Change{
			Path:         path,
			Param:        p.Name(),
			Kind:         Modified,
			Old:          baseParam.Value(),
			New:          p.Value(),
			Updatability: w.table.ForParam(sectionType, p.Name()),
		})
	}

	for _, p := range base.Params() {
		if _, ok := seen[p.Name()]; ok {
			continue
		}
		w.changes = append(w.changes, Change{
			Path:         path,
			Param:        p.Name(),
			Kind:         Removed,
			Old:          p.Value(),
			Updatability: w.table.ForParam(sectionType, p.Name()),
		})
	}
}
