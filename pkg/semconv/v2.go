package semconv

import (
	"path/filepath"
	"strings"
)

// SynthesizedAttributeGroupID derives the id of the attribute-group V2's
// flat `attributes:` list is folded into (spec 3.2): the basename of the
// file's provenance path, extension stripped, prefixed so it cannot
// collide with a hand-authored V1 group id.
func SynthesizedAttributeGroupID(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return "v2.synthesized." + base
}

// ToV1Groups converts a V2 spec to the V1 group-list shape the resolver's
// internal pipeline consumes (spec 3.2). A spec with Version != V2 is
// returned via its existing Groups unchanged, matching DESIGN.md's
// decision to treat V1 as the resolver's only internal representation.
func (s SemConvSpec) ToV1Groups(prov Provenance) []GroupSpec {
	if s.Version != V2 {
		return s.Groups
	}

	groups := make([]GroupSpec, 0, 1+len(s.V2Spans)+len(s.V2Metrics)+len(s.V2Events)+len(s.V2Entities)+len(s.V2Refinements))

	if len(s.V2Attributes) > 0 {
		groups = append(groups, GroupSpec{
			ID:         SynthesizedAttributeGroupID(prov.Path),
			Type:       GroupAttributeGroup,
			Brief:      "synthesized from V2 flat attribute list",
			Stability:  "",
			Attributes: s.V2Attributes,
			Provenance: prov,
		})
	}
	for _, g := range s.V2Spans {
		g.Type = GroupSpan
		g.Provenance = prov
		groups = append(groups, g)
	}
	for _, g := range s.V2Metrics {
		g.Type = GroupMetric
		g.Provenance = prov
		groups = append(groups, g)
	}
	for _, g := range s.V2Events {
		g.Type = GroupEvent
		g.Provenance = prov
		groups = append(groups, g)
	}
	for _, g := range s.V2Entities {
		g.Type = GroupEntity
		g.Provenance = prov
		groups = append(groups, g)
	}
	for _, g := range s.V2Refinements {
		// Refinements (glossary: "a specialization of a signal ... produced
		// without editing the base signal") are folded in as ordinary
		// groups; their specialization relationship to a base signal is
		// carried through Extends exactly like any other group.
		g.Provenance = prov
		groups = append(groups, g)
	}
	return groups
}
