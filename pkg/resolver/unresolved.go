package resolver

import (
	"sort"

	"github.com/convreg/semconv-resolver/pkg/semconv"
)

// fieldOrigin names, for each overridable attribute field, the id of the
// group that most recently supplied its value. It is the running lineage
// as an attribute moves through Stage A's extends splice and Stage B's ref
// resolution. An empty string means the field was never
// set by any contributor seen so far.
type fieldOrigin struct {
	Type             string
	Brief            string
	Examples         string
	Requirement      string
	Note             string
	Stability        string
	Deprecated       string
	SamplingRelevant string
	Tag              string
}

// unresolvedAttribute wraps a semconv.AttributeSpec with its running field
// provenance while it moves through Stage A and Stage B.
type unresolvedAttribute struct {
	Spec   semconv.AttributeSpec
	Origin fieldOrigin
}

// originFromSpec seeds field provenance for an attribute as it was
// originally authored: every field the YAML explicitly set on it
// originates from its own defining group.
func originFromSpec(a semconv.AttributeSpec, groupID string) fieldOrigin {
	var o fieldOrigin
	if a.TypeSet {
		o.Type = groupID
	}
	if a.BriefSet {
		o.Brief = groupID
	}
	if a.ExamplesSet {
		o.Examples = groupID
	}
	if a.RequirementSet {
		o.Requirement = groupID
	}
	if a.NoteSet {
		o.Note = groupID
	}
	if a.StabilitySet {
		o.Stability = groupID
	}
	if a.DeprecatedSet {
		o.Deprecated = groupID
	}
	if a.SamplingSet {
		o.SamplingRelevant = groupID
	}
	if a.TagSet {
		o.Tag = groupID
	}
	return o
}

// unresolvedGroup is the UnresolvedGroup: a group's own
// metadata plus a mutable attribute list whose references are not yet
// linked, and whose extends/include clauses are still present.
type unresolvedGroup struct {
	ID                 string
	Type               semconv.GroupType
	Brief              string
	Note               string
	Prefix             string
	Extends            string
	Stability          string
	Deprecated         string
	SpanKind           string
	MetricName         string
	Instrument         string
	Unit               string
	Name               string
	Events             []string
	EntityAssociations []string
	Provenance         semconv.Provenance

	Attributes  []unresolvedAttribute
	Constraints []semconv.Constraint
}

func newUnresolvedGroup(g semconv.GroupSpec) *unresolvedGroup {
	ug := &unresolvedGroup{
		ID: g.ID, Type: g.Type, Brief: g.Brief, Note: g.Note, Prefix: g.Prefix,
		Extends: g.Extends, Stability: g.Stability, Deprecated: g.Deprecated,
		SpanKind: g.SpanKind, MetricName: g.MetricName, Instrument: g.Instrument,
		Unit: g.Unit, Name: g.Name, Events: g.Events, EntityAssociations: g.EntityAssociations,
		Provenance:  g.Provenance,
		Constraints: g.Constraints,
	}
	ug.Attributes = make([]unresolvedAttribute, len(g.Attributes))
	for i, a := range g.Attributes {
		ug.Attributes[i] = unresolvedAttribute{Spec: a, Origin: originFromSpec(a, g.ID)}
	}
	return ug
}

// unresolvedRegistry is the full set of groups gathered from every loaded
// spec, before Stage A runs.
type unresolvedRegistry struct {
	groups map[string]*unresolvedGroup
	order  []string // group ids, sorted for deterministic iteration (spec 4.3.3)
}

// buildUnresolvedRegistry flattens every spec's groups into one registry.
// A duplicate group id across specs is SpecLoader's concern (it already
// reports KindDuplicateGroupID); the resolver keeps the first occurrence
// it sees so that tests exercising the resolver directly, without going
// through SpecLoader, behave predictably.
func buildUnresolvedRegistry(specs []semconv.SpecWithProvenance) *unresolvedRegistry {
	reg := &unresolvedRegistry{groups: make(map[string]*unresolvedGroup)}
	for _, s := range specs {
		for _, g := range s.Spec.Groups {
			if _, exists := reg.groups[g.ID]; exists {
				continue
			}
			reg.groups[g.ID] = newUnresolvedGroup(g)
			reg.order = append(reg.order, g.ID)
		}
	}
	sort.Strings(reg.order)
	return reg
}
