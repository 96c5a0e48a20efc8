// Package resolver implements the four-stage fixed-point resolution
// pipeline: extends splicing, attribute-reference
// interning into a deduplicated catalog, include-constraint expansion, and
// any_of constraint checking. It turns a set of provenance-tagged
// semconv.SemConvSpec values into a single denormalized ResolvedRegistry.
package resolver

import "github.com/convreg/semconv-resolver/pkg/semconv"

// AttributeRef is an opaque index into a ResolvedRegistry's attribute
// catalog.
type AttributeRef int

// Attribute is one fully-resolved, deduplicated catalog entry (spec
// section 3.5): every id-form definition and ref-form reference sharing
// the same attribute id accumulates into this one slot.
type Attribute struct {
	ID               string                   `json:"id" yaml:"id"`
	Type             semconv.AttrType         `json:"type" yaml:"type"`
	Brief            string                   `json:"brief,omitempty" yaml:"brief,omitempty"`
	Examples         []any                    `json:"examples,omitempty" yaml:"examples,omitempty"`
	Requirement      semconv.RequirementLevel `json:"requirement_level" yaml:"requirement_level"`
	Note             string                   `json:"note,omitempty" yaml:"note,omitempty"`
	Stability        string                   `json:"stability,omitempty" yaml:"stability,omitempty"`
	Deprecated       string                   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	SamplingRelevant bool                     `json:"sampling_relevant,omitempty" yaml:"sampling_relevant,omitempty"`
	Tag              string                   `json:"tag,omitempty" yaml:"tag,omitempty"`
	Annotations      map[string]any           `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// AttributeLineage records, for one resolved attribute on one group, which
// source group contributed each overridable field. An
// empty string means no contributor ever set that field.
type AttributeLineage struct {
	AttributeID      string `json:"attribute_id" yaml:"attribute_id"`
	Type             string `json:"type,omitempty" yaml:"type,omitempty"`
	Brief            string `json:"brief,omitempty" yaml:"brief,omitempty"`
	Examples         string `json:"examples,omitempty" yaml:"examples,omitempty"`
	Tag              string `json:"tag,omitempty" yaml:"tag,omitempty"`
	RequirementLevel string `json:"requirement_level,omitempty" yaml:"requirement_level,omitempty"`
	SamplingRelevant string `json:"sampling_relevant,omitempty" yaml:"sampling_relevant,omitempty"`
	Note             string `json:"note,omitempty" yaml:"note,omitempty"`
	Stability        string `json:"stability,omitempty" yaml:"stability,omitempty"`
	Deprecated       string `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// GroupLineage is the ordered set of AttributeLineage entries for one
// resolved group, kept in the same order as the group's AttributeRefs.
type GroupLineage []AttributeLineage

// ResolvedGroup is one fully-linked group: its extends clause has been
// consumed, its attribute references are sorted by catalog index, and
// every any_of constraint that survived resolution was satisfied and
// dropped (the invariant that no resolved group carries a
// non-empty extends or include).
type ResolvedGroup struct {
	ID                 string            `json:"id" yaml:"id"`
	Type               semconv.GroupType `json:"type" yaml:"type"`
	Brief              string            `json:"brief,omitempty" yaml:"brief,omitempty"`
	Note               string            `json:"note,omitempty" yaml:"note,omitempty"`
	Prefix             string            `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Stability          string            `json:"stability,omitempty" yaml:"stability,omitempty"`
	Deprecated         string            `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	SpanKind           string            `json:"span_kind,omitempty" yaml:"span_kind,omitempty"`
	MetricName         string            `json:"metric_name,omitempty" yaml:"metric_name,omitempty"`
	Instrument         string            `json:"instrument,omitempty" yaml:"instrument,omitempty"`
	Unit               string            `json:"unit,omitempty" yaml:"unit,omitempty"`
	Name               string            `json:"name,omitempty" yaml:"name,omitempty"`
	Events             []string          `json:"events,omitempty" yaml:"events,omitempty"`
	EntityAssociations []string          `json:"entity_associations,omitempty" yaml:"entity_associations,omitempty"`

	Attributes []AttributeRef `json:"attributes" yaml:"attributes"`
	Lineage    GroupLineage   `json:"lineage" yaml:"lineage"`
}

// ResolvedRegistry is the resolver's terminal output,
// the shape serialized to JSON/YAML for downstream consumers.
type ResolvedRegistry struct {
	RegistryURL string          `json:"registry_url" yaml:"registry_url"`
	Catalog     []Attribute     `json:"catalog" yaml:"catalog"`
	Groups      []ResolvedGroup `json:"groups" yaml:"groups"`
}
