package semconv

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML implements the RequirementLevel tagged union (spec 3.4):
// either a bare scalar ("required", "recommended", "opt_in") or a
// single-key mapping carrying explanatory text
// ({conditionally_required: "..."} or {recommended: "..."}/{opt_in: "..."}).
func (r *RequirementLevel) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		r.Kind = value.Value
		return nil
	case yaml.MappingNode:
		if len(value.Content) < 2 {
			return fmt.Errorf("requirement_level: empty mapping")
		}
		r.Kind = value.Content[0].Value
		return value.Content[1].Decode(&r.Text)
	default:
		return fmt.Errorf("requirement_level: unsupported YAML node kind %v", value.Kind)
	}
}

func (r RequirementLevel) MarshalYAML() (any, error) {
	if r.Text == "" {
		return r.Kind, nil
	}
	return map[string]string{r.Kind: r.Text}, nil
}

// UnmarshalYAML implements the AttrType tagged union (spec 3.4): a bare
// scalar naming a primitive or "<primitive>[]" or "template[T]", or a
// mapping carrying an ordered "members" list for an enum.
func (t *AttrType) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return t.parseScalar(value.Value)
	case yaml.MappingNode:
		var raw struct {
			Members []EnumMember `yaml:"members"`
		}
		if err := value.Decode(&raw); err != nil {
			return fmt.Errorf("type: %w", err)
		}
		t.Members = raw.Members
		return nil
	default:
		return fmt.Errorf("type: unsupported YAML node kind %v", value.Kind)
	}
}

func (t *AttrType) parseScalar(s string) error {
	const templatePrefix = "template["
	if len(s) > len(templatePrefix)+1 && s[:len(templatePrefix)] == templatePrefix && s[len(s)-1] == ']' {
		t.Template = s[len(templatePrefix) : len(s)-1]
		return nil
	}
	if len(s) > 2 && s[len(s)-2:] == "[]" {
		t.ArrayOf = s[:len(s)-2]
		return nil
	}
	t.Primitive = s
	return nil
}

func (t AttrType) MarshalYAML() (any, error) {
	if t.IsEnum() {
		return map[string]any{"members": t.Members}, nil
	}
	return t.String(), nil
}

// attributeSpecRaw mirrors the YAML shape of an AttributeSpec directly;
// presence of each optional field is captured with a pointer so that
// Stage A's extends-merge (spec 4.3.2) can distinguish "absent, inherit
// from parent" from "present, override".
type attributeSpecRaw struct {
	ID               string            `yaml:"id,omitempty"`
	Ref              string            `yaml:"ref,omitempty"`
	Type             *AttrType         `yaml:"type,omitempty"`
	Brief            *string           `yaml:"brief,omitempty"`
	Examples         *[]any            `yaml:"examples,omitempty"`
	RequirementLevel *RequirementLevel `yaml:"requirement_level,omitempty"`
	Note             *string           `yaml:"note,omitempty"`
	Stability        *string           `yaml:"stability,omitempty"`
	Deprecated       *string           `yaml:"deprecated,omitempty"`
	SamplingRelevant *bool             `yaml:"sampling_relevant,omitempty"`
	Tag              *string           `yaml:"tag,omitempty"`
	Annotations      map[string]any    `yaml:"annotations,omitempty"`
}

// UnmarshalYAML dispatches on the presence of "ref" vs "id" (spec 3.4):
// ref-form carries an existing id plus any subset of overridable fields;
// id-form is a full definition.
func (a *AttributeSpec) UnmarshalYAML(value *yaml.Node) error {
	var raw attributeSpecRaw
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("attribute: %w", err)
	}

	a.ID = raw.ID
	a.Ref = raw.Ref
	a.Annotations = raw.Annotations

	if raw.Type != nil {
		a.TypeSet = true
		a.Type = *raw.Type
	}
	if raw.Brief != nil {
		a.BriefSet = true
		a.Brief = *raw.Brief
	}
	if raw.Examples != nil {
		a.ExamplesSet = true
		a.Examples = *raw.Examples
	}
	if raw.RequirementLevel != nil {
		a.RequirementSet = true
		a.Requirement = *raw.RequirementLevel
	}
	if raw.Note != nil {
		a.NoteSet = true
		a.Note = *raw.Note
	}
	if raw.Stability != nil {
		a.StabilitySet = true
		a.Stability = *raw.Stability
	}
	if raw.Deprecated != nil {
		a.DeprecatedSet = true
		a.Deprecated = *raw.Deprecated
	}
	if raw.SamplingRelevant != nil {
		a.SamplingSet = true
		a.SamplingRelevant = *raw.SamplingRelevant
	}
	if raw.Tag != nil {
		a.TagSet = true
		a.Tag = *raw.Tag
	}
	return nil
}

// groupSpecRaw mirrors GroupSpec's YAML shape (spec 3.3).
type groupSpecRaw struct {
	ID                 string          `yaml:"id"`
	Type               string          `yaml:"type"`
	Brief              string          `yaml:"brief"`
	Note               string          `yaml:"note"`
	Prefix             string          `yaml:"prefix"`
	Extends            string          `yaml:"extends"`
	Stability          string          `yaml:"stability"`
	Deprecated         string          `yaml:"deprecated"`
	Attributes         []AttributeSpec `yaml:"attributes"`
	Constraints        []Constraint    `yaml:"constraints"`
	SpanKind           string          `yaml:"span_kind"`
	MetricName         string          `yaml:"metric_name"`
	Instrument         string          `yaml:"instrument"`
	Unit               string          `yaml:"unit"`
	Name               string          `yaml:"name"`
	Events             []string        `yaml:"events"`
	EntityAssociations []string        `yaml:"entity_associations"`
}

// UnmarshalYAML decodes one group and validates nothing yet — structural
// validation is SpecLoader's job (spec 4.2), not the parser's.
func (g *GroupSpec) UnmarshalYAML(value *yaml.Node) error {
	var raw groupSpecRaw
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("group: %w", err)
	}
	g.ID = raw.ID
	g.Type = GroupType(raw.Type)
	g.Brief = raw.Brief
	g.Note = raw.Note
	g.Prefix = raw.Prefix
	g.Extends = raw.Extends
	g.Stability = raw.Stability
	g.Deprecated = raw.Deprecated
	g.Attributes = raw.Attributes
	g.Constraints = raw.Constraints
	g.SpanKind = raw.SpanKind
	g.MetricName = raw.MetricName
	g.Instrument = raw.Instrument
	g.Unit = raw.Unit
	g.Name = raw.Name
	g.Events = raw.Events
	g.EntityAssociations = raw.EntityAssociations
	return nil
}

// UnmarshalYAML implements SemConvSpec's top-level V1/V2 dispatch (spec
// 3.2): a "version: \"2\"" tag selects the flat-list V2 shape, absence
// means V1's "groups: [...]".
func (s *SemConvSpec) UnmarshalYAML(value *yaml.Node) error {
	var versionProbe struct {
		Version string `yaml:"version"`
	}
	if err := value.Decode(&versionProbe); err != nil {
		return fmt.Errorf("semconv spec: %w", err)
	}

	if versionProbe.Version == "2" {
		var raw struct {
			Attributes  []AttributeSpec `yaml:"attributes"`
			Spans       []GroupSpec     `yaml:"spans"`
			Metrics     []GroupSpec     `yaml:"metrics"`
			Events      []GroupSpec     `yaml:"events"`
			Entities    []GroupSpec     `yaml:"entities"`
			Refinements []GroupSpec     `yaml:"refinements"`
		}
		if err := value.Decode(&raw); err != nil {
			return fmt.Errorf("semconv spec (v2): %w", err)
		}
		s.Version = V2
		s.V2Attributes = raw.Attributes
		s.V2Spans = raw.Spans
		s.V2Metrics = raw.Metrics
		s.V2Events = raw.Events
		s.V2Entities = raw.Entities
		s.V2Refinements = raw.Refinements
		return nil
	}

	var raw struct {
		Groups []GroupSpec `yaml:"groups"`
	}
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("semconv spec (v1): %w", err)
	}
	s.Version = V1
	s.Groups = raw.Groups
	return nil
}
