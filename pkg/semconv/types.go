// Package semconv defines the typed group/attribute model parsed from
// semantic-convention YAML files and the loader that walks a
// vdir.VirtualDirectory to produce provenance-tagged specs.
package semconv

// GroupType enumerates the signal kinds a GroupSpec may describe.
type GroupType string

const (
	GroupAttributeGroup GroupType = "attribute_group"
	GroupMetric         GroupType = "metric"
	GroupSpan           GroupType = "span"
	GroupEvent          GroupType = "event"
	GroupEntity         GroupType = "entity"
	GroupScope          GroupType = "scope"
	GroupResource       GroupType = "resource"
)

// Stability mirrors the small closed vocabulary semconv files use; it is
// carried through unchanged rather than validated against a fixed list,
// since new stability values are added to the convention over time.
type Stability string

// RequirementLevel is the tagged union required | recommended | opt_in | conditionally_required{text}, with
// recommended/opt_in also permitting an explanatory Text.
type RequirementLevel struct {
	Kind string `yaml:"-" json:"kind"`
	Text string `yaml:"-" json:"text,omitempty"`
}

const (
	ReqRequired              = "required"
	ReqRecommended           = "recommended"
	ReqOptIn                 = "opt_in"
	ReqConditionallyRequired = "conditionally_required"
)

// EnumMember is one ordered value of an enum-typed attribute (spec 3.4).
type EnumMember struct {
	ID         string `yaml:"id" json:"id"`
	Value      any    `yaml:"value" json:"value"`
	Brief      string `yaml:"brief,omitempty" json:"brief,omitempty"`
	Stability  string `yaml:"stability,omitempty" json:"stability,omitempty"`
	Deprecated string `yaml:"deprecated,omitempty" json:"deprecated,omitempty"`
}

// AttrType is the tagged union of a primitive, an array
// of a primitive, template[T], or an ordered enum.
type AttrType struct {
	Primitive string       `json:"primitive,omitempty"` // boolean | int | double | string
	ArrayOf   string       `json:"array_of,omitempty"`  // set when this is "<primitive>[]"
	Template  string       `json:"template,omitempty"`  // set when this is "template[T]"; holds T
	Members   []EnumMember `json:"members,omitempty"`   // set when this is an enum
}

// IsEnum reports whether t describes an enum type.
func (t AttrType) IsEnum() bool { return len(t.Members) > 0 }

// IsTemplate reports whether t describes a template[T] type.
func (t AttrType) IsTemplate() bool { return t.Template != "" }

// String renders t back to its YAML scalar/shape form; MarshalYAML uses
// it.
func (t AttrType) String() string {
	switch {
	case t.IsTemplate():
		return "template[" + t.Template + "]"
	case t.ArrayOf != "":
		return t.ArrayOf + "[]"
	case t.IsEnum():
		return "enum"
	default:
		return t.Primitive
	}
}

// AttributeSpec is the tagged variant of an id-form
// definition (ID != "") or a ref-form reference with optional local
// overrides (Ref != ""). Parsing does not check that exactly one of ID/Ref
// is set; IsRef reports ref-form whenever Ref is set.
type AttributeSpec struct {
	ID  string `json:"id,omitempty"`
	Ref string `json:"ref,omitempty"`

	// Fields below are present on an id-form definition and, for a
	// ref-form attribute, represent LOCAL OVERRIDES of the referenced
	// attribute's fields, tracked for Stage A merge rules.
	TypeSet          bool // whether Type was present in the source document
	Type             AttrType
	BriefSet         bool
	Brief            string
	ExamplesSet      bool
	Examples         []any
	RequirementSet   bool
	Requirement      RequirementLevel
	NoteSet          bool
	Note             string
	StabilitySet     bool
	Stability        string
	DeprecatedSet    bool
	Deprecated       string
	SamplingSet      bool
	SamplingRelevant bool
	TagSet           bool
	Tag              string
	Annotations      map[string]any
}

// IsRef reports whether a is a ref-form attribute.
func (a AttributeSpec) IsRef() bool { return a.Ref != "" }

// Key returns the id this attribute is known by: its own ID for an
// id-form attribute, or the target it refers to for a ref-form one.
func (a AttributeSpec) Key() string {
	if a.IsRef() {
		return a.Ref
	}
	return a.ID
}

// Constraint is an any_of assertion and/or a
// transitive include of another group's attributes and constraints.
type Constraint struct {
	AnyOf   []string `yaml:"any_of,omitempty" json:"any_of,omitempty"`
	Include string   `yaml:"include,omitempty" json:"include,omitempty"`
}

// GroupSpec is one parsed semantic-convention group definition.
type GroupSpec struct {
	ID         string `json:"id"`
	Type       GroupType
	Brief      string
	Note       string
	Prefix     string
	Extends    string
	Stability  string
	Deprecated string

	Attributes  []AttributeSpec
	Constraints []Constraint

	// type-specific fields
	SpanKind           string
	MetricName         string
	Instrument         string
	Unit               string
	Name               string
	Events             []string
	EntityAssociations []string

	// Provenance of the file this group was parsed from, filled in by the
	// loader before validation so diagnostics can point at a location.
	Provenance Provenance
}

// Provenance is a (registry_id, path) pair with optional line/column. The
// loader fills RegistryID and Path only; the line of a YAML parse error is
// set on that diagnostic's own provenance instead.
type Provenance struct {
	RegistryID string `json:"registry_id,omitempty"`
	Path       string `json:"path,omitempty"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
}

// SpecVersion distinguishes V1 (list of groups) from V2 (flat signal
// lists).
type SpecVersion string

const (
	V1 SpecVersion = "1"
	V2 SpecVersion = "2"
)

// SemConvSpec is one parsed YAML file. Version is V1
// unless the file carries a "version: \"2\"" tag. A V2 file populates the
// V2-only fields and is converted to a synthesized V1 group set by
// ToV1Groups before the resolver sees it.
type SemConvSpec struct {
	Version SpecVersion

	// V1
	Groups []GroupSpec

	// V2: flat lists, converted via ToV1Groups.
	V2Attributes  []AttributeSpec
	V2Spans       []GroupSpec
	V2Metrics     []GroupSpec
	V2Events      []GroupSpec
	V2Entities    []GroupSpec
	V2Refinements []GroupSpec
}

// SpecWithProvenance pairs a parsed spec with the provenance of the file
// it came from.
type SpecWithProvenance struct {
	Spec       SemConvSpec
	Provenance Provenance
}
