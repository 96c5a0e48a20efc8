// Package diag defines the diagnostic shapes shared by every stage of the
// resolver: vdir fetch failures, spec-loader validation, and the resolver's
// own stage errors all speak this vocabulary so that a CLI can render them
// uniformly as text, JSON, or YAML.
package diag

import (
	"fmt"
	"sort"
	"strings"
)

// Severity classifies a Diagnostic. Warnings never abort a run; errors do.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Kind is a closed, machine-readable taxonomy of failure categories (spec
// section 7). Downstream tooling switches on Kind rather than parsing
// Message.
type Kind string

const (
	KindSourceNotFound      Kind = "source_not_found"
	KindArchiveInvalid      Kind = "archive_invalid"
	KindArchiveUnsupported  Kind = "archive_unsupported"
	KindGitError            Kind = "git_error"
	KindYAMLParseError      Kind = "yaml_parse_error"
	KindSchemaViolation     Kind = "schema_violation"
	KindUnresolvedRef       Kind = "unresolved_ref"
	KindUnresolvedExtends   Kind = "unresolved_extends"
	KindUnresolvedInclude   Kind = "unresolved_include"
	KindUnsatisfiedAnyOf    Kind = "unsatisfied_any_of"
	KindUnstableFileFormat  Kind = "unstable_file_format"
	KindDuplicateGroupID    Kind = "duplicate_group_id"
)

// Provenance locates a Diagnostic in the source material: which registry,
// which file, and (when available) which group or attribute it concerns.
type Provenance struct {
	RegistryID string `json:"registry_id,omitempty" yaml:"registry_id,omitempty"`
	Path       string `json:"path,omitempty" yaml:"path,omitempty"`
	Line       int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column     int    `json:"column,omitempty" yaml:"column,omitempty"`
	GroupID    string `json:"group_id,omitempty" yaml:"group_id,omitempty"`
	AttrID     string `json:"attribute_id,omitempty" yaml:"attribute_id,omitempty"`
}

func (p Provenance) String() string {
	var b strings.Builder
	if p.Path != "" {
		b.WriteString(p.Path)
		if p.Line > 0 {
			fmt.Fprintf(&b, ":%d", p.Line)
			if p.Column > 0 {
				fmt.Fprintf(&b, ":%d", p.Column)
			}
		}
	}
	if p.GroupID != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "group=%s", p.GroupID)
	}
	if p.AttrID != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "attribute=%s", p.AttrID)
	}
	return b.String()
}

// Diagnostic is a single structured message, severity, and provenance
// pointer, optionally carrying a human-oriented hint.
type Diagnostic struct {
	Severity   Severity   `json:"severity" yaml:"severity"`
	Kind       Kind       `json:"kind" yaml:"kind"`
	Message    string     `json:"message" yaml:"message"`
	Provenance Provenance `json:"provenance,omitempty" yaml:"provenance,omitempty"`
	Hint       string     `json:"hint,omitempty" yaml:"hint,omitempty"`
}

func (d Diagnostic) String() string {
	loc := d.Provenance.String()
	if loc != "" {
		return fmt.Sprintf("[%s] %s: %s (%s)", d.Severity, d.Kind, d.Message, loc)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Kind, d.Message)
}

// New builds an error-severity Diagnostic.
func New(kind Kind, provenance Provenance, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity:   SeverityError,
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		Provenance: provenance,
	}
}

// Warning builds a warning-severity Diagnostic.
func Warning(kind Kind, provenance Provenance, format string, args ...any) Diagnostic {
	d := New(kind, provenance, format, args...)
	d.Severity = SeverityWarning
	return d
}

// Compound aggregates the diagnostics collected during one stage or one
// file's validation. It implements error; a Compound with no error-severity
// entries is not a failure — warnings never abort.
type Compound struct {
	Diagnostics []Diagnostic
}

// Add appends d, keeping later calls' ordering (first-found-first-reported).
func (c *Compound) Add(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Merge appends another Compound's diagnostics onto this one.
func (c *Compound) Merge(other *Compound) {
	if other == nil {
		return
	}
	c.Diagnostics = append(c.Diagnostics, other.Diagnostics...)
}

// HasErrors reports whether any diagnostic is error-severity.
func (c *Compound) HasErrors() bool {
	if c == nil {
		return false
	}
	for _, d := range c.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the error-severity diagnostics, in original order.
func (c *Compound) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the warning-severity diagnostics, in original order.
func (c *Compound) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// SortStable orders diagnostics by (path, line, group id, message) so that
// serialized output is byte-stable across runs on the same input (spec
// section 4.3.3's determinism contract extends to diagnostics too).
func (c *Compound) SortStable() {
	sort.SliceStable(c.Diagnostics, func(i, j int) bool {
		a, b := c.Diagnostics[i], c.Diagnostics[j]
		if a.Provenance.Path != b.Provenance.Path {
			return a.Provenance.Path < b.Provenance.Path
		}
		if a.Provenance.Line != b.Provenance.Line {
			return a.Provenance.Line < b.Provenance.Line
		}
		if a.Provenance.GroupID != b.Provenance.GroupID {
			return a.Provenance.GroupID < b.Provenance.GroupID
		}
		return a.Message < b.Message
	})
}

// Error implements the error interface by rendering every diagnostic,
// first error first.
func (c *Compound) Error() string {
	if c == nil || len(c.Diagnostics) == 0 {
		return "no diagnostics"
	}
	lines := make([]string, 0, len(c.Diagnostics))
	for _, d := range c.Errors() {
		lines = append(lines, d.String())
	}
	for _, d := range c.Warnings() {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}

// AsError returns c as an error if it contains any error-severity
// diagnostic, or nil otherwise — the idiom every stage boundary uses to
// decide whether to abort.
func (c *Compound) AsError() error {
	if c.HasErrors() {
		return c
	}
	return nil
}
