package semconv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/convreg/semconv-resolver/pkg/diag"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

const validGroupYAML = `
groups:
  - id: http.common
    type: attribute_group
    brief: common HTTP attributes
    stability: stable
    attributes:
      - id: http.method
        type: string
        brief: the HTTP method
        examples: ["GET", "POST"]
`

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "http.yaml", validGroupYAML)

	specs, result, err := Load(dir, Options{RegistryID: "reg"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %v", result.Errors())
	}
	g := specs[0].Spec.Groups[0]
	if g.ID != "http.common" {
		t.Errorf("group id = %q, want http.common", g.ID)
	}
	if g.Provenance.Path != "http.yaml" {
		t.Errorf("provenance path = %q, want http.yaml", g.Provenance.Path)
	}
}

func TestLoad_MissingTypeIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", `
groups:
  - id: no.type.group
    stability: stable
`)

	_, result, err := Load(dir, Options{})
	if err == nil {
		t.Fatal("expected error for group with no type")
	}
	if !result.HasErrors() {
		t.Fatal("expected HasErrors() true")
	}
	found := false
	for _, d := range result.Errors() {
		if d.Kind == diag.KindSchemaViolation {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a schema_violation diagnostic, got %v", result.Diagnostics)
	}
}

func TestLoad_MissingSpanKindIsWarningUnlessStrict(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "span.yaml", `
groups:
  - id: my.span
    type: span
    stability: stable
    brief: a span
    attributes: []
`)

	_, result, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("non-strict: unexpected error: %v", err)
	}
	if len(result.Warnings()) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(result.Warnings()), result.Diagnostics)
	}

	_, strictResult, strictErr := Load(dir, Options{Strict: true})
	if strictErr == nil {
		t.Fatal("strict mode: expected missing span_kind to be an error")
	}
	if !strictResult.HasErrors() {
		t.Fatal("strict mode: expected HasErrors() true")
	}
}

func TestLoad_MissingBriefIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "attr.yaml", `
groups:
  - id: my.group
    type: attribute_group
    stability: stable
    attributes:
      - id: no.brief.attr
        type: string
`)

	_, result, err := Load(dir, Options{})
	if err == nil {
		t.Fatal("expected error for attribute with no brief")
	}
	found := false
	for _, d := range result.Errors() {
		if d.Provenance.AttrID == "no.brief.attr" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a diagnostic naming no.brief.attr, got %v", result.Diagnostics)
	}
}

func TestLoad_DeprecatedAttributeExemptFromBrief(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "attr.yaml", `
groups:
  - id: my.group
    type: attribute_group
    stability: stable
    attributes:
      - id: old.attr
        type: string
        deprecated: "use new.attr instead"
`)

	_, result, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("deprecated attribute should be exempt from missing-brief: %v", result.Errors())
	}
}

func TestLoad_RefFormAttributeExempt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "attr.yaml", `
groups:
  - id: my.group
    type: attribute_group
    stability: stable
    attributes:
      - ref: http.method
`)

	_, result, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("ref-form attribute should not require brief/examples: %v", result.Errors())
	}
}

func TestLoad_StringAttributeMissingExamplesIsWarning(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "attr.yaml", `
groups:
  - id: my.group
    type: attribute_group
    stability: stable
    attributes:
      - id: my.attr
        type: string
        brief: an attribute
`)

	_, result, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("non-strict: unexpected error: %v", err)
	}
	if len(result.Warnings()) != 1 {
		t.Fatalf("expected 1 warning for missing examples, got %d: %v", len(result.Warnings()), result.Diagnostics)
	}
}

func TestLoad_V2FileWarnsUnstableFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "v2.yaml", `
version: "2"
attributes:
  - id: my.attr
    type: string
    brief: an attribute
    examples: ["x"]
`)

	specs, result, err := Load(dir, Options{RegistryID: "reg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	foundUnstable := false
	for _, d := range result.Warnings() {
		if d.Kind == diag.KindUnstableFileFormat {
			foundUnstable = true
		}
	}
	if !foundUnstable {
		t.Errorf("expected an unstable_file_format warning, got %v", result.Diagnostics)
	}
	if len(specs[0].Spec.Groups) != 1 {
		t.Fatalf("expected 1 synthesized group from V2 attributes, got %d", len(specs[0].Spec.Groups))
	}
}

func TestLoad_DuplicateGroupIDAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", `
groups:
  - id: dup.group
    type: attribute_group
    stability: stable
    attributes: []
`)
	writeFile(t, dir, "b.yaml", `
groups:
  - id: dup.group
    type: attribute_group
    stability: stable
    attributes: []
`)

	_, result, err := Load(dir, Options{})
	if err == nil {
		t.Fatal("expected error for duplicate group id across files")
	}
	found := false
	for _, d := range result.Errors() {
		if d.Kind == diag.KindDuplicateGroupID {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a duplicate_group_id diagnostic, got %v", result.Diagnostics)
	}
}

func TestLoad_MalformedYAMLReportsAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "groups: [this is not valid: yaml: at all")
	writeFile(t, dir, "ok.yaml", validGroupYAML)

	specs, result, err := Load(dir, Options{})
	if err == nil {
		t.Fatal("expected error from malformed file")
	}
	if len(specs) != 1 {
		t.Fatalf("expected the valid file to still load, got %d specs", len(specs))
	}
	found := false
	for _, d := range result.Errors() {
		if d.Kind == diag.KindYAMLParseError {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a yaml_parse_error diagnostic, got %v", result.Diagnostics)
	}
}

func TestLoad_NestedDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/http.yaml", validGroupYAML)
	writeFile(t, dir, "b/c/db.yaml", `
groups:
  - id: db.common
    type: attribute_group
    stability: stable
    attributes: []
`)

	specs, _, err := Load(dir, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("got %d specs, want 2", len(specs))
	}
}
