package semconv

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/convreg/semconv-resolver/pkg/diag"
)

// Options controls SpecLoader's validation strictness; the CLI sets it
// from the --strict flag.
type Options struct {
	// RegistryID tags every provenance this load produces.
	RegistryID string
	// Strict promotes the normally-non-fatal warnings (missing span_kind on a
	// span group, missing examples on a string attribute, missing stability
	// on a group) to errors (spec section 4.2).
	Strict bool
}

// Load walks dir recursively for *.yaml/*.yml files, parses each into a
// SemConvSpec, validates it, and returns every spec
// tagged with its file provenance. A fatal per-file error does not abort the
// walk — SpecLoader collects diagnostics across every file before returning
// (the "Failure aggregation").
//
// The returned []SpecWithProvenance includes every file that parsed, even
// one that failed validation, so that diagnostics can be reported alongside
// whatever else loaded; callers must check the returned error (or
// Compound.HasErrors()) before handing the specs to the resolver.
func Load(dir string, opts Options) ([]SpecWithProvenance, *diag.Compound, error) {
	paths, err := walkYAML(dir)
	if err != nil {
		return nil, nil, err
	}

	result := &diag.Compound{}
	var specs []SpecWithProvenance

	for _, path := range paths {
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		prov := Provenance{RegistryID: opts.RegistryID, Path: rel}

		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			result.Add(diag.New(diag.KindSourceNotFound, toDiagProv(prov), "reading %s: %v", rel, readErr))
			continue
		}

		var spec SemConvSpec
		if err := yaml.Unmarshal(raw, &spec); err != nil {
			result.Add(parseErrorDiagnostic(toDiagProv(prov), raw, rel, err))
			continue
		}

		if spec.Version == V2 {
			result.Add(diag.Warning(diag.KindUnstableFileFormat, toDiagProv(prov),
				"%s uses the experimental V2 spec format", rel))
		}

		groups := spec.ToV1Groups(prov)
		for i := range groups {
			groups[i].Provenance = prov
			validateGroup(&groups[i], opts.Strict, result)
		}
		spec.Groups = groups

		specs = append(specs, SpecWithProvenance{Spec: spec, Provenance: prov})
	}

	checkDuplicateGroupIDs(specs, result)

	if result.HasErrors() {
		return specs, result, result
	}
	return specs, result, nil
}

// walkYAML recursively collects every *.yaml/*.yml file under dir, sorted
// for deterministic iteration order (the determinism
// contract extends to the loader's file-discovery order).
func walkYAML(dir string) ([]string, error) {
	var paths []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("semconv: walking %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// toDiagProv converts a semconv.Provenance to a diag.Provenance.
func toDiagProv(p Provenance) diag.Provenance {
	return diag.Provenance{RegistryID: p.RegistryID, Path: p.Path, Line: p.Line, Column: p.Column}
}

// validateGroup implements the per-file validation responsibilities of spec
// section 4.2. Errors are fatal; warnings are collected but never abort.
func validateGroup(g *GroupSpec, strict bool, result *diag.Compound) {
	prov := toDiagProv(g.Provenance)
	prov.GroupID = g.ID

	if g.Type == "" {
		result.Add(diag.New(diag.KindSchemaViolation, prov, "group %q has no type", g.ID))
		// Without a type we can't apply type-specific checks below.
		return
	}

	if g.Type == GroupSpan && g.SpanKind == "" {
		d := diag.Warning(diag.KindSchemaViolation, prov, "span group %q has no span_kind", g.ID)
		if strict {
			d.Severity = diag.SeverityError
		}
		result.Add(d)
	}

	if g.Stability == "" {
		d := diag.Warning(diag.KindSchemaViolation, prov, "group %q has no stability", g.ID)
		if strict {
			d.Severity = diag.SeverityError
		}
		result.Add(d)
	}

	for i := range g.Attributes {
		validateAttribute(&g.Attributes[i], g, strict, result)
	}
}

// validateAttribute checks the invariants placed on attribute definitions.
// Ref-form attributes are not id-form definitions and so are exempt —
// their brief/examples are inherited via Stage A.
func validateAttribute(a *AttributeSpec, g *GroupSpec, strict bool, result *diag.Compound) {
	if a.IsRef() {
		return
	}

	prov := toDiagProv(g.Provenance)
	prov.GroupID = g.ID
	prov.AttrID = a.ID

	deprecated := a.DeprecatedSet && a.Deprecated != ""
	if !deprecated && !a.BriefSet {
		result.Add(diag.New(diag.KindSchemaViolation, prov, "attribute %q has no brief", a.ID))
	}

	if a.TypeSet && a.Type.Primitive == "string" && !a.ExamplesSet {
		d := diag.Warning(diag.KindSchemaViolation, prov, "string attribute %q has no examples", a.ID)
		if strict {
			d.Severity = diag.SeverityError
		}
		result.Add(d)
	}
}

// checkDuplicateGroupIDs enforces the "id (unique)" invariant
// across every loaded spec, and resolves DESIGN.md's "V2 synthesized id
// collisions" Open Question as an error: two V2 files whose provenance path
// basenames collide produce the same SynthesizedAttributeGroupID, which is
// reported the same way as any other duplicate group id rather than silently
// merged or arbitrarily picked.
func checkDuplicateGroupIDs(specs []SpecWithProvenance, result *diag.Compound) {
	seen := make(map[string]Provenance)
	for _, s := range specs {
		for _, g := range s.Spec.Groups {
			if prior, ok := seen[g.ID]; ok {
				prov := toDiagProv(g.Provenance)
				prov.GroupID = g.ID
				result.Add(diag.New(diag.KindDuplicateGroupID, prov,
					"group id %q is defined in both %s and %s", g.ID, prior.Path, g.Provenance.Path))
				continue
			}
			seen[g.ID] = g.Provenance
		}
	}
}

// yamlLinePattern extracts the line number yaml.v3 embeds in its own error
// messages (e.g. "yaml: line 7: did not find expected key").
var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// parseErrorDiagnostic builds a YAMLParseError diagnostic, falling back to
// the jsonschema validator (the "fallback second pass") for a
// richer message when the raw yaml.v3 error is terse.
func parseErrorDiagnostic(prov diag.Provenance, raw []byte, rel string, err error) diag.Diagnostic {
	if m := yamlLinePattern.FindStringSubmatch(err.Error()); m != nil {
		fmt.Sscanf(m[1], "%d", &prov.Line)
	}

	msg := err.Error()
	if hint := schemaValidationHint(raw); hint != "" {
		msg = fmt.Sprintf("%s (schema check: %s)", msg, hint)
	}

	return diag.New(diag.KindYAMLParseError, prov, "%s: %s", rel, msg)
}
