package semconv

import (
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// specSchemaJSON is a loose JSON Schema for the top-level shape of a
// semconv YAML file: used only as a fallback hint generator when
// yaml.v3's own decode error is unhelpful. It intentionally does not
// attempt to fully express the id/ref tagged union or the constraint
// grammar —
// those are enforced by validateGroup/validateAttribute after a successful
// parse, with full provenance. This schema exists purely to catch "this
// isn't even shaped like a semconv file" mistakes (wrong top-level type,
// groups not a list, and so on) and phrase them in plain language.
const specSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "groups": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "string"},
          "type": {"type": "string"},
          "attributes": {"type": "array"},
          "constraints": {"type": "array"}
        }
      }
    }
  }
}`

var (
	specSchemaOnce sync.Once
	specSchema     *jsonschema.Schema
)

func compiledSpecSchema() *jsonschema.Schema {
	specSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("semconv-spec.json", strings.NewReader(specSchemaJSON)); err != nil {
			return
		}
		s, err := compiler.Compile("semconv-spec.json")
		if err != nil {
			return
		}
		specSchema = s
	})
	return specSchema
}

// schemaValidationHint re-parses raw as a generic YAML document and runs it
// through the fallback JSON Schema, returning a short human-readable
// complaint when the schema catches something the raw yaml.v3 error
// message didn't make obvious. It returns "" when the schema has nothing
// useful to add (including when raw doesn't even decode generically, since
// that's the same failure yaml.v3 already reported).
func schemaValidationHint(raw []byte) string {
	schema := compiledSpecSchema()
	if schema == nil {
		return ""
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return ""
	}

	if err := schema.Validate(doc); err != nil {
		return err.Error()
	}
	return ""
}
