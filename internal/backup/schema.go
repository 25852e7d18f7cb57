package backup

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchema constrains the document shape: top-level keys and field
// types. Record-level content rules (name length, content length) are
// checked in Go so they can be reported per index. Unknown keys pass.
// Informational counters are type-checked only; their values are never
// trusted for import decisions.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "version": {"type": "string"},
    "exportTime": {"type": "string"},
    "appVersion": {"type": "string"},
    "totalInspirations": {"type": "integer"},
    "totalThemes": {"type": "integer"},
    "themes": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {"type": "string"},
          "icon": {"type": "string"},
          "color": {"type": "string"},
          "inspirationCount": {"type": "integer"}
        }
      }
    },
    "inspirations": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "content": {"type": "string"},
          "themeName": {"type": "string"},
          "createdAt": {"type": "string"},
          "wordCount": {"type": "integer"}
        }
      }
    }
  },
  "required": ["themes", "inspirations"]
}`

// compiledSchema is built once at package init.
var compiledSchema = mustCompileSchema("backup-document.schema.json", documentSchema)

func mustCompileSchema(name, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(schema)); err != nil {
		panic("backup: add schema resource: " + err.Error())
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		panic("backup: compile schema: " + err.Error())
	}
	return compiled
}
