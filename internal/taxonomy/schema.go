package taxonomy

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["synonyms", "problems"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "synonyms": {"$ref": "#/definitions/phraseSets"},
    "problems": {"$ref": "#/definitions/phraseSets"}
  },
  "definitions": {
    "phraseSets": {
      "type": "object",
      "additionalProperties": {
        "type": "array",
        "items": {"type": "string", "minLength": 1}
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("taxonomy.json", strings.NewReader(documentSchema)); err != nil {
			compileErr = errors.Wrap(err, "add taxonomy schema")
			return
		}
		compiledSchema, compileErr = compiler.Compile("taxonomy.json")
	})
	return compiledSchema, compileErr
}

// validateShape checks a decoded YAML document against the taxonomy schema.
// The document is round-tripped through JSON so the validator sees only JSON
// value types.
func validateShape(path string, doc interface{}) error {
	sch, err := schema()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return &SchemaError{Path: path, Err: err}
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return &SchemaError{Path: path, Err: err}
	}

	if err := sch.Validate(v); err != nil {
		return &SchemaError{Path: path, Err: err}
	}
	return nil
}
