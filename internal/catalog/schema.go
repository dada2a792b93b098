package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed assessment.schema.json
var assessmentSchemaJSON []byte

const assessmentSchemaURL = "schema://assessment.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func assessmentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal(assessmentSchemaJSON, &doc); err != nil {
			schemaErr = fmt.Errorf("parse assessment schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(assessmentSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(assessmentSchemaURL)
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a decoded YAML document against the assessment schema.
// The document is round-tripped through JSON so the validator sees plain JSON values.
func validateDocument(doc any) error {
	schema, err := assessmentSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
