package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	actionSchema = "action.schema.json"
	resultSchema = "result.schema.json"
)

// schemas holds the compiled request body schemas.
type schemas struct {
	action *jsonschema.Schema
	result *jsonschema.Schema
}

func compileSchemas() (*schemas, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	for _, name := range []string{actionSchema, resultSchema} {
		data, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			return nil, fmt.Errorf("reading schema %s: %w", name, err)
		}
		if err := c.AddResource(name, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("adding schema %s: %w", name, err)
		}
	}
	action, err := c.Compile(actionSchema)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", actionSchema, err)
	}
	result, err := c.Compile(resultSchema)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", resultSchema, err)
	}
	return &schemas{action: action, result: result}, nil
}

// validate decodes body as generic JSON and checks it against s. Numbers
// are kept as json.Number, which is what the validator expects.
func validate(s *jsonschema.Schema, body []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	return s.Validate(v)
}
