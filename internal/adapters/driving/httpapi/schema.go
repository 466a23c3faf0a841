package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/custodia-labs/leasefill/internal/core/domain"
)

const requestSchemaURL = "generate-contract.json"

// requestSchema describes the body of POST /generate-contract: an object
// whose schema fields are strings or numbers. Presence is checked later so
// that every missing field is reported at once.
func requestSchema(fs domain.FieldSchema) map[string]any {
	props := make(map[string]any)
	for _, f := range fs.Inputs() {
		props[f.Key] = map[string]any{
			"type":        []string{"string", "number", "null"},
			"description": f.Label,
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"additionalProperties": map[string]any{
			"type": []string{"string", "number", "boolean", "null"},
		},
	}
}

// compileSchema compiles the request schema for validation.
func compileSchema(doc map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(requestSchemaURL, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(requestSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// decodeBody parses r keeping numbers in their textual form.
func decodeBody(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return v, nil
}

// toFields converts a validated body to input fields. Numbers keep the
// caller's spelling; nulls, booleans and numeric zero are dropped, so a
// required field sent as 0 is reported missing.
func toFields(body any) map[string]string {
	obj, _ := body.(map[string]any)
	fields := make(map[string]string, len(obj))
	for k, v := range obj {
		switch x := v.(type) {
		case string:
			fields[k] = x
		case json.Number:
			if f, err := x.Float64(); err == nil && f == 0 {
				continue
			}
			fields[k] = x.String()
		}
	}
	return fields
}
