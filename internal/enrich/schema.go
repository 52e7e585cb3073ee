package enrich

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/ralph-features.json
var ralphSchemaJSON string

//go:embed schemas/specops-state.json
var specopsSchemaJSON string

var (
	ralphSchema   = compileSchema("ralph-features.json", ralphSchemaJSON)
	specopsSchema = compileSchema("specops-state.json", specopsSchemaJSON)
)

func compileSchema(url, src string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("adding schema %s: %v", url, err))
	}
	return compiler.MustCompile(url)
}

// readValidated reads a JSON file, checks it against schema, and decodes it
// into out.
func readValidated(path string, schema *jsonschema.Schema, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidState, path, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidState, path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidState, path, err)
	}
	return nil
}
