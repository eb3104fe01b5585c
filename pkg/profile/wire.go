package profile

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed wire_schema.json
var wireSchemaJSON []byte

var (
	wireSchemaOnce sync.Once
	wireSchema     *jsonschema.Schema
	wireSchemaErr  error
)

func compiledWireSchema() (*jsonschema.Schema, error) {
	wireSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(wireSchemaJSON))
		if err != nil {
			wireSchemaErr = fmt.Errorf("decoding wire schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("profile-wire.json", doc); err != nil {
			wireSchemaErr = fmt.Errorf("adding wire schema resource: %w", err)
			return
		}
		wireSchema, wireSchemaErr = compiler.Compile("profile-wire.json")
	})
	return wireSchema, wireSchemaErr
}

// ValidateWire checks that data is a well-formed serialized profile.
func ValidateWire(data []byte) error {
	sch, err := compiledWireSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding profile: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("profile does not match wire shape: %w", err)
	}
	return nil
}
