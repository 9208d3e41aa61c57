package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const stateSchemaURL = "https://github.com/amonks/taskgraph/schema/state.schema.json"

//go:embed schema/state.schema.json
var stateSchemaJSON []byte

var (
	stateSchemaOnce sync.Once
	stateSchema     *jsonschema.Schema
	stateSchemaErr  error
)

func compiledStateSchema() (*jsonschema.Schema, error) {
	stateSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(stateSchemaURL, bytes.NewReader(stateSchemaJSON)); err != nil {
			stateSchemaErr = fmt.Errorf("load state schema: %w", err)
			return
		}
		stateSchema, stateSchemaErr = compiler.Compile(stateSchemaURL)
		if stateSchemaErr != nil {
			stateSchemaErr = fmt.Errorf("compile state schema: %w", stateSchemaErr)
		}
	})
	return stateSchema, stateSchemaErr
}

// validateSchema checks raw document bytes against the state schema and
// reports every violated leaf constraint.
func validateSchema(data []byte) error {
	schema, err := compiledStateSchema()
	if err != nil {
		return err
	}

	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if err := schema.Validate(obj); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		var errs []error
		collectSchemaErrors(&errs, ve)
		return errors.Join(errs...)
	}
	return nil
}

func collectSchemaErrors(result *[]error, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*result = append(*result, fmt.Errorf("%s: %s", schemaPath(err.InstanceLocation), err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// schemaPath renders a JSON pointer like /tasks/0/desc as tasks[0].desc.
func schemaPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "document"
	}

	var b strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		if part != "" && strings.Trim(part, "0123456789") == "" {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
