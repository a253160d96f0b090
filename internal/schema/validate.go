// Package schema provides JSON schema validation for outfitter documents.
//
// Schema validation is a deep structural check used by the validate command;
// the formula package's own validator remains the authority on required
// fields and produces the precise per-field errors.
package schema

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/outfitterhq/outfitter/schema"
)

var (
	formulaSchema *jsonschema.Schema
	taskSchema    *jsonschema.Schema
	compileOnce   sync.Once
	compileErr    error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		formulaData, err := schemafs.FS.ReadFile("formula.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read formula schema: %w", err)
			return
		}

		taskData, err := schemafs.FS.ReadFile("task.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read task schema: %w", err)
			return
		}

		formulaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(formulaData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal formula schema: %w", err)
			return
		}

		taskDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(taskData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal task schema: %w", err)
			return
		}

		if err := compiler.AddResource("formula.schema.json", formulaDoc); err != nil {
			compileErr = fmt.Errorf("add formula schema resource: %w", err)
			return
		}

		if err := compiler.AddResource("task.schema.json", taskDoc); err != nil {
			compileErr = fmt.Errorf("add task schema resource: %w", err)
			return
		}

		formulaSchema, err = compiler.Compile("formula.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile formula schema: %w", err)
			return
		}

		taskSchema, err = compiler.Compile("task.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile task schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateFormulaDoc validates a decoded formula document against the
// formula schema.
func ValidateFormulaDoc(doc any) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	if err := formulaSchema.Validate(doc); err != nil {
		return fmt.Errorf("formula schema validation failed: %w", err)
	}

	return nil
}

// ValidateTaskDoc validates a decoded task document against the task schema.
func ValidateTaskDoc(doc any) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	if err := taskSchema.Validate(doc); err != nil {
		return fmt.Errorf("task schema validation failed: %w", err)
	}

	return nil
}
