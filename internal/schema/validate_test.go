package schema

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func decodeYAML(t *testing.T, text string) any {
	t.Helper()
	var doc any
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		t.Fatalf("decode test document: %v", err)
	}
	return doc
}

func TestSchemaValidFormula(t *testing.T) {
	doc := decodeYAML(t, `
name: backend-dev
version: 1.0.0
description: Backend development machine
tasksUrl: https://example.com/tasks
variables:
  GOPATH: ~/go
require-sudo: true
tasks:
  - id: git
    category: essential
  - id: go
    category: language
    version: ">=1.22.0"
`)
	if err := ValidateFormulaDoc(doc); err != nil {
		t.Errorf("expected valid formula, got error: %v", err)
	}
}

func TestSchemaFormulaMissingVersion(t *testing.T) {
	doc := decodeYAML(t, `
name: backend-dev
tasks: []
`)
	if err := ValidateFormulaDoc(doc); err == nil {
		t.Error("expected validation error for missing version, got nil")
	}
}

func TestSchemaFormulaTasksNotArray(t *testing.T) {
	doc := decodeYAML(t, `
name: backend-dev
version: 1.0.0
tasks: git
`)
	if err := ValidateFormulaDoc(doc); err == nil {
		t.Error("expected validation error for non-array tasks, got nil")
	}
}

func TestSchemaFormulaEmptyObject(t *testing.T) {
	if err := ValidateFormulaDoc(map[string]any{}); err == nil {
		t.Error("expected validation error for empty object, got nil")
	}
}

func TestSchemaFormulaNotObject(t *testing.T) {
	if err := ValidateFormulaDoc("just a string"); err == nil {
		t.Error("expected validation error for non-object, got nil")
	}
}

func TestSchemaFormulaUnknownFieldsAllowed(t *testing.T) {
	// Unknown fields must not fail schema validation; forward compatibility
	// is handled by warnings, not errors.
	doc := decodeYAML(t, `
name: backend-dev
version: 1.0.0
futureFeature: enabled
tasks:
  - id: git
    category: essential
`)
	if err := ValidateFormulaDoc(doc); err != nil {
		t.Errorf("unknown fields should be allowed, got error: %v", err)
	}
}

func TestSchemaValidTask(t *testing.T) {
	doc := decodeYAML(t, `
id: node
name: Node.js
homepage: https://nodejs.org
dependencies: [curl]
versionCommand: node --version
versionRegex: v(\d+\.\d+\.\d+)
steps:
  - name: Install Node.js
    type: brew
    command: node
  - name: Enable corepack
    type: shell
    command: corepack enable
    optional: true
    platforms: [darwin, linux]
`)
	if err := ValidateTaskDoc(doc); err != nil {
		t.Errorf("expected valid task, got error: %v", err)
	}
}

func TestSchemaTaskMissingSteps(t *testing.T) {
	doc := decodeYAML(t, `
id: node
name: Node.js
`)
	if err := ValidateTaskDoc(doc); err == nil {
		t.Error("expected validation error for missing steps, got nil")
	}
}

func TestSchemaTaskStepMissingCommand(t *testing.T) {
	doc := decodeYAML(t, `
id: node
name: Node.js
steps:
  - name: Install
    type: brew
`)
	if err := ValidateTaskDoc(doc); err == nil {
		t.Error("expected validation error for step without command, got nil")
	}
}

func TestSchemaTaskEmptyStepsAllowed(t *testing.T) {
	// Metadata-only tasks are legal.
	doc := decodeYAML(t, `
id: xcode-select
name: Xcode Command Line Tools
steps: []
`)
	if err := ValidateTaskDoc(doc); err != nil {
		t.Errorf("expected empty steps to be valid, got error: %v", err)
	}
}
