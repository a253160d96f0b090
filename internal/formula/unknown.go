package formula

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// UnknownFormulaFields returns warnings for unrecognized keys in a formula
// document. Unknown keys never fail validation; the warnings keep typos
// visible without breaking forward compatibility.
func UnknownFormulaFields(doc map[string]any) []string {
	warnings := unknownKeys(doc, reflect.TypeOf(Formula{}), "in formula")

	if raw, ok := doc["tasks"]; ok {
		if list, ok := asSlice(raw); ok {
			refType := reflect.TypeOf(TaskRef{})
			for i, item := range list {
				if m, ok := item.(map[string]any); ok {
					warnings = append(warnings, unknownKeys(m, refType, fmt.Sprintf("in tasks[%d]", i))...)
				}
			}
		}
	}

	return warnings
}

// UnknownTaskFields returns warnings for unrecognized keys in a task
// document.
func UnknownTaskFields(doc map[string]any) []string {
	warnings := unknownKeys(doc, reflect.TypeOf(Task{}), "in task")

	if raw, ok := doc["steps"]; ok {
		if list, ok := asSlice(raw); ok {
			stepType := reflect.TypeOf(Step{})
			for i, item := range list {
				if m, ok := item.(map[string]any); ok {
					warnings = append(warnings, unknownKeys(m, stepType, fmt.Sprintf("in steps[%d]", i))...)
				}
			}
		}
	}

	return warnings
}

// unknownKeys compares a document level against the known yaml tags of a
// struct type. Keys are reported in sorted order for stable output.
func unknownKeys(m map[string]any, t reflect.Type, where string) []string {
	known := yamlFields(t)

	var unknown []string
	for key := range m {
		if key == "$schema" {
			continue
		}
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	warnings := make([]string, 0, len(unknown))
	for _, key := range unknown {
		warnings = append(warnings, fmt.Sprintf("unknown field %q %s (ignored)", key, where))
	}
	return warnings
}

// yamlFields returns the set of known document keys for a struct type.
func yamlFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}
