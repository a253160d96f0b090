package formula

import (
	"fmt"
	"regexp"
	"time"

	"github.com/outfitterhq/outfitter/internal/errors"
)

// ValidateFormula turns a raw decoded document into a Formula, checking
// required fields and field types. Unknown keys are ignored; validation
// errors name the offending field, including the array index where one
// applies (e.g. "tasks[2].category").
func ValidateFormula(doc map[string]any) (*Formula, error) {
	f := &Formula{}
	var err error

	if f.Name, err = requiredString(doc, "", "name"); err != nil {
		return nil, err
	}
	if f.Version, err = requiredString(doc, "", "version"); err != nil {
		return nil, err
	}
	if f.Description, err = optionalString(doc, "", "description"); err != nil {
		return nil, err
	}
	if f.Author, err = optionalString(doc, "", "author"); err != nil {
		return nil, err
	}
	if f.Updated, err = optionalTimestampString(doc, "", "updated"); err != nil {
		return nil, err
	}
	if f.MinVersion, err = optionalString(doc, "", "minVersion"); err != nil {
		return nil, err
	}
	if f.TasksURL, err = optionalString(doc, "", "tasksUrl"); err != nil {
		return nil, err
	}
	if f.Categories, err = optionalStringSlice(doc, "", "categories"); err != nil {
		return nil, err
	}
	if f.Variables, err = optionalStringMap(doc, "", "variables"); err != nil {
		return nil, err
	}
	if f.RequireSudo, err = optionalBool(doc, "", "require-sudo"); err != nil {
		return nil, err
	}

	raw, ok := doc["tasks"]
	if !ok {
		return nil, errors.Validation("tasks", "is required")
	}
	list, ok := asSlice(raw)
	if !ok {
		return nil, errors.Validation("tasks", "must be an array")
	}
	f.Tasks = make([]TaskRef, 0, len(list))
	for i, item := range list {
		path := fmt.Sprintf("tasks[%d]", i)
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Validation(path, "must be a mapping")
		}
		ref, err := validateTaskRef(m, path)
		if err != nil {
			return nil, err
		}
		f.Tasks = append(f.Tasks, ref)
	}

	return f, nil
}

func validateTaskRef(m map[string]any, path string) (TaskRef, error) {
	var ref TaskRef
	var err error

	if ref.ID, err = requiredString(m, path, "id"); err != nil {
		return TaskRef{}, err
	}
	if ref.Category, err = requiredString(m, path, "category"); err != nil {
		return TaskRef{}, err
	}
	if ref.Version, err = optionalString(m, path, "version"); err != nil {
		return TaskRef{}, err
	}

	return ref, nil
}

// ValidateTask turns a raw decoded document into a Task. The step type
// enumeration is closed; a task with zero steps is legal (metadata-only).
func ValidateTask(doc map[string]any) (*Task, error) {
	t := &Task{}
	var err error

	if t.ID, err = requiredString(doc, "", "id"); err != nil {
		return nil, err
	}
	if t.Name, err = requiredString(doc, "", "name"); err != nil {
		return nil, err
	}
	if t.Description, err = optionalString(doc, "", "description"); err != nil {
		return nil, err
	}
	if t.Homepage, err = optionalString(doc, "", "homepage"); err != nil {
		return nil, err
	}
	if t.Tags, err = optionalStringSlice(doc, "", "tags"); err != nil {
		return nil, err
	}
	if t.Dependencies, err = optionalStringSlice(doc, "", "dependencies"); err != nil {
		return nil, err
	}
	if t.VersionCommand, err = optionalString(doc, "", "versionCommand"); err != nil {
		return nil, err
	}
	if t.VersionRegex, err = optionalString(doc, "", "versionRegex"); err != nil {
		return nil, err
	}
	if t.RequireSudo, err = optionalBool(doc, "", "require-sudo"); err != nil {
		return nil, err
	}

	if t.VersionRegex != "" {
		if _, err := regexp.Compile(t.VersionRegex); err != nil {
			return nil, errors.Validationf("versionRegex", "invalid regular expression: %v", err)
		}
	}

	raw, ok := doc["steps"]
	if !ok {
		return nil, errors.Validation("steps", "is required")
	}
	list, ok := asSlice(raw)
	if !ok {
		return nil, errors.Validation("steps", "must be an array")
	}
	t.Steps = make([]Step, 0, len(list))
	for i, item := range list {
		path := fmt.Sprintf("steps[%d]", i)
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Validation(path, "must be a mapping")
		}
		step, err := validateStep(m, path)
		if err != nil {
			return nil, err
		}
		t.Steps = append(t.Steps, step)
	}

	return t, nil
}

func validateStep(m map[string]any, path string) (Step, error) {
	var s Step
	var err error

	if s.Name, err = requiredString(m, path, "name"); err != nil {
		return Step{}, err
	}
	if s.Type, err = requiredString(m, path, "type"); err != nil {
		return Step{}, err
	}
	if !ValidStepType(s.Type) {
		return Step{}, errors.Validationf(fieldPath(path, "type"),
			"unknown step type %q (expected shell, download, git-clone, or a package manager name)", s.Type)
	}
	if s.Command, err = requiredString(m, path, "command"); err != nil {
		return Step{}, err
	}
	if s.Args, err = optionalStringSlice(m, path, "args"); err != nil {
		return Step{}, err
	}
	if s.Platforms, err = optionalStringSlice(m, path, "platforms"); err != nil {
		return Step{}, err
	}
	if s.Env, err = optionalStringMap(m, path, "env"); err != nil {
		return Step{}, err
	}
	if s.WorkingDir, err = optionalString(m, path, "workingDir"); err != nil {
		return Step{}, err
	}
	if s.Optional, err = optionalBool(m, path, "optional"); err != nil {
		return Step{}, err
	}
	if s.PostInstall, err = optionalStringSlice(m, path, "postInstall"); err != nil {
		return Step{}, err
	}

	return s, nil
}

func fieldPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func requiredString(doc map[string]any, prefix, key string) (string, error) {
	v, ok := doc[key]
	if !ok {
		return "", errors.Validation(fieldPath(prefix, key), "is required")
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Validation(fieldPath(prefix, key), "must be a string")
	}
	if s == "" {
		return "", errors.Validation(fieldPath(prefix, key), "must not be empty")
	}
	return s, nil
}

func optionalString(doc map[string]any, prefix, key string) (string, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Validation(fieldPath(prefix, key), "must be a string")
	}
	return s, nil
}

// optionalTimestampString reads a field that may decode as a bare timestamp.
// Both decoders resolve unquoted dates like 2024-06-01 into time.Time; the
// value is kept as a string so round-trips stay lossless.
func optionalTimestampString(doc map[string]any, prefix, key string) (string, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return "", nil
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format("2006-01-02"), nil
		}
		return val.Format(time.RFC3339), nil
	}
	return "", errors.Validation(fieldPath(prefix, key), "must be a string")
}

func optionalBool(doc map[string]any, prefix, key string) (bool, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, errors.Validation(fieldPath(prefix, key), "must be a boolean")
	}
	return b, nil
}

func optionalStringSlice(doc map[string]any, prefix, key string) ([]string, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := asSlice(v)
	if !ok {
		return nil, errors.Validation(fieldPath(prefix, key), "must be an array of strings")
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, errors.Validation(fmt.Sprintf("%s[%d]", fieldPath(prefix, key), i), "must be a string")
		}
		out = append(out, s)
	}
	return out, nil
}

func optionalStringMap(doc map[string]any, prefix, key string) (map[string]string, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, errors.Validation(fieldPath(prefix, key), "must be a mapping of strings")
	}
	out := make(map[string]string, len(m))
	for k, item := range m {
		s, ok := item.(string)
		if !ok {
			return nil, errors.Validation(fieldPath(prefix, key)+"."+k, "must be a string")
		}
		out[k] = s
	}
	return out, nil
}

// asSlice accepts the two list shapes the decoders produce. BurntSushi
// represents TOML arrays of tables as []map[string]any rather than []any.
func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}
