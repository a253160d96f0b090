// Package formula defines the formula and task document model: parsing,
// structural validation, serialization, and discovery of the declarative
// machine-setup documents the engine executes.
package formula

// Formula is a named, versioned list of task references grouped into
// categories. Immutable once validated.
type Formula struct {
	Name        string            `yaml:"name" toml:"name"`
	Version     string            `yaml:"version" toml:"version"`
	Description string            `yaml:"description,omitempty" toml:"description,omitempty"`
	Author      string            `yaml:"author,omitempty" toml:"author,omitempty"`
	Updated     string            `yaml:"updated,omitempty" toml:"updated,omitempty"`
	MinVersion  string            `yaml:"minVersion,omitempty" toml:"minVersion,omitempty"`
	TasksURL    string            `yaml:"tasksUrl,omitempty" toml:"tasksUrl,omitempty"`
	Categories  []string          `yaml:"categories,omitempty" toml:"categories,omitempty"`
	Variables   map[string]string `yaml:"variables,omitempty" toml:"variables,omitempty"`
	RequireSudo bool              `yaml:"require-sudo,omitempty" toml:"require-sudo,omitempty"`
	Tasks       []TaskRef         `yaml:"tasks" toml:"tasks"`
}

// TaskRef points at a task by id and assigns it a category and an optional
// desired-version constraint.
type TaskRef struct {
	ID       string `yaml:"id" toml:"id"`
	Category string `yaml:"category" toml:"category"`
	Version  string `yaml:"version,omitempty" toml:"version,omitempty"`
}

// ResolvedTask is a fully populated task together with the category and
// version constraint its formula reference assigned.
type ResolvedTask struct {
	Task
	Category   string
	Constraint string
}

// ResolvedFormula is a Formula whose task references have been replaced by
// fully resolved tasks. The tasksUrl is consumed during resolution and
// dropped.
type ResolvedFormula struct {
	Name        string
	Version     string
	Description string
	Variables   map[string]string
	RequireSudo bool
	Tasks       []ResolvedTask
}
