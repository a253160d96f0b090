// Package catalog provides the built-in task catalog embedded into the
// binary, plus the lookup capability the resolver consumes.
package catalog

import (
	"embed"
	"fmt"
	"path"
	"sync"

	"github.com/outfitterhq/outfitter/internal/formula"
)

//go:embed tasks/*.yaml
var tasksFS embed.FS

// Lookup is the catalog capability consumed by the resolver.
type Lookup interface {
	// Has reports whether the catalog contains a task id.
	Has(id string) bool
	// Get returns the task definition for an id.
	Get(id string) (*formula.Task, bool)
	// IDs returns all task ids in catalog order.
	IDs() []string
}

// Static is an in-memory catalog with a stable id order.
type Static struct {
	ids   []string
	tasks map[string]*formula.Task
}

// FromTasks builds a catalog from validated tasks, keeping their order.
// A duplicate id replaces the earlier entry.
func FromTasks(tasks []*formula.Task) *Static {
	s := &Static{tasks: make(map[string]*formula.Task, len(tasks))}
	for _, t := range tasks {
		if _, exists := s.tasks[t.ID]; !exists {
			s.ids = append(s.ids, t.ID)
		}
		s.tasks[t.ID] = t
	}
	return s
}

// Has reports whether the catalog contains a task id.
func (s *Static) Has(id string) bool {
	_, ok := s.tasks[id]
	return ok
}

// Get returns the task definition for an id.
func (s *Static) Get(id string) (*formula.Task, bool) {
	t, ok := s.tasks[id]
	return t, ok
}

// IDs returns all task ids in catalog order.
func (s *Static) IDs() []string {
	return append([]string(nil), s.ids...)
}

var (
	builtin     *Static
	builtinOnce sync.Once
	builtinErr  error
)

// Builtin returns the embedded task catalog. Documents are parsed and
// validated on first use.
func Builtin() (*Static, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = loadEmbedded()
	})
	return builtin, builtinErr
}

func loadEmbedded() (*Static, error) {
	entries, err := tasksFS.ReadDir("tasks")
	if err != nil {
		return nil, fmt.Errorf("read embedded tasks: %w", err)
	}

	tasks := make([]*formula.Task, 0, len(entries))
	for _, entry := range entries {
		data, err := tasksFS.ReadFile(path.Join("tasks", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read embedded task %s: %w", entry.Name(), err)
		}
		task, _, err := formula.ParseTask(data, formula.FormatYAML)
		if err != nil {
			return nil, fmt.Errorf("embedded task %s: %w", entry.Name(), err)
		}
		tasks = append(tasks, task)
	}
	return FromTasks(tasks), nil
}
