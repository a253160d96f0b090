// Package scheduler orders resolved tasks so that every task's
// dependencies execute before the task itself.
package scheduler

import (
	"fmt"

	"github.com/outfitterhq/outfitter/internal/formula"
)

// Order returns tasks in dependency order, visiting depth-first in the
// input's original order. Dependency ids absent from the input are
// ignored: they are assumed already satisfied or filtered out of this
// run, so a partial formula still schedules. A dependency cycle never
// deadlocks or fails the sort; the cyclic edge is cut at the first
// revisit and reported as a warning, leaving the cyclic tasks in
// first-visit order. Wherever the graph is acyclic the result is a
// total ordering consistent with the dependency partial order.
func Order(tasks []formula.ResolvedTask) ([]formula.ResolvedTask, []string) {
	byID := make(map[string]*formula.ResolvedTask, len(tasks))
	for i := range tasks {
		if _, exists := byID[tasks[i].ID]; !exists {
			byID[tasks[i].ID] = &tasks[i]
		}
	}

	ordered := make([]formula.ResolvedTask, 0, len(tasks))
	var warnings []string
	visited := make(map[string]bool)
	inStack := make(map[string]bool)

	var visit func(task *formula.ResolvedTask)
	visit = func(task *formula.ResolvedTask) {
		if inStack[task.ID] {
			warnings = append(warnings, fmt.Sprintf("dependency cycle involving %q; keeping first-visit order", task.ID))
			return
		}
		if visited[task.ID] {
			return
		}

		inStack[task.ID] = true
		for _, dep := range task.Dependencies {
			if depTask, ok := byID[dep]; ok {
				visit(depTask)
			}
		}
		inStack[task.ID] = false

		visited[task.ID] = true
		ordered = append(ordered, *task)
	}

	for i := range tasks {
		visit(&tasks[i])
	}

	return ordered, warnings
}
