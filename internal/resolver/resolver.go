// Package resolver turns formula task references into fully populated
// tasks. The local catalog always takes precedence; remote task
// documents are consulted only for ids the catalog does not carry.
package resolver

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/outfitterhq/outfitter/internal/catalog"
	"github.com/outfitterhq/outfitter/internal/errors"
	"github.com/outfitterhq/outfitter/internal/formula"
)

// UnresolvedTaskError reports a task reference that matched neither the
// catalog nor the formula's remote task source.
type UnresolvedTaskError struct {
	ID        string
	Available []string
}

func (e *UnresolvedTaskError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("unknown task %q (the catalog is empty)", e.ID)
	}
	return fmt.Sprintf("unknown task %q (available: %s)", e.ID, strings.Join(e.Available, ", "))
}

// ExitCode maps an unresolved reference to the configuration-error exit
// code: the formula names a task that does not exist anywhere.
func (e *UnresolvedTaskError) ExitCode() int {
	return errors.ExitConfigError
}

// Resolver resolves task references against a catalog and, when a
// formula names a remote task source, fetched task documents.
type Resolver struct {
	Catalog catalog.Lookup

	// Fetcher overrides the scheme-based default, for tests.
	Fetcher Fetcher
}

// New returns a resolver backed by the given catalog.
func New(cat catalog.Lookup) *Resolver {
	return &Resolver{Catalog: cat}
}

// ResolveFormula resolves every reference in f, consuming its task
// source URL. Reference order is preserved; the scheduler reorders by
// dependencies later.
func (r *Resolver) ResolveFormula(ctx context.Context, f *formula.Formula) (*formula.ResolvedFormula, error) {
	tasks, err := r.Resolve(ctx, f.Tasks, f.TasksURL)
	if err != nil {
		return nil, err
	}
	return &formula.ResolvedFormula{
		Name:        f.Name,
		Version:     f.Version,
		Description: f.Description,
		Variables:   f.Variables,
		RequireSudo: f.RequireSudo,
		Tasks:       tasks,
	}, nil
}

// Resolve produces one resolved task per reference, in reference order.
// Resolution is all-or-nothing: a single unresolvable reference fails
// the whole call, because an incomplete task graph cannot be ordered.
func (r *Resolver) Resolve(ctx context.Context, refs []formula.TaskRef, tasksURL string) ([]formula.ResolvedTask, error) {
	resolved := make([]formula.ResolvedTask, 0, len(refs))
	for _, ref := range refs {
		task, err := r.resolveOne(ctx, ref.ID, tasksURL)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, formula.ResolvedTask{
			Task:       *task,
			Category:   ref.Category,
			Constraint: ref.Version,
		})
	}
	return resolved, nil
}

func (r *Resolver) resolveOne(ctx context.Context, id, tasksURL string) (*formula.Task, error) {
	// Catalog entries always win over remote definitions of the same
	// id, so a remote source can never shadow a vetted builtin task.
	if task, ok := r.Catalog.Get(id); ok {
		return task, nil
	}
	if tasksURL == "" {
		return nil, &UnresolvedTaskError{ID: id, Available: r.Catalog.IDs()}
	}
	return r.fetchTask(ctx, id, tasksURL)
}

func (r *Resolver) fetchTask(ctx context.Context, id, tasksURL string) (*formula.Task, error) {
	url := TaskURL(tasksURL, id)

	fetcher := r.Fetcher
	if fetcher == nil {
		var err error
		if fetcher, err = ForURL(url); err != nil {
			return nil, err
		}
	}

	data, err := fetcher.Fetch(ctx, url)
	if err != nil {
		if stderrors.Is(err, ErrNotFound) {
			return nil, &UnresolvedTaskError{ID: id, Available: r.Catalog.IDs()}
		}
		return nil, fmt.Errorf("fetching task %q from %s: %w", id, url, err)
	}

	task, _, err := formula.ParseTask(data, formula.FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("remote task %q: %w", id, err)
	}
	return task, nil
}

// TaskURL joins a task source base URL and a task id into the document
// URL, `{base}/{id}/task.yaml`.
func TaskURL(base, id string) string {
	return strings.TrimSuffix(base, "/") + "/" + id + "/task.yaml"
}
