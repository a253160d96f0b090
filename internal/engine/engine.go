// Package engine orchestrates a formula run: task filtering, dependency
// ordering, the per-task version gate, and strictly sequential step
// execution. Execution-time failures are captured into result values,
// never returned as errors, so a partial run still yields a complete
// InstallResult.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/outfitterhq/outfitter/internal/executor"
	"github.com/outfitterhq/outfitter/internal/formula"
	"github.com/outfitterhq/outfitter/internal/scheduler"
	"github.com/outfitterhq/outfitter/internal/vercheck"
)

// Options selects and shapes a run.
type Options struct {
	// SelectedTasks restricts the run to the named task ids. Empty
	// means every task in the formula.
	SelectedTasks []string

	// SelectedCategories restricts the run to tasks in the named
	// categories, intersected with SelectedTasks.
	SelectedCategories []string

	// DryRun reports the commands that would run without spawning
	// anything, including version checks.
	DryRun bool

	// ForceInstall runs install steps even when the installed version
	// already satisfies the constraint.
	ForceInstall bool

	// SkipVersionCheck disables the version gate: tasks run without
	// probing what is already installed.
	SkipVersionCheck bool

	// ContinueOnError keeps processing scheduled tasks after one
	// fails.
	ContinueOnError bool
}

// Engine executes resolved formulas one task at a time.
type Engine struct {
	steps   *executor.StepExecutor
	checker *vercheck.Checker
	events  Events
}

// New assembles an engine from its collaborators. A nil events sink
// discards progress.
func New(steps *executor.StepExecutor, checker *vercheck.Checker, events Events) *Engine {
	if events == nil {
		events = NopEvents{}
	}
	return &Engine{steps: steps, checker: checker, events: events}
}

// Execute runs the formula and returns a complete result even when the
// run stops early. Tasks execute strictly in dependency order, one at a
// time, so progress events and console interleaving stay deterministic.
func (e *Engine) Execute(ctx context.Context, rf *formula.ResolvedFormula, opts Options) *InstallResult {
	res := &InstallResult{
		RunID:          uuid.NewString(),
		FormulaName:    rf.Name,
		FormulaVersion: rf.Version,
		StartedAt:      time.Now(),
	}

	selected := filterTasks(rf.Tasks, opts.SelectedTasks, opts.SelectedCategories)
	if len(selected) == 0 {
		// Installing nothing is not an error.
		res.Success = true
		finish(res)
		return res
	}

	ordered, warnings := scheduler.Order(selected)
	for _, w := range warnings {
		e.events.SchedulerWarning(w)
	}

	// Dependencies that are not part of the formula are never gated:
	// the run never promised to provide them.
	inFormula := make(map[string]bool, len(rf.Tasks))
	for i := range rf.Tasks {
		inFormula[rf.Tasks[i].ID] = true
	}
	installed := make(map[string]bool, len(ordered))

	aborted := false
	for i := range ordered {
		if ctx.Err() != nil {
			aborted = true
			break
		}

		tr := e.runTask(ctx, ordered[i], inFormula, installed, opts)
		res.Tasks = append(res.Tasks, tr)

		if !tr.OK() && !opts.ContinueOnError {
			break
		}
	}

	ok := !aborted
	for i := range res.Tasks {
		if !res.Tasks[i].OK() {
			ok = false
		}
	}
	res.Success = ok
	finish(res)
	return res
}

func finish(res *InstallResult) {
	res.FinishedAt = time.Now()
	res.Duration = res.FinishedAt.Sub(res.StartedAt)
}

func (e *Engine) runTask(ctx context.Context, task formula.ResolvedTask, inFormula, installed map[string]bool, opts Options) (tr TaskResult) {
	tr.Task = task
	start := time.Now()
	defer func() { tr.Duration = time.Since(start) }()

	if missing := missingDeps(task, inFormula, installed); len(missing) > 0 {
		tr.Skipped = true
		tr.SkipReason = "missing dependencies: " + strings.Join(missing, ", ")
		e.events.TaskSkipped(task, tr.SkipReason)
		return tr
	}

	if !opts.DryRun && !opts.ForceInstall && !opts.SkipVersionCheck {
		check := e.checker.Check(ctx, &task.Task, task.Constraint)
		e.events.VersionChecked(task, check)
		if check.Installed && !check.NeedsUpdate {
			tr.Success = true
			tr.Skipped = true
			tr.SkipReason = check.Message
			installed[task.ID] = true
			e.events.TaskSkipped(task, check.Message)
			return tr
		}
	}

	e.events.TaskStarted(task)

	if opts.DryRun {
		tr.Steps = e.planSteps(task)
		tr.Success = true
		installed[task.ID] = true
		e.events.TaskSucceeded(task, time.Since(start))
		return tr
	}

	for i := range task.Steps {
		step := task.Steps[i]
		e.events.StepStarted(step)

		sr := e.steps.Execute(ctx, step)
		tr.Steps = append(tr.Steps, sr)
		e.events.StepFinished(step, sr)

		if !sr.Success {
			e.events.TaskFailed(task, sr.Error)
			return tr
		}
	}

	tr.Success = true
	installed[task.ID] = true
	e.events.TaskSucceeded(task, time.Since(start))
	return tr
}

// planSteps reports what each step would run without spawning anything.
func (e *Engine) planSteps(task formula.ResolvedTask) []executor.StepResult {
	platform := e.steps.Platform
	if platform == "" {
		platform = executor.CurrentPlatform()
	}

	results := make([]executor.StepResult, 0, len(task.Steps))
	for i := range task.Steps {
		step := executor.ExpandStep(task.Steps[i], e.steps.Vars)
		sr := executor.StepResult{Step: step, Success: true}

		if !executor.StepApplies(step, platform) {
			sr.Output = "skipped: not applicable on " + platform
			results = append(results, sr)
			continue
		}

		line := step.Name
		if cmd, err := executor.BuildCommand(step, platform); err == nil {
			line = cmd.String()
		}
		sr.Output = "would run: " + line
		e.events.StepPlanned(step, line)
		results = append(results, sr)
	}
	return results
}

// missingDeps lists dependencies the formula includes that have not yet
// succeeded or been satisfied earlier in the run.
func missingDeps(task formula.ResolvedTask, inFormula, installed map[string]bool) []string {
	var missing []string
	for _, dep := range task.Dependencies {
		if inFormula[dep] && !installed[dep] {
			missing = append(missing, dep)
		}
	}
	return missing
}

func filterTasks(tasks []formula.ResolvedTask, ids, categories []string) []formula.ResolvedTask {
	wantID := asSet(ids)
	wantCat := asSet(categories)

	out := make([]formula.ResolvedTask, 0, len(tasks))
	for _, t := range tasks {
		if wantID != nil && !wantID[t.ID] {
			continue
		}
		if wantCat != nil && !wantCat[t.Category] {
			continue
		}
		out = append(out, t)
	}
	return out
}

func asSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
