package engine

import (
	"time"

	"github.com/outfitterhq/outfitter/internal/executor"
	"github.com/outfitterhq/outfitter/internal/formula"
	"github.com/outfitterhq/outfitter/internal/vercheck"
)

// Events receives run progress as it happens. The engine never prints;
// a presentation layer implements this against its own writer. Methods
// are called from the single execution loop, never concurrently.
type Events interface {
	// SchedulerWarning reports a non-fatal ordering problem, such as a
	// dependency cycle degraded to first-visit order.
	SchedulerWarning(msg string)

	// VersionChecked reports the version gate's verdict for a task
	// that was probed, whether or not it led to a skip.
	VersionChecked(task formula.ResolvedTask, check vercheck.Result)

	TaskStarted(task formula.ResolvedTask)
	TaskSkipped(task formula.ResolvedTask, reason string)
	TaskSucceeded(task formula.ResolvedTask, d time.Duration)
	TaskFailed(task formula.ResolvedTask, errMsg string)

	StepStarted(step formula.Step)
	// StepFinished fires after a step ran, including optional steps
	// whose failure was tolerated (Success true, Error recorded).
	StepFinished(step formula.Step, result executor.StepResult)
	// StepPlanned fires instead of StepStarted/StepFinished during a
	// dry run, carrying the rendered command that would have run.
	StepPlanned(step formula.Step, command string)
}

// NopEvents discards all progress.
type NopEvents struct{}

func (NopEvents) SchedulerWarning(string)                              {}
func (NopEvents) VersionChecked(formula.ResolvedTask, vercheck.Result) {}
func (NopEvents) TaskStarted(formula.ResolvedTask)                     {}
func (NopEvents) TaskSkipped(formula.ResolvedTask, string)             {}
func (NopEvents) TaskSucceeded(formula.ResolvedTask, time.Duration)    {}
func (NopEvents) TaskFailed(formula.ResolvedTask, string)              {}
func (NopEvents) StepStarted(formula.Step)                             {}
func (NopEvents) StepFinished(formula.Step, executor.StepResult)       {}
func (NopEvents) StepPlanned(formula.Step, string)                     {}
