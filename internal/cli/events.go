package cli

import (
	"time"

	"github.com/outfitterhq/outfitter/internal/engine"
	"github.com/outfitterhq/outfitter/internal/executor"
	"github.com/outfitterhq/outfitter/internal/formula"
	"github.com/outfitterhq/outfitter/internal/output"
	"github.com/outfitterhq/outfitter/internal/vercheck"
)

// consoleEvents renders engine progress through the shared output
// writer.
type consoleEvents struct {
	out *output.Writer
}

var _ engine.Events = (*consoleEvents)(nil)

func (c *consoleEvents) SchedulerWarning(msg string) {
	c.out.Warning("%s", msg)
}

func (c *consoleEvents) VersionChecked(task formula.ResolvedTask, check vercheck.Result) {
	c.out.Verbose("version check %s: %s", task.ID, check.Message)
}

func (c *consoleEvents) TaskStarted(task formula.ResolvedTask) {
	c.out.TaskStart(task.Name, task.Category)
}

func (c *consoleEvents) TaskSkipped(task formula.ResolvedTask, reason string) {
	c.out.TaskSkipped(task.Name, reason)
}

func (c *consoleEvents) TaskSucceeded(task formula.ResolvedTask, d time.Duration) {
	c.out.TaskSuccess(task.Name, d)
}

func (c *consoleEvents) TaskFailed(task formula.ResolvedTask, errMsg string) {
	c.out.TaskFailed(task.Name, errMsg)
}

func (c *consoleEvents) StepStarted(step formula.Step) {
	c.out.StepStart(step.Name)
}

func (c *consoleEvents) StepFinished(step formula.Step, result executor.StepResult) {
	if result.Success && result.Error != "" {
		c.out.StepOptionalFailed(step.Name, result.Error)
	}
	if result.Output != "" {
		c.out.Verbose("%s", result.Output)
	}
}

func (c *consoleEvents) StepPlanned(step formula.Step, command string) {
	c.out.StepStart(step.Name)
	c.out.Info("    would run: %s", command)
}
