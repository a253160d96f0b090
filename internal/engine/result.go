package engine

import (
	"time"

	"github.com/outfitterhq/outfitter/internal/executor"
	"github.com/outfitterhq/outfitter/internal/formula"
)

// TaskResult is one task's outcome within a run.
type TaskResult struct {
	Task       formula.ResolvedTask
	Success    bool
	Skipped    bool
	SkipReason string
	Steps      []executor.StepResult
	Duration   time.Duration
}

// OK reports whether the task counts toward a successful run. Skipped
// tasks count: not needing work is not a failure.
func (r TaskResult) OK() bool {
	return r.Success || r.Skipped
}

// InstallResult is the complete record of one run. It is always fully
// populated, even when the run stopped early.
type InstallResult struct {
	RunID          string
	FormulaName    string
	FormulaVersion string
	Success        bool
	Tasks          []TaskResult
	StartedAt      time.Time
	FinishedAt     time.Time
	Duration       time.Duration
}

// Installed counts tasks whose install steps ran to completion.
func (r *InstallResult) Installed() int {
	n := 0
	for i := range r.Tasks {
		if r.Tasks[i].Success && !r.Tasks[i].Skipped {
			n++
		}
	}
	return n
}

// Skipped counts tasks the version or dependency gate skipped.
func (r *InstallResult) Skipped() int {
	n := 0
	for i := range r.Tasks {
		if r.Tasks[i].Skipped {
			n++
		}
	}
	return n
}

// Failed counts tasks that failed.
func (r *InstallResult) Failed() int {
	n := 0
	for i := range r.Tasks {
		if !r.Tasks[i].OK() {
			n++
		}
	}
	return n
}
