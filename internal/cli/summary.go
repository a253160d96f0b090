package cli

import (
	"fmt"

	"github.com/outfitterhq/outfitter/internal/engine"
	"github.com/outfitterhq/outfitter/internal/output"
)

// renderSummary prints the per-task outcome table and the final verdict
// for a finished run.
func renderSummary(result *engine.InstallResult, dryRun bool) {
	title := "Install Summary"
	if dryRun {
		title = "Dry Run Summary"
	}
	out.SummaryHeader(title)

	out.SummaryItem("formula", fmt.Sprintf("%s %s", result.FormulaName, result.FormulaVersion))
	out.SummaryItem("duration", output.FormatDuration(result.Duration))

	if len(result.Tasks) == 0 && result.Success {
		out.FinalSuccess("nothing to do")
		return
	}

	category := ""
	for _, tr := range result.Tasks {
		if tr.Task.Category != category {
			category = tr.Task.Category
			out.Println("")
			out.SummarySectionLabel(category)
		}
		out.SummaryTask(tr.Task.ID, tr.Success, tr.Skipped,
			output.FormatDuration(tr.Duration), taskDetail(tr))
	}

	out.Println("")
	out.SummaryPassed("installed", fmt.Sprintf("%d", result.Installed()))
	out.SummaryItem("skipped", fmt.Sprintf("%d", result.Skipped()))
	if failed := result.Failed(); failed > 0 {
		out.SummaryFailed("failed", fmt.Sprintf("%d", failed))
	}

	switch {
	case !result.Success && result.Failed() == 0:
		// Aborted before anything went wrong, e.g. by an interrupt.
		out.FinalFailure("install stopped before all tasks finished")
	case !result.Success:
		out.FinalFailure("install failed: %d of %d tasks did not finish", result.Failed(), len(result.Tasks))
	case dryRun:
		out.FinalSuccess("dry run complete, nothing was executed")
	default:
		out.FinalSuccess("machine outfitted: %d installed, %d already in place",
			result.Installed(), result.Skipped())
	}
}

// taskDetail picks the short annotation for a summary row: the skip
// reason, or the failing step's error.
func taskDetail(tr engine.TaskResult) string {
	if tr.Skipped {
		return tr.SkipReason
	}
	if tr.Success {
		return ""
	}
	for i := len(tr.Steps) - 1; i >= 0; i-- {
		if !tr.Steps[i].Success && tr.Steps[i].Error != "" {
			return tr.Steps[i].Error
		}
	}
	return "failed"
}
