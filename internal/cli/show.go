package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/outfitterhq/outfitter/internal/catalog"
	"github.com/outfitterhq/outfitter/internal/errors"
	"github.com/outfitterhq/outfitter/internal/formula"
	"github.com/outfitterhq/outfitter/internal/resolver"
	"github.com/outfitterhq/outfitter/internal/scheduler"
)

var showFormat string

var titleCaser = cases.Title(language.English)

var showCmd = &cobra.Command{
	Use:   "show [formula]",
	Short: "Print a formula's resolved install plan",
	Long: `Show resolves the formula without executing anything and prints what
an install would do: each category's tasks with their constraints and
dependencies, and the dependency-ordered install sequence.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "text", "output format: text or markdown")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	rf, ordered, err := loadResolvedPlan(cmd.Context(), args)
	if err != nil {
		return err
	}

	switch showFormat {
	case "text":
		showText(rf, ordered)
	case "markdown":
		showMarkdown(rf, ordered)
	default:
		return errors.Validationf("format", "unknown format %q, want text or markdown", showFormat)
	}
	return nil
}

// loadResolvedPlan loads the formula, resolves it against the catalog,
// and orders its tasks: the shared front half of the read-only
// commands.
func loadResolvedPlan(ctx context.Context, args []string) (*formula.ResolvedFormula, []formula.ResolvedTask, error) {
	path, err := resolveFormulaPath(args)
	if err != nil {
		return nil, nil, err
	}

	f, err := loadFormulaFile(path)
	if err != nil {
		return nil, nil, err
	}

	cat, err := catalog.Builtin()
	if err != nil {
		return nil, nil, err
	}
	rf, err := resolver.New(cat).ResolveFormula(ctx, f)
	if err != nil {
		return nil, nil, err
	}

	ordered, warnings := scheduler.Order(rf.Tasks)
	for _, w := range warnings {
		out.Warning("%s", w)
	}
	return rf, ordered, nil
}

func showText(rf *formula.ResolvedFormula, ordered []formula.ResolvedTask) {
	out.Println("%s %s", rf.Name, rf.Version)
	if rf.Description != "" {
		out.Println("%s", rf.Description)
	}

	for _, category := range categoriesInOrder(rf.Tasks) {
		out.Section(titleCaser.String(category))
		for _, t := range rf.Tasks {
			if t.Category != category {
				continue
			}
			out.Println("  %s", taskPlanLine(t))
		}
	}

	out.Section("Install Order")
	for i, t := range ordered {
		out.Println("  %2d. %s", i+1, t.ID)
	}
}

func showMarkdown(rf *formula.ResolvedFormula, ordered []formula.ResolvedTask) {
	out.Println("# %s %s", rf.Name, rf.Version)
	if rf.Description != "" {
		out.Println("")
		out.Println("%s", rf.Description)
	}

	for _, category := range categoriesInOrder(rf.Tasks) {
		out.Println("")
		out.Println("## %s", titleCaser.String(category))
		out.Println("")
		for _, t := range rf.Tasks {
			if t.Category != category {
				continue
			}
			out.Println("- %s", taskPlanLine(t))
		}
	}

	out.Println("")
	out.Println("## Install Order")
	out.Println("")
	for i, t := range ordered {
		out.Println("%d. %s", i+1, t.ID)
	}
}

// taskPlanLine renders one task's plan entry: id, constraint, step
// count, dependencies.
func taskPlanLine(t formula.ResolvedTask) string {
	var b strings.Builder
	b.WriteString(t.ID)
	if t.Constraint != "" {
		b.WriteString(" ")
		b.WriteString(t.Constraint)
	}
	if n := len(t.Steps); n == 1 {
		b.WriteString(" (1 step)")
	} else {
		fmt.Fprintf(&b, " (%d steps)", n)
	}
	if len(t.Dependencies) > 0 {
		b.WriteString(", needs ")
		b.WriteString(strings.Join(t.Dependencies, ", "))
	}
	return b.String()
}

// categoriesInOrder lists categories by first appearance in the task
// list.
func categoriesInOrder(tasks []formula.ResolvedTask) []string {
	var order []string
	seen := make(map[string]bool)
	for _, t := range tasks {
		if !seen[t.Category] {
			seen[t.Category] = true
			order = append(order, t.Category)
		}
	}
	return order
}
