package cli

import (
	"github.com/spf13/cobra"

	"github.com/outfitterhq/outfitter/internal/catalog"
	"github.com/outfitterhq/outfitter/internal/engine"
	"github.com/outfitterhq/outfitter/internal/errors"
	"github.com/outfitterhq/outfitter/internal/executor"
	"github.com/outfitterhq/outfitter/internal/formula"
	"github.com/outfitterhq/outfitter/internal/resolver"
	"github.com/outfitterhq/outfitter/internal/runlock"
	"github.com/outfitterhq/outfitter/internal/vercheck"
	"github.com/outfitterhq/outfitter/internal/version"
)

var (
	installDryRun     bool
	installForce      bool
	installSkipChecks bool
	installContinue   bool
	installYes        bool
	installOnlyTasks  []string
	installCategories []string
)

// runLockPathFunc allows tests to redirect the run lock.
var runLockPathFunc = runlock.DefaultPath

var installCmd = &cobra.Command{
	Use:   "install [formula]",
	Short: "Resolve a formula and install its tasks",
	Long: `Install resolves the formula's task references against the builtin
catalog (and its remote task repository, when one is configured),
orders the tasks by their dependencies, and runs each task's install
steps. Tasks whose installed version already satisfies the formula's
constraint are skipped.

Without an argument, install looks for outfitter.yaml or a
*.formula.{yaml,yml,toml} file in the current directory or any parent,
then falls back to the default formula from the user settings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "print the commands that would run without executing anything")
	installCmd.Flags().BoolVar(&installForce, "force", false, "install even when the current version satisfies the constraint")
	installCmd.Flags().BoolVar(&installSkipChecks, "skip-version-check", false, "do not probe installed versions before installing")
	installCmd.Flags().BoolVar(&installContinue, "continue-on-error", false, "keep going after a task fails")
	installCmd.Flags().BoolVarP(&installYes, "yes", "y", false, "assume yes for confirmation prompts")
	installCmd.Flags().StringArrayVar(&installOnlyTasks, "task", nil, "install only this task id (repeatable)")
	installCmd.Flags().StringArrayVar(&installCategories, "category", nil, "install only this category (repeatable)")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	path, err := resolveFormulaPath(args)
	if err != nil {
		return err
	}

	f, err := loadFormulaFile(path)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	cat, err := catalog.Builtin()
	if err != nil {
		return err
	}
	rf, err := resolver.New(cat).ResolveFormula(ctx, f)
	if err != nil {
		return err
	}

	if needsSudo(rf) && !installYes && !installDryRun {
		if !confirm("This formula runs steps with sudo. Continue?") {
			return errors.New("install aborted")
		}
	}

	if !installDryRun {
		lock, err := runlock.Acquire(runLockPathFunc())
		if err != nil {
			return err
		}
		defer lock.Release()
	}

	steps := executor.NewStepExecutor()
	steps.Vars = rf.Variables
	eng := engine.New(steps, vercheck.New(), &consoleEvents{out: out})

	opts := engine.Options{
		SelectedTasks:      installOnlyTasks,
		SelectedCategories: installCategories,
		DryRun:             installDryRun,
		ForceInstall:       installForce,
		SkipVersionCheck:   installSkipChecks,
		ContinueOnError:    installContinue,
	}

	if installDryRun {
		out.DryRunStart()
	}
	result := eng.Execute(ctx, rf, opts)
	if installDryRun {
		out.DryRunEnd()
	}

	renderSummary(result, installDryRun)

	switch {
	case !result.Success && ctx.Err() != nil:
		return errors.New("install aborted")
	case !result.Success:
		return errors.New("install failed")
	}
	return nil
}

// resolveFormulaPath picks the formula file: the explicit argument,
// then discovery from the working directory upward, then the settings
// default.
func resolveFormulaPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	path, err := formula.Discover()
	if err == nil {
		return path, nil
	}

	if def := loadSettingsFunc().DefaultFormula; def != "" {
		return def, nil
	}
	return "", err
}

// loadFormulaFile reads and validates a formula, surfaces unknown-field
// warnings, and enforces the minimum engine version.
func loadFormulaFile(path string) (*formula.Formula, error) {
	f, warnings, err := formula.LoadFormula(path)
	for _, w := range warnings {
		out.Warning("%s", w)
	}
	if err != nil {
		return nil, err
	}

	if f.MinVersion != "" && Version != "dev" && !version.Satisfies(Version, f.MinVersion) {
		return nil, errors.Validationf("minVersion",
			"formula %s requires outfitter %s, this is %s", f.Name, f.MinVersion, Version)
	}
	return f, nil
}

func needsSudo(rf *formula.ResolvedFormula) bool {
	if rf.RequireSudo {
		return true
	}
	for _, t := range rf.Tasks {
		if t.RequireSudo {
			return true
		}
	}
	return false
}
