package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/outfitterhq/outfitter/internal/errors"
	"github.com/outfitterhq/outfitter/internal/formula"
)

var initYes bool

const defaultFormulaFile = "outfitter.yaml"

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a starter formula in the current directory",
	Long: `Init writes an outfitter.yaml with a small set of catalog tasks to
build on. The optional argument names the formula; the default is
my-machine.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "overwrite an existing formula without asking")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	name := "my-machine"
	if len(args) > 0 {
		name = args[0]
	}

	if _, err := os.Stat(defaultFormulaFile); err == nil && !initYes {
		if !confirm(defaultFormulaFile + " already exists. Overwrite it?") {
			return errors.New("init aborted")
		}
	}

	if err := formula.Save(defaultFormulaFile, starterFormula(name)); err != nil {
		return err
	}

	out.Success("created %s", defaultFormulaFile)
	out.Hint("run 'outfitter show' to see the plan, then 'outfitter install --dry-run'")
	return nil
}

func starterFormula(name string) *formula.Formula {
	return &formula.Formula{
		Name:       name,
		Version:    "1.0.0",
		Updated:    timeNowFunc().UTC().Format("2006-01-02"),
		Categories: []string{"essentials"},
		Tasks: []formula.TaskRef{
			{ID: "git", Category: "essentials"},
			{ID: "curl", Category: "essentials"},
			{ID: "jq", Category: "essentials"},
		},
	}
}
