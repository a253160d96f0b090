package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/outfitterhq/outfitter/internal/errors"
	"github.com/outfitterhq/outfitter/internal/formula"
	"github.com/outfitterhq/outfitter/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check formula and task documents without executing anything",
	Long: `Validate parses each document, checks it against the published JSON
schema, and verifies every structural invariant the installer relies
on. A document with a tasks array is validated as a formula, one with
a steps array as a task definition. Unknown fields are reported as
warnings and never fail validation.

Without arguments, validate checks the discovered formula file.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		path, err := formula.Discover()
		if err != nil {
			return err
		}
		paths = []string{path}
	}

	failed := 0
	for _, path := range paths {
		if err := validateFile(path); err != nil {
			out.CheckFail(path, err.Error())
			failed++
			continue
		}
		out.ValidationSuccess("%s is valid", path)
	}

	if failed > 0 {
		return errors.Validationf("", "%d of %d documents failed validation", failed, len(paths))
	}
	return nil
}

// validateFile validates one document, routing it to the formula or
// task validator by shape.
func validateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	format := formula.FormatForPath(path)
	doc, err := formula.DecodeDocument(data, format)
	if err != nil {
		return err
	}

	if _, isTask := doc["steps"]; isTask {
		if err := schema.ValidateTaskDoc(doc); err != nil {
			return err
		}
		_, warnings, err := formula.ParseTask(data, format)
		for _, w := range warnings {
			out.Warning("%s: %s", path, w)
		}
		return err
	}

	if err := schema.ValidateFormulaDoc(doc); err != nil {
		return err
	}
	_, warnings, err := formula.ParseFormula(data, format)
	for _, w := range warnings {
		out.Warning("%s: %s", path, w)
	}
	return err
}
