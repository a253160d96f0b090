package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/outfitterhq/outfitter/internal/docs"
)

var (
	docsTemplate string
	docsOutput   string
)

var docsCmd = &cobra.Command{
	Use:   "docs [formula]",
	Short: "Render formula documentation from a template",
	Long: `Docs renders a markdown document describing the formula: its tools,
constraints, and install order. The builtin template produces a
machine-setup README; --template substitutes your own, with these
placeholders available:

  ` + strings.Join(docs.Available(), ", "),
	Args: cobra.MaximumNArgs(1),
	RunE: runDocs,
}

func init() {
	docsCmd.Flags().StringVar(&docsTemplate, "template", "", "markdown template file with $NAME$ placeholders")
	docsCmd.Flags().StringVar(&docsOutput, "output", "", "write to a file instead of stdout")
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) error {
	rf, ordered, err := loadResolvedPlan(cmd.Context(), args)
	if err != nil {
		return err
	}

	template := docs.DefaultTemplate
	if docsTemplate != "" {
		data, err := os.ReadFile(docsTemplate)
		if err != nil {
			return err
		}
		template = string(data)
	}

	rendered, warnings := docs.Render(template, &docs.Context{
		Formula:       rf,
		Ordered:       ordered,
		EngineVersion: Version,
	})
	for _, w := range warnings {
		out.Warning("%s", w)
	}

	if docsOutput == "" {
		out.Print("%s", rendered)
		return nil
	}
	if err := os.WriteFile(docsOutput, []byte(rendered), 0644); err != nil {
		return err
	}
	out.Success("wrote %s", docsOutput)
	return nil
}
