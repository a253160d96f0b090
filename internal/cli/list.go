package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/outfitterhq/outfitter/internal/catalog"
)

var listTags []string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tasks in the builtin catalog",
	Long: `List prints every task the builtin catalog can resolve without a
remote task repository. Formulas reference these tasks by id.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringArrayVar(&listTags, "tag", nil, "only show tasks carrying this tag (repeatable)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Builtin()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, id := range cat.IDs() {
		task, ok := cat.Get(id)
		if !ok || !hasAnyTag(task.Tags, listTags) {
			continue
		}
		rows = append(rows, []string{task.ID, task.Name, strings.Join(task.Tags, ", ")})
	}

	out.Table([]string{"ID", "NAME", "TAGS"}, rows)
	return nil
}

func hasAnyTag(tags, want []string) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, t := range tags {
			if t == w {
				return true
			}
		}
	}
	return false
}
