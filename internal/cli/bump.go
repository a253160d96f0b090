package cli

import (
	"github.com/spf13/cobra"

	"github.com/outfitterhq/outfitter/internal/formula"
	"github.com/outfitterhq/outfitter/internal/version"
)

var bumpCmd = &cobra.Command{
	Use:   "bump [formula] [major|minor|patch]",
	Short: "Increment a formula's version",
	Long: `Bump raises the formula's version, refreshes its updated date, and
rewrites the file in place. Recognized fields survive the rewrite
unchanged. The part defaults to patch.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runBump,
}

func init() {
	rootCmd.AddCommand(bumpCmd)
}

func runBump(cmd *cobra.Command, args []string) error {
	path, part := "", "patch"
	switch len(args) {
	case 2:
		path, part = args[0], args[1]
	case 1:
		// A lone argument is a part name or a file path.
		if isBumpPart(args[0]) {
			part = args[0]
		} else {
			path = args[0]
		}
	}

	if path == "" {
		var err error
		path, err = formula.Discover()
		if err != nil {
			return err
		}
	}

	f, warnings, err := formula.LoadFormula(path)
	for _, w := range warnings {
		out.Warning("%s", w)
	}
	if err != nil {
		return err
	}

	next, err := version.Bump(f.Version, part)
	if err != nil {
		return err
	}

	prev := f.Version
	f.Version = next
	f.Updated = timeNowFunc().UTC().Format("2006-01-02")

	if err := formula.Save(path, f); err != nil {
		return err
	}

	out.Success("%s: %s -> %s", f.Name, prev, next)
	return nil
}

func isBumpPart(s string) bool {
	switch s {
	case "major", "minor", "patch":
		return true
	}
	return false
}
