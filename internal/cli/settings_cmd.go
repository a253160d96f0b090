package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/outfitterhq/outfitter/internal/errors"
	"github.com/outfitterhq/outfitter/internal/settings"
)

// saveSettingsFunc allows tests to intercept settings writes.
var saveSettingsFunc = settings.Save

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and change user-level settings",
	Long: `Settings live in a JSON file under the user config directory and
apply to every formula. Known keys:

  update-check     whether the CLI may look for new releases (true/false)
  default-formula  formula path used when discovery finds nothing`,
	RunE: requireSubcommand,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// requireSubcommand rejects a bare parent command instead of silently
// printing help with exit 0.
func requireSubcommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.Newf("%s requires a subcommand, run '%s --help' for usage", cmd.Name(), cmd.CommandPath())
	}
	return errors.Newf("unknown subcommand %q, run '%s --help' for usage", args[0], cmd.CommandPath())
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	s := loadSettingsFunc()

	if len(args) == 0 {
		out.Table([]string{"KEY", "VALUE"}, [][]string{
			{"update-check", strconv.FormatBool(s.IsUpdateCheckEnabled())},
			{"default-formula", s.DefaultFormula},
		})
		return nil
	}

	switch args[0] {
	case "update-check":
		out.Println("%v", s.IsUpdateCheckEnabled())
	case "default-formula":
		out.Println("%s", s.DefaultFormula)
	default:
		return errors.Validationf("", "unknown setting %q (known: update-check, default-formula)", args[0])
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	s := loadSettingsFunc()

	switch key {
	case "update-check":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Validationf("", "update-check needs true or false, got %q", value)
		}
		s.UpdateCheck = &enabled
	case "default-formula":
		s.DefaultFormula = value
	default:
		return errors.Validationf("", "unknown setting %q (known: update-check, default-formula)", key)
	}

	if err := saveSettingsFunc(s); err != nil {
		return err
	}
	out.Success("%s = %s", key, value)
	return nil
}
