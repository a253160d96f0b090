// Package cli implements the outfitter command-line interface.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/outfitterhq/outfitter/internal/errors"
	"github.com/outfitterhq/outfitter/internal/output"
)

// Version is the CLI version, set at build time via ldflags.
var Version = "dev"

// out is the shared output writer for all commands.
var out = output.New()

var (
	flagQuiet   bool
	flagVerbose bool
	flagNoColor bool
)

// Commands that should never end with an update notification.
var notificationExemptCommands = map[string]bool{
	"completion": true,
	"__complete": true,
	"help":       true,
}

var rootCmd = &cobra.Command{
	Use:     "outfitter",
	Short:   "Set up a developer machine from a declarative formula",
	Version: Version,
	Long: `Outfitter installs developer tooling from a formula: a named, versioned
list of tasks grouped into categories. Tasks come from the builtin
catalog or from a remote task repository, are ordered by their declared
dependencies, and are skipped when the installed version already
satisfies the formula's constraint, so re-running a formula is safe.`,
	SilenceErrors:    true,
	SilenceUsage:     true,
	PersistentPreRun: persistentPreRun,
}

func persistentPreRun(cmd *cobra.Command, args []string) {
	out.SetQuiet(flagQuiet)
	out.SetVerbose(flagVerbose)
	if flagNoColor {
		out.SetColor(false)
	}

	initUpdateCheck(flagQuiet)
	if notificationExemptCommands[cmd.Name()] {
		skipUpdateNotification()
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print extra diagnostic output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and returns the process exit code.
// The caller (main) should pass it to os.Exit. Interrupts cancel the
// command context; a running install finishes its current task and
// stops.
func Execute() int {
	defer showUpdateNotification()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		out.ErrorPrefix("%s", err)
		return errors.GetExitCode(err)
	}
	return 0
}
