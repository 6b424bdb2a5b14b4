package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/hyprnav/internal/hypr"
	"github.com/danieljhkim/hyprnav/internal/navigator"
)

// Exit codes other than a propagated compositor status.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// rootCmd is the root command for hyprnav.
var rootCmd = &cobra.Command{
	Use:     "hyprnav next|prev",
	Version: "dev",
	Short:   "Step to the next or previous active workspace on the focused monitor",
	Long: `hyprnav moves focus to the next or previous workspace on the focused monitor.

Order follows the workspace= rules in the Hyprland config. Only workspaces that
have windows on the focused monitor are visited, and stepping past either end does
nothing. Bind it to a key; it prints nothing unless Hyprland cannot be reached.`,
	Args:          directionArgs,
	ValidArgs:     []string{string(navigator.Next), string(navigator.Prev)},
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := navigator.ParseDirection(args[0])
		if err != nil {
			return err
		}

		env, err := newEnv()
		if err != nil {
			return err
		}
		defer env.close()

		_, err = env.navigator.Run(cmd.Context(), dir)
		return err
	},
}

// errUsage marks command-line mistakes: a wrong argument count, an unknown
// direction or an unknown flag.
var errUsage = errors.New("usage error")

func directionArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)(cmd, args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

func flagError(cmd *cobra.Command, err error) error {
	return fmt.Errorf("%w: %v", errUsage, err)
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// customHelpFunc renders help with colored section titles.
func customHelpFunc(cmd *cobra.Command, args []string) {
	var help strings.Builder

	if cmd.Long != "" {
		help.WriteString(cmd.Long)
		help.WriteString("\n\n")
	}

	help.WriteString(sectionTitleColor.Sprint("Usage:"))
	help.WriteString("\n")
	fmt.Fprintf(&help, "  %s\n\n", cmd.UseLine())

	help.WriteString(sectionTitleColor.Sprint("Environment:"))
	help.WriteString("\n")
	for _, env := range envHelp {
		fmt.Fprintf(&help, "  %-22s %s\n", env[0], env[1])
	}
	help.WriteString("\n")

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailablePersistentFlags() {
		help.WriteString(sectionTitleColor.Sprint("Flags:"))
		help.WriteString("\n")
		help.WriteString(cmd.LocalFlags().FlagUsages())
		help.WriteString(cmd.InheritedFlags().FlagUsages())
	}

	fmt.Fprint(cmd.OutOrStdout(), help.String())
}

var envHelp = [][2]string{
	{"HYPRNAV_HYPR_CONFIG", "Hyprland config scanned for workspace= rules"},
	{"HYPRNAV_ROOT", "directory holding config.yaml"},
	{"HYPRNAV_LOG_FILE", "log file (default $XDG_CACHE_HOME/hypr/hyprnav.log)"},
	{"HYPRNAV_DEBUG", "log every decision at debug level"},
}

func init() {
	rootCmd.SetHelpFunc(customHelpFunc)
	rootCmd.SetFlagErrorFunc(flagError)
}

// Execute executes the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext executes the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ExitCode maps an Execute error to the process exit status.
// Compositor query failures keep the failing tool's own status.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var qerr *hypr.QueryError
	if errors.As(err, &qerr) && qerr.ExitCode > 0 {
		return qerr.ExitCode
	}
	if isUsageError(err) {
		return exitUsage
	}
	return exitError
}

// isUsageError reports argument validation failures raised by the command
// line parser or ParseDirection.
func isUsageError(err error) bool {
	return errors.Is(err, errUsage) || errors.Is(err, navigator.ErrInvalidDirection)
}
