// Package commands implements the CLI commands for the mk task runner.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/mk/internal/app"
	"go.trai.ch/mk/internal/build"
)

// CLI represents the command line interface for mk.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "mk [targets...]",
		Short:         "A declarative task runner",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.PersistentFlags().BoolP("force", "f", false, "Run targets even when they are up to date")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress progress output")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	// Positional arguments on the root are target names, so `mk test`
	// behaves like `mk run test`.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return c.runTargets(cmd, args)
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runTargets(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return c.app.Run(cmd.Context(), args, app.RunOptions{
		Force: force,
		Quiet: quiet,
	})
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
