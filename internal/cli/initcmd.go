package cli

import (
	"github.com/spf13/cobra"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Database string
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create or migrate a match store database",
		Long: `Create the match store database if it does not exist, applying the
schema and required pragmas. Safe to run against an existing database.

Examples:
  matchstore init --db ./matches.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	st, err := openStore(opts.Database, opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := st.Close(); err != nil {
		return WrapExitError(ExitCommandError, "failed to close database", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return out.JSON(map[string]string{"database": opts.Database})
	}
	out.Textf("initialized %s", opts.Database)
	return nil
}
