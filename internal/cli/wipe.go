package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// WipeOptions holds flags for the wipe command.
type WipeOptions struct {
	*RootOptions
	Database string
}

// NewWipeCommand creates the wipe command.
func NewWipeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WipeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "wipe <match-id>",
		Short: "Delete a match and its action log",
		Long: `Delete a match row; the cascade removes its entire action log.
Wiping an unknown id is a silent no-op.

Examples:
  matchstore wipe m1 --db ./matches.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWipe(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runWipe(opts *WipeOptions, id string, cmd *cobra.Command) error {
	st, err := openStore(opts.Database, opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Wipe(context.Background(), id); err != nil {
		return WrapExitError(ExitFailure, "failed to wipe match", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return out.JSON(map[string]string{"wiped": id})
	}
	out.Textf("wiped %s", id)
	return nil
}
