package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/matchstore/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the matchstore CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "matchstore",
		Short: "Inspect and manage a match store database",
		Long: `matchstore manages the SQLite database a game-session host stores
its matches in: per-match state snapshots, append-only action logs,
and metadata, with filtered listing.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (traces operations and query text)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewWipeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// openStore opens the backing database, wiring the store's diagnostic
// tracing to stderr when --verbose is set.
func openStore(path string, opts *RootOptions, errWriter io.Writer) (*store.Store, error) {
	var storeOpts []store.Option
	if opts.Verbose {
		if errWriter == nil {
			errWriter = os.Stderr
		}
		logger := slog.New(slog.NewTextHandler(errWriter, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		storeOpts = append(storeOpts, store.WithLogger(logger))
	}

	st, err := store.Open(path, storeOpts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}
