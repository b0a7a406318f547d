package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/roach88/matchstore/internal/match"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database     string
	State        bool
	Metadata     bool
	InitialState bool
	Log          bool
}

// ShowResult is the JSON shape of one fetched match.
type ShowResult struct {
	ID           string            `json:"id"`
	State        *match.State      `json:"state,omitempty"`
	InitialState *match.State      `json:"initialState,omitempty"`
	Metadata     *match.Metadata   `json:"metadata,omitempty"`
	Log          []json.RawMessage `json:"log,omitempty"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <match-id>",
		Short: "Fetch one match",
		Long: `Fetch one match with field selection. With no field flags all fields
are requested. An unknown id prints an empty record; it is not an error.

Examples:
  matchstore show m1 --db ./matches.db
  matchstore show m1 --db ./matches.db --state --log`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().BoolVar(&opts.State, "state", false, "include current state")
	cmd.Flags().BoolVar(&opts.Metadata, "metadata", false, "include metadata")
	cmd.Flags().BoolVar(&opts.InitialState, "initial-state", false, "include initial state")
	cmd.Flags().BoolVar(&opts.Log, "log", false, "include the action log")

	return cmd
}

func runShow(opts *ShowOptions, id string, cmd *cobra.Command) error {
	fetchOpts := match.FetchOpts{
		State:        opts.State,
		Metadata:     opts.Metadata,
		InitialState: opts.InitialState,
		Log:          opts.Log,
	}
	// No field flags means everything.
	if !opts.State && !opts.Metadata && !opts.InitialState && !opts.Log {
		fetchOpts = match.FetchOpts{State: true, Metadata: true, InitialState: true, Log: true}
	}

	st, err := openStore(opts.Database, opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.Fetch(context.Background(), id, fetchOpts)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to fetch match", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return out.JSON(ShowResult{
			ID:           rec.ID,
			State:        rec.State,
			InitialState: rec.InitialState,
			Metadata:     rec.Metadata,
			Log:          rec.Log,
		})
	}

	out.Textf("id: %s", rec.ID)
	if rec.State != nil {
		out.Textf("state: seq=%d %s", rec.State.Seq, rec.State.Data)
	}
	if rec.InitialState != nil {
		out.Textf("initial state: seq=%d %s", rec.InitialState.Seq, rec.InitialState.Data)
	}
	if rec.Metadata != nil {
		gameover := "no"
		if rec.Metadata.HasGameover() {
			gameover = "yes"
		}
		out.Textf("metadata: game=%s gameover=%s %s", rec.Metadata.GameName, gameover, rec.Metadata.Data)
	}
	if rec.Log != nil {
		out.Textf("log: %d entries", len(rec.Log))
		if opts.Verbose {
			for i, entry := range rec.Log {
				out.Textf("  [%d] %s", i, entry)
			}
		}
	}
	return nil
}
