package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/matchstore/internal/match"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Database string
	ID       string
	Game     string
	Seq      int64
	State    string
	Metadata string
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new match",
		Long: `Create a new match row. When --id is omitted a time-sortable UUIDv7
is generated. --state and --metadata take opaque JSON payloads; the
store only reads the sequence number and the gameover field presence.

Examples:
  matchstore create --db ./matches.db --game chess
  matchstore create --db ./matches.db --game chess --id m1 --state '{"board":[]}'`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.ID, "id", "", "match id (default: generated UUIDv7)")
	cmd.Flags().StringVar(&opts.Game, "game", "", "game kind label used for listing filters")
	cmd.Flags().Int64Var(&opts.Seq, "seq", 0, "initial state sequence number")
	cmd.Flags().StringVar(&opts.State, "state", "", "initial state payload as JSON")
	cmd.Flags().StringVar(&opts.Metadata, "metadata", "", "metadata payload as JSON")

	return cmd
}

func runCreate(opts *CreateOptions, cmd *cobra.Command) error {
	id := opts.ID
	if id == "" {
		id = match.UUIDv7Generator{}.Generate()
	}

	createOpts, err := buildCreateOpts(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid payload", err)
	}

	st, err := openStore(opts.Database, opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.CreateMatch(context.Background(), id, createOpts); err != nil {
		return WrapExitError(ExitFailure, "failed to create match", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return out.JSON(map[string]string{"id": id})
	}
	out.Textf("%s", id)
	return nil
}

// buildCreateOpts assembles the initial payloads from the flag values.
func buildCreateOpts(opts *CreateOptions) (match.CreateOpts, error) {
	var created match.CreateOpts

	if opts.State != "" || opts.Seq != 0 {
		data := json.RawMessage(opts.State)
		if opts.State != "" && !json.Valid(data) {
			return match.CreateOpts{}, fmt.Errorf("--state is not valid JSON")
		}
		if opts.State == "" {
			data = nil
		}
		created.InitialState = &match.State{Seq: opts.Seq, Data: data}
	}

	if opts.Metadata != "" || opts.Game != "" {
		md := &match.Metadata{GameName: opts.Game}
		if opts.Metadata != "" {
			if !json.Valid(json.RawMessage(opts.Metadata)) {
				return match.CreateOpts{}, fmt.Errorf("--metadata is not valid JSON")
			}
			md.Data = json.RawMessage(opts.Metadata)
		}
		created.Metadata = md
	}

	return created, nil
}
