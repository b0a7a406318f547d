package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/matchstore/internal/match"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database      string
	Game          string
	Gameover      string // "", "true" or "false"
	UpdatedBefore int64
	UpdatedAfter  int64
}

// ListResult holds the list command output.
type ListResult struct {
	Matches []string `json:"matches"`
	Count   int      `json:"count"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List match ids, newest first",
		Long: `List match ids ordered by last update, newest first. Filters combine
with AND. --gameover filters on the presence of a gameover field in the
metadata payload; timestamps are unix milliseconds with strict bounds.

Examples:
  matchstore list --db ./matches.db
  matchstore list --db ./matches.db --game chess --gameover false
  matchstore list --db ./matches.db --updated-after 1700000000000`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Game, "game", "", "filter by game kind label")
	cmd.Flags().StringVar(&opts.Gameover, "gameover", "", "filter by gameover presence (true|false)")
	cmd.Flags().Int64Var(&opts.UpdatedBefore, "updated-before", 0, "only matches updated strictly before (unix ms)")
	cmd.Flags().Int64Var(&opts.UpdatedAfter, "updated-after", 0, "only matches updated strictly after (unix ms)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	filter := match.ListFilter{
		GameName:      opts.Game,
		UpdatedBefore: opts.UpdatedBefore,
		UpdatedAfter:  opts.UpdatedAfter,
	}
	switch opts.Gameover {
	case "":
	case "true":
		v := true
		filter.Gameover = &v
	case "false":
		v := false
		filter.Gameover = &v
	default:
		return WrapExitError(ExitCommandError, "invalid --gameover",
			fmt.Errorf("%q: must be true or false", opts.Gameover))
	}

	st, err := openStore(opts.Database, opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer st.Close()

	ids, err := st.ListMatches(context.Background(), filter)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list matches", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return out.JSON(ListResult{Matches: ids, Count: len(ids)})
	}

	for _, id := range ids {
		out.Textf("%s", id)
	}
	if opts.Verbose {
		out.Textf("%d match(es)", len(ids))
	}
	return nil
}
