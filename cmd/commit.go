package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/acp-go/internal/console"
)

// CommitResult holds the outcome of the validate-and-publish run.
type CommitResult struct {
	Errors   []Issue    `json:"errors,omitempty"`
	Root     string     `json:"root,omitempty"`
	Message  string     `json:"message,omitempty"`
	Commands [][]string `json:"commands,omitempty"`
	Applied  bool       `json:"applied"`
	Planned  bool       `json:"planned"`
}

// CommitRunner defines the interface for validating and publishing a change.
// When apply is false the git commands are planned but not run.
type CommitRunner interface {
	Commit(ctx context.Context, req Request, apply bool) (*CommitResult, error)
}

// NewCommitCmd creates the root command, which validates its arguments and
// then stages, commits and pushes.
func NewCommitCmd(runner CommitRunner) *cobra.Command {
	var sources []string

	cmd := NewRootCmd()
	cmd.Use = "acp [action] [target] <message>"
	cmd.Example = "  acp \"Fix typo in README\"\n" +
		"  acp fix \"typo in README\" -S README.md\n" +
		"  acp feat api \"add pagination\" --dry-run"
	// Any count is accepted so that a wrong count is reported alongside the
	// other validation errors instead of as a usage error.
	cmd.Args = cobra.ArbitraryArgs
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		isDryRun := GetDryRun()
		res, err := runner.Commit(cmd.Context(), Request{Positional: args, Sources: sources}, !isDryRun)
		if err != nil {
			return err
		}
		if isDryRun && len(res.Errors) == 0 {
			res.Planned = true
		}

		if GetJSON() {
			writeJSON(cmd.OutOrStdout(), res)
		} else if len(res.Errors) > 0 {
			formatIssues(cmd.ErrOrStderr(), res.Errors)
		} else {
			formatCommitHuman(cmd, res)
		}

		if len(res.Errors) > 0 {
			return &ValidationFailedError{Errors: len(res.Errors)}
		}
		return nil
	}

	cmd.Flags().StringArrayVarP(&sources, "source", "S", nil, "Source file to stage (repeatable); all changes are staged when omitted")

	return cmd
}

func formatCommitHuman(cmd *cobra.Command, res *CommitResult) {
	w := cmd.OutOrStdout()
	p := console.New(w)
	if res.Planned {
		fmt.Fprintln(w, p.Info("dry run, nothing was committed"))
	} else {
		fmt.Fprintln(w, p.Success("committed and pushed"))
	}
	fmt.Fprintln(w, p.Field("message", res.Message))
	if res.Planned {
		for _, argv := range res.Commands {
			fmt.Fprintln(w, p.Command(shellJoin(append([]string{"git"}, argv...))))
		}
	}
}
