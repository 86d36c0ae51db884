package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eykd/acp-go/internal/console"
)

// Request carries the command-line input to the validation pipeline.
type Request struct {
	Positional []string
	Sources    []string
}

// Issue is a single validation error as reported to the user.
type Issue struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// CheckResult holds the outcome of a validation-only run. Root and Message
// are set only when there are no errors.
type CheckResult struct {
	Errors  []Issue `json:"errors"`
	Root    string  `json:"root,omitempty"`
	Message string  `json:"message,omitempty"`
}

// CheckRunner defines the interface for running the pre-flight checks.
type CheckRunner interface {
	Check(ctx context.Context, req Request) (*CheckResult, error)
}

// checkJSONResponse is the JSON output structure for the check command.
type checkJSONResponse struct {
	Errors  []Issue `json:"errors"`
	Root    string  `json:"root,omitempty"`
	Message string  `json:"message,omitempty"`
	Summary struct {
		Errors int `json:"errors"`
	} `json:"summary"`
}

func formatCheckJSON(w io.Writer, res *CheckResult) {
	out := checkJSONResponse{Errors: res.Errors, Root: res.Root, Message: res.Message}
	if out.Errors == nil {
		out.Errors = []Issue{}
	}
	out.Summary.Errors = len(res.Errors)
	writeJSON(w, out)
}

// formatIssues writes one styled line per issue followed by a count.
func formatIssues(w io.Writer, issues []Issue) {
	p := console.New(w)
	for _, issue := range issues {
		fmt.Fprintln(w, p.Error(issue.Message))
	}
	fmt.Fprintf(w, "\n%d error(s)\n", len(issues))
}

func formatCheckHuman(w io.Writer, res *CheckResult) {
	p := console.New(w)
	fmt.Fprintln(w, p.Success("ready to commit"))
	fmt.Fprintln(w, p.Field("root", res.Root))
	fmt.Fprintln(w, p.Field("message", res.Message))
}

// NewCheckCmd creates the check command with the given runner.
func NewCheckCmd(runner CheckRunner) *cobra.Command {
	var sources []string

	cmd := &cobra.Command{
		Use:   "check [action] [target] <message>",
		Short: "Run the pre-flight checks without committing",
		Long: "check validates the arguments against the preset, the listed source files and\n" +
			"the repository state, and reports every problem it finds.",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runner.Check(cmd.Context(), Request{Positional: args, Sources: sources})
			if err != nil {
				return err
			}

			switch {
			case GetJSON():
				formatCheckJSON(cmd.OutOrStdout(), res)
			case len(res.Errors) > 0:
				formatIssues(cmd.ErrOrStderr(), res.Errors)
			default:
				formatCheckHuman(cmd.OutOrStdout(), res)
			}

			if len(res.Errors) > 0 {
				return &ValidationFailedError{Errors: len(res.Errors)}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&sources, "source", "S", nil, "Source file to stage (repeatable)")

	return cmd
}
