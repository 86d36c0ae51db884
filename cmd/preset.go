package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eykd/acp-go/internal/console"
)

// PresetEntry is one key of the actions or targets table.
type PresetEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PresetResult describes the preset in effect for the repository.
type PresetResult struct {
	Name         string        `json:"name"`
	Source       string        `json:"source"`
	Contributors []string      `json:"contributors"`
	Template     string        `json:"template"`
	Actions      []PresetEntry `json:"actions"`
	Targets      []PresetEntry `json:"targets"`
}

// PresetRunner defines the interface for loading the preset.
type PresetRunner interface {
	Preset(ctx context.Context) (*PresetResult, error)
}

// NewPresetCmd creates the preset command with the given runner.
func NewPresetCmd(runner PresetRunner) *cobra.Command {
	return &cobra.Command{
		Use:          "preset",
		Short:        "Show the commit message preset in use",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runner.Preset(cmd.Context())
			if err != nil {
				return err
			}
			if GetJSON() {
				writeJSON(cmd.OutOrStdout(), res)
				return nil
			}

			w := cmd.OutOrStdout()
			p := console.New(w)
			source := res.Source
			if source == "" {
				source = "built-in default"
			}
			fmt.Fprintln(w, p.Field("preset", res.Name))
			fmt.Fprintln(w, p.Field("source", source))
			if len(res.Contributors) > 0 {
				fmt.Fprintln(w, p.Field("contributors", strings.Join(res.Contributors, ", ")))
			}
			fmt.Fprintln(w, p.Field("template", res.Template))
			writeEntries(w, p, "targets", res.Targets)
			writeEntries(w, p, "actions", res.Actions)
			return nil
		},
	}
}

func writeEntries(w io.Writer, p *console.Printer, label string, entries []PresetEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintln(w, strings.TrimRight(p.Field(label, ""), " "))
	for _, e := range entries {
		fmt.Fprintln(w, p.ListItem(e.Key+" → "+e.Value))
	}
}
