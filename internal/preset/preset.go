// Package preset loads the commit message preset from the repository root.
package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/eykd/acp-go/internal/domain"
)

// FileNames lists the preset files looked up in the repository root, in
// order of precedence.
var FileNames = []string{".acp.yaml", ".acp.yml", "acp.yaml"}

// ErrMalformed is returned when a preset file exists but cannot be decoded.
var ErrMalformed = errors.New("malformed preset")

// ReservedActions are the subcommand names of acp. An action with one of
// these keys could never be passed as the first argument.
var ReservedActions = []string{"check", "completion", "help", "preset", "version"}

// file is the on-disk shape of a preset.
type file struct {
	Name         string            `yaml:"name"`
	Contributors []string          `yaml:"contributors"`
	Template     string            `yaml:"template"`
	Actions      map[string]string `yaml:"actions"`
	Targets      map[string]string `yaml:"targets"`
}

// Default returns the preset used when the repository has no preset file.
// Its template only takes a message and its tables are empty, so action
// and target arguments are reported as excess.
func Default() domain.Preset {
	return domain.Preset{
		Name:     "default",
		Template: domain.PlaceholderMessage,
		Actions:  map[string]string{},
		Targets:  map[string]string{},
	}
}

// Load reads the first preset file found in root. It returns the preset
// and the path it was read from, or Default and an empty path when no
// preset file exists.
func Load(root string) (domain.Preset, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return domain.Preset{}, path, fmt.Errorf("reading preset %s: %w", path, err)
		}
		p, err := Parse(data)
		if err != nil {
			return domain.Preset{}, path, fmt.Errorf("%s: %w", path, err)
		}
		return p, path, nil
	}
	return Default(), "", nil
}

// Parse decodes a preset document. Unknown fields are rejected and table
// keys are normalized to NFC.
func Parse(data []byte) (domain.Preset, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return domain.Preset{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if f.Template == "" {
		return domain.Preset{}, fmt.Errorf("%w: template is empty", ErrMalformed)
	}

	actions, err := normalizeKeys("actions", f.Actions)
	if err != nil {
		return domain.Preset{}, err
	}
	for _, k := range ReservedActions {
		if _, ok := actions[k]; ok {
			return domain.Preset{}, fmt.Errorf("%w: action %q is a subcommand name", ErrMalformed, k)
		}
	}
	targets, err := normalizeKeys("targets", f.Targets)
	if err != nil {
		return domain.Preset{}, err
	}

	return domain.Preset{
		Name:         f.Name,
		Contributors: f.Contributors,
		Template:     f.Template,
		Actions:      actions,
		Targets:      targets,
	}, nil
}

// normalizeKeys rewrites table keys to NFC. Two keys that only differ in
// normalization form are rejected.
func normalizeKeys(table string, entries map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for k, v := range entries {
		nk := norm.NFC.String(k)
		if _, dup := out[nk]; dup {
			return nil, fmt.Errorf("%w: %s key %q is defined twice", ErrMalformed, table, nk)
		}
		out[nk] = v
	}
	return out, nil
}
