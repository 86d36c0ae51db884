// Package domain holds the value types shared by validation and publishing.
package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Template placeholders filled positionally from the command arguments.
const (
	PlaceholderMessage = "<message>"
	PlaceholderAction  = "<action>"
	PlaceholderTarget  = "<target>"
)

// Table names used when reporting unknown keys.
const (
	TableActions = "actions"
	TableTargets = "targets"
)

// Preset defines a commit-message template and the action and target
// vocabulary allowed to fill it.
type Preset struct {
	Name         string
	Contributors []string
	Template     string
	Actions      map[string]string
	Targets      map[string]string
}

// ActionKeys returns the action keys in sorted order.
func (p Preset) ActionKeys() []string { return sortedKeys(p.Actions) }

// TargetKeys returns the target keys in sorted order.
func (p Preset) TargetKeys() []string { return sortedKeys(p.Targets) }

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderCommitMessage fills p's template from d. The action and target
// placeholders are replaced by the preset's value for the chosen key,
// matched after NFC normalization.
func RenderCommitMessage(p Preset, d ActionDescriptor) string {
	pairs := []string{PlaceholderMessage, d.Message()}
	if action, ok := d.Action(); ok {
		pairs = append(pairs, PlaceholderAction, lookup(p.Actions, action))
	}
	if target, ok := d.Target(); ok {
		pairs = append(pairs, PlaceholderTarget, lookup(p.Targets, target))
	}
	return strings.NewReplacer(pairs...).Replace(p.Template)
}

func lookup(table map[string]string, key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return table[norm.NFC.String(key)]
}
