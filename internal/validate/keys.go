package validate

import (
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/eykd/acp-go/internal/domain"
	"github.com/eykd/acp-go/internal/outcome"
)

// Exist succeeds if key names an entry of table. Keys are compared in NFC
// so composed and decomposed spellings of the same token match.
func Exist(key string, table map[string]string, tableName string) outcome.Outcome[outcome.Unit] {
	if _, ok := table[key]; ok {
		return outcome.OK
	}
	want := norm.NFC.String(key)
	known := make([]string, 0, len(table))
	for k := range table {
		if norm.NFC.String(k) == want {
			return outcome.OK
		}
		known = append(known, k)
	}
	sort.Strings(known)
	return outcome.Failure[outcome.Unit](outcome.UnknownKey(key, tableName, known))
}

// keyChecks evaluates the preset lookups for the action and target tokens
// present in args.
func keyChecks(args domain.Arguments, preset domain.Preset) []outcome.Outcome[outcome.Unit] {
	var checks []outcome.Outcome[outcome.Unit]
	if action, ok := args.Action(); ok {
		checks = append(checks, Exist(action, preset.Actions, domain.TableActions))
	}
	if target, ok := args.Target(); ok {
		checks = append(checks, Exist(target, preset.Targets, domain.TableTargets))
	}
	return checks
}

// ValidatePreset runs the template and key checks for args as one
// accumulating group. An unsupported argument count fails before the group
// runs.
func ValidatePreset(args domain.Arguments, preset domain.Preset) outcome.Outcome[outcome.Unit] {
	return outcome.AndThen(
		func() outcome.Outcome[int] { return argumentCount(args.Positional) },
		func(n int) outcome.Outcome[outcome.Unit] {
			checks := templateChecks(n, preset.Template)
			checks = append(checks, keyChecks(args, preset)...)
			return outcome.AllOf(checks...)
		},
	)
}
