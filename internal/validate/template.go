// Package validate checks command arguments, source files and repository
// state before acp commits anything.
package validate

import (
	"strings"

	"github.com/eykd/acp-go/internal/domain"
	"github.com/eykd/acp-go/internal/outcome"
)

// need succeeds iff placeholder occurs exactly once in template.
func need(placeholder, template string) outcome.Outcome[outcome.Unit] {
	switch parts := strings.Split(template, placeholder); {
	case len(parts) == 2:
		return outcome.OK
	case len(parts) == 1:
		return outcome.Failure[outcome.Unit](outcome.TemplateMissing(placeholder, template))
	default:
		return outcome.Failure[outcome.Unit](outcome.TemplateDuplicate(placeholder, template))
	}
}

// excess succeeds iff placeholder does not occur in template.
func excess(placeholder, template string) outcome.Outcome[outcome.Unit] {
	if strings.Contains(template, placeholder) {
		return outcome.Failure[outcome.Unit](outcome.TemplateExcess(placeholder, template))
	}
	return outcome.OK
}

// argumentCount fails fast when args cannot be mapped onto a template.
func argumentCount(args []string) outcome.Outcome[int] {
	n := len(args)
	if n < 1 || n > 3 {
		return outcome.Failure[int](outcome.ArgumentCountMismatch(n))
	}
	return outcome.Success(n)
}

// templateChecks evaluates the placeholder checks for an argument count
// already known to be between 1 and 3.
func templateChecks(count int, template string) []outcome.Outcome[outcome.Unit] {
	switch count {
	case 1:
		return []outcome.Outcome[outcome.Unit]{
			need(domain.PlaceholderMessage, template),
			excess(domain.PlaceholderAction, template),
			excess(domain.PlaceholderTarget, template),
		}
	case 2:
		return []outcome.Outcome[outcome.Unit]{
			need(domain.PlaceholderMessage, template),
			need(domain.PlaceholderAction, template),
			excess(domain.PlaceholderTarget, template),
		}
	default:
		return []outcome.Outcome[outcome.Unit]{
			need(domain.PlaceholderMessage, template),
			need(domain.PlaceholderAction, template),
			need(domain.PlaceholderTarget, template),
		}
	}
}

// ValidateShape checks that template has exactly the placeholders the
// number of args can fill. Every placeholder mismatch is reported together.
func ValidateShape(args []string, template string) outcome.Outcome[outcome.Unit] {
	return outcome.AndThen(
		func() outcome.Outcome[int] { return argumentCount(args) },
		func(n int) outcome.Outcome[outcome.Unit] {
			return outcome.AllOf(templateChecks(n, template)...)
		},
	)
}
