package outcome

import (
	"fmt"
	"strings"
)

// Kind identifies the category of a validation failure.
type Kind string

const (
	// KindArgumentCountMismatch indicates zero or more than three positional arguments.
	KindArgumentCountMismatch Kind = "argument_count_mismatch"
	// KindTemplateMissing indicates a required placeholder is absent from the template.
	KindTemplateMissing Kind = "template_missing"
	// KindTemplateDuplicate indicates a required placeholder occurs more than once.
	KindTemplateDuplicate Kind = "template_duplicate"
	// KindTemplateExcess indicates the template holds a placeholder no argument fills.
	KindTemplateExcess Kind = "template_excess"
	// KindUnknownKey indicates an action or target token is not a preset key.
	KindUnknownKey Kind = "unknown_key"
	// KindMissingFile indicates a listed source file does not exist.
	KindMissingFile Kind = "missing_file"
	// KindGitNotInstalled indicates the git binary could not be run.
	KindGitNotInstalled Kind = "git_not_installed"
	// KindNotInRepository indicates the working directory is outside a git work tree.
	KindNotInRepository Kind = "not_in_repository"
	// KindNothingToCommit indicates a clean working tree.
	KindNothingToCommit Kind = "nothing_to_commit"
	// KindPullRequired indicates the local branch differs from its upstream.
	KindPullRequired Kind = "pull_required"
)

// ValidationError is a single tagged validation failure. Values are built
// through the per-kind constructors below so the kind is always set.
type ValidationError struct {
	Kind    Kind
	Message string
	// Subject is the placeholder, key or path the failure is about, if any.
	Subject string
	// Table names the preset map for KindUnknownKey.
	Table string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

// ArgumentCountMismatch reports an unsupported number of positional arguments.
func ArgumentCountMismatch(count int) ValidationError {
	return ValidationError{
		Kind:    KindArgumentCountMismatch,
		Message: fmt.Sprintf("expected 1 to 3 arguments ([action] [target] <message>), got %d", count),
	}
}

// TemplateMissing reports a required placeholder absent from template.
func TemplateMissing(placeholder, template string) ValidationError {
	return ValidationError{
		Kind:    KindTemplateMissing,
		Message: fmt.Sprintf("template %q needs the placeholder %s", template, placeholder),
		Subject: placeholder,
	}
}

// TemplateDuplicate reports a placeholder that occurs more than once in template.
func TemplateDuplicate(placeholder, template string) ValidationError {
	return ValidationError{
		Kind:    KindTemplateDuplicate,
		Message: fmt.Sprintf("template %q contains the placeholder %s more than once", template, placeholder),
		Subject: placeholder,
	}
}

// TemplateExcess reports a placeholder in template that no argument fills.
func TemplateExcess(placeholder, template string) ValidationError {
	return ValidationError{
		Kind:    KindTemplateExcess,
		Message: fmt.Sprintf("template %q contains the placeholder %s but no argument fills it", template, placeholder),
		Subject: placeholder,
	}
}

// UnknownKey reports a token that is not a key of the named preset table.
// known lists the valid keys for the message; it may be empty.
func UnknownKey(key, table string, known []string) ValidationError {
	msg := fmt.Sprintf("%q is not one of the preset %s", key, table)
	if len(known) > 0 {
		msg += " (" + strings.Join(known, ", ") + ")"
	}
	return ValidationError{
		Kind:    KindUnknownKey,
		Message: msg,
		Subject: key,
		Table:   table,
	}
}

// MissingFile reports a listed source file that does not exist.
func MissingFile(path string) ValidationError {
	return ValidationError{
		Kind:    KindMissingFile,
		Message: fmt.Sprintf("source file %s does not exist", path),
		Subject: path,
	}
}

// GitNotInstalled reports that git could not be run.
func GitNotInstalled() ValidationError {
	return ValidationError{Kind: KindGitNotInstalled, Message: "git is not installed or not on PATH"}
}

// NotInRepository reports that the working directory is not inside a git work tree.
func NotInRepository() ValidationError {
	return ValidationError{Kind: KindNotInRepository, Message: "the current directory is not inside a git repository"}
}

// NothingToCommit reports a clean working tree.
func NothingToCommit() ValidationError {
	return ValidationError{Kind: KindNothingToCommit, Message: "the working tree is clean, there is nothing to commit"}
}

// PullRequired reports that the local branch and its upstream point at different commits.
func PullRequired() ValidationError {
	return ValidationError{Kind: KindPullRequired, Message: "the local branch is not up to date with its upstream, pull first"}
}

// ErrorList is an ordered list of validation errors. A list backing a
// failed Outcome always holds at least one error.
type ErrorList struct {
	errs []ValidationError
}

// NewErrorList builds a list from at least one error.
func NewErrorList(first ValidationError, rest ...ValidationError) ErrorList {
	errs := make([]ValidationError, 0, 1+len(rest))
	errs = append(errs, first)
	errs = append(errs, rest...)
	return ErrorList{errs: errs}
}

// Concat returns a new list holding l's errors followed by other's.
func (l ErrorList) Concat(other ErrorList) ErrorList {
	errs := make([]ValidationError, 0, len(l.errs)+len(other.errs))
	errs = append(errs, l.errs...)
	errs = append(errs, other.errs...)
	return ErrorList{errs: errs}
}

// Len returns the number of errors.
func (l ErrorList) Len() int { return len(l.errs) }

// Items returns a copy of the errors in order.
func (l ErrorList) Items() []ValidationError {
	out := make([]ValidationError, len(l.errs))
	copy(out, l.errs)
	return out
}

// Kinds returns the kind of each error in order.
func (l ErrorList) Kinds() []Kind {
	kinds := make([]Kind, len(l.errs))
	for i, e := range l.errs {
		kinds[i] = e.Kind
	}
	return kinds
}

// Error joins the messages one per line.
func (l ErrorList) Error() string {
	msgs := make([]string, len(l.errs))
	for i, e := range l.errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "\n")
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	out := make([]error, len(l.errs))
	for i, e := range l.errs {
		out[i] = e
	}
	return out
}
