package domain

// ActionDescriptor is the fully validated input to the publish stage. It is
// immutable: accessors return copies.
type ActionDescriptor struct {
	root      string
	action    string
	hasAction bool
	target    string
	hasTarget bool
	message   string
	sources   []string
}

// NewActionDescriptor builds a descriptor from the repository root and the
// validated arguments.
func NewActionDescriptor(root string, args Arguments) ActionDescriptor {
	d := ActionDescriptor{
		root:    root,
		message: args.Message(),
		sources: append([]string(nil), args.Sources...),
	}
	d.action, d.hasAction = args.Action()
	d.target, d.hasTarget = args.Target()
	return d
}

// Root returns the resolved repository root.
func (d ActionDescriptor) Root() string { return d.root }

// Action returns the action key if one was given.
func (d ActionDescriptor) Action() (string, bool) { return d.action, d.hasAction }

// Target returns the target key if one was given.
func (d ActionDescriptor) Target() (string, bool) { return d.target, d.hasTarget }

// Message returns the free-form commit message argument.
func (d ActionDescriptor) Message() string { return d.message }

// Sources returns the listed source files in order.
func (d ActionDescriptor) Sources() []string {
	return append([]string(nil), d.sources...)
}
