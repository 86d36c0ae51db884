package domain

// Arguments is the parsed command line: up to three positional tokens and
// the source files listed with -S/--source.
type Arguments struct {
	Positional []string
	Sources    []string
}

// Count returns the number of positional tokens.
func (a Arguments) Count() int { return len(a.Positional) }

// Action returns the action token, present for two or three arguments.
func (a Arguments) Action() (string, bool) {
	switch a.Count() {
	case 2, 3:
		return a.Positional[0], true
	}
	return "", false
}

// Target returns the target token, present for three arguments.
func (a Arguments) Target() (string, bool) {
	if a.Count() == 3 {
		return a.Positional[1], true
	}
	return "", false
}

// Message returns the last positional token, or "" if there is none.
func (a Arguments) Message() string {
	if a.Count() == 0 {
		return ""
	}
	return a.Positional[a.Count()-1]
}
