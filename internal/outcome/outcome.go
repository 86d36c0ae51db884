// Package outcome holds the two composition primitives used by validation:
// an accumulating combine for independent checks and a short-circuiting
// chain for dependent, effectful steps.
package outcome

// Unit is the value carried by checks that only succeed or fail.
type Unit = struct{}

// OK is the successful Unit outcome.
var OK = Success(Unit{})

// Outcome is either a success carrying a value or a failure carrying a
// non-empty ErrorList.
type Outcome[T any] struct {
	value T
	errs  ErrorList
}

// Success wraps v as a successful outcome.
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Failure builds a failed outcome from at least one error.
func Failure[T any](first ValidationError, rest ...ValidationError) Outcome[T] {
	return Outcome[T]{errs: NewErrorList(first, rest...)}
}

// FailWith builds a failed outcome from an existing list. It panics if the
// list is empty.
func FailWith[T any](errs ErrorList) Outcome[T] {
	if errs.Len() == 0 {
		panic("outcome: FailWith called with an empty error list")
	}
	return Outcome[T]{errs: errs}
}

// Ok reports whether o is a success.
func (o Outcome[T]) Ok() bool {
	return o.errs.Len() == 0
}

// Value returns the success value and true, or the zero value and false.
func (o Outcome[T]) Value() (T, bool) {
	if !o.Ok() {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Errors returns the failure's error list; it is empty for a success.
func (o Outcome[T]) Errors() ErrorList {
	return o.errs
}

// Err returns the error list as an error, or nil for a success.
func (o Outcome[T]) Err() error {
	if o.Ok() {
		return nil
	}
	return o.errs
}

// Combine merges two independent outcomes. Both must succeed for f to run;
// otherwise every error present is kept, a's before b's.
func Combine[A, B, C any](a Outcome[A], b Outcome[B], f func(A, B) C) Outcome[C] {
	switch {
	case a.Ok() && b.Ok():
		return Success(f(a.value, b.value))
	case a.Ok():
		return FailWith[C](b.errs)
	case b.Ok():
		return FailWith[C](a.errs)
	default:
		return FailWith[C](a.errs.Concat(b.errs))
	}
}

// AllOf folds already evaluated checks left to right with Combine. It
// succeeds only if every check succeeded; otherwise the errors of every
// failed check are returned in argument order.
func AllOf(checks ...Outcome[Unit]) Outcome[Unit] {
	acc := OK
	for _, c := range checks {
		acc = Combine(acc, c, func(Unit, Unit) Unit { return Unit{} })
	}
	return acc
}

// Then runs next on o's value if o succeeded. A failure passes through and
// next is never called.
func Then[A, B any](o Outcome[A], next func(A) Outcome[B]) Outcome[B] {
	if !o.Ok() {
		return FailWith[B](o.errs)
	}
	return next(o.value)
}

// AndThen evaluates step and, only on success, next.
func AndThen[A, B any](step func() Outcome[A], next func(A) Outcome[B]) Outcome[B] {
	return Then(step(), next)
}

// Map transforms a success value.
func Map[A, B any](o Outcome[A], f func(A) B) Outcome[B] {
	return Then(o, func(a A) Outcome[B] { return Success(f(a)) })
}
