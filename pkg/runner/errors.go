package runner

import (
	"errors"
	"fmt"
)

// ErrInvalid signals that a generated input was rejected by a test
// function's precondition. Invalid examples count toward neither pass
// nor fail. Return it (or wrap it) from the test function:
//
//	func(v int) error {
//		if v == 0 {
//			return runner.ErrInvalid
//		}
//		...
//	}
var ErrInvalid = errors.New("invalid example")

// Invalidf wraps ErrInvalid with a reason.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalid)...)
}

// panicError captures a recovered panic from a test function. Panics
// are treated like assertion failures, not crashes.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// safeCall invokes the test function with panic isolation so a failing
// invocation cannot corrupt subsequent ones.
func safeCall[T any](test func(T) error, value T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return test(value)
}
