package ir

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal marks a violated tree store invariant. It is never caused by
	// valid input.
	ErrInternal = errors.New("internal error")
)

func internalErr(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInternal}, args...)...)
}
