package cfgpatch

import (
	"errors"
	"fmt"

	"github.com/signadot/cfgpatch/ir"
)

var (
	// ErrInternal marks a violated engine invariant.
	ErrInternal = ir.ErrInternal
	// ErrRuntime marks a patch which cannot be applied as written.
	ErrRuntime = errors.New("runtime error")
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindRuntime
)

// RuntimeError is the cause of a runtime [PatchingError].
type RuntimeError int

const (
	CannotRenameNode RuntimeError = iota
	CannotCopyFromTopLevel
	PatchInNonPatchNode
	CopyFromNotFound
	BadAssignment
)

func (r RuntimeError) String() string {
	s, ok := map[RuntimeError]string{
		CannotRenameNode:       "nodes cannot be renamed with an operator",
		CannotCopyFromTopLevel: "cannot copy from a path at the top level",
		PatchInNonPatchNode:    "patch operator inside of an inserted node",
		CopyFromNotFound:       "copy source not found",
		BadAssignment:          "bad assignment",
	}[r]
	if ok {
		return s
	}
	return "<unknown runtime error>"
}

// PatchingError is returned by patch evaluation.
type PatchingError struct {
	Kind ErrorKind
	// File is the document being evaluated, for runtime errors.
	File  string
	Cause RuntimeError
	Msg   string
	Err   error
}

func (e *PatchingError) Error() string {
	if e.Kind == KindInternal {
		if e.Err != nil {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %s", ErrInternal, e.Msg)
	}
	msg := e.Cause.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("error when evaluating `%s`: %s", e.File, msg)
}

func (e *PatchingError) Unwrap() []error {
	var res []error
	switch e.Kind {
	case KindInternal:
		if e.Err == nil {
			res = append(res, ErrInternal)
		}
	case KindRuntime:
		res = append(res, ErrRuntime)
	}
	if e.Err != nil {
		res = append(res, e.Err)
	}
	return res
}

func internalErr(format string, args ...any) *PatchingError {
	return &PatchingError{Kind: KindInternal, Msg: fmt.Sprintf(format, args...)}
}

func runtimeErr(cause RuntimeError, format string, args ...any) *PatchingError {
	return &PatchingError{Kind: KindRuntime, Cause: cause, Msg: fmt.Sprintf(format, args...)}
}

// asPatchingError converts errors from the tree store, stamping file on
// runtime errors which lack one.
func asPatchingError(err error, file string) error {
	if err == nil {
		return nil
	}
	var pe *PatchingError
	if errors.As(err, &pe) {
		if pe.Kind == KindRuntime && pe.File == "" {
			pe.File = file
		}
		return pe
	}
	return &PatchingError{Kind: KindInternal, Err: err}
}
