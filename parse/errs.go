package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/cfgpatch/token"
)

var (
	ErrParse       = errors.New("parse error")
	ErrUnsupported = fmt.Errorf("%w: unsupported", ErrParse)
	ErrHeader      = fmt.Errorf("%w: bad header", ErrParse)
	ErrNeeds       = fmt.Errorf("%w: bad :NEEDS", ErrParse)
	ErrHas         = fmt.Errorf("%w: bad :HAS", ErrParse)
	ErrIndex       = fmt.Errorf("%w: bad index", ErrParse)
)

func errAt(pos token.Pos, err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s at %s", err, fmt.Sprintf(format, args...), pos)
}
