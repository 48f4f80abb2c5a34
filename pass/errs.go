package pass

import "errors"

var ErrPass = errors.New("bad pass")
