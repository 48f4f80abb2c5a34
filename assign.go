package cfgpatch

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/signadot/cfgpatch/parse"
)

// assign computes the new value of a key edited with op.
func assign(op parse.AssignOp, old, operand string) (string, error) {
	switch op {
	case parse.AssignSet:
		return operand, nil
	case parse.AssignRegex:
		return replace(old, operand)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(old), 64)
	if err != nil {
		return "", &PatchingError{Kind: KindRuntime, Cause: BadAssignment, Msg: "value " + strconv.Quote(old), Err: err}
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(operand), 64)
	if err != nil {
		return "", &PatchingError{Kind: KindRuntime, Cause: BadAssignment, Msg: "operand " + strconv.Quote(operand), Err: err}
	}
	var v float64
	switch op {
	case parse.AssignAdd:
		v = a + b
	case parse.AssignSub:
		v = a - b
	case parse.AssignMul:
		v = a * b
	case parse.AssignDiv:
		if b == 0 {
			return "", runtimeErr(BadAssignment, "division of %q by zero", old)
		}
		v = a / b
	case parse.AssignPow:
		v = math.Pow(a, b)
	default:
		return "", internalErr("unknown assignment %d", op)
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}

// replace applies a regex replacement written as ":pattern:replacement:",
// where the first character is the delimiter.
func replace(old, operand string) (string, error) {
	operand = strings.TrimSpace(operand)
	if len(operand) < 2 {
		return "", runtimeErr(BadAssignment, "malformed replacement %q", operand)
	}
	parts := strings.Split(operand[1:], operand[:1])
	if len(parts) < 2 || len(parts) > 3 || len(parts) == 3 && parts[2] != "" {
		return "", runtimeErr(BadAssignment, "malformed replacement %q", operand)
	}
	re, err := regexp.Compile(parts[0])
	if err != nil {
		return "", &PatchingError{Kind: KindRuntime, Cause: BadAssignment, Msg: "pattern " + strconv.Quote(parts[0]), Err: err}
	}
	return re.ReplaceAllString(old, parts[1]), nil
}
