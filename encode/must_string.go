package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/cfgpatch/ir"
)

func MustString(node *ir.ConfigNode) string {
	buf := bytes.NewBuffer(nil)
	if err := EncodeNode(node, buf); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
