package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/cfgpatch/encode"
	"github.com/signadot/cfgpatch/ir"
)

type Node struct{ *ir.ConfigNode }

func (n Node) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeNode(n.ConfigNode, buf); err != nil {
		return fmt.Sprintf("[raw *ir.ConfigNode] %v", n.ConfigNode)
	}
	return buf.String()
}

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.ConfigNode:
			args[i] = Node{x}.String()
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
