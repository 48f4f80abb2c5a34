package encode

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/signadot/cfgpatch/ir"
)

type jsonKey struct {
	Ident string `json:"ident"`
	Value string `json:"value"`
}

type jsonNode struct {
	Ident string      `json:"ident"`
	Keys  []jsonKey   `json:"keys"`
	Nodes []*jsonNode `json:"nodes"`
}

func toJSON(n *ir.ConfigNode) *jsonNode {
	res := &jsonNode{Ident: n.Ident, Keys: []jsonKey{}, Nodes: []*jsonNode{}}
	for _, k := range n.Keys {
		res.Keys = append(res.Keys, jsonKey{Ident: k.Ident, Value: k.Value})
	}
	for _, c := range n.Nodes {
		if c != nil {
			res.Nodes = append(res.Nodes, toJSON(c))
		}
	}
	return res
}

func fromJSON(j *jsonNode) *ir.ConfigNode {
	res := &ir.ConfigNode{Ident: j.Ident}
	for _, k := range j.Keys {
		res.AddKey(k.Ident, k.Value)
	}
	for _, c := range j.Nodes {
		if c != nil {
			res.Append(fromJSON(c))
		}
	}
	return res
}

// MarshalJSON encodes db as an object mapping each origin file to its
// top-level nodes.
func MarshalJSON(db *ir.Database) ([]byte, error) {
	return json.MarshalIndent(toJSONFiles(db), "", "  ")
}

func toJSONFiles(db *ir.Database) map[string][]*jsonNode {
	files := map[string][]*jsonNode{}
	for _, n := range db.Sorted() {
		files[n.File] = append(files[n.File], toJSON(n))
	}
	return files
}

// ToAny returns the JSON form of db as generic values.
func ToAny(db *ir.Database) (any, error) {
	d, err := json.Marshal(toJSONFiles(db))
	if err != nil {
		return nil, err
	}
	var res any
	if err := json.Unmarshal(d, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// UnmarshalJSON decodes the output of MarshalJSON. Files are restored in
// sorted order.
func UnmarshalJSON(d []byte) (*ir.Database, error) {
	var files map[string][]*jsonNode
	if err := json.Unmarshal(d, &files); err != nil {
		return nil, fmt.Errorf("could not decode database: %w", err)
	}
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	db := &ir.Database{}
	for _, p := range paths {
		if p == "" {
			return nil, fmt.Errorf("could not decode database: empty file path")
		}
		for _, j := range files[p] {
			if j == nil {
				continue
			}
			n := fromJSON(j)
			n.File = p
			if err := db.Insert(n); err != nil {
				return nil, err
			}
		}
	}
	return db, nil
}
