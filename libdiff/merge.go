package libdiff

import (
	jsonpatch "github.com/evanphx/json-patch"
)

// MergePatch returns the JSON merge patch (RFC 7386) taking the JSON
// document from to to. Equal documents give "{}".
func MergePatch(from, to []byte) ([]byte, error) {
	return jsonpatch.CreateMergePatch(from, to)
}

// ApplyMergePatch applies a patch made by MergePatch.
func ApplyMergePatch(doc, patch []byte) ([]byte, error) {
	return jsonpatch.MergePatch(doc, patch)
}
