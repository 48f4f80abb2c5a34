package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Load   bool
	Parse  bool
	Passes bool
	Needs  bool
	Match  bool
	Patch  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("CFGPATCH_DEBUG_LOAD")
	d.Parse = boolEnv("CFGPATCH_DEBUG_PARSE")
	d.Passes = boolEnv("CFGPATCH_DEBUG_PASSES")
	d.Needs = boolEnv("CFGPATCH_DEBUG_NEEDS")
	d.Match = boolEnv("CFGPATCH_DEBUG_MATCH")
	d.Patch = boolEnv("CFGPATCH_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Parse() bool {
	return d.Parse
}
func Passes() bool {
	return d.Passes
}
func Needs() bool {
	return d.Needs
}
func Match() bool {
	return d.Match
}
func Patch() bool {
	return d.Patch
}
