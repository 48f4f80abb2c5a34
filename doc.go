// Package cfgpatch merges ModuleManager style patch documents into a single
// configuration database.
//
// Documents are grouped into passes by a [ModuleManager], which prunes
// passes and :NEEDS conditions referring to mods which do not exist, then
// evaluates each top-level patch in pass, file and document order with a
// [Patcher].
package cfgpatch
