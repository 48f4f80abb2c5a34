package cfgpatch

import "github.com/signadot/cfgpatch/parse"

// Op is the operation of a node or key patch.
type Op int

const (
	Insert Op = iota
	Copy
	CopyFrom
	Edit
	EditOrCreate
	DefaultValue
	Delete
	Rename
)

func (o Op) String() string {
	s, ok := map[Op]string{
		Insert:       "insert",
		Copy:         "copy",
		CopyFrom:     "copy-from",
		Edit:         "edit",
		EditOrCreate: "edit-or-create",
		DefaultValue: "default-value",
		Delete:       "delete",
		Rename:       "rename",
	}[o]
	if ok {
		return s
	}
	return "<unknown op>"
}

func opOf(operator parse.Operator, from *parse.Path) Op {
	switch operator {
	case parse.OpEdit:
		return Edit
	case parse.OpEditOrCreate:
		return EditOrCreate
	case parse.OpCreateIfNotFound:
		return DefaultValue
	case parse.OpCopy:
		return Copy
	case parse.OpDelete, parse.OpDeleteAlt:
		return Delete
	case parse.OpRename:
		return Rename
	}
	if from != nil {
		return CopyFrom
	}
	return Insert
}
