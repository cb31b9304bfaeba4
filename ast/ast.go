// Package ast defines the parser's output contract: the shape the loader
// consumes to build the typed object graph. The lexer and parser that
// produce these values from nyan source text are out of scope for this
// module; callers supply a ParseFunc that already returns this tree.
package ast

import (
	"fmt"

	"github.com/sfttech/nyango/ops"
)

// Location pinpoints a token's origin for error reporting.
type Location struct {
	Filename string
	Line     int
	Column   int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.Column)
}

// Import is a top-of-file `import NS (as ALIAS)` statement.
type Import struct {
	Namespace string
	Alias     string // empty if no alias was given
	Loc       Location
}

// TypeExpr is a raw, unresolved type expression as written in source,
// e.g. "int", "set" with one Element, "dict" with two, or an object
// name. A modifier wrapper (optional/abstract/children) is a TypeExpr
// whose Name is the modifier keyword and whose Elements[0] is the
// wrapped type.
type TypeExpr struct {
	Name     string
	Elements []TypeExpr
	Loc      Location
}

// ValueExpr is a raw value literal as written in source, tagged by Kind:
// "bool", "int", "float", "text", "file", "object", "none", "set",
// "orderedset", "dict".
type ValueExpr struct {
	Kind string

	BoolVal  bool
	IntVal   int64
	FloatVal float64
	TextVal  string // also used for file and object-ref literals

	Elements    []ValueExpr    // set / orderedset members
	DictEntries []DictEntryExpr

	Loc Location
}

// DictEntryExpr is one key/value pair in a dict literal.
type DictEntryExpr struct {
	Key ValueExpr
	Val ValueExpr
}

// MemberDef is a single `member : Type [ OP Value ]` declaration inside
// an object body. HasValue is false for a bare type declaration with no
// initializer.
type MemberDef struct {
	Name     string
	Type     TypeExpr
	Op       ops.Op
	Value    ValueExpr
	HasValue bool
	Loc      Location
}

// InheritanceEditExpr is a `[+Parent]` or `[Parent+]` patch edit.
type InheritanceEditExpr struct {
	Type   ops.InheritanceChange
	Target string
}

// ObjectDef is `Name<Target>[InheritEdits](Parents): <block>`. Target and
// InheritanceEdits are set only for patches.
type ObjectDef struct {
	Name             string
	Target           string
	IsPatch          bool
	InheritanceEdits []InheritanceEditExpr
	Parents          []string
	Members          []MemberDef
	NestedObjects    []ObjectDef
	Loc              Location
}

// File is one parsed source file: its imports and its top-level object
// definitions. The loader derives the file's namespace from its
// filename, not from anything stored here.
type File struct {
	Filename string
	Imports  []Import
	Objects  []ObjectDef
}
