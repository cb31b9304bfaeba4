package metainfo

import (
	"fmt"
	"strings"

	"github.com/sfttech/nyango/basictype"
)

// Fqon is a fully-qualified object name: a dot-separated path of
// namespace components and nested-object components.
type Fqon = string

// MemberID identifies a member within the scope of a single object.
type MemberID = string

// Type is the full, possibly-composite type of a member or patch target,
// built by construction from the AST: modifier wrappers
// (optional/abstract/children) are stripped into boolean flags and never
// become part of the type's core identity, so optional(set(int)) carries
// the same Basic/Elements as set(int) plus the Optional flag.
type Type struct {
	Basic basictype.Basic

	// Elements holds the nested element types for a container: one
	// entry for set/orderedset, two (key, value) for dict. Empty for
	// non-container types.
	Elements []Type

	// ObjectFqon names the target object when Basic.Primitive is
	// Object; empty means "any object" (an unconstrained object type).
	ObjectFqon Fqon

	Optional bool
	Abstract bool
	Children bool
}

// IsObject reports whether this type names an object reference.
func (t Type) IsObject() bool { return t.Basic.IsObject() }

// IsFundamental reports whether this is a plain value type.
func (t Type) IsFundamental() bool { return t.Basic.IsFundamental() }

// IsComposite reports whether this type is a container.
func (t Type) IsComposite() bool { return t.Basic.IsComposite() }

// Equal reports whether two types are equal: same basic type, same
// nested element types and, for object types, the same target fqon.
// Modifier flags are NOT part of identity, matching the fold-into-flags
// design.
func (t Type) Equal(other Type) bool {
	if t.Basic != other.Basic {
		return false
	}
	if t.Basic.IsObject() && t.ObjectFqon != other.ObjectFqon {
		return false
	}
	if len(t.Elements) != len(other.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].Equal(other.Elements[i]) {
			return false
		}
	}
	return true
}

func (t Type) String() string {
	var b strings.Builder
	if t.Optional {
		b.WriteString("optional(")
	}
	if t.Abstract {
		b.WriteString("abstract(")
	}
	if t.Children {
		b.WriteString("children(")
	}

	if t.Basic.IsObject() {
		if t.ObjectFqon == "" {
			b.WriteString("object")
		} else {
			b.WriteString(t.ObjectFqon)
		}
	} else if len(t.Elements) > 0 {
		parts := make([]string, len(t.Elements))
		for i, e := range t.Elements {
			parts[i] = e.String()
		}
		fmt.Fprintf(&b, "%s(%s)", t.Basic.Composite, strings.Join(parts, ","))
	} else {
		b.WriteString(t.Basic.Primitive.String())
	}

	for _, flag := range []bool{t.Children, t.Abstract, t.Optional} {
		if flag {
			b.WriteString(")")
		}
	}
	return b.String()
}
