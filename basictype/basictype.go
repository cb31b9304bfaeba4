// Package basictype defines the primitive and composite type vocabulary of
// the engine: the built-in kinds a member declaration can name before any
// object-specific typing is layered on top in the metainfo package.
package basictype

import "fmt"

// Primitive identifies the fundamental kind of a type: a plain value, an
// object reference, a container of other values, or a modifier wrapping
// another type.
type Primitive int

const (
	Boolean Primitive = iota
	Text
	Filename
	Int
	Float
	Object
	None
	Container
	Modifier
)

func (p Primitive) String() string {
	switch p {
	case Boolean:
		return "bool"
	case Text:
		return "text"
	case Filename:
		return "file"
	case Int:
		return "int"
	case Float:
		return "float"
	case Object:
		return "object"
	case None:
		return "none"
	case Container:
		return "container"
	case Modifier:
		return "modifier"
	}
	return "unhandled primitive"
}

// Composite refines a Container or Modifier primitive into its concrete
// shape. Single means the type is not a composite at all.
type Composite int

const (
	Single Composite = iota
	Set
	OrderedSet
	Dict
	Abstract
	Children
	Optional
)

func (c Composite) String() string {
	switch c {
	case Single:
		return "single_value"
	case Set:
		return "set"
	case OrderedSet:
		return "orderedset"
	case Dict:
		return "dict"
	case Abstract:
		return "abstract"
	case Children:
		return "children"
	case Optional:
		return "optional"
	}
	return "unhandled composite"
}

// Basic is the combination of a primitive and composite type that
// classifies a built-in type. Object- and user-defined typing layers on
// top of this in the metainfo package's Type.
type Basic struct {
	Primitive Primitive
	Composite Composite
}

// IsObject reports whether this basic type names an object reference.
func (b Basic) IsObject() bool {
	return b.Primitive == Object
}

// IsFundamental reports whether this is a plain, non-pointer value type:
// not an object, container or modifier.
func (b Basic) IsFundamental() bool {
	switch b.Primitive {
	case Object, Container, Modifier:
		return false
	default:
		return true
	}
}

// IsComposite reports whether the composite type is set at all.
func (b Basic) IsComposite() bool {
	return b.Composite != Single
}

// IsContainer reports whether this basic type is one of the container
// composites (set, orderedset, dict).
func (b Basic) IsContainer() bool {
	switch b.Composite {
	case Set, OrderedSet, Dict:
		return true
	default:
		return false
	}
}

// IsContainerOf reports whether this is a container of the given composite
// kind.
func (b Basic) IsContainerOf(kind Composite) bool {
	return b.IsContainer() && b.Composite == kind
}

// IsModifier reports whether this basic type is one of the modifier
// composites (abstract, children, optional).
func (b Basic) IsModifier() bool {
	switch b.Composite {
	case Abstract, Children, Optional:
		return true
	default:
		return false
	}
}

// IsModifierOf reports whether this is a modifier of the given composite
// kind.
func (b Basic) IsModifierOf(kind Composite) bool {
	return b.IsModifier() && b.Composite == kind
}

// ExpectedNestedTypes returns how many nested element types a Type built
// from this Basic requires, e.g. 2 for dict (key type, value type), 1 for
// set/orderedset, 0 otherwise.
func (b Basic) ExpectedNestedTypes() int {
	switch b.Composite {
	case Dict:
		return 2
	case Set, OrderedSet:
		return 1
	default:
		return 0
	}
}

func (b Basic) String() string {
	if b.Composite == Single {
		return b.Primitive.String()
	}
	return fmt.Sprintf("%s(%s)", b.Composite, b.Primitive)
}

// builtinNames maps the type tokens nyan source uses onto their Basic
// type, for every basic type that isn't an object reference.
var builtinNames = map[string]Basic{
	"bool":       {Primitive: Boolean},
	"text":       {Primitive: Text},
	"file":       {Primitive: Filename},
	"int":        {Primitive: Int},
	"float":      {Primitive: Float},
	"none":       {Primitive: None},
	"set":        {Primitive: Container, Composite: Set},
	"orderedset": {Primitive: Container, Composite: OrderedSet},
	"dict":       {Primitive: Container, Composite: Dict},
	"abstract":   {Primitive: Modifier, Composite: Abstract},
	"children":   {Primitive: Modifier, Composite: Children},
	"optional":   {Primitive: Modifier, Composite: Optional},
}

// FromToken resolves a type token as it appears in source, e.g. "int",
// "set" or an object name, to its Basic type. A name unknown to the
// builtin table is assumed to be an object reference.
func FromToken(token string) Basic {
	if b, ok := builtinNames[token]; ok {
		return b
	}
	return Basic{Primitive: Object}
}
