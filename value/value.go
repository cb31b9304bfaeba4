// Package value implements the polymorphic value family nyan members
// store: booleans, numbers, text, object references and the set/
// orderedset/dict containers, each with its own permitted-operator table
// and apply rules.
package value

import (
	"errors"

	"github.com/sfttech/nyango/basictype"
	"github.com/sfttech/nyango/ops"
)

// ErrUndefinedArithmetic is returned by Apply when an infinity-aware
// numeric operation has no defined result, e.g. (+inf) - (+inf).
var ErrUndefinedArithmetic = errors.New("undefined arithmetic operation")

// ErrUnhashable is returned by Hash for container values, which cannot be
// placed in a set or used as a dict key.
var ErrUnhashable = errors.New("value is not hashable")

// Value is a single nyan value of some basic type. Implementations are
// value.Bool, value.Int, value.Float, value.Text, value.Filename,
// value.ObjectRef, value.Set, value.OrderedSet, value.Dict and the None
// singleton.
type Value interface {
	// BasicType reports the primitive/composite kind of this value.
	BasicType() basictype.Basic

	// Copy returns an independent copy of this value.
	Copy() Value

	// String renders the value for debug/log output.
	String() string

	// Repr renders the value the way it would be written back as nyan
	// source.
	Repr() string

	// Hash returns a content hash, or ErrUnhashable for containers.
	Hash() (uint64, error)

	// Equals reports whether other is the same kind with equal content.
	Equals(other Value) bool

	// AllowedOperations returns the set of operators this value accepts
	// when the right-hand operand has the given basic type.
	AllowedOperations(rhsType basictype.Basic) map[ops.Op]struct{}

	// Apply mutates this value in place by folding other into it using
	// op. None-valued receivers silently swallow any non-assign
	// operation (see the None type); every other combination not
	// present in AllowedOperations is a programming error from the
	// caller, who must check AllowedOperations first.
	Apply(other Value, op ops.Op) error
}

// allows builds a permitted-operator set; noOps below is the empty one.
func allows(o ...ops.Op) map[ops.Op]struct{} {
	return ops.Set(o...)
}

var noOps = ops.NoOps
