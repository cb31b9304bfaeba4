// Package state implements the versioned, copy-on-write object state
// layer: Member holds one member's current value and operator, ObjectState
// holds one object's parents and members, and State is a full database
// snapshot linked to its predecessor.
package state

import (
	"fmt"

	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/nyanerr"
	"github.com/sfttech/nyango/ops"
	"github.com/sfttech/nyango/value"
)

// OverrideDepth counts the leading '@' characters in front of a patch
// operator, requesting that the patch replace the operator itself rather
// than fold through it. Support beyond depth 0 is not implemented, same
// as the engine this was ported from: see Member.Apply.
type OverrideDepth int

// Member stores one member's current operator, declared type and value,
// and knows how to fold a patch's change onto itself.
type Member struct {
	OverrideDepth OverrideDepth
	Operation     ops.Op
	DeclaredType  metainfo.Type
	Value         value.Value
}

func NewMember(depth OverrideDepth, op ops.Op, declaredType metainfo.Type, val value.Value) *Member {
	return &Member{OverrideDepth: depth, Operation: op, DeclaredType: declaredType, Value: val}
}

// Copy returns an independent copy of this member.
func (m *Member) Copy() *Member {
	return &Member{
		OverrideDepth: m.OverrideDepth,
		Operation:     m.Operation,
		DeclaredType:  m.DeclaredType,
		Value:         m.Value.Copy(),
	}
}

// Apply folds change onto this member:
//   - a change whose override depth is nonzero asks to replace this
//     member's operator outright, a feature this port does not implement
//     (see the InternalError it returns) -- just like the C++ engine it
//     mirrors, which never finished it either.
//   - a change to None always wins, whatever this member currently holds.
//   - a None receiver swallows every non-assign change; assignment
//     replaces it.
//   - otherwise the current value folds the change in using its own
//     operator semantics.
func (m *Member) Apply(change *Member) error {
	if change.OverrideDepth > 0 {
		return nyanerr.NewInternalError("member apply: operator overrides are not implemented")
	}

	if value.IsNone(change.Value) {
		m.Value = change.Value
		return nil
	}

	if value.IsNone(m.Value) {
		if change.Operation == ops.Assign {
			m.Value = change.Value
		}
		// else: silently swallow, None still wins.
		return nil
	}

	return m.Value.Apply(change.Value, change.Operation)
}

func (m *Member) String() string {
	if m.Value == nil {
		return m.Operation.String()
	}
	return fmt.Sprintf("%s %s", m.Operation, m.Value.Repr())
}
