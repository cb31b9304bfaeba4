package value

import (
	"github.com/sfttech/nyango/basictype"
	"github.com/sfttech/nyango/ops"
)

// noneValue is the concrete type behind the None singleton.
type noneValue struct{}

// None is the process-wide none value. It is never copied: Copy returns
// the same singleton, matching the shared-immutable-instance design of
// every other zero-allocation nyan value.
var None Value = noneValue{}

func (noneValue) BasicType() basictype.Basic {
	return basictype.Basic{Primitive: basictype.None}
}

func (n noneValue) Copy() Value { return n }

func (noneValue) String() string { return "None" }
func (noneValue) Repr() string   { return "None" }

func (noneValue) Hash() (uint64, error) {
	return 0, nil
}

func (noneValue) Equals(other Value) bool {
	_, ok := other.(noneValue)
	return ok
}

// AllowedOperations: none accepts assignment from any primitive or
// container value.
func (noneValue) AllowedOperations(rhsType basictype.Basic) map[ops.Op]struct{} {
	return allows(ops.Assign)
}

// Apply on a None receiver is always a no-op: None has no fields to
// mutate in place. Replacing a None-valued member with an assigned value
// is handled one layer up, by the member/state code that notices the
// stored value IsNone and swaps the reference instead of calling Apply.
func (noneValue) Apply(other Value, op ops.Op) error {
	return nil
}

// IsNone reports whether v is the None singleton.
func IsNone(v Value) bool {
	_, ok := v.(noneValue)
	return ok
}
