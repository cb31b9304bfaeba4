package value

import (
	"fmt"

	"github.com/sfttech/nyango/basictype"
	"github.com/sfttech/nyango/ops"
)

// Bool is a boolean value. Assignment-only.
type Bool struct {
	Val bool
}

func NewBool(v bool) *Bool { return &Bool{Val: v} }

func (b *Bool) BasicType() basictype.Basic {
	return basictype.Basic{Primitive: basictype.Boolean}
}

func (b *Bool) Copy() Value { return &Bool{Val: b.Val} }

func (b *Bool) String() string { return fmt.Sprintf("%t", b.Val) }
func (b *Bool) Repr() string   { return b.String() }

func (b *Bool) Hash() (uint64, error) {
	if b.Val {
		return 1, nil
	}
	return 0, nil
}

func (b *Bool) Equals(other Value) bool {
	o, ok := other.(*Bool)
	return ok && o.Val == b.Val
}

func (b *Bool) AllowedOperations(rhsType basictype.Basic) map[ops.Op]struct{} {
	if rhsType.Primitive == basictype.Boolean {
		return allows(ops.Assign)
	}
	return noOps
}

func (b *Bool) Apply(other Value, op ops.Op) error {
	o, ok := other.(*Bool)
	if !ok {
		return fmt.Errorf("bool apply: rhs is not a bool")
	}
	switch op {
	case ops.Assign:
		b.Val = o.Val
		return nil
	default:
		return fmt.Errorf("bool: unsupported operation %s", op)
	}
}
