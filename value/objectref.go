package value

import (
	"fmt"
	"hash/fnv"

	"github.com/sfttech/nyango/basictype"
	"github.com/sfttech/nyango/ops"
)

// ObjectRef points at another object by its fully-qualified name.
// Assignment-only. Nothing checks that the referenced object satisfies
// a member's declared target type or the abstract/children modifier
// rules; the loader only rejects a referenced object that still has
// members without a value.
type ObjectRef struct {
	Fqon string
}

func NewObjectRef(fqon string) *ObjectRef { return &ObjectRef{Fqon: fqon} }

func (r *ObjectRef) BasicType() basictype.Basic {
	return basictype.Basic{Primitive: basictype.Object}
}

func (r *ObjectRef) Copy() Value { return &ObjectRef{Fqon: r.Fqon} }

func (r *ObjectRef) String() string { return r.Fqon }
func (r *ObjectRef) Repr() string   { return r.Fqon }

func (r *ObjectRef) Hash() (uint64, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(r.Fqon))
	return h.Sum64(), nil
}

func (r *ObjectRef) Equals(other Value) bool {
	o, ok := other.(*ObjectRef)
	return ok && o.Fqon == r.Fqon
}

func (r *ObjectRef) AllowedOperations(rhsType basictype.Basic) map[ops.Op]struct{} {
	if rhsType.Primitive == basictype.Object {
		return allows(ops.Assign)
	}
	return noOps
}

func (r *ObjectRef) Apply(other Value, op ops.Op) error {
	o, ok := other.(*ObjectRef)
	if !ok {
		return fmt.Errorf("object-ref apply: rhs is not an object reference")
	}
	if op != ops.Assign {
		return fmt.Errorf("object-ref: unsupported operation %s", op)
	}
	r.Fqon = o.Fqon
	return nil
}
