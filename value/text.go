package value

import (
	"fmt"
	"hash/fnv"

	"github.com/sfttech/nyango/basictype"
	"github.com/sfttech/nyango/ops"
)

// Text is a UTF-8 string value. += is concatenation.
type Text struct {
	Val string
}

func NewText(v string) *Text { return &Text{Val: v} }

func (t *Text) BasicType() basictype.Basic {
	return basictype.Basic{Primitive: basictype.Text}
}

func (t *Text) Copy() Value { return &Text{Val: t.Val} }

func (t *Text) String() string { return t.Val }
func (t *Text) Repr() string   { return fmt.Sprintf("%q", t.Val) }

func (t *Text) Hash() (uint64, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.Val))
	return h.Sum64(), nil
}

func (t *Text) Equals(other Value) bool {
	o, ok := other.(*Text)
	return ok && o.Val == t.Val
}

func (t *Text) AllowedOperations(rhsType basictype.Basic) map[ops.Op]struct{} {
	if rhsType.Primitive == basictype.Text {
		return allows(ops.Assign, ops.AddAssign)
	}
	return noOps
}

func (t *Text) Apply(other Value, op ops.Op) error {
	o, ok := other.(*Text)
	if !ok {
		return fmt.Errorf("text apply: rhs is not text")
	}
	switch op {
	case ops.Assign:
		t.Val = o.Val
	case ops.AddAssign:
		t.Val += o.Val
	default:
		return fmt.Errorf("text: unsupported operation %s", op)
	}
	return nil
}

// Filename is a path-like text value. Assignment-only; relative-path
// resolution against the defining file is future work.
type Filename struct {
	Val string
}

func NewFilename(v string) *Filename { return &Filename{Val: v} }

func (f *Filename) BasicType() basictype.Basic {
	return basictype.Basic{Primitive: basictype.Filename}
}

func (f *Filename) Copy() Value { return &Filename{Val: f.Val} }

func (f *Filename) String() string { return f.Val }
func (f *Filename) Repr() string   { return fmt.Sprintf("%q", f.Val) }

func (f *Filename) Hash() (uint64, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(f.Val))
	return h.Sum64(), nil
}

func (f *Filename) Equals(other Value) bool {
	o, ok := other.(*Filename)
	return ok && o.Val == f.Val
}

func (f *Filename) AllowedOperations(rhsType basictype.Basic) map[ops.Op]struct{} {
	if rhsType.Primitive == basictype.Filename {
		return allows(ops.Assign)
	}
	return noOps
}

func (f *Filename) Apply(other Value, op ops.Op) error {
	o, ok := other.(*Filename)
	if !ok {
		return fmt.Errorf("filename apply: rhs is not a filename")
	}
	if op != ops.Assign {
		return fmt.Errorf("filename: unsupported operation %s", op)
	}
	f.Val = o.Val
	return nil
}
