package value

import (
	"fmt"
	"strings"

	"github.com/sfttech/nyango/basictype"
	"github.com/sfttech/nyango/ops"
)

// elementer is implemented by every container that stores a flat sequence
// of values, letting Set and OrderedSet interoperate on the right-hand
// side of each other's operators.
type elementer interface {
	elements() []Value
}

func containsValue(elems []Value, v Value) bool {
	for _, e := range elems {
		if e.Equals(v) {
			return true
		}
	}
	return false
}

func dedupInOrder(elems []Value) []Value {
	out := make([]Value, 0, len(elems))
	for _, e := range elems {
		if !containsValue(out, e) {
			out = append(out, e)
		}
	}
	return out
}

func sameElementsIgnoringOrder(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !containsValue(b, v) {
			return false
		}
	}
	return true
}

func joinElements(elems []Value) string {
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// Set is an unordered collection of unique values. Sets are not
// hashable: they may not be nested inside another set or used as a
// dict key.
type Set struct {
	elems []Value
}

func NewSet(elems ...Value) *Set {
	return &Set{elems: dedupInOrder(elems)}
}

func (s *Set) elements() []Value { return s.elems }

// Elements returns the set's members in their stored (de-duplicated)
// order.
func (s *Set) Elements() []Value { return s.elems }

func (s *Set) BasicType() basictype.Basic {
	return basictype.Basic{Primitive: basictype.Container, Composite: basictype.Set}
}

func (s *Set) Copy() Value {
	elems := make([]Value, len(s.elems))
	for i, e := range s.elems {
		elems[i] = e.Copy()
	}
	return &Set{elems: elems}
}

func (s *Set) String() string { return fmt.Sprintf("{%s}", joinElements(s.elems)) }
func (s *Set) Repr() string   { return s.String() }

func (s *Set) Hash() (uint64, error) { return 0, ErrUnhashable }

func (s *Set) Equals(other Value) bool {
	o, ok := other.(*Set)
	return ok && sameElementsIgnoringOrder(s.elems, o.elems)
}

func (s *Set) AllowedOperations(rhsType basictype.Basic) map[ops.Op]struct{} {
	if rhsType.Primitive == basictype.None {
		return allows(ops.Assign)
	}
	if rhsType.Primitive == basictype.Container && rhsType.Composite == basictype.Set {
		return allows(ops.Assign, ops.AddAssign, ops.UnionAssign, ops.SubtractAssign, ops.IntersectAssign)
	}
	if rhsType.Primitive == basictype.Container && rhsType.Composite == basictype.OrderedSet {
		return allows(ops.SubtractAssign, ops.IntersectAssign)
	}
	return noOps
}

func (s *Set) Apply(other Value, op ops.Op) error {
	if op == ops.Assign {
		o, ok := other.(*Set)
		if !ok {
			return fmt.Errorf("set apply: rhs is not a set")
		}
		s.elems = dedupInOrder(o.elems)
		return nil
	}

	el, ok := other.(elementer)
	if !ok {
		return fmt.Errorf("set apply: rhs is not a set-like container")
	}
	rhs := el.elements()

	switch op {
	case ops.AddAssign, ops.UnionAssign:
		s.elems = dedupInOrder(append(append([]Value(nil), s.elems...), rhs...))
	case ops.SubtractAssign:
		var kept []Value
		for _, e := range s.elems {
			if !containsValue(rhs, e) {
				kept = append(kept, e)
			}
		}
		s.elems = kept
	case ops.IntersectAssign:
		var kept []Value
		for _, e := range s.elems {
			if containsValue(rhs, e) {
				kept = append(kept, e)
			}
		}
		s.elems = kept
	default:
		return fmt.Errorf("set: unsupported operation %s", op)
	}
	return nil
}

// OrderedSet is a collection of unique values that preserves insertion
// order during iteration; equality, however, compares content only (the
// order is not part of an orderedset's identity).
type OrderedSet struct {
	elems []Value
}

func NewOrderedSet(elems ...Value) *OrderedSet {
	return &OrderedSet{elems: dedupInOrder(elems)}
}

func (s *OrderedSet) elements() []Value { return s.elems }

// Elements returns the ordered set's members in insertion order.
func (s *OrderedSet) Elements() []Value { return s.elems }

func (s *OrderedSet) BasicType() basictype.Basic {
	return basictype.Basic{Primitive: basictype.Container, Composite: basictype.OrderedSet}
}

func (s *OrderedSet) Copy() Value {
	elems := make([]Value, len(s.elems))
	for i, e := range s.elems {
		elems[i] = e.Copy()
	}
	return &OrderedSet{elems: elems}
}

func (s *OrderedSet) String() string { return fmt.Sprintf("o{%s}", joinElements(s.elems)) }
func (s *OrderedSet) Repr() string   { return s.String() }

func (s *OrderedSet) Hash() (uint64, error) { return 0, ErrUnhashable }

func (s *OrderedSet) Equals(other Value) bool {
	o, ok := other.(*OrderedSet)
	return ok && sameElementsIgnoringOrder(s.elems, o.elems)
}

func (s *OrderedSet) AllowedOperations(rhsType basictype.Basic) map[ops.Op]struct{} {
	if rhsType.Primitive == basictype.None {
		return allows(ops.Assign)
	}
	if rhsType.Primitive == basictype.Container && rhsType.Composite == basictype.OrderedSet {
		return allows(ops.Assign, ops.AddAssign, ops.SubtractAssign, ops.IntersectAssign)
	}
	if rhsType.Primitive == basictype.Container && rhsType.Composite == basictype.Set {
		return allows(ops.AddAssign, ops.UnionAssign, ops.SubtractAssign, ops.IntersectAssign)
	}
	return noOps
}

func (s *OrderedSet) Apply(other Value, op ops.Op) error {
	if op == ops.Assign {
		o, ok := other.(*OrderedSet)
		if !ok {
			return fmt.Errorf("orderedset apply: rhs is not an orderedset")
		}
		s.elems = dedupInOrder(o.elems)
		return nil
	}

	el, ok := other.(elementer)
	if !ok {
		return fmt.Errorf("orderedset apply: rhs is not a set-like container")
	}
	rhs := el.elements()

	switch op {
	case ops.AddAssign, ops.UnionAssign:
		s.elems = dedupInOrder(append(append([]Value(nil), s.elems...), rhs...))
	case ops.SubtractAssign:
		var kept []Value
		for _, e := range s.elems {
			if !containsValue(rhs, e) {
				kept = append(kept, e)
			}
		}
		s.elems = kept
	case ops.IntersectAssign:
		var kept []Value
		for _, e := range s.elems {
			if containsValue(rhs, e) {
				kept = append(kept, e)
			}
		}
		s.elems = kept
	default:
		return fmt.Errorf("orderedset: unsupported operation %s", op)
	}
	return nil
}

// DictEntry is a single key/value pair stored in a Dict.
type DictEntry struct {
	Key Value
	Val Value
}

// Dict is an associative container keyed by hashable values.
type Dict struct {
	entries []DictEntry
}

func NewDict(entries ...DictEntry) *Dict {
	d := &Dict{}
	for _, e := range entries {
		d.set(e.Key, e.Val)
	}
	return d
}

func (d *Dict) findIndex(key Value) int {
	for i, e := range d.entries {
		if e.Key.Equals(key) {
			return i
		}
	}
	return -1
}

func (d *Dict) set(key, val Value) {
	if i := d.findIndex(key); i >= 0 {
		d.entries[i].Val = val
		return
	}
	d.entries = append(d.entries, DictEntry{Key: key, Val: val})
}

// Entries returns the dict's key/value pairs in insertion order.
func (d *Dict) Entries() []DictEntry {
	out := make([]DictEntry, len(d.entries))
	copy(out, d.entries)
	return out
}

func (d *Dict) BasicType() basictype.Basic {
	return basictype.Basic{Primitive: basictype.Container, Composite: basictype.Dict}
}

func (d *Dict) Copy() Value {
	entries := make([]DictEntry, len(d.entries))
	for i, e := range d.entries {
		entries[i] = DictEntry{Key: e.Key.Copy(), Val: e.Val.Copy()}
	}
	return &Dict{entries: entries}
}

func (d *Dict) String() string {
	parts := make([]string, len(d.entries))
	for i, e := range d.entries {
		parts[i] = fmt.Sprintf("%s: %s", e.Key.String(), e.Val.String())
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}
func (d *Dict) Repr() string { return d.String() }

func (d *Dict) Hash() (uint64, error) { return 0, ErrUnhashable }

func (d *Dict) Equals(other Value) bool {
	o, ok := other.(*Dict)
	if !ok || len(o.entries) != len(d.entries) {
		return false
	}
	for _, e := range d.entries {
		i := o.findIndex(e.Key)
		if i < 0 || !o.entries[i].Val.Equals(e.Val) {
			return false
		}
	}
	return true
}

func (d *Dict) AllowedOperations(rhsType basictype.Basic) map[ops.Op]struct{} {
	if rhsType.Primitive == basictype.None {
		return allows(ops.Assign)
	}
	if rhsType.Primitive == basictype.Container && rhsType.Composite == basictype.Dict {
		return allows(ops.Assign, ops.AddAssign, ops.UnionAssign, ops.IntersectAssign)
	}
	if rhsType.Primitive == basictype.Container &&
		(rhsType.Composite == basictype.Set || rhsType.Composite == basictype.OrderedSet) {
		return allows(ops.SubtractAssign, ops.IntersectAssign)
	}
	return noOps
}

func (d *Dict) Apply(other Value, op ops.Op) error {
	if op == ops.Assign {
		o, ok := other.(*Dict)
		if !ok {
			return fmt.Errorf("dict apply: rhs is not a dict")
		}
		entries := make([]DictEntry, len(o.entries))
		copy(entries, o.entries)
		d.entries = entries
		return nil
	}

	if o, ok := other.(*Dict); ok {
		switch op {
		case ops.AddAssign, ops.UnionAssign:
			for _, e := range o.entries {
				d.set(e.Key, e.Val)
			}
			return nil
		case ops.IntersectAssign:
			var kept []DictEntry
			for _, e := range d.entries {
				i := o.findIndex(e.Key)
				if i >= 0 && o.entries[i].Val.Equals(e.Val) {
					kept = append(kept, e)
				}
			}
			d.entries = kept
			return nil
		default:
			return fmt.Errorf("dict: unsupported operation %s against dict", op)
		}
	}

	if el, ok := other.(elementer); ok {
		keys := el.elements()
		switch op {
		case ops.SubtractAssign:
			var kept []DictEntry
			for _, e := range d.entries {
				if !containsValue(keys, e.Key) {
					kept = append(kept, e)
				}
			}
			d.entries = kept
			return nil
		case ops.IntersectAssign:
			var kept []DictEntry
			for _, e := range d.entries {
				if containsValue(keys, e.Key) {
					kept = append(kept, e)
				}
			}
			d.entries = kept
			return nil
		default:
			return fmt.Errorf("dict: unsupported operation %s against a set of keys", op)
		}
	}

	return fmt.Errorf("dict apply: unsupported rhs kind")
}
