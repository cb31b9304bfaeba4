package nyan

import (
	"github.com/google/go-cmp/cmp"

	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/nyanerr"
	"github.com/sfttech/nyango/ops"
	"github.com/sfttech/nyango/state"
	"github.com/sfttech/nyango/value"
)

// Object is a handle for reading a nyan object through a particular
// View, independent of time: every getter takes its own OrderT. The
// zero value is an invalid handle, the same role Object{} plays in the
// engine this was ported from.
type Object struct {
	name Fqon
	view *View
}

// Name returns this object's fully-qualified name.
func (o Object) Name() Fqon { return o.name }

// View returns the view this object handle was obtained from.
func (o Object) View() *View { return o.view }

func (o Object) checkValid() error {
	if o.name == "" || o.view == nil {
		return nyanerr.NewInvalidObjectError()
	}
	return nil
}

// Info returns the database's declared metadata for this object.
func (o Object) Info() (*metainfo.ObjectInfo, error) {
	if err := o.checkValid(); err != nil {
		return nil, err
	}
	return o.view.GetInfo(o.name)
}

// IsPatch reports whether this object is a patch, from the beginning
// of time: patch-ness is fixed at load time and never changes.
func (o Object) IsPatch() bool {
	info, err := o.Info()
	if err != nil {
		return false
	}
	return info.IsPatch()
}

// GetTarget returns the fqon this object patches, if it is a patch.
func (o Object) GetTarget() (Fqon, bool) {
	info, err := o.Info()
	if err != nil || !info.IsPatch() {
		return "", false
	}
	return info.Patch.Target, true
}

// GetLinearized returns this object's C3 linearization at t.
func (o Object) GetLinearized(t OrderT) ([]Fqon, error) {
	if err := o.checkValid(); err != nil {
		return nil, err
	}
	return o.view.GetLinearization(o.name, t)
}

// GetParents returns this object's direct parents, in declaration
// order, at t.
func (o Object) GetParents(t OrderT) ([]Fqon, error) {
	if err := o.checkValid(); err != nil {
		return nil, err
	}
	raw, err := o.view.GetRaw(o.name, t)
	if err != nil {
		return nil, err
	}
	return raw.Parents, nil
}

// HasMember reports whether this object has a member of the given name
// at t, inherited or not.
func (o Object) HasMember(member MemberID, t OrderT) bool {
	lin, err := o.GetLinearized(t)
	if err != nil {
		return false
	}
	for _, obj := range lin {
		raw, err := o.view.GetRaw(obj, t)
		if err != nil {
			continue
		}
		if raw.Member(member) != nil {
			return true
		}
	}
	return false
}

// Extends reports whether this object is, or transitively inherits
// from, other at t.
func (o Object) Extends(other Fqon, t OrderT) bool {
	if o.name == other {
		return true
	}
	lin, err := o.GetLinearized(t)
	if err != nil {
		return false
	}
	for _, obj := range lin {
		if obj == other {
			return true
		}
	}
	return false
}

// DiffLinearization renders what changed in this object's C3
// linearization between two points in time, for debugging a commit's
// effect on inheritance order.
func (o Object) DiffLinearization(before, after OrderT) (string, error) {
	linBefore, err := o.GetLinearized(before)
	if err != nil {
		return "", err
	}
	linAfter, err := o.GetLinearized(after)
	if err != nil {
		return "", err
	}
	return cmp.Diff(linBefore, linAfter), nil
}

// Subscribe registers callback to fire whenever this object (or one of
// its parents) changes in its view.
func (o Object) Subscribe(callback NotifyFunc) (*NotifierHandle, error) {
	if err := o.checkValid(); err != nil {
		return nil, err
	}
	return o.view.CreateNotifier(o.name, callback), nil
}

// Get calculates this object's effective value for member at t: the
// linearization is walked from the object outward until the ancestor
// that last ASSIGNs the member is found, then every more-derived
// ancestor's change is folded back onto a copy of that base value, most
// ancestral first.
func (o Object) Get(member MemberID, t OrderT) (value.Value, error) {
	if err := o.checkValid(); err != nil {
		return nil, err
	}

	lin, err := o.view.GetLinearization(o.name, t)
	if err != nil {
		return nil, err
	}

	states := make([]*state.ObjectState, 0, len(lin))

	definedBy := 0
	var baseValue value.Value
	found := false

	for _, obj := range lin {
		raw, err := o.view.GetRaw(obj, t)
		if err != nil {
			return nil, err
		}
		states = append(states, raw)

		if m := raw.Member(member); m != nil && m.Operation == ops.Assign {
			baseValue = m.Value
			found = true
			break
		}
		definedBy++
	}

	if !found {
		return nil, nyanerr.NewMemberNotFoundError(o.name, member)
	}

	if definedBy == 0 {
		return baseValue.Copy(), nil
	}

	result := baseValue.Copy()
	for i := definedBy; ; i-- {
		if change := states[i].Member(member); change != nil {
			if err := result.Apply(change.Value, change.Operation); err != nil {
				return nil, err
			}
		}
		if i == 0 {
			break
		}
	}

	return result, nil
}

func (o Object) typeMismatch(member MemberID, got value.Value, wantType string) error {
	return nyanerr.NewMemberTypeError(o.name, member, got.BasicType().String(), wantType)
}

// GetInt returns member's effective value as an int, at t.
func (o Object) GetInt(member MemberID, t OrderT) (int64, error) {
	v, err := o.Get(member, t)
	if err != nil {
		return 0, err
	}
	i, ok := v.(*value.Int)
	if !ok {
		return 0, o.typeMismatch(member, v, "int")
	}
	return i.Val, nil
}

// GetFloat returns member's effective value as a float, at t.
func (o Object) GetFloat(member MemberID, t OrderT) (float64, error) {
	v, err := o.Get(member, t)
	if err != nil {
		return 0, err
	}
	f, ok := v.(*value.Float)
	if !ok {
		return 0, o.typeMismatch(member, v, "float")
	}
	return f.Val, nil
}

// GetText returns member's effective value as text, at t.
func (o Object) GetText(member MemberID, t OrderT) (string, error) {
	v, err := o.Get(member, t)
	if err != nil {
		return "", err
	}
	s, ok := v.(*value.Text)
	if !ok {
		return "", o.typeMismatch(member, v, "text")
	}
	return s.Val, nil
}

// GetBool returns member's effective value as a bool, at t.
func (o Object) GetBool(member MemberID, t OrderT) (bool, error) {
	v, err := o.Get(member, t)
	if err != nil {
		return false, err
	}
	b, ok := v.(*value.Bool)
	if !ok {
		return false, o.typeMismatch(member, v, "bool")
	}
	return b.Val, nil
}

// GetFile returns member's effective value as a filename, at t.
func (o Object) GetFile(member MemberID, t OrderT) (string, error) {
	v, err := o.Get(member, t)
	if err != nil {
		return "", err
	}
	f, ok := v.(*value.Filename)
	if !ok {
		return "", o.typeMismatch(member, v, "file")
	}
	return f.Val, nil
}

// GetSet returns member's effective value as a set, at t.
func (o Object) GetSet(member MemberID, t OrderT) ([]value.Value, error) {
	v, err := o.Get(member, t)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*value.Set)
	if !ok {
		return nil, o.typeMismatch(member, v, "set")
	}
	return s.Elements(), nil
}

// GetOrderedSet returns member's effective value as an ordered set, at t.
func (o Object) GetOrderedSet(member MemberID, t OrderT) ([]value.Value, error) {
	v, err := o.Get(member, t)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*value.OrderedSet)
	if !ok {
		return nil, o.typeMismatch(member, v, "orderedset")
	}
	return s.Elements(), nil
}

// GetDict returns member's effective value as a dict, at t.
func (o Object) GetDict(member MemberID, t OrderT) ([]value.DictEntry, error) {
	v, err := o.Get(member, t)
	if err != nil {
		return nil, err
	}
	d, ok := v.(*value.Dict)
	if !ok {
		return nil, o.typeMismatch(member, v, "dict")
	}
	return d.Entries(), nil
}

// GetObject returns member's effective value as an object handle in the
// same view, at t.
func (o Object) GetObject(member MemberID, t OrderT) (Object, error) {
	v, err := o.Get(member, t)
	if err != nil {
		return Object{}, err
	}
	ref, ok := v.(*value.ObjectRef)
	if !ok {
		return Object{}, o.typeMismatch(member, v, "object")
	}
	return Object{name: ref.Fqon, view: o.view}, nil
}
