package state

import (
	"fmt"
	"strings"

	"github.com/kylelemons/godebug/pretty"

	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/ops"
)

// ObjectChanges records the member names and inheritance edits a single
// ObjectState.Apply call actually changed, so the caller can invalidate
// exactly the caches (linearization, children) that need it.
type ObjectChanges struct {
	ChangedMembers []metainfo.MemberID
	AddedParents   []metainfo.Fqon
}

func (t *ObjectChanges) addMember(name metainfo.MemberID) {
	t.ChangedMembers = append(t.ChangedMembers, name)
}

func (t *ObjectChanges) addParent(name metainfo.Fqon) {
	t.AddedParents = append(t.AddedParents, name)
}

// ObjectState is one object's versioned storage: its parent list (in
// declaration order, front of the slice first) and its member map.
type ObjectState struct {
	Parents []metainfo.Fqon
	Members map[metainfo.MemberID]*Member
}

// NewObjectState creates an initial object state with the given parents
// and no members.
func NewObjectState(parents []metainfo.Fqon) *ObjectState {
	return &ObjectState{
		Parents: append([]metainfo.Fqon(nil), parents...),
		Members: make(map[metainfo.MemberID]*Member),
	}
}

// SetMembers replaces the member map wholesale; used only while building
// an object's initial state at load time.
func (o *ObjectState) SetMembers(members map[metainfo.MemberID]*Member) {
	o.Members = members
}

// Copy returns an independent copy-on-write clone: a new Parents slice
// and a new Members map holding copies of every member.
func (o *ObjectState) Copy() *ObjectState {
	parents := append([]metainfo.Fqon(nil), o.Parents...)
	members := make(map[metainfo.MemberID]*Member, len(o.Members))
	for name, m := range o.Members {
		members[name] = m.Copy()
	}
	return &ObjectState{Parents: parents, Members: members}
}

// HasMember reports whether this object's state carries a member with
// the given name (the member may have arrived through inheritance or a
// patch, not necessarily be initial).
func (o *ObjectState) HasMember(name metainfo.MemberID) bool {
	_, ok := o.Members[name]
	return ok
}

// Member returns the member with the given name, or nil.
func (o *ObjectState) Member(name metainfo.MemberID) *Member {
	return o.Members[name]
}

func hasParent(parents []metainfo.Fqon, target metainfo.Fqon) bool {
	for _, p := range parents {
		if p == target {
			return true
		}
	}
	return false
}

// Apply folds a patch's ObjectState mod onto this one: inheritance edits
// first (prepend/append a parent, skipped if already present), then each
// of mod's members folds onto the matching member here -- or, for a
// genuine patch, is copied wholesale when this object doesn't have the
// member yet, so a child object that never declared the member still
// sees the patch's contribution.
func (o *ObjectState) Apply(mod *ObjectState, modInfo *metainfo.ObjectInfo, tracker *ObjectChanges) error {
	for _, change := range modInfo.InheritanceChanges {
		if hasParent(o.Parents, change.Target) {
			continue
		}
		switch change.Type {
		case ops.AddFront:
			o.Parents = append([]metainfo.Fqon{change.Target}, o.Parents...)
		case ops.AddBack:
			o.Parents = append(o.Parents, change.Target)
		default:
			return fmt.Errorf("object state apply: unsupported inheritance change type")
		}
		tracker.addParent(change.Target)
	}

	for name, modMember := range mod.Members {
		existing, ok := o.Members[name]
		if !ok {
			if !modInfo.IsPatch() {
				return fmt.Errorf("object state apply: a non-patch tried to change nonexisting member %q", name)
			}
			o.Members[name] = modMember.Copy()
		} else {
			if err := existing.Apply(modMember); err != nil {
				return fmt.Errorf("object state apply: member %q: %w", name, err)
			}
		}
		tracker.addMember(name)
	}

	return nil
}

func (o *ObjectState) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ObjectState(%s)\n", strings.Join(o.Parents, ", "))
	if len(o.Members) == 0 {
		b.WriteString("    [no members]\n")
		return b.String()
	}
	rendered := make(map[string]string, len(o.Members))
	for name, m := range o.Members {
		rendered[name] = m.String()
	}
	b.WriteString(pretty.Sprint(rendered))
	b.WriteString("\n")
	return b.String()
}
