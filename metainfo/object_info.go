package metainfo

// ObjectInfo is the declared, immutable-after-load structure of one
// object: where it lives, whether it's a patch and of what, its
// inheritance edits, its members' declared types, and the linearization/
// children snapshots computed at load time (state-layer curves fall back
// to these when they hold no later override).
type ObjectInfo struct {
	Location Location

	// InitialPatch is true when this object was declared with an
	// explicit <target>, false when it only inherits patch-ness from a
	// parent.
	InitialPatch bool

	// Patch is non-nil iff this object (or one of its ancestors) is a
	// patch.
	Patch *PatchInfo

	InheritanceChanges []InheritanceChange

	Members map[MemberID]MemberInfo

	InitialLinearization []Fqon
	InitialChildren       map[Fqon]struct{}
}

func NewObjectInfo(loc Location) *ObjectInfo {
	return &ObjectInfo{
		Location: loc,
		Members:  make(map[MemberID]MemberInfo),
	}
}

// IsPatch reports whether this object is a patch, whether declared or
// inherited.
func (o *ObjectInfo) IsPatch() bool {
	return o.Patch != nil
}

// AddMember records metadata for a declared member.
func (o *ObjectInfo) AddMember(name MemberID, info MemberInfo) {
	o.Members[name] = info
}

// Member looks up a member's declared metadata.
func (o *ObjectInfo) Member(name MemberID) (MemberInfo, bool) {
	info, ok := o.Members[name]
	return info, ok
}

// AddInheritanceChange records a patch edit to the target's parent list.
func (o *ObjectInfo) AddInheritanceChange(change InheritanceChange) {
	o.InheritanceChanges = append(o.InheritanceChanges, change)
}

// SetLinearization stores the C3 linearization computed for this object
// at load time.
func (o *ObjectInfo) SetLinearization(lin []Fqon) {
	o.InitialLinearization = lin
}

// SetChildren stores the direct-children set computed for this object at
// load time.
func (o *ObjectInfo) SetChildren(children map[Fqon]struct{}) {
	o.InitialChildren = children
}
