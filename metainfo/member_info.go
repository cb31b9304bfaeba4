package metainfo

// MemberInfo carries the declared, state-independent structure of a
// single member: where it was declared and its type, plus whether this
// declaration is the initial type definition an inheritance search locks
// onto.
type MemberInfo struct {
	Location Location
	Type     Type

	// InitialDef is true iff this member declaration is the one that
	// fixed the member's type: a plain declaration, never one arriving
	// through inheritance or a patch.
	InitialDef bool
}

func NewMemberInfo(loc Location, typ Type, initial bool) MemberInfo {
	return MemberInfo{Location: loc, Type: typ, InitialDef: initial}
}
