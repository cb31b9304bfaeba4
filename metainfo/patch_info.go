package metainfo

import "github.com/sfttech/nyango/ops"

// PatchInfo marks an object as a patch: it describes the target object a
// patch modifies. Shared by every object that inherits patch-ness from a
// common ancestor patch declaration.
type PatchInfo struct {
	Target Fqon
}

func NewPatchInfo(target Fqon) *PatchInfo {
	return &PatchInfo{Target: target}
}

// InheritanceChange records one edit a patch makes to its target's
// parent list: prepend or append the named parent.
type InheritanceChange struct {
	Type   ops.InheritanceChange
	Target Fqon
}

func NewInheritanceChange(typ ops.InheritanceChange, target Fqon) InheritanceChange {
	return InheritanceChange{Type: typ, Target: target}
}
