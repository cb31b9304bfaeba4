package state

import (
	"testing"

	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/ops"
	"github.com/sfttech/nyango/value"
)

func TestObjectStateApplyFoldsExistingMember(t *testing.T) {
	target := NewObjectState(nil)
	target.Members["x"] = NewMember(0, ops.Assign, metainfo.Type{}, value.NewInt(3))

	patch := NewObjectState(nil)
	patch.Members["x"] = NewMember(0, ops.AddAssign, metainfo.Type{}, value.NewInt(4))

	info := metainfo.NewObjectInfo(metainfo.Builtin("test"))
	info.Patch = metainfo.NewPatchInfo("root.Target")

	tracker := &ObjectChanges{}
	if err := target.Apply(patch, info, tracker); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := target.Members["x"].Value.(*value.Int).Val
	if got != 7 {
		t.Errorf("got %d, want 7", got)
	}
	if len(tracker.ChangedMembers) != 1 || tracker.ChangedMembers[0] != "x" {
		t.Errorf("tracker did not record the changed member: %+v", tracker.ChangedMembers)
	}
}

func TestObjectStateApplyCopiesNewMemberFromPatch(t *testing.T) {
	target := NewObjectState(nil)

	patch := NewObjectState(nil)
	patch.Members["y"] = NewMember(0, ops.Assign, metainfo.Type{}, value.NewText("hi"))

	info := metainfo.NewObjectInfo(metainfo.Builtin("test"))
	info.Patch = metainfo.NewPatchInfo("root.Target")

	if err := target.Apply(patch, info, &ObjectChanges{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !target.HasMember("y") {
		t.Fatal("expected member y to be copied from the patch")
	}
}

func TestObjectStateApplyNonPatchRejectsNewMember(t *testing.T) {
	target := NewObjectState(nil)

	mod := NewObjectState(nil)
	mod.Members["y"] = NewMember(0, ops.Assign, metainfo.Type{}, value.NewText("hi"))

	info := metainfo.NewObjectInfo(metainfo.Builtin("test")) // not a patch

	if err := target.Apply(mod, info, &ObjectChanges{}); err == nil {
		t.Error("expected an error when a non-patch tries to add a nonexisting member")
	}
}

func TestObjectStateApplyInheritanceEditSkipsExistingParent(t *testing.T) {
	target := NewObjectState([]string{"root.A"})

	info := metainfo.NewObjectInfo(metainfo.Builtin("test"))
	info.Patch = metainfo.NewPatchInfo("root.Target")
	info.AddInheritanceChange(metainfo.NewInheritanceChange(ops.AddFront, "root.A"))

	tracker := &ObjectChanges{}
	if err := target.Apply(NewObjectState(nil), info, tracker); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(target.Parents) != 1 {
		t.Errorf("expected parent list to stay deduplicated, got %v", target.Parents)
	}
	if len(tracker.AddedParents) != 0 {
		t.Errorf("expected no parent-add to be tracked for an already-present parent")
	}
}

func TestObjectStateCopyIsIndependent(t *testing.T) {
	original := NewObjectState([]string{"root.A"})
	original.Members["x"] = NewMember(0, ops.Assign, metainfo.Type{}, value.NewInt(1))

	clone := original.Copy()
	clone.Members["x"].Value.(*value.Int).Val = 99

	if original.Members["x"].Value.(*value.Int).Val != 1 {
		t.Error("mutating the clone's member value must not affect the original")
	}
}
