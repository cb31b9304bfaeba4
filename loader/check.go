package loader

import (
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/nyanerr"
	"github.com/sfttech/nyango/ops"
)

// checkHierarchy runs the load's sanity checks: inheritance edits only
// ever appear on an object that is itself a patch, every member that
// uses a relative operator has an ASSIGN somewhere in its resolution
// chain to actually operate on, and every object used as a member value
// has no member left unassigned anywhere in its own ancestry.
func (l *loader) checkHierarchy() error {
	var errs []error

	for _, rec := range l.records {
		info, ok := l.meta.Get(rec.fqon)
		if !ok {
			continue
		}
		objstate := l.st.Get(rec.fqon)
		if objstate == nil {
			continue
		}

		if len(info.InheritanceChanges) > 0 && !info.IsPatch() {
			errs = append(errs, nyanerr.NewTypeError(
				info.Location, "inheritance additions can only be done in patches",
			))
		}

		for memberID := range objstate.Members {
			assignOK, otherOp := l.memberHasAssign(memberID, info.InitialLinearization, info, false)
			if otherOp && !assignOK {
				minfo, _ := info.Member(memberID)
				errs = append(errs, nyanerr.NewTypeError(
					minfo.Location, "this member was never assigned a value",
				))
			}
		}
	}

	errs = append(errs, l.checkValueUses()...)

	return joinErrs(errs)
}

// memberHasAssign walks searchObjs (then, if info is a patch, the patch
// target's own linearization) looking for the member's operator: it
// reports whether an ASSIGN was found and whether any other operator was
// seen before it.
func (l *loader) memberHasAssign(memberID metainfo.MemberID, searchObjs []metainfo.Fqon, info *metainfo.ObjectInfo, skipFirst bool) (assignOK, otherOp bool) {
	for i, obj := range searchObjs {
		if skipFirst && i == 0 {
			continue
		}
		objstate := l.st.Get(obj)
		if objstate == nil {
			continue
		}
		member := objstate.Member(memberID)
		if member == nil {
			continue
		}
		if member.Operation == ops.Assign {
			return true, otherOp
		}
		otherOp = true
	}

	if info.IsPatch() {
		targetInfo, ok := l.meta.Get(info.Patch.Target)
		if !ok {
			return assignOK, otherOp
		}
		targetAssign, targetOther := l.memberHasAssign(memberID, targetInfo.InitialLinearization, targetInfo, false)
		return assignOK || targetAssign, otherOp || targetOther
	}

	return assignOK, otherOp
}

// checkValueUses verifies that every object referenced as a member value
// has, across its whole ancestry, no member left without an eventual
// ASSIGN -- the "must be non-abstract" requirement.
func (l *loader) checkValueUses() []error {
	var errs []error
	checked := make(map[metainfo.Fqon]bool)

	for _, use := range l.valUses {
		if checked[use.fqon] {
			continue
		}

		info, ok := l.meta.Get(use.fqon)
		if !ok {
			errs = append(errs, nyanerr.NewInternalError("object used as value has no metainfo: "+use.fqon))
			continue
		}

		pending := make(map[metainfo.MemberID]struct{})

		lin := info.InitialLinearization
		for i := len(lin) - 1; i >= 0; i-- {
			ancestor := lin[i]
			ancInfo, ok := l.meta.Get(ancestor)
			if !ok {
				continue
			}
			ancState := l.st.Get(ancestor)
			if ancState == nil {
				continue
			}

			for memberID := range ancInfo.Members {
				if !ancState.HasMember(memberID) {
					pending[memberID] = struct{}{}
				}
			}
			for memberID, member := range ancState.Members {
				if member.Operation == ops.Assign {
					delete(pending, memberID)
				}
			}
		}

		if len(pending) > 0 {
			errs = append(errs, nyanerr.NewTypeError(
				use.loc, "this object has members without values: "+joinMemberIDs(pending),
			))
		}

		checked[use.fqon] = true
	}

	return errs
}

func joinMemberIDs(ids map[metainfo.MemberID]struct{}) string {
	out := ""
	first := true
	for id := range ids {
		if !first {
			out += ", "
		}
		first = false
		out += id
	}
	return out
}
