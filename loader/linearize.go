package loader

import (
	"github.com/sfttech/nyango/internal/c3"
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/nyanerr"
)

// linearizeNew computes and stores the C3 linearization of every newly
// loaded object's ancestry, reading direct parents from the state built
// during buildContent.
func (l *loader) linearizeNew() error {
	var errs []error

	for _, rec := range l.records {
		info, ok := l.meta.Get(rec.fqon)
		if !ok {
			errs = append(errs, nyanerr.NewInternalError("object info not found for "+rec.fqon))
			continue
		}

		lin, err := c3.Linearize(rec.fqon, func(name c3.Fqon) ([]c3.Fqon, error) {
			obj := l.st.Get(name)
			if obj == nil {
				return nil, nyanerr.NewInternalError("object state not found for " + name)
			}
			return obj.Parents, nil
		})
		if err != nil {
			errs = append(errs, nyanerr.NewC3Error(info.Location, err.Error()))
			continue
		}

		info.SetLinearization(lin)
	}

	return joinErrs(errs)
}

// resolveTypes links each patched-into-by-inheritance object to its
// ancestor's patch target, then resolves the type of every member that
// wasn't given an explicit one by searching the object's linearization
// and, if it's a patch, recursing into the patch target.
func (l *loader) resolveTypes() error {
	var errs []error

	for _, rec := range l.records {
		info, ok := l.meta.Get(rec.fqon)
		if !ok {
			continue
		}

		lin := info.InitialLinearization
		if len(lin) < 1 {
			errs = append(errs, nyanerr.NewInternalError("linearization doesn't contain the object itself: "+rec.fqon))
			continue
		}

		for _, ancestor := range lin[1:] {
			ancestorInfo, ok := l.meta.Get(ancestor)
			if !ok {
				continue
			}
			if !ancestorInfo.InitialPatch {
				continue
			}
			if info.InitialPatch {
				errs = append(errs, nyanerr.NewTypeError(
					info.Location, "child patches can't declare a patch target",
					nyanerr.Reason{Location: ancestorInfo.Location, Msg: "parent that declares the patch"},
				))
				continue
			}
			info.Patch = ancestorInfo.Patch
		}
	}

	for _, rec := range l.records {
		info, ok := l.meta.Get(rec.fqon)
		if !ok {
			continue
		}

		for memberID, minfo := range info.Members {
			if minfo.InitialDef {
				continue
			}

			typ, _, found, err := l.resolveMemberType(memberID, minfo.Location, info.InitialLinearization, info, true)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if !found {
				errs = append(errs, nyanerr.NewTypeError(
					minfo.Location,
					"could not infer type of '"+memberID+"' from parents or patch target",
				))
				continue
			}

			minfo.Type = typ
			info.Members[memberID] = minfo
		}
	}

	return joinErrs(errs)
}

// resolveMemberType searches searchObjs (skipping the very first entry
// when skipFirst, so an object doesn't match its own undefined member)
// for the ancestor that initially defined memberID's type, erroring if
// more than one does. If none do and info is a patch, it recurses into
// the patch target's own linearization.
func (l *loader) resolveMemberType(memberID metainfo.MemberID, seekerLoc metainfo.Location, searchObjs []metainfo.Fqon, info *metainfo.ObjectInfo, skipFirst bool) (metainfo.Type, metainfo.Location, bool, error) {
	var (
		foundType metainfo.Type
		foundLoc  metainfo.Location
		found     bool
	)

	for i, obj := range searchObjs {
		if skipFirst && i == 0 {
			continue
		}

		objInfo, ok := l.meta.Get(obj)
		if !ok {
			return metainfo.Type{}, metainfo.Location{}, false, nyanerr.NewInternalError("object info not found for " + obj)
		}

		m, ok := objInfo.Member(memberID)
		if !ok || !m.InitialDef {
			continue
		}

		if found {
			return metainfo.Type{}, metainfo.Location{}, false, nyanerr.NewTypeError(
				seekerLoc, "parent '"+obj+"' already defines type of '"+memberID+"'",
				nyanerr.Reason{Location: m.Location, Msg: "parent that declares the member"},
			)
		}
		foundType, foundLoc, found = m.Type, m.Location, true
	}

	if found {
		return foundType, foundLoc, true, nil
	}

	if info.IsPatch() {
		targetInfo, ok := l.meta.Get(info.Patch.Target)
		if !ok {
			return metainfo.Type{}, metainfo.Location{}, false, nyanerr.NewInternalError("patch target not found: " + info.Patch.Target)
		}
		return l.resolveMemberType(memberID, seekerLoc, targetInfo.InitialLinearization, targetInfo, false)
	}

	return metainfo.Type{}, metainfo.Location{}, false, nil
}
