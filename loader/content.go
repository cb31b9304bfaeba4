package loader

import (
	"strconv"

	"github.com/sfttech/nyango/ast"
	"github.com/sfttech/nyango/basictype"
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/nyanerr"
	"github.com/sfttech/nyango/state"
)

// buildContent resolves each object's patch target, inheritance edits
// and parent list, fills in the member metadata for every explicitly
// typed member, and creates the object's initial ObjectState.
func (l *loader) buildContent() error {
	var errs []error

	for _, rec := range l.records {
		if err := l.buildOneContent(rec); err != nil {
			errs = append(errs, err)
		}
	}

	return joinErrs(errs)
}

func (l *loader) buildOneContent(rec *objRecord) error {
	info, ok := l.meta.Get(rec.fqon)
	if !ok {
		return nyanerr.NewInternalError("object info not found for " + rec.fqon)
	}

	def := rec.def

	if def.IsPatch {
		target, err := resolveRef(rec.scope, rec.enclosing, def.Target)
		if err != nil {
			return err
		}
		info.Patch = metainfo.NewPatchInfo(target)
		info.InitialPatch = true
	}

	for _, edit := range def.InheritanceEdits {
		target, err := resolveRef(rec.scope, rec.enclosing, edit.Target)
		if err != nil {
			return err
		}
		info.AddInheritanceChange(metainfo.NewInheritanceChange(edit.Type, target))
	}

	parents := make([]metainfo.Fqon, 0, len(def.Parents))
	for _, p := range def.Parents {
		parentFqon, err := resolveRef(rec.scope, rec.enclosing, p)
		if err != nil {
			return err
		}
		parents = append(parents, parentFqon)

		kids, ok := l.children[parentFqon]
		if !ok {
			kids = make(map[metainfo.Fqon]struct{})
			l.children[parentFqon] = kids
		}
		kids[rec.fqon] = struct{}{}
	}

	if err := l.st.AddObject(rec.fqon, state.NewObjectState(parents)); err != nil {
		return nyanerr.NewInternalError(err.Error())
	}

	for _, m := range def.Members {
		loc := metainfo.Location{Filename: rec.scope.ast.Filename, Line: m.Loc.Line, LineOffset: m.Loc.Column}

		if m.Type.Name == "" {
			// no explicit type -- resolved later from an ancestor or
			// patch target.
			info.AddMember(m.Name, metainfo.NewMemberInfo(loc, metainfo.Type{}, false))
			continue
		}

		typ, err := buildType(m.Type, rec.scope, rec.enclosing)
		if err != nil {
			return err
		}
		info.AddMember(m.Name, metainfo.NewMemberInfo(loc, typ, true))
	}

	return nil
}

// buildType folds a raw AST type expression into a metainfo.Type,
// peeling off modifier wrappers (optional/abstract/children) into that
// Type's boolean flags and resolving object type names through scope.
func buildType(expr ast.TypeExpr, scope *fileScope, ns string) (metainfo.Type, error) {
	var optional, abstract, children bool
	cur := expr

	for {
		b := basictype.FromToken(cur.Name)
		if !b.IsModifier() {
			break
		}
		switch b.Composite {
		case basictype.Optional:
			optional = true
		case basictype.Abstract:
			abstract = true
		case basictype.Children:
			children = true
		}
		if len(cur.Elements) != 1 {
			return metainfo.Type{}, nyanerr.NewTypeError(
				metainfo.Location{Filename: scope.ast.Filename, Line: cur.Loc.Line, LineOffset: cur.Loc.Column},
				"modifier type "+cur.Name+" must wrap exactly one nested type",
			)
		}
		cur = cur.Elements[0]
	}

	base := basictype.FromToken(cur.Name)
	typ := metainfo.Type{Basic: base, Optional: optional, Abstract: abstract, Children: children}

	if base.IsObject() {
		fqon, err := resolveRef(scope, ns, cur.Name)
		if err != nil {
			return metainfo.Type{}, err
		}
		typ.ObjectFqon = fqon
		return typ, nil
	}

	if base.IsComposite() {
		expected := base.ExpectedNestedTypes()
		if len(cur.Elements) != expected {
			return metainfo.Type{}, nyanerr.NewTypeError(
				metainfo.Location{Filename: scope.ast.Filename, Line: cur.Loc.Line, LineOffset: cur.Loc.Column},
				"type "+cur.Name+" requires exactly "+strconv.Itoa(expected)+" nested type(s)",
			)
		}
		for _, e := range cur.Elements {
			elemType, err := buildType(e, scope, ns)
			if err != nil {
				return metainfo.Type{}, err
			}
			typ.Elements = append(typ.Elements, elemType)
		}
	}

	return typ, nil
}
