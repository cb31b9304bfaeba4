package loader

import (
	"github.com/sfttech/nyango/ast"
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/nyanerr"
	"github.com/sfttech/nyango/state"
	"github.com/sfttech/nyango/value"
)

// buildObjectStates constructs the initial Value for every member that
// was given one in source, and checks that its declared operator is one
// the value's type actually allows.
func (l *loader) buildObjectStates() error {
	var errs []error

	for _, rec := range l.records {
		if err := l.buildOneObjectState(rec); err != nil {
			errs = append(errs, err)
		}
	}

	return joinErrs(errs)
}

func (l *loader) buildOneObjectState(rec *objRecord) error {
	def := rec.def
	if len(def.Members) == 0 {
		return nil
	}

	info, ok := l.meta.Get(rec.fqon)
	if !ok {
		return nyanerr.NewInternalError("object info not found for " + rec.fqon)
	}

	objstate := l.st.Get(rec.fqon)
	if objstate == nil {
		return nyanerr.NewInternalError("object state not found for " + rec.fqon)
	}

	members := make(map[metainfo.MemberID]*state.Member, len(def.Members))

	var errs []error

	for _, m := range def.Members {
		if !m.HasValue {
			continue
		}

		minfo, ok := info.Member(m.Name)
		if !ok {
			errs = append(errs, nyanerr.NewInternalError("member info not found for "+rec.fqon+"."+m.Name))
			continue
		}

		loc := metainfo.Location{Filename: rec.scope.ast.Filename, Line: m.Loc.Line, LineOffset: m.Loc.Column}

		val, err := l.buildValue(minfo.Type, m.Value, rec.scope, rec.enclosing, loc)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		allowed := val.AllowedOperations(minfo.Type.Basic)
		if _, ok := allowed[m.Op]; !ok {
			errs = append(errs, nyanerr.NewTypeError(
				loc, "invalid operator for member '"+m.Name+"' of type "+minfo.Type.String(),
			))
			continue
		}

		members[m.Name] = state.NewMember(0, m.Op, minfo.Type, val)
	}

	if len(errs) > 0 {
		return joinErrs(errs)
	}

	objstate.SetMembers(members)
	return nil
}

// buildValue constructs a value.Value from a raw AST literal, resolving
// any object reference it contains through scope and recording it as a
// value use for the non-abstract-ness check that runs afterward.
func (l *loader) buildValue(typ metainfo.Type, expr ast.ValueExpr, scope *fileScope, ns string, loc metainfo.Location) (value.Value, error) {
	switch expr.Kind {
	case "none":
		return value.None, nil
	case "bool":
		return value.NewBool(expr.BoolVal), nil
	case "int":
		return value.NewInt(expr.IntVal), nil
	case "float":
		return value.NewFloat(expr.FloatVal), nil
	case "text":
		return value.NewText(expr.TextVal), nil
	case "file":
		return value.NewFilename(expr.TextVal), nil
	case "object":
		fqon, err := resolveRef(scope, ns, expr.TextVal)
		if err != nil {
			return nil, err
		}
		l.valUses = append(l.valUses, valueUse{fqon: fqon, loc: loc})
		return value.NewObjectRef(fqon), nil
	case "set":
		elemType := elementType(typ, 0)
		elems := make([]value.Value, 0, len(expr.Elements))
		for _, e := range expr.Elements {
			v, err := l.buildValue(elemType, e, scope, ns, loc)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return value.NewSet(elems...), nil
	case "orderedset":
		elemType := elementType(typ, 0)
		elems := make([]value.Value, 0, len(expr.Elements))
		for _, e := range expr.Elements {
			v, err := l.buildValue(elemType, e, scope, ns, loc)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return value.NewOrderedSet(elems...), nil
	case "dict":
		keyType, valType := elementType(typ, 0), elementType(typ, 1)
		entries := make([]value.DictEntry, 0, len(expr.DictEntries))
		for _, de := range expr.DictEntries {
			k, err := l.buildValue(keyType, de.Key, scope, ns, loc)
			if err != nil {
				return nil, err
			}
			v, err := l.buildValue(valType, de.Val, scope, ns, loc)
			if err != nil {
				return nil, err
			}
			entries = append(entries, value.DictEntry{Key: k, Val: v})
		}
		return value.NewDict(entries...), nil
	}

	return nil, nyanerr.NewInternalError("unknown value literal kind: " + expr.Kind)
}

func elementType(typ metainfo.Type, i int) metainfo.Type {
	if i < len(typ.Elements) {
		return typ.Elements[i]
	}
	return metainfo.Type{}
}
