package loader

import (
	"github.com/sfttech/nyango/ast"
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/nyanerr"
)

// importAll BFS-walks the import graph starting at rootFilename,
// fetching and parsing every transitively imported file exactly once and
// recording each file's own alias declarations.
func (l *loader) importAll(rootFilename string, fetch FileFetcher, parse ParseFunc) error {
	rootNS := filenameToNamespace(rootFilename)

	type pending struct {
		namespace string
		reqLoc    metainfo.Location
	}

	toImport := []pending{{rootNS, metainfo.Builtin("requested by Load()")}}
	queued := map[string]struct{}{rootNS: {}}

	for len(toImport) > 0 {
		cur := toImport[0]
		toImport = toImport[1:]

		if _, done := l.files[cur.namespace]; done {
			continue
		}

		filename := namespaceToFilename(cur.namespace)
		content, err := fetch(filename)
		if err != nil {
			return &nyanerr.FileReadError{Location: cur.reqLoc, Filename: filename, Cause: err}
		}

		file, err := parse(filename, content)
		if err != nil {
			return &nyanerr.FileReadError{Location: cur.reqLoc, Filename: filename, Cause: err}
		}

		scope := &fileScope{
			namespace: cur.namespace,
			ast:       file,
			aliases:   make(map[string]string),
		}
		l.files[cur.namespace] = scope

		for _, imp := range file.Imports {
			if imp.Alias != "" {
				if prev, dup := scope.aliases[imp.Alias]; dup && prev != imp.Namespace {
					return nyanerr.NewNameError(
						metainfo.Location{Filename: filename, Line: imp.Loc.Line, LineOffset: imp.Loc.Column},
						"import alias already bound to "+prev, imp.Alias)
				}
				scope.aliases[imp.Alias] = imp.Namespace
			}

			if _, already := l.files[imp.Namespace]; already {
				continue
			}
			if _, already := queued[imp.Namespace]; already {
				continue
			}
			queued[imp.Namespace] = struct{}{}
			toImport = append(toImport, pending{
				imp.Namespace,
				metainfo.Location{Filename: filename, Line: imp.Loc.Line, LineOffset: imp.Loc.Column},
			})
		}
	}

	return nil
}

// discoverObjects walks every file's object tree in post-order (nested
// objects before their enclosing one, matching how their fqons nest) and
// registers an empty ObjectInfo for each, catching name conflicts with an
// import alias along the way.
func (l *loader) discoverObjects() error {
	var errs []error

	for _, scope := range l.files {
		l.walkObjects(scope, scope.namespace, scope.ast.Objects, &errs)
	}

	return joinErrs(errs)
}

// checkImports verifies that every file's import statements actually
// resolve to a namespace holding at least one object, catching a typoed
// or empty import the BFS walk itself can't: importAll only needs a
// file to exist at the derived path, not for it to declare anything
// useful under the imported namespace.
func (l *loader) checkImports() error {
	var errs []error

	for _, scope := range l.files {
		for _, imp := range scope.ast.Imports {
			if scope.index.HasNamespace(imp.Namespace) {
				continue
			}
			errs = append(errs, nyanerr.NewNameError(
				metainfo.Location{Filename: scope.ast.Filename, Line: imp.Loc.Line, LineOffset: imp.Loc.Column},
				"import does not resolve to any known object",
				imp.Namespace,
			))
		}
	}

	return joinErrs(errs)
}

func (l *loader) walkObjects(scope *fileScope, ns string, defs []ast.ObjectDef, errs *[]error) {
	for i := range defs {
		def := &defs[i]
		fqon := joinNamespace(ns, def.Name)

		// nested objects are processed first, matching the order their
		// own fqons are built in (this object's fqon prefixes theirs).
		l.walkObjects(scope, fqon, def.NestedObjects, errs)

		if target, isAlias := scope.aliases[def.Name]; isAlias {
			*errs = append(*errs, nyanerr.NewNameError(
				metainfo.Location{Filename: scope.ast.Filename, Line: def.Loc.Line, LineOffset: def.Loc.Column},
				"object name conflicts with an import alias bound to "+target,
				def.Name,
			))
			continue
		}

		loc := metainfo.Location{Filename: scope.ast.Filename, Line: def.Loc.Line, LineOffset: def.Loc.Column}
		if err := l.meta.Add(fqon, metainfo.NewObjectInfo(loc)); err != nil {
			*errs = append(*errs, nyanerr.NewNameError(loc, err.Error(), fqon))
			continue
		}

		l.records = append(l.records, &objRecord{
			fqon:      fqon,
			enclosing: ns,
			def:       def,
			scope:     scope,
		})
	}
}
