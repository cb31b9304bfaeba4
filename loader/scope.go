package loader

import "github.com/sfttech/nyango/internal/nsindex"

// seedScopeIndices builds each file's namespace index: every object name
// discovered anywhere in the load (so an import can resolve into another
// file's objects) plus that file's own alias bindings.
func (l *loader) seedScopeIndices() {
	names := l.meta.Names()

	for _, scope := range l.files {
		idx := nsindex.New()
		for _, name := range names {
			idx.AddObject(name)
		}
		for alias, target := range scope.aliases {
			// importAll already rejected an alias bound to two
			// different namespaces in one file, so each alias has
			// exactly one target here; AddAlias can't fail.
			_ = idx.AddAlias(alias, target)
		}
		scope.index = idx
	}
}
