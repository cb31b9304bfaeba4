// Package loader performs the one-shot pass that turns a tree of parsed
// nyan files into a populated metainfo.MetaInfo registry and the
// database's initial state.State: it walks every imported file's object
// tree, resolves names through per-file namespace/alias scopes,
// linearizes every object's ancestry, propagates member types through
// inheritance and patch targets, and builds the initial member values.
//
// The lexer and parser that turn nyan source text into an ast.File are
// out of scope for this module; Load is handed a ParseFunc that already
// does that.
package loader

import (
	"strings"

	log "github.com/golang/glog"

	"github.com/sfttech/nyango/ast"
	"github.com/sfttech/nyango/internal/nsindex"
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/nyanerr"
	"github.com/sfttech/nyango/state"
)

// FileFetcher supplies the raw contents of an imported file, given the
// filename derived from its namespace.
type FileFetcher func(filename string) (string, error)

// ParseFunc turns one file's raw contents into its parsed AST.
type ParseFunc func(filename, content string) (*ast.File, error)

// fileScope is the per-file context needed to resolve identifiers
// written in that file: its own import aliases, plus (once seeded) a
// namespace index covering every object known to the whole load.
type fileScope struct {
	namespace string
	ast       *ast.File
	aliases   map[string]string // alias -> target namespace/object, as declared by this file's imports
	index     *nsindex.Index
}

// objRecord is one discovered object: its fully-qualified name, the
// namespace it's directly declared in (the file's namespace for a
// top-level object, the enclosing object's fqon for a nested one), its
// AST definition and the file scope it was found in.
type objRecord struct {
	fqon      metainfo.Fqon
	enclosing string
	def       *ast.ObjectDef
	scope     *fileScope
}

// valueUse records an object referenced as a member value, for the
// post-load check that every such object has no unassigned members.
type valueUse struct {
	fqon metainfo.Fqon
	loc  metainfo.Location
}

type loader struct {
	meta  *metainfo.MetaInfo
	st    *state.State
	files map[string]*fileScope // by namespace

	records  []*objRecord
	children map[metainfo.Fqon]map[metainfo.Fqon]struct{} // parent -> direct children
	valUses  []valueUse
}

// Load reads rootFilename and every file it (transitively) imports,
// fetching each through fetch and parsing it with parse, and returns the
// resulting type registry and initial database state.
func Load(rootFilename string, fetch FileFetcher, parse ParseFunc) (*metainfo.MetaInfo, *state.State, error) {
	l := &loader{
		meta:     metainfo.New(),
		st:       state.NewState(nil),
		files:    make(map[string]*fileScope),
		children: make(map[metainfo.Fqon]map[metainfo.Fqon]struct{}),
	}

	log.V(1).Infof("loader: importing closure starting at %s", rootFilename)
	if err := l.importAll(rootFilename, fetch, parse); err != nil {
		return nil, nil, err
	}
	log.V(1).Infof("loader: imported %d files", len(l.files))

	if err := l.discoverObjects(); err != nil {
		return nil, nil, err
	}
	log.V(1).Infof("loader: discovered %d objects", len(l.records))

	l.seedScopeIndices()

	if err := l.checkImports(); err != nil {
		return nil, nil, err
	}

	if err := l.buildContent(); err != nil {
		return nil, nil, err
	}

	if err := l.linearizeNew(); err != nil {
		return nil, nil, err
	}

	if err := l.resolveTypes(); err != nil {
		return nil, nil, err
	}

	if err := l.buildObjectStates(); err != nil {
		return nil, nil, err
	}

	log.V(1).Infof("loader: running hierarchy checks over %d objects", len(l.records))
	if err := l.checkHierarchy(); err != nil {
		return nil, nil, err
	}

	for obj, kids := range l.children {
		info, ok := l.meta.Get(obj)
		if !ok {
			continue // parent outside this load, e.g. not found -- reported earlier already
		}
		info.SetChildren(kids)
	}

	return l.meta, l.st, nil
}

// namespaceToFilename and filenameToNamespace are inverses: a namespace
// is a dot-separated path, a filename the same path with "/" separators
// and a ".nyan" suffix.
func filenameToNamespace(filename string) string {
	name := strings.TrimSuffix(filename, ".nyan")
	return strings.ReplaceAll(name, "/", ".")
}

func namespaceToFilename(namespace string) string {
	return strings.ReplaceAll(namespace, ".", "/") + ".nyan"
}

// joinNamespace appends name to ns, the way a nested object's fqon is
// built from its enclosing namespace.
func joinNamespace(ns, name string) string {
	if ns == "" {
		return name
	}
	return ns + "." + name
}

func resolveRef(scope *fileScope, ns, ref string) (metainfo.Fqon, error) {
	got, ok := nsindex.Resolve(ref, scope.index, ns)
	if !ok {
		return "", nyanerr.NewNameError(
			metainfo.Location{Filename: scope.ast.Filename},
			"could not resolve name", ref,
		)
	}
	return got, nil
}
