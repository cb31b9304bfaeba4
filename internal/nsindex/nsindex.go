// Package nsindex resolves namespace and alias scopes during loading: it
// answers "what does this bare identifier refer to, given the imports and
// nesting visible at this point in the file" using a prefix trie over
// every fully-qualified name registered so far.
package nsindex

import (
	"fmt"
	"strings"

	"github.com/derekparker/trie"
)

// Index maps short names (aliases and bare object names) onto their
// fully-qualified target, and supports prefix lookups for "does any
// object live under this namespace" checks during import resolution.
type Index struct {
	names   *trie.Trie
	aliases map[string]string
}

func New() *Index {
	return &Index{
		names:   trie.New(),
		aliases: make(map[string]string),
	}
}

// AddObject registers a fully-qualified object name so it can be found
// by prefix search (e.g. to validate that an imported namespace actually
// contains something).
func (idx *Index) AddObject(fqon string) {
	idx.names.Add(fqon, nil)
}

// AddAlias binds a short alias to the namespace or object it stands for.
// Returns an error if alias is already bound to something different,
// catching the "duplicate alias" NameError case.
func (idx *Index) AddAlias(alias, target string) error {
	if existing, ok := idx.aliases[alias]; ok && existing != target {
		return fmt.Errorf("alias %q already bound to %q, can't rebind to %q", alias, existing, target)
	}
	idx.aliases[alias] = target
	return nil
}

// ResolveAlias returns the namespace or object an alias stands for.
func (idx *Index) ResolveAlias(alias string) (string, bool) {
	target, ok := idx.aliases[alias]
	return target, ok
}

// HasNamespace reports whether any registered fully-qualified name lives
// under the given namespace prefix.
func (idx *Index) HasNamespace(prefix string) bool {
	if prefix == "" {
		return len(idx.names.Keys()) > 0
	}
	return len(idx.names.PrefixSearch(prefix+".")) > 0
}

// Names returns every fully-qualified name registered so far.
func (idx *Index) Names() []string {
	return idx.names.Keys()
}

// Resolve turns a reference as written in source -- possibly
// alias-prefixed, e.g. "alias.Sub.Name" -- into a fully-qualified name,
// given the namespace the reference appears in. It searches the
// containing namespace outward toward the root first, trying an exact
// match at each enclosing level, and only once that search is exhausted
// falls back to expanding the reference's first component as an alias.
func Resolve(ref string, idx *Index, currentNamespace string) (string, bool) {
	names := idx.names.Keys()

	base := currentNamespace
	for {
		candidate := ref
		if base != "" {
			candidate = base + "." + ref
		}
		if _, exact := contains(names, candidate); exact {
			return candidate, true
		}
		if base == "" {
			break
		}
		base = popLastComponent(base)
	}

	parts := strings.SplitN(ref, ".", 2)
	if target, ok := idx.ResolveAlias(parts[0]); ok {
		expanded := target
		if len(parts) == 2 {
			expanded = target + "." + parts[1]
		}
		if _, exact := contains(names, expanded); exact {
			return expanded, true
		}
	}

	return "", false
}

// popLastComponent strips the last dot-separated component of ns,
// widening the search one level toward the root ("" once exhausted).
func popLastComponent(ns string) string {
	i := strings.LastIndexByte(ns, '.')
	if i < 0 {
		return ""
	}
	return ns[:i]
}

func contains(haystack []string, needle string) (string, bool) {
	for _, s := range haystack {
		if s == needle {
			return s, true
		}
	}
	return "", false
}
