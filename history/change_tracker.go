// Package history implements the per-view versioned storage that sits on
// top of state: a Curve of full database States keyed by ordinal, plus
// per-object linearization and children curves that cache the more
// expensive-to-recompute derived structure.
package history

import (
	"github.com/sfttech/nyango/metainfo"
	"github.com/sfttech/nyango/state"
)

// ChangeTracker collects, over the course of one transaction, which
// objects were touched and what changed about each -- so the commit path
// knows exactly which linearization/children caches to invalidate.
type ChangeTracker struct {
	changes map[metainfo.Fqon]*state.ObjectChanges
}

func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{changes: make(map[metainfo.Fqon]*state.ObjectChanges)}
}

// TrackPatch returns the ObjectChanges tracker for targetName, creating
// one on first use.
func (c *ChangeTracker) TrackPatch(targetName metainfo.Fqon) *state.ObjectChanges {
	if oc, ok := c.changes[targetName]; ok {
		return oc
	}
	oc := &state.ObjectChanges{}
	c.changes[targetName] = oc
	return oc
}

// ObjectChanges returns the full per-object change map.
func (c *ChangeTracker) ObjectChanges() map[metainfo.Fqon]*state.ObjectChanges {
	return c.changes
}

// ChangedObjects returns every object name this tracker recorded a
// change for.
func (c *ChangeTracker) ChangedObjects() []metainfo.Fqon {
	out := make([]metainfo.Fqon, 0, len(c.changes))
	for name := range c.changes {
		out = append(out, name)
	}
	return out
}
