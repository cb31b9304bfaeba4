package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kylelemons/godebug/pretty"

	"github.com/sfttech/nyango/metainfo"
)

// State is a full database snapshot at some ordinal: a map of every
// object touched by this state plus a link to the state before it.
// Objects absent from this map are unchanged from the previous state.
type State struct {
	objects  map[metainfo.Fqon]*ObjectState
	previous *State
}

// NewState creates an empty state linked to previous (nil for the very
// first state in a history).
func NewState(previous *State) *State {
	return &State{objects: make(map[metainfo.Fqon]*ObjectState), previous: previous}
}

// Get returns the object state stored directly in this state (not
// consulting Previous), or nil.
func (s *State) Get(fqon metainfo.Fqon) *ObjectState {
	return s.objects[fqon]
}

// Previous returns the state this one was built from, or nil for the
// initial state.
func (s *State) Previous() *State {
	return s.previous
}

// Objects returns the object states held directly in this state.
func (s *State) Objects() map[metainfo.Fqon]*ObjectState {
	return s.objects
}

// AddObject inserts an object state. Only valid on the database's
// initial state (Previous == nil): every later state is populated via
// copy-on-write during a transaction, never by direct insertion of a
// brand new object identity.
func (s *State) AddObject(name metainfo.Fqon, obj *ObjectState) error {
	if s.previous != nil {
		return fmt.Errorf("state: can't add a new object to a non-initial state")
	}
	if _, exists := s.objects[name]; exists {
		return fmt.Errorf("state: object %q already exists", name)
	}
	s.objects[name] = obj
	return nil
}

// Update merges every object from source into this state, overwriting
// whatever this state already held for the same name. Used when a
// transaction commits at an ordinal this history already has an exact
// state for.
func (s *State) Update(source *State) {
	for name, obj := range source.objects {
		s.objects[name] = obj
	}
}

// CopyObject ensures this state holds its own ObjectState for name,
// copy-on-write: if this state doesn't have one yet, it clones source
// and stores the clone; either way it returns this state's copy.
func (s *State) CopyObject(name metainfo.Fqon, source *ObjectState) (*ObjectState, error) {
	if existing, ok := s.objects[name]; ok {
		return existing, nil
	}
	if source == nil {
		return nil, fmt.Errorf("state: copy source for %q not found", name)
	}
	clone := source.Copy()
	s.objects[name] = clone
	return clone, nil
}

func (s *State) String() string {
	var b strings.Builder
	b.WriteString("State:\n")
	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "%s =>\n%s", name, s.objects[name].String())
	}
	return b.String()
}

// DebugDiff renders a side-by-side summary of every object this state
// and other disagree on, using pretty.Sprint for each object's member
// map -- a quick way to eyeball what a transaction actually changed.
func (s *State) DebugDiff(other *State) string {
	var b strings.Builder
	names := make(map[string]struct{}, len(s.objects)+len(other.objects))
	for name := range s.objects {
		names[name] = struct{}{}
	}
	for name := range other.objects {
		names[name] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	for _, name := range sorted {
		a, b2 := s.objects[name], other.objects[name]
		if a == b2 {
			continue
		}
		fmt.Fprintf(&b, "%s:\n- %s\n+ %s\n", name, pretty.Sprint(a), pretty.Sprint(b2))
	}
	return b.String()
}
