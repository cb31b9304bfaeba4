package metainfo

import "fmt"

// MetaInfo is the database's read-only registry of every object's
// declared structure, built once at load time.
type MetaInfo struct {
	objects map[Fqon]*ObjectInfo
}

func New() *MetaInfo {
	return &MetaInfo{objects: make(map[Fqon]*ObjectInfo)}
}

// Add registers info for name, erroring if name was already registered
// (the loader reports that error as a NameError for the duplicate
// object).
func (m *MetaInfo) Add(name Fqon, info *ObjectInfo) error {
	if _, exists := m.objects[name]; exists {
		return fmt.Errorf("metainfo: object %q already registered", name)
	}
	m.objects[name] = info
	return nil
}

// Get returns the ObjectInfo for name, or false if unknown.
func (m *MetaInfo) Get(name Fqon) (*ObjectInfo, bool) {
	info, ok := m.objects[name]
	return info, ok
}

// Exists reports whether name is a known object.
func (m *MetaInfo) Exists(name Fqon) bool {
	_, ok := m.objects[name]
	return ok
}

// Names returns every registered object name, unordered.
func (m *MetaInfo) Names() []Fqon {
	out := make([]Fqon, 0, len(m.objects))
	for name := range m.objects {
		out = append(out, name)
	}
	return out
}

// Member looks up the declared MemberInfo for name.member, walking
// nothing: callers that need the inherited binding should first resolve
// which ancestor in the linearization carries the InitialDef.
func (m *MetaInfo) Member(name Fqon, member MemberID) (MemberInfo, bool) {
	info, ok := m.objects[name]
	if !ok {
		return MemberInfo{}, false
	}
	return info.Member(member)
}
