// Package metainfo holds declared, state-independent structure: per-object
// ObjectInfo and per-member MemberInfo records, patch metadata, and the
// MetaInfo registry the loader populates and the engine reads thereafter.
package metainfo

import "fmt"

// Location pinpoints a position in a source file, used for error
// reporting. The zero value is a builtin location.
type Location struct {
	Filename   string
	Line       int
	LineOffset int
	Length     int
	custom     string
}

// Builtin returns a Location for names the engine defines itself, not
// parsed from any file.
func Builtin(msg string) Location {
	return Location{custom: msg}
}

// IsBuiltin reports whether this location names a builtin origin rather
// than a source position.
func (l Location) IsBuiltin() bool {
	return l.Filename == "" && l.custom != ""
}

func (l Location) String() string {
	if l.IsBuiltin() {
		return fmt.Sprintf("<%s>", l.custom)
	}
	return fmt.Sprintf("%s:%d:%d", l.Filename, l.Line, l.LineOffset)
}
