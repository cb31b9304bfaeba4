// Package nyanerr collects the typed error hierarchy the loader and the
// view/transaction engine raise, each carrying enough of a
// metainfo.Location to point a caller at the offending source or API
// call.
package nyanerr

import (
	"fmt"
	"strings"

	"github.com/sfttech/nyango/metainfo"
)

// Reason attaches a secondary location to an error, e.g. the parent
// declaration that conflicts with the one actually at fault.
type Reason struct {
	Location metainfo.Location
	Msg      string
}

// LangError is the base of every error caused by the loaded nyan data
// itself, as opposed to a mistake by the API caller.
type LangError struct {
	Location metainfo.Location
	Msg      string
	Reasons  []Reason
}

func (e *LangError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Location, e.Msg)
	for _, r := range e.Reasons {
		fmt.Fprintf(&b, "\n  %s: %s", r.Location, r.Msg)
	}
	return b.String()
}

// TypeError reports a type mismatch or unresolvable type in loaded data.
type TypeError struct{ LangError }

func NewTypeError(loc metainfo.Location, msg string, reasons ...Reason) *TypeError {
	return &TypeError{LangError{Location: loc, Msg: msg, Reasons: reasons}}
}

// NameError reports a naming conflict or unresolved identifier.
type NameError struct {
	LangError
	Name string
}

func NewNameError(loc metainfo.Location, msg, name string, reasons ...Reason) *NameError {
	return &NameError{LangError{Location: loc, Msg: msg, Reasons: reasons}, name}
}

func (e *NameError) Error() string {
	if e.Name == "" {
		return e.LangError.Error()
	}
	return fmt.Sprintf("%s (name: %s)", e.LangError.Error(), e.Name)
}

// C3Error reports a failed linearization: an inheritance cycle or an
// inconsistent parent order, pinned to the object that caused it.
type C3Error struct {
	LangError
}

func NewC3Error(loc metainfo.Location, msg string) *C3Error {
	return &C3Error{LangError{Location: loc, Msg: msg}}
}

// FileReadError reports a failure to fetch or read an imported file,
// pinned to the location that first requested that file's namespace (an
// import statement, or the root Load call itself).
type FileReadError struct {
	Location metainfo.Location
	Filename string
	Cause    error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("%s: could not read file %q: %v", e.Location, e.Filename, e.Cause)
}

func (e *FileReadError) Unwrap() error { return e.Cause }

// InternalError marks a condition that should be unreachable given the
// invariants the loader and engine maintain -- a bug in this module, not
// in the data it loaded.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Msg
}

func NewInternalError(msg string) *InternalError {
	return &InternalError{Msg: msg}
}

// APIError is the base of every error caused by a caller of the view/
// object/transaction API misusing it, as opposed to a problem with the
// loaded data.
type APIError struct {
	Msg string
}

func (e *APIError) Error() string { return e.Msg }

// InvalidObjectError reports use of an Object handle that was never
// bound to a view.
type InvalidObjectError struct{ APIError }

func NewInvalidObjectError() *InvalidObjectError {
	return &InvalidObjectError{APIError{"object handle was not obtained from a view"}}
}

// MemberTypeError reports a typed getter called against a member of a
// different actual type.
type MemberTypeError struct {
	APIError
	Objname, Member, RealType, WrongType string
}

func NewMemberTypeError(objname, member, realType, wrongType string) *MemberTypeError {
	return &MemberTypeError{
		APIError{fmt.Sprintf("%s.%s: tried to access as %s, but its type is %s",
			objname, member, wrongType, realType)},
		objname, member, realType, wrongType,
	}
}

// ObjectNotFoundError reports a lookup for an object fqon that doesn't
// exist in the database.
type ObjectNotFoundError struct {
	APIError
	Objname string
}

func NewObjectNotFoundError(objname string) *ObjectNotFoundError {
	return &ObjectNotFoundError{APIError{fmt.Sprintf("object not found: %s", objname)}, objname}
}

// MemberNotFoundError reports a lookup for a member an object doesn't
// have.
type MemberNotFoundError struct {
	APIError
	Objname, Member string
}

func NewMemberNotFoundError(objname, member string) *MemberNotFoundError {
	return &MemberNotFoundError{
		APIError{fmt.Sprintf("%s has no member %q", objname, member)},
		objname, member,
	}
}
